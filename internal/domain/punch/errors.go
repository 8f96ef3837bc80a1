package punch

import "errors"

// Punch activity domain errors
var (
	// Engine validation errors
	ErrNoActivePunchIn      = errors.New("no active punch-in found")
	ErrInvalidPunchSequence = errors.New("punch-out time is before punch-in time")

	// General errors
	ErrPunchActivityNotFound = errors.New("punch activity not found")
)
