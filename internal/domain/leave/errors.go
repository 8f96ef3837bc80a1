package leave

import "errors"

var (
	ErrLeaveNotFound = errors.New("leave not found")
	ErrInvalidStatus = errors.New("invalid leave status")
)
