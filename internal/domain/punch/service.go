package punch

import (
	"context"
)

// Engine governs the punch-in / punch-out state machine. It is the only
// component that mutates punch activity records.
type Engine interface {
	// RecordPunch resolves the subject to an employee and either opens a new
	// cycle (no open record) or closes the open one, computing worked duration.
	// Two concurrent calls for the same employee are serialized; the second
	// observes the first's result.
	RecordPunch(ctx context.Context, subject string, req PunchRequest) (PunchActivityResponse, error)

	// UpdateActivity applies an administrative correction to a stored record.
	// Worked minutes are recomputed when both stamps are present afterwards.
	UpdateActivity(ctx context.Context, req UpdatePunchActivityRequest) (PunchActivityResponse, error)
}

// QueryService exposes read-side projections over punch activity records.
type QueryService interface {
	// ListAll retrieves every record (admin view)
	ListAll(ctx context.Context) (ListPunchActivityResponse, error)

	// GetByID retrieves a single record; absence is ErrPunchActivityNotFound,
	// never a fault
	GetByID(ctx context.Context, id string) (PunchActivityResponse, error)

	// ListForSubject retrieves the caller's records decorated with the
	// employee display name
	ListForSubject(ctx context.Context, subject string) (ListPunchActivityResponse, error)
}
