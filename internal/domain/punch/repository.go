package punch

import (
	"context"
)

// Repository defines data access methods for punch activity records.
type Repository interface {
	// Create inserts a new punch activity record
	Create(ctx context.Context, activity PunchActivity) (PunchActivity, error)

	// FindOpen retrieves the open cycle (punch-in set, punch-out unset) for an
	// employee. Returns nil when no open cycle exists; that is not an error.
	FindOpen(ctx context.Context, employeeID string) (*PunchActivity, error)

	// Close persists the punch-out mutation. It is a conditional write: it
	// succeeds only while the stored row is still open, so a lost race never
	// double-closes a cycle. A row already closed reports
	// ErrPunchActivityNotFound.
	Close(ctx context.Context, activity PunchActivity) error

	// Update persists an administrative correction unconditionally.
	Update(ctx context.Context, activity PunchActivity) error

	// GetByID retrieves a record by identifier
	GetByID(ctx context.Context, id string) (PunchActivity, error)

	// List retrieves all records, newest first (admin view)
	List(ctx context.Context) ([]PunchActivity, error)

	// ListByEmployee retrieves all records for one employee, newest first
	ListByEmployee(ctx context.Context, employeeID string) ([]PunchActivity, error)
}
