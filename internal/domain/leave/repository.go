package leave

import "context"

type Repository interface {
	Create(ctx context.Context, leave Leave) (Leave, error)
	GetByID(ctx context.Context, id string) (Leave, error)
	ListByStatus(ctx context.Context, status Status) ([]Leave, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Leave, error)
	UpdateStatus(ctx context.Context, id string, status Status) (Leave, error)
}
