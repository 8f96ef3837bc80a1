package employee

import "context"

// Repository is the employee directory: it resolves subjects (mobile numbers)
// to employee records and backs the admin CRUD endpoints.
type Repository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByMobileNumber(ctx context.Context, mobileNumber string) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	List(ctx context.Context) ([]Employee, error)
}
