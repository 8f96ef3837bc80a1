package enquiry

import "context"

type Repository interface {
	Create(ctx context.Context, enquiry Enquiry) (Enquiry, error)
	List(ctx context.Context) ([]Enquiry, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Enquiry, error)
	Delete(ctx context.Context, id string) error
}
