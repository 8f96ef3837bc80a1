package enquiry

import "context"

type Service interface {
	Create(ctx context.Context, subject string, req CreateEnquiryRequest) (EnquiryResponse, error)
	ListForSubject(ctx context.Context, subject string) ([]EnquiryResponse, error)

	// ListAll retrieves every enquiry decorated with employee names (admin view)
	ListAll(ctx context.Context) ([]EnquiryResponse, error)
	Delete(ctx context.Context, id string) error
}
