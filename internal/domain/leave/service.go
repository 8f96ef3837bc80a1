package leave

import "context"

type Service interface {
	Apply(ctx context.Context, subject string, req ApplyLeaveRequest) (LeaveResponse, error)
	ListForSubject(ctx context.Context, subject string) ([]LeaveResponse, error)

	// ListByStatus retrieves leaves in one status decorated with employee names
	// (admin view)
	ListByStatus(ctx context.Context, status Status) ([]LeaveResponse, error)
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (LeaveResponse, error)
}
