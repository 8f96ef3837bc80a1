package auth

import "context"

// Service handles credential verification and token issuance for admins and
// employees.
type Service interface {
	RegisterAdmin(ctx context.Context, req RegisterAdminRequest) error
	LoginAdmin(ctx context.Context, req LoginRequest) (LoginResponse, error)
	LoginEmployee(ctx context.Context, req EmployeeLoginRequest) (LoginResponse, error)

	// ChangeAdminPassword verifies the old password before storing the new one.
	ChangeAdminPassword(ctx context.Context, subject string, req PasswordChangeRequest) error
}
