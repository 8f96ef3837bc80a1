package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rajasreeit/crm-backend-go/internal/domain/auth"
	"github.com/rajasreeit/crm-backend-go/internal/domain/employee"
	"github.com/rajasreeit/crm-backend-go/internal/pkg/jwt"
	"github.com/rajasreeit/crm-backend-go/internal/repository/memory"
)

const testSecret = "test-secret-key-for-jwt"

func newTestAuthService(t *testing.T) (auth.Service, *memory.AdminRepository, *memory.EmployeeRepository) {
	t.Helper()

	adminRepo := memory.NewAdminRepository()
	employeeRepo := memory.NewEmployeeRepository()
	jwtService := jwt.NewJWTService(testSecret, "1h")
	return NewAuthService(adminRepo, employeeRepo, jwtService, nil), adminRepo, employeeRepo
}

func TestRegisterAndLoginAdmin(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAuthService(t)

	err := svc.RegisterAdmin(ctx, auth.RegisterAdminRequest{
		Username: "admin",
		Password: "password123",
	})
	require.NoError(t, err)

	result, err := svc.LoginAdmin(ctx, auth.LoginRequest{
		Username: "admin",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, auth.RoleAdmin, result.Role)
}

func TestRegisterAdminDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAuthService(t)

	req := auth.RegisterAdminRequest{Username: "admin", Password: "password123"}
	require.NoError(t, svc.RegisterAdmin(ctx, req))

	err := svc.RegisterAdmin(ctx, req)
	assert.ErrorIs(t, err, auth.ErrUsernameExists)
}

func TestLoginAdminWrongPassword(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAuthService(t)

	require.NoError(t, svc.RegisterAdmin(ctx, auth.RegisterAdminRequest{
		Username: "admin",
		Password: "password123",
	}))

	_, err := svc.LoginAdmin(ctx, auth.LoginRequest{
		Username: "admin",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginAdminUnknownUsername(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAuthService(t)

	_, err := svc.LoginAdmin(ctx, auth.LoginRequest{
		Username: "nobody",
		Password: "password123",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginEmployeeIssuesSubjectToken(t *testing.T) {
	ctx := context.Background()
	svc, _, employeeRepo := newTestAuthService(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	require.NoError(t, err)

	_, err = employeeRepo.Create(ctx, employee.Employee{
		FullName:     "Asha Rao",
		MobileNumber: "9876543210",
		PasswordHash: string(hash),
	})
	require.NoError(t, err)

	result, err := svc.LoginEmployee(ctx, auth.EmployeeLoginRequest{
		MobileNumber: "9876543210",
		Password:     "password",
	})
	require.NoError(t, err)
	assert.Equal(t, auth.RoleEmployee, result.Role)

	jwtService := jwt.NewJWTService(testSecret, "1h")
	subject, role, err := jwtService.ExtractSubject(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "9876543210", subject)
	assert.Equal(t, auth.RoleEmployee, role)
}

func TestChangeAdminPassword(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAuthService(t)

	require.NoError(t, svc.RegisterAdmin(ctx, auth.RegisterAdminRequest{
		Username: "admin",
		Password: "password123",
	}))

	err := svc.ChangeAdminPassword(ctx, "admin", auth.PasswordChangeRequest{
		OldPassword:     "password123",
		NewPassword:     "newpassword456",
		ConfirmPassword: "newpassword456",
	})
	require.NoError(t, err)

	_, err = svc.LoginAdmin(ctx, auth.LoginRequest{Username: "admin", Password: "password123"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.LoginAdmin(ctx, auth.LoginRequest{Username: "admin", Password: "newpassword456"})
	assert.NoError(t, err)
}

func TestChangeAdminPasswordRejectsWrongOld(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAuthService(t)

	require.NoError(t, svc.RegisterAdmin(ctx, auth.RegisterAdminRequest{
		Username: "admin",
		Password: "password123",
	}))

	err := svc.ChangeAdminPassword(ctx, "admin", auth.PasswordChangeRequest{
		OldPassword:     "not-the-password",
		NewPassword:     "newpassword456",
		ConfirmPassword: "newpassword456",
	})
	assert.ErrorIs(t, err, auth.ErrOldPasswordIncorrect)
}

func TestChangeAdminPasswordRejectsMismatch(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAuthService(t)

	require.NoError(t, svc.RegisterAdmin(ctx, auth.RegisterAdminRequest{
		Username: "admin",
		Password: "password123",
	}))

	err := svc.ChangeAdminPassword(ctx, "admin", auth.PasswordChangeRequest{
		OldPassword:     "password123",
		NewPassword:     "newpassword456",
		ConfirmPassword: "different456",
	})
	assert.ErrorIs(t, err, auth.ErrPasswordMismatch)
}

func TestChangeAdminPasswordRejectsReuse(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAuthService(t)

	require.NoError(t, svc.RegisterAdmin(ctx, auth.RegisterAdminRequest{
		Username: "admin",
		Password: "password123",
	}))

	err := svc.ChangeAdminPassword(ctx, "admin", auth.PasswordChangeRequest{
		OldPassword:     "password123",
		NewPassword:     "password123",
		ConfirmPassword: "password123",
	})
	assert.ErrorIs(t, err, auth.ErrPasswordReuse)
}
