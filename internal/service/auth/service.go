package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/rajasreeit/crm-backend-go/internal/domain/auth"
	"github.com/rajasreeit/crm-backend-go/internal/domain/employee"
	"github.com/rajasreeit/crm-backend-go/internal/pkg/jwt"
	"github.com/rajasreeit/crm-backend-go/internal/pkg/metrics"
)

const bcryptCost = 12

type AuthServiceImpl struct {
	admins     auth.AdminRepository
	employees  employee.Repository
	jwtService jwt.Service
	metrics    *metrics.Metrics
}

func NewAuthService(
	adminRepo auth.AdminRepository,
	employeeRepo employee.Repository,
	jwtService jwt.Service,
	m *metrics.Metrics,
) auth.Service {
	return &AuthServiceImpl{
		admins:     adminRepo,
		employees:  employeeRepo,
		jwtService: jwtService,
		metrics:    m,
	}
}

// RegisterAdmin implements auth.Service.
func (s *AuthServiceImpl) RegisterAdmin(ctx context.Context, req auth.RegisterAdminRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = s.admins.Create(ctx, auth.Admin{
		Username:     req.Username,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, auth.ErrUsernameExists) {
			return auth.ErrUsernameExists
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}

	return nil
}

// LoginAdmin implements auth.Service.
func (s *AuthServiceImpl) LoginAdmin(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	admin, err := s.admins.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, auth.ErrAdminNotFound) {
			s.metrics.IncrementAuthFailure()
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get admin: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)) != nil {
		s.metrics.IncrementAuthFailure()
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(admin.Username, auth.RoleAdmin)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate token: %w", err)
	}

	return auth.LoginResponse{AccessToken: token, ExpiresAt: expiresAt, Role: auth.RoleAdmin}, nil
}

// LoginEmployee implements auth.Service. The mobile number becomes the token
// subject that the punch engine later resolves through the directory.
func (s *AuthServiceImpl) LoginEmployee(ctx context.Context, req auth.EmployeeLoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	emp, err := s.employees.GetByMobileNumber(ctx, req.MobileNumber)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			s.metrics.IncrementAuthFailure()
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)) != nil {
		s.metrics.IncrementAuthFailure()
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(emp.MobileNumber, auth.RoleEmployee)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate token: %w", err)
	}

	return auth.LoginResponse{AccessToken: token, ExpiresAt: expiresAt, Role: auth.RoleEmployee}, nil
}

// ChangeAdminPassword implements auth.Service.
func (s *AuthServiceImpl) ChangeAdminPassword(ctx context.Context, subject string, req auth.PasswordChangeRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if req.NewPassword != req.ConfirmPassword {
		return auth.ErrPasswordMismatch
	}

	admin, err := s.admins.GetByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, auth.ErrAdminNotFound) {
			return auth.ErrAdminNotFound
		}
		return fmt.Errorf("failed to get admin: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.OldPassword)) != nil {
		return auth.ErrOldPasswordIncorrect
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.NewPassword)) == nil {
		return auth.ErrPasswordReuse
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.admins.UpdatePassword(ctx, admin.ID, string(hash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
