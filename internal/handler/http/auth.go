package http

import (
	"encoding/json"
	"net/http"

	"github.com/rajasreeit/crm-backend-go/internal/domain/auth"
	"github.com/rajasreeit/crm-backend-go/internal/handler/http/middleware"
	"github.com/rajasreeit/crm-backend-go/internal/handler/http/response"
)

type AuthHandler interface {
	RegisterAdmin(w http.ResponseWriter, r *http.Request)
	LoginAdmin(w http.ResponseWriter, r *http.Request)
	LoginEmployee(w http.ResponseWriter, r *http.Request)
	ChangePassword(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) AuthHandler {
	return &authHandlerImpl{
		authService: authService,
	}
}

// RegisterAdmin implements AuthHandler.
func (h *authHandlerImpl) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.authService.RegisterAdmin(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Admin registered successfully", nil)
}

// LoginAdmin implements AuthHandler.
func (h *authHandlerImpl) LoginAdmin(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.authService.LoginAdmin(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Login successful", result)
}

// LoginEmployee implements AuthHandler.
func (h *authHandlerImpl) LoginEmployee(w http.ResponseWriter, r *http.Request) {
	var req auth.EmployeeLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.authService.LoginEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Login successful", result)
}

// ChangePassword implements AuthHandler.
func (h *authHandlerImpl) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req auth.PasswordChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.authService.ChangeAdminPassword(r.Context(), middleware.Subject(r), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Password changed successfully", nil)
}
