package response

import (
	"errors"
	"net/http"

	"github.com/rajasreeit/crm-backend-go/internal/domain/auth"
	"github.com/rajasreeit/crm-backend-go/internal/domain/employee"
	"github.com/rajasreeit/crm-backend-go/internal/domain/enquiry"
	"github.com/rajasreeit/crm-backend-go/internal/domain/leave"
	"github.com/rajasreeit/crm-backend-go/internal/domain/punch"
	"github.com/rajasreeit/crm-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Auth domain errors
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid credentials")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrOldPasswordIncorrect):
		Unauthorized(w, "Old password is incorrect")
	case errors.Is(err, auth.ErrPasswordMismatch):
		BadRequest(w, "New password and confirmation do not match", nil)
	case errors.Is(err, auth.ErrPasswordReuse):
		BadRequest(w, "New password must differ from the old password", nil)
	case errors.Is(err, auth.ErrAdminNotFound):
		NotFound(w, "Admin not found")
	case errors.Is(err, auth.ErrUsernameExists):
		Conflict(w, "Username already taken")

	// Employee domain errors. An unresolvable subject is treated as an
	// authentication failure rather than a lookup miss.
	case errors.Is(err, employee.ErrEmployeeNotFound):
		Unauthorized(w, "Employee not found")
	case errors.Is(err, employee.ErrMobileNumberExists):
		Conflict(w, "Mobile number already registered")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Punch domain errors
	case errors.Is(err, punch.ErrNoActivePunchIn):
		BadRequest(w, "No active punch-in found", nil)
	case errors.Is(err, punch.ErrInvalidPunchSequence):
		BadRequest(w, "Punch-out time is before punch-in time", nil)
	case errors.Is(err, punch.ErrPunchActivityNotFound):
		NotFound(w, "Punch activity not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave not found")
	case errors.Is(err, leave.ErrInvalidStatus):
		BadRequest(w, "Invalid leave status", nil)

	// Enquiry domain errors
	case errors.Is(err, enquiry.ErrEnquiryNotFound):
		NotFound(w, "Enquiry not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
