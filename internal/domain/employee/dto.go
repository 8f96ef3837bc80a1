package employee

import (
	"github.com/rajasreeit/crm-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	FullName     string  `json:"full_name"`
	MobileNumber string  `json:"mobile_number"`
	Email        *string `json:"email"`
	Position     *string `json:"position"`
	Password     string  `json:"password"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	if validator.IsEmpty(r.MobileNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "mobile_number",
			Message: "mobile_number is required",
		})
	} else if !validator.IsValidMobileNumber(r.MobileNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "mobile_number",
			Message: "mobile_number must be 10-15 digits",
		})
	}

	if r.Email != nil && *r.Email != "" && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email format is invalid",
		})
	}

	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeResponse struct {
	ID           string  `json:"id"`
	FullName     string  `json:"full_name"`
	MobileNumber string  `json:"mobile_number"`
	Email        *string `json:"email,omitempty"`
	Position     *string `json:"position,omitempty"`
}

// ToResponse strips credential material from an employee record.
func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID,
		FullName:     e.FullName,
		MobileNumber: e.MobileNumber,
		Email:        e.Email,
		Position:     e.Position,
	}
}
