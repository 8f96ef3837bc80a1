package enquiry

import (
	"github.com/rajasreeit/crm-backend-go/internal/pkg/validator"
)

type CreateEnquiryRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

func (r *CreateEnquiryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}

	if validator.IsEmpty(r.Message) {
		errs = append(errs, validator.ValidationError{
			Field:   "message",
			Message: "message is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EnquiryResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Title        string  `json:"title"`
	Message      string  `json:"message"`
}
