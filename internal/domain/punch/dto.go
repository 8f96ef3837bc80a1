package punch

import (
	"mime/multipart"
	"strings"

	"github.com/rajasreeit/crm-backend-go/internal/pkg/validator"
)

// ========================================
// PUNCH ACTIVITY DTOs
// ========================================

// PunchRequest carries everything a punch call may supply. Whether it becomes a
// punch-in or a punch-out is decided by the engine from the employee's state,
// not by the caller.
type PunchRequest struct {
	WorkReport   *string `json:"work_report"`
	ReminderDate *string `json:"reminder_date"`

	PunchInImage        multipart.File        `json:"-"`
	PunchInImageHeader  *multipart.FileHeader `json:"-"`
	PunchOutImage       multipart.File        `json:"-"`
	PunchOutImageHeader *multipart.FileHeader `json:"-"`
}

// WantsPunchOut reports whether the request states punch-out intent explicitly
// by carrying only punch-out material. Such a request against an employee with
// no open cycle is rejected instead of opening a new one.
func (r *PunchRequest) WantsPunchOut() bool {
	return r.PunchOutImageHeader != nil && r.PunchInImageHeader == nil
}

func (r *PunchRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validateImage("punch_in_image", r.PunchInImageHeader)...)
	errs = append(errs, validateImage("punch_out_image", r.PunchOutImageHeader)...)

	if r.WorkReport != nil && len(*r.WorkReport) > 5000 {
		errs = append(errs, validator.ValidationError{
			Field:   "work_report",
			Message: "work report must not exceed 5000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// validateImage checks an optional uploaded image part. Absent parts are fine;
// the punch endpoint accepts either image or none at all.
func validateImage(field string, header *multipart.FileHeader) validator.ValidationErrors {
	if header == nil {
		return nil
	}

	var errs validator.ValidationErrors

	filename := header.Filename
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   field,
			Message: "invalid file type: only jpg, jpeg, png allowed",
		})
		return errs
	}

	ext := strings.ToLower(filename[idx:])
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		errs = append(errs, validator.ValidationError{
			Field:   field,
			Message: "invalid file type: only jpg, jpeg, png allowed",
		})
	} else if header.Size > 10<<20 { // 10MB
		errs = append(errs, validator.ValidationError{
			Field:   field,
			Message: "image size must not exceed 10MB",
		})
	}

	return errs
}

// UpdatePunchActivityRequest lets an admin fix a stored record (wrong stamps,
// replaced proof images). Worked minutes are recomputed whenever both stamps
// end up present.
type UpdatePunchActivityRequest struct {
	ID             string  `json:"-"`
	Date           *string `json:"date"`
	TimeOfPunchIn  *string `json:"time_of_punch_in"`
	TimeOfPunchOut *string `json:"time_of_punch_out"`

	PunchInImage        multipart.File        `json:"-"`
	PunchInImageHeader  *multipart.FileHeader `json:"-"`
	PunchOutImage       multipart.File        `json:"-"`
	PunchOutImageHeader *multipart.FileHeader `json:"-"`
}

func (r *UpdatePunchActivityRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.Date != nil && *r.Date != "" {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	errs = append(errs, validateImage("punch_in_image", r.PunchInImageHeader)...)
	errs = append(errs, validateImage("punch_out_image", r.PunchOutImageHeader)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PunchActivityResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	EmployeeName     *string `json:"employee_name,omitempty"`
	Date             string  `json:"date"`
	TimeOfPunchIn    *string `json:"time_of_punch_in"`
	TimeOfPunchOut   *string `json:"time_of_punch_out"`
	PunchInImageURL  *string `json:"punch_in_image_url,omitempty"`
	PunchOutImageURL *string `json:"punch_out_image_url,omitempty"`
	WorkReport       *string `json:"work_report,omitempty"`
	ReminderDate     *string `json:"reminder_date,omitempty"`
	WorkedHours      *string `json:"worked_hours,omitempty"`
	WorkedMinutes    *int    `json:"worked_minutes,omitempty"`
}

type ListPunchActivityResponse struct {
	TotalCount int                     `json:"total_count"`
	Activities []PunchActivityResponse `json:"punch_activities"`
}
