package enquiry

import "time"

type Enquiry struct {
	ID         string
	EmployeeID string
	Title      string
	Message    string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	EmployeeName *string
}
