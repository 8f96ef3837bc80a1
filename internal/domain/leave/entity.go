package leave

import "time"

// Status follows the original approval flow: every application starts PENDING
// and an admin moves it to APPROVED or REJECTED.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

type Leave struct {
	ID         string
	EmployeeID string
	StartDate  string // YYYY-MM-DD
	EndDate    string // YYYY-MM-DD
	LeaveType  string
	LeaveDay   string // full day / half day
	Reason     string
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	EmployeeName *string
}
