package punch

import (
	"time"
)

// PunchActivity is one attendance cycle for an employee on a given day.
// A cycle is open while TimeOfPunchOut is nil.
type PunchActivity struct {
	ID               string
	EmployeeID       string
	Date             string // YYYY-MM-DD, frozen at punch-in
	TimeOfPunchIn    *time.Time
	TimeOfPunchOut   *time.Time
	PunchInImageURL  *string
	PunchOutImageURL *string
	WorkReport       *string
	ReminderDate     *string
	WorkedMinutes    *int
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// DTO
	EmployeeName *string
}

// IsOpen reports whether the cycle has a punch-in but no punch-out yet.
func (p *PunchActivity) IsOpen() bool {
	return p.TimeOfPunchIn != nil && p.TimeOfPunchOut == nil
}
