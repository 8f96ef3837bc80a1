package employee

import "time"

type Employee struct {
	ID           string
	FullName     string
	MobileNumber string
	Email        *string
	Position     *string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
