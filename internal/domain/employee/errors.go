package employee

import "errors"

// Employee domain errors
var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrMobileNumberExists = errors.New("mobile number already registered")
	ErrEmailExists        = errors.New("email already registered")
)
