package auth

import "errors"

var (
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrAdminNotFound        = errors.New("admin not found")
	ErrUsernameExists       = errors.New("username already registered")
	ErrPasswordMismatch     = errors.New("new password and confirm password do not match")
	ErrPasswordReuse        = errors.New("new password cannot be the same as the old password")
	ErrOldPasswordIncorrect = errors.New("old password is incorrect")
)
