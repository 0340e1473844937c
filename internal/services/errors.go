package services

import "errors"

var (
	// ErrValidation wraps all missing/malformed-input failures.
	ErrValidation = errors.New("validation failed")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrAlreadyVerified    = errors.New("email already verified")
)
