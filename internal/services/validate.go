package services

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	MinPasswordLen = 8
	// bcrypt only hashes the first 72 bytes; longer input is rejected
	// up front instead of surfacing as a hashing failure.
	MaxPasswordLen = 72
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// normalizeEmail lowercases the address. Email identity is case-insensitive
// on both the registration and login paths.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("%w: invalid email format", ErrValidation)
	}
	return nil
}

func validatePassword(pw string) error {
	if pw == "" {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}
	if len(pw) < MinPasswordLen {
		return fmt.Errorf("%w: password too short: must be at least %d characters", ErrValidation, MinPasswordLen)
	}
	if len(pw) > MaxPasswordLen {
		return fmt.Errorf("%w: password too long: must be at most %d bytes", ErrValidation, MaxPasswordLen)
	}
	return nil
}
