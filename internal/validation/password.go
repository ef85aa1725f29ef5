// Package validation holds input validation rules shared across services.
package validation

import (
	"errors"
	"regexp"
)

const minPasswordLength = 8

var specialChars = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)

// HasSpecialChar checks if a string contains at least one special character
func HasSpecialChar(s string) bool {
	return specialChars.MatchString(s)
}

// ValidatePassword enforces the account password policy.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return errors.New("password must be at least 8 characters")
	}
	if !HasSpecialChar(password) {
		return errors.New("password must contain at least one special character")
	}
	return nil
}
