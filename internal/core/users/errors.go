package users

import (
	"errors"
	"fmt"
)

// Sentinel errors for common user operations
var (
	// ErrUserNotFound is returned when a user lookup finds no matching record
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameTaken is returned by the repository on a duplicate username
	ErrUsernameTaken = errors.New("username already taken")

	// ErrEmailTaken is returned by the repository on a duplicate email
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned when a username/password pair does not match.
	// It does not distinguish an unknown username from a wrong password.
	ErrInvalidCredentials = errors.New("no active account found with the given credentials")
)

// ValidationError reports an input field that violates a constraint
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
