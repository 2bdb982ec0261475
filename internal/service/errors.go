package service

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that a referenced habit does not exist.
var ErrNotFound = errors.New("habit not found")

// ValidationError describes missing or malformed caller input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError from a format string.
func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err wraps a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
