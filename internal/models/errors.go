package models

import (
	"errors"
	"fmt"
)

// ValidationError represents user-facing validation issues.
type ValidationError struct {
	msg string
}

func (e ValidationError) Error() string {
	return e.msg
}

// NewValidationError creates a new validation error.
func NewValidationError(format string, args ...interface{}) error {
	return ValidationError{msg: fmt.Sprintf(format, args...)}
}

// ErrEndpointNotConfigured is returned when no webhook URL has been saved yet.
var ErrEndpointNotConfigured = errors.New("webhook URL is not configured")
