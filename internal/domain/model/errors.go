package model

import (
	"errors"
	"fmt"
)

// ErrInvalidProfile is the only failure an evaluation can produce. Every
// ValidationError unwraps to it.
var ErrInvalidProfile = errors.New("invalid profile")

// ValidationError names the offending input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidProfile, e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidProfile }

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
