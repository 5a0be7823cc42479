// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrEmptyTitle is returned when a task title is blank or missing.
	ErrEmptyTitle = errors.New("task title cannot be empty")

	// ErrPastDeadline is returned when a task deadline is not strictly
	// in the future at validation time.
	ErrPastDeadline = errors.New("task deadline must be in the future")

	// ErrInvalidStatus is returned when a task status is not one of the
	// known status values.
	ErrInvalidStatus = errors.New("invalid task status")
)

// ValidationError carries the field that failed validation along with a
// human-readable reason. It wraps a sentinel so callers can still use
// errors.Is to classify the failure.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Field + " " + e.Message
}

// Unwrap returns the wrapped sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}
