// Package service provides application-level services for managing tasks
// and users.
package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers use errors.Is to check for specific conditions; the API layer maps
// them to HTTP status codes.
var (
	// ErrNilInput indicates a nil or absent payload was passed to an
	// operation that requires one. API layer maps this to 400 Bad Request.
	ErrNilInput = errors.New("input cannot be nil")
)
