package api

import (
	"time"

	"github.com/google/uuid"
)

// Common request/response structures

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse defines the successful response for the login endpoint.
type LoginResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// Token is the JWT used for API authorization
	Token string `json:"token"`

	// ExpiresAt is the RFC 3339 timestamp when the token expires
	ExpiresAt string `json:"expires_at"`
}

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

// TaskRequest defines the payload for creating or updating a task.
// AssignedTo is only honored on creation; ownership is not reassignable.
type TaskRequest struct {
	Title       string    `json:"title"       validate:"required"`
	Description string    `json:"description" validate:"required"`
	Status      string    `json:"status"      validate:"required,oneof=PENDING IN_PROGRESS COMPLETED"`
	Deadline    time.Time `json:"deadline"    validate:"required"`
	AssignedTo  uuid.UUID `json:"assigned_to"`
}
