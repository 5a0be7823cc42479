// Package auth provides the identity/token subsystem: JWT issuance and
// verification, password hashing, and credential authentication.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/taskmgr/task-manager-api/internal/domain"
)

// Issuer is the fixed issuer label embedded in every token and required
// during verification.
const Issuer = "Task Manager API"

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT for the given proven user.
	// The token embeds the fixed issuer, subject = username, a userId claim,
	// and an expiration of issuance time plus the configured lifetime.
	// Returns the token string or an error if signing fails.
	GenerateToken(ctx context.Context, user *domain.User) (string, error)

	// ValidateToken validates the provided token string and extracts the
	// claims. Returns ErrExpiredToken when the token is past its expiration
	// and ErrInvalidToken for signature, issuer, or structural failures.
	// The two kinds are distinct; callers must not conflate them.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the identity claims carried by a verified token.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"userId"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	Issuer    string    `json:"iss,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
}
