// Package api implements the REST boundary: request decoding, validation,
// handler orchestration and error-to-status mapping.
package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/taskmgr/task-manager-api/internal/api/shared"
	"github.com/taskmgr/task-manager-api/internal/service/auth"
)

// AuthHandler handles the login endpoint.
type AuthHandler struct {
	authenticator *auth.Authenticator
	jwtService    auth.JWTService
	validator     *validator.Validate
	logger        *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(authenticator *auth.Authenticator, jwtService auth.JWTService, log *slog.Logger) *AuthHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AuthHandler{
		authenticator: authenticator,
		jwtService:    jwtService,
		validator:     validator.New(),
		logger:        log.With("component", "auth_handler"),
	}
}

// Login handles POST /login.
// Verifies credentials and returns a signed token on success. Bad
// credentials yield 400 without revealing whether the username or the
// password was wrong.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := h.authenticator.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrAuthenticationFailed) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid credentials")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to authenticate user", err)
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", err)
		return
	}

	claims, err := h.jwtService.ValidateToken(r.Context(), token)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: claims.ExpiresAt.UTC().Format(time.RFC3339),
	})
}
