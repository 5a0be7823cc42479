package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/taskmgr/task-manager-api/internal/domain"
	"github.com/taskmgr/task-manager-api/internal/store"
)

// Authenticator verifies a presented username/password pair against the
// credential store and produces the proven user on success.
type Authenticator struct {
	userStore store.UserStore
	verifier  PasswordVerifier
	logger    *slog.Logger
}

// NewAuthenticator creates an Authenticator with the given dependencies.
// If logger is nil, a default logger will be used.
func NewAuthenticator(userStore store.UserStore, verifier PasswordVerifier, log *slog.Logger) *Authenticator {
	if log == nil {
		log = slog.Default()
	}
	return &Authenticator{
		userStore: userStore,
		verifier:  verifier,
		logger:    log.With(slog.String("component", "authenticator")),
	}
}

// Authenticate looks up the user by username and compares the presented
// password against the stored hash. On match it returns the user; on a
// missing user or hash mismatch it returns ErrAuthenticationFailed without
// revealing which of the two happened. Unexpected store failures are
// propagated as-is so the boundary can map them to a server error.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := a.userStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			a.logger.Debug("authentication failed: unknown username",
				slog.String("username", username))
			return nil, ErrAuthenticationFailed
		}
		a.logger.Error("failed to look up user for authentication",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return nil, err
	}

	if err := a.verifier.Compare(user.HashedPassword, password); err != nil {
		a.logger.Debug("authentication failed: password mismatch",
			slog.String("username", username))
		return nil, ErrAuthenticationFailed
	}

	a.logger.Info("user authenticated",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username))
	return user, nil
}
