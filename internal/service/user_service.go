package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/taskmgr/task-manager-api/internal/domain"
	"github.com/taskmgr/task-manager-api/internal/service/auth"
	"github.com/taskmgr/task-manager-api/internal/store"
)

// UserService provides user registration and lookup.
type UserService interface {
	// Register creates a new user with a hashed password.
	// Returns store.ErrUsernameExists if the username is taken. The stored
	// hash is never equal to the plaintext and is never echoed to callers.
	Register(ctx context.Context, username, email, password string) (*domain.User, error)

	// GetByID retrieves a user by their ID.
	// Returns store.ErrUserNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface.
type UserServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	db        *sql.DB
	runInTx   func(ctx context.Context, db *sql.DB, fn store.TxFn) error
	logger    *slog.Logger
}

// Ensure UserServiceImpl implements UserService interface
var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService.
func NewUserService(userStore store.UserStore, hasher auth.PasswordHasher, db *sql.DB, log *slog.Logger) *UserServiceImpl {
	if log == nil {
		log = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		db:        db,
		runInTx:   store.RunInTransaction,
		logger:    log.With("component", "user_service"),
	}
}

// Register implements UserService.Register.
// The username uniqueness constraint lives in the store (unique index), so a
// duplicate registration fails atomically at insert time.
func (s *UserServiceImpl) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if password == "" {
		return nil, domain.ErrEmptyPassword
	}
	if len(password) > 72 {
		// bcrypt's input limit
		return nil, domain.ErrPasswordTooLong
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("failed to hash password",
			"error", err,
			"username", username)
		return nil, err
	}

	user, err := domain.NewUser(username, email, hashed)
	if err != nil {
		return nil, err
	}

	err = s.runInTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			s.logger.Debug("registration rejected: username taken",
				"username", username)
		} else {
			s.logger.Error("failed to save user",
				"error", err,
				"username", username)
		}
		return nil, err
	}

	s.logger.Info("user registered",
		"user_id", user.ID,
		"username", user.Username)
	return user, nil
}

// GetByID implements UserService.GetByID.
func (s *UserServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("failed to retrieve user",
				"error", err,
				"user_id", id)
		}
		return nil, err
	}
	return user, nil
}
