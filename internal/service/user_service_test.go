package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmgr/task-manager-api/internal/domain"
	"github.com/taskmgr/task-manager-api/internal/store"
)

// stubHasher avoids bcrypt cost in service tests.
type stubHasher struct {
	err error
}

func (h stubHasher) Hash(password string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	return "hashed:" + password, nil
}

func newTestUserService(t *testing.T, hasher stubHasher) (*UserServiceImpl, *mockUserStore) {
	t.Helper()
	users := newMockUserStore()
	svc := NewUserService(users, hasher, nil, nil)
	svc.runInTx = passThroughTx
	return svc, users
}

func TestUserService_Register(t *testing.T) {
	t.Parallel()

	t.Run("registers a new user", func(t *testing.T) {
		t.Parallel()
		svc, users := newTestUserService(t, stubHasher{})

		user, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret")
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "hashed:s3cret", user.HashedPassword)

		stored, err := users.GetByUsername(context.Background(), "alice")
		require.NoError(t, err)
		assert.Equal(t, user.ID, stored.ID)
	})

	t.Run("empty password rejected", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestUserService(t, stubHasher{})
		_, err := svc.Register(context.Background(), "alice", "alice@example.com", "")
		assert.ErrorIs(t, err, domain.ErrEmptyPassword)
	})

	t.Run("overlong password rejected", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestUserService(t, stubHasher{})
		_, err := svc.Register(context.Background(), "alice", "alice@example.com", strings.Repeat("x", 73))
		assert.ErrorIs(t, err, domain.ErrPasswordTooLong)
	})

	t.Run("invalid email rejected", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestUserService(t, stubHasher{})
		_, err := svc.Register(context.Background(), "alice", "not-an-email", "s3cret")
		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestUserService(t, stubHasher{})

		_, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret")
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), "alice", "alice2@example.com", "other")
		assert.ErrorIs(t, err, store.ErrUsernameExists)
	})

	t.Run("hasher failure propagates", func(t *testing.T) {
		t.Parallel()
		hashErr := errors.New("bcrypt blew up")
		svc, _ := newTestUserService(t, stubHasher{err: hashErr})

		_, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret")
		assert.ErrorIs(t, err, hashErr)
	})
}

func TestUserService_GetByID(t *testing.T) {
	t.Parallel()

	t.Run("existing user", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestUserService(t, stubHasher{})
		registered, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret")
		require.NoError(t, err)

		got, err := svc.GetByID(context.Background(), registered.ID)
		require.NoError(t, err)
		assert.Equal(t, registered.Username, got.Username)
	})

	t.Run("missing user", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestUserService(t, stubHasher{})
		_, err := svc.GetByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}
