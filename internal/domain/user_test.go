package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("valid user", func(t *testing.T) {
		t.Parallel()
		user, err := NewUser("alice", "alice@example.com", "$2a$10$notarealhashbutlongenough")
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.False(t, user.CreatedAt.IsZero())
	})

	t.Run("empty username rejected", func(t *testing.T) {
		t.Parallel()
		_, err := NewUser("", "alice@example.com", "hash")
		assert.ErrorIs(t, err, ErrEmptyUsername)
	})

	t.Run("empty email rejected", func(t *testing.T) {
		t.Parallel()
		_, err := NewUser("alice", "", "hash")
		assert.ErrorIs(t, err, ErrEmptyEmail)
	})

	t.Run("empty hashed password rejected", func(t *testing.T) {
		t.Parallel()
		_, err := NewUser("alice", "alice@example.com", "")
		assert.ErrorIs(t, err, ErrEmptyHashedPassword)
	})
}

func TestValidEmailFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		email string
		valid bool
	}{
		{"alice@example.com", true},
		{"a@b.co", true},
		{"first.last@sub.example.org", true},
		{"no-at-sign.example.com", false},
		{"@example.com", false},
		{"alice@", false},
		{"alice@nodot", false},
		{"alice@.com", false},
		{"alice@example.", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.valid, validEmailFormat(tt.email))
		})
	}
}
