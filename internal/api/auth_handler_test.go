package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskmgr/task-manager-api/internal/domain"
	"github.com/taskmgr/task-manager-api/internal/service/auth"
	"github.com/taskmgr/task-manager-api/internal/store"
)

// stubUserStore backs the Authenticator with a single known user.
type stubUserStore struct {
	user *domain.User
}

func (s *stubUserStore) Create(ctx context.Context, user *domain.User) error { return nil }

func (s *stubUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, store.ErrUserNotFound
}

func (s *stubUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if s.user != nil && s.user.Username == username {
		return s.user, nil
	}
	return nil, store.ErrUserNotFound
}

func (s *stubUserStore) WithTx(tx *sql.Tx) store.UserStore { return s }

const loginTestSecret = "login-handler-test-secret-32-chars!!"

func newLoginHandler(t *testing.T, now time.Time) (*AuthHandler, *domain.User) {
	t.Helper()

	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("correct password")
	require.NoError(t, err)

	user := &domain.User{
		ID:             uuid.New(),
		Username:       "alice",
		Email:          "alice@example.com",
		HashedPassword: hash,
	}

	authenticator := auth.NewAuthenticator(&stubUserStore{user: user}, hasher, nil)
	jwtService := auth.NewTestJWTService(loginTestSecret, 2*time.Hour, func() time.Time { return now })

	return NewAuthHandler(authenticator, jwtService, nil), user
}

func loginRequest(t *testing.T, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	r := httptest.NewRequest(http.MethodPost, "/login", &buf)
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestAuthHandler_Login(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("valid credentials return a token", func(t *testing.T) {
		t.Parallel()
		handler, user := newLoginHandler(t, now)

		w := httptest.NewRecorder()
		handler.Login(w, loginRequest(t, map[string]string{
			"username": "alice",
			"password": "correct password",
		}))

		require.Equal(t, http.StatusOK, w.Code)

		var resp LoginResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, user.ID, resp.UserID)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, now.Add(2*time.Hour).Format(time.RFC3339), resp.ExpiresAt)

		// The issued token round-trips through validation.
		jwtService := auth.NewTestJWTService(loginTestSecret, 2*time.Hour, func() time.Time { return now })
		claims, err := jwtService.ValidateToken(context.Background(), resp.Token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, "alice", claims.Subject)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		handler, _ := newLoginHandler(t, now)

		w := httptest.NewRecorder()
		handler.Login(w, loginRequest(t, map[string]string{
			"username": "alice",
			"password": "wrong password",
		}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid credentials", decodeError(t, w).Error)
	})

	t.Run("unknown username gets the same response", func(t *testing.T) {
		t.Parallel()
		handler, _ := newLoginHandler(t, now)

		w := httptest.NewRecorder()
		handler.Login(w, loginRequest(t, map[string]string{
			"username": "mallory",
			"password": "correct password",
		}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid credentials", decodeError(t, w).Error)
	})

	t.Run("missing password", func(t *testing.T) {
		t.Parallel()
		handler, _ := newLoginHandler(t, now)

		w := httptest.NewRecorder()
		handler.Login(w, loginRequest(t, map[string]string{"username": "alice"}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid Password: required field", decodeError(t, w).Error)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		t.Parallel()
		handler, _ := newLoginHandler(t, now)

		r := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString("{not json"))
		w := httptest.NewRecorder()
		handler.Login(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid request format", decodeError(t, w).Error)
	})
}
