package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmgr/task-manager-api/internal/store"
)

// fakeResult implements sql.Result for CheckRowsAffected tests.
type fakeResult struct {
	rows int64
	err  error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, r.err }

func pgError(code, constraint string) error {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	t.Run("nil passes through", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, MapError(nil))
	})

	t.Run("no rows maps to not found", func(t *testing.T) {
		t.Parallel()
		err := MapError(fmt.Errorf("query: %w", sql.ErrNoRows))
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("unique violation maps to duplicate", func(t *testing.T) {
		t.Parallel()
		err := MapError(pgError(uniqueViolationCode, "tasks_title_live_key"))
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})

	t.Run("foreign key violation maps to invalid entity", func(t *testing.T) {
		t.Parallel()
		err := MapError(pgError(foreignKeyViolationCode, "tasks_assigned_to_fkey"))
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
		assert.Contains(t, err.Error(), "tasks_assigned_to_fkey")
	})

	t.Run("check violation maps to invalid entity", func(t *testing.T) {
		t.Parallel()
		err := MapError(pgError(checkViolationCode, "tasks_status_check"))
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})

	t.Run("unrecognized error is returned unchanged", func(t *testing.T) {
		t.Parallel()
		original := errors.New("connection reset")
		assert.Equal(t, original, MapError(original))
	})
}

func TestMapUniqueViolation(t *testing.T) {
	t.Parallel()

	t.Run("unique violation maps to the specific error", func(t *testing.T) {
		t.Parallel()
		err := MapUniqueViolation(pgError(uniqueViolationCode, "users_username_key"), store.ErrUsernameExists)
		assert.ErrorIs(t, err, store.ErrUsernameExists)
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})

	t.Run("other errors pass through", func(t *testing.T) {
		t.Parallel()
		original := pgError(foreignKeyViolationCode, "tasks_assigned_to_fkey")
		assert.Equal(t, original, MapUniqueViolation(original, store.ErrTitleExists))
	})
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUniqueViolation(pgError(uniqueViolationCode, "")))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", pgError(uniqueViolationCode, ""))))
	assert.False(t, IsUniqueViolation(pgError(foreignKeyViolationCode, "")))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	t.Run("rows affected succeeds", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, CheckRowsAffected(fakeResult{rows: 1}, "task"))
	})

	t.Run("zero rows maps to not found with entity name", func(t *testing.T) {
		t.Parallel()
		err := CheckRowsAffected(fakeResult{rows: 0}, "task")
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrNotFound)
		assert.Contains(t, err.Error(), "task not found")
	})

	t.Run("zero rows without entity name", func(t *testing.T) {
		t.Parallel()
		err := CheckRowsAffected(fakeResult{rows: 0}, "")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("rows affected error is wrapped", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("driver does not support RowsAffected")
		err := CheckRowsAffected(fakeResult{err: cause}, "task")
		assert.ErrorIs(t, err, cause)
	})

	t.Run("nil result is rejected", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, CheckRowsAffected(nil, "task"))
	})
}
