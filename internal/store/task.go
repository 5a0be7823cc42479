package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/taskmgr/task-manager-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
//
// Title uniqueness among non-deleted tasks is the store's responsibility:
// implementations must enforce it atomically with the write (e.g. via a
// partial unique index) and surface violations as ErrTitleExists. Callers
// must not pre-check uniqueness with a separate read.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns ErrTitleExists if a non-deleted task with the same title exists.
	// Returns ErrInvalidEntity if the assigned user does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a non-deleted task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist or is soft-deleted.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListByOwner returns a page of non-deleted tasks assigned to ownerID,
	// ordered per the page request.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page PageRequest) (*TaskPage, error)

	// ListByStatus returns a page of non-deleted tasks assigned to ownerID
	// with exactly the given status.
	ListByStatus(ctx context.Context, ownerID uuid.UUID, status domain.TaskStatus, page PageRequest) (*TaskPage, error)

	// Update overwrites the mutable fields (title, description, status,
	// deadline) of an existing non-deleted task. Ownership and creation
	// timestamp are never touched.
	// Returns ErrTaskNotFound if the task does not exist or is soft-deleted.
	// Returns ErrTitleExists if the new title collides with another live task.
	Update(ctx context.Context, task *domain.Task) error

	// Delete marks the task as deleted. The row remains in the store but is
	// excluded from every lookup and listing.
	// Returns ErrTaskNotFound if the task does not exist or is already deleted.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
