package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/taskmgr/task-manager-api/internal/domain"
	"github.com/taskmgr/task-manager-api/internal/store"
)

// CreateTaskParams carries the fields needed to create a task.
type CreateTaskParams struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	Deadline    time.Time
	AssignedTo  uuid.UUID
}

// UpdateTaskParams carries the mutable fields of a task. Ownership is not
// reassignable through update.
type UpdateTaskParams struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	Deadline    time.Time
}

// TaskService orchestrates the task lifecycle: creation, lookup, listing,
// update and soft-deletion. Domain invariants are enforced here except title
// uniqueness, which is the store's responsibility (a partial unique index
// surfaced as store.ErrTitleExists) so that concurrent writers cannot race a
// pre-check.
type TaskService interface {
	// Create validates and persists a new task.
	// Returns ErrNilInput for a nil payload, store.ErrUserNotFound when the
	// assignee does not exist, domain.ErrEmptyTitle / domain.ErrPastDeadline /
	// domain.ErrInvalidStatus on validation failures, and store.ErrTitleExists
	// when the title is already held by a live task.
	Create(ctx context.Context, params *CreateTaskParams) (*domain.Task, error)

	// GetByID retrieves a non-deleted task.
	// Returns store.ErrTaskNotFound if absent or soft-deleted.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListByOwner returns a page of the owner's non-deleted tasks.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page store.PageRequest) (*store.TaskPage, error)

	// ListByStatus returns a page of the owner's non-deleted tasks with
	// exactly the given status.
	ListByStatus(ctx context.Context, ownerID uuid.UUID, status domain.TaskStatus, page store.PageRequest) (*store.TaskPage, error)

	// Update overwrites title, description, status and deadline of an
	// existing task after revalidating them. A title change that collides
	// with another live task returns store.ErrTitleExists; keeping the same
	// title never self-conflicts.
	Update(ctx context.Context, id uuid.UUID, params *UpdateTaskParams) error

	// Delete marks the task deleted. Subsequent lookups and listings will
	// not return it.
	Delete(ctx context.Context, id uuid.UUID) error
}

// TaskServiceImpl implements the TaskService interface.
type TaskServiceImpl struct {
	taskStore store.TaskStore
	userStore store.UserStore
	db        *sql.DB
	timeFunc  func() time.Time
	runInTx   func(ctx context.Context, db *sql.DB, fn store.TxFn) error
	logger    *slog.Logger
}

// Ensure TaskServiceImpl implements TaskService interface
var _ TaskService = (*TaskServiceImpl)(nil)

// NewTaskService creates a new TaskService.
func NewTaskService(taskStore store.TaskStore, userStore store.UserStore, db *sql.DB, log *slog.Logger) *TaskServiceImpl {
	if log == nil {
		log = slog.Default()
	}
	return &TaskServiceImpl{
		taskStore: taskStore,
		userStore: userStore,
		db:        db,
		timeFunc:  time.Now,
		runInTx:   store.RunInTransaction,
		logger:    log.With("component", "task_service"),
	}
}

// Create implements TaskService.Create.
// Runs in a transaction so the assignee lookup and the insert observe a
// consistent snapshot; the title uniqueness constraint fires at insert time.
func (s *TaskServiceImpl) Create(ctx context.Context, params *CreateTaskParams) (*domain.Task, error) {
	if params == nil {
		return nil, ErrNilInput
	}

	if err := s.validateFields(params.Title, params.Deadline); err != nil {
		return nil, err
	}

	var created *domain.Task
	err := s.runInTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		userStore := s.userStore.WithTx(tx)
		taskStore := s.taskStore.WithTx(tx)

		// The assignee must exist at creation time. The FK constraint backs
		// this up, but resolving it here yields the precise not-found error.
		if _, err := userStore.GetByID(ctx, params.AssignedTo); err != nil {
			return err
		}

		task, err := domain.NewTask(
			params.Title,
			params.Description,
			params.Status,
			params.Deadline,
			params.AssignedTo,
		)
		if err != nil {
			return err
		}

		if err := taskStore.Create(ctx, task); err != nil {
			return err
		}

		created = task
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrTitleExists) {
			s.logger.Debug("task creation rejected: duplicate title",
				"title", params.Title)
		} else if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("failed to create task",
				"error", err,
				"assigned_to", params.AssignedTo)
		}
		return nil, err
	}

	s.logger.Info("task created",
		"task_id", created.ID,
		"assigned_to", created.AssignedTo)
	return created, nil
}

// GetByID implements TaskService.GetByID.
func (s *TaskServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrTaskNotFound) {
			s.logger.Error("failed to retrieve task",
				"error", err,
				"task_id", id)
		}
		return nil, err
	}
	return task, nil
}

// ListByOwner implements TaskService.ListByOwner.
func (s *TaskServiceImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID, page store.PageRequest) (*store.TaskPage, error) {
	tasks, err := s.taskStore.ListByOwner(ctx, ownerID, page)
	if err != nil {
		s.logger.Error("failed to list tasks by owner",
			"error", err,
			"owner_id", ownerID)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListByStatus implements TaskService.ListByStatus.
func (s *TaskServiceImpl) ListByStatus(ctx context.Context, ownerID uuid.UUID, status domain.TaskStatus, page store.PageRequest) (*store.TaskPage, error) {
	if !status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	tasks, err := s.taskStore.ListByStatus(ctx, ownerID, status, page)
	if err != nil {
		s.logger.Error("failed to list tasks by status",
			"error", err,
			"owner_id", ownerID,
			"status", status)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Update implements TaskService.Update.
func (s *TaskServiceImpl) Update(ctx context.Context, id uuid.UUID, params *UpdateTaskParams) error {
	if params == nil {
		return ErrNilInput
	}

	if err := s.validateFields(params.Title, params.Deadline); err != nil {
		return err
	}

	err := s.runInTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		taskStore := s.taskStore.WithTx(tx)

		task, err := taskStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		task.Title = params.Title
		task.Description = params.Description
		task.Status = params.Status
		task.Deadline = params.Deadline

		return taskStore.Update(ctx, task)
	})
	if err != nil {
		if errors.Is(err, store.ErrTitleExists) {
			s.logger.Debug("task update rejected: duplicate title",
				"task_id", id,
				"title", params.Title)
		} else if !errors.Is(err, store.ErrTaskNotFound) {
			s.logger.Error("failed to update task",
				"error", err,
				"task_id", id)
		}
		return err
	}

	s.logger.Info("task updated", "task_id", id)
	return nil
}

// Delete implements TaskService.Delete.
func (s *TaskServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.taskStore.Delete(ctx, id); err != nil {
		if !errors.Is(err, store.ErrTaskNotFound) {
			s.logger.Error("failed to delete task",
				"error", err,
				"task_id", id)
		}
		return err
	}

	s.logger.Info("task deleted", "task_id", id)
	return nil
}

// validateFields applies the point-in-time rules shared by create and
// update: a non-blank title and a strictly future deadline.
func (s *TaskServiceImpl) validateFields(title string, deadline time.Time) error {
	if title == "" {
		return domain.ErrEmptyTitle
	}
	return domain.ValidateDeadline(deadline, s.timeFunc())
}
