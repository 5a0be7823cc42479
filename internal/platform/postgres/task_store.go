package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/taskmgr/task-manager-api/internal/domain"
	"github.com/taskmgr/task-manager-api/internal/platform/logger"
	"github.com/taskmgr/task-manager-api/internal/store"
)

// taskSortColumns whitelists the columns a page request may sort by.
// Anything else falls back to created_at.
var taskSortColumns = map[string]string{
	"created_at": "created_at",
	"deadline":   "deadline",
	"title":      "title",
	"status":     "status",
}

// TaskStore implements the store.TaskStore interface using a PostgreSQL
// database as the storage backend.
//
// Title uniqueness among non-deleted tasks is enforced by the partial unique
// index tasks_title_live_key (title WHERE NOT deleted), so a duplicate title
// is detected atomically at write time and reported as store.ErrTitleExists.
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTaskStore creates a new PostgreSQL implementation of the TaskStore
// interface. It accepts a database connection or transaction that should be
// initialized and managed by the caller. If logger is nil, a default logger
// will be used.
func NewTaskStore(db store.DBTX, log *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &TaskStore{
		db:     db,
		logger: log.With(slog.String("component", "task_store")),
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		INSERT INTO tasks (id, title, description, status, deadline, assigned_to, created_at, deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.Title,
		task.Description,
		task.Status,
		task.Deadline,
		task.AssignedTo,
		task.CreatedAt,
		task.Deleted,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("attempted to create task with duplicate title",
				slog.String("title", task.Title))
			return MapUniqueViolation(err, store.ErrTitleExists)
		}
		if IsForeignKeyViolation(err) {
			log.Warn("assigned user does not exist",
				slog.String("task_id", task.ID.String()),
				slog.String("assigned_to", task.AssignedTo.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, task.AssignedTo)
		}

		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return MapError(err)
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("assigned_to", task.AssignedTo.String()))
	return nil
}

// GetByID implements store.TaskStore.GetByID
// Soft-deleted tasks are reported as not found.
func (s *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, description, status, deadline, assigned_to, created_at, deleted
		FROM tasks
		WHERE id = $1 AND NOT deleted
	`
	var task domain.Task
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Deadline,
		&task.AssignedTo,
		&task.CreatedAt,
		&task.Deleted,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, MapError(err)
	}

	return &task, nil
}

// ListByOwner implements store.TaskStore.ListByOwner
func (s *TaskStore) ListByOwner(ctx context.Context, ownerID uuid.UUID, page store.PageRequest) (*store.TaskPage, error) {
	where := "assigned_to = $1 AND NOT deleted"
	return s.list(ctx, where, []any{ownerID}, page)
}

// ListByStatus implements store.TaskStore.ListByStatus
func (s *TaskStore) ListByStatus(ctx context.Context, ownerID uuid.UUID, status domain.TaskStatus, page store.PageRequest) (*store.TaskPage, error) {
	where := "assigned_to = $1 AND status = $2 AND NOT deleted"
	return s.list(ctx, where, []any{ownerID, status}, page)
}

// Update implements store.TaskStore.Update
// Only title, description, status and deadline are written; assigned_to and
// created_at are immutable after creation.
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		UPDATE tasks
		SET title = $1, description = $2, status = $3, deadline = $4
		WHERE id = $5 AND NOT deleted
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.Status,
		task.Deadline,
		task.ID,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("attempted to update task to duplicate title",
				slog.String("task_id", task.ID.String()),
				slog.String("title", task.Title))
			return MapUniqueViolation(err, store.ErrTitleExists)
		}

		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "task"); err != nil {
		return store.ErrTaskNotFound
	}

	log.Info("task updated", slog.String("task_id", task.ID.String()))
	return nil
}

// Delete implements store.TaskStore.Delete
// The task is marked deleted rather than removed, which also releases its
// title for reuse (the partial unique index only covers live rows).
func (s *TaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE tasks
		SET deleted = TRUE
		WHERE id = $1 AND NOT deleted
	`
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "task"); err != nil {
		return store.ErrTaskNotFound
	}

	log.Info("task deleted", slog.String("task_id", id.String()))
	return nil
}

// WithTx implements store.TaskStore.WithTx
func (s *TaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &TaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// list runs a filtered, counted, paginated query. The WHERE clause and its
// arguments come from the exported listing methods; sort columns are
// whitelisted before being interpolated.
func (s *TaskStore) list(ctx context.Context, where string, args []any, page store.PageRequest) (*store.TaskPage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	countQuery := "SELECT COUNT(*) FROM tasks WHERE " + where
	var total int64
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("failed to count tasks",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	sortColumn, ok := taskSortColumns[page.SortBy]
	if !ok {
		sortColumn = "created_at"
	}
	sortDir := "ASC"
	if page.SortDir == store.SortDesc {
		sortDir = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT id, title, description, status, deadline, assigned_to, created_at, deleted
		FROM tasks
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, where, sortColumn, sortDir, len(args)+1, len(args)+2)

	rows, err := s.db.QueryContext(ctx, query, append(args, page.Limit, page.Offset)...)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	tasks := make([]*domain.Task, 0, page.Limit)
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.Status,
			&task.Deadline,
			&task.AssignedTo,
			&task.CreatedAt,
			&task.Deleted,
		); err != nil {
			log.Error("failed to scan task row",
				slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		tasks = append(tasks, &task)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return &store.TaskPage{
		Tasks:  tasks,
		Total:  total,
		Offset: page.Offset,
		Limit:  page.Limit,
	}, nil
}
