package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus enumerates the lifecycle states of a task.
type TaskStatus string

// Valid task statuses.
const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

// ParseTaskStatus converts a raw string into a TaskStatus.
// Returns ErrInvalidStatus for anything outside the closed set.
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch TaskStatus(s) {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return TaskStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// IsValid reports whether the status is one of the known values.
func (s TaskStatus) IsValid() bool {
	_, err := ParseTaskStatus(string(s))
	return err == nil
}

// Task represents a unit of assigned work. Title is unique among
// non-deleted tasks; that invariant is enforced by the store through a
// partial unique index, not by application-level pre-checks.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	Deadline    time.Time  `json:"deadline"`
	AssignedTo  uuid.UUID  `json:"assigned_to"`
	CreatedAt   time.Time  `json:"created_at"`
	Deleted     bool       `json:"-"`
}

// NewTask creates a Task with a freshly generated ID and creation timestamp.
// Returns an error if validation fails.
func NewTask(title, description string, status TaskStatus, deadline time.Time, assignedTo uuid.UUID) (*Task, error) {
	task := &Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Status:      status,
		Deadline:    deadline,
		AssignedTo:  assignedTo,
		CreatedAt:   time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks the task's structural invariants. Deadline freshness is
// a point-in-time rule and is checked separately via ValidateDeadline so
// that tasks loaded from the store with past deadlines remain valid.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}

	if t.Title == "" {
		return ErrEmptyTitle
	}

	if !t.Status.IsValid() {
		return ErrInvalidStatus
	}

	if t.AssignedTo == uuid.Nil {
		return NewValidationError("assigned_to", "cannot be empty", ErrInvalidID)
	}

	return nil
}

// ValidateDeadline checks that the deadline is strictly later than now.
// The same rule applies at creation and on every update.
func ValidateDeadline(deadline, now time.Time) error {
	if !deadline.After(now) {
		return ErrPastDeadline
	}
	return nil
}
