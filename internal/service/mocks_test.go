package service

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"

	"github.com/taskmgr/task-manager-api/internal/domain"
	"github.com/taskmgr/task-manager-api/internal/store"
)

// passThroughTx replaces store.RunInTransaction in tests so service logic
// runs without a live database. The nil *sql.Tx is fine because the mock
// stores return themselves from WithTx.
func passThroughTx(ctx context.Context, _ *sql.DB, fn store.TxFn) error {
	return fn(ctx, nil)
}

// mockUserStore is an in-memory store.UserStore. Error fields, when set,
// override the corresponding operation.
type mockUserStore struct {
	mu        sync.Mutex
	users     map[uuid.UUID]*domain.User
	createErr error
	getErr    error
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[uuid.UUID]*domain.User)}
}

func (m *mockUserStore) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	for _, u := range m.users {
		if u.Username == user.Username {
			return store.ErrUsernameExists
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (m *mockUserStore) WithTx(tx *sql.Tx) store.UserStore { return m }

// mockTaskStore is an in-memory store.TaskStore honoring the soft-delete and
// live-title-uniqueness semantics of the real implementation.
type mockTaskStore struct {
	mu        sync.Mutex
	tasks     map[uuid.UUID]*domain.Task
	createErr error
	updateErr error
	listErr   error
}

func newMockTaskStore() *mockTaskStore {
	return &mockTaskStore{tasks: make(map[uuid.UUID]*domain.Task)}
}

func (m *mockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	for _, t := range m.tasks {
		if !t.Deleted && t.Title == task.Title {
			return store.ErrTitleExists
		}
	}
	copied := *task
	m.tasks[task.ID] = &copied
	return nil
}

func (m *mockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok || t.Deleted {
		return nil, store.ErrTaskNotFound
	}
	copied := *t
	return &copied, nil
}

func (m *mockTaskStore) ListByOwner(ctx context.Context, ownerID uuid.UUID, page store.PageRequest) (*store.TaskPage, error) {
	return m.list(ownerID, "", page)
}

func (m *mockTaskStore) ListByStatus(ctx context.Context, ownerID uuid.UUID, status domain.TaskStatus, page store.PageRequest) (*store.TaskPage, error) {
	return m.list(ownerID, status, page)
}

func (m *mockTaskStore) list(ownerID uuid.UUID, status domain.TaskStatus, page store.PageRequest) (*store.TaskPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}

	var matched []*domain.Task
	for _, t := range m.tasks {
		if t.Deleted || t.AssignedTo != ownerID {
			continue
		}
		if status != "" && t.Status != status {
			continue
		}
		copied := *t
		matched = append(matched, &copied)
	}

	total := int64(len(matched))
	start := page.Offset
	if start > len(matched) {
		start = len(matched)
	}
	end := start + page.Limit
	if end > len(matched) {
		end = len(matched)
	}

	return &store.TaskPage{
		Tasks:  matched[start:end],
		Total:  total,
		Offset: page.Offset,
		Limit:  page.Limit,
	}, nil
}

func (m *mockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	existing, ok := m.tasks[task.ID]
	if !ok || existing.Deleted {
		return store.ErrTaskNotFound
	}
	for id, t := range m.tasks {
		if id != task.ID && !t.Deleted && t.Title == task.Title {
			return store.ErrTitleExists
		}
	}
	copied := *task
	copied.CreatedAt = existing.CreatedAt
	m.tasks[task.ID] = &copied
	return nil
}

func (m *mockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok || t.Deleted {
		return store.ErrTaskNotFound
	}
	t.Deleted = true
	return nil
}

func (m *mockTaskStore) WithTx(tx *sql.Tx) store.TaskStore { return m }
