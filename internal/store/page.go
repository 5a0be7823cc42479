package store

import "github.com/taskmgr/task-manager-api/internal/domain"

// Sort directions accepted in a PageRequest.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// PageRequest describes the slice of a result set the caller wants.
// The core treats it as opaque and passes it through to the store.
type PageRequest struct {
	Offset  int
	Limit   int
	SortBy  string
	SortDir string
}

// TaskPage is a bounded, ordered slice of tasks plus paging metadata.
type TaskPage struct {
	Tasks  []*domain.Task `json:"tasks"`
	Total  int64          `json:"total"`
	Offset int            `json:"offset"`
	Limit  int            `json:"limit"`
}
