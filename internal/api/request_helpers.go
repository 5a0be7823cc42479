package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/taskmgr/task-manager-api/internal/domain"
	"github.com/taskmgr/task-manager-api/internal/store"
)

// Paging defaults, matching the original API's page size of 10.
const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// getPathUUID extracts a UUID from the URL path parameters.
// Returns domain.ErrInvalidID-wrapped errors when the parameter is missing
// or malformed.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrInvalidID)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// parsePageRequest reads page, size and sort query parameters into a
// store.PageRequest. sort takes the form "field" or "field,desc". Unknown
// sort fields are passed through; the store whitelists them. Malformed
// numeric parameters yield a validation error.
func parsePageRequest(r *http.Request) (store.PageRequest, error) {
	page := store.PageRequest{
		Limit:   defaultPageSize,
		SortBy:  "created_at",
		SortDir: store.SortAsc,
	}

	query := r.URL.Query()

	if raw := query.Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxPageSize {
			return page, domain.NewValidationError("size", "must be between 1 and 100", domain.ErrValidation)
		}
		page.Limit = n
	}

	if raw := query.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return page, domain.NewValidationError("page", "must be a non-negative integer", domain.ErrValidation)
		}
		page.Offset = n * page.Limit
	}

	if raw := query.Get("sort"); raw != "" {
		parts := strings.SplitN(raw, ",", 2)
		page.SortBy = parts[0]
		if len(parts) == 2 && strings.EqualFold(parts[1], "desc") {
			page.SortDir = store.SortDesc
		}
	}

	return page, nil
}
