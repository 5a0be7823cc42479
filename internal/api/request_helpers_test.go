package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmgr/task-manager-api/internal/domain"
	"github.com/taskmgr/task-manager-api/internal/store"
)

// withChiParam builds a request carrying a chi URL parameter, the way the
// router would present it to a handler.
func withChiParam(t *testing.T, name, value string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/tasks/"+value, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(name, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestGetPathUUID(t *testing.T) {
	t.Parallel()

	t.Run("valid uuid", func(t *testing.T) {
		t.Parallel()
		want := uuid.New()
		got, err := getPathUUID(withChiParam(t, "id", want.String()), "id")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("malformed uuid", func(t *testing.T) {
		t.Parallel()
		_, err := getPathUUID(withChiParam(t, "id", "not-a-uuid"), "id")
		assert.ErrorIs(t, err, domain.ErrInvalidID)
	})

	t.Run("missing parameter", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		rctx := chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
		_, err := getPathUUID(r, "id")
		assert.ErrorIs(t, err, domain.ErrInvalidID)
	})
}

func TestParsePageRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		query   string
		want    store.PageRequest
		wantErr bool
	}{
		{
			name:  "defaults",
			query: "",
			want:  store.PageRequest{Offset: 0, Limit: 10, SortBy: "created_at", SortDir: store.SortAsc},
		},
		{
			name:  "explicit page and size",
			query: "page=2&size=25",
			want:  store.PageRequest{Offset: 50, Limit: 25, SortBy: "created_at", SortDir: store.SortAsc},
		},
		{
			name:  "page offset uses requested size",
			query: "page=3",
			want:  store.PageRequest{Offset: 30, Limit: 10, SortBy: "created_at", SortDir: store.SortAsc},
		},
		{
			name:  "ascending sort by field",
			query: "sort=deadline",
			want:  store.PageRequest{Offset: 0, Limit: 10, SortBy: "deadline", SortDir: store.SortAsc},
		},
		{
			name:  "descending sort",
			query: "sort=deadline,desc",
			want:  store.PageRequest{Offset: 0, Limit: 10, SortBy: "deadline", SortDir: store.SortDesc},
		},
		{name: "negative page", query: "page=-1", wantErr: true},
		{name: "non-numeric page", query: "page=abc", wantErr: true},
		{name: "zero size", query: "size=0", wantErr: true},
		{name: "oversized page size", query: "size=101", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/tasks?"+tt.query, nil)
			got, err := parsePageRequest(r)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
