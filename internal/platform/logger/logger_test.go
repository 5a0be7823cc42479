package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmgr/task-manager-api/internal/config"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{name: "debug level", level: "debug"},
		{name: "info level", level: "info"},
		{name: "warn level", level: "warn"},
		{name: "error level", level: "error"},
		{name: "invalid level falls back to info", level: "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := Setup(config.ServerConfig{Port: 8080, LogLevel: tt.level})
			require.NoError(t, err)
			assert.NotNil(t, log)
		})
	}
}

func TestFromContext(t *testing.T) {
	t.Run("returns the stored logger", func(t *testing.T) {
		stored := slog.Default().With("request", "abc123")
		ctx := WithContext(context.Background(), stored)
		assert.Same(t, stored, FromContext(ctx))
	})

	t.Run("falls back to the default logger", func(t *testing.T) {
		assert.Same(t, slog.Default(), FromContext(context.Background()))
	})
}

func TestFromContextOrDefault(t *testing.T) {
	fallback := slog.Default().With("component", "test")

	t.Run("prefers the stored logger", func(t *testing.T) {
		stored := slog.Default().With("request", "abc123")
		ctx := WithContext(context.Background(), stored)
		assert.Same(t, stored, FromContextOrDefault(ctx, fallback))
	})

	t.Run("uses the provided default", func(t *testing.T) {
		assert.Same(t, fallback, FromContextOrDefault(context.Background(), fallback))
	})

	t.Run("nil default falls back to slog default", func(t *testing.T) {
		assert.Same(t, slog.Default(), FromContextOrDefault(context.Background(), nil))
	})
}
