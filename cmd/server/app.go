package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/taskmgr/task-manager-api/internal/config"
	"github.com/taskmgr/task-manager-api/internal/platform/logger"
	"github.com/taskmgr/task-manager-api/internal/platform/postgres"
	"github.com/taskmgr/task-manager-api/internal/service"
	"github.com/taskmgr/task-manager-api/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
)

// application bundles the configured dependencies of the server process.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	jwtService    auth.JWTService
	authenticator *auth.Authenticator
	userService   service.UserService
	taskService   service.TaskService
}

// newApplication loads configuration, sets up logging, opens the database,
// runs migrations and wires the service graph.
func newApplication() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := openDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, appLogger); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			appLogger.Error("failed to close database", "error", closeErr)
		}
		return nil, err
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			appLogger.Error("failed to close database", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	userStore := postgres.NewUserStore(db, appLogger)
	taskStore := postgres.NewTaskStore(db, appLogger)

	return &application{
		config:        cfg,
		logger:        appLogger,
		db:            db,
		jwtService:    jwtService,
		authenticator: auth.NewAuthenticator(userStore, hasher, appLogger),
		userService:   service.NewUserService(userStore, hasher, db, appLogger),
		taskService:   service.NewTaskService(taskStore, userStore, db, appLogger),
	}, nil
}

// cleanup releases process-wide resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", "error", err)
		}
	}
}
