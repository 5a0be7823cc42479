package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/taskmgr/task-manager-api/internal/api/shared"
	"github.com/taskmgr/task-manager-api/internal/service"
	"github.com/taskmgr/task-manager-api/internal/store"
)

// UserHandler handles user registration.
type UserHandler struct {
	userService service.UserService
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(userService service.UserService, log *slog.Logger) *UserHandler {
	if log == nil {
		log = slog.Default()
	}
	return &UserHandler{
		userService: userService,
		validator:   validator.New(),
		logger:      log.With("component", "user_handler"),
	}
}

// Register handles POST /user/register.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := h.userService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "User already exists")
			return
		}
		status := MapErrorToStatusCode(err)
		if status == http.StatusInternalServerError {
			shared.RespondWithErrorAndLog(w, r, status, "Failed to register user", err)
			return
		}
		shared.RespondWithError(w, r, status, GetSafeErrorMessage(err))
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, shared.MessageResponse{
		Message: fmt.Sprintf("User %s created.", user.Username),
	})
}
