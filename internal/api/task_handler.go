package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/taskmgr/task-manager-api/internal/api/shared"
	"github.com/taskmgr/task-manager-api/internal/domain"
	"github.com/taskmgr/task-manager-api/internal/service"
)

// TaskHandler handles the task management endpoints. Every handler resolves
// the acting user from the request context populated by the auth middleware;
// listing endpoints are scoped to that user.
type TaskHandler struct {
	taskService service.TaskService
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskService service.TaskService, log *slog.Logger) *TaskHandler {
	if log == nil {
		log = slog.Default()
	}
	return &TaskHandler{
		taskService: taskService,
		validator:   validator.New(),
		logger:      log.With("component", "task_handler"),
	}
}

// List handles GET /tasks?page,size,sort.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	page, err := parsePageRequest(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	tasks, err := h.taskService.ListByOwner(r.Context(), userID, page)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to list tasks", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// Filter handles GET /tasks/filter?status=.
func (h *TaskHandler) Filter(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	status, err := domain.ParseTaskStatus(r.URL.Query().Get("status"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task status")
		return
	}

	page, err := parsePageRequest(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	tasks, err := h.taskService.ListByStatus(r.Context(), userID, status, page)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to list tasks", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// Get handles GET /tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	if _, ok := shared.UserIDFromContext(r.Context()); !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.taskService.GetByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	if _, ok := shared.UserIDFromContext(r.Context()); !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	req, ok := h.decodeTaskRequest(w, r)
	if !ok {
		return
	}

	if req.AssignedTo == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid assigned_to: required field")
		return
	}

	task, err := h.taskService.Create(r.Context(), &service.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		Deadline:    req.Deadline,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, shared.MessageResponse{
		Message: fmt.Sprintf("Task %s created.", task.Title),
	})
}

// Update handles PUT /tasks/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	if _, ok := shared.UserIDFromContext(r.Context()); !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	req, ok := h.decodeTaskRequest(w, r)
	if !ok {
		return
	}

	err = h.taskService.Update(r.Context(), id, &service.UpdateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		Deadline:    req.Deadline,
	})
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, shared.MessageResponse{
		Message: "Task updated.",
	})
}

// Delete handles DELETE /tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := shared.UserIDFromContext(r.Context()); !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.taskService.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, shared.MessageResponse{
		Message: "Task deleted.",
	})
}

// decodeTaskRequest decodes and validates a task payload, writing the error
// response itself when something is wrong.
func (h *TaskHandler) decodeTaskRequest(w http.ResponseWriter, r *http.Request) (*TaskRequest, bool) {
	var req TaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return nil, false
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return nil, false
	}

	return &req, true
}

// respondServiceError maps a service error to its status code and safe
// message, logging the details when it is unexpected.
func (h *TaskHandler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	if status == http.StatusInternalServerError {
		shared.RespondWithErrorAndLog(w, r, status, "An unexpected error occurred", err)
		return
	}
	shared.RespondWithError(w, r, status, GetSafeErrorMessage(err))
}
