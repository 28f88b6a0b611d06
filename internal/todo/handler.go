package todo

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/reimoyisuki/ToDoList/pkg/middleware"
	"github.com/reimoyisuki/ToDoList/pkg/response"
)

// Handler handles HTTP requests for todo operations
type Handler struct {
	service *Service
}

// NewHandler creates a new todo handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for todo endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.ListMine)
	r.Get("/group/{groupId}", h.ListForGroup)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}

func writeTodoError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrEmptyContent),
		errors.Is(err, ErrInvalidSeverity),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrInvalidScope):
		response.BadRequest(w, err.Error())
	case errors.Is(err, ErrTodoNotFound), errors.Is(err, ErrGroupNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrNotAuthorized):
		response.Forbidden(w, err.Error())
	default:
		response.InternalError(w, fallback)
	}
}

// Create handles POST /todos
// @Summary      Create a todo
// @Description  Create a personal or group-scoped todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        request body CreateTodoRequest true "Todo creation request"
// @Success      201 {object} response.APIResponse{data=TodoResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Router       /todos [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	creatorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	todo, err := h.service.Create(r.Context(), creatorID, &req)
	if err != nil {
		writeTodoError(w, err, "Failed to create todo")
		return
	}

	response.JSONMessage(w, http.StatusCreated, "Successfully created todo", todo.ToResponse())
}

// ListMine handles GET /todos
// @Summary      List my todos
// @Description  Get the caller's personal todos, most severe and newest first
// @Tags         todos
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]TodoResponse}
// @Router       /todos [get]
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	todos, err := h.service.ListForUser(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Failed to list todos")
		return
	}

	response.JSON(w, http.StatusOK, toResponses(todos))
}

// ListForGroup handles GET /todos/group/{groupId}
// @Summary      List group todos
// @Description  Get a group's todos, most severe and newest first; members only
// @Tags         todos
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]TodoResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /todos/group/{groupId} [get]
func (h *Handler) ListForGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	requesterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	todos, err := h.service.ListForGroup(r.Context(), groupID, requesterID)
	if err != nil {
		writeTodoError(w, err, "Failed to list group todos")
		return
	}

	response.JSON(w, http.StatusOK, toResponses(todos))
}

// Update handles PUT /todos/{id}
// @Summary      Update a todo
// @Description  Update content, severity or status of a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        id path int true "Todo ID"
// @Param        request body UpdateTodoRequest true "Fields to update"
// @Success      200 {object} response.APIResponse{data=TodoResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /todos/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid todo ID")
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req UpdateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	todo, err := h.service.Update(r.Context(), id, actorID, &req)
	if err != nil {
		writeTodoError(w, err, "Failed to update todo")
		return
	}

	response.JSONMessage(w, http.StatusOK, "Todo updated successfully", todo.ToResponse())
}

// Delete handles DELETE /todos/{id}
// @Summary      Delete a todo
// @Description  Delete a todo; group todos require admin rights or authorship
// @Tags         todos
// @Produce      json
// @Param        id path int true "Todo ID"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /todos/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid todo ID")
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	if err := h.service.Delete(r.Context(), id, actorID); err != nil {
		writeTodoError(w, err, "Failed to delete todo")
		return
	}

	response.JSONMessage(w, http.StatusOK, "Todo deleted successfully", nil)
}

func toResponses(todos []*Todo) []*TodoResponse {
	responses := make([]*TodoResponse, len(todos))
	for i, t := range todos {
		responses[i] = t.ToResponse()
	}
	return responses
}
