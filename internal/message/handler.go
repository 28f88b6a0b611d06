package message

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/reimoyisuki/ToDoList/pkg/middleware"
	"github.com/reimoyisuki/ToDoList/pkg/response"
)

// Handler handles HTTP requests for message operations
type Handler struct {
	service *Service
}

// NewHandler creates a new message handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for message endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Send)
	r.Get("/{groupId}", h.Recent)
	r.Get("/{groupId}/most-active", h.MostActiveSenders)
	r.Put("/{groupId}/read", h.MarkRead)

	return r
}

func writeMessageError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrGroupNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrNotMember):
		response.Forbidden(w, err.Error())
	case errors.Is(err, ErrEmptyContent), errors.Is(err, ErrChatDisabled):
		response.BadRequest(w, err.Error())
	default:
		response.InternalError(w, fallback)
	}
}

// Send handles POST /messages
// @Summary      Send a message
// @Description  Post a message to a group's chat; members only
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        request body SendMessageRequest true "Message to send"
// @Success      201 {object} response.APIResponse{data=MessageResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Router       /messages [post]
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	senderID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	message, err := h.service.Send(r.Context(), senderID, &req)
	if err != nil {
		writeMessageError(w, err, "Failed to send message")
		return
	}

	response.JSON(w, http.StatusCreated, message.ToResponse())
}

// Recent handles GET /messages/{groupId}
// @Summary      Get recent messages
// @Description  Get the most recent messages of a group in chronological order; members only
// @Tags         messages
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Param        limit query int false "Window size" default(50)
// @Success      200 {object} response.APIResponse{data=[]MessageResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /messages/{groupId} [get]
func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
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

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	messages, err := h.service.Recent(r.Context(), groupID, requesterID, limit)
	if err != nil {
		writeMessageError(w, err, "Failed to get messages")
		return
	}

	messageResponses := make([]*MessageResponse, len(messages))
	for i, m := range messages {
		messageResponses[i] = m.ToResponse()
	}

	response.JSON(w, http.StatusOK, messageResponses)
}

// MostActiveSenders handles GET /messages/{groupId}/most-active
// @Summary      Most active senders
// @Description  Get the group's senders ordered by message count; members only
// @Tags         messages
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Param        top query int false "Number of senders" default(10)
// @Success      200 {object} response.APIResponse{data=[]SenderActivityResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /messages/{groupId}/most-active [get]
func (h *Handler) MostActiveSenders(w http.ResponseWriter, r *http.Request) {
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

	topN, _ := strconv.Atoi(r.URL.Query().Get("top"))

	activities, err := h.service.MostActiveSenders(r.Context(), groupID, requesterID, topN)
	if err != nil {
		writeMessageError(w, err, "Failed to aggregate senders")
		return
	}

	activityResponses := make([]*SenderActivityResponse, len(activities))
	for i, a := range activities {
		activityResponses[i] = a.ToResponse()
	}

	response.JSON(w, http.StatusOK, activityResponses)
}

// MarkRead handles PUT /messages/{groupId}/read
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
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

	if err := h.service.MarkRead(r.Context(), groupID, requesterID); err != nil {
		writeMessageError(w, err, "Failed to mark messages read")
		return
	}

	response.JSONMessage(w, http.StatusOK, "Messages marked as read", nil)
}
