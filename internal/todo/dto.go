package todo

import (
	"strings"
	"time"
)

// CreateTodoRequest represents the request to create a todo. Exactly one of
// UserID or GroupID must be set.
type CreateTodoRequest struct {
	UserID   *int64 `json:"user_id,omitempty"`
	GroupID  *int64 `json:"group_id,omitempty"`
	Content  string `json:"content" validate:"required"`
	Severity *int   `json:"severity,omitempty"`
}

// Validate checks the request and fills in the default severity
func (r *CreateTodoRequest) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return ErrEmptyContent
	}
	if (r.UserID == nil) == (r.GroupID == nil) {
		return ErrInvalidScope
	}
	if r.Severity == nil {
		severity := SeverityDefault
		r.Severity = &severity
	}
	if *r.Severity < SeverityMin || *r.Severity > SeverityMax {
		return ErrInvalidSeverity
	}
	return nil
}

// UpdateTodoRequest represents the request to update a todo
type UpdateTodoRequest struct {
	Content  *string `json:"content,omitempty"`
	Severity *int    `json:"severity,omitempty"`
	Status   *Status `json:"status,omitempty"`
}

// Validate checks the fields that are present
func (r *UpdateTodoRequest) Validate() error {
	if r.Content != nil && strings.TrimSpace(*r.Content) == "" {
		return ErrEmptyContent
	}
	if r.Severity != nil && (*r.Severity < SeverityMin || *r.Severity > SeverityMax) {
		return ErrInvalidSeverity
	}
	if r.Status != nil {
		switch *r.Status {
		case StatusTodo, StatusOngoing, StatusFinished:
		default:
			return ErrInvalidStatus
		}
	}
	return nil
}

// TodoResponse represents the response for a todo
type TodoResponse struct {
	ID            int64  `json:"id"`
	UserID        *int64 `json:"user_id,omitempty"`
	GroupID       *int64 `json:"group_id,omitempty"`
	Content       string `json:"content"`
	Severity      int    `json:"severity"`
	Status        Status `json:"status"`
	CreatedBy     int64  `json:"created_by"`
	LastUpdatedBy *int64 `json:"last_updated_by,omitempty"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// ToResponse converts a Todo model to a TodoResponse DTO
func (t *Todo) ToResponse() *TodoResponse {
	return &TodoResponse{
		ID:            t.ID,
		UserID:        t.UserID,
		GroupID:       t.GroupID,
		Content:       t.Content,
		Severity:      t.Severity,
		Status:        t.Status,
		CreatedBy:     t.CreatedBy,
		LastUpdatedBy: t.LastUpdatedBy,
		CreatedAt:     t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     t.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
