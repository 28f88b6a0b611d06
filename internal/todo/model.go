package todo

import (
	"time"

	"github.com/reimoyisuki/ToDoList/internal/group/membership"
)

// Status represents the lifecycle state of a todo
type Status string

const (
	StatusTodo     Status = "todo"
	StatusOngoing  Status = "ongoing"
	StatusFinished Status = "finished"
)

// Severity bounds; 1 is most severe
const (
	SeverityMin     = 1
	SeverityMax     = 3
	SeverityDefault = 2
)

// Todo represents a task, scoped to exactly one of a user (personal) or a
// group (shared)
type Todo struct {
	ID            int64     `json:"id"`
	UserID        *int64    `json:"user_id,omitempty"`
	GroupID       *int64    `json:"group_id,omitempty"`
	Content       string    `json:"content"`
	Severity      int       `json:"severity"`
	Status        Status    `json:"status"`
	CreatedBy     int64     `json:"created_by"`
	LastUpdatedBy *int64    `json:"last_updated_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Scope returns the todo's ownership scope for authorization decisions
func (t *Todo) Scope() membership.TodoScope {
	return membership.TodoScope{
		UserID:    t.UserID,
		GroupID:   t.GroupID,
		CreatedBy: t.CreatedBy,
	}
}

// Personal reports whether the todo belongs to a single user
func (t *Todo) Personal() bool {
	return t.GroupID == nil
}
