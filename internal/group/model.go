package group

import (
	"time"

	"github.com/reimoyisuki/ToDoList/internal/group/membership"
)

// Group represents a group in the system. Members and Admins mirror the
// group ids stored on each member's user record; every membership mutation
// updates both sides.
type Group struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedBy   int64     `json:"created_by"`
	Members     []int64   `json:"members"`
	Admins      []int64   `json:"admins"`
	ChatEnabled bool      `json:"chat_enabled"`
	CreatedAt   time.Time `json:"created_at"`
}

// Roster returns the group's membership state for authorization decisions
func (g *Group) Roster() membership.Roster {
	return membership.NewRoster(g.CreatedBy, g.Members, g.Admins)
}
