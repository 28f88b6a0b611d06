package group

import "time"

// MemberResultStatus is the per-item outcome of a batch member addition
type MemberResultStatus string

const (
	MemberResultSuccess MemberResultStatus = "success"
	MemberResultFailed  MemberResultStatus = "failed"
	MemberResultSkipped MemberResultStatus = "skipped"
)

// CreateGroupRequest represents the request to create a new group
type CreateGroupRequest struct {
	Name            string   `json:"name" validate:"required,min=1,max=100"`
	Description     *string  `json:"description,omitempty"`
	MemberUsernames []string `json:"member_usernames,omitempty"`
}

// AddMembersRequest represents the request to add members to a group
type AddMembersRequest struct {
	Usernames []string `json:"usernames" validate:"required"`
}

// MemberResult reports the outcome for one username in a batch addition
type MemberResult struct {
	Username string             `json:"username"`
	Status   MemberResultStatus `json:"status"`
	Message  string             `json:"message,omitempty"`
}

// MemberDetail is a resolved member reference in a group response
type MemberDetail struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// GroupResponse represents the response for a group
type GroupResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	CreatedBy   int64           `json:"created_by"`
	Members     []int64         `json:"members"`
	Admins      []int64         `json:"admins"`
	ChatEnabled bool            `json:"chat_enabled"`
	CreatedAt   string          `json:"created_at"`
	MemberList  []*MemberDetail `json:"member_list,omitempty"`
	AdminList   []*MemberDetail `json:"admin_list,omitempty"`
}

// ToResponse converts a Group model to a GroupResponse DTO
func (g *Group) ToResponse() *GroupResponse {
	return &GroupResponse{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		CreatedBy:   g.CreatedBy,
		Members:     g.Members,
		Admins:      g.Admins,
		ChatEnabled: g.ChatEnabled,
		CreatedAt:   g.CreatedAt.UTC().Format(time.RFC3339),
	}
}
