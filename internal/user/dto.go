package user

import "time"

// ChangeUsernameRequest represents the request to rename a user
type ChangeUsernameRequest struct {
	NewUsername string `json:"new_username" validate:"required,min=3,max=50"`
}

// UserResponse represents the response for a single user
type UserResponse struct {
	ID           int64   `json:"id"`
	Username     string  `json:"username"`
	Email        string  `json:"email"`
	Todos        []int64 `json:"todos"`
	Groups       []int64 `json:"groups"`
	LastActiveAt string  `json:"last_active_at"`
	IsOnline     bool    `json:"is_online"`
	CreatedAt    string  `json:"created_at"`
}

// ToResponse converts a User model to a UserResponse DTO
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Todos:        u.Todos,
		Groups:       u.Groups,
		LastActiveAt: u.LastActiveAt.UTC().Format(time.RFC3339),
		IsOnline:     u.IsOnline,
		CreatedAt:    u.CreatedAt.UTC().Format(time.RFC3339),
	}
}
