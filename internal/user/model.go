package user

import "time"

// User represents a user in the system. PasswordHash never leaves the server.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Todos        []int64   `json:"todos"`
	Groups       []int64   `json:"groups"`
	LastActiveAt time.Time `json:"last_active_at"`
	IsOnline     bool      `json:"is_online"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
