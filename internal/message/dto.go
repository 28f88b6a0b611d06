package message

import "time"

// SendMessageRequest represents the request to post a message to a group
type SendMessageRequest struct {
	GroupID int64  `json:"group_id" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// MessageResponse represents the response for a message
type MessageResponse struct {
	ID             int64   `json:"id"`
	GroupID        int64   `json:"group_id"`
	SenderID       int64   `json:"sender_id"`
	SenderUsername string  `json:"sender_username,omitempty"`
	Content        string  `json:"content"`
	ReadBy         []int64 `json:"read_by"`
	CreatedAt      string  `json:"created_at"`
}

// SenderActivityResponse represents one sender in the most-active listing
type SenderActivityResponse struct {
	SenderID      int64  `json:"sender_id"`
	Username      string `json:"username"`
	MessageCount  int    `json:"message_count"`
	LastMessageAt string `json:"last_message_at"`
}

// ToResponse converts a Message model to a MessageResponse DTO
func (m *Message) ToResponse() *MessageResponse {
	return &MessageResponse{
		ID:             m.ID,
		GroupID:        m.GroupID,
		SenderID:       m.SenderID,
		SenderUsername: m.SenderUsername,
		Content:        m.Content,
		ReadBy:         m.ReadBy,
		CreatedAt:      m.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ToResponse converts a SenderActivity model to its DTO
func (a *SenderActivity) ToResponse() *SenderActivityResponse {
	return &SenderActivityResponse{
		SenderID:      a.SenderID,
		Username:      a.Username,
		MessageCount:  a.MessageCount,
		LastMessageAt: a.LastMessageAt.UTC().Format(time.RFC3339),
	}
}
