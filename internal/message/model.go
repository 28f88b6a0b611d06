package message

import "time"

// Message represents a group chat entry. Messages are immutable after
// creation except for growth of the ReadBy set.
type Message struct {
	ID             int64     `json:"id"`
	GroupID        int64     `json:"group_id"`
	SenderID       int64     `json:"sender_id"`
	SenderUsername string    `json:"sender_username,omitempty"` // populated from JOIN
	Content        string    `json:"content"`
	ReadBy         []int64   `json:"read_by"`
	CreatedAt      time.Time `json:"created_at"`
}

// SenderActivity is one row of the most-active-senders aggregation
type SenderActivity struct {
	SenderID      int64     `json:"sender_id"`
	Username      string    `json:"username"`
	MessageCount  int       `json:"message_count"`
	LastMessageAt time.Time `json:"last_message_at"`
}
