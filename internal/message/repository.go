package message

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// Repository handles message data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new message repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new message with the sender as the only reader
func (r *Repository) Create(ctx context.Context, groupID, senderID int64, content string) (*Message, error) {
	query := `
		INSERT INTO messages (group_id, sender_id, content, read_by)
		VALUES ($1, $2, $3, ARRAY[$2]::bigint[])
		RETURNING id, group_id, sender_id, content, read_by, created_at
	`

	message := &Message{}
	err := r.db.QueryRowContext(ctx, query, groupID, senderID, content).Scan(
		&message.ID,
		&message.GroupID,
		&message.SenderID,
		&message.Content,
		pq.Array(&message.ReadBy),
		&message.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	return message, nil
}

// Recent retrieves the newest messages of a group, newest first, bounded by
// limit. Callers reverse the result for chronological presentation.
func (r *Repository) Recent(ctx context.Context, groupID int64, limit int) ([]*Message, error) {
	query := `
		SELECT m.id, m.group_id, m.sender_id, u.username, m.content, m.read_by, m.created_at
		FROM messages m
		JOIN users u ON m.sender_id = u.id
		WHERE m.group_id = $1
		ORDER BY m.created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, groupID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []*Message
	for rows.Next() {
		message := &Message{}
		if err := rows.Scan(
			&message.ID,
			&message.GroupID,
			&message.SenderID,
			&message.SenderUsername,
			&message.Content,
			pq.Array(&message.ReadBy),
			&message.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, message)
	}

	return messages, rows.Err()
}

// MostActiveSenders aggregates message counts per sender within a group,
// ordered by count descending with ties broken by the most recent message
func (r *Repository) MostActiveSenders(ctx context.Context, groupID int64, topN int) ([]*SenderActivity, error) {
	query := `
		SELECT m.sender_id, u.username, COUNT(*) AS message_count, MAX(m.created_at) AS last_message_at
		FROM messages m
		JOIN users u ON m.sender_id = u.id
		WHERE m.group_id = $1
		GROUP BY m.sender_id, u.username
		ORDER BY message_count DESC, last_message_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, groupID, topN)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate senders: %w", err)
	}
	defer rows.Close()

	var activities []*SenderActivity
	for rows.Next() {
		activity := &SenderActivity{}
		if err := rows.Scan(
			&activity.SenderID,
			&activity.Username,
			&activity.MessageCount,
			&activity.LastMessageAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sender activity: %w", err)
		}
		activities = append(activities, activity)
	}

	return activities, rows.Err()
}

// MarkRead adds the reader to every message of the group they have not read
func (r *Repository) MarkRead(ctx context.Context, groupID, readerID int64) error {
	query := `
		UPDATE messages
		SET read_by = array_append(read_by, $2)
		WHERE group_id = $1 AND NOT (read_by @> ARRAY[$2]::bigint[])
	`

	if _, err := r.db.ExecContext(ctx, query, groupID, readerID); err != nil {
		return fmt.Errorf("failed to mark messages read: %w", err)
	}

	return nil
}
