package todo

import (
	"context"
	"database/sql"
	"fmt"
)

const todoColumns = "id, user_id, group_id, content, severity, status, created_by, last_updated_by, created_at, updated_at"

// Repository handles todo data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new todo repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func scanTodo(row interface{ Scan(...interface{}) error }) (*Todo, error) {
	todo := &Todo{}
	err := row.Scan(
		&todo.ID,
		&todo.UserID,
		&todo.GroupID,
		&todo.Content,
		&todo.Severity,
		&todo.Status,
		&todo.CreatedBy,
		&todo.LastUpdatedBy,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return todo, nil
}

// Create inserts a new todo into the database
func (r *Repository) Create(ctx context.Context, userID, groupID *int64, content string, severity int, createdBy int64) (*Todo, error) {
	query := `
		INSERT INTO todos (user_id, group_id, content, severity, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + todoColumns

	todo, err := scanTodo(r.db.QueryRowContext(ctx, query, userID, groupID, content, severity, createdBy))
	if err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	return todo, nil
}

// GetByID retrieves a todo by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = $1`

	todo, err := scanTodo(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}

	return todo, nil
}

// ListForUser retrieves a user's personal todos, most severe and newest first
func (r *Repository) ListForUser(ctx context.Context, userID int64) ([]*Todo, error) {
	query := `
		SELECT ` + todoColumns + `
		FROM todos
		WHERE user_id = $1
		ORDER BY severity ASC, created_at DESC
	`

	return r.list(ctx, query, userID)
}

// ListForGroup retrieves a group's todos, most severe and newest first
func (r *Repository) ListForGroup(ctx context.Context, groupID int64) ([]*Todo, error) {
	query := `
		SELECT ` + todoColumns + `
		FROM todos
		WHERE group_id = $1
		ORDER BY severity ASC, created_at DESC
	`

	return r.list(ctx, query, groupID)
}

func (r *Repository) list(ctx context.Context, query string, arg int64) ([]*Todo, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	var todos []*Todo
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, todo)
	}

	return todos, rows.Err()
}

// Update modifies an existing todo and records who last touched it
func (r *Repository) Update(ctx context.Context, id int64, req *UpdateTodoRequest, actorID int64) (*Todo, error) {
	query := `
		UPDATE todos
		SET content = COALESCE($2, content),
		    severity = COALESCE($3, severity),
		    status = COALESCE($4, status),
		    last_updated_by = $5,
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + todoColumns

	todo, err := scanTodo(r.db.QueryRowContext(ctx, query, id, req.Content, req.Severity, req.Status, actorID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	return todo, nil
}

// Delete removes a todo from the database
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM todos WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("todo not found")
	}

	return nil
}
