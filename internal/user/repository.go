package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const userColumns = "id, username, email, password_hash, todos, groups, last_active_at, is_online, created_at, updated_at"

// Repository handles user data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new user repository with database dependency injected
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func scanUser(row interface{ Scan(...interface{}) error }) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		pq.Array(&user.Todos),
		pq.Array(&user.Groups),
		&user.LastActiveAt,
		&user.IsOnline,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Create inserts a new user into the database
func (r *Repository) Create(ctx context.Context, username, email, passwordHash string) (*User, error) {
	query := `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRowContext(ctx, query, username, email, passwordHash))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by their ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetByUsername retrieves a user by their username
func (r *Repository) GetByUsername(ctx context.Context, username string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}

// GetByEmailOrUsername retrieves a user whose email or username matches the identifier
func (r *Repository) GetByEmailOrUsername(ctx context.Context, identifier string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 OR username = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, identifier))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by identifier: %w", err)
	}

	return user, nil
}

// List retrieves all users, most recently active first
func (r *Repository) List(ctx context.Context) ([]*User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY last_active_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// UpdateUsername renames a user
func (r *Repository) UpdateUsername(ctx context.Context, id int64, username string) (*User, error) {
	query := `
		UPDATE users
		SET username = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id, username))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update username: %w", err)
	}

	return user, nil
}

// Delete removes a user from the database. The user is pulled from every
// group's member and admin sets in the same transaction so the arrays never
// hold a dangling id. Rows that still reference the user through a
// restricting foreign key (created groups, authored group todos) surface as
// ErrUserOwnsContent.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	depart := `
		UPDATE groups
		SET members = array_remove(members, $1), admins = array_remove(admins, $1)
		WHERE members @> ARRAY[$1]::bigint[]
	`
	if _, err := tx.ExecContext(ctx, depart, id); err != nil {
		return fmt.Errorf("failed to remove group memberships: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrUserOwnsContent
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit user deletion: %w", err)
	}

	return nil
}

// isForeignKeyViolation reports whether err is a Postgres foreign key
// violation (SQLSTATE 23503)
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}

// AddGroupRef adds a group id to the user's group set if not already present
func (r *Repository) AddGroupRef(ctx context.Context, userID, groupID int64) error {
	query := `
		UPDATE users
		SET groups = array_append(groups, $2), updated_at = now()
		WHERE id = $1 AND NOT (groups @> ARRAY[$2]::bigint[])
	`

	if _, err := r.db.ExecContext(ctx, query, userID, groupID); err != nil {
		return fmt.Errorf("failed to add group ref: %w", err)
	}

	return nil
}

// RemoveGroupRef removes a group id from the user's group set
func (r *Repository) RemoveGroupRef(ctx context.Context, userID, groupID int64) error {
	query := `
		UPDATE users
		SET groups = array_remove(groups, $2), updated_at = now()
		WHERE id = $1
	`

	if _, err := r.db.ExecContext(ctx, query, userID, groupID); err != nil {
		return fmt.Errorf("failed to remove group ref: %w", err)
	}

	return nil
}

// AddTodoRef adds a todo id to the user's todo set if not already present
func (r *Repository) AddTodoRef(ctx context.Context, userID, todoID int64) error {
	query := `
		UPDATE users
		SET todos = array_append(todos, $2), updated_at = now()
		WHERE id = $1 AND NOT (todos @> ARRAY[$2]::bigint[])
	`

	if _, err := r.db.ExecContext(ctx, query, userID, todoID); err != nil {
		return fmt.Errorf("failed to add todo ref: %w", err)
	}

	return nil
}

// RemoveTodoRef removes a todo id from the user's todo set
func (r *Repository) RemoveTodoRef(ctx context.Context, userID, todoID int64) error {
	query := `
		UPDATE users
		SET todos = array_remove(todos, $2), updated_at = now()
		WHERE id = $1
	`

	if _, err := r.db.ExecContext(ctx, query, userID, todoID); err != nil {
		return fmt.Errorf("failed to remove todo ref: %w", err)
	}

	return nil
}

// TouchActivity updates the user's last activity timestamp
func (r *Repository) TouchActivity(ctx context.Context, id int64) error {
	query := `UPDATE users SET last_active_at = now() WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to touch activity: %w", err)
	}

	return nil
}

// SetOnline flips the user's online flag
func (r *Repository) SetOnline(ctx context.Context, id int64, online bool) error {
	query := `UPDATE users SET is_online = $2 WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id, online); err != nil {
		return fmt.Errorf("failed to set online flag: %w", err)
	}

	return nil
}
