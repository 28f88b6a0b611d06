package group

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

const groupColumns = "id, name, description, created_by, members, admins, chat_enabled, created_at"

// Repository handles group data persistence. Membership mutations are dual
// writes: the group's member set and each user's group set are updated in a
// single transaction so neither side can drift under normal operation.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new group repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func scanGroup(row interface{ Scan(...interface{}) error }) (*Group, error) {
	group := &Group{}
	err := row.Scan(
		&group.ID,
		&group.Name,
		&group.Description,
		&group.CreatedBy,
		pq.Array(&group.Members),
		pq.Array(&group.Admins),
		&group.ChatEnabled,
		&group.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return group, nil
}

// Create inserts a new group and adds the group id to every member's group
// set, all in one transaction
func (r *Repository) Create(ctx context.Context, name string, description *string, createdBy int64, memberIDs []int64) (*Group, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO groups (name, description, created_by, members, admins)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + groupColumns

	group, err := scanGroup(tx.QueryRowContext(ctx, query, name, description, createdBy,
		pq.Array(memberIDs), pq.Array([]int64{createdBy})))
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	backRef := `
		UPDATE users
		SET groups = array_append(groups, $1), updated_at = now()
		WHERE id = ANY($2) AND NOT (groups @> ARRAY[$1]::bigint[])
	`
	if _, err := tx.ExecContext(ctx, backRef, group.ID, pq.Array(memberIDs)); err != nil {
		return nil, fmt.Errorf("failed to add group refs: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit group creation: %w", err)
	}

	return group, nil
}

// GetByID retrieves a group by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups WHERE id = $1`

	group, err := scanGroup(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return group, nil
}

// ListForMember retrieves all groups whose member set contains the user
func (r *Repository) ListForMember(ctx context.Context, userID int64) ([]*Group, error) {
	query := `
		SELECT ` + groupColumns + `
		FROM groups
		WHERE members @> ARRAY[$1]::bigint[]
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*Group
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}

	return groups, rows.Err()
}

// ListAll retrieves every group; used by the reconciliation sweep
func (r *Repository) ListAll(ctx context.Context) ([]*Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*Group
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}

	return groups, rows.Err()
}

// AddMember performs the dual write adding a user to the group's member set
// and the group to the user's group set
func (r *Repository) AddMember(ctx context.Context, groupID, userID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	memberSide := `
		UPDATE groups
		SET members = array_append(members, $2)
		WHERE id = $1 AND NOT (members @> ARRAY[$2]::bigint[])
	`
	if _, err := tx.ExecContext(ctx, memberSide, groupID, userID); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}

	groupSide := `
		UPDATE users
		SET groups = array_append(groups, $2), updated_at = now()
		WHERE id = $1 AND NOT (groups @> ARRAY[$2]::bigint[])
	`
	if _, err := tx.ExecContext(ctx, groupSide, userID, groupID); err != nil {
		return fmt.Errorf("failed to add group ref: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit member addition: %w", err)
	}

	return nil
}

// RemoveMember performs the dual write in reverse, pulling the user from the
// group's member and admin sets and the group from the user's group set
func (r *Repository) RemoveMember(ctx context.Context, groupID, userID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	memberSide := `
		UPDATE groups
		SET members = array_remove(members, $2), admins = array_remove(admins, $2)
		WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, memberSide, groupID, userID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	groupSide := `
		UPDATE users
		SET groups = array_remove(groups, $2), updated_at = now()
		WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, groupSide, userID, groupID); err != nil {
		return fmt.Errorf("failed to remove group ref: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit member removal: %w", err)
	}

	return nil
}

// AddMemberRef repairs the group side only; used by the reconciliation sweep
func (r *Repository) AddMemberRef(ctx context.Context, groupID, userID int64) error {
	query := `
		UPDATE groups
		SET members = array_append(members, $2)
		WHERE id = $1 AND NOT (members @> ARRAY[$2]::bigint[])
	`

	if _, err := r.db.ExecContext(ctx, query, groupID, userID); err != nil {
		return fmt.Errorf("failed to add member ref: %w", err)
	}

	return nil
}

// RemoveMemberRef repairs the group side only; used by the reconciliation sweep
func (r *Repository) RemoveMemberRef(ctx context.Context, groupID, userID int64) error {
	query := `
		UPDATE groups
		SET members = array_remove(members, $2), admins = array_remove(admins, $2)
		WHERE id = $1
	`

	if _, err := r.db.ExecContext(ctx, query, groupID, userID); err != nil {
		return fmt.Errorf("failed to remove member ref: %w", err)
	}

	return nil
}

// GetMemberDetails resolves user ids to usernames for group responses
func (r *Repository) GetMemberDetails(ctx context.Context, ids []int64) ([]*MemberDetail, error) {
	query := `SELECT id, username FROM users WHERE id = ANY($1) ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get member details: %w", err)
	}
	defer rows.Close()

	var details []*MemberDetail
	for rows.Next() {
		detail := &MemberDetail{}
		if err := rows.Scan(&detail.ID, &detail.Username); err != nil {
			return nil, fmt.Errorf("failed to scan member detail: %w", err)
		}
		details = append(details, detail)
	}

	return details, rows.Err()
}
