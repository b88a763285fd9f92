package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_group_store.go -package=mocks notesboard/internal/storage GroupStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GroupStore defines the interface for group storage operations.
type GroupStore interface {
	// List returns all groups in insertion order.
	List(ctx context.Context) ([]GroupRecord, error)
	// Get gets a group by ID. Returns ErrNotFound if not found.
	Get(ctx context.Context, id int64) (*GroupRecord, error)
	// Create inserts a group and fills in its ID and timestamps.
	Create(ctx context.Context, group *GroupRecord) error
	// Update renames a group. Returns ErrNotFound if no row matches.
	Update(ctx context.Context, group *GroupRecord) error
	// Delete removes a group without touching its notes.
	// Returns ErrNotFound if no row matches.
	Delete(ctx context.Context, id int64) error
}

// GroupRepo provides methods for group operations.
// It implements the GroupStore interface.
type GroupRepo struct {
	db *sql.DB
}

// NewGroupRepo creates a new GroupRepo.
func NewGroupRepo(db *sql.DB) *GroupRepo {
	return &GroupRepo{db: db}
}

// List returns all groups in insertion order.
func (r *GroupRepo) List(ctx context.Context) ([]GroupRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, created_at, updated_at FROM note_groups ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}
	defer rows.Close()

	groups := []GroupRecord{}
	for rows.Next() {
		var group GroupRecord
		if err := rows.Scan(&group.ID, &group.Name, &group.CreatedAt, &group.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	return groups, nil
}

// Get gets a group by ID. Returns ErrNotFound if not found.
func (r *GroupRepo) Get(ctx context.Context, id int64) (*GroupRecord, error) {
	var group GroupRecord
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, created_at, updated_at FROM note_groups WHERE id = ?",
		id,
	).Scan(&group.ID, &group.Name, &group.CreatedAt, &group.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query group: %w", err)
	}
	return &group, nil
}

// Create inserts a group and fills in its ID and timestamps.
func (r *GroupRepo) Create(ctx context.Context, group *GroupRecord) error {
	result, err := r.db.ExecContext(ctx, "INSERT INTO note_groups (name) VALUES (?)", group.Name)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	// Get the inserted ID
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get group id: %w", err)
	}

	stored, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	*group = *stored
	return nil
}

// Update renames a group. Returns ErrNotFound if no row matches.
func (r *GroupRepo) Update(ctx context.Context, group *GroupRecord) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE note_groups SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		group.Name, group.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}
	if err := expectAffected(result); err != nil {
		return err
	}

	stored, err := r.Get(ctx, group.ID)
	if err != nil {
		return err
	}
	*group = *stored
	return nil
}

// Delete removes a group without touching its notes.
// Returns ErrNotFound if no row matches.
func (r *GroupRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM note_groups WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return expectAffected(result)
}
