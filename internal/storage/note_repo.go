package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_note_store.go -package=mocks notesboard/internal/storage NoteStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// NoteStore defines the interface for note storage operations.
type NoteStore interface {
	// List returns every note in insertion order.
	List(ctx context.Context) ([]NoteRecord, error)
	// ListByGroup returns the notes whose group_id equals groupID.
	ListByGroup(ctx context.Context, groupID int64) ([]NoteRecord, error)
	// Get gets a note by ID.
	// Returns nil and ErrNotFound if not found.
	Get(ctx context.Context, id int64) (*NoteRecord, error)
	// Create inserts a note and fills in its ID and timestamps.
	Create(ctx context.Context, note *NoteRecord) error
	// Update replaces every stored field of the note with the given ID.
	// Returns ErrNotFound if no row matches.
	Update(ctx context.Context, note *NoteRecord) error
	// Delete removes the note with the given ID.
	// Returns ErrNotFound if no row matches.
	Delete(ctx context.Context, id int64) error
}

// NoteRepo provides methods for note operations.
// It implements the NoteStore interface.
type NoteRepo struct {
	db *sql.DB
}

// NewNoteRepo creates a new NoteRepo.
func NewNoteRepo(db *sql.DB) *NoteRepo {
	return &NoteRepo{db: db}
}

const noteColumns = "id, title, content, attached_files, group_id, categories, tags, created_at, updated_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*NoteRecord, error) {
	var (
		note       NoteRecord
		attached   string
		tags       string
		groupID    sql.NullInt64
		categories sql.NullString
	)
	if err := row.Scan(&note.ID, &note.Title, &note.Content, &attached, &groupID, &categories, &tags, &note.CreatedAt, &note.UpdatedAt); err != nil {
		return nil, err
	}

	note.AttachedFiles = DecodeList(attached)
	note.Tags = DecodeList(tags)
	if groupID.Valid {
		id := groupID.Int64
		note.GroupID = &id
	}
	if categories.Valid {
		c := categories.String
		note.Categories = &c
	}
	return &note, nil
}

func (r *NoteRepo) queryNotes(ctx context.Context, query string, args ...any) ([]NoteRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	notes := []NoteRecord{}
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, *note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notes: %w", err)
	}
	return notes, nil
}

// List returns every note in insertion order.
func (r *NoteRepo) List(ctx context.Context) ([]NoteRecord, error) {
	return r.queryNotes(ctx, "SELECT "+noteColumns+" FROM notes ORDER BY id")
}

// ListByGroup returns the notes whose group_id equals groupID.
func (r *NoteRepo) ListByGroup(ctx context.Context, groupID int64) ([]NoteRecord, error) {
	return r.queryNotes(ctx, "SELECT "+noteColumns+" FROM notes WHERE group_id = ? ORDER BY id", groupID)
}

// Get gets a note by ID.
// Returns nil and ErrNotFound if not found.
func (r *NoteRepo) Get(ctx context.Context, id int64) (*NoteRecord, error) {
	note, err := scanNote(r.db.QueryRowContext(ctx, "SELECT "+noteColumns+" FROM notes WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query note: %w", err)
	}
	return note, nil
}

// Create inserts a note and fills in its ID and timestamps.
func (r *NoteRepo) Create(ctx context.Context, note *NoteRecord) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO notes (title, content, attached_files, group_id, categories, tags)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		note.Title, note.Content, EncodeList(note.AttachedFiles), nullInt64(note.GroupID), nullString(note.Categories), EncodeList(note.Tags),
	)
	if err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get note id: %w", err)
	}

	stored, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	*note = *stored
	return nil
}

// Update replaces every stored field of the note with the given ID.
// Returns ErrNotFound if no row matches.
func (r *NoteRepo) Update(ctx context.Context, note *NoteRecord) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notes SET title = ?, content = ?, attached_files = ?, group_id = ?, categories = ?, tags = ?,
		 updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		note.Title, note.Content, EncodeList(note.AttachedFiles), nullInt64(note.GroupID), nullString(note.Categories), EncodeList(note.Tags), note.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	if err := expectAffected(result); err != nil {
		return err
	}

	stored, err := r.Get(ctx, note.ID)
	if err != nil {
		return err
	}
	*note = *stored
	return nil
}

// Delete removes the note with the given ID.
// Returns ErrNotFound if no row matches.
func (r *NoteRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return expectAffected(result)
}

func expectAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
