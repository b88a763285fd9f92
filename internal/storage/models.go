package storage

import "time"

// GroupRecord represents a group of notes in the database.
type GroupRecord struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NoteRecord represents a note in the database.
// List-valued fields are decoded from their delimited column form.
type NoteRecord struct {
	ID            int64
	Title         string
	Content       string   // Markdown
	AttachedFiles []string // Attachment references, e.g. /uploads/1700000000000-x.txt
	GroupID       *int64   // Nil when the note belongs to no group
	Categories    *string
	Tags          []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
