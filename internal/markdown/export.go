package markdown

import (
	"bytes"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"notesboard/internal/storage"
)

// frontMatter is the YAML header written ahead of an exported note.
type frontMatter struct {
	ID            int64     `yaml:"id"`
	Title         string    `yaml:"title"`
	GroupID       *int64    `yaml:"group_id,omitempty"`
	Categories    *string   `yaml:"categories,omitempty"`
	Tags          []string  `yaml:"tags"`
	AttachedFiles []string  `yaml:"attached_files,omitempty"`
	CreatedAt     time.Time `yaml:"created_at"`
	UpdatedAt     time.Time `yaml:"updated_at"`
}

// Export writes a note as a markdown document with a YAML front matter block.
func Export(note *storage.NoteRecord) ([]byte, error) {
	fm := frontMatter{
		ID:            note.ID,
		Title:         note.Title,
		GroupID:       note.GroupID,
		Categories:    note.Categories,
		Tags:          note.Tags,
		AttachedFiles: note.AttachedFiles,
		CreatedAt:     note.CreatedAt.UTC(),
		UpdatedAt:     note.UpdatedAt.UTC(),
	}
	if fm.Tags == nil {
		fm.Tags = []string{}
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(fm); err != nil {
		return nil, fmt.Errorf("failed to encode front matter: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode front matter: %w", err)
	}

	buf.WriteString("---\n\n")
	buf.WriteString(note.Content)

	return buf.Bytes(), nil
}
