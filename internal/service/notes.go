package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_attachment_store.go -package=mocks notesboard/internal/service AttachmentStore
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_note_service.go -package=mocks -mock_names=NoteService=MockNoteService notesboard/internal/service NoteService

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"notesboard/internal/contextutil"
	"notesboard/internal/storage"
)

// DefaultMaxUploads is the number of files accepted with one create or update.
const DefaultMaxUploads = 10

// AttachmentStore persists uploaded files.
// This interface is defined from the service layer's perspective (consumer-first).
type AttachmentStore interface {
	// Save stores the content under a name derived from filename and returns its reference.
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	// Remove deletes the file behind ref. Missing files are not an error.
	Remove(ctx context.Context, ref string) error
}

// Upload is a file received with a create or update request.
type Upload struct {
	Filename string
	Open     func() (io.ReadCloser, error)
}

// CreateNoteRequest represents a note creation in the domain layer.
type CreateNoteRequest struct {
	Title      string
	Content    string
	GroupID    *int64
	Categories *string
	Tags       []string
	Uploads    []Upload
}

// UpdateNoteRequest carries the fields supplied with an update.
// Nil fields keep their stored value.
type UpdateNoteRequest struct {
	Title      *string
	Content    *string
	GroupID    *int64
	ClearGroup bool // detach the note from its group; ignored when GroupID is set
	Categories *string
	Tags       []string
	// AttachedFiles lists the stored references to keep. When it is non-nil or
	// Uploads is non-empty the note's attachments become AttachedFiles followed
	// by the new uploads.
	AttachedFiles []string
	Uploads       []Upload
}

// NoteService provides note management.
type NoteService interface {
	// List returns every note.
	List(ctx context.Context) ([]storage.NoteRecord, error)
	// ListByGroup returns the notes referencing groupID.
	ListByGroup(ctx context.Context, groupID int64) ([]storage.NoteRecord, error)
	// Get returns a single note or ErrNotFound.
	Get(ctx context.Context, id int64) (*storage.NoteRecord, error)
	// Create stores uploads and persists a new note referencing them.
	Create(ctx context.Context, req CreateNoteRequest) (*storage.NoteRecord, error)
	// Update applies the supplied fields to an existing note.
	Update(ctx context.Context, id int64, req UpdateNoteRequest) (*storage.NoteRecord, error)
	// Delete removes a note and its attachments.
	Delete(ctx context.Context, id int64) error
}

// noteService implements NoteService.
type noteService struct {
	notes      storage.NoteStore
	files      AttachmentStore
	maxUploads int
}

// NewNoteService creates a new NoteService.
func NewNoteService(notes storage.NoteStore, files AttachmentStore, maxUploads int) NoteService {
	if maxUploads <= 0 {
		maxUploads = DefaultMaxUploads
	}
	return &noteService{
		notes:      notes,
		files:      files,
		maxUploads: maxUploads,
	}
}

func (s *noteService) List(ctx context.Context) ([]storage.NoteRecord, error) {
	notes, err := s.notes.List(ctx)
	if err != nil {
		return nil, WrapError(err, "failed to list notes")
	}
	return notes, nil
}

func (s *noteService) ListByGroup(ctx context.Context, groupID int64) ([]storage.NoteRecord, error) {
	notes, err := s.notes.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, WrapError(err, "failed to list notes for group")
	}
	return notes, nil
}

func (s *noteService) Get(ctx context.Context, id int64) (*storage.NoteRecord, error) {
	note, err := s.notes.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, WrapError(err, "failed to get note")
	}
	return note, nil
}

func (s *noteService) Create(ctx context.Context, req CreateNoteRequest) (*storage.NoteRecord, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if err := validateNote(req.Title, req.Content); err != nil {
		logger.WarnContext(ctx, "invalid note", "error", err)
		return nil, err
	}
	if err := s.checkUploadCount(len(req.Uploads)); err != nil {
		logger.WarnContext(ctx, "rejected note uploads", "error", err)
		return nil, err
	}

	refs, err := s.saveUploads(ctx, req.Uploads)
	if err != nil {
		return nil, WrapError(err, "failed to store attachments")
	}

	note := &storage.NoteRecord{
		Title:         req.Title,
		Content:       req.Content,
		AttachedFiles: refs,
		GroupID:       req.GroupID,
		Categories:    req.Categories,
		Tags:          nonNil(req.Tags),
	}
	if err := s.notes.Create(ctx, note); err != nil {
		s.removeFiles(ctx, refs)
		return nil, WrapError(err, "failed to create note")
	}

	logger.InfoContext(ctx, "note created", "id", note.ID, "attachments", len(refs))
	return note, nil
}

func (s *noteService) Update(ctx context.Context, id int64, req UpdateNoteRequest) (*storage.NoteRecord, error) {
	logger := contextutil.LoggerFromContext(ctx)

	// Resolve first so a missing note costs no uploads and no writes.
	note, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	switch {
	case req.GroupID != nil:
		note.GroupID = req.GroupID
	case req.ClearGroup:
		note.GroupID = nil
	}
	if req.Categories != nil {
		note.Categories = req.Categories
	}
	if req.Tags != nil {
		note.Tags = req.Tags
	}

	if err := validateNote(note.Title, note.Content); err != nil {
		logger.WarnContext(ctx, "invalid note update", "id", id, "error", err)
		return nil, err
	}
	if err := s.checkUploadCount(len(req.Uploads)); err != nil {
		logger.WarnContext(ctx, "rejected note uploads", "id", id, "error", err)
		return nil, err
	}

	refs, err := s.saveUploads(ctx, req.Uploads)
	if err != nil {
		return nil, WrapError(err, "failed to store attachments")
	}
	if req.AttachedFiles != nil || len(refs) > 0 {
		attached := retainedFiles(note.AttachedFiles, req.AttachedFiles)
		if dropped := len(req.AttachedFiles) - len(attached); dropped > 0 {
			logger.WarnContext(ctx, "ignored attachments not owned by note", "id", id, "count", dropped)
		}
		note.AttachedFiles = append(attached, refs...)
	}

	if err := s.notes.Update(ctx, note); err != nil {
		s.removeFiles(ctx, refs)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, WrapError(err, "failed to update note")
	}

	logger.InfoContext(ctx, "note updated", "id", note.ID, "new_attachments", len(refs))
	return note, nil
}

func (s *noteService) Delete(ctx context.Context, id int64) error {
	logger := contextutil.LoggerFromContext(ctx)

	note, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	s.removeFiles(ctx, note.AttachedFiles)

	if err := s.notes.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return WrapError(err, "failed to delete note")
	}

	logger.InfoContext(ctx, "note deleted", "id", id, "attachments", len(note.AttachedFiles))
	return nil
}

func (s *noteService) checkUploadCount(n int) error {
	if n > s.maxUploads {
		return fmt.Errorf("%w: got %d, limit %d", ErrTooManyFiles, n, s.maxUploads)
	}
	return nil
}

// saveUploads stores every upload. On failure the files saved so far are removed.
func (s *noteService) saveUploads(ctx context.Context, uploads []Upload) ([]string, error) {
	refs := make([]string, 0, len(uploads))
	for _, u := range uploads {
		ref, err := s.saveUpload(ctx, u)
		if err != nil {
			s.removeFiles(ctx, refs)
			return nil, fmt.Errorf("upload %q: %w", u.Filename, err)
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func (s *noteService) saveUpload(ctx context.Context, u Upload) (string, error) {
	rc, err := u.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()
	return s.files.Save(ctx, u.Filename, rc)
}

// removeFiles deletes attachments best-effort; failures are logged and skipped.
func (s *noteService) removeFiles(ctx context.Context, refs []string) {
	logger := contextutil.LoggerFromContext(ctx)
	for _, ref := range refs {
		if err := s.files.Remove(ctx, ref); err != nil {
			logger.WarnContext(ctx, "failed to remove attachment", "ref", ref, "error", err)
		}
	}
}

// retainedFiles keeps the requested references that are currently attached to
// the note, in request order and without duplicates. A note can therefore
// never adopt a file it does not own.
func retainedFiles(current, requested []string) []string {
	owned := make(map[string]bool, len(current))
	for _, ref := range current {
		owned[ref] = true
	}
	kept := make([]string, 0, len(requested))
	for _, ref := range requested {
		if owned[ref] {
			kept = append(kept, ref)
			owned[ref] = false
		}
	}
	return kept
}

func validateNote(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Message: "cannot be empty"}
	}
	if content == "" {
		return &ValidationError{Field: "content", Message: "cannot be empty"}
	}
	return nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
