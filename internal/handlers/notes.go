package handlers

import (
	"fmt"
	"net/http"

	"notesboard/internal/contextutil"
	"notesboard/internal/markdown"
	"notesboard/internal/service"
)

// Fixed response texts for the note endpoints.
const (
	msgNotesFetchFailed = "Error fetching notes"
	msgNoteNotFound     = "Note not found"
	msgNoteFetchFailed  = "Error fetching note"
	msgNoteCreateFailed = "Error creating note"
	msgNoteUpdateFailed = "Error updating note"
	msgNoteDeleteFailed = "Error deleting note"
	msgNoteDeleted      = "Note deleted"
	msgNoteRenderFailed = "Error rendering note"
	msgNoteExportFailed = "Error exporting note"
)

// Renderer converts markdown to an HTML fragment.
type Renderer interface {
	Render(content string) (string, error)
}

// NoteHandler handles HTTP requests for notes.
type NoteHandler struct {
	notes          service.NoteService
	renderer       Renderer
	maxUploadBytes int64
}

// NewNoteHandler creates a new NoteHandler. maxUploadBytes bounds the multipart
// data held in memory; larger parts spill to temp files.
func NewNoteHandler(notes service.NoteService, renderer Renderer, maxUploadBytes int64) *NoteHandler {
	return &NoteHandler{
		notes:          notes,
		renderer:       renderer,
		maxUploadBytes: maxUploadBytes,
	}
}

// List handles GET /notes.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	notes, err := h.notes.List(ctx)
	if err != nil {
		handleServiceError(ctx, w, err, "", msgNotesFetchFailed)
		return
	}
	writeJSON(ctx, w, http.StatusOK, toNoteResponses(notes))
}

// Get handles GET /notes/{id}.
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := idParam(r)
	if !ok {
		writeText(w, http.StatusNotFound, msgNoteNotFound)
		return
	}

	note, err := h.notes.Get(ctx, id)
	if err != nil {
		handleServiceError(ctx, w, err, msgNoteNotFound, msgNoteFetchFailed)
		return
	}
	writeJSON(ctx, w, http.StatusOK, toNoteResponse(note))
}

// Create handles POST /notes.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	form, cleanup, err := parseNoteForm(r, h.maxUploadBytes)
	defer cleanup()
	if err != nil {
		logger.WarnContext(ctx, "invalid note body", "error", err)
		writeText(w, http.StatusInternalServerError, msgNoteCreateFailed)
		return
	}

	note, err := h.notes.Create(ctx, form.createRequest())
	if err != nil {
		handleServiceError(ctx, w, err, "", msgNoteCreateFailed)
		return
	}
	writeJSON(ctx, w, http.StatusOK, toNoteResponse(note))
}

// Update handles PUT /notes/{id}.
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	id, ok := idParam(r)
	if !ok {
		writeText(w, http.StatusNotFound, msgNoteNotFound)
		return
	}

	form, cleanup, err := parseNoteForm(r, h.maxUploadBytes)
	defer cleanup()
	if err != nil {
		logger.WarnContext(ctx, "invalid note body", "id", id, "error", err)
		writeText(w, http.StatusInternalServerError, msgNoteUpdateFailed)
		return
	}

	note, err := h.notes.Update(ctx, id, form.updateRequest())
	if err != nil {
		handleServiceError(ctx, w, err, msgNoteNotFound, msgNoteUpdateFailed)
		return
	}
	writeJSON(ctx, w, http.StatusOK, toNoteResponse(note))
}

// Delete handles DELETE /notes/{id}.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := idParam(r)
	if !ok {
		writeText(w, http.StatusNotFound, msgNoteNotFound)
		return
	}

	if err := h.notes.Delete(ctx, id); err != nil {
		handleServiceError(ctx, w, err, msgNoteNotFound, msgNoteDeleteFailed)
		return
	}
	writeText(w, http.StatusOK, msgNoteDeleted)
}

// HTML handles GET /notes/{id}/html and answers the rendered content fragment.
func (h *NoteHandler) HTML(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	id, ok := idParam(r)
	if !ok {
		writeText(w, http.StatusNotFound, msgNoteNotFound)
		return
	}

	note, err := h.notes.Get(ctx, id)
	if err != nil {
		handleServiceError(ctx, w, err, msgNoteNotFound, msgNoteFetchFailed)
		return
	}

	html, err := h.renderer.Render(note.Content)
	if err != nil {
		logger.ErrorContext(ctx, "failed to render note", "id", id, "error", err)
		writeText(w, http.StatusInternalServerError, msgNoteRenderFailed)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

// Export handles GET /notes/{id}/export and answers a markdown download.
func (h *NoteHandler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	id, ok := idParam(r)
	if !ok {
		writeText(w, http.StatusNotFound, msgNoteNotFound)
		return
	}

	note, err := h.notes.Get(ctx, id)
	if err != nil {
		handleServiceError(ctx, w, err, msgNoteNotFound, msgNoteFetchFailed)
		return
	}

	doc, err := markdown.Export(note)
	if err != nil {
		logger.ErrorContext(ctx, "failed to export note", "id", id, "error", err)
		writeText(w, http.StatusInternalServerError, msgNoteExportFailed)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"note-%d.md\"", note.ID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}
