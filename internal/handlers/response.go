package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"notesboard/internal/contextutil"
	"notesboard/internal/service"
	"notesboard/internal/storage"
)

// NoteResponse is the JSON form of a note.
type NoteResponse struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	AttachedFiles []string  `json:"attachedFiles"`
	GroupID       *int64    `json:"groupId"`
	Categories    *string   `json:"categories"`
	Tags          []string  `json:"tags"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// GroupResponse is the JSON form of a group.
type GroupResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toNoteResponse(n *storage.NoteRecord) NoteResponse {
	resp := NoteResponse{
		ID:            n.ID,
		Title:         n.Title,
		Content:       n.Content,
		AttachedFiles: n.AttachedFiles,
		GroupID:       n.GroupID,
		Categories:    n.Categories,
		Tags:          n.Tags,
		CreatedAt:     n.CreatedAt,
		UpdatedAt:     n.UpdatedAt,
	}
	if resp.AttachedFiles == nil {
		resp.AttachedFiles = []string{}
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	return resp
}

func toNoteResponses(notes []storage.NoteRecord) []NoteResponse {
	resp := make([]NoteResponse, 0, len(notes))
	for i := range notes {
		resp = append(resp, toNoteResponse(&notes[i]))
	}
	return resp
}

func toGroupResponse(g *storage.GroupRecord) GroupResponse {
	return GroupResponse{
		ID:        g.ID,
		Name:      g.Name,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

// idParam parses the {id} URL parameter.
func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// handleServiceError maps service errors to a status code and the endpoint's fixed message.
// Not-found errors answer 404 with notFoundMsg; everything else answers 500 with defaultMsg.
func handleServiceError(ctx context.Context, w http.ResponseWriter, err error, notFoundMsg, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)

	if errors.Is(err, service.ErrNotFound) && notFoundMsg != "" {
		logger.InfoContext(ctx, "resource not found", "error", err)
		writeText(w, http.StatusNotFound, notFoundMsg)
		return
	}

	if errors.Is(err, service.ErrInvalidInput) || errors.Is(err, service.ErrTooManyFiles) {
		logger.WarnContext(ctx, "rejected request", "error", err)
	} else {
		logger.ErrorContext(ctx, "service error", "error", err)
	}
	writeText(w, http.StatusInternalServerError, defaultMsg)
}

// writeJSON writes v as a JSON response.
func writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// writeText writes a plain text response.
func writeText(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write([]byte(message))
}
