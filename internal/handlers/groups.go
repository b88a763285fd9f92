package handlers

import (
	"encoding/json"
	"net/http"

	"notesboard/internal/contextutil"
	"notesboard/internal/service"
)

// Fixed response texts for the group endpoints.
const (
	msgGroupsFetchFailed     = "Error fetching groups"
	msgGroupNotFound         = "Group not found"
	msgGroupFetchFailed      = "Error fetching group"
	msgGroupCreateFailed     = "Error creating group"
	msgGroupUpdateFailed     = "Error updating group"
	msgGroupDeleteFailed     = "Error deleting group"
	msgGroupDeleted          = "Group deleted"
	msgGroupNotesFetchFailed = "Error fetching notes for group"
)

// GroupRequest is the JSON body for creating or renaming a group.
type GroupRequest struct {
	Name string `json:"name"`
}

// GroupHandler handles HTTP requests for groups.
type GroupHandler struct {
	groups service.GroupService
	notes  service.NoteService
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(groups service.GroupService, notes service.NoteService) *GroupHandler {
	return &GroupHandler{
		groups: groups,
		notes:  notes,
	}
}

// List handles GET /groups.
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	groups, err := h.groups.List(ctx)
	if err != nil {
		handleServiceError(ctx, w, err, "", msgGroupsFetchFailed)
		return
	}

	resp := make([]GroupResponse, 0, len(groups))
	for i := range groups {
		resp = append(resp, toGroupResponse(&groups[i]))
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// Get handles GET /groups/{id}.
func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := idParam(r)
	if !ok {
		writeText(w, http.StatusNotFound, msgGroupNotFound)
		return
	}

	group, err := h.groups.Get(ctx, id)
	if err != nil {
		handleServiceError(ctx, w, err, msgGroupNotFound, msgGroupFetchFailed)
		return
	}
	writeJSON(ctx, w, http.StatusOK, toGroupResponse(group))
}

// Create handles POST /groups.
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req GroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeText(w, http.StatusInternalServerError, msgGroupCreateFailed)
		return
	}

	group, err := h.groups.Create(ctx, service.GroupRequest{Name: req.Name})
	if err != nil {
		handleServiceError(ctx, w, err, "", msgGroupCreateFailed)
		return
	}
	writeJSON(ctx, w, http.StatusOK, toGroupResponse(group))
}

// Update handles PUT /groups/{id}.
func (h *GroupHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	id, ok := idParam(r)
	if !ok {
		writeText(w, http.StatusNotFound, msgGroupNotFound)
		return
	}

	var req GroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "id", id, "error", err)
		writeText(w, http.StatusInternalServerError, msgGroupUpdateFailed)
		return
	}

	group, err := h.groups.Update(ctx, id, service.GroupRequest{Name: req.Name})
	if err != nil {
		handleServiceError(ctx, w, err, msgGroupNotFound, msgGroupUpdateFailed)
		return
	}
	writeJSON(ctx, w, http.StatusOK, toGroupResponse(group))
}

// Delete handles DELETE /groups/{id}. Notes of the group are left in place.
func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := idParam(r)
	if !ok {
		writeText(w, http.StatusNotFound, msgGroupNotFound)
		return
	}

	if err := h.groups.Delete(ctx, id); err != nil {
		handleServiceError(ctx, w, err, msgGroupNotFound, msgGroupDeleteFailed)
		return
	}
	writeText(w, http.StatusOK, msgGroupDeleted)
}

// Notes handles GET /groups/{id}/notes. The group itself is not resolved, so
// an unknown or malformed id yields an empty list.
func (h *GroupHandler) Notes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := idParam(r)
	if !ok {
		writeJSON(ctx, w, http.StatusOK, []NoteResponse{})
		return
	}

	notes, err := h.notes.ListByGroup(ctx, id)
	if err != nil {
		handleServiceError(ctx, w, err, "", msgGroupNotesFetchFailed)
		return
	}
	writeJSON(ctx, w, http.StatusOK, toNoteResponses(notes))
}
