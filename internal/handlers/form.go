package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"notesboard/internal/service"
	"notesboard/internal/storage"
)

// attachedFilesField names both the multipart file field and the text field
// listing the references to keep.
const attachedFilesField = "attachedFiles"

// noteForm holds the note fields present in a request body.
// Nil pointers and slices mean the field was absent.
type noteForm struct {
	Title      *string
	Content    *string
	Categories *string
	GroupID    *int64
	ClearGroup bool
	Tags       []string
	Retained   []string
	Uploads    []service.Upload
}

func (f *noteForm) createRequest() service.CreateNoteRequest {
	req := service.CreateNoteRequest{
		GroupID:    f.GroupID,
		Categories: f.Categories,
		Tags:       f.Tags,
		Uploads:    f.Uploads,
	}
	if f.Title != nil {
		req.Title = *f.Title
	}
	if f.Content != nil {
		req.Content = *f.Content
	}
	if req.Tags == nil {
		req.Tags = []string{}
	}
	return req
}

func (f *noteForm) updateRequest() service.UpdateNoteRequest {
	return service.UpdateNoteRequest{
		Title:         f.Title,
		Content:       f.Content,
		GroupID:       f.GroupID,
		ClearGroup:    f.ClearGroup,
		Categories:    f.Categories,
		Tags:          f.Tags,
		AttachedFiles: f.Retained,
		Uploads:       f.Uploads,
	}
}

// parseNoteForm reads a multipart, urlencoded or JSON note body.
// The returned cleanup func releases multipart temp files and must always be called.
func parseNoteForm(r *http.Request, maxMemory int64) (*noteForm, func(), error) {
	noop := func() {}

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		mediaType = ""
	}

	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return nil, noop, fmt.Errorf("parse multipart form: %w", err)
		}
		cleanup := func() { _ = r.MultipartForm.RemoveAll() }
		form, err := formFromValues(r.MultipartForm.Value)
		if err != nil {
			return nil, cleanup, err
		}
		form.Uploads = uploadsFromFiles(r.MultipartForm.File[attachedFilesField])
		return form, cleanup, nil
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, noop, fmt.Errorf("parse form: %w", err)
		}
		form, err := formFromValues(r.PostForm)
		return form, noop, err
	default:
		form, err := formFromJSON(r.Body)
		return form, noop, err
	}
}

func formFromValues(values map[string][]string) (*noteForm, error) {
	form := &noteForm{}
	if v, ok := firstValue(values, "title"); ok {
		form.Title = &v
	}
	if v, ok := firstValue(values, "content"); ok {
		form.Content = &v
	}
	if v, ok := firstValue(values, "categories"); ok {
		form.Categories = &v
	}
	if v, ok := firstValue(values, "groupId"); ok {
		if err := form.setGroup(v); err != nil {
			return nil, err
		}
	}
	if v, ok := values["tags"]; ok {
		form.Tags = splitList(v...)
	}
	if v, ok := values[attachedFilesField]; ok {
		form.Retained = splitList(v...)
	}
	return form, nil
}

// noteJSON accepts the client's JSON body. groupId may be a number, a numeric
// string or null; tags and attachedFiles may be arrays or comma-joined strings.
type noteJSON struct {
	Title         *string         `json:"title"`
	Content       *string         `json:"content"`
	Categories    *string         `json:"categories"`
	GroupID       json.RawMessage `json:"groupId"`
	Tags          json.RawMessage `json:"tags"`
	AttachedFiles json.RawMessage `json:"attachedFiles"`
}

func formFromJSON(body io.Reader) (*noteForm, error) {
	var in noteJSON
	if err := json.NewDecoder(body).Decode(&in); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode note body: %w", err)
	}

	form := &noteForm{
		Title:      in.Title,
		Content:    in.Content,
		Categories: in.Categories,
	}

	if len(in.GroupID) > 0 {
		var raw any
		if err := json.Unmarshal(in.GroupID, &raw); err != nil {
			return nil, fmt.Errorf("decode groupId: %w", err)
		}
		switch v := raw.(type) {
		case nil:
			form.ClearGroup = true
		case float64:
			id := int64(v)
			if float64(id) != v {
				return nil, fmt.Errorf("groupId %v is not an integer", v)
			}
			form.GroupID = &id
		case string:
			if err := form.setGroup(v); err != nil {
				return nil, err
			}
		default:
			return nil, errors.New("groupId must be a number")
		}
	}

	var err error
	if form.Tags, err = decodeJSONList(in.Tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	if form.Retained, err = decodeJSONList(in.AttachedFiles); err != nil {
		return nil, fmt.Errorf("decode attachedFiles: %w", err)
	}
	return form, nil
}

// setGroup applies a textual groupId. Empty and "null" detach the note.
func (f *noteForm) setGroup(v string) error {
	v = strings.TrimSpace(v)
	if v == "" || v == "null" {
		f.ClearGroup = true
		return nil
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid groupId %q: %w", v, err)
	}
	f.GroupID = &id
	return nil
}

// decodeJSONList returns nil for an absent or null field.
func decodeJSONList(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return splitList(list...), nil
	}
	var joined string
	if err := json.Unmarshal(raw, &joined); err != nil {
		return nil, err
	}
	return splitList(joined), nil
}

// splitList flattens repeated and comma-joined values. Items are kept byte
// for byte; only empty ones are dropped.
func splitList(values ...string) []string {
	out := []string{}
	for _, v := range values {
		for _, item := range storage.DecodeList(v) {
			if item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

func firstValue(values map[string][]string, key string) (string, bool) {
	v, ok := values[key]
	if !ok || len(v) == 0 {
		return "", false
	}
	return v[0], true
}

func uploadsFromFiles(files []*multipart.FileHeader) []service.Upload {
	uploads := make([]service.Upload, 0, len(files))
	for _, fh := range files {
		uploads = append(uploads, service.Upload{
			Filename: fh.Filename,
			Open: func() (io.ReadCloser, error) {
				f, err := fh.Open()
				if err != nil {
					return nil, err
				}
				return f, nil
			},
		})
	}
	return uploads
}
