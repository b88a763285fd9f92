package storage

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func int64Ptr(v int64) *int64 { return &v }

func stringPtr(v string) *string { return &v }

func TestNewNoteRepo(t *testing.T) {
	db := newTestDB(t)

	repo := NewNoteRepo(db)
	if repo == nil {
		t.Fatal("NewNoteRepo() returned nil")
	}
}

func TestNoteRepo_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewNoteRepo(db)
	ctx := context.Background()

	tests := []struct {
		name string
		note NoteRecord
	}{
		{
			name: "all fields",
			note: NoteRecord{
				Title:         "Plan",
				Content:       "# Plan",
				AttachedFiles: []string{"/uploads/1-a.txt", "/uploads/2-b.png"},
				GroupID:       int64Ptr(1),
				Categories:    stringPtr("work"),
				Tags:          []string{"a", "b"},
			},
		},
		{
			name: "optional fields empty",
			note: NoteRecord{
				Title:         "Bare",
				Content:       "text",
				AttachedFiles: []string{},
				Tags:          []string{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			note := tt.note
			if err := repo.Create(ctx, &note); err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if note.ID == 0 {
				t.Fatal("Create() should assign an ID")
			}
			if note.CreatedAt.IsZero() || note.UpdatedAt.IsZero() {
				t.Error("Create() should fill timestamps")
			}

			got, err := repo.Get(ctx, note.ID)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got.Title != tt.note.Title || got.Content != tt.note.Content {
				t.Errorf("Get() title/content = %q/%q, want %q/%q", got.Title, got.Content, tt.note.Title, tt.note.Content)
			}
			if !reflect.DeepEqual(got.Tags, tt.note.Tags) {
				t.Errorf("Get() tags = %#v, want %#v", got.Tags, tt.note.Tags)
			}
			if !reflect.DeepEqual(got.AttachedFiles, tt.note.AttachedFiles) {
				t.Errorf("Get() attachedFiles = %#v, want %#v", got.AttachedFiles, tt.note.AttachedFiles)
			}
			if !reflect.DeepEqual(got.GroupID, tt.note.GroupID) {
				t.Errorf("Get() groupID = %v, want %v", got.GroupID, tt.note.GroupID)
			}
			if !reflect.DeepEqual(got.Categories, tt.note.Categories) {
				t.Errorf("Get() categories = %v, want %v", got.Categories, tt.note.Categories)
			}
		})
	}
}

func TestNoteRepo_Get_NotFound(t *testing.T) {
	repo := NewNoteRepo(newTestDB(t))

	note, err := repo.Get(context.Background(), 42)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
	if note != nil {
		t.Error("Get() should return nil note when not found")
	}
}

func TestNoteRepo_List(t *testing.T) {
	repo := NewNoteRepo(newTestDB(t))
	ctx := context.Background()

	notes, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if notes == nil || len(notes) != 0 {
		t.Errorf("List() on empty table = %#v, want empty non-nil slice", notes)
	}

	for _, title := range []string{"first", "second", "third"} {
		if err := repo.Create(ctx, &NoteRecord{Title: title, Content: "c"}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	notes, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(notes) != 3 {
		t.Fatalf("List() returned %d notes, want 3", len(notes))
	}
	for i, want := range []string{"first", "second", "third"} {
		if notes[i].Title != want {
			t.Errorf("List()[%d].Title = %q, want %q", i, notes[i].Title, want)
		}
	}
}

func TestNoteRepo_ListByGroup(t *testing.T) {
	repo := NewNoteRepo(newTestDB(t))
	ctx := context.Background()

	seed := []NoteRecord{
		{Title: "g1-a", Content: "c", GroupID: int64Ptr(1)},
		{Title: "g2", Content: "c", GroupID: int64Ptr(2)},
		{Title: "none", Content: "c"},
		{Title: "g1-b", Content: "c", GroupID: int64Ptr(1)},
	}
	for i := range seed {
		if err := repo.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	tests := []struct {
		name    string
		groupID int64
		want    []string
	}{
		{name: "two notes in insertion order", groupID: 1, want: []string{"g1-a", "g1-b"}},
		{name: "single note", groupID: 2, want: []string{"g2"}},
		{name: "unknown group", groupID: 3, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes, err := repo.ListByGroup(ctx, tt.groupID)
			if err != nil {
				t.Fatalf("ListByGroup() error = %v", err)
			}
			titles := []string{}
			for _, n := range notes {
				titles = append(titles, n.Title)
			}
			if !reflect.DeepEqual(titles, tt.want) {
				t.Errorf("ListByGroup(%d) = %v, want %v", tt.groupID, titles, tt.want)
			}
		})
	}
}

func TestNoteRepo_Update(t *testing.T) {
	repo := NewNoteRepo(newTestDB(t))
	ctx := context.Background()

	note := &NoteRecord{Title: "old", Content: "old", Tags: []string{"x"}, GroupID: int64Ptr(1)}
	if err := repo.Create(ctx, note); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	note.Title = "new"
	note.Tags = []string{"y", "z"}
	note.GroupID = nil
	note.AttachedFiles = []string{"/uploads/1-f.txt"}
	if err := repo.Update(ctx, note); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := repo.Get(ctx, note.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Title != "new" || got.Content != "old" {
		t.Errorf("Update() stored title/content = %q/%q", got.Title, got.Content)
	}
	if !reflect.DeepEqual(got.Tags, []string{"y", "z"}) {
		t.Errorf("Update() stored tags = %v", got.Tags)
	}
	if got.GroupID != nil {
		t.Errorf("Update() stored groupID = %v, want nil", *got.GroupID)
	}
	if !reflect.DeepEqual(got.AttachedFiles, []string{"/uploads/1-f.txt"}) {
		t.Errorf("Update() stored attachedFiles = %v", got.AttachedFiles)
	}
}

func TestNoteRepo_Update_NotFound(t *testing.T) {
	repo := NewNoteRepo(newTestDB(t))

	err := repo.Update(context.Background(), &NoteRecord{ID: 7, Title: "t", Content: "c"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestNoteRepo_Delete(t *testing.T) {
	repo := NewNoteRepo(newTestDB(t))
	ctx := context.Background()

	note := &NoteRecord{Title: "t", Content: "c"}
	if err := repo.Create(ctx, note); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.Delete(ctx, note.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.Get(ctx, note.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Delete() error = %v, want ErrNotFound", err)
	}
	if err := repo.Delete(ctx, note.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}
