package service

import (
	"errors"
	"fmt"
	"testing"

	"notesboard/internal/storage"
)

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "title", Message: "cannot be empty"}

	if got, want := err.Error(), "validation error on field title: cannot be empty"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("ValidationError should match ErrInvalidInput")
	}

	wrapped := fmt.Errorf("create note: %w", err)
	var target *ValidationError
	if !errors.As(wrapped, &target) {
		t.Fatal("errors.As() should find ValidationError through wrapping")
	}
	if target.Field != "title" {
		t.Errorf("errors.As() field = %q, want title", target.Field)
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("ValidationError must not match ErrNotFound")
	}
}

func TestValidateNote(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		content   string
		wantField string
	}{
		{name: "valid", title: "Plan", content: "# Plan"},
		{name: "blank title", title: " \t", content: "x", wantField: "title"},
		{name: "empty content", title: "Plan", content: "", wantField: "content"},
		{name: "whitespace content allowed", title: "Plan", content: " "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateNote(tt.title, tt.content)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("validateNote() error = %v, want nil", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Field != tt.wantField {
				t.Errorf("validateNote() error = %v, want field %q", err, tt.wantField)
			}
		})
	}
}

func TestValidateGroup(t *testing.T) {
	if err := validateGroup("Work"); err != nil {
		t.Errorf("validateGroup(Work) error = %v", err)
	}
	if err := validateGroup("   "); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("validateGroup(blank) error = %v, want ErrInvalidInput", err)
	}
}

func TestWrapError(t *testing.T) {
	if WrapError(nil, "ignored") != nil {
		t.Error("WrapError(nil) should return nil")
	}

	err := WrapError(storage.ErrNotFound, "failed to get note")
	if got, want := err.Error(), "failed to get note: record not found"; got != want {
		t.Errorf("WrapError() = %q, want %q", got, want)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		t.Error("WrapError() should keep the cause reachable")
	}

	tooMany := fmt.Errorf("%w: got %d, limit %d", ErrTooManyFiles, 11, 10)
	if !errors.Is(WrapError(tooMany, "upload"), ErrTooManyFiles) {
		t.Error("wrapped ErrTooManyFiles should still match")
	}
}
