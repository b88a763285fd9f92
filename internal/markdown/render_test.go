package markdown

import (
	"strings"
	"testing"
)

func TestRenderer_Render(t *testing.T) {
	tests := []struct {
		name      string
		allowHTML bool
		input     string
		contains  []string
		absent    []string
	}{
		{
			name:     "heading gets an id",
			input:    "# Plan",
			contains: []string{`<h1 id="plan">Plan</h1>`},
		},
		{
			name:     "gfm table",
			input:    "| a | b |\n|---|---|\n| 1 | 2 |",
			contains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:     "task list",
			input:    "- [x] done",
			contains: []string{`type="checkbox"`, "checked"},
		},
		{
			name:     "raw html escaped by default",
			input:    "<script>alert(1)</script>",
			absent:   []string{"<script>"},
		},
		{
			name:      "raw html kept when allowed",
			allowHTML: true,
			input:     "<div>hi</div>",
			contains:  []string{"<div>hi</div>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewRenderer(tt.allowHTML).Render(tt.input)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Render() = %q, want it to contain %q", got, want)
				}
			}
			for _, bad := range tt.absent {
				if strings.Contains(got, bad) {
					t.Errorf("Render() = %q, must not contain %q", got, bad)
				}
			}
		})
	}
}
