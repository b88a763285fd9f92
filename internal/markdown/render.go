// Package markdown renders note content to HTML and exports notes as
// markdown documents with YAML front matter.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghhtml "github.com/yuin/goldmark/renderer/html"
)

// Renderer converts markdown to HTML.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a renderer with GitHub flavored markdown enabled.
// Raw HTML inside notes is escaped unless allowHTML is set.
func NewRenderer(allowHTML bool) *Renderer {
	var rendererOpts []goldmark.Option
	if allowHTML {
		rendererOpts = append(rendererOpts, goldmark.WithRendererOptions(ghhtml.WithUnsafe()))
	}

	opts := append([]goldmark.Option{
		goldmark.WithExtensions(
			extension.GFM,
			extension.Table,
			extension.TaskList,
			extension.Strikethrough,
			extension.Linkify,
			extension.Typographer,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	}, rendererOpts...)

	return &Renderer{md: goldmark.New(opts...)}
}

// Render converts markdown source to an HTML fragment.
func (r *Renderer) Render(content string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}
