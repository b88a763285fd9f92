// Package web holds the single-page notes dashboard served at the root path.
package web

import _ "embed"

// IndexHTML is the dashboard page. It talks to the API under /api on the same origin.
//
//go:embed index.html
var IndexHTML string
