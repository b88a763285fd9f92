package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"notesboard/internal/handlers"
	"notesboard/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	NoteService  service.NoteService
	GroupService service.GroupService
	Renderer     handlers.Renderer
	DB           handlers.Pinger

	UploadDir       string // Directory served read-only under UploadURLPrefix
	UploadURLPrefix string // e.g. /uploads
	MaxUploadBytes  int64  // Multipart data kept in memory per request

	IndexHTML string // Embedded HTML content
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// Request-scoped logging
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)

	// Add CORS middleware
	r.Use(CORS)

	noteHandler := handlers.NewNoteHandler(deps.NoteService, deps.Renderer, deps.MaxUploadBytes)
	groupHandler := handlers.NewGroupHandler(deps.GroupService, deps.NoteService)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.UploadDir)

	// Register API routes
	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)

		r.Route("/notes", func(r chi.Router) {
			r.Get("/", noteHandler.List)
			r.Post("/", noteHandler.Create)
			r.Get("/{id}", noteHandler.Get)
			r.Put("/{id}", noteHandler.Update)
			r.Delete("/{id}", noteHandler.Delete)
			r.Get("/{id}/html", noteHandler.HTML)
			r.Get("/{id}/export", noteHandler.Export)
		})

		r.Route("/groups", func(r chi.Router) {
			r.Get("/", groupHandler.List)
			r.Post("/", groupHandler.Create)
			r.Get("/{id}", groupHandler.Get)
			r.Put("/{id}", groupHandler.Update)
			r.Delete("/{id}", groupHandler.Delete)
			r.Get("/{id}/notes", groupHandler.Notes)
		})
	})

	// Serve stored attachments
	if deps.UploadDir != "" && deps.UploadURLPrefix != "" {
		r.Handle(deps.UploadURLPrefix+"/*", uploadsHandler(deps.UploadURLPrefix, deps.UploadDir))
	}

	// Serve HTML page at root
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(deps.IndexHTML))
	})

	return r
}
