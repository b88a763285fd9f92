package main

import (
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"time"

	"notesboard/internal/attachments"
	"notesboard/internal/config"
	"notesboard/internal/http"
	"notesboard/internal/markdown"
	"notesboard/internal/service"
	"notesboard/internal/storage"
	"notesboard/internal/web"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Create repository instances
	noteRepo := storage.NewNoteRepo(db)
	groupRepo := storage.NewGroupRepo(db)

	files := attachments.NewStore(cfg.UploadDir, cfg.UploadURLPrefix)
	slog.Info("Attachment store ready", "dir", files.Dir(), "prefix", files.Prefix())

	// Create services
	noteService := service.NewNoteService(noteRepo, files, cfg.MaxUploadFiles)
	groupService := service.NewGroupService(groupRepo)

	// Create router with dependencies
	deps := &http.Deps{
		NoteService:     noteService,
		GroupService:    groupService,
		Renderer:        markdown.NewRenderer(cfg.RenderRawHTML),
		DB:              db,
		UploadDir:       files.Dir(),
		UploadURLPrefix: files.Prefix(),
		MaxUploadBytes:  int64(cfg.MaxUploadMemoryMB) << 20,
		IndexHTML:       web.IndexHTML,
	}
	router := http.NewRouter(deps)

	// Start API server
	server := &nethttp.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	slog.Info("Starting API server", "addr", server.Addr, "max_upload_files", cfg.MaxUploadFiles)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
