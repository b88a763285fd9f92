package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"notesboard/internal/contextutil"
)

// Pinger reports whether the database is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	db                 Pinger
	uploadDir          string
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db Pinger, uploadDir string) *HealthHandler {
	return &HealthHandler{
		db:                 db,
		uploadDir:          uploadDir,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Overall health status: "healthy" or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// List of issues (only present if status is unhealthy)
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP reports the health of the database and the upload directory.
// Returns 200 OK if healthy, 503 Service Unavailable otherwise.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	checks := make(map[string]string)
	var issues []string

	if h.checkDatabase(checkCtx, logger) {
		checks["database"] = "ok"
	} else {
		checks["database"] = "error"
		issues = append(issues, "database_unavailable")
	}

	if h.checkUploadDir(ctx, logger) {
		checks["uploads"] = "ok"
	} else {
		checks["uploads"] = "error"
		issues = append(issues, "upload_dir_unavailable")
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if len(issues) > 0 {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Issues:    issues,
	}
	writeJSON(ctx, w, httpStatus, response)
}

func (h *HealthHandler) checkDatabase(ctx context.Context, logger *slog.Logger) bool {
	if err := h.db.PingContext(ctx); err != nil {
		logger.WarnContext(ctx, "database health check failed", "error", err)
		return false
	}
	return true
}

// checkUploadDir accepts a missing directory since it is created on first upload.
func (h *HealthHandler) checkUploadDir(ctx context.Context, logger *slog.Logger) bool {
	info, err := os.Stat(h.uploadDir)
	if os.IsNotExist(err) {
		return true
	}
	if err == nil && !info.IsDir() {
		err = fmt.Errorf("%s is not a directory", h.uploadDir)
	}
	if err != nil {
		logger.WarnContext(ctx, "upload directory health check failed", "dir", h.uploadDir, "error", err)
		return false
	}
	return true
}
