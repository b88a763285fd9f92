package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort           string
	DBPath            string
	UploadDir         string
	UploadURLPrefix   string
	MaxUploadFiles    int
	MaxUploadMemoryMB int
	RenderRawHTML     bool
	LogLevel          slog.Level
	LogFormat         string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for every field, so an empty environment yields a working setup.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	// Walk up to find a project level .env
	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		APIPort:         getEnv("API_PORT", "5000"),
		DBPath:          getEnv("DB_PATH", "./database.sqlite"),
		UploadDir:       getEnv("UPLOAD_DIR", "./uploads"),
		UploadURLPrefix: getEnv("UPLOAD_URL_PREFIX", "/uploads"),
		LogFormat:       strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	if cfg.MaxUploadFiles, err = getEnvInt("MAX_UPLOAD_FILES", 10); err != nil {
		return nil, err
	}
	if cfg.MaxUploadMemoryMB, err = getEnvInt("MAX_UPLOAD_MEMORY_MB", 32); err != nil {
		return nil, err
	}

	renderRaw, err := strconv.ParseBool(getEnv("RENDER_RAW_HTML", "false"))
	if err != nil {
		return nil, fmt.Errorf("RENDER_RAW_HTML must be a boolean: %w", err)
	}
	cfg.RenderRawHTML = renderRaw

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}
	if !strings.HasPrefix(cfg.UploadURLPrefix, "/") || cfg.UploadURLPrefix == "/" {
		return nil, fmt.Errorf("UPLOAD_URL_PREFIX must be an absolute path below /, got %q", cfg.UploadURLPrefix)
	}

	// Create the database directory if it doesn't exist
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt parses a positive integer environment variable.
func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}
	return v, nil
}
