package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
)

// newTestDB opens a migrated database in a temp directory.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return db
}

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{
			name:    "valid path",
			path:    dbPath,
			wantErr: false,
		},
		{
			name:    "invalid path",
			path:    "/invalid/path/to/db.db",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := New(tt.path)

			if tt.wantErr {
				if err == nil {
					t.Errorf("New() expected error, got nil")
				}
				if db != nil {
					_ = db.Close()
				}
				return
			}

			if err != nil {
				t.Errorf("New() unexpected error: %v", err)
				return
			}

			if db == nil {
				t.Fatal("New() returned nil database")
			}

			// Verify connection pool settings
			if db.Stats().MaxOpenConnections != 25 {
				t.Errorf("New() MaxOpenConnections = %v, want 25", db.Stats().MaxOpenConnections)
			}

			_ = db.Close()
		})
	}
}

func TestNew_ForeignKeysNotEnforced(t *testing.T) {
	db := newTestDB(t)

	var fkEnabled int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&fkEnabled); err != nil {
		t.Fatalf("Failed to check foreign keys: %v", err)
	}
	if fkEnabled != 0 {
		t.Error("New() should leave foreign keys disabled")
	}

	// A note may reference a group that does not exist.
	if _, err := db.Exec("INSERT INTO notes (title, content, group_id) VALUES ('t', 'c', 999)"); err != nil {
		t.Errorf("insert with dangling group_id failed: %v", err)
	}
}

func TestMigrate(t *testing.T) {
	db := newTestDB(t)

	tables := []string{"note_groups", "notes"}
	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		if err != nil {
			t.Fatalf("Failed to check table %s: %v", table, err)
		}
		if count != 1 {
			t.Errorf("Migrate() table %s not created", table)
		}
	}

	var index int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name='idx_notes_group_id'").Scan(&index)
	if err != nil {
		t.Fatalf("Failed to check index: %v", err)
	}
	if index != 1 {
		t.Error("Migrate() group_id index not created")
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newTestDB(t)

	// newTestDB already migrated once
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() second run error = %v", err)
	}

	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='notes'").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to check notes table: %v", err)
	}
	if count != 1 {
		t.Error("Migrate() notes table not found after second run")
	}
}

func TestNew_InvalidPath(t *testing.T) {
	// Try to create database in non-existent directory
	invalidPath := "/nonexistent/path/test.db"

	db, err := New(invalidPath)
	if err == nil {
		if db != nil {
			_ = db.Close()
		}
		t.Error("New() with invalid path should return error")
	}
}
