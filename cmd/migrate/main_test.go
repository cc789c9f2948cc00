package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDescriptionFromFilename(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"2026-01-10-001-create-migrations.sql", "create migrations"},
		{"2026-01-10-004-daily-summary.sql", "daily summary"},
		{"no-prefix.sql", "no prefix"},
	}
	for _, tt := range tests {
		if got := descriptionFromFilename(tt.name); got != tt.want {
			t.Errorf("descriptionFromFilename(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestMigrationFiles_Sorted(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"2026-01-10-002-b.sql", "2026-01-10-001-a.sql", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := migrationFiles(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d: %v", len(files), files)
	}
	if filepath.Base(files[0]) != "2026-01-10-001-a.sql" {
		t.Errorf("expected 001 first, got %s", filepath.Base(files[0]))
	}
}

func TestMigrationFiles_Empty(t *testing.T) {
	if _, err := migrationFiles(t.TempDir()); err == nil {
		t.Error("expected error for a directory without migrations")
	}
}
