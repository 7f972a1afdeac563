package db

import (
	"path/filepath"
	"testing"
)

func TestEnsureSchemaIdempotent(t *testing.T) {
	database := NewTestDB(t)

	// A second run must not fail on existing objects.
	if err := EnsureSchema(database); err != nil {
		t.Fatalf("EnsureSchema (second run): %v", err)
	}

	var indexes []string
	err := database.Select(&indexes,
		`SELECT name FROM sqlite_master
		 WHERE type = 'index' AND tbl_name = 'wardrobe_items' AND name LIKE 'idx_%'
		 ORDER BY name`)
	if err != nil {
		t.Fatalf("listing indexes: %v", err)
	}
	want := []string{"idx_wardrobe_items_created_at", "idx_wardrobe_items_type"}
	if len(indexes) != len(want) {
		t.Fatalf("expected indexes %v, got %v", want, indexes)
	}
	for i := range want {
		if indexes[i] != want[i] {
			t.Errorf("expected index %q, got %q", want[i], indexes[i])
		}
	}
}

func TestSchemaRejectsUnknownCategory(t *testing.T) {
	database := NewTestDB(t)

	_, err := database.Exec(
		`INSERT INTO wardrobe_items (item_name, type, image_url, created_at) VALUES (?, ?, ?, ?)`,
		"hat", "hats", "data:,", "2026-01-01T00:00:00.000000000Z",
	)
	if err == nil {
		t.Error("expected CHECK constraint to reject unknown category")
	}
}

func TestSchemaRejectsBlankName(t *testing.T) {
	database := NewTestDB(t)

	_, err := database.Exec(
		`INSERT INTO wardrobe_items (item_name, type, image_url, created_at) VALUES (?, ?, ?, ?)`,
		"   ", "tops", "data:,", "2026-01-01T00:00:00.000000000Z",
	)
	if err == nil {
		t.Error("expected CHECK constraint to reject blank name")
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garderoba.sqlite3")

	database, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer database.Close()

	if err := EnsureSchema(database); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}

	var mode string
	if err := database.Get(&mode, "PRAGMA journal_mode"); err != nil {
		t.Fatalf("reading journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("expected journal_mode wal, got %q", mode)
	}
}
