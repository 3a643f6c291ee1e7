// ABOUTME: Tests for database initialization and entity CRUD
// ABOUTME: Runs against real in-memory SQLite databases
package db

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenDatabase(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := OpenDatabase(dbPath)
	if err != nil {
		t.Fatalf("OpenDatabase failed: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table'").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query tables: %v", err)
	}
	if count < 5 {
		t.Errorf("Expected at least 5 tables, got %d", count)
	}

	var mode string
	err = db.QueryRow("PRAGMA journal_mode").Scan(&mode)
	if err != nil {
		t.Fatalf("Failed to query journal mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("Expected WAL mode, got %s", mode)
	}
}

func TestOpenDatabaseReinitialize(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := OpenDatabase(dbPath)
	if err != nil {
		t.Fatalf("Initial OpenDatabase failed: %v", err)
	}
	db.Close()

	// Re-opening must tolerate existing tables and already-added columns.
	db, err = OpenDatabase(dbPath)
	if err != nil {
		t.Fatalf("OpenDatabase re-initialization failed: %v", err)
	}
	defer db.Close()
}

func TestEnsureColumnsUpgradesLegacyTable(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := OpenDatabase(dbPath)
	if err != nil {
		t.Fatalf("OpenDatabase failed: %v", err)
	}
	defer db.Close()

	// Simulate a pre-links database by rebuilding people without the column.
	stmts := []string{
		"DROP TABLE people",
		`CREATE TABLE people (
			id TEXT PRIMARY KEY, company_id TEXT NOT NULL, name TEXT NOT NULL,
			title TEXT, linkedin_url TEXT, relationship TEXT NOT NULL DEFAULT 'cold',
			why_reached_out TEXT NOT NULL, sponsor_confidence TEXT NOT NULL DEFAULT 'unknown',
			status TEXT NOT NULL DEFAULT 'open', created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("setup failed: %v", err)
		}
	}

	if err := ensureColumns(db); err != nil {
		t.Fatalf("ensureColumns failed: %v", err)
	}

	columns, err := tableColumns(db, "people")
	if err != nil {
		t.Fatalf("tableColumns failed: %v", err)
	}
	for _, want := range []string{"links", "outreach_channels"} {
		if _, ok := columns[want]; !ok {
			t.Errorf("expected column %q after ensureColumns", want)
		}
	}
}
