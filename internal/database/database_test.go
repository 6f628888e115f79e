package database

import (
	"path/filepath"
	"testing"
)

func TestOpenRunsMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "media.db")
	conn, err := Open(Config{Path: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer conn.Close()

	var count int
	if err := conn.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count); err != nil {
		t.Fatalf("failed to count migrations: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 applied migrations, got %d", count)
	}

	for _, table := range []string{"media_records", "scan_jobs"} {
		var name string
		err := conn.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Fatalf("expected table %s: %v", table, err)
		}
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "media.db")
	conn, err := Open(Config{Path: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	conn.Close()

	conn, err = Open(Config{Path: path})
	if err != nil {
		t.Fatalf("expected reopen to succeed: %v", err)
	}
	defer conn.Close()

	migrations, err := NewMigrationManager(conn, Migrations).LoadMigrations()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(migrations) != 2 || migrations[0].Version != 1 || migrations[1].Name != "002_create_scan_jobs" {
		t.Fatalf("unexpected migrations %+v", migrations)
	}
}
