package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

func schemaVersion(t *testing.T, db *sql.DB) int {
	t.Helper()
	v, err := SchemaVersion(db)
	if err != nil {
		t.Fatalf("schema version: %v", err)
	}
	return v
}

func TestMigrateUpDownTracksVersion(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if got := schemaVersion(t, db); got != 0 {
		t.Fatalf("fresh db should be at version 0, got %d", got)
	}
	if err := MigrateUp(db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}
	if got := schemaVersion(t, db); got != 1 {
		t.Fatalf("expected version 1 after up, got %d", got)
	}
	if err := MigrateUp(db); err != nil {
		t.Fatalf("repeated migrate up should be a no-op: %v", err)
	}

	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}
	if got := schemaVersion(t, db); got != 0 {
		t.Fatalf("expected version 0 after down, got %d", got)
	}
	var tables int
	if err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'todos'`).Scan(&tables); err != nil {
		t.Fatalf("inspect schema: %v", err)
	}
	if tables != 0 {
		t.Fatal("todos table should be dropped after down")
	}

	if err := MigrateUp(db); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}

	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	if err := repo.CreateTodo(t.Context(), Todo{ID: 1, Title: "Roundtrip todo", SyncedAt: now}); err != nil {
		t.Fatalf("insert after roundtrip failed: %v", err)
	}

	got, err := repo.GetTodo(t.Context(), 1)
	if err != nil {
		t.Fatalf("get after roundtrip failed: %v", err)
	}
	if got.Title != "Roundtrip todo" {
		t.Fatalf("unexpected title after roundtrip: %q", got.Title)
	}
}

func TestListMigrationsOrdered(t *testing.T) {
	ups, err := listMigrations(".up.sql")
	if err != nil {
		t.Fatalf("list migrations: %v", err)
	}
	if len(ups) == 0 || ups[0].version != 1 {
		t.Fatalf("expected migrations starting at version 1, got %+v", ups)
	}
	for i := 1; i < len(ups); i++ {
		if ups[i].version <= ups[i-1].version {
			t.Fatalf("migrations out of order: %+v", ups)
		}
	}
}
