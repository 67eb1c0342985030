package migration

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestApplyMigrations(t *testing.T) {
	db := openTestDB(t)
	fsys := fstest.MapFS{
		"001_kv.sql":      {Data: []byte("CREATE TABLE kv (key TEXT PRIMARY KEY, value TEXT);")},
		"002_touched.sql": {Data: []byte("ALTER TABLE kv ADD COLUMN updated_at TEXT;")},
		"README.md":       {Data: []byte("ignored")},
	}
	r := NewRunner(db, fsys)

	var lines []string
	n, err := r.Apply(func(s string) { lines = append(lines, s) })
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 migrations applied, got %d", n)
	}
	if len(lines) == 0 || !strings.Contains(lines[0], "from version 0 to 2") {
		t.Errorf("unexpected progress output: %v", lines)
	}

	v, err := r.CurrentVersion()
	if err != nil || v != 2 {
		t.Errorf("expected version 2, got %d (%v)", v, err)
	}

	n, err = r.Apply(nil)
	if err != nil || n != 0 {
		t.Errorf("expected second Apply to be a no-op, got %d (%v)", n, err)
	}
}

func TestApplyRollsBackFailedMigration(t *testing.T) {
	db := openTestDB(t)
	r := NewRunner(db, fstest.MapFS{
		"001_ok.sql":  {Data: []byte("CREATE TABLE a (id INTEGER);")},
		"002_bad.sql": {Data: []byte("CREATE TABLE nope (")},
	})

	n, err := r.Apply(nil)
	if err == nil {
		t.Fatal("expected error from broken migration")
	}
	if n != 1 {
		t.Errorf("expected 1 migration applied before the failure, got %d", n)
	}
	if v, _ := r.CurrentVersion(); v != 1 {
		t.Errorf("expected version to stay at 1, got %d", v)
	}
}

func TestMigrationsValidation(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{name: "bad name", fsys: fstest.MapFS{"init.sql": {Data: []byte("")}}},
		{name: "zero version", fsys: fstest.MapFS{"000_init.sql": {Data: []byte("")}}},
		{name: "duplicate", fsys: fstest.MapFS{"001_a.sql": {Data: []byte("")}, "01_b.sql": {Data: []byte("")}}},
		{name: "gap", fsys: fstest.MapFS{"001_a.sql": {Data: []byte("")}, "003_c.sql": {Data: []byte("")}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRunner(openTestDB(t), tt.fsys).Migrations(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestStatusRejectsNewerSchema(t *testing.T) {
	db := openTestDB(t)
	r := NewRunner(db, fstest.MapFS{"001_a.sql": {Data: []byte("CREATE TABLE a (id INTEGER);")}})
	if _, err := r.Apply(nil); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 5"); err != nil {
		t.Fatalf("failed to bump version: %v", err)
	}
	if _, err := r.Status(); !errors.Is(err, ErrSchemaTooNew) {
		t.Errorf("expected ErrSchemaTooNew, got %v", err)
	}
}
