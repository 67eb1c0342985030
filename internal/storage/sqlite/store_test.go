package sqlite

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/mindcalm/internal/storage"
)

func setupTestDB(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSetGet(t *testing.T) {
	store := setupTestDB(t)

	if err := store.Set("theme", []byte(`"dark"`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err := store.Get("theme")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `"dark"` {
		t.Errorf("expected theme to be %q, got %q", `"dark"`, got)
	}

	if _, err := store.Get("moods"); !errors.Is(err, storage.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound for missing key, got %v", err)
	}
}

func TestOverwriteKeepsHistory(t *testing.T) {
	store := setupTestDB(t)

	for _, v := range []string{`[]`, `[{"id":"a"}]`, `[{"id":"a"},{"id":"b"}]`} {
		if err := store.Set("worries", []byte(v)); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	revs, err := store.History("worries", 10)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(revs) != 2 {
		t.Fatalf("expected 2 revisions, got %d", len(revs))
	}
	if revs[0].Value != `[{"id":"a"}]` || revs[1].Value != `[]` {
		t.Errorf("expected newest revision first, got %+v", revs)
	}
	if revs[0].ChangedAt.IsZero() {
		t.Error("expected revision timestamp to be parsed")
	}

	rev, err := store.Revision(revs[1].ID)
	if err != nil || rev.Value != `[]` {
		t.Errorf("Revision(%d) = %+v, %v", revs[1].ID, rev, err)
	}
}

func TestDeleteAndKeys(t *testing.T) {
	store := setupTestDB(t)

	_ = store.Set("moods", []byte(`[]`))
	_ = store.Set("lifestyle", []byte(`[]`))

	keys, err := store.Keys()
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if len(keys) != 2 || keys[0] != "lifestyle" || keys[1] != "moods" {
		t.Errorf("expected sorted keys [lifestyle moods], got %v", keys)
	}

	if err := store.Delete("moods"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete("moods"); err != nil {
		t.Errorf("deleting a missing key should be a no-op, got %v", err)
	}
	if _, err := store.Get("moods"); !errors.Is(err, storage.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound after delete, got %v", err)
	}
	revs, _ := store.History("moods", 0)
	if len(revs) != 1 {
		t.Errorf("expected deleted value to be archived, got %d revisions", len(revs))
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mindcalm.db")

	if err := NewStore(path).Load(); !errors.Is(err, storage.ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}

	store := NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	_ = store.Set("gad7History", []byte(`[{"score":7}]`))
	store.Close()

	reopened := NewStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get("gad7History")
	if err != nil || string(got) != `[{"score":7}]` {
		t.Errorf("expected persisted value, got %q (%v)", got, err)
	}
}

func TestClosedStore(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "x.db"))
	if _, err := store.Get("moods"); !errors.Is(err, storage.ErrNotLoaded) {
		t.Errorf("expected ErrNotLoaded before Load, got %v", err)
	}
}
