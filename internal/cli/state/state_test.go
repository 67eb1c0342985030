package state

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/mindcalm/internal/cli"
	"github.com/julianstephens/mindcalm/internal/config"
	"github.com/julianstephens/mindcalm/internal/models"
	"github.com/julianstephens/mindcalm/internal/storage"
	"github.com/julianstephens/mindcalm/internal/storage/sqlite"
	"github.com/julianstephens/mindcalm/internal/tracker"
)

func setupTestDB(t *testing.T) (*cli.Context, *sqlite.Store) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "mindcalm.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cfg := config.Default()
	cfg.Storage.Backups = false
	return &cli.Context{Store: store, Config: cfg}, store
}

func TestStateSetAndGet(t *testing.T) {
	ctx, _ := setupTestDB(t)

	if err := (&StateSetCmd{Key: "theme", Value: `"dark"`}).Run(ctx); err != nil {
		t.Fatalf("state set failed: %v", err)
	}
	tr, err := ctx.Tracker()
	if err != nil {
		t.Fatal(err)
	}
	if tr.Theme() != models.ThemeDark {
		t.Errorf("tracker theme = %s, want dark", tr.Theme())
	}
	if err := (&StateGetCmd{Key: "theme"}).Run(ctx); err != nil {
		t.Errorf("state get failed: %v", err)
	}
	if err := (&StateKeysCmd{}).Run(ctx); err != nil {
		t.Errorf("state keys failed: %v", err)
	}
}

func TestStateSet_Rejects(t *testing.T) {
	ctx, _ := setupTestDB(t)

	err := (&StateSetCmd{Key: "habits", Value: `[]`}).Run(ctx)
	if !errors.Is(err, tracker.ErrUnknownKey) {
		t.Errorf("expected ErrUnknownKey, got %v", err)
	}
	err = (&StateSetCmd{Key: "moods", Value: `{not json`}).Run(ctx)
	if !errors.Is(err, tracker.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestStateGet_Missing(t *testing.T) {
	ctx, _ := setupTestDB(t)

	if err := (&StateGetCmd{Key: "worries"}).Run(ctx); err == nil {
		t.Error("expected error for key with no document")
	}
}

func TestStateDelete(t *testing.T) {
	ctx, store := setupTestDB(t)
	if err := store.Set("theme", []byte(`"dark"`)); err != nil {
		t.Fatal(err)
	}

	if err := (&StateDeleteCmd{Key: "theme"}).Run(ctx); err != nil {
		t.Fatalf("state delete failed: %v", err)
	}
	if _, err := store.Get("theme"); !errors.Is(err, storage.ErrKeyNotFound) {
		t.Errorf("expected key removed, got %v", err)
	}
	tr, _ := ctx.Tracker()
	if tr.Theme() != models.ThemeLight {
		t.Errorf("theme after delete = %s, want light", tr.Theme())
	}
}

func TestStateHistoryAndRestore(t *testing.T) {
	ctx, store := setupTestDB(t)
	for _, v := range []string{`"dark"`, `"light"`} {
		if err := store.Set("theme", []byte(v)); err != nil {
			t.Fatal(err)
		}
	}

	if err := (&StateHistoryCmd{Key: "theme", Limit: 10}).Run(ctx); err != nil {
		t.Fatalf("state history failed: %v", err)
	}
	revs, err := store.History("theme", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(revs) != 1 || revs[0].Value != `"dark"` {
		t.Fatalf("unexpected history: %+v", revs)
	}

	if err := (&StateRestoreCmd{ID: revs[0].ID}).Run(ctx); err != nil {
		t.Fatalf("state restore failed: %v", err)
	}
	got, err := store.Get("theme")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `"dark"` {
		t.Errorf("theme after restore = %s, want \"dark\"", got)
	}

	if err := (&StateRestoreCmd{ID: 9999}).Run(ctx); err == nil {
		t.Error("expected error restoring unknown revision")
	}
}

func TestStateHistory_RequiresSQL(t *testing.T) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "data.json"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	ctx := &cli.Context{Store: store, Config: config.Default()}

	if err := (&StateHistoryCmd{Key: "theme"}).Run(ctx); err == nil {
		t.Error("expected history to require SQL storage")
	}
}
