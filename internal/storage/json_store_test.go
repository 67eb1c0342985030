package storage

import (
	"errors"
	"path/filepath"
	"testing"
)

func setupJSONStore(t *testing.T) *JSONStore {
	t.Helper()
	s := NewJSONStore(filepath.Join(t.TempDir(), "mindcalm.json"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return s
}

func TestJSONStoreRoundTrip(t *testing.T) {
	s := setupJSONStore(t)

	if err := s.Set("medications", []byte(`[{"id":"m1","name":"Sertraline"}]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	reloaded := NewJSONStore(s.GetConfigPath())
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	got, err := reloaded.Get("medications")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `[{"id":"m1","name":"Sertraline"}]` {
		t.Errorf("unexpected document: %s", got)
	}
}

func TestJSONStoreErrors(t *testing.T) {
	s := setupJSONStore(t)

	if err := s.Init(); !errors.Is(err, ErrAlreadyInitialized) {
		t.Errorf("expected ErrAlreadyInitialized on second Init, got %v", err)
	}
	if err := s.Set("moods", []byte(`{not json`)); err == nil {
		t.Error("expected invalid JSON to be rejected")
	}
	if _, err := s.Get("moods"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}

	missing := NewJSONStore(filepath.Join(t.TempDir(), "none.json"))
	if err := missing.Load(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
	if _, err := missing.Keys(); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("expected ErrNotLoaded, got %v", err)
	}
}

func TestCopy(t *testing.T) {
	src := setupJSONStore(t)
	dst := setupJSONStore(t)

	_ = src.Set("moods", []byte(`[]`))
	_ = src.Set("theme", []byte(`"light"`))
	_ = dst.Set("theme", []byte(`"dark"`))

	n, err := Copy(dst, src)
	if err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 keys copied, got %d", n)
	}
	got, _ := dst.Get("theme")
	if string(got) != `"light"` {
		t.Errorf("expected source value to overwrite destination, got %s", got)
	}
}
