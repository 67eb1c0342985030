package storage

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	// ErrKeyNotFound is returned by Get when nothing is stored under a key
	ErrKeyNotFound = errors.New("key not found")
	// ErrNotInitialized is returned by Load when the backing store does not exist yet
	ErrNotInitialized = errors.New("storage not initialized, run 'mindcalm init' first")
	// ErrNotLoaded is returned by data operations before Init or Load
	ErrNotLoaded = errors.New("storage not loaded")
	// ErrAlreadyInitialized is returned by Init when the store already exists
	ErrAlreadyInitialized = errors.New("storage already initialized")
)

// Provider is a flat key/value store of JSON documents. Every write replaces
// the whole document under its key.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Documents
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}

// Revision is a prior value of a key, kept when it was overwritten or deleted.
type Revision struct {
	ID        int64     `json:"id"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	ChangedAt time.Time `json:"changedAt"`
}

// Historian is implemented by providers that keep overwritten values.
type Historian interface {
	History(key string, limit int) ([]Revision, error)
	Revision(id int64) (Revision, error)
}

// Copy writes every key from src into dst and returns the number of keys copied.
func Copy(dst, src Provider) (int, error) {
	keys, err := src.Keys()
	if err != nil {
		return 0, fmt.Errorf("failed to list source keys: %w", err)
	}
	sort.Strings(keys)

	for i, k := range keys {
		v, err := src.Get(k)
		if err != nil {
			return i, fmt.Errorf("failed to read %q from source: %w", k, err)
		}
		if err := dst.Set(k, v); err != nil {
			return i, fmt.Errorf("failed to write %q to destination: %w", k, err)
		}
	}
	return len(keys), nil
}
