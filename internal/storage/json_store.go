package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// jsonFile is the on-disk layout of a JSONStore.
type jsonFile struct {
	Version   int                        `json:"version"`
	Documents map[string]json.RawMessage `json:"documents"`
}

// JSONStore keeps every document in a single JSON file and rewrites the file
// on each mutation.
type JSONStore struct {
	path string
	file *jsonFile
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{path: configPath}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("%w at %s", ErrAlreadyInitialized, s.path)
	}

	s.file = &jsonFile{Version: 1, Documents: map[string]json.RawMessage{}}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	f := &jsonFile{}
	if err := json.Unmarshal(data, f); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if f.Documents == nil {
		f.Documents = map[string]json.RawMessage{}
	}
	s.file = f
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal storage: %w", err)
	}

	// Write to a sibling file first so a crash never leaves a torn document.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return os.Rename(tmp, s.path)
}

func (s *JSONStore) Get(key string) ([]byte, error) {
	if s.file == nil {
		return nil, ErrNotLoaded
	}
	v, ok := s.file.Documents[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	// The file is indented on disk; callers get the compact form.
	var buf bytes.Buffer
	if err := json.Compact(&buf, v); err != nil {
		return nil, fmt.Errorf("stored document %q is corrupt: %w", key, err)
	}
	return buf.Bytes(), nil
}

func (s *JSONStore) Set(key string, value []byte) error {
	if s.file == nil {
		return ErrNotLoaded
	}
	if !json.Valid(value) {
		return fmt.Errorf("refusing to store invalid JSON under %q", key)
	}
	s.file.Documents[key] = append(json.RawMessage(nil), value...)
	return s.save()
}

func (s *JSONStore) Delete(key string) error {
	if s.file == nil {
		return ErrNotLoaded
	}
	if _, ok := s.file.Documents[key]; !ok {
		return nil
	}
	delete(s.file.Documents, key)
	return s.save()
}

func (s *JSONStore) Keys() ([]string, error) {
	if s.file == nil {
		return nil, ErrNotLoaded
	}
	keys := make([]string, 0, len(s.file.Documents))
	for k := range s.file.Documents {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
