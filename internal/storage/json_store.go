package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

type document struct {
	Version int               `json:"version"`
	Entries map[string]string `json:"entries"`
}

// JSONStore keeps every entry in one JSON file, rewritten on each change.
type JSONStore struct {
	path string
	doc  *document
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

// Init creates the file when missing and loads it otherwise.
func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.doc = &document{
		Version: 1,
		Entries: make(map[string]string),
	}
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

	doc := &document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Entries == nil {
		doc.Entries = make(map[string]string)
	}
	s.doc = doc

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save writes to a sibling temp file and renames it over the original.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) Get(key string) (string, error) {
	if s.doc == nil {
		return "", ErrNotLoaded
	}

	value, ok := s.doc.Entries[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (s *JSONStore) Set(key, value string) error {
	if s.doc == nil {
		return ErrNotLoaded
	}

	s.doc.Entries[key] = value
	return s.save()
}

// SetMany writes all entries with a single file rewrite.
func (s *JSONStore) SetMany(entries map[string]string) error {
	if s.doc == nil {
		return ErrNotLoaded
	}

	for k, v := range entries {
		s.doc.Entries[k] = v
	}
	return s.save()
}

func (s *JSONStore) Delete(key string) error {
	if s.doc == nil {
		return ErrNotLoaded
	}

	if _, ok := s.doc.Entries[key]; !ok {
		return nil
	}
	delete(s.doc.Entries, key)
	return s.save()
}

func (s *JSONStore) Keys() ([]string, error) {
	if s.doc == nil {
		return nil, ErrNotLoaded
	}

	keys := make([]string, 0, len(s.doc.Entries))
	for k := range s.doc.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// GetConfigPath returns the path to the underlying storage file.
func (s *JSONStore) GetConfigPath() string {
	return s.path
}
