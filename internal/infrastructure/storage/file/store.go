// Package file provides the file-backed store implementation. It is the
// browser-profile analog of localStorage: a single JSON file holding one
// entry per key, surviving restarts of the embedding process.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const storeFileName = "sessions.json"

// Config holds file store configuration.
type Config struct {
	// Dir is the directory holding the store file. Empty means a
	// "pfc-widget" directory under the user config dir.
	Dir string
}

// Store implements the storage.Store interface on a JSON file.
// Writes are serialized by a process-level mutex; concurrent processes
// writing the same file race and the last writer wins.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a new file store, creating the directory if needed.
func NewStore(cfg Config) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve user config dir: %w", err)
		}
		dir = filepath.Join(configDir, "pfc-widget")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}

	return &Store{
		path: filepath.Join(dir, storeFileName),
	}, nil
}

// Get retrieves a value by key.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return "", false, err
	}

	value, ok := entries[key]
	return value, ok, nil
}

// Set stores a value under the given key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}

	entries[key] = value
	return s.save(entries)
}

// Delete removes a key from the store.
func (s *Store) Delete(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return false, err
	}

	if _, ok := entries[key]; !ok {
		return false, nil
	}

	delete(entries, key)
	if err := s.save(entries); err != nil {
		return false, err
	}
	return true, nil
}

// Close releases the store. It is a no-op for the file store.
func (s *Store) Close() error {
	return nil
}

// load reads the store file. A missing file yields an empty map; a corrupted
// file is treated as empty rather than blocking session creation.
func (s *Store) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return map[string]string{}, nil
	}
	if entries == nil {
		entries = map[string]string{}
	}
	return entries, nil
}

// save writes the store file atomically via a temp file rename.
func (s *Store) save(entries map[string]string) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal store entries: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}
