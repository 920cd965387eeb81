// Package memory provides the ephemeral in-memory store implementation.
// It is the fallback when durable storage is unavailable: entries live only
// for the current process, mirroring a browser with storage disabled.
package memory

import (
	"context"
	"sync"
)

// Store implements the storage.Store interface in memory.
type Store struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		entries: make(map[string]string),
	}
}

// Get retrieves a value by key.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.entries[key]
	return value, ok, nil
}

// Set stores a value under the given key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = value
	return nil
}

// Delete removes a key from the store.
func (s *Store) Delete(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.entries[key]
	delete(s.entries, key)
	return ok, nil
}

// Close releases the store. It is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}
