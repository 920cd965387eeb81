// Package storage defines the durable keyed store interface.
package storage

import "context"

// Store defines the interface for durable key/value persistence. It backs the
// session identity store: one entry per source, value an opaque session id.
// Implementations are shared across widget instances; concurrent writers for
// the same key race and the last write wins, by design.
type Store interface {
	// Get retrieves a value by key. The second return is false when the
	// key does not exist.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores a value under the given key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes a key from the store.
	// Returns true if the key was deleted, false if it didn't exist.
	Delete(ctx context.Context, key string) (bool, error)

	// Close releases any resources held by the store.
	Close() error
}
