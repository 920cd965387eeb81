// Package storage provides the storage type constants.
package storage

// Type represents the type of session store backend.
type Type string

const (
	// TypeFile represents the file-backed store, the per-browser-profile
	// analog used by default.
	TypeFile Type = "file"
	// TypeRedis represents a Redis-backed store for shared deployments.
	TypeRedis Type = "redis"
	// TypeMemory represents the ephemeral in-memory store.
	TypeMemory Type = "memory"
)
