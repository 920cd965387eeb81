// Package session provides durable conversation identity for the widget.
package session

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pfcsearch/widget-runtime/internal/core/storage"
	domainerrors "github.com/pfcsearch/widget-runtime/internal/domain/errors"
	"github.com/pfcsearch/widget-runtime/internal/pkg/logging"
)

// keyPrefix namespaces session entries away from anything else sharing the
// underlying store.
const keyPrefix = "pfc:widget:session:"

// defaultSourceKey is the sentinel for the empty (default tenant) source id.
const defaultSourceKey = "default"

// Service hands out one durable session id per source. The first request for
// a source mints an identifier and persists it; later requests return the
// stored value. A session id returned by the answering service supersedes the
// active one for the rest of the process but is not written back unless
// explicitly saved.
type Service struct {
	mu     sync.Mutex
	store  storage.Store
	active map[string]string
	logger zerolog.Logger
}

// NewService creates a session service over the given store. A nil store is
// valid and behaves like a store that always fails: every id is ephemeral.
func NewService(store storage.Store) *Service {
	return &Service{
		store:  store,
		active: make(map[string]string),
		logger: logging.Component("session"),
	}
}

// GetOrCreate returns the active session id for the source, minting and
// persisting one on first use. Storage failures degrade to an ephemeral id
// for this process; they never fail widget initialization.
func (s *Service) GetOrCreate(ctx context.Context, sourceID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := Key(sourceID)
	if id, ok := s.active[key]; ok {
		return id
	}

	if s.store != nil {
		stored, ok, err := s.store.Get(ctx, key)
		if err != nil {
			s.logger.Debug().Err(err).Str("source_id", sourceID).
				Msg("session storage read failed, using ephemeral id")
		} else if ok && stored != "" {
			s.active[key] = stored
			return stored
		}
	}

	id := newSessionID()
	if s.store != nil {
		if err := s.store.Set(ctx, key, id); err != nil {
			s.logger.Debug().Err(err).Str("source_id", sourceID).
				Msg("session storage write failed, id is ephemeral")
		}
	}
	s.active[key] = id
	return id
}

// Adopt replaces the active session id for the source when the answering
// service returns a different one. The replacement is in-memory only.
func (s *Service) Adopt(sourceID, sessionID string) {
	if sessionID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[Key(sourceID)] = sessionID
}

// Save persists the active session id for the source. Adoption does not save
// automatically; this is the explicit re-save hook.
func (s *Service) Save(ctx context.Context, sourceID string) error {
	s.mu.Lock()
	id, ok := s.active[Key(sourceID)]
	s.mu.Unlock()

	if !ok || s.store == nil {
		return nil
	}
	if err := s.store.Set(ctx, Key(sourceID), id); err != nil {
		return domainerrors.NewStorageError(err)
	}
	return nil
}

// Key returns the namespaced storage key for a source id.
func Key(sourceID string) string {
	if sourceID == "" {
		return keyPrefix + defaultSourceKey
	}
	return keyPrefix + sourceID
}

// newSessionID mints a UUID-quality identifier, falling back to a
// time-plus-random value when the crypto source is unavailable.
func newSessionID() string {
	if id, err := uuid.NewRandom(); err == nil {
		return id.String()
	}
	return fmt.Sprintf("%d-%08x", time.Now().UnixNano(), rand.Uint32())
}
