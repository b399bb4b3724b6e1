// Package memory provides an in-memory blob store. It is safe for concurrent
// use and is the default backend for tests and local development.
package memory

import (
	"context"
	"sync"

	"github.com/growthlab-hq/apps-deals-service/internal/app/storage"
)

// Store is a mutex-guarded map of keyed blobs.
type Store struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

var _ storage.Store = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{blobs: make(map[string][]byte)}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.blobs[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, true, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw := make([]byte, len(value))
	copy(raw, value)
	s.blobs[key] = raw
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.blobs, key)
	return nil
}
