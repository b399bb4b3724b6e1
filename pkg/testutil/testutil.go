// Package testutil provides common testing utilities and mock implementations.
package testutil

import (
	"context"
	"io"
	"sync"

	"github.com/growthlab-hq/apps-deals-service/pkg/logger"
)

// QuietLogger returns a logger that discards all output.
func QuietLogger() *logger.Logger {
	log := logger.NewDefault("test")
	log.SetOutput(io.Discard)
	return log
}

// FailingStore is a blob store whose every operation fails with the
// configured error. Tests use it to verify storage failures degrade to empty
// collections instead of surfacing.
type FailingStore struct {
	Err error
}

func (f *FailingStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, f.Err }
func (f *FailingStore) Set(context.Context, string, []byte) error         { return f.Err }
func (f *FailingStore) Delete(context.Context, string) error              { return f.Err }

// RecordingStore wraps raw blobs in memory and counts writes, letting tests
// assert how often state was persisted.
type RecordingStore struct {
	mu     sync.Mutex
	blobs  map[string][]byte
	writes int
}

// NewRecordingStore creates an empty RecordingStore.
func NewRecordingStore() *RecordingStore {
	return &RecordingStore{blobs: make(map[string][]byte)}
}

func (r *RecordingStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	raw, ok := r.blobs[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), raw...), true, nil
}

func (r *RecordingStore) Set(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blobs[key] = append([]byte(nil), value...)
	r.writes++
	return nil
}

func (r *RecordingStore) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.blobs, key)
	return nil
}

// Writes returns how many Set calls the store has served.
func (r *RecordingStore) Writes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

// Put stores a raw blob directly, bypassing the write counter.
func (r *RecordingStore) Put(key string, value []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blobs[key] = append([]byte(nil), value...)
}
