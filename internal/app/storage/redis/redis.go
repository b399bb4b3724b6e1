// Package redis provides a blob store backed by Redis. Blobs are written
// without expiry: the "already shown" bookkeeping must survive restarts.
package redis

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"

	"github.com/growthlab-hq/apps-deals-service/internal/app/storage"
)

// Store implements storage.Store on a Redis connection.
type Store struct {
	client *redis.Client
}

var _ storage.Store = (*Store)(nil)

// New creates a Store from connection settings.
func New(addr, password string, db int) *Store {
	return &Store{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

// NewWithClient wraps an existing client; tests use this with miniature
// servers or mocks.
func NewWithClient(client *redis.Client) *Store {
	return &Store{client: client}
}

// Ping verifies connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
