// Package memory is an in-process db.Store backed by go-cache.
package memory

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/kailas-cloud/finrag/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

const cleanupInterval = 10 * time.Minute

// Store keeps values in process memory. Contents are lost on restart.
type Store struct {
	cache *cache.Cache
}

// NewStore creates an empty in-memory store. Expired entries are purged every ten minutes.
func NewStore() *Store {
	return &Store{cache: cache.New(cache.NoExpiration, cleanupInterval)}
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// Close is a no-op; the store has no connections.
func (s *Store) Close() {}

// Get returns a copy of the stored value or db.ErrKeyNotFound.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	x, found := s.cache.Get(key)
	if !found {
		return nil, db.ErrKeyNotFound
	}
	data, _ := x.([]byte)
	return append([]byte(nil), data...), nil
}

// SetWithTTL stores a copy of value. ttl <= 0 stores without expiry.
func (s *Store) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	s.cache.Set(key, append([]byte(nil), value...), ttl)
	return nil
}

// Len returns the number of stored entries, expired ones included until the next purge.
func (s *Store) Len() int { return s.cache.ItemCount() }
