// Package memkv provides an in-process store.KVStore backed by a map.
// Data lives only as long as the process; it serves tests and ephemeral runs.
package memkv

import (
	"context"
	"sync"

	"github.com/phrazzld/signdeck/internal/store"
)

// Store is a concurrency-safe in-memory key-value store.
type Store struct {
	mu     sync.RWMutex
	data   map[string]string
	closed bool
}

var (
	_ store.KVStore = (*Store)(nil)
	_ store.Updater = (*Store)(nil)
)

// New returns an empty Store.
func New() *Store {
	return &Store{data: make(map[string]string)}
}

// Get implements store.KVStore.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	if err := store.ValidateKey(key); err != nil {
		return "", false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", false, store.ErrUnavailable
	}
	v, ok := s.data[key]
	return v, ok, nil
}

// Set implements store.KVStore.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := store.ValidateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.ErrUnavailable
	}
	s.data[key] = value
	return nil
}

// Update implements store.Updater by holding the write lock for the whole
// read-modify-write cycle.
func (s *Store) Update(ctx context.Context, key string, fn store.UpdateFn) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := store.ValidateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.ErrUnavailable
	}
	current, found := s.data[key]
	next, write, err := fn(current, found)
	if err != nil {
		return err
	}
	if write {
		s.data[key] = next
	}
	return nil
}

// Close marks the store unusable. Subsequent calls return store.ErrUnavailable.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
