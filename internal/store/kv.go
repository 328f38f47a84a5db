package store

import (
	"context"
	"strings"
)

// DefaultScoreKey is the key under which the score mapping is stored when
// no learner is identified.
const DefaultScoreKey = "memory_scores"

// KVStore is the minimal string key-value contract every backend satisfies.
type KVStore interface {
	// Get returns the value stored under key. found is false, with a nil
	// error, when nothing has been stored yet.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Close releases resources held by the backend.
	Close() error
}

// UpdateFn receives the current value of a key (found reports whether one
// exists) and returns the value to write back. Returning write == false
// leaves the stored value untouched.
type UpdateFn func(current string, found bool) (next string, write bool, err error)

// Updater is implemented by backends that can perform a read-modify-write
// of a single key atomically, for example inside a database transaction.
// Backends without it are updated with Get followed by Set.
type Updater interface {
	Update(ctx context.Context, key string, fn UpdateFn) error
}

// ScoreKey returns the storage key for a learner's score mapping. An empty
// learner ID selects DefaultScoreKey; base overrides the prefix when set.
func ScoreKey(base, learnerID string) string {
	if strings.TrimSpace(base) == "" {
		base = DefaultScoreKey
	}
	learnerID = strings.TrimSpace(learnerID)
	if learnerID == "" {
		return base
	}
	return base + ":" + learnerID
}

// ValidateKey returns ErrInvalidKey for blank keys.
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	return nil
}
