package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/phrazzld/signdeck/internal/domain"
	"github.com/phrazzld/signdeck/internal/platform/logger"
)

// ScoreRepository loads and persists a learner's full score mapping as a
// single JSON document in a KVStore.
type ScoreRepository struct {
	kv     KVStore
	logger *slog.Logger
}

// NewScoreRepository creates a ScoreRepository on top of kv.
// A nil kv yields a repository whose operations return ErrUnavailable.
func NewScoreRepository(kv KVStore, log *slog.Logger) *ScoreRepository {
	if log == nil {
		log = slog.Default()
	}
	return &ScoreRepository{
		kv:     kv,
		logger: log.With(slog.String("component", "score_repository")),
	}
}

// Load returns the mapping stored under key. A key with nothing stored
// yields an empty mapping and a nil error, as does a backend that reports
// the key as not found.
func (r *ScoreRepository) Load(ctx context.Context, key string) (domain.ScoreMap, error) {
	scores, err := r.fetch(ctx, key)
	if IsNotFoundError(err) {
		return domain.ScoreMap{}, nil
	}
	if err != nil {
		return nil, err
	}

	logger.FromContextOrDefault(ctx, r.logger).Debug("loaded memory scores",
		slog.String("key", key),
		slog.Int("items", len(scores)))
	return scores, nil
}

// fetch reads and decodes the mapping under key, returning
// ErrScoresNotFound when nothing has been persisted.
func (r *ScoreRepository) fetch(ctx context.Context, key string) (domain.ScoreMap, error) {
	if r.kv == nil {
		return nil, NewStoreError("scores", "load", "no backend configured", ErrUnavailable)
	}
	if err := ValidateKey(key); err != nil {
		return nil, err
	}

	raw, found, err := r.kv.Get(ctx, key)
	if err != nil {
		return nil, NewStoreError("scores", "load", "backend read failed", err)
	}
	if !found {
		return nil, ErrScoresNotFound
	}

	scores, err := DecodeScores(raw)
	if err != nil {
		return nil, NewStoreError("scores", "load", "stored mapping is unreadable", err)
	}
	return scores, nil
}

// Save replaces the mapping stored under key.
func (r *ScoreRepository) Save(ctx context.Context, key string, scores domain.ScoreMap) error {
	if r.kv == nil {
		return NewStoreError("scores", "save", "no backend configured", ErrUnavailable)
	}
	if err := ValidateKey(key); err != nil {
		return err
	}

	raw, err := EncodeScores(scores)
	if err != nil {
		return NewStoreError("scores", "save", "encoding failed", err)
	}
	if err := r.kv.Set(ctx, key, raw); err != nil {
		return NewStoreError("scores", "save", "backend write failed", err)
	}
	return nil
}

// MutateFn changes scores in place and reports whether anything changed.
type MutateFn func(scores domain.ScoreMap) (changed bool, err error)

// Update performs a read-modify-write of the mapping under key. When the
// backend implements Updater the cycle runs atomically inside the backend;
// otherwise it is a Load followed by a Save and callers must serialize
// concurrent updates themselves. Nothing is written when fn reports no
// change or fails.
func (r *ScoreRepository) Update(ctx context.Context, key string, fn MutateFn) error {
	if r.kv == nil {
		return NewStoreError("scores", "update", "no backend configured", ErrUnavailable)
	}
	if err := ValidateKey(key); err != nil {
		return err
	}

	if u, ok := r.kv.(Updater); ok {
		err := u.Update(ctx, key, func(current string, found bool) (string, bool, error) {
			scores := domain.ScoreMap{}
			if found {
				decoded, err := DecodeScores(current)
				if err != nil {
					return "", false, err
				}
				scores = decoded
			}
			changed, err := fn(scores)
			if err != nil || !changed {
				return "", false, err
			}
			next, err := EncodeScores(scores)
			if err != nil {
				return "", false, err
			}
			return next, true, nil
		})
		if err != nil {
			return NewStoreError("scores", "update", "atomic update failed", err)
		}
		return nil
	}

	scores, err := r.Load(ctx, key)
	if err != nil {
		return err
	}
	changed, err := fn(scores)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	return r.Save(ctx, key, scores)
}

// DecodeScores parses the JSON wire form of a score mapping. Entries with
// a blank identifier are dropped and negative scores are clamped to zero.
func DecodeScores(raw string) (domain.ScoreMap, error) {
	var decoded map[string]domain.MemoryRecord
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}

	scores := make(domain.ScoreMap, len(decoded))
	for id, rec := range decoded {
		norm, err := domain.NormalizeItemID(id)
		if err != nil {
			continue
		}
		rec.ItemID = norm
		if rec.Score < 0 {
			rec.Score = 0
		}
		scores.Put(rec)
	}
	return scores, nil
}

// EncodeScores renders scores in the JSON wire form
// {"<itemId>": {"score": n, "lastSeen": ms}}. Every record must pass
// MemoryRecord.Validate under its map key; the first failure is returned
// wrapped in domain.ErrValidation and nothing is encoded.
func EncodeScores(scores domain.ScoreMap) (string, error) {
	if scores == nil {
		scores = domain.ScoreMap{}
	}
	for id, rec := range scores {
		rec.ItemID = id
		if err := rec.Validate(); err != nil {
			return "", fmt.Errorf("%w: item %q: %w", domain.ErrValidation, id, err)
		}
	}
	data, err := json.Marshal(map[string]domain.MemoryRecord(scores))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
