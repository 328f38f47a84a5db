// Package session ranks vocabulary items for a practice session so that the
// least-known and longest-unseen items come first.
package session

import (
	"cmp"
	"slices"

	"github.com/phrazzld/signdeck/internal/domain"
	"github.com/phrazzld/signdeck/internal/domain/srs"
)

// NeedsRanking reports whether Select has to consult scores for the given
// pool size and count. When it returns false the selection is decided by
// the input alone.
func NeedsRanking(candidates int, count int) bool {
	return candidates > 0 && count > 0 && candidates > count
}

// Select returns up to count candidates biased toward least-known items.
//
// Algorithm behavior:
//   - empty candidates or count <= 0 yields an empty selection
//   - when there are no more candidates than count, all candidates are
//     returned in input order without ranking
//   - otherwise candidates are ordered by ascending score, then ascending
//     lastSeen (older first); remaining ties keep input order. Items
//     without a record rank as score 0, lastSeen 0.
//
// The candidates slice is not modified.
func Select(candidates []domain.VocabularyItem, count int, scores domain.ScoreMap) []domain.VocabularyItem {
	if len(candidates) == 0 || count <= 0 {
		return []domain.VocabularyItem{}
	}

	if !NeedsRanking(len(candidates), count) {
		out := make([]domain.VocabularyItem, len(candidates))
		copy(out, candidates)
		return out
	}

	type ranked struct {
		item domain.VocabularyItem
		rec  domain.MemoryRecord
	}

	pool := make([]ranked, len(candidates))
	for i, item := range candidates {
		pool[i] = ranked{item: item, rec: srs.EffectiveRecord(scores, item.ItemID)}
	}

	slices.SortStableFunc(pool, func(a, b ranked) int {
		if c := cmp.Compare(a.rec.Score, b.rec.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.rec.LastSeen, b.rec.LastSeen)
	})

	out := make([]domain.VocabularyItem, count)
	for i := range out {
		out[i] = pool[i].item
	}
	return out
}
