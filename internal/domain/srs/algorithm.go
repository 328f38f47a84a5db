package srs

import (
	"time"

	"github.com/phrazzld/signdeck/internal/domain"
)

// calculateNewScore applies the rating policy to a score.
//
// Algorithm behavior:
//   - "Badly" demotes strongly and is floored, so an unknown item (score 0)
//     stays at the front of the queue instead of dropping below zero
//   - "Partly" is neutral and leaves the score unchanged
//   - "Well" promotes without an upper bound
func calculateNewScore(score int, rating domain.Rating, params *Params) int {
	switch rating {
	case domain.RatingBadly:
		newScore := score - params.Demotion
		if newScore < params.Floor {
			newScore = params.Floor
		}
		return newScore
	case domain.RatingWell:
		return score + params.Promotion
	default:
		return score
	}
}

// calculateLastSeen returns the timestamp to stamp on a rated record.
// It never goes backwards and always moves past the previous value, so a
// rating is observable even when two events land in the same millisecond.
func calculateLastSeen(previous int64, now time.Time) int64 {
	ts := now.UnixMilli()
	if ts <= previous {
		ts = previous + 1
	}
	return ts
}

// calculateNextRecord creates a new MemoryRecord reflecting a rating event.
//
// The input record is not modified. LastSeen is updated for every rating,
// including the neutral one.
func calculateNextRecord(
	rec *domain.MemoryRecord,
	rating domain.Rating,
	now time.Time,
	params *Params,
) *domain.MemoryRecord {
	score := rec.Score
	if score < params.Floor {
		score = params.Floor
	}

	return &domain.MemoryRecord{
		ItemID:   rec.ItemID,
		Score:    calculateNewScore(score, rating, params),
		LastSeen: calculateLastSeen(rec.LastSeen, now),
	}
}

// EffectiveRecord returns the stored record for itemID, or the record an
// unknown item behaves as (score 0, never seen). It never fails.
func EffectiveRecord(scores domain.ScoreMap, itemID string) domain.MemoryRecord {
	rec, _ := scores.Get(itemID)
	return rec
}

// EffectiveScore is the score half of EffectiveRecord.
func EffectiveScore(scores domain.ScoreMap, itemID string) int {
	return EffectiveRecord(scores, itemID).Score
}
