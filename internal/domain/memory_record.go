package domain

import (
	"strings"
	"time"
)

// MemoryRecord tracks how well a learner recalls a single vocabulary item.
// Lower scores mean the item is less well remembered and should be
// presented sooner.
type MemoryRecord struct {
	ItemID   string `json:"-"`
	Score    int    `json:"score"`    // Floored at 0, unbounded above
	LastSeen int64  `json:"lastSeen"` // Milliseconds since the Unix epoch
}

// ScoreMap is the full persisted mapping from item identifier to memory
// record. It is always loaded and written as one unit.
type ScoreMap map[string]MemoryRecord

// NormalizeItemID trims surrounding whitespace from an item identifier and
// reports ErrInvalidItemID when nothing is left.
func NormalizeItemID(itemID string) (string, error) {
	id := strings.TrimSpace(itemID)
	if id == "" {
		return "", ErrInvalidItemID
	}
	return id, nil
}

// NewMemoryRecord creates the record for an item's first exposure.
// The item starts with a score of zero and is stamped as seen at now.
func NewMemoryRecord(itemID string, now time.Time) (*MemoryRecord, error) {
	id, err := NormalizeItemID(itemID)
	if err != nil {
		return nil, err
	}

	return &MemoryRecord{
		ItemID:   id,
		Score:    0,
		LastSeen: now.UnixMilli(),
	}, nil
}

// Validate checks if the MemoryRecord has valid data.
func (r *MemoryRecord) Validate() error {
	if strings.TrimSpace(r.ItemID) == "" {
		return ErrInvalidItemID
	}

	if r.Score < 0 {
		return ErrNegativeScore
	}

	return nil
}

// Get returns the stored record for itemID and whether one exists.
// The returned record always has ItemID populated.
func (m ScoreMap) Get(itemID string) (MemoryRecord, bool) {
	rec, ok := m[itemID]
	if !ok {
		return MemoryRecord{ItemID: itemID}, false
	}
	rec.ItemID = itemID
	return rec, true
}

// Put stores rec under its ItemID.
func (m ScoreMap) Put(rec MemoryRecord) {
	m[rec.ItemID] = MemoryRecord{ItemID: rec.ItemID, Score: rec.Score, LastSeen: rec.LastSeen}
}

// Clone returns a copy of the mapping that can be mutated independently.
func (m ScoreMap) Clone() ScoreMap {
	out := make(ScoreMap, len(m))
	for id, rec := range m {
		rec.ItemID = id
		out[id] = rec
	}
	return out
}
