package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/signdeck/internal/domain"
)

// Event types emitted by the memory service.
const (
	TypeItemInitialized = "item.initialized"
	TypeItemRated       = "item.rated"
)

// ScoreEvent describes a persisted change to one item's memory record.
type ScoreEvent struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	ScoreKey  string    `json:"score_key"`
	ItemID    string    `json:"item_id"`
	Rating    string    `json:"rating,omitempty"`
	Score     int       `json:"score"`
	LastSeen  int64     `json:"last_seen"`
	CreatedAt time.Time `json:"created_at"`
}

// NewItemInitializedEvent records the first exposure of rec under scoreKey.
func NewItemInitializedEvent(scoreKey string, rec domain.MemoryRecord) *ScoreEvent {
	return newScoreEvent(TypeItemInitialized, scoreKey, rec, "")
}

// NewItemRatedEvent records the result of applying rating to an item.
func NewItemRatedEvent(scoreKey string, rec domain.MemoryRecord, rating domain.Rating) *ScoreEvent {
	return newScoreEvent(TypeItemRated, scoreKey, rec, rating.String())
}

func newScoreEvent(eventType, scoreKey string, rec domain.MemoryRecord, rating string) *ScoreEvent {
	return &ScoreEvent{
		ID:        uuid.New(),
		Type:      eventType,
		ScoreKey:  scoreKey,
		ItemID:    rec.ItemID,
		Rating:    rating,
		Score:     rec.Score,
		LastSeen:  rec.LastSeen,
		CreatedAt: time.Now().UTC(),
	}
}

// EventHandler processes score events.
type EventHandler interface {
	HandleEvent(ctx context.Context, event *ScoreEvent) error
}

// HandlerFunc adapts a function to the EventHandler interface.
type HandlerFunc func(ctx context.Context, event *ScoreEvent) error

// HandleEvent calls f(ctx, event).
func (f HandlerFunc) HandleEvent(ctx context.Context, event *ScoreEvent) error {
	return f(ctx, event)
}

// EventEmitter publishes events to registered handlers.
type EventEmitter interface {
	EmitEvent(ctx context.Context, event *ScoreEvent) error
}
