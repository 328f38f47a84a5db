package shared

import (
	"context"

	"github.com/google/uuid"
)

// ContextKey is the type of request context keys set by the API.
type ContextKey string

const (
	// LearnerIDContextKey holds the authenticated learner's ID.
	LearnerIDContextKey ContextKey = "learnerID"

	// TraceIDKey holds the request's trace ID.
	TraceIDKey ContextKey = "traceID"
)

// SetTraceID adds a fresh trace ID to the context.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, uuid.NewString())
}

// GetTraceID returns the context's trace ID, or "" when none was set.
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDKey).(string)
	return traceID
}

// WithLearnerID returns a context carrying learnerID.
func WithLearnerID(ctx context.Context, learnerID string) context.Context {
	return context.WithValue(ctx, LearnerIDContextKey, learnerID)
}

// GetLearnerID returns the learner ID stored in ctx and whether one was set.
func GetLearnerID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(LearnerIDContextKey).(string)
	return id, ok && id != ""
}
