package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidItemID is returned when an item identifier is empty after trimming.
	ErrInvalidItemID = errors.New("item ID cannot be empty")

	// ErrInvalidRating is returned when a rating is not one of badly, partly or well.
	ErrInvalidRating = errors.New("invalid rating")

	// ErrNegativeScore is returned when a memory record carries a score below zero.
	ErrNegativeScore = errors.New("score cannot be negative")

	// ErrNotEnoughItems signals that a session or quiz was requested with
	// fewer items than it requires. Callers should prompt the learner
	// instead of treating it as a fault.
	ErrNotEnoughItems = errors.New("not enough items")

	// ErrUnknownLessonType is returned when lesson content carries a type
	// that has no extraction rule.
	ErrUnknownLessonType = errors.New("unknown lesson type")
)
