package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all backends.
var (
	// ErrNotFound is returned when a key has no stored value.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidKey is returned when a key is empty or otherwise unusable.
	ErrInvalidKey = errors.New("invalid key")

	// ErrUnavailable is returned when the backend cannot be reached or
	// has already been closed.
	ErrUnavailable = errors.New("store unavailable")

	// ErrCorruptData is returned when a stored value cannot be decoded.
	ErrCorruptData = errors.New("corrupt stored data")

	// ErrTransactionFailed is returned when a backend transaction fails to
	// begin or commit.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrScoresNotFound indicates that no score mapping has been persisted yet.
	ErrScoresNotFound = fmt.Errorf("%w: memory scores", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "kv", "scores")
	Operation string // The operation that failed (e.g., "get", "set")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation on %s failed: %s: %v", e.Operation, e.Entity, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
