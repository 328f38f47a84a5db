// Package store defines the persistence contract for learner memory scores.
//
// Every backend is a plain key-value store holding strings. The score
// mapping for a learner is serialized to a single JSON document and stored
// under one key, so a read or write always covers the whole mapping.
// Concrete backends live under internal/platform.
package store
