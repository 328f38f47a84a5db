// Package domain contains the core learning-progress entities: memory
// records, ratings, vocabulary items and lesson content. It is independent
// of any storage backend or delivery mechanism.
package domain
