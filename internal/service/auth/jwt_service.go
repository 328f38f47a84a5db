// Package auth issues and verifies the signed tokens that identify a
// learner to the HTTP API.
package auth

import (
	"context"
	"time"
)

// JWTService issues and validates learner tokens.
type JWTService interface {
	// GenerateToken creates a signed token whose subject is learnerID.
	GenerateToken(ctx context.Context, learnerID string) (string, error)

	// ValidateToken verifies tokenString and returns its claims.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims are the verified contents of a learner token.
type Claims struct {
	LearnerID string    `json:"sub"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
	ID        string    `json:"jti"`
}
