package srs

import (
	"errors"
	"time"

	"github.com/phrazzld/signdeck/internal/domain"
)

// Common errors
var (
	ErrNilRecord     = errors.New("memory record cannot be nil")
	ErrInvalidRating = domain.ErrInvalidRating
)

// Service defines the interface for memory scoring operations
type Service interface {
	// NewRecord creates the first-exposure record for an item
	NewRecord(itemID string, now time.Time) (*domain.MemoryRecord, error)

	// CalculateNext computes the record that results from a rating event
	CalculateNext(
		rec *domain.MemoryRecord,
		rating domain.Rating,
		now time.Time,
	) (*domain.MemoryRecord, error)
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new scoring service with default parameters
func NewDefaultService() (Service, error) {
	return &defaultService{
		params: NewDefaultParams(),
	}, nil
}

// NewServiceWithParams creates a new scoring service with custom parameters
func NewServiceWithParams(params *Params) (Service, error) {
	if params == nil {
		return nil, errors.New("params cannot be nil")
	}
	if params.Demotion <= 0 || params.Promotion <= 0 {
		return nil, errors.New("score adjustments must be positive")
	}
	return &defaultService{
		params: params,
	}, nil
}

// NewRecord implements the Service interface
func (s *defaultService) NewRecord(itemID string, now time.Time) (*domain.MemoryRecord, error) {
	rec, err := domain.NewMemoryRecord(itemID, now)
	if err != nil {
		return nil, err
	}
	rec.Score = s.params.Floor
	return rec, nil
}

// CalculateNext implements the Service interface for rating events
func (s *defaultService) CalculateNext(
	rec *domain.MemoryRecord,
	rating domain.Rating,
	now time.Time,
) (*domain.MemoryRecord, error) {
	if rec == nil {
		return nil, ErrNilRecord
	}

	if !rating.IsValid() {
		return nil, ErrInvalidRating
	}

	return calculateNextRecord(rec, rating, now, s.params), nil
}
