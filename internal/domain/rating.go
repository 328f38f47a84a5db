package domain

import (
	"encoding"
	"encoding/json"
	"fmt"
	"strings"
)

// Rating is the learner's self-reported recall quality for an item.
type Rating int

// Possible rating values. The zero value is deliberately invalid.
const (
	RatingBadly Rating = iota + 1 // Could not recall the sign
	RatingPartly                  // Recalled with hesitation or partially
	RatingWell                    // Recalled without difficulty
)

var (
	ratingNames = [...]string{RatingBadly: "badly", RatingPartly: "partly", RatingWell: "well"}

	ratingByName = map[string]Rating{
		"badly":  RatingBadly,
		"partly": RatingPartly,
		"well":   RatingWell,
	}
)

var (
	_ fmt.Stringer             = Rating(0)
	_ json.Marshaler           = Rating(0)
	_ json.Unmarshaler         = (*Rating)(nil)
	_ encoding.TextMarshaler   = Rating(0)
	_ encoding.TextUnmarshaler = (*Rating)(nil)
)

// ParseRating converts the text form of a rating, ignoring case and
// surrounding whitespace.
func ParseRating(s string) (Rating, error) {
	r, ok := ratingByName[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRating, s)
	}
	return r, nil
}

// IsValid reports whether r is one of RatingBadly, RatingPartly or RatingWell.
func (r Rating) IsValid() bool {
	switch r {
	case RatingBadly, RatingPartly, RatingWell:
		return true
	default:
		return false
	}
}

// String returns "badly", "partly" or "well", or "Rating(n)" for invalid values.
func (r Rating) String() string {
	if r.IsValid() {
		return ratingNames[r]
	}
	return fmt.Sprintf("Rating(%d)", int(r))
}

// MarshalText implements encoding.TextMarshaler.
func (r Rating) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRating, int(r))
	}
	return []byte(ratingNames[r]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rating) UnmarshalText(text []byte) error {
	v, err := ParseRating(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// MarshalJSON implements json.Marshaler. Ratings serialize as JSON strings.
func (r Rating) MarshalJSON() ([]byte, error) {
	text, err := r.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Rating) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: rating must be a JSON string", ErrInvalidRating)
	}
	return r.UnmarshalText([]byte(s))
}
