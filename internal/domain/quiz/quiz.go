// Package quiz composes selected vocabulary items into quiz challenges:
// translation challenges with decoys and matching-pair challenges.
package quiz

import (
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/phrazzld/signdeck/internal/domain"
)

// Size is the number of items a quiz is built from.
const Size = 7

// ChallengeType distinguishes the kinds of quiz challenges.
type ChallengeType string

// Possible challenge types
const (
	ChallengeTranslation ChallengeType = "translation"
	ChallengeMatching    ChallengeType = "matching"
)

// Common quiz errors
var (
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrWrongChallenge    = errors.New("answer does not fit challenge type")
)

// Challenge is a single quiz question.
//
// A translation challenge shows one sign (Items[0]) and asks for its
// identifier among Options. A matching challenge shows two signs and asks
// the learner to pair each with its identifier from Options.
type Challenge struct {
	Type    ChallengeType           `json:"type"`
	Items   []domain.VocabularyItem `json:"items"`
	Options []string                `json:"options"`

	answer string
}

// Quiz is a generated set of challenges.
type Quiz struct {
	ID         string      `json:"id"`
	Challenges []Challenge `json:"challenges"`
	CreatedAt  time.Time   `json:"created_at"`
}

// translationDecoyOffsets are the pool positions, relative to the target,
// that supply a translation challenge's decoys.
var translationDecoyOffsets = [...]int{1, 3, 5}

// matchingPairs are the pool positions of each matching challenge. Position
// 6 appears twice because seven items cannot be split evenly into pairs.
var matchingPairs = [...][2]int{{3, 4}, {5, 6}, {6, 0}}

// Generate builds a quiz from the first Size distinct items of pool.
//
// The challenge layout is fixed: translation challenges for positions 0-2,
// each with three decoys taken from fixed offsets, followed by three
// matching challenges that together with the translations cover every item.
// Only the option order is random. Repeated identifiers count once; fewer
// than Size distinct items yields domain.ErrNotEnoughItems.
func Generate(pool []domain.VocabularyItem, rng *rand.Rand) (*Quiz, error) {
	distinct := domain.UniqueItems(pool)
	if len(distinct) < Size {
		return nil, domain.ErrNotEnoughItems
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	items := distinct[:Size]
	challenges := make([]Challenge, 0, 6)

	for target := 0; target < 3; target++ {
		options := []string{items[target].ItemID}
		for _, off := range translationDecoyOffsets {
			options = append(options, items[(target+off)%Size].ItemID)
		}
		challenges = append(challenges, Challenge{
			Type:    ChallengeTranslation,
			Items:   []domain.VocabularyItem{items[target]},
			Options: shuffle(rng, options),
			answer:  items[target].ItemID,
		})
	}

	for _, pair := range matchingPairs {
		first, second := items[pair[0]], items[pair[1]]
		challenges = append(challenges, Challenge{
			Type:    ChallengeMatching,
			Items:   []domain.VocabularyItem{first, second},
			Options: shuffle(rng, []string{first.ItemID, second.ItemID}),
		})
	}

	return &Quiz{
		ID:         ulid.Make().String(),
		Challenges: challenges,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

func shuffle(rng *rand.Rand, options []string) []string {
	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

// CorrectAnswer returns the identifier a translation challenge expects.
// Matching challenges have no single answer and return "".
func (c Challenge) CorrectAnswer() string {
	return c.answer
}

// Check reports whether answer is the correct identifier for a translation
// challenge. The comparison is by identifier, never by option position.
func (c Challenge) Check(answer string) (bool, error) {
	if c.Type != ChallengeTranslation {
		return false, ErrWrongChallenge
	}
	return strings.TrimSpace(answer) == c.answer, nil
}

// CheckPairs reports whether every sign in a matching challenge was paired
// with its own identifier. pairs maps a shown item's identifier to the
// option the learner chose for it.
func (c Challenge) CheckPairs(pairs map[string]string) (bool, error) {
	if c.Type != ChallengeMatching {
		return false, ErrWrongChallenge
	}
	if len(pairs) != len(c.Items) {
		return false, nil
	}
	for _, item := range c.Items {
		chosen, ok := pairs[item.ItemID]
		if !ok || strings.TrimSpace(chosen) != item.ItemID {
			return false, nil
		}
	}
	return true, nil
}

// Challenge returns the challenge at index.
func (q *Quiz) Challenge(index int) (Challenge, error) {
	if index < 0 || index >= len(q.Challenges) {
		return Challenge{}, ErrChallengeNotFound
	}
	return q.Challenges[index], nil
}

// CoveredItemIDs returns every identifier that appears in at least one
// challenge, in first-appearance order.
func (q *Quiz) CoveredItemIDs() []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, c := range q.Challenges {
		for _, item := range c.Items {
			if _, ok := seen[item.ItemID]; ok {
				continue
			}
			seen[item.ItemID] = struct{}{}
			ids = append(ids, item.ItemID)
		}
	}
	return ids
}
