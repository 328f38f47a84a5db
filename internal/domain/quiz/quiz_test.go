package quiz

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/phrazzld/signdeck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pool(n int) []domain.VocabularyItem {
	out := make([]domain.VocabularyItem, n)
	for i := range out {
		out[i] = domain.VocabularyItem{ItemID: fmt.Sprintf("sign-%d", i)}
	}
	return out
}

func TestGenerateRequiresSevenItems(t *testing.T) {
	t.Parallel()

	q, err := Generate(pool(6), rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, domain.ErrNotEnoughItems)
	assert.Nil(t, q)

	_, err = Generate(nil, nil)
	assert.ErrorIs(t, err, domain.ErrNotEnoughItems)
}

func TestGenerateCountsDistinctItems(t *testing.T) {
	t.Parallel()

	repeated := make([]domain.VocabularyItem, 0, 7)
	for i := 0; i < 6; i++ {
		repeated = append(repeated, domain.VocabularyItem{ItemID: "a"})
	}
	repeated = append(repeated, domain.VocabularyItem{ItemID: "b"})

	q, err := Generate(repeated, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, domain.ErrNotEnoughItems)
	assert.Nil(t, q)

	withRepeats := append(pool(3), pool(7)...)
	q, err = Generate(withRepeats, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.ElementsMatch(t, domain.ItemIDs(pool(7)), q.CoveredItemIDs())
	for i, c := range q.Challenges {
		seen := make(map[string]bool, len(c.Options))
		for _, opt := range c.Options {
			assert.False(t, seen[opt], "challenge %d repeats option %q", i, opt)
			seen[opt] = true
		}
	}
}

func TestGenerateCoversAllItems(t *testing.T) {
	t.Parallel()
	items := pool(7)

	q, err := Generate(items, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	require.Len(t, q.Challenges, 6)
	assert.NotEmpty(t, q.ID)
	assert.ElementsMatch(t, domain.ItemIDs(items), q.CoveredItemIDs())

	var translations, matchings int
	for _, c := range q.Challenges {
		switch c.Type {
		case ChallengeTranslation:
			translations++
			require.Len(t, c.Items, 1)
			require.Len(t, c.Options, 4)
			assert.Contains(t, c.Options, c.Items[0].ItemID)
			assert.Equal(t, c.Items[0].ItemID, c.CorrectAnswer())
			assertDistinct(t, c.Options)
		case ChallengeMatching:
			matchings++
			require.Len(t, c.Items, 2)
			assert.ElementsMatch(t, domain.ItemIDs(c.Items), c.Options)
		default:
			t.Fatalf("unexpected challenge type %q", c.Type)
		}
	}
	assert.Equal(t, 3, translations)
	assert.Equal(t, 3, matchings)
}

func TestGenerateUsesFixedDecoyPositions(t *testing.T) {
	t.Parallel()
	items := pool(9)

	q, err := Generate(items, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"sign-0", "sign-1", "sign-3", "sign-5"}, q.Challenges[0].Options)
	assert.ElementsMatch(t, []string{"sign-1", "sign-2", "sign-4", "sign-6"}, q.Challenges[1].Options)
	assert.ElementsMatch(t, []string{"sign-2", "sign-3", "sign-5", "sign-0"}, q.Challenges[2].Options)

	for _, id := range q.CoveredItemIDs() {
		assert.NotEqual(t, "sign-7", id, "items beyond the quiz size must not be used")
		assert.NotEqual(t, "sign-8", id, "items beyond the quiz size must not be used")
	}
}

func TestGenerateShufflesOptions(t *testing.T) {
	t.Parallel()
	items := pool(7)

	orders := make(map[string]struct{})
	for seed := int64(0); seed < 20; seed++ {
		q, err := Generate(items, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		orders[fmt.Sprint(q.Challenges[0].Options)] = struct{}{}
	}
	assert.Greater(t, len(orders), 1, "option order should vary with the random source")
}

func TestChallengeCheck(t *testing.T) {
	t.Parallel()
	q, err := Generate(pool(7), rand.New(rand.NewSource(11)))
	require.NoError(t, err)

	translation := q.Challenges[0]
	ok, err := translation.Check(" sign-0 ")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = translation.Check("sign-1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = translation.CheckPairs(map[string]string{})
	assert.ErrorIs(t, err, ErrWrongChallenge)

	matching := q.Challenges[3]
	ok, err = matching.CheckPairs(map[string]string{"sign-3": "sign-3", "sign-4": "sign-4"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = matching.CheckPairs(map[string]string{"sign-3": "sign-4", "sign-4": "sign-3"})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = matching.CheckPairs(map[string]string{"sign-3": "sign-3"})
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = matching.Check("sign-3")
	assert.ErrorIs(t, err, ErrWrongChallenge)
}

func TestQuizChallengeIndex(t *testing.T) {
	t.Parallel()
	q, err := Generate(pool(7), nil)
	require.NoError(t, err)

	_, err = q.Challenge(6)
	assert.ErrorIs(t, err, ErrChallengeNotFound)
	_, err = q.Challenge(-1)
	assert.ErrorIs(t, err, ErrChallengeNotFound)

	c, err := q.Challenge(5)
	require.NoError(t, err)
	assert.Equal(t, ChallengeMatching, c.Type)
}

func assertDistinct(t *testing.T, values []string) {
	t.Helper()
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		_, dup := seen[v]
		assert.False(t, dup, "duplicate option %q", v)
		seen[v] = struct{}{}
	}
}
