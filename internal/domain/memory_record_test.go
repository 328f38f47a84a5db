package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMemoryRecord(t *testing.T) {
	t.Parallel()
	now := time.UnixMilli(1_700_000_000_000)

	rec, err := NewMemoryRecord("  hello  ", now)
	require.NoError(t, err)
	assert.Equal(t, "hello", rec.ItemID)
	assert.Equal(t, 0, rec.Score)
	assert.Equal(t, now.UnixMilli(), rec.LastSeen)

	_, err = NewMemoryRecord("   ", now)
	assert.ErrorIs(t, err, ErrInvalidItemID)
}

func TestMemoryRecordValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		record  MemoryRecord
		wantErr error
	}{
		{"valid", MemoryRecord{ItemID: "thanks", Score: 3, LastSeen: 10}, nil},
		{"empty id", MemoryRecord{ItemID: " ", Score: 0}, ErrInvalidItemID},
		{"negative score", MemoryRecord{ItemID: "thanks", Score: -1}, ErrNegativeScore},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.record.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestScoreMapGetDefaults(t *testing.T) {
	t.Parallel()
	scores := ScoreMap{"known": {Score: 2, LastSeen: 5}}

	rec, ok := scores.Get("known")
	assert.True(t, ok)
	assert.Equal(t, MemoryRecord{ItemID: "known", Score: 2, LastSeen: 5}, rec)

	rec, ok = scores.Get("unknown")
	assert.False(t, ok)
	assert.Equal(t, MemoryRecord{ItemID: "unknown"}, rec)
}

func TestScoreMapCloneIsIndependent(t *testing.T) {
	t.Parallel()
	scores := ScoreMap{"a": {Score: 1}}

	clone := scores.Clone()
	clone.Put(MemoryRecord{ItemID: "a", Score: 9})
	clone.Put(MemoryRecord{ItemID: "b", Score: 1})

	assert.Equal(t, 1, scores["a"].Score)
	_, ok := scores["b"]
	assert.False(t, ok)
}
