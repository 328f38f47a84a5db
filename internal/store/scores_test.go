package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/signdeck/internal/domain"
	"github.com/phrazzld/signdeck/internal/platform/memkv"
	"github.com/phrazzld/signdeck/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plainKV implements only store.KVStore so the Load+Save path of Update
// is exercised.
type plainKV struct {
	data   map[string]string
	getErr error
	setErr error
	sets   int
}

func newPlainKV() *plainKV { return &plainKV{data: map[string]string{}} }

func (p *plainKV) Get(_ context.Context, key string) (string, bool, error) {
	if p.getErr != nil {
		return "", false, p.getErr
	}
	v, ok := p.data[key]
	return v, ok, nil
}

func (p *plainKV) Set(_ context.Context, key, value string) error {
	if p.setErr != nil {
		return p.setErr
	}
	p.sets++
	p.data[key] = value
	return nil
}

func (p *plainKV) Close() error { return nil }

func TestDecodeScores(t *testing.T) {
	t.Parallel()

	t.Run("wire form", func(t *testing.T) {
		t.Parallel()
		scores, err := store.DecodeScores(`{"hello":{"score":3,"lastSeen":1700000000000},"thanks":{"score":0,"lastSeen":5}}`)
		require.NoError(t, err)
		require.Len(t, scores, 2)

		rec, ok := scores.Get("hello")
		require.True(t, ok)
		assert.Equal(t, domain.MemoryRecord{ItemID: "hello", Score: 3, LastSeen: 1700000000000}, rec)
	})

	t.Run("negative score clamped", func(t *testing.T) {
		t.Parallel()
		scores, err := store.DecodeScores(`{"x":{"score":-4,"lastSeen":1}}`)
		require.NoError(t, err)
		assert.Equal(t, 0, scores["x"].Score)
	})

	t.Run("blank ids dropped and ids trimmed", func(t *testing.T) {
		t.Parallel()
		scores, err := store.DecodeScores(`{" ":{"score":1,"lastSeen":1}," yes ":{"score":2,"lastSeen":2}}`)
		require.NoError(t, err)
		require.Len(t, scores, 1)
		assert.Equal(t, 2, scores["yes"].Score)
	})

	t.Run("null is empty", func(t *testing.T) {
		t.Parallel()
		scores, err := store.DecodeScores("null")
		require.NoError(t, err)
		assert.Empty(t, scores)
	})

	t.Run("corrupt", func(t *testing.T) {
		t.Parallel()
		_, err := store.DecodeScores("{not json")
		assert.ErrorIs(t, err, store.ErrCorruptData)
	})
}

func TestEncodeScores(t *testing.T) {
	t.Parallel()

	raw, err := store.EncodeScores(domain.ScoreMap{
		"hello": {ItemID: "hello", Score: 2, LastSeen: 10},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"hello":{"score":2,"lastSeen":10}}`, raw)

	raw, err = store.EncodeScores(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", raw)
}

func TestEncodeScoresRejectsInvalidRecords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		scores  domain.ScoreMap
		wantErr error
	}{
		{
			name:    "negative score",
			scores:  domain.ScoreMap{"hello": {ItemID: "hello", Score: -1, LastSeen: 10}},
			wantErr: domain.ErrNegativeScore,
		},
		{
			name:    "blank identifier",
			scores:  domain.ScoreMap{" ": {Score: 1, LastSeen: 10}},
			wantErr: domain.ErrInvalidItemID,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			raw, err := store.EncodeScores(tt.scores)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, raw)
		})
	}
}

func TestScoreRepository_LoadSave(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := store.NewScoreRepository(memkv.New(), nil)

	scores, err := repo.Load(ctx, store.DefaultScoreKey)
	require.NoError(t, err)
	assert.Empty(t, scores)

	scores.Put(domain.MemoryRecord{ItemID: "hello", Score: 1, LastSeen: 42})
	require.NoError(t, repo.Save(ctx, store.DefaultScoreKey, scores))

	loaded, err := repo.Load(ctx, store.DefaultScoreKey)
	require.NoError(t, err)
	assert.Equal(t, scores, loaded)

	other, err := repo.Load(ctx, store.ScoreKey("", "someone"))
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestScoreRepository_LoadTreatsNotFoundAsEmpty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	kv := newPlainKV()
	kv.getErr = store.ErrNotFound
	repo := store.NewScoreRepository(kv, nil)

	scores, err := repo.Load(ctx, store.DefaultScoreKey)
	require.NoError(t, err)
	assert.NotNil(t, scores)
	assert.Empty(t, scores)
}

func TestScoreRepository_SaveRejectsInvalidRecords(t *testing.T) {
	t.Parallel()

	backends := map[string]func() store.KVStore{
		"atomic backend": func() store.KVStore { return memkv.New() },
		"plain backend":  func() store.KVStore { return newPlainKV() },
	}

	for name, newKV := range backends {
		newKV := newKV
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			repo := store.NewScoreRepository(newKV(), nil)

			bad := domain.ScoreMap{"hello": {ItemID: "hello", Score: -3, LastSeen: 1}}
			err := repo.Save(ctx, store.DefaultScoreKey, bad)
			assert.ErrorIs(t, err, domain.ErrNegativeScore)

			err = repo.Update(ctx, store.DefaultScoreKey, func(scores domain.ScoreMap) (bool, error) {
				scores.Put(domain.MemoryRecord{ItemID: "hello", Score: -1, LastSeen: 2})
				return true, nil
			})
			assert.ErrorIs(t, err, domain.ErrValidation)

			scores, err := repo.Load(ctx, store.DefaultScoreKey)
			require.NoError(t, err)
			assert.Empty(t, scores)
		})
	}
}

func TestScoreRepository_Unavailable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := store.NewScoreRepository(nil, nil)

	_, err := repo.Load(ctx, store.DefaultScoreKey)
	assert.ErrorIs(t, err, store.ErrUnavailable)
	assert.ErrorIs(t, repo.Save(ctx, store.DefaultScoreKey, domain.ScoreMap{}), store.ErrUnavailable)
	err = repo.Update(ctx, store.DefaultScoreKey, func(domain.ScoreMap) (bool, error) { return true, nil })
	assert.ErrorIs(t, err, store.ErrUnavailable)
}

func TestScoreRepository_BackendErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	boom := errors.New("disk gone")

	kv := newPlainKV()
	kv.getErr = boom
	repo := store.NewScoreRepository(kv, nil)
	_, err := repo.Load(ctx, store.DefaultScoreKey)
	assert.ErrorIs(t, err, boom)

	var storeErr *store.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "load", storeErr.Operation)

	kv = newPlainKV()
	kv.data[store.DefaultScoreKey] = "garbage"
	repo = store.NewScoreRepository(kv, nil)
	_, err = repo.Load(ctx, store.DefaultScoreKey)
	assert.ErrorIs(t, err, store.ErrCorruptData)

	_, err = repo.Load(ctx, "")
	assert.ErrorIs(t, err, store.ErrInvalidKey)
}

func TestScoreRepository_Update(t *testing.T) {
	t.Parallel()

	backends := map[string]func() store.KVStore{
		"atomic backend": func() store.KVStore { return memkv.New() },
		"plain backend":  func() store.KVStore { return newPlainKV() },
	}

	for name, newKV := range backends {
		newKV := newKV
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			repo := store.NewScoreRepository(newKV(), nil)

			bump := func(scores domain.ScoreMap) (bool, error) {
				rec, _ := scores.Get("hello")
				rec.Score++
				scores.Put(rec)
				return true, nil
			}
			require.NoError(t, repo.Update(ctx, store.DefaultScoreKey, bump))
			require.NoError(t, repo.Update(ctx, store.DefaultScoreKey, bump))

			scores, err := repo.Load(ctx, store.DefaultScoreKey)
			require.NoError(t, err)
			assert.Equal(t, 2, scores["hello"].Score)

			boom := errors.New("nope")
			err = repo.Update(ctx, store.DefaultScoreKey, func(scores domain.ScoreMap) (bool, error) {
				scores.Put(domain.MemoryRecord{ItemID: "hello", Score: 99})
				return true, boom
			})
			assert.ErrorIs(t, err, boom)

			err = repo.Update(ctx, store.DefaultScoreKey, func(scores domain.ScoreMap) (bool, error) {
				scores.Put(domain.MemoryRecord{ItemID: "hello", Score: 77})
				return false, nil
			})
			require.NoError(t, err)

			scores, err = repo.Load(ctx, store.DefaultScoreKey)
			require.NoError(t, err)
			assert.Equal(t, 2, scores["hello"].Score)
		})
	}
}

func TestScoreRepository_UpdateSkipsWriteOnCorruptData(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := newPlainKV()
	kv.data[store.DefaultScoreKey] = "[1,2"
	repo := store.NewScoreRepository(kv, nil)

	called := false
	err := repo.Update(ctx, store.DefaultScoreKey, func(domain.ScoreMap) (bool, error) {
		called = true
		return true, nil
	})
	assert.ErrorIs(t, err, store.ErrCorruptData)
	assert.False(t, called)
	assert.Equal(t, 0, kv.sets)
	assert.Equal(t, "[1,2", kv.data[store.DefaultScoreKey])
}
