package memkv_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/phrazzld/signdeck/internal/platform/memkv"
	"github.com/phrazzld/signdeck/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetSet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := memkv.New()

	_, found, err := s.Get(ctx, "memory_scores")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, "memory_scores", `{"hello":{"score":1,"lastSeen":5}}`))
	v, found, err := s.Get(ctx, "memory_scores")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"hello":{"score":1,"lastSeen":5}}`, v)

	require.NoError(t, s.Set(ctx, "memory_scores", "{}"))
	v, _, err = s.Get(ctx, "memory_scores")
	require.NoError(t, err)
	assert.Equal(t, "{}", v)
}

func TestStore_InvalidKey(t *testing.T) {
	t.Parallel()
	s := memkv.New()

	_, _, err := s.Get(context.Background(), "  ")
	assert.ErrorIs(t, err, store.ErrInvalidKey)
	assert.ErrorIs(t, s.Set(context.Background(), "", "x"), store.ErrInvalidKey)
}

func TestStore_Closed(t *testing.T) {
	t.Parallel()
	s := memkv.New()
	require.NoError(t, s.Close())

	_, _, err := s.Get(context.Background(), "k")
	assert.ErrorIs(t, err, store.ErrUnavailable)
	assert.ErrorIs(t, s.Set(context.Background(), "k", "v"), store.ErrUnavailable)
}

func TestStore_CanceledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := memkv.New().Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_Update(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("writes when requested", func(t *testing.T) {
		t.Parallel()
		s := memkv.New()
		err := s.Update(ctx, "k", func(current string, found bool) (string, bool, error) {
			assert.False(t, found)
			return "v1", true, nil
		})
		require.NoError(t, err)
		v, _, _ := s.Get(ctx, "k")
		assert.Equal(t, "v1", v)
	})

	t.Run("skips write", func(t *testing.T) {
		t.Parallel()
		s := memkv.New()
		require.NoError(t, s.Set(ctx, "k", "v0"))
		err := s.Update(ctx, "k", func(current string, found bool) (string, bool, error) {
			assert.True(t, found)
			assert.Equal(t, "v0", current)
			return "ignored", false, nil
		})
		require.NoError(t, err)
		v, _, _ := s.Get(ctx, "k")
		assert.Equal(t, "v0", v)
	})

	t.Run("propagates error", func(t *testing.T) {
		t.Parallel()
		s := memkv.New()
		boom := errors.New("boom")
		err := s.Update(ctx, "k", func(string, bool) (string, bool, error) {
			return "x", true, boom
		})
		assert.ErrorIs(t, err, boom)
		_, found, _ := s.Get(ctx, "k")
		assert.False(t, found)
	})

	t.Run("serializes concurrent updates", func(t *testing.T) {
		t.Parallel()
		s := memkv.New()
		const n = 50
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = s.Update(ctx, "counter", func(current string, found bool) (string, bool, error) {
					var c int
					if found {
						_, _ = fmt.Sscanf(current, "%d", &c)
					}
					return fmt.Sprint(c + 1), true, nil
				})
			}()
		}
		wg.Wait()
		v, _, _ := s.Get(ctx, "counter")
		assert.Equal(t, fmt.Sprint(n), v)
	})
}
