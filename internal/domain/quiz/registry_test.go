package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryEvictsOldest(t *testing.T) {
	t.Parallel()
	r := NewRegistry(2)

	r.Put("k", &Quiz{ID: "a"})
	r.Put("k", &Quiz{ID: "b"})
	r.Put("k", &Quiz{ID: "c"})

	_, ok := r.Get("k", "a")
	assert.False(t, ok, "oldest quiz should be evicted")
	_, ok = r.Get("k", "c")
	assert.True(t, ok)
	assert.Equal(t, 2, r.Len())
}

func TestRegistryReplaceDoesNotEvict(t *testing.T) {
	t.Parallel()
	r := NewRegistry(2)

	r.Put("k", &Quiz{ID: "a"})
	r.Put("k", &Quiz{ID: "b"})
	r.Put("k", &Quiz{ID: "a"})

	_, ok := r.Get("k", "b")
	assert.True(t, ok)
	assert.Equal(t, 2, r.Len())
}

func TestRegistryScopesQuizzesToOwner(t *testing.T) {
	t.Parallel()
	r := NewRegistry(4)
	q := &Quiz{ID: "a"}
	r.Put("memory_scores:alice", q)

	held, ok := r.Get("memory_scores:alice", "a")
	require.True(t, ok)
	assert.Same(t, q, held)

	held, ok = r.Get("memory_scores:bob", "a")
	assert.False(t, ok)
	assert.Nil(t, held)

	_, ok = r.Get("memory_scores", "a")
	assert.False(t, ok)
}

func TestNewRegistryDefaultCapacity(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 128, NewRegistry(0).capacity)
}
