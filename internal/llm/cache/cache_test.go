package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetSet(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "k", []byte(`{"a":1}`), time.Minute))

	value, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"a":1}`), value)
}

func TestMemoryLazyExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	store := NewMemory()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Minute))

	now = now.Add(59 * time.Second)
	_, ok, _ := store.Get(ctx, "k")
	assert.True(t, ok)

	now = now.Add(2 * time.Second)
	_, ok, _ = store.Get(ctx, "k")
	assert.False(t, ok)

	// Expired entries are removed on read.
	assert.Empty(t, store.entries)
}

func TestMemoryZeroTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	store := NewMemory()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "k", []byte("v"), 0))

	now = now.Add(24 * time.Hour)
	_, ok, _ := store.Get(ctx, "k")
	assert.True(t, ok)
}

func TestMemoryOverwrite(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	require.NoError(t, store.Set(ctx, "k", []byte("old"), time.Minute))
	require.NoError(t, store.Set(ctx, "k", []byte("new"), time.Minute))

	value, ok, _ := store.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, []byte("new"), value)
}
