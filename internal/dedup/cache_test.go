package dedup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheSetGet(t *testing.T) {
	cache := NewMemoryCache()
	now := time.Now()

	_, ok := cache.Get("missing")
	assert.False(t, ok)

	cache.Set("abc123", now)
	at, ok := cache.Get("abc123")
	require.True(t, ok)
	assert.Equal(t, now, at)
}

func TestMemoryCacheSweep(t *testing.T) {
	cache := NewMemoryCache()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	cache.Set("old", base.Add(-10*time.Minute))
	cache.Set("fresh", base.Add(-1*time.Minute))

	cache.Sweep(base.Add(-5 * time.Minute))

	_, ok := cache.Get("old")
	assert.False(t, ok, "entries older than the cutoff must be evicted")

	_, ok = cache.Get("fresh")
	assert.True(t, ok, "entries inside the window must survive the sweep")
}
