package dedup

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type markerRecord struct {
	sourceID string
	at       time.Time
}

// fakeStore is an in-memory durable tier with error injection and call
// counters.
type fakeStore struct {
	mu       sync.Mutex
	markers  map[string][]markerRecord
	failWith error
	reads    int
	writes   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{markers: make(map[string][]markerRecord)}
}

func (s *fakeStore) HasMarker(_ context.Context, messageID string, since time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	if s.failWith != nil {
		return false, s.failWith
	}
	for _, m := range s.markers[messageID] {
		if m.at.After(since) {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) WriteMarker(_ context.Context, messageID, sourceID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	if s.failWith != nil {
		return s.failWith
	}
	s.markers[messageID] = append(s.markers[messageID], markerRecord{sourceID: sourceID, at: at})
	return nil
}

const ttl = 5 * time.Minute

func newTestChecker(store *fakeStore, clock *fakeClock) *Checker {
	return NewChecker(NewMemoryCache(), store, ttl, clock)
}

func TestIsDuplicateFirstSeenThenDuplicate(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	checker := newTestChecker(store, clock)

	assert.False(t, checker.IsDuplicate(ctx, "abc123", "5511999999999"), "first call must pass")
	assert.Equal(t, 1, store.writes, "first-seen writes exactly one marker")

	for i := 0; i < 5; i++ {
		clock.Advance(time.Second)
		assert.True(t, checker.IsDuplicate(ctx, "abc123", "5511999999999"), "call %d must be a duplicate", i+2)
	}
	assert.Equal(t, 1, store.writes, "duplicate detection produces zero additional writes")
}

func TestIsDuplicateTTLExpiry(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	checker := newTestChecker(store, clock)

	require.False(t, checker.IsDuplicate(ctx, "abc123", "5511999999999"))

	clock.Advance(ttl - time.Second)
	assert.True(t, checker.IsDuplicate(ctx, "abc123", "5511999999999"), "still inside the window")

	clock.Advance(2 * time.Second)
	assert.False(t, checker.IsDuplicate(ctx, "abc123", "5511999999999"),
		"the window is exactly the TTL, not permanent")
}

func TestIsDuplicateSurvivesProcessRestart(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	first := newTestChecker(store, clock)
	require.False(t, first.IsDuplicate(ctx, "abc123", "5511999999999"))

	// Fresh cache simulates another process/instance; only the durable
	// store carries the verdict across.
	second := newTestChecker(store, clock)
	clock.Advance(time.Second)
	assert.True(t, second.IsDuplicate(ctx, "abc123", "5511999999999"))
}

func TestIsDuplicateFailsOpenOnStoreError(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.failWith = errors.New("connection refused")
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	checker := newTestChecker(store, clock)

	assert.NotPanics(t, func() {
		assert.False(t, checker.IsDuplicate(ctx, "abc123", "5511999999999"))
		assert.False(t, checker.IsDuplicate(ctx, "abc123", "5511999999999"),
			"every call fails open while the store is down")
	})
}

func TestIsDuplicateEmptyIDPassthrough(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	checker := newTestChecker(store, &fakeClock{now: time.Now()})

	for i := 0; i < 3; i++ {
		assert.False(t, checker.IsDuplicate(ctx, "", "5511999999999"))
	}
	assert.Zero(t, store.reads, "empty id must not touch the store")
	assert.Zero(t, store.writes)
}

func TestIsDuplicateDistinctSourcesShareMarker(t *testing.T) {
	// The durable marker is keyed by message id only; the composite key
	// applies to the in-memory tier. Two sources with the same message id
	// therefore collapse to one processed message.
	ctx := context.Background()
	store := newFakeStore()
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	checker := newTestChecker(store, clock)

	require.False(t, checker.IsDuplicate(ctx, "abc123", "5511999999999"))
	clock.Advance(time.Second)
	assert.True(t, checker.IsDuplicate(ctx, "abc123", "5511888888888"))
}

func TestIsDuplicateSweepsExpiredEntries(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	cache := NewMemoryCache()
	checker := NewChecker(cache, store, ttl, clock)

	require.False(t, checker.IsDuplicate(ctx, "old-msg", "5511999999999"))

	clock.Advance(ttl + time.Minute)
	require.False(t, checker.IsDuplicate(ctx, "new-msg", "5511999999999"))

	_, ok := cache.Get("old-msg" + "5511999999999")
	assert.False(t, ok, "expired entries are evicted on the next check")
}
