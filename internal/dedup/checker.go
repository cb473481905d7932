package dedup

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// MarkerStore is the durable tier. Markers are append-only; the window query
// is bounded by the TTL so retention of old markers does not matter here.
type MarkerStore interface {
	HasMarker(ctx context.Context, messageID string, since time.Time) (bool, error)
	WriteMarker(ctx context.Context, messageID, sourceID string, at time.Time) error
}

// Checker answers "has this external message already been processed?" for
// an at-least-once webhook stream. Store errors never block the caller:
// a missed duplicate suppression is preferable to dropping all inbound
// traffic, so every failure path returns false.
type Checker struct {
	cache SeenCache
	store MarkerStore
	ttl   time.Duration
	clock Clock
}

func NewChecker(cache SeenCache, store MarkerStore, ttl time.Duration, clock Clock) *Checker {
	if clock == nil {
		clock = SystemClock()
	}
	return &Checker{
		cache: cache,
		store: store,
		ttl:   ttl,
		clock: clock,
	}
}

func (c *Checker) IsDuplicate(ctx context.Context, messageID, sourceID string) bool {
	// Without an external id there is nothing to deduplicate on.
	if messageID == "" {
		return false
	}

	key := messageID + sourceID
	now := c.clock.Now()
	defer c.cache.Sweep(now.Add(-c.ttl))

	if firstSeen, ok := c.cache.Get(key); ok && now.Sub(firstSeen) < c.ttl {
		return true
	}

	// The cache is local to this process; concurrent instances are only
	// covered by the durable check.
	found, err := c.store.HasMarker(ctx, messageID, now.Add(-c.ttl))
	if err != nil {
		logrus.Warnf("dedup marker lookup failed, failing open: %v", err)
		return false
	}

	if found {
		c.cache.Set(key, now)
		return true
	}

	if err := c.store.WriteMarker(ctx, messageID, sourceID, now); err != nil {
		logrus.Warnf("dedup marker write failed for message %s: %v", messageID, err)
	}
	c.cache.Set(key, now)

	return false
}
