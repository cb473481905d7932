package dedup

import (
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func SystemClock() Clock { return systemClock{} }

// SeenCache is the process-local fast tier of the dedup check. It is a
// best-effort accelerator only: nothing may assume it is consistent across
// instances, the durable marker store stays the source of truth.
type SeenCache interface {
	Get(key string) (time.Time, bool)
	Set(key string, at time.Time)
	Sweep(olderThan time.Time)
}

type memoryCache struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func NewMemoryCache() SeenCache {
	return &memoryCache{entries: make(map[string]time.Time)}
}

func (c *memoryCache) Get(key string) (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	at, ok := c.entries[key]
	return at, ok
}

func (c *memoryCache) Set(key string, at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = at
}

// Sweep evicts entries first seen before olderThan. Called opportunistically
// from the check path, there is no background timer.
func (c *memoryCache) Sweep(olderThan time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, at := range c.entries {
		if at.Before(olderThan) {
			delete(c.entries, key)
		}
	}
}
