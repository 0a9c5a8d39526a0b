package application

import (
	"sync"
)

// projectionCache keeps derived views (flattened rows, customer roll-ups,
// occupancy indexes) computed for a store revision so repeated list queries
// skip the projection work while nothing has been written.
type projectionCache struct {
	mu         sync.RWMutex
	maxEntries int
	entries    map[string]projectionCacheEntry
}

type projectionCacheEntry struct {
	revision uint64
	value    any
}

func newProjectionCache(maxEntries int) *projectionCache {
	if maxEntries <= 0 {
		maxEntries = 32
	}
	return &projectionCache{
		maxEntries: maxEntries,
		entries:    make(map[string]projectionCacheEntry),
	}
}

func (c *projectionCache) get(key string, revision uint64) (any, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || entry.revision != revision {
		return nil, false
	}
	return entry.value, true
}

func (c *projectionCache) store(key string, revision uint64, value any) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cleanupLocked(revision)
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictOneLocked()
	}
	c.entries[key] = projectionCacheEntry{revision: revision, value: value}
}

func (c *projectionCache) invalidate() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries = make(map[string]projectionCacheEntry)
	c.mu.Unlock()
}

func (c *projectionCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// cleanupLocked drops entries built for older revisions.
func (c *projectionCache) cleanupLocked(revision uint64) {
	for key, entry := range c.entries {
		if entry.revision != revision {
			delete(c.entries, key)
		}
	}
}

func (c *projectionCache) evictOneLocked() {
	for key := range c.entries {
		delete(c.entries, key)
		return
	}
}

// cachedProjection returns the cached value for key at revision, building
// and storing it on a miss. Cached values are shared between callers and
// must be treated as read-only. Failed builds are not cached.
func cachedProjection[T any](c *projectionCache, key string, revision uint64, build func() (T, error)) (T, error) {
	if value, ok := c.get(key, revision); ok {
		if typed, ok := value.(T); ok {
			return typed, nil
		}
	}
	value, err := build()
	if err != nil {
		return value, err
	}
	c.store(key, revision, value)
	return value, nil
}
