// Package cache provides a small in-memory TTL cache keyed by string.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value      V
	insertedAt time.Time
}

// Cache maps string keys to values that expire after a fixed TTL.
// Expired entries are evicted lazily on read. Safe for concurrent use.
type Cache[V any] struct {
	mu      sync.Mutex
	entries map[string]entry[V]
	ttl     time.Duration
	now     func() time.Time // overridable in tests
}

// New creates an empty cache with the given time-to-live.
func New[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the value stored under key. ok is false if the key is
// absent or its entry has outlived the TTL; an expired entry is evicted.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.now().Sub(e.insertedAt) > c.ttl {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, replacing any prior entry and stamping the
// current time.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{value: value, insertedAt: c.now()}
}

// Clear removes the given keys, or every entry when called with none.
func (c *Cache[V]) Clear(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(keys) == 0 {
		c.entries = make(map[string]entry[V])
		return
	}
	for _, k := range keys {
		delete(c.entries, k)
	}
}

// InsertedAt reports when the entry for key was last written, without
// evicting it. ok is false if the key is absent.
func (c *Cache[V]) InsertedAt(key string) (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return e.insertedAt, ok
}
