// Package cache provides a process-wide TTL cache used to skip
// recomputing low-churn reads (job and department lists) within a
// time window. Entries are derived, re-computable values: staleness
// beyond the TTL is never observable, reclamation timing is not
// guaranteed. There is no eviction beyond TTL.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// Cache is an expiring key-value map. Construct one per process (or
// per test) and pass it to the components that need it.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// New creates an empty cache
func New() *Cache {
	return &Cache{
		entries: make(map[string]entry),
	}
}

// Get returns the value for key, or false if the key is absent or
// past its expiry. Expired entries are treated as absent without
// being purged; Reap or a later Set reclaims them.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key, overwriting unconditionally
func (c *Cache) Set(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
}

// Delete removes key. Callers invalidate whenever an underlying write
// would make a cached read stale; there is no dependency tracking.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Reap removes expired entries and returns how many were removed.
// Run periodically by the maintenance service.
func (c *Cache) Reap() int {
	now := time.Now()
	removed := 0

	c.mu.Lock()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	c.mu.Unlock()

	return removed
}

// Len returns the number of stored entries, expired or not
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
