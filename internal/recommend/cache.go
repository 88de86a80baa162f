// ModelGrid - AI Model Marketplace Ranking and Recommendations
// Copyright 2026 ModelGrid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/modelgrid/modelgrid

package recommend

import (
	"sync"
	"time"

	"github.com/modelgrid/modelgrid/internal/metrics"
)

// cacheEntry holds a cached result with its creation and expiry times.
// Eviction under size pressure removes the entry with the oldest
// createdAt, not the one closest to expiry.
type cacheEntry struct {
	result    *Result
	createdAt time.Time
	expiresAt time.Time
}

// resultCache is the engine's TTL'd recommendation cache. Lookups
// evict lazily on expiry; there is no background sweeper.
type resultCache struct {
	mu         sync.RWMutex
	entries    map[string]cacheEntry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

func newResultCache(ttl time.Duration, maxEntries int, now func() time.Time) *resultCache {
	return &resultCache{
		entries:    make(map[string]cacheEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        now,
	}
}

// get returns the cached result for key, or nil. Expired entries are
// removed on the way out.
func (c *resultCache) get(key string) *Result {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil
	}

	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		// Re-check: another writer may have replaced the entry.
		if cur, ok := c.entries[key]; ok && cur.expiresAt.Equal(entry.expiresAt) {
			delete(c.entries, key)
			metrics.CacheEntries.Set(float64(len(c.entries)))
		}
		c.mu.Unlock()
		return nil
	}
	return entry.result
}

// put stores result under key. When the cache grows past maxEntries
// the single entry with the oldest creation time is evicted.
func (c *resultCache) put(key string, result *Result) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		result:    result,
		createdAt: now,
		expiresAt: now.Add(c.ttl),
	}

	if len(c.entries) > c.maxEntries {
		oldestKey := ""
		var oldest time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.createdAt.Before(oldest) {
				oldestKey = k
				oldest = e.createdAt
			}
		}
		delete(c.entries, oldestKey)
	}
	metrics.CacheEntries.Set(float64(len(c.entries)))
}

// clear drops every entry.
func (c *resultCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
	metrics.CacheEntries.Set(0)
}

// size returns the current entry count, expired entries included.
func (c *resultCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
