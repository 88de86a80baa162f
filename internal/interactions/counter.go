// ModelGrid - AI Model Marketplace Ranking and Recommendations
// Copyright 2026 ModelGrid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/modelgrid/modelgrid

package interactions

import "sort"

// Counter is an insertion-ordered frequency counter. Iteration order is
// first-insertion order, which keeps profile and co-occurrence results
// deterministic across runs regardless of map iteration order.
type Counter struct {
	keys   []string
	counts map[string]int
}

// NewCounter returns an empty counter.
func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

// Add increments the count for key, registering it on first sight.
func (c *Counter) Add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.counts[key]++
}

// Count returns the current count for key, zero if unseen.
func (c *Counter) Count(key string) int { return c.counts[key] }

// Keys returns all keys in first-insertion order.
func (c *Counter) Keys() []string { return c.keys }

// Len returns the number of distinct keys.
func (c *Counter) Len() int { return len(c.keys) }

// Top returns up to n keys ordered by count descending. Equal counts
// keep first-insertion order. n <= 0 returns all keys.
func (c *Counter) Top(n int) []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	sort.SliceStable(out, func(i, j int) bool {
		return c.counts[out[i]] > c.counts[out[j]]
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
