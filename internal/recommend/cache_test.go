// ModelGrid - AI Model Marketplace Ranking and Recommendations
// Copyright 2026 ModelGrid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/modelgrid/modelgrid

package recommend

import (
	"fmt"
	"testing"
	"time"
)

// fakeClock is a hand-advanced clock for cache tests.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestCacheRoundTrip(t *testing.T) {
	clock := newFakeClock()
	cache := newResultCache(5*time.Minute, 100, clock.now)

	result := &Result{TotalCandidates: 7}
	cache.put("k", result)

	got := cache.get("k")
	if got != result {
		t.Fatalf("get returned %p, want the identical result %p", got, result)
	}
	if cache.size() != 1 {
		t.Errorf("size() = %d, want 1", cache.size())
	}
}

func TestCacheTTLExpiry(t *testing.T) {
	clock := newFakeClock()
	cache := newResultCache(5*time.Minute, 100, clock.now)
	cache.put("k", &Result{})

	clock.advance(4 * time.Minute)
	if cache.get("k") == nil {
		t.Fatal("entry expired too early")
	}

	clock.advance(2 * time.Minute)
	if cache.get("k") != nil {
		t.Fatal("entry should have expired")
	}
	// Expired lookup evicts the entry.
	if cache.size() != 0 {
		t.Errorf("size() = %d after expired lookup, want 0", cache.size())
	}
}

func TestCacheEvictsOldestCreated(t *testing.T) {
	clock := newFakeClock()
	cache := newResultCache(time.Hour, 3, clock.now)

	for i := 0; i < 3; i++ {
		cache.put(fmt.Sprintf("k%d", i), &Result{})
		clock.advance(time.Second)
	}
	// Refresh k0 by touching it: creation time is what matters, not
	// recency of use, so k0 is still the eviction victim.
	if cache.get("k0") == nil {
		t.Fatal("k0 should be cached")
	}

	cache.put("k3", &Result{})

	if cache.get("k0") != nil {
		t.Error("k0 (oldest created) should have been evicted")
	}
	for _, key := range []string{"k1", "k2", "k3"} {
		if cache.get(key) == nil {
			t.Errorf("%s should survive eviction", key)
		}
	}
	if cache.size() != 3 {
		t.Errorf("size() = %d, want 3", cache.size())
	}
}

func TestCacheClear(t *testing.T) {
	clock := newFakeClock()
	cache := newResultCache(time.Hour, 10, clock.now)
	cache.put("a", &Result{})
	cache.put("b", &Result{})

	cache.clear()

	if cache.size() != 0 {
		t.Errorf("size() = %d after clear, want 0", cache.size())
	}
	if cache.get("a") != nil {
		t.Error("cleared entry still retrievable")
	}
}

func TestCachePutReplacesExisting(t *testing.T) {
	clock := newFakeClock()
	cache := newResultCache(time.Hour, 10, clock.now)

	first := &Result{TotalCandidates: 1}
	second := &Result{TotalCandidates: 2}
	cache.put("k", first)
	cache.put("k", second)

	if got := cache.get("k"); got != second {
		t.Errorf("get returned stale entry")
	}
	if cache.size() != 1 {
		t.Errorf("size() = %d, want 1", cache.size())
	}
}
