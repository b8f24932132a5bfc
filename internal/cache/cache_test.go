package cache

import (
	"testing"
	"time"
)

func TestEvictsLeastRecentlyUsedBeyondCapacity(t *testing.T) {
	c := New[int](2, time.Hour)

	c.Put("a", 1)
	c.Put("b", 2)

	// Touch "a" so "b" becomes the eviction candidate.
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("expected hit for a")
	}

	c.Put("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Fatalf("expected b to be evicted")
	}
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("expected a=1 to survive, got %v (hit=%v)", v, ok)
	}
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Fatalf("expected c=3 to be present, got %v (hit=%v)", v, ok)
	}
}

func TestExpiresAfterWriteNotAfterRead(t *testing.T) {
	now := time.Date(2026, 2, 2, 12, 0, 0, 0, time.UTC)
	c := New[string](10, 5*time.Minute)
	c.now = func() time.Time { return now }

	c.Put("k", "v")

	// Reads inside the TTL do not extend the entry's life.
	now = now.Add(4 * time.Minute)
	if _, ok := c.Get("k"); !ok {
		t.Fatalf("expected hit before expiry")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected miss after write-based expiry")
	}
}

func TestPutRefreshesExpiredEntry(t *testing.T) {
	now := time.Date(2026, 2, 2, 12, 0, 0, 0, time.UTC)
	c := New[string](10, 5*time.Minute)
	c.now = func() time.Time { return now }

	c.Put("k", "old")
	now = now.Add(10 * time.Minute)

	// The stale value must never be served, only replaced.
	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected miss on expired entry")
	}
	c.Put("k", "new")
	if v, ok := c.Get("k"); !ok || v != "new" {
		t.Fatalf("expected refreshed value, got %q (hit=%v)", v, ok)
	}
}

func TestSweepDropsOnlyExpiredEntries(t *testing.T) {
	now := time.Date(2026, 2, 2, 12, 0, 0, 0, time.UTC)
	c := New[int](10, 5*time.Minute)
	c.now = func() time.Time { return now }

	c.Put("old", 1)
	now = now.Add(4 * time.Minute)
	c.Put("fresh", 2)
	now = now.Add(2 * time.Minute)

	if removed := c.Sweep(); removed != 1 {
		t.Fatalf("expected 1 swept entry, got %d", removed)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 remaining entry, got %d", c.Len())
	}
	if _, ok := c.Get("fresh"); !ok {
		t.Fatalf("expected fresh entry to survive sweep")
	}
}
