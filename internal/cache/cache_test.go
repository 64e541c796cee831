package cache

import (
	"testing"
	"time"
)

func newTestCache(ttl time.Duration) (*Cache[string], *time.Time) {
	c := New[string](ttl)
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestGetWithinTTL(t *testing.T) {
	c, now := newTestCache(5 * time.Minute)
	c.Set("k", "v")

	*now = now.Add(5*time.Minute - time.Second)
	got, ok := c.Get("k")
	if !ok {
		t.Fatal("expected hit just before TTL")
	}
	if got != "v" {
		t.Errorf("expected %q, got %q", "v", got)
	}
}

func TestGetAfterTTLEvicts(t *testing.T) {
	c, now := newTestCache(5 * time.Minute)
	c.Set("k", "v")

	*now = now.Add(5*time.Minute + time.Second)
	if _, ok := c.Get("k"); ok {
		t.Fatal("expected miss just after TTL")
	}
	// Entry must be gone, not merely hidden.
	if _, ok := c.InsertedAt("k"); ok {
		t.Error("expected expired entry to be evicted")
	}
}

func TestGetAbsentKey(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	if _, ok := c.Get("missing"); ok {
		t.Error("expected miss for absent key")
	}
}

func TestSetOverwritesAndRestamps(t *testing.T) {
	c, now := newTestCache(5 * time.Minute)
	c.Set("k", "old")

	*now = now.Add(4 * time.Minute)
	c.Set("k", "new")

	// The rewrite restarted the clock: 4m after the second write the
	// entry is still fresh even though the first write is 8m old.
	*now = now.Add(4 * time.Minute)
	got, ok := c.Get("k")
	if !ok {
		t.Fatal("expected hit after overwrite")
	}
	if got != "new" {
		t.Errorf("expected %q, got %q", "new", got)
	}
}

func TestClearOneKey(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	c.Set("a", "1")
	c.Set("b", "2")

	c.Clear("a")
	if _, ok := c.Get("a"); ok {
		t.Error("expected a to be cleared")
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("expected b to survive")
	}
}

func TestClearAll(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	c.Set("a", "1")
	c.Set("b", "2")

	c.Clear()
	if _, ok := c.Get("a"); ok {
		t.Error("expected a to be cleared")
	}
	if _, ok := c.Get("b"); ok {
		t.Error("expected b to be cleared")
	}
}
