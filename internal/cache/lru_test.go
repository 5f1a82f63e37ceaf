package cache

import "testing"

func TestLRUCache_SetAndGet(t *testing.T) {
	c := NewLRUCache(4)

	c.Set("predictions:AAPL", "payload-1")

	value, found := c.Get("predictions:AAPL")
	if !found {
		t.Error("expected to find key")
	}
	if value != "payload-1" {
		t.Errorf("expected 'payload-1', got '%v'", value)
	}
}

func TestLRUCache_GetNotFound(t *testing.T) {
	c := NewLRUCache(4)

	if _, found := c.Get("missing"); found {
		t.Error("expected not to find missing key")
	}
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := NewLRUCache(4)

	c.Set("k", "old")
	c.Set("k", "new")

	value, _ := c.Get("k")
	if value != "new" {
		t.Errorf("expected 'new', got '%v'", value)
	}
	if c.Len() != 1 {
		t.Errorf("expected length 1, got %d", c.Len())
	}
}

func TestLRUCache_EvictsOldest(t *testing.T) {
	c := NewLRUCache(2)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	if _, found := c.Get("a"); found {
		t.Error("expected oldest key to be evicted")
	}
	if _, found := c.Get("b"); !found {
		t.Error("expected 'b' to survive")
	}
	if c.Len() != 2 {
		t.Errorf("expected length 2, got %d", c.Len())
	}
}

func TestLRUCache_GetRefreshesRecency(t *testing.T) {
	c := NewLRUCache(2)

	c.Set("a", 1)
	c.Set("b", 2)

	// Touch "a" so "b" becomes the eviction candidate.
	c.Get("a")
	c.Set("c", 3)

	if _, found := c.Get("a"); !found {
		t.Error("expected recently used key to survive")
	}
	if _, found := c.Get("b"); found {
		t.Error("expected least recently used key to be evicted")
	}
}

func TestLRUCache_Delete(t *testing.T) {
	c := NewLRUCache(4)

	c.Set("k", "v")
	c.Delete("k")

	if _, found := c.Get("k"); found {
		t.Error("expected key to be deleted")
	}
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got length %d", c.Len())
	}
}
