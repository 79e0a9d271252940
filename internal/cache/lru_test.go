package cache

import (
	"fmt"
	"testing"
	"time"
)

func TestLRUGetSet(t *testing.T) {
	c := NewLRU[string](10, time.Hour)

	if _, ok := c.Get("missing"); ok {
		t.Fatal("expected miss for unknown key")
	}

	c.Set("a", "one")
	if v, ok := c.Get("a"); !ok || v != "one" {
		t.Fatalf("expected one, got %q (ok=%v)", v, ok)
	}

	c.Set("a", "two")
	if v, _ := c.Get("a"); v != "two" {
		t.Fatalf("expected overwrite to two, got %q", v)
	}
}

func TestLRUEviction(t *testing.T) {
	c := NewLRU[int](3, time.Hour)
	for i := 0; i < 3; i++ {
		c.Set(fmt.Sprintf("k%d", i), i)
	}

	// Touch k0 so k1 becomes the eviction candidate.
	c.Get("k0")
	c.Set("k3", 3)

	if _, ok := c.Get("k1"); ok {
		t.Fatal("k1 should have been evicted")
	}
	for _, key := range []string{"k0", "k2", "k3"} {
		if _, ok := c.Get(key); !ok {
			t.Fatalf("%s should still be cached", key)
		}
	}
	if c.Size() != 3 {
		t.Fatalf("expected size 3, got %d", c.Size())
	}
}

func TestLRUTTLExpiry(t *testing.T) {
	c := NewLRU[int](10, -1)
	c.Set("k", 1)

	if _, ok := c.Get("k"); ok {
		t.Fatal("expired entry must not be served")
	}
	if c.Size() != 0 {
		t.Fatalf("expired entry must be dropped on read, size %d", c.Size())
	}
}

func TestLRUDelete(t *testing.T) {
	c := NewLRU[int](10, time.Hour)
	c.Set("k", 1)
	c.Delete("k")
	c.Delete("k") // idempotent

	if _, ok := c.Get("k"); ok {
		t.Fatal("deleted entry must not be served")
	}
}
