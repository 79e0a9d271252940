// Package cache provides the in-process caches the service shares across
// requests: a two-tier snapshot cache with a fresh/stale TTL policy and a
// TTL'd LRU for per-key response caching.
package cache

import (
	"sync"
	"time"
)

// Policy is a two-window TTL: entries within Fresh are served without any
// refresh attempt; entries past Fresh but within Stale may still be served
// when a refresh cannot complete.
type Policy struct {
	Fresh time.Duration
	Stale time.Duration
}

// TwoTier holds a single snapshot of T together with its set time and serves
// it according to a Policy. It is safe for concurrent use.
type TwoTier[T any] struct {
	mu     sync.RWMutex
	policy Policy
	data   T
	setAt  time.Time
	ok     bool
}

func NewTwoTier[T any](policy Policy) *TwoTier[T] {
	return &TwoTier[T]{policy: policy}
}

// Fresh returns the snapshot if it is within the fresh window.
func (c *TwoTier[T]) Fresh() (T, bool) {
	return c.get(c.policy.Fresh)
}

// Usable returns the snapshot if it is within the stale-but-usable window.
func (c *TwoTier[T]) Usable() (T, bool) {
	return c.get(c.policy.Stale)
}

func (c *TwoTier[T]) get(window time.Duration) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var zero T
	if !c.ok || time.Since(c.setAt) > window {
		return zero, false
	}
	return c.data, true
}

// Set replaces the snapshot and restarts both windows.
func (c *TwoTier[T]) Set(data T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data = data
	c.setAt = time.Now()
	c.ok = true
}

// Age returns how long ago the snapshot was set, or false if none was ever set.
func (c *TwoTier[T]) Age() (time.Duration, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.ok {
		return 0, false
	}
	return time.Since(c.setAt), true
}
