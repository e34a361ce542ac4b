// Package viewcache holds a section's denormalized rows between backend
// loads. Search and filter run purely over this cache; they never hit the
// store.
package viewcache

import (
	"strings"
	"sync"
)

// Cache is an ordered list of view rows keyed by record id. It is populated
// wholesale on every full load and patched in place after single-record
// mutations.
type Cache[V any] struct {
	mu   sync.RWMutex
	rows []V
	key  func(V) string
}

func New[V any](key func(V) string) *Cache[V] {
	return &Cache[V]{key: key}
}

// Set replaces the whole cache, keeping the given order.
func (c *Cache[V]) Set(rows []V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rows = append([]V(nil), rows...)
}

// Rows returns a copy of the cached rows in load order.
func (c *Cache[V]) Rows() []V {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]V(nil), c.rows...)
}

func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.rows)
}

// Get finds a row by id.
func (c *Cache[V]) Get(id string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, r := range c.rows {
		if c.key(r) == id {
			return r, true
		}
	}
	var zero V
	return zero, false
}

// Patch updates one row in place without touching its position. Returns
// false when the id is not cached.
func (c *Cache[V]) Patch(id string, fn func(*V)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.rows {
		if c.key(c.rows[i]) == id {
			fn(&c.rows[i])
			return true
		}
	}
	return false
}

// Remove drops one row by id.
func (c *Cache[V]) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.rows {
		if c.key(c.rows[i]) == id {
			c.rows = append(c.rows[:i:i], c.rows[i+1:]...)
			return true
		}
	}
	return false
}

// Append adds a row at the end.
func (c *Cache[V]) Append(v V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rows = append(c.rows, v)
}

// Select returns the rows passing keep, in cache order.
func (c *Cache[V]) Select(keep func(V) bool) []V {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := []V{}
	for _, r := range c.rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// ContainsFold reports whether any field contains q, case-insensitively.
// An empty query matches everything.
func ContainsFold(q string, fields ...string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
