// Package glyphcache memoizes per-glyph computations behind a sharded
// map, so a font handle shared across goroutines extracts each outline
// once.
package glyphcache

import (
	"sync"
	"sync/atomic"
)

// shardCount spreads lock contention across independent shards.
// Must be a power of 2 for fast modulo via bitwise AND.
const shardCount = 16

const shardMask = shardCount - 1

// Cache maps glyph IDs to computed values. The zero value is not
// usable; create instances with New.
//
// Values are stored as-is and returned shared: callers must treat a
// cached value as immutable.
type Cache[V any] struct {
	shards [shardCount]shard[V]

	// Statistics (atomic for zero-allocation reads)
	hits   atomic.Uint64
	misses atomic.Uint64
}

type shard[V any] struct {
	mu      sync.RWMutex
	entries map[uint32]V
}

// New creates an empty cache.
func New[V any]() *Cache[V] {
	c := &Cache[V]{}
	for i := range c.shards {
		c.shards[i].entries = make(map[uint32]V)
	}
	return c
}

func (c *Cache[V]) shard(gid uint32) *shard[V] {
	return &c.shards[gid&shardMask]
}

// Get retrieves a cached value.
func (c *Cache[V]) Get(gid uint32) (V, bool) {
	s := c.shard(gid)
	s.mu.RLock()
	v, ok := s.entries[gid]
	s.mu.RUnlock()
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// GetOrCreate returns the cached value for gid, computing and storing
// it on first use. A failed create is returned to the caller and not
// cached, so transient errors do not poison the entry.
//
// The create function runs with the shard lock held; concurrent
// callers for the same glyph compute it once.
func (c *Cache[V]) GetOrCreate(gid uint32, create func() (V, error)) (V, error) {
	s := c.shard(gid)

	s.mu.RLock()
	v, ok := s.entries[gid]
	s.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return v, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Re-check after acquiring the write lock.
	if v, ok := s.entries[gid]; ok {
		c.hits.Add(1)
		return v, nil
	}
	c.misses.Add(1)

	v, err := create()
	if err != nil {
		var zero V
		return zero, err
	}
	s.entries[gid] = v
	return v, nil
}

// Len returns the total number of entries across all shards.
func (c *Cache[V]) Len() int {
	total := 0
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.RLock()
		total += len(s.entries)
		s.mu.RUnlock()
	}
	return total
}

// Stats reports cache effectiveness counters.
type Stats struct {
	Len    int
	Hits   uint64
	Misses uint64
}

// Stats returns current cache statistics.
func (c *Cache[V]) Stats() Stats {
	return Stats{
		Len:    c.Len(),
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
}
