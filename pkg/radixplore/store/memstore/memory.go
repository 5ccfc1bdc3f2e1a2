// Package memstore is an in-memory geocode.Cache for tests and
// cache-less runs that still want within-run deduplication.
package memstore

import (
	"context"
	"sync"

	"github.com/iKunal-Singh/radixplore-pipeline/pkg/radixplore/geocode"
)

// Cache implements geocode.Cache in memory.
type Cache struct {
	mu      sync.RWMutex
	entries map[string][]geocode.Candidate
}

// New creates an empty in-memory cache.
func New() *Cache {
	return &Cache{entries: make(map[string][]geocode.Candidate)}
}

// Get implements geocode.Cache.
func (c *Cache) Get(_ context.Context, query string) ([]geocode.Candidate, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cached, ok := c.entries[query]
	if !ok {
		return nil, false, nil
	}
	out := make([]geocode.Candidate, len(cached))
	copy(out, cached)
	return out, true, nil
}

// Put implements geocode.Cache.
func (c *Cache) Put(_ context.Context, query string, candidates []geocode.Candidate) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := make([]geocode.Candidate, len(candidates))
	copy(stored, candidates)
	c.entries[query] = stored
	return nil
}

// Len returns the number of cached queries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
