package cache

import (
	"context"
	"sync"

	"github.com/sinja33/RouteOptimize/internal/domain"
)

// MemoryGeocodeCache is the in-process backing for the geocode cache.
// Contents are lost on restart. Safe for concurrent use.
type MemoryGeocodeCache struct {
	mu sync.RWMutex
	m  map[string]domain.Coordinates
}

func NewMemoryGeocodeCache() *MemoryGeocodeCache {
	return &MemoryGeocodeCache{m: make(map[string]domain.Coordinates)}
}

func (c *MemoryGeocodeCache) GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error) {
	out := make(map[string]domain.Coordinates, len(addresses))

	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, a := range dedupe(addresses) {
		if coords, ok := c.m[a]; ok {
			out[a] = coords
		}
	}
	return out, nil
}

func (c *MemoryGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for addr, coords := range results {
		if addr == "" {
			continue
		}
		c.m[addr] = coords
	}
	return nil
}
