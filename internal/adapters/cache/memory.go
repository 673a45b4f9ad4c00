package cache

import (
	"context"
	"sync"

	"github.com/ilayShalev/claudpro/internal/domain"
	"github.com/ilayShalev/claudpro/internal/ports"
)

// MemoryRouteCache is a size-bounded in-memory route cache. When full, the
// oldest entry is evicted, so a long-lived process cannot grow it without
// limit. Safe for concurrent use.
type MemoryRouteCache struct {
	mu         sync.Mutex
	maxEntries int
	entries    map[string]*domain.RouteDetails
	order      []string
}

func NewMemoryRouteCache(maxEntries int) *MemoryRouteCache {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &MemoryRouteCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*domain.RouteDetails, maxEntries),
	}
}

func (c *MemoryRouteCache) Get(ctx context.Context, key string) (*domain.RouteDetails, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[key], nil
}

func (c *MemoryRouteCache) Put(ctx context.Context, key string, route *domain.RouteDetails) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		for len(c.entries) >= c.maxEntries && len(c.order) > 0 {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = route
	return nil
}

// Len reports the current entry count.
func (c *MemoryRouteCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// MemoryGeocodeCache is an unbounded in-memory geocode cache. The address
// universe for one deployment is small, so no eviction is needed.
type MemoryGeocodeCache struct {
	mu      sync.Mutex
	entries map[string]ports.GeocodeResult
}

func NewMemoryGeocodeCache() *MemoryGeocodeCache {
	return &MemoryGeocodeCache{entries: make(map[string]ports.GeocodeResult)}
}

func (c *MemoryGeocodeCache) Get(ctx context.Context, address string) (*ports.GeocodeResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if r, ok := c.entries[address]; ok {
		return &r, nil
	}
	return nil, nil
}

func (c *MemoryGeocodeCache) Put(ctx context.Context, address string, result ports.GeocodeResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[address] = result
	return nil
}
