package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/reliefmap/relief/internal/model"
)

// MemoryCache implements in-memory result caching with expiry.
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a new memory cache.
func NewMemoryCache(defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a cached analysis. Callers must treat it as read-only.
func (c *MemoryCache) Get(key string) (*model.StructuralAnalysis, bool) {
	if val, found := c.cache.Get(key); found {
		return val.(*model.StructuralAnalysis), true
	}
	return nil, false
}

// Set stores an analysis under its content key.
func (c *MemoryCache) Set(key string, result *model.StructuralAnalysis) {
	c.cache.Set(key, result, gocache.DefaultExpiration)
}

// Delete removes one entry.
func (c *MemoryCache) Delete(key string) {
	c.cache.Delete(key)
}

// Clear removes all entries.
func (c *MemoryCache) Clear() {
	c.cache.Flush()
}
