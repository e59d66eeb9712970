package portfolio

import (
	"context"
	"sync"
	"time"

	"github.com/Xav0929/portfolio/content"
)

// CatalogCache is an in-memory snapshot of the stored catalog with a TTL.
type CatalogCache struct {
	mu      sync.RWMutex
	catalog *content.Catalog
	fetched time.Time
	ttl     time.Duration
	store   *Store
}

// NewCatalogCache creates a CatalogCache backed by the given Store.
func NewCatalogCache(s *Store, ttl time.Duration) *CatalogCache {
	return &CatalogCache{store: s, ttl: ttl}
}

func (c *CatalogCache) valid() bool {
	return c.catalog != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *CatalogCache) Invalidate() {
	c.mu.Lock()
	c.catalog = nil
	c.mu.Unlock()
}

// Catalog returns the cached catalog, reloading it from the store when stale.
// It tries a read lock first and only takes the write lock to reload.
// The returned catalog is shared and must not be modified.
func (c *CatalogCache) Catalog(ctx context.Context) (*content.Catalog, error) {
	c.mu.RLock()
	if c.valid() {
		cat := c.catalog
		c.mu.RUnlock()
		return cat, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.catalog, nil
	}
	cat, err := c.store.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	c.catalog = cat
	c.fetched = time.Now()
	return cat, nil
}
