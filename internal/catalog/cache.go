package catalog

import "sync"

// Cache accumulates fetched products across pages in arrival order. It does
// not deduplicate: overlapping pages from a shifting remote catalog keep
// their duplicate entries. Single writer, snapshot readers.
type Cache struct {
	mu    sync.RWMutex
	items []Product
}

func NewCache() *Cache {
	return &Cache{}
}

// AppendPage concatenates a fetched page to the end of the cache.
func (c *Cache) AppendPage(items []Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, items...)
}

// Reset replaces the entire cache contents. Used on refresh and on the first
// page of a fresh load.
func (c *Cache) Reset(items []Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items[:0:0], items...)
}

// Snapshot returns a copy of the current sequence.
func (c *Cache) Snapshot() []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Product, len(c.items))
	copy(out, c.items)
	return out
}

// Len reports the number of cached products.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
