package bundler

import (
	"sync"

	"go.trai.ch/incr/internal/core/domain"
	"go.trai.ch/incr/internal/core/ports"
)

var _ ports.DepsCache = (*Cache)(nil)

// Cache is the lookup table the resolver consults before reading a file.
// Each key holds a getter that is evaluated on every read; a key, once
// defined, keeps its getter for the lifetime of the cache.
type Cache struct {
	mu      sync.RWMutex
	getters map[string]ports.Getter
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		getters: make(map[string]ports.Getter),
	}
}

// Get evaluates the getter for file.
func (c *Cache) Get(file string) (domain.Record, bool) {
	c.mu.RLock()
	getter, ok := c.getters[file]
	c.mu.RUnlock()

	if !ok {
		return domain.Record{}, false
	}
	return getter()
}

// Has reports whether a getter is defined for file.
func (c *Cache) Has(file string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.getters[file]
	return ok
}

// Define installs getter for file unless one is already defined.
func (c *Cache) Define(file string, getter ports.Getter) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.getters[file]; ok {
		return false
	}
	c.getters[file] = getter
	return true
}

// Len returns the number of defined keys.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.getters)
}
