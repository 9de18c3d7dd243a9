// Package cache provides a thread-safe LRU cache for parsed programs.
//
// The cache is used by package parser when the WithCaching option is enabled.
// It avoids re-parsing the same source text on every call, which pays off when
// the same program is loaded repeatedly. Only successful parses are stored.
//
// # Example
//
//	c := cache.New(1024)
//	expr, err := c.GetOrParse(src, func() (ast.Expression, error) {
//	    return parser.Parse(src)
//	})
package cache

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/sandrolain/golambda/pkg/ast"
)

// DefaultCapacity is used when New is given a non-positive capacity.
const DefaultCapacity = 256

// Cache is an LRU cache of parsed expressions keyed by source text.
// Once the capacity is reached, the least recently used entry is evicted.
//
// Safe for concurrent use by multiple goroutines.
type Cache struct {
	capacity int
	lru      *lru.Cache
}

// New creates a new LRU cache with the given capacity.
// If capacity <= 0, DefaultCapacity is used.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	// lru.New only fails for non-positive sizes.
	l, err := lru.New(capacity)
	if err != nil {
		panic(err)
	}
	return &Cache{
		capacity: capacity,
		lru:      l,
	}
}

// Get retrieves a parsed expression and marks it as most recently used.
func (c *Cache) Get(source string) (ast.Expression, bool) {
	v, ok := c.lru.Get(source)
	if !ok {
		return nil, false
	}
	return v.(ast.Expression), true
}

// Set inserts or replaces the expression stored for source.
func (c *Cache) Set(source string, expr ast.Expression) {
	c.lru.Add(source, expr)
}

// GetOrParse returns the cached expression for source, or calls parse,
// caches its result and returns it. Errors are not cached.
func (c *Cache) GetOrParse(source string, parse func() (ast.Expression, error)) (ast.Expression, error) {
	if expr, ok := c.Get(source); ok {
		return expr, nil
	}
	expr, err := parse()
	if err != nil {
		return nil, err
	}
	c.Set(source, expr)
	return expr, nil
}

// Len returns the number of entries currently in the cache.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Capacity returns the maximum number of entries the cache can hold.
func (c *Cache) Capacity() int {
	return c.capacity
}

// Invalidate removes a single entry from the cache.
func (c *Cache) Invalidate(source string) {
	c.lru.Remove(source)
}

// Clear removes all entries from the cache.
func (c *Cache) Clear() {
	c.lru.Purge()
}
