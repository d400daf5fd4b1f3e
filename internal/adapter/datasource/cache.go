package datasource

import (
	"context"
	"strings"
	"sync"

	"github.com/couchcryptid/wildfire-dashboard/internal/observability"
)

// Source fetches snapshot documents by slash-separated path.
type Source interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// CachedSource wraps a Source with an in-memory LRU cache of document bodies.
// Snapshots are immutable once published, so entries live until evicted or
// invalidated.
type CachedSource struct {
	inner   Source
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedSource creates a cache decorator holding at most maxEntries documents.
func NewCachedSource(inner Source, maxEntries int, metrics *observability.Metrics) *CachedSource {
	return &CachedSource{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	if data, ok := c.cache.get(path); ok {
		c.metrics.DocumentCache.WithLabelValues("hit").Inc()
		return data, nil
	}
	c.metrics.DocumentCache.WithLabelValues("miss").Inc()

	data, err := c.inner.Fetch(ctx, path)
	if err != nil {
		// Failures are not cached so a document published later is picked up.
		return nil, err
	}
	c.cache.put(path, data)
	return data, nil
}

// Invalidate drops every cached document whose path starts with prefix and
// returns how many were dropped.
func (c *CachedSource) Invalidate(prefix string) int {
	n := c.cache.removePrefix(prefix)
	c.metrics.CacheInvalidations.Add(float64(n))
	return n
}

// Purge drops every cached document.
func (c *CachedSource) Purge() int {
	return c.Invalidate("")
}

// Len returns the number of cached documents.
func (c *CachedSource) Len() int {
	return c.cache.len()
}

// lruCache is a simple thread-safe LRU cache of document bodies.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value []byte
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxEntries <= 0 {
		return
	}
	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evict(c.tail)
	}
}

func (c *lruCache) removePrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for key, e := range c.entries {
		if strings.HasPrefix(key, prefix) {
			c.evict(e)
			n++
		}
	}
	return n
}

func (c *lruCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evict(e *entry) {
	if e == nil {
		return
	}
	delete(c.entries, e.key)
	c.remove(e)
}
