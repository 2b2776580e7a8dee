package schedule

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/felixgeelhaar/fundplan/internal/catalog"
)

// DefaultCacheSize is used when a non-positive size is requested.
const DefaultCacheSize = 256

// CacheObserver is notified of cache lookups.
type CacheObserver interface {
	CacheHit()
	CacheMiss()
}

// CachedScheduler memoises schedules by configuration. The catalog behind a
// Computer never changes, so the configuration key alone identifies a
// result. Cached schedules are shared between callers and must be treated
// as read-only.
type CachedScheduler struct {
	next     Computer
	cache    *lru.Cache[string, *Schedule]
	observer CacheObserver
}

// NewCachedScheduler wraps next with an LRU cache holding up to size schedules.
func NewCachedScheduler(next Computer, size int, observer CacheObserver) (*CachedScheduler, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, *Schedule](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create schedule cache: %w", err)
	}
	return &CachedScheduler{
		next:     next,
		cache:    cache,
		observer: observer,
	}, nil
}

// Catalog returns the wrapped computer's catalog.
func (c *CachedScheduler) Catalog() *catalog.Catalog {
	return c.next.Catalog()
}

// Compute returns the cached schedule for cfg, computing it on a miss.
func (c *CachedScheduler) Compute(cfg Config) *Schedule {
	key := cfg.Key()
	if s, ok := c.cache.Get(key); ok {
		if c.observer != nil {
			c.observer.CacheHit()
		}
		return s
	}
	if c.observer != nil {
		c.observer.CacheMiss()
	}

	s := c.next.Compute(cfg)
	c.cache.Add(key, s)
	return s
}

// Len returns the number of cached schedules.
func (c *CachedScheduler) Len() int {
	return c.cache.Len()
}

// Purge empties the cache.
func (c *CachedScheduler) Purge() {
	c.cache.Purge()
}
