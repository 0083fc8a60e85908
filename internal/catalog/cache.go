package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/angelmondragon/storefront-sync/pkg/logger"
	"github.com/angelmondragon/storefront-sync/pkg/metrics"
	"golang.org/x/sync/singleflight"
)

// Freshness sentinels. Zero means an entry is stale the moment it lands;
// negative means entries stay fresh for the lifetime of the session.
const (
	AlwaysStale  time.Duration = 0
	SessionFresh time.Duration = -1
)

// FetchFunc loads the value for a cache key from the collaborator.
type FetchFunc func(ctx context.Context) (any, error)

type entry struct {
	value      any
	fetchedAt  time.Time
	lastAccess time.Time
}

// Cache is a fetch-and-cache layer for read-mostly reference data. Lookups
// for the same key are de-duplicated while a fetch is in flight, staleness
// is decided per call, and entries idle past the configured window are
// evicted by a background janitor.
type Cache struct {
	log     *logger.Logger
	metrics *metrics.CacheMetrics
	idle    time.Duration
	clock   func() time.Time

	group   singleflight.Group
	mu      sync.Mutex
	entries map[string]*entry

	stopOnce sync.Once
	stop     chan struct{}
}

// CacheOptions configures a Cache.
type CacheOptions struct {
	// IdleEviction drops entries unread for this long. Zero disables the
	// janitor and lets entries live for the session.
	IdleEviction time.Duration
	Logger       *logger.Logger
	Metrics      *metrics.CacheMetrics

	// Clock overrides time.Now, for tests.
	Clock func() time.Time
}

// NewCache builds a cache and starts its eviction janitor when configured.
func NewCache(opts CacheOptions) *Cache {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	cache := &Cache{
		log:     opts.Logger,
		metrics: opts.Metrics,
		idle:    opts.IdleEviction,
		clock:   clock,
		entries: map[string]*entry{},
		stop:    make(chan struct{}),
	}
	if cache.idle > 0 {
		go cache.janitor()
	}
	return cache
}

// Get returns the cached value for key when present and fresh, otherwise
// issues exactly one fetch for the key even under concurrent callers and
// fans the result out. A caller whose ctx is cancelled gets the ctx error;
// the shared fetch keeps running so other callers (and the cache) still see
// the result.
func (c *Cache) Get(ctx context.Context, key string, freshness time.Duration, fetch FetchFunc) (any, error) {
	now := c.clock()

	c.mu.Lock()
	if cached, ok := c.entries[key]; ok && c.fresh(cached, freshness, now) {
		cached.lastAccess = now
		value := cached.value
		c.mu.Unlock()
		c.metrics.IncHit(key)
		return value, nil
	}
	c.mu.Unlock()
	c.metrics.IncMiss(key)

	resultCh := c.group.DoChan(key, func() (any, error) {
		// The flight outlives any single caller.
		value, err := fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		fetchedAt := c.clock()
		c.mu.Lock()
		c.entries[key] = &entry{value: value, fetchedAt: fetchedAt, lastAccess: fetchedAt}
		c.mu.Unlock()
		return value, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-resultCh:
		if result.Err != nil {
			return nil, result.Err
		}
		return result.Val, nil
	}
}

// Invalidate drops the entry for key, forcing the next Get to fetch.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Close stops the eviction janitor.
func (c *Cache) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *Cache) fresh(cached *entry, freshness time.Duration, now time.Time) bool {
	if freshness < 0 {
		return true
	}
	if freshness == 0 {
		return false
	}
	return now.Sub(cached.fetchedAt) < freshness
}

func (c *Cache) janitor() {
	interval := c.idle / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.evictIdle()
		}
	}
}

func (c *Cache) evictIdle() {
	now := c.clock()
	c.mu.Lock()
	for key, cached := range c.entries {
		if now.Sub(cached.lastAccess) >= c.idle {
			delete(c.entries, key)
			c.metrics.IncEviction(key)
			if c.log != nil {
				c.log.Debug(c.log.WithResource(context.Background(), key), "catalog cache entry evicted")
			}
		}
	}
	c.mu.Unlock()
}
