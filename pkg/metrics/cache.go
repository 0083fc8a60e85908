package metrics

import "github.com/prometheus/client_golang/prometheus"

// CacheMetrics records catalog cache behavior.
type CacheMetrics struct {
	hits      *prometheus.CounterVec
	misses    *prometheus.CounterVec
	evictions *prometheus.CounterVec
}

// NewCacheMetrics registers the cache metrics on the provided registerer.
func NewCacheMetrics(reg prometheus.Registerer) *CacheMetrics {
	if reg == nil {
		return &CacheMetrics{}
	}
	hits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_cache_hits",
		Help: "Catalog cache lookups served from a fresh entry.",
	}, []string{"key"})
	misses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_cache_misses",
		Help: "Catalog cache lookups that required a network fetch.",
	}, []string{"key"})
	evictions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_cache_evictions",
		Help: "Catalog cache entries dropped after the idle window.",
	}, []string{"key"})
	reg.MustRegister(hits, misses, evictions)
	return &CacheMetrics{hits: hits, misses: misses, evictions: evictions}
}

func (c *CacheMetrics) IncHit(key string) {
	if c == nil || c.hits == nil {
		return
	}
	c.hits.WithLabelValues(normalizeLabel(key)).Inc()
}

func (c *CacheMetrics) IncMiss(key string) {
	if c == nil || c.misses == nil {
		return
	}
	c.misses.WithLabelValues(normalizeLabel(key)).Inc()
}

func (c *CacheMetrics) IncEviction(key string) {
	if c == nil || c.evictions == nil {
		return
	}
	c.evictions.WithLabelValues(normalizeLabel(key)).Inc()
}
