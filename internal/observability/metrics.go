package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP-level metrics come from fiberprometheus; the collectors here
// cover the cache layer and a few domain counters the dashboards key on.
var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campusmarket_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// CacheHits counts cache-aside hits by entity.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campusmarket_cache_hits_total",
		Help: "Total number of cache hits by entity",
	}, []string{"entity"})

	// CacheMisses counts cache-aside misses by entity.
	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campusmarket_cache_misses_total",
		Help: "Total number of cache misses by entity",
	}, []string{"entity"})

	// ListingsCreated counts marketplace listings created by category.
	ListingsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campusmarket_listings_created_total",
		Help: "Total number of listings created by category",
	}, []string{"category"})

	// MessagesSent counts direct messages accepted by the API.
	MessagesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "campusmarket_messages_sent_total",
		Help: "Total number of direct messages sent",
	})

	// RegistrationsTotal counts successful account registrations.
	RegistrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "campusmarket_registrations_total",
		Help: "Total number of successful registrations",
	})
)
