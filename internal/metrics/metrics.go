package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cache layer counters. The tier label separates the durable backend from the
// in-process fallback.
var (
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tipster_cache_hits_total",
		Help: "Cache hits by storage tier.",
	}, []string{"tier"})

	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tipster_cache_misses_total",
		Help: "Cache misses across all tiers.",
	})

	CacheFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tipster_cache_fallbacks_total",
		Help: "Durable-store failures absorbed by the in-process fallback.",
	})

	CacheEvictions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tipster_cache_evictions_total",
		Help: "Entries evicted from the in-process store by the FIFO bound.",
	})
)

// Upstream odds provider counters.
var (
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tipster_upstream_requests_total",
		Help: "Odds provider fetches by sport and outcome.",
	}, []string{"sport", "outcome"})
)

// HTTP surface.
var (
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tipster_http_request_duration_seconds",
		Help:    "API request latency by route and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "status"})
)
