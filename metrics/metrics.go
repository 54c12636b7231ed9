// Package metrics provides Prometheus metrics for search-hub.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SearchesTotal counts search requests by outcome.
	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "searchhub",
			Name:      "searches_total",
			Help:      "Total number of search requests",
		},
		[]string{"status"},
	)

	// SearchDuration measures search request duration.
	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "searchhub",
			Name:      "search_duration_seconds",
			Help:      "Duration of search requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// SuggestCacheHits counts suggestion cache hits.
	SuggestCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "searchhub",
			Name:      "suggest_cache_hits_total",
			Help:      "Total number of suggestion cache hits",
		},
	)

	// SuggestCacheMisses counts suggestion cache misses.
	SuggestCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "searchhub",
			Name:      "suggest_cache_misses_total",
			Help:      "Total number of suggestion cache misses",
		},
	)

	// RateLimitRejections counts requests rejected by the rate limiter.
	RateLimitRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "searchhub",
			Name:      "rate_limit_rejections_total",
			Help:      "Total number of rate-limited requests",
		},
	)

	// IndexSize tracks the number of items currently in the index.
	IndexSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "searchhub",
			Name:      "index_size",
			Help:      "Number of searchable items in the index",
		},
	)

	// IndexOpsTotal counts index write operations by kind and outcome.
	IndexOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "searchhub",
			Name:      "index_ops_total",
			Help:      "Total number of index write operations",
		},
		[]string{"op", "status"},
	)

	// EventsConsumedTotal counts lifecycle events handled by the consumer.
	EventsConsumedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "searchhub",
			Name:      "events_consumed_total",
			Help:      "Total number of content lifecycle events consumed",
		},
		[]string{"event_type", "status"},
	)

	// AnalyticsDroppedTotal counts analytics entries dropped on full buffer.
	AnalyticsDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "searchhub",
			Name:      "analytics_dropped_total",
			Help:      "Total number of analytics entries dropped because the buffer was full",
		},
	)

	// SanitizationFailuresTotal counts fields excluded from the index.
	SanitizationFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "searchhub",
			Name:      "sanitization_failures_total",
			Help:      "Total number of content fields excluded by sanitization",
		},
	)
)
