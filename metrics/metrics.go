// Package metrics holds the Prometheus collectors shared across the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequests counts PubMed API calls by endpoint and outcome
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pubmedx_upstream_requests_total",
		Help: "Total PubMed E-utilities requests by endpoint and outcome",
	}, []string{"endpoint", "outcome"})

	// UpstreamRetries counts retried PubMed API calls
	UpstreamRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pubmedx_upstream_retries_total",
		Help: "Total retried PubMed E-utilities requests",
	})

	// RateLimitWait tracks time spent waiting for rate limit admission
	RateLimitWait = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pubmedx_rate_limit_wait_seconds",
		Help:    "Time spent waiting for rate limiter admission",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
	})

	// JobsCreated counts crawl jobs accepted
	JobsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pubmedx_jobs_created_total",
		Help: "Total crawl jobs created",
	})

	// JobsFinished counts crawl jobs by terminal status
	JobsFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pubmedx_jobs_finished_total",
		Help: "Total crawl jobs finished by terminal status",
	}, []string{"status"})

	// JobsActive tracks crawl jobs currently pending or in progress
	JobsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pubmedx_jobs_active",
		Help: "Crawl jobs currently pending or in progress",
	})

	// ArticlesProcessed counts articles expanded during crawls
	ArticlesProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pubmedx_articles_processed_total",
		Help: "Total articles processed during crawls",
	})

	// CacheHits counts article cache hits
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pubmedx_cache_hits_total",
		Help: "Total article cache hits",
	})

	// CacheMisses counts article cache misses
	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pubmedx_cache_misses_total",
		Help: "Total article cache misses",
	})
)
