// Package metrics provides Prometheus metrics for the review dashboard.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "newsreview"

var (
	// DatasetLoadsTotal counts dataset file reads by outcome.
	DatasetLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_loads_total",
			Help:      "Total number of dataset file reads",
		},
		[]string{"result"},
	)

	// DatasetLoadDuration measures how long a dataset read takes.
	DatasetLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dataset_load_duration_seconds",
			Help:      "Duration of dataset file reads in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// DatasetRecords is the record count of the most recent load.
	DatasetRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_records",
			Help:      "Number of records in the most recently loaded dataset",
		},
	)

	// DatasetCacheLookupsTotal counts dataset cache lookups by result.
	DatasetCacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_cache_lookups_total",
			Help:      "Total number of dataset cache lookups",
		},
		[]string{"result"},
	)

	// ExclusionsTotal counts not-relevant submissions by result.
	ExclusionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exclusions_total",
			Help:      "Total number of not-relevant submissions",
		},
		[]string{"result"},
	)

	// HTTPRequestsTotal counts HTTP requests by route and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration measures request handling time.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// RateLimitedTotal counts requests rejected by the rate limiter.
	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Total number of requests rejected by the rate limiter",
		},
	)
)

// Load results.
const (
	LoadOK       = "ok"
	LoadMissing  = "missing"
	LoadMismatch = "schema_mismatch"
	LoadError    = "error"
)

// Exclusion results.
const (
	ExclusionAdded     = "added"
	ExclusionDuplicate = "duplicate"
	ExclusionError     = "error"
)

// RecordLoad records a dataset read.
func RecordLoad(result string, records int, duration float64) {
	DatasetLoadsTotal.WithLabelValues(result).Inc()
	DatasetLoadDuration.Observe(duration)
	if result == LoadOK || result == LoadMissing {
		DatasetRecords.Set(float64(records))
	}
}

// RecordCacheLookup records a cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		DatasetCacheLookupsTotal.WithLabelValues("hit").Inc()
		return
	}
	DatasetCacheLookupsTotal.WithLabelValues("miss").Inc()
}

// RecordExclusion records a not-relevant submission.
func RecordExclusion(result string) {
	ExclusionsTotal.WithLabelValues(result).Inc()
}

// RecordRequest records a served HTTP request.
func RecordRequest(method, route, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration)
}

// RecordRateLimited records a request rejected by the rate limiter.
func RecordRateLimited() {
	RateLimitedTotal.Inc()
}
