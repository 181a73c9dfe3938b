// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

// Package metrics holds the Prometheus instrumentation for Deskintel.
//
// Collectors are registered on the default registry through promauto and
// exposed on /metrics by the API router.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "deskintel_query_duration_seconds",
			Help:    "Duration of report queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"driver"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deskintel_query_errors_total",
			Help: "Total number of failed report queries",
		},
		[]string{"driver", "error_type"},
	)

	DBQueryRows = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "deskintel_query_rows",
			Help:    "Number of rows materialized per query",
			Buckets: []float64{0, 1, 5, 10, 50, 100, 500, 1000},
		},
		[]string{"driver"},
	)

	DBConnectionAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deskintel_connection_attempts_total",
			Help: "Database handle construction attempts by outcome",
		},
		[]string{"outcome"}, // "success", "configuration_error", "connection_error"
	)

	DBHandleAvailable = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "deskintel_connection_handle_available",
			Help: "1 when a database handle is held, 0 otherwise",
		},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deskintel_cache_hits_total",
			Help: "Total number of memo hits",
		},
		[]string{"cache"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deskintel_cache_misses_total",
			Help: "Total number of memo misses",
		},
		[]string{"cache"},
	)

	CacheShared = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deskintel_cache_shared_total",
			Help: "Callers that waited on an in-flight computation instead of starting one",
		},
		[]string{"cache"},
	)

	CacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "deskintel_cache_entries",
			Help: "Current number of memoized entries",
		},
		[]string{"cache"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deskintel_cache_evictions_total",
			Help: "Total number of expired or cleared memo entries",
		},
		[]string{"cache"},
	)

	// Report Metrics
	ReportBuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deskintel_report_builds_total",
			Help: "Report builds by report and result",
		},
		[]string{"report", "result"}, // result: "ok", "empty", "error"
	)

	DashboardRenders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deskintel_dashboard_renders_total",
			Help: "Dashboard page renders by outcome",
		},
		[]string{"outcome"}, // "ok", "no_data", "error"
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deskintel_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "deskintel_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "deskintel_api_active_requests",
			Help: "Number of in-flight API requests",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordDBQuery records a query execution. Long error strings are cut to
// keep label cardinality bounded.
func RecordDBQuery(driver string, duration time.Duration, rows int, err error) {
	DBQueryDuration.WithLabelValues(driver).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(driver, errorType).Inc()
		return
	}
	DBQueryRows.WithLabelValues(driver).Observe(float64(rows))
}

// RecordConnectionAttempt records the single handle construction attempt.
func RecordConnectionAttempt(outcome string) {
	DBConnectionAttempts.WithLabelValues(outcome).Inc()
	if outcome == "success" {
		DBHandleAvailable.Set(1)
	} else {
		DBHandleAvailable.Set(0)
	}
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
