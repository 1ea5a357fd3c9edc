// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every Marquee metric.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	// Pipeline Metrics
	RecordsIngested = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "marquee_records_ingested_total",
			Help: "Total number of catalogue records accepted by the normalizer",
		},
	)

	ExpandedRows = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "marquee_expanded_rows",
			Help: "Number of (record, category) rows produced by the last run",
		},
	)

	PipelineStageDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marquee_pipeline_stage_duration_seconds",
			Help:    "Duration of pipeline stages in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5, 30},
		},
		[]string{"stage"},
	)

	RecommendationThreshold = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "marquee_recommendation_threshold",
			Help: "Minimum sample size applied by the last recommendation (0 when the fallback rule fired)",
		},
	)

	RecommendationRuleTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_recommendation_rule_total",
			Help: "Total number of recommendations produced by each decision-table rule",
		},
		[]string{"rule"},
	)

	ExportRowsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_export_rows_total",
			Help: "Total number of rows exported per table",
		},
		[]string{"table"},
	)

	// TMDB Metrics
	TMDBRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_tmdb_requests_total",
			Help: "Total number of TMDB API requests",
		},
		[]string{"endpoint", "status"},
	)

	TMDBRequestDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "marquee_tmdb_request_duration_seconds",
			Help:    "Duration of TMDB API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	TMDBCacheHits = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "marquee_tmdb_cache_hits_total",
			Help: "Total number of TMDB responses served from the local cache",
		},
	)

	TMDBCacheMisses = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "marquee_tmdb_cache_misses_total",
			Help: "Total number of TMDB requests not found in the local cache",
		},
	)

	CircuitBreakerState = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "marquee_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// API Metrics
	APIRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marquee_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		},
		[]string{"method", "endpoint"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// RecordStage records the duration of one pipeline stage.
func RecordStage(stage string, duration time.Duration) {
	PipelineStageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordRecommendation records which rule produced a recommendation.
func RecordRecommendation(rule string, threshold int) {
	RecommendationRuleTotal.WithLabelValues(rule).Inc()
	RecommendationThreshold.Set(float64(threshold))
}

// RecordExport records the number of rows written for a table.
func RecordExport(table string, rows int) {
	ExportRowsTotal.WithLabelValues(table).Add(float64(rows))
}

// RecordTMDBRequest records an upstream TMDB request. A status of 0 means the
// request failed before a response arrived.
func RecordTMDBRequest(endpoint string, status int, duration time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	TMDBRequestsTotal.WithLabelValues(endpoint, label).Inc()
	TMDBRequestDuration.Observe(duration.Seconds())
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}

// WriteTextfile writes the registry to path for the node_exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
