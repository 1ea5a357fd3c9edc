// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package metrics provides Prometheus metrics collection and export for observability.

All metrics are registered on a dedicated Registry rather than the global default, so
a batch run exports exactly the Marquee metrics and tests can reason about them.

# Export

Batch runs write the registry to a node_exporter textfile:

	if err := metrics.WriteTextfile("/var/lib/node_exporter/marquee.prom"); err != nil {
	    logging.Warn().Err(err).Msg("Failed to write metrics textfile")
	}

The serve command exposes the same registry at /metrics through Handler.

# Available Metrics

Pipeline Metrics:
  - marquee_records_ingested_total: Records accepted by the normalizer (counter)
  - marquee_expanded_rows: Rows produced by the category expansion of the last run (gauge)
  - marquee_pipeline_stage_duration_seconds: Stage latency (histogram)
    Labels: stage (normalize, enrich, expand, aggregate, recommend, export)
  - marquee_recommendation_threshold: Sample-size threshold of the last run, 0 for fallback (gauge)
  - marquee_recommendation_rule_total: Decision-table rule selections (counter)
    Labels: rule
  - marquee_export_rows_total: Rows written per table (counter)
    Labels: table

TMDB Metrics:
  - marquee_tmdb_requests_total: Upstream requests (counter)
    Labels: endpoint, status
  - marquee_tmdb_request_duration_seconds: Upstream latency (histogram)
  - marquee_tmdb_cache_hits_total, marquee_tmdb_cache_misses_total: Response cache efficiency
  - marquee_circuit_breaker_state: 0 closed, 1 half-open, 2 open (gauge)
    Labels: name

API Metrics:
  - marquee_api_requests_total: Requests served (counter)
    Labels: method, endpoint, status
  - marquee_api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
*/
package metrics
