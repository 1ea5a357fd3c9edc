// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package api serves the tables of a finished analysis run over HTTP.

The API is read-only. A Handler holds an immutable Snapshot of the tables that the
serve command computed at startup; a new Snapshot can be swapped in atomically.

# Endpoints

	GET /api/v1/health                 run id, generation time and table sizes
	GET /api/v1/tables/{name}          one table (yearly_trend, language_coverage,
	                                   top_categories, recommend_languages)
	GET /api/v1/recommendations        the recommendation set with its audit trail
	GET /metrics                       Prometheus exposition

Every JSON response uses the models.APIResponse envelope. The tables endpoint
accepts an optional limit query parameter (0 to 10000, 0 meaning all rows).

# Middleware

Requests pass through request-id/correlation-id injection, chi RealIP,
Recoverer and Compress, go-chi/cors and an httprate limiter keyed by client IP. Request counts
and latencies are recorded under the matched route pattern.
*/
package api
