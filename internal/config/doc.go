// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package config provides centralized configuration management for Marquee.

Configuration is layered with Koanf v2: built-in defaults, then an optional YAML
file, then environment variables. The merged result is validated with struct tags
(go-playground/validator) and a handful of cross-field rules before it is returned.

# Configuration Structure

  - InputConfig: catalogue file, format, read engine, category lookup
  - OutputConfig: export directory, optional DuckDB database and Parquet copies
  - AnalysisConfig: recent window, sample-size thresholds, fallback, top-N
  - TMDBConfig: fetcher credentials, pacing, retries and response cache
  - ServerConfig: read-only HTTP API
  - MetricsConfig: Prometheus textfile for batch runs
  - LoggingConfig: zerolog level, format and caller info

# Config File

	input:
	  path: data/tmdb_popular.csv
	  categories_path: data/genres_map.csv
	output:
	  dir: outputs
	  duckdb_path: outputs/marquee.duckdb
	analysis:
	  window_years: 3
	  thresholds: [20, 10, 5]
	  min_groups: 3
	  fallback_limit: 8
	logging:
	  level: info
	  format: console

# Environment Variables

Only mapped names are read (see envMappings). Comma-separated values are accepted
for list settings:

	ANALYSIS_THRESHOLDS=30,15,5
	CORS_ORIGINS=https://a.example,https://b.example

A .env file in the working directory is loaded by the CLI before Load runs.

# Thread Safety

Config is immutable after Load and safe for concurrent read access.
*/
package config
