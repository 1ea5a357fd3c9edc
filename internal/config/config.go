// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from defaults, an optional
// YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every setting
//  2. Config File: Optional YAML file (--config, CONFIG_PATH, marquee.yaml, config.yaml)
//  3. Environment Variables: Override any mapped setting
//
// Example:
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	src, err := ingest.Open(cfg.Input.Path, cfg.Input.Format)
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Input    InputConfig    `koanf:"input"`
	Output   OutputConfig   `koanf:"output"`
	Analysis AnalysisConfig `koanf:"analysis"`
	TMDB     TMDBConfig     `koanf:"tmdb"`
	Server   ServerConfig   `koanf:"server"`
	Metrics  MetricsConfig  `koanf:"metrics"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// InputConfig locates the catalogue records and the category lookup.
//
// Environment Variables:
//   - INPUT_PATH: Catalogue file (default: data/tmdb_popular.csv)
//   - INPUT_FORMAT: auto, csv, json, jsonl or parquet (default: auto, by extension)
//   - INPUT_ENGINE: native or duckdb (default: native; parquet always uses duckdb)
//   - CATEGORIES_PATH: id,name CSV or JSON object (default: data/genres_map.csv)
type InputConfig struct {
	Path           string `koanf:"path" validate:"required"`
	Format         string `koanf:"format" validate:"oneof=auto csv json jsonl parquet"`
	Engine         string `koanf:"engine" validate:"oneof=native duckdb"`
	CategoriesPath string `koanf:"categories_path"`
}

// OutputConfig controls where the exported tables go.
//
// Environment Variables:
//   - OUTPUT_DIR: Directory for the CSV tables and manifest (default: outputs)
//   - DUCKDB_PATH: Optional DuckDB database receiving the tables
//   - EXPORT_PARQUET: Also write each table as Parquet (requires DUCKDB_PATH)
//   - REPORT_PATH: Optional Markdown report written after analysis
type OutputConfig struct {
	Dir        string `koanf:"dir" validate:"required"`
	DuckDBPath string `koanf:"duckdb_path"`
	Parquet    bool   `koanf:"parquet"`
	ReportPath string `koanf:"report_path"`
}

// AnalysisConfig holds the recommendation and aggregation tunables.
//
// Environment Variables:
//   - ANALYSIS_WINDOW_YEARS: Recent window span in years (default: 3)
//   - ANALYSIS_THRESHOLDS: Comma-separated sample-size thresholds (default: 20,10,5)
//   - ANALYSIS_MIN_GROUPS: Languages required for a threshold to apply (default: 3)
//   - ANALYSIS_FALLBACK_LIMIT: Languages kept by the fallback rule (default: 8)
//   - ANALYSIS_TOP_CATEGORIES: Rows in the top categories table (default: 15)
//   - ANALYSIS_TIMEOUT: Upper bound for one analysis run (default: 2m)
type AnalysisConfig struct {
	WindowYears   int           `koanf:"window_years" validate:"min=1,max=100"`
	Thresholds    []int         `koanf:"thresholds" validate:"dive,min=1"`
	MinGroups     int           `koanf:"min_groups" validate:"min=1"`
	FallbackLimit int           `koanf:"fallback_limit" validate:"min=1"`
	TopCategories int           `koanf:"top_categories" validate:"min=1,max=1000"`
	Timeout       time.Duration `koanf:"timeout" validate:"gt=0"`
}

// TMDBConfig configures the catalogue fetcher.
//
// Environment Variables:
//   - TMDB_API_KEY: API key (v3 auth); required by the fetch command only
//   - TMDB_BASE_URL: API root (default: https://api.themoviedb.org/3)
//   - TMDB_LANGUAGE: Language tag for titles and genre names (default: en-US)
//   - TMDB_PAGES: Popular pages fetched per kind (default: 10)
//   - TMDB_RATE_LIMIT: Requests per second (default: 4)
//   - TMDB_TIMEOUT: Per-request timeout (default: 15s)
//   - TMDB_CACHE_DIR: BadgerDB response cache directory; empty disables caching
//   - TMDB_CACHE_TTL: Cached response lifetime (default: 24h)
type TMDBConfig struct {
	APIKey     string        `koanf:"api_key"`
	BaseURL    string        `koanf:"base_url" validate:"required,url"`
	Language   string        `koanf:"language" validate:"required,langtag"`
	Pages      int           `koanf:"pages" validate:"min=1,max=500"`
	RateLimit  float64       `koanf:"rate_limit" validate:"gt=0"`
	Burst      int           `koanf:"burst" validate:"min=1"`
	Timeout    time.Duration `koanf:"timeout" validate:"gt=0"`
	MaxRetries int           `koanf:"max_retries" validate:"min=0,max=10"`
	CacheDir   string        `koanf:"cache_dir"`
	CacheTTL   time.Duration `koanf:"cache_ttl" validate:"min=0"`
	DataDir    string        `koanf:"data_dir" validate:"required"`
}

// ServerConfig configures the read-only HTTP API.
//
// Environment Variables:
//   - HTTP_HOST: Bind address (default: 127.0.0.1)
//   - HTTP_PORT: Listen port (default: 8080)
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout         time.Duration `koanf:"timeout" validate:"gt=0"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs" validate:"min=0"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// MetricsConfig controls metrics export for batch runs.
//
// Environment Variables:
//   - METRICS_TEXTFILE: Write a Prometheus textfile here after each analysis
type MetricsConfig struct {
	Textfile string `koanf:"textfile"`
}

// LoggingConfig holds logging settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json or console (default: json)
//   - LOG_CALLER: Include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"required"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}
