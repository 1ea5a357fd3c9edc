// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths searched for a config file, in order.
var DefaultConfigPaths = []string{
	"marquee.yaml",
	"marquee.yml",
	"config.yaml",
	"config.yml",
	"/etc/marquee/config.yaml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with every default applied. These are overridden
// by the config file and then by environment variables.
func defaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Path:           "data/tmdb_popular.csv",
			Format:         "auto",
			Engine:         "native",
			CategoriesPath: "data/genres_map.csv",
		},
		Output: OutputConfig{
			Dir: "outputs",
		},
		Analysis: AnalysisConfig{
			WindowYears:   3,
			Thresholds:    []int{20, 10, 5},
			MinGroups:     3,
			FallbackLimit: 8,
			TopCategories: 15,
			Timeout:       2 * time.Minute,
		},
		TMDB: TMDBConfig{
			BaseURL:    "https://api.themoviedb.org/3",
			Language:   "en-US",
			Pages:      10,
			RateLimit:  4,
			Burst:      1,
			Timeout:    15 * time.Second,
			MaxRetries: 3,
			CacheTTL:   24 * time.Hour,
			DataDir:    "data",
		},
		Server: ServerConfig{
			Host:            "127.0.0.1",
			Port:            8080,
			Timeout:         30 * time.Second,
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Default returns the built-in configuration without reading files or environment.
func Default() *Config {
	return defaultConfig()
}

// Load reads configuration with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: path if non-empty, else the first of CONFIG_PATH and DefaultConfigPaths
//  3. Environment Variables: Override any mapped setting
//
// An explicit path that does not exist is an error; the fallback search is optional.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	configPath := path
	if configPath == "" {
		configPath = findConfigFile()
	} else if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("config file %s: %w", configPath, err)
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// INPUT_PATH -> input.path, TMDB_API_KEY -> tmdb.api_key
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "" when none exists.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated strings when set via environment.
var sliceConfigPaths = []string{
	"analysis.thresholds",
	"server.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known
// slice fields. Numeric slices are converted during unmarshalling.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to koanf paths.
// Unmapped variables are ignored so unrelated environment does not leak in.
var envMappings = map[string]string{
	// Input
	"input_path":      "input.path",
	"input_format":    "input.format",
	"input_engine":    "input.engine",
	"categories_path": "input.categories_path",

	// Output
	"output_dir":     "output.dir",
	"duckdb_path":    "output.duckdb_path",
	"export_parquet": "output.parquet",
	"report_path":    "output.report_path",

	// Analysis
	"analysis_window_years":   "analysis.window_years",
	"analysis_thresholds":     "analysis.thresholds",
	"analysis_min_groups":     "analysis.min_groups",
	"analysis_fallback_limit": "analysis.fallback_limit",
	"analysis_top_categories": "analysis.top_categories",
	"analysis_timeout":        "analysis.timeout",

	// TMDB
	"tmdb_api_key":     "tmdb.api_key",
	"tmdb_base_url":    "tmdb.base_url",
	"tmdb_language":    "tmdb.language",
	"tmdb_pages":       "tmdb.pages",
	"tmdb_rate_limit":  "tmdb.rate_limit",
	"tmdb_burst":       "tmdb.burst",
	"tmdb_timeout":     "tmdb.timeout",
	"tmdb_max_retries": "tmdb.max_retries",
	"tmdb_cache_dir":   "tmdb.cache_dir",
	"tmdb_cache_ttl":   "tmdb.cache_ttl",
	"tmdb_data_dir":    "tmdb.data_dir",

	// Server
	"http_host":           "server.host",
	"http_port":           "server.port",
	"http_timeout":        "server.timeout",
	"rate_limit_requests": "server.rate_limit_reqs",
	"rate_limit_window":   "server.rate_limit_window",
	"cors_origins":        "server.cors_origins",

	// Metrics
	"metrics_textfile": "metrics.textfile",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - INPUT_PATH -> input.path
//   - ANALYSIS_THRESHOLDS -> analysis.thresholds
//   - HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
