// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/validation"
)

// Validate checks that required configuration is present and valid.
// Struct tags are checked first, then rules spanning more than one field.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}

	if err := c.validateAnalysis(); err != nil {
		return err
	}

	if err := c.validateOutput(); err != nil {
		return err
	}

	if err := c.validateTMDB(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateAnalysis requires at least one threshold and a strictly descending order.
func (c *Config) validateAnalysis() error {
	t := c.Analysis.Thresholds
	if len(t) == 0 {
		return fmt.Errorf("ANALYSIS_THRESHOLDS must contain at least one value")
	}
	for i := 1; i < len(t); i++ {
		if t[i] >= t[i-1] {
			return fmt.Errorf("ANALYSIS_THRESHOLDS must be strictly descending, got %v", t)
		}
	}
	return nil
}

func (c *Config) validateOutput() error {
	if c.Output.Parquet && c.Output.DuckDBPath == "" {
		return fmt.Errorf("EXPORT_PARQUET requires DUCKDB_PATH")
	}
	return nil
}

func (c *Config) validateTMDB() error {
	if err := validateHTTPURL(c.TMDB.BaseURL, "TMDB_BASE_URL"); err != nil {
		return fmt.Errorf("TMDB_BASE_URL is invalid: %w", err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}

// RequireAPIKey reports an error when the TMDB API key is unset. Only the fetch
// command calls it.
func (c *Config) RequireAPIKey() error {
	if c.TMDB.APIKey == "" {
		return fmt.Errorf("TMDB_API_KEY is required to fetch the catalogue")
	}
	return nil
}
