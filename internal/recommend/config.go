// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"fmt"
)

// Config contains the tunables of the language recommender.
type Config struct {
	// WindowYears is the span of the recent window in calendar years, inclusive of
	// the latest release year.
	WindowYears int `json:"window_years" koanf:"window_years"`

	// Thresholds are the minimum sample sizes tried in order. Must be strictly
	// descending and positive.
	Thresholds []int `json:"thresholds" koanf:"thresholds"`

	// MinGroups is how many languages must meet a threshold for it to apply.
	MinGroups int `json:"min_groups" koanf:"min_groups"`

	// FallbackLimit is the number of top-ranked languages kept when no threshold
	// applies.
	FallbackLimit int `json:"fallback_limit" koanf:"fallback_limit"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		WindowYears:   3,
		Thresholds:    []int{20, 10, 5},
		MinGroups:     3,
		FallbackLimit: 8,
	}
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if c.WindowYears < 1 {
		return fmt.Errorf("window_years must be at least 1, got %d", c.WindowYears)
	}
	if c.MinGroups < 1 {
		return fmt.Errorf("min_groups must be at least 1, got %d", c.MinGroups)
	}
	if c.FallbackLimit < 1 {
		return fmt.Errorf("fallback_limit must be at least 1, got %d", c.FallbackLimit)
	}
	for i, t := range c.Thresholds {
		if t < 1 {
			return fmt.Errorf("thresholds[%d] must be positive, got %d", i, t)
		}
		if i > 0 && t >= c.Thresholds[i-1] {
			return fmt.Errorf("thresholds must be strictly descending, got %v", c.Thresholds)
		}
	}
	return nil
}
