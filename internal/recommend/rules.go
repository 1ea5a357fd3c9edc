// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"fmt"
)

// FallbackRule is the name of the rule that fires when no threshold applies.
const FallbackRule = "fallback-top-N"

// Candidate is one ranked language before the decision table is applied.
type Candidate struct {
	Language          string
	AveragePopularity *float64
	AverageSentiment  *float64
	SampleSize        int
}

// Rule is one row of the decision table.
type Rule struct {
	// Name identifies the rule in logs, metrics and the recommendation set.
	Name string

	// Threshold is the minimum sample size the rule enforces, 0 for none.
	Threshold int

	// Applies reports whether the rule fires for the ranked candidates.
	Applies func(ranked []Candidate) bool

	// Select returns the shortlist, preserving rank order.
	Select func(ranked []Candidate) []Candidate
}

// Rules returns the ordered decision table for cfg. The last rule always applies.
func Rules(cfg Config) []Rule {
	rules := make([]Rule, 0, len(cfg.Thresholds)+1)
	for _, t := range cfg.Thresholds {
		threshold := t
		rules = append(rules, Rule{
			Name:      fmt.Sprintf("threshold-%d", threshold),
			Threshold: threshold,
			Applies: func(ranked []Candidate) bool {
				return countAtLeast(ranked, threshold) >= cfg.MinGroups
			},
			Select: func(ranked []Candidate) []Candidate {
				return filterAtLeast(ranked, threshold)
			},
		})
	}

	limit := cfg.FallbackLimit
	rules = append(rules, Rule{
		Name:    FallbackRule,
		Applies: func([]Candidate) bool { return true },
		Select: func(ranked []Candidate) []Candidate {
			if len(ranked) > limit {
				ranked = ranked[:limit]
			}
			return append([]Candidate(nil), ranked...)
		},
	})
	return rules
}

func countAtLeast(ranked []Candidate, threshold int) int {
	n := 0
	for _, c := range ranked {
		if c.SampleSize >= threshold {
			n++
		}
	}
	return n
}

func filterAtLeast(ranked []Candidate, threshold int) []Candidate {
	out := make([]Candidate, 0, len(ranked))
	for _, c := range ranked {
		if c.SampleSize >= threshold {
			out = append(out, c)
		}
	}
	return out
}
