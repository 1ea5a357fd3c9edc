// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/analytics"
	"github.com/tomtom215/marquee/internal/models"
)

// Recommender produces the language shortlist. It holds no mutable state and is
// safe for concurrent use.
type Recommender struct {
	config Config
	rules  []Rule
	logger zerolog.Logger
}

// New creates a Recommender after validating cfg.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(cfg Config, logger zerolog.Logger) (*Recommender, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recommend config: %w", err)
	}
	return &Recommender{
		config: cfg,
		rules:  Rules(cfg),
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Config returns the configuration in use.
func (r *Recommender) Config() Config {
	return r.config
}

// Recommend ranks languages in the recent window and applies the decision table.
func (r *Recommender) Recommend(recs []models.EnrichedRecord) models.RecommendationSet {
	window, start, end := RecentWindow(recs, r.config.WindowYears)
	ranked := RankLanguages(window)
	if len(ranked) == 0 && start != nil {
		// No language in the window: rank the whole dataset instead.
		window, start, end = recs, nil, nil
		ranked = RankLanguages(window)
	}

	set := models.RecommendationSet{
		Rows:           []models.RecommendationRow{},
		WindowStart:    start,
		WindowEnd:      end,
		CandidateCount: len(ranked),
	}

	for _, rule := range r.rules {
		if !rule.Applies(ranked) {
			continue
		}
		for _, c := range rule.Select(ranked) {
			set.Rows = append(set.Rows, models.RecommendationRow{
				Language:          c.Language,
				AveragePopularity: c.AveragePopularity,
				AverageSentiment:  c.AverageSentiment,
				SampleSize:        c.SampleSize,
			})
		}
		set.Rule = rule.Name
		set.Threshold = rule.Threshold
		break
	}

	r.logger.Debug().
		Str("rule", set.Rule).
		Int("threshold", set.Threshold).
		Int("candidates", set.CandidateCount).
		Int("selected", len(set.Rows)).
		Int("window_records", len(window)).
		Msg("Language recommendation selected")

	return set
}

// RecentWindow returns the records released within the last windowYears years of
// the latest release year, with the inclusive bounds. When no record has a year or
// the window is empty, every record is returned and both bounds are nil.
func RecentWindow(recs []models.EnrichedRecord, windowYears int) ([]models.EnrichedRecord, *int, *int) {
	maxYear, found := 0, false
	for i := range recs {
		if y := recs[i].Year; y != nil && (!found || *y > maxYear) {
			maxYear, found = *y, true
		}
	}
	if !found {
		return recs, nil, nil
	}

	start := maxYear - (windowYears - 1)
	window := make([]models.EnrichedRecord, 0, len(recs))
	for i := range recs {
		if y := recs[i].Year; y != nil && *y >= start {
			window = append(window, recs[i])
		}
	}
	if len(window) == 0 {
		return recs, nil, nil
	}
	end := maxYear
	return window, &start, &end
}

// RankLanguages groups records by language and orders the groups by mean sentiment,
// then mean popularity, both descending. Records without a language are skipped.
func RankLanguages(recs []models.EnrichedRecord) []Candidate {
	groups := analytics.Summarize(recs, analytics.GroupSpec[models.EnrichedRecord, string]{
		Key: func(r models.EnrichedRecord) (string, bool) {
			if r.OriginalLanguage == nil || *r.OriginalLanguage == "" {
				return "", false
			}
			return *r.OriginalLanguage, true
		},
		ID: func(r models.EnrichedRecord) string { return r.ID },
		Measures: []analytics.Measure[models.EnrichedRecord]{
			{Name: "average_popularity", Value: func(r models.EnrichedRecord) *float64 { return r.Popularity }, Reduction: analytics.Mean},
			{Name: "average_sentiment", Value: func(r models.EnrichedRecord) *float64 {
				s := r.Sentiment
				return &s
			}, Reduction: analytics.Mean},
		},
	})

	ranked := make([]Candidate, len(groups))
	for i, g := range groups {
		ranked[i] = Candidate{
			Language:          g.Key,
			AveragePopularity: g.Values[0],
			AverageSentiment:  g.Values[1],
			SampleSize:        g.Count,
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if c := compareDesc(ranked[i].AverageSentiment, ranked[j].AverageSentiment); c != 0 {
			return c < 0
		}
		return compareDesc(ranked[i].AveragePopularity, ranked[j].AveragePopularity) < 0
	})
	return ranked
}

// compareDesc orders optional values descending with nil last. It returns a
// negative number when a sorts first, positive when b does and 0 on a tie.
func compareDesc(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a > *b:
		return -1
	case *a < *b:
		return 1
	default:
		return 0
	}
}
