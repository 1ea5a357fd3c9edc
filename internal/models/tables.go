// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

// YearlyTrendRow summarises titles released in one year for one kind.
type YearlyTrendRow struct {
	Year             int      `json:"year"`
	Kind             Kind     `json:"kind"`
	TitleCount       int      `json:"title_count"`
	AverageRating    *float64 `json:"average_rating"`
	TotalVotes       *int64   `json:"total_votes"`
	AverageSentiment *float64 `json:"average_sentiment"`
}

// LanguageCoverageRow summarises titles sharing an original language.
type LanguageCoverageRow struct {
	Language          string   `json:"original_language"`
	TitleCount        int      `json:"title_count"`
	AveragePopularity *float64 `json:"average_popularity"`
	AverageSentiment  *float64 `json:"average_sentiment"`
	AverageRating     *float64 `json:"average_rating"`
}

// CategoryRow summarises titles tagged with one category name.
// A title tagged with several categories counts towards each of them.
type CategoryRow struct {
	Category          string   `json:"category"`
	TitleCount        int      `json:"title_count"`
	AveragePopularity *float64 `json:"average_popularity"`
	AverageRating     *float64 `json:"average_rating"`
	AverageSentiment  *float64 `json:"average_sentiment"`
}

// RecommendationRow is one language in the recommendation shortlist.
type RecommendationRow struct {
	Language          string   `json:"original_language"`
	AveragePopularity *float64 `json:"average_popularity"`
	AverageSentiment  *float64 `json:"average_sentiment"`
	SampleSize        int      `json:"sample_size"`
}

// RecommendationSet is the ranked language shortlist plus the audit trail of how it
// was selected.
type RecommendationSet struct {
	Rows []RecommendationRow `json:"rows"`

	// Rule names the decision-table rule that produced Rows.
	Rule string `json:"rule"`

	// Threshold is the minimum sample size applied, 0 when no threshold rule fired.
	Threshold int `json:"threshold"`

	// WindowStart and WindowEnd bound the recent window (inclusive years).
	// Both are nil when the window degraded to the whole dataset.
	WindowStart *int `json:"window_start,omitempty"`
	WindowEnd   *int `json:"window_end,omitempty"`

	// CandidateCount is the number of ranked languages before filtering.
	CandidateCount int `json:"candidate_count"`
}

// Tables bundles every table a pipeline run produces.
type Tables struct {
	YearlyTrend      []YearlyTrendRow      `json:"yearly_trend"`
	LanguageCoverage []LanguageCoverageRow `json:"language_coverage"`
	TopCategories    []CategoryRow         `json:"top_categories"`
	Recommendations  RecommendationSet     `json:"recommendations"`
}
