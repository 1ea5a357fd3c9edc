// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package analytics

import (
	"math"
	"sort"

	"github.com/tomtom215/marquee/internal/models"
)

// DefaultTopCategories is the number of categories kept by TopCategories.
const DefaultTopCategories = 15

type yearKind struct {
	year int
	kind models.Kind
}

func recordID(r models.EnrichedRecord) string { return r.ID }

func voteAverage(r models.EnrichedRecord) *float64 { return r.VoteAverage }

func popularity(r models.EnrichedRecord) *float64 { return r.Popularity }

func sentimentOf(r models.EnrichedRecord) *float64 {
	s := r.Sentiment
	return &s
}

func voteCount(r models.EnrichedRecord) *float64 {
	if r.VoteCount == nil {
		return nil
	}
	v := float64(*r.VoteCount)
	return &v
}

// YearlyTrend summarises records by (release year, kind). Records without a year
// are skipped. Rows are ordered by year, then film, series, unknown.
func YearlyTrend(recs []models.EnrichedRecord) []models.YearlyTrendRow {
	groups := Summarize(recs, GroupSpec[models.EnrichedRecord, yearKind]{
		Key: func(r models.EnrichedRecord) (yearKind, bool) {
			if r.Year == nil {
				return yearKind{}, false
			}
			return yearKind{year: *r.Year, kind: r.Kind}, true
		},
		ID: recordID,
		Measures: []Measure[models.EnrichedRecord]{
			{Name: "average_rating", Value: voteAverage, Reduction: Mean},
			{Name: "total_votes", Value: voteCount, Reduction: Sum},
			{Name: "average_sentiment", Value: sentimentOf, Reduction: Mean},
		},
	})

	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i].Key, groups[j].Key
		if a.year != b.year {
			return a.year < b.year
		}
		return a.kind.Less(b.kind)
	})

	rows := make([]models.YearlyTrendRow, len(groups))
	for i, g := range groups {
		rows[i] = models.YearlyTrendRow{
			Year:             g.Key.year,
			Kind:             g.Key.kind,
			TitleCount:       g.Count,
			AverageRating:    g.Values[0],
			TotalVotes:       toInt64(g.Values[1]),
			AverageSentiment: g.Values[2],
		}
	}
	return rows
}

// LanguageCoverage summarises records by original language, most titles first.
// Records without a language are skipped.
func LanguageCoverage(recs []models.EnrichedRecord) []models.LanguageCoverageRow {
	groups := Summarize(recs, GroupSpec[models.EnrichedRecord, string]{
		Key: languageKey,
		ID:  recordID,
		Measures: []Measure[models.EnrichedRecord]{
			{Name: "average_popularity", Value: popularity, Reduction: Mean},
			{Name: "average_sentiment", Value: sentimentOf, Reduction: Mean},
			{Name: "average_rating", Value: voteAverage, Reduction: Mean},
		},
	})
	SortByCount(groups)

	rows := make([]models.LanguageCoverageRow, len(groups))
	for i, g := range groups {
		rows[i] = models.LanguageCoverageRow{
			Language:          g.Key,
			TitleCount:        g.Count,
			AveragePopularity: g.Values[0],
			AverageSentiment:  g.Values[1],
			AverageRating:     g.Values[2],
		}
	}
	return rows
}

// TopCategories summarises expanded rows by category name and keeps the limit
// categories with the most titles. A non-positive limit keeps every category.
func TopCategories(rows []models.ExpandedRow, limit int) []models.CategoryRow {
	groups := Summarize(rows, GroupSpec[models.ExpandedRow, string]{
		Key: func(r models.ExpandedRow) (string, bool) { return r.CategoryName, true },
		ID:  func(r models.ExpandedRow) string { return r.ID },
		Measures: []Measure[models.ExpandedRow]{
			{Name: "average_popularity", Value: func(r models.ExpandedRow) *float64 { return r.Popularity }, Reduction: Mean},
			{Name: "average_rating", Value: func(r models.ExpandedRow) *float64 { return r.VoteAverage }, Reduction: Mean},
			{Name: "average_sentiment", Value: func(r models.ExpandedRow) *float64 { return sentimentOf(r.EnrichedRecord) }, Reduction: Mean},
		},
	})
	SortByCount(groups)
	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}

	out := make([]models.CategoryRow, len(groups))
	for i, g := range groups {
		out[i] = models.CategoryRow{
			Category:          g.Key,
			TitleCount:        g.Count,
			AveragePopularity: g.Values[0],
			AverageRating:     g.Values[1],
			AverageSentiment:  g.Values[2],
		}
	}
	return out
}

func languageKey(r models.EnrichedRecord) (string, bool) {
	if r.OriginalLanguage == nil || *r.OriginalLanguage == "" {
		return "", false
	}
	return *r.OriginalLanguage, true
}

func toInt64(v *float64) *int64 {
	if v == nil {
		return nil
	}
	n := int64(math.Round(*v))
	return &n
}
