// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package export

import (
	"strconv"

	"github.com/tomtom215/marquee/internal/models"
)

// Table names double as file stems and as DuckDB table names.
const (
	TableYearlyTrend      = "yearly_trend"
	TableLanguageCoverage = "language_coverage"
	TableTopCategories    = "top_categories"
	TableRecommendations  = "recommend_languages"
)

// TableNames lists the exported tables in write order.
var TableNames = []string{
	TableYearlyTrend,
	TableLanguageCoverage,
	TableTopCategories,
	TableRecommendations,
}

// Headers maps each table to its column order.
var Headers = map[string][]string{
	TableYearlyTrend:      {"year", "kind", "title_count", "average_rating", "total_votes", "average_sentiment"},
	TableLanguageCoverage: {"original_language", "title_count", "average_popularity", "average_sentiment", "average_rating"},
	TableTopCategories:    {"category", "title_count", "average_popularity", "average_rating", "average_sentiment"},
	TableRecommendations:  {"original_language", "average_popularity", "average_sentiment", "sample_size"},
}

// FileName returns the CSV file name for a table.
func FileName(table string) string {
	return table + ".csv"
}

// Rows renders every table as string cells, keyed by table name.
func Rows(t models.Tables) map[string][][]string {
	out := make(map[string][][]string, len(TableNames))

	yearly := make([][]string, 0, len(t.YearlyTrend))
	for _, r := range t.YearlyTrend {
		yearly = append(yearly, []string{
			strconv.Itoa(r.Year),
			r.Kind.String(),
			strconv.Itoa(r.TitleCount),
			formatFloat(r.AverageRating),
			formatInt64(r.TotalVotes),
			formatFloat(r.AverageSentiment),
		})
	}
	out[TableYearlyTrend] = yearly

	langs := make([][]string, 0, len(t.LanguageCoverage))
	for _, r := range t.LanguageCoverage {
		langs = append(langs, []string{
			r.Language,
			strconv.Itoa(r.TitleCount),
			formatFloat(r.AveragePopularity),
			formatFloat(r.AverageSentiment),
			formatFloat(r.AverageRating),
		})
	}
	out[TableLanguageCoverage] = langs

	cats := make([][]string, 0, len(t.TopCategories))
	for _, r := range t.TopCategories {
		cats = append(cats, []string{
			r.Category,
			strconv.Itoa(r.TitleCount),
			formatFloat(r.AveragePopularity),
			formatFloat(r.AverageRating),
			formatFloat(r.AverageSentiment),
		})
	}
	out[TableTopCategories] = cats

	recs := make([][]string, 0, len(t.Recommendations.Rows))
	for _, r := range t.Recommendations.Rows {
		recs = append(recs, []string{
			r.Language,
			formatFloat(r.AveragePopularity),
			formatFloat(r.AverageSentiment),
			strconv.Itoa(r.SampleSize),
		})
	}
	out[TableRecommendations] = recs

	return out
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatInt64(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}
