// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/tomtom215/marquee/internal/models"
)

// ReadTables parses previously exported CSV files in dir. Values are taken as
// written; nothing is recomputed. When manifest.json is present the recommendation
// rule, threshold and window are restored from it.
func ReadTables(dir string) (models.Tables, error) {
	var t models.Tables
	raw := make(map[string][][]string, len(TableNames))

	for _, name := range TableNames {
		rows, err := readCSV(filepath.Join(dir, FileName(name)), Headers[name])
		if err != nil {
			return t, fmt.Errorf("table %s: %w", name, err)
		}
		raw[name] = rows
	}

	var err error
	if t.YearlyTrend, err = parseYearly(raw[TableYearlyTrend]); err != nil {
		return t, fmt.Errorf("table %s: %w", TableYearlyTrend, err)
	}
	if t.LanguageCoverage, err = parseLanguages(raw[TableLanguageCoverage]); err != nil {
		return t, fmt.Errorf("table %s: %w", TableLanguageCoverage, err)
	}
	if t.TopCategories, err = parseCategories(raw[TableTopCategories]); err != nil {
		return t, fmt.Errorf("table %s: %w", TableTopCategories, err)
	}
	if t.Recommendations.Rows, err = parseRecommendations(raw[TableRecommendations]); err != nil {
		return t, fmt.Errorf("table %s: %w", TableRecommendations, err)
	}

	m, err := ReadManifest(dir)
	switch {
	case err == nil:
		t.Recommendations.Rule = m.Rule
		t.Recommendations.Threshold = m.Threshold
		t.Recommendations.WindowStart = m.WindowStart
		t.Recommendations.WindowEnd = m.WindowEnd
		t.Recommendations.CandidateCount = m.CandidateCount
	case errors.Is(err, os.ErrNotExist):
	default:
		return t, err
	}

	return t, nil
}

func readCSV(path string, header []string) ([][]string, error) {
	f, err := os.Open(path) //nolint:gosec // path is built from a fixed table name
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(header)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("missing header")
	}
	if !slices.Equal(records[0], header) {
		return nil, fmt.Errorf("unexpected header %v", records[0])
	}
	return records[1:], nil
}

func parseYearly(rows [][]string) ([]models.YearlyTrendRow, error) {
	out := make([]models.YearlyTrendRow, 0, len(rows))
	for i, r := range rows {
		year, err := strconv.Atoi(r[0])
		if err != nil {
			return nil, fmt.Errorf("row %d year: %w", i+1, err)
		}
		count, err := strconv.Atoi(r[2])
		if err != nil {
			return nil, fmt.Errorf("row %d title_count: %w", i+1, err)
		}
		row := models.YearlyTrendRow{Year: year, Kind: models.ParseKind(r[1]), TitleCount: count}
		if row.AverageRating, err = parseFloatCell(r[3]); err != nil {
			return nil, fmt.Errorf("row %d average_rating: %w", i+1, err)
		}
		if row.TotalVotes, err = parseIntCell(r[4]); err != nil {
			return nil, fmt.Errorf("row %d total_votes: %w", i+1, err)
		}
		if row.AverageSentiment, err = parseFloatCell(r[5]); err != nil {
			return nil, fmt.Errorf("row %d average_sentiment: %w", i+1, err)
		}
		out = append(out, row)
	}
	return out, nil
}

func parseLanguages(rows [][]string) ([]models.LanguageCoverageRow, error) {
	out := make([]models.LanguageCoverageRow, 0, len(rows))
	for i, r := range rows {
		count, err := strconv.Atoi(r[1])
		if err != nil {
			return nil, fmt.Errorf("row %d title_count: %w", i+1, err)
		}
		row := models.LanguageCoverageRow{Language: r[0], TitleCount: count}
		if row.AveragePopularity, err = parseFloatCell(r[2]); err != nil {
			return nil, fmt.Errorf("row %d average_popularity: %w", i+1, err)
		}
		if row.AverageSentiment, err = parseFloatCell(r[3]); err != nil {
			return nil, fmt.Errorf("row %d average_sentiment: %w", i+1, err)
		}
		if row.AverageRating, err = parseFloatCell(r[4]); err != nil {
			return nil, fmt.Errorf("row %d average_rating: %w", i+1, err)
		}
		out = append(out, row)
	}
	return out, nil
}

func parseCategories(rows [][]string) ([]models.CategoryRow, error) {
	out := make([]models.CategoryRow, 0, len(rows))
	for i, r := range rows {
		count, err := strconv.Atoi(r[1])
		if err != nil {
			return nil, fmt.Errorf("row %d title_count: %w", i+1, err)
		}
		row := models.CategoryRow{Category: r[0], TitleCount: count}
		if row.AveragePopularity, err = parseFloatCell(r[2]); err != nil {
			return nil, fmt.Errorf("row %d average_popularity: %w", i+1, err)
		}
		if row.AverageRating, err = parseFloatCell(r[3]); err != nil {
			return nil, fmt.Errorf("row %d average_rating: %w", i+1, err)
		}
		if row.AverageSentiment, err = parseFloatCell(r[4]); err != nil {
			return nil, fmt.Errorf("row %d average_sentiment: %w", i+1, err)
		}
		out = append(out, row)
	}
	return out, nil
}

func parseRecommendations(rows [][]string) ([]models.RecommendationRow, error) {
	out := make([]models.RecommendationRow, 0, len(rows))
	for i, r := range rows {
		size, err := strconv.Atoi(r[3])
		if err != nil {
			return nil, fmt.Errorf("row %d sample_size: %w", i+1, err)
		}
		row := models.RecommendationRow{Language: r[0], SampleSize: size}
		if row.AveragePopularity, err = parseFloatCell(r[1]); err != nil {
			return nil, fmt.Errorf("row %d average_popularity: %w", i+1, err)
		}
		if row.AverageSentiment, err = parseFloatCell(r[2]); err != nil {
			return nil, fmt.Errorf("row %d average_sentiment: %w", i+1, err)
		}
		out = append(out, row)
	}
	return out, nil
}

func parseFloatCell(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseIntCell(s string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
