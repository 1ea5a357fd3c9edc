// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package analytics

import (
	"fmt"
	"testing"

	"github.com/tomtom215/marquee/internal/models"
)

func rec(id string, year *int, kind models.Kind, lang *string) models.EnrichedRecord {
	return models.EnrichedRecord{
		ContentRecord: models.ContentRecord{ID: id, Kind: kind, OriginalLanguage: lang},
		Year:          year,
	}
}

func TestYearlyTrend(t *testing.T) {
	r1 := rec("1", models.Int(2022), models.KindSeries, nil)
	r1.VoteAverage = f(8)
	r1.VoteCount = models.Int64(100)
	r1.Sentiment = 0.5

	r2 := rec("2", models.Int(2021), models.KindFilm, nil)
	r2.VoteAverage = f(6)

	r3 := rec("3", models.Int(2022), models.KindFilm, nil)
	r3.VoteCount = models.Int64(7)

	r4 := rec("4", models.Int(2022), models.KindSeries, nil)
	r4.VoteAverage = f(6)
	r4.VoteCount = models.Int64(50)
	r4.Sentiment = -0.5

	r5 := rec("5", nil, models.KindFilm, nil)

	rows := YearlyTrend([]models.EnrichedRecord{r1, r2, r3, r4, r5})

	want := []struct {
		year  int
		kind  models.Kind
		count int
	}{
		{2021, models.KindFilm, 1},
		{2022, models.KindFilm, 1},
		{2022, models.KindSeries, 2},
	}
	if len(rows) != len(want) {
		t.Fatalf("len(rows) = %d, want %d (missing year skipped)", len(rows), len(want))
	}
	for i, w := range want {
		if rows[i].Year != w.year || rows[i].Kind != w.kind || rows[i].TitleCount != w.count {
			t.Errorf("rows[%d] = (%d, %s, %d), want (%d, %s, %d)",
				i, rows[i].Year, rows[i].Kind, rows[i].TitleCount, w.year, w.kind, w.count)
		}
	}

	series := rows[2]
	if series.AverageRating == nil || *series.AverageRating != 7 {
		t.Errorf("AverageRating = %v, want 7", series.AverageRating)
	}
	if series.TotalVotes == nil || *series.TotalVotes != 150 {
		t.Errorf("TotalVotes = %v, want 150", series.TotalVotes)
	}
	if series.AverageSentiment == nil || *series.AverageSentiment != 0 {
		t.Errorf("AverageSentiment = %v, want 0", series.AverageSentiment)
	}

	if rows[0].TotalVotes != nil {
		t.Errorf("TotalVotes = %d, want nil when no record has votes", *rows[0].TotalVotes)
	}
	if rows[1].AverageRating != nil {
		t.Errorf("AverageRating = %v, want nil when no record has a rating", *rows[1].AverageRating)
	}
}

func TestLanguageCoverage(t *testing.T) {
	en, fr := models.String("en"), models.String("fr")
	recs := []models.EnrichedRecord{
		rec("1", nil, models.KindFilm, fr),
		rec("2", nil, models.KindFilm, en),
		rec("3", nil, models.KindFilm, en),
		rec("4", nil, models.KindFilm, nil),
	}
	recs[1].Popularity = f(10)
	recs[2].Popularity = f(20)
	recs[2].VoteAverage = f(8)

	rows := LanguageCoverage(recs)
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2 (missing language skipped)", len(rows))
	}
	if rows[0].Language != "en" || rows[0].TitleCount != 2 {
		t.Errorf("rows[0] = (%s, %d), want (en, 2)", rows[0].Language, rows[0].TitleCount)
	}
	if rows[0].AveragePopularity == nil || *rows[0].AveragePopularity != 15 {
		t.Errorf("AveragePopularity = %v, want 15", rows[0].AveragePopularity)
	}
	if rows[1].AveragePopularity != nil {
		t.Errorf("fr AveragePopularity = %v, want nil", *rows[1].AveragePopularity)
	}
	if rows[1].AverageSentiment == nil || *rows[1].AverageSentiment != 0 {
		t.Errorf("fr AverageSentiment = %v, want 0", rows[1].AverageSentiment)
	}
	if rows[0].AverageRating == nil || *rows[0].AverageRating != 8 {
		t.Errorf("en AverageRating = %v, want 8 (unrated title skipped)", rows[0].AverageRating)
	}
	if rows[1].AverageRating != nil {
		t.Errorf("fr AverageRating = %v, want nil when no title is rated", *rows[1].AverageRating)
	}
}

func expanded(id, category string, pop *float64) models.ExpandedRow {
	return models.ExpandedRow{
		EnrichedRecord: models.EnrichedRecord{ContentRecord: models.ContentRecord{ID: id, Popularity: pop}},
		CategoryName:   category,
	}
}

func TestTopCategories(t *testing.T) {
	rows := []models.ExpandedRow{
		expanded("1", "Drama", f(10)),
		expanded("1", "Comedy", f(10)),
		expanded("2", "Comedy", f(30)),
		expanded("3", "Unknown", nil),
	}

	got := TopCategories(rows, DefaultTopCategories)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Category != "Comedy" || got[0].TitleCount != 2 {
		t.Errorf("got[0] = (%s, %d), want (Comedy, 2)", got[0].Category, got[0].TitleCount)
	}
	if *got[0].AveragePopularity != 20 {
		t.Errorf("Comedy AveragePopularity = %v, want 20", *got[0].AveragePopularity)
	}
	if got[1].Category != "Drama" || got[2].Category != "Unknown" {
		t.Errorf("tie order = %s, %s; want Drama, Unknown", got[1].Category, got[2].Category)
	}
	if got[2].AveragePopularity != nil {
		t.Errorf("Unknown AveragePopularity = %v, want nil", *got[2].AveragePopularity)
	}
}

func TestTopCategories_Limit(t *testing.T) {
	var rows []models.ExpandedRow
	for i := 0; i < 20; i++ {
		for j := 0; j <= i; j++ {
			rows = append(rows, expanded(fmt.Sprintf("%d-%d", i, j), fmt.Sprintf("cat-%02d", i), nil))
		}
	}

	got := TopCategories(rows, DefaultTopCategories)
	if len(got) != DefaultTopCategories {
		t.Fatalf("len = %d, want %d", len(got), DefaultTopCategories)
	}
	if got[0].Category != "cat-19" || got[0].TitleCount != 20 {
		t.Errorf("got[0] = (%s, %d), want (cat-19, 20)", got[0].Category, got[0].TitleCount)
	}
	for i := 1; i < len(got); i++ {
		if got[i].TitleCount > got[i-1].TitleCount {
			t.Errorf("not sorted at %d: %d > %d", i, got[i].TitleCount, got[i-1].TitleCount)
		}
	}

	if all := TopCategories(rows, 0); len(all) != 20 {
		t.Errorf("limit 0 kept %d categories, want 20", len(all))
	}
}

func TestToInt64_Rounds(t *testing.T) {
	if got := toInt64(f(2.9999999)); got == nil || *got != 3 {
		t.Errorf("toInt64 = %v, want 3", got)
	}
	if toInt64(nil) != nil {
		t.Error("toInt64(nil) != nil")
	}
}
