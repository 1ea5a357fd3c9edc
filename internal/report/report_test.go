// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tomtom215/marquee/internal/models"
)

func f(v float64) *float64 { return &v }

func ip(v int) *int { return &v }

func sampleTables() models.Tables {
	return models.Tables{
		YearlyTrend: []models.YearlyTrendRow{
			{Year: 2021, Kind: models.KindFilm, TitleCount: 4, AverageRating: f(6.0)},
			{Year: 2021, Kind: models.KindSeries, TitleCount: 2, AverageRating: f(7.5)},
			{Year: 2022, Kind: models.KindFilm, TitleCount: 5, AverageRating: f(6.5)},
			{Year: 2022, Kind: models.KindSeries, TitleCount: 3, AverageRating: f(7.9)},
		},
		LanguageCoverage: []models.LanguageCoverageRow{
			{Language: "en", TitleCount: 9, AveragePopularity: f(120.5), AverageSentiment: f(0.1)},
			{Language: "ko", TitleCount: 3, AveragePopularity: f(80), AverageSentiment: nil},
		},
		TopCategories: []models.CategoryRow{
			{Category: "Drama", TitleCount: 6, AveragePopularity: f(99.123), AverageRating: f(7.1), AverageSentiment: f(0.25)},
		},
		Recommendations: models.RecommendationSet{
			Rows: []models.RecommendationRow{
				{Language: "ko", AveragePopularity: f(80), AverageSentiment: f(0.4), SampleSize: 3},
				{Language: "en", AveragePopularity: f(120.5), AverageSentiment: f(0.1), SampleSize: 9},
			},
			Rule:        "threshold-3",
			Threshold:   3,
			WindowStart: ip(2020),
			WindowEnd:   ip(2022),
		},
	}
}

func TestRender_Sections(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, sampleTables(), Options{}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Content Strategy Insights",
		"## Key Findings",
		"## Recommended Focus (Next 12 Months)",
		"## Leading Categories (by Volume)",
		"## Language Coverage",
		"**Television series** rate higher than films over 2021-2022 (7.70 vs 6.25).",
		"**en** is the dominant original language by volume (9 titles).",
		"observed in: **ko, en**.",
		"Drama",
		"99.12",
		"n/a",
		"Languages with at least 3 titles from titles released 2020-2022",
		"from TMDB data.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}
	if !strings.Contains(out, "|") {
		t.Error("expected Markdown tables in report")
	}
}

func TestRender_Deterministic(t *testing.T) {
	var a, b bytes.Buffer
	if err := Render(&a, sampleTables(), Options{Source: "catalogue.csv"}); err != nil {
		t.Fatal(err)
	}
	if err := Render(&b, sampleTables(), Options{Source: "catalogue.csv"}); err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Error("identical tables produced different reports")
	}
}

func TestRender_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, models.Tables{}, Options{}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Rating trends are unavailable",
		"sample size is limited",
		"Insufficient variety",
		"_No recommendations available.",
		"_Category information unavailable.",
		"_No language information",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("empty report missing %q", want)
		}
	}
}

func TestFindings_RatingTrend(t *testing.T) {
	tests := []struct {
		name string
		rows []models.YearlyTrendRow
		want string
	}{
		{
			name: "films ahead",
			rows: []models.YearlyTrendRow{
				{Year: 2023, Kind: models.KindFilm, AverageRating: f(8)},
				{Year: 2023, Kind: models.KindSeries, AverageRating: f(6)},
			},
			want: "**Films** rate higher than television series over 2023 (8.00 vs 6.00).",
		},
		{
			name: "tie",
			rows: []models.YearlyTrendRow{
				{Year: 2023, Kind: models.KindFilm, AverageRating: f(7)},
				{Year: 2023, Kind: models.KindSeries, AverageRating: f(7)},
			},
			want: "Films and television series rate alike over 2023 (7.00).",
		},
		{
			name: "films only",
			rows: []models.YearlyTrendRow{
				{Year: 2023, Kind: models.KindFilm, AverageRating: f(7)},
			},
			want: "Only one of films and series carries ratings for 2023",
		},
		{
			name: "only latest three years count",
			rows: []models.YearlyTrendRow{
				{Year: 2010, Kind: models.KindSeries, AverageRating: f(1)},
				{Year: 2020, Kind: models.KindFilm, AverageRating: f(6)},
				{Year: 2021, Kind: models.KindSeries, AverageRating: f(7)},
				{Year: 2022, Kind: models.KindFilm, AverageRating: f(6)},
			},
			want: "over 2020-2022 (7.00 vs 6.00)",
		},
		{
			name: "unrated rows ignored",
			rows: []models.YearlyTrendRow{
				{Year: 2023, Kind: models.KindFilm},
			},
			want: "Rating trends are unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Findings(models.Tables{YearlyTrend: tt.rows})[0]
			if !strings.Contains(got, tt.want) {
				t.Errorf("finding = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestFindings_TopLanguageFirstWins(t *testing.T) {
	tables := models.Tables{LanguageCoverage: []models.LanguageCoverageRow{
		{Language: "fr", TitleCount: 4},
		{Language: "de", TitleCount: 4},
	}}
	got := Findings(tables)[1]
	if !strings.Contains(got, "**fr**") {
		t.Errorf("finding = %q, want fr", got)
	}
}

func TestRender_FallbackNote(t *testing.T) {
	tables := sampleTables()
	tables.Recommendations.Rule = "fallback-top-8"
	tables.Recommendations.Threshold = 0
	tables.Recommendations.WindowStart = nil
	tables.Recommendations.WindowEnd = nil

	var buf bytes.Buffer
	if err := Render(&buf, tables, Options{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "showing the top-ranked languages._") {
		t.Errorf("missing fallback note:\n%s", buf.String())
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "report.md")
	if err := WriteFile(path, sampleTables(), Options{}); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("# Content Strategy Insights")) {
		t.Errorf("unexpected report prefix: %q", data[:min(40, len(data))])
	}
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := Summary(&buf, sampleTables(), 12, 20); err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Analysed 12 titles (20 category rows).",
		"Recommendation rule: threshold-3 (min 3 titles), window 2020-2022",
		"ko",
		"120.50",
		"recommend_languages=2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q\n%s", want, out)
		}
	}
}
