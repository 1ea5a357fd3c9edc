// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package report renders the exported tables as a Markdown strategy report and as
// a console summary.
package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/tomtom215/marquee/internal/models"
)

// trendYears is how many of the latest release years the film/series comparison
// covers.
const trendYears = 3

// Options tunes the report text.
type Options struct {
	// Source names the data origin in the footer. Defaults to "TMDB".
	Source string
}

// Render writes the Markdown report for t to w. The output depends only on t and
// opts, so identical tables give an identical report.
func Render(w io.Writer, t models.Tables, opts Options) error {
	if opts.Source == "" {
		opts.Source = "TMDB"
	}

	var b bytes.Buffer
	b.WriteString("# Content Strategy Insights\n\n")
	fmt.Fprintf(&b, "This report analyses popular films and television series from %s to surface "+
		"**viewer trends**, **language dynamics**, **leading categories** and **evidence-based recommendations**.\n\n", opts.Source)

	b.WriteString("---\n\n## Key Findings\n\n")
	for _, finding := range Findings(t) {
		fmt.Fprintf(&b, "- %s\n", finding)
	}

	b.WriteString("\n---\n\n## Recommended Focus (Next 12 Months)\n\n")
	if rows := t.Recommendations.Rows; len(rows) > 0 {
		if err := markdownTable(&b,
			[]string{"Language", "Average Popularity", "Average Sentiment", "No. of Titles"},
			recommendationCells(rows)); err != nil {
			return err
		}
		b.WriteString("\n")
		b.WriteString(selectionNote(t.Recommendations))
	} else {
		b.WriteString("_No recommendations available. Increase the data volume and re-run the analysis._\n")
	}

	b.WriteString("\n---\n\n## Leading Categories (by Volume)\n\n")
	if len(t.TopCategories) > 0 {
		cells := make([][]string, 0, len(t.TopCategories))
		for _, r := range t.TopCategories {
			cells = append(cells, []string{
				r.Category, strconv.Itoa(r.TitleCount),
				formatValue(r.AveragePopularity), formatValue(r.AverageRating), formatValue(r.AverageSentiment),
			})
		}
		if err := markdownTable(&b,
			[]string{"Category", "No. of Titles", "Average Popularity", "Average Rating", "Average Sentiment"},
			cells); err != nil {
			return err
		}
	} else {
		b.WriteString("_Category information unavailable. Consider fetching more pages._\n")
	}

	b.WriteString("\n---\n\n## Language Coverage\n\n")
	if len(t.LanguageCoverage) > 0 {
		cells := make([][]string, 0, len(t.LanguageCoverage))
		for _, r := range t.LanguageCoverage {
			cells = append(cells, []string{
				r.Language, strconv.Itoa(r.TitleCount),
				formatValue(r.AveragePopularity), formatValue(r.AverageSentiment), formatValue(r.AverageRating),
			})
		}
		if err := markdownTable(&b,
			[]string{"Language", "No. of Titles", "Average Popularity", "Average Sentiment", "Average Rating"},
			cells); err != nil {
			return err
		}
	} else {
		b.WriteString("_No language information in the catalogue._\n")
	}

	fmt.Fprintf(&b, "\n---\n\n*Produced with Marquee from %s data.*\n", opts.Source)

	_, err := w.Write(b.Bytes())
	return err
}

// WriteFile renders the report into path, creating parent directories.
func WriteFile(path string, t models.Tables, opts Options) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	var buf bytes.Buffer
	if err := Render(&buf, t, opts); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil { //nolint:gosec // report is meant to be shared
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Findings derives the key-finding bullets from the tables.
func Findings(t models.Tables) []string {
	findings := make([]string, 0, 3)
	findings = append(findings, ratingTrend(t.YearlyTrend))

	if len(t.LanguageCoverage) > 0 {
		top := t.LanguageCoverage[0]
		for _, r := range t.LanguageCoverage[1:] {
			if r.TitleCount > top.TitleCount {
				top = r
			}
		}
		findings = append(findings, fmt.Sprintf(
			"**%s** is the dominant original language by volume (%d titles).", top.Language, top.TitleCount))
	} else {
		findings = append(findings, "Language coverage calculated, but the sample size is limited.")
	}

	if rows := t.Recommendations.Rows; len(rows) > 0 {
		n := min(3, len(rows))
		langs := make([]string, n)
		for i := range n {
			langs[i] = rows[i].Language
		}
		findings = append(findings, fmt.Sprintf(
			"Strong recent **sentiment and popularity** observed in: **%s**.", strings.Join(langs, ", ")))
	} else {
		findings = append(findings,
			"Insufficient variety for language recommendations. Fetch more pages and re-run the analysis.")
	}
	return findings
}

// ratingTrend compares the mean yearly rating of series and films over the latest
// release years that carry a rating for either kind.
func ratingTrend(rows []models.YearlyTrendRow) string {
	years := make([]int, 0, trendYears)
	for i := len(rows) - 1; i >= 0 && len(years) < trendYears; i-- {
		r := rows[i]
		if r.AverageRating == nil || (r.Kind != models.KindFilm && r.Kind != models.KindSeries) {
			continue
		}
		if len(years) == 0 || years[len(years)-1] != r.Year {
			years = append(years, r.Year)
		}
	}
	if len(years) == 0 {
		return "Rating trends are unavailable: no rated titles with a release year."
	}
	from, to := years[len(years)-1], years[0]

	var film, series []float64
	for _, r := range rows {
		if r.AverageRating == nil || r.Year < from || r.Year > to {
			continue
		}
		switch r.Kind {
		case models.KindFilm:
			film = append(film, *r.AverageRating)
		case models.KindSeries:
			series = append(series, *r.AverageRating)
		}
	}

	span := strconv.Itoa(from)
	if from != to {
		span = fmt.Sprintf("%d-%d", from, to)
	}
	if len(film) == 0 || len(series) == 0 {
		return fmt.Sprintf("Only one of films and series carries ratings for %s; no comparison possible.", span)
	}

	f, s := mean(film), mean(series)
	switch {
	case s > f:
		return fmt.Sprintf("**Television series** rate higher than films over %s (%.2f vs %.2f).", span, s, f)
	case f > s:
		return fmt.Sprintf("**Films** rate higher than television series over %s (%.2f vs %.2f).", span, f, s)
	default:
		return fmt.Sprintf("Films and television series rate alike over %s (%.2f).", span, f)
	}
}

func selectionNote(rec models.RecommendationSet) string {
	var window string
	if rec.WindowStart != nil && rec.WindowEnd != nil {
		window = fmt.Sprintf(" from titles released %d-%d", *rec.WindowStart, *rec.WindowEnd)
	}
	switch {
	case rec.Threshold > 0:
		return fmt.Sprintf("_Languages with at least %d titles%s, ranked by sentiment then popularity._\n", rec.Threshold, window)
	case rec.Rule != "":
		return fmt.Sprintf("_Too few languages met a sample-size threshold; showing the top-ranked languages%s._\n", window)
	default:
		return ""
	}
}

func recommendationCells(rows []models.RecommendationRow) [][]string {
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{
			r.Language, formatValue(r.AveragePopularity), formatValue(r.AverageSentiment), strconv.Itoa(r.SampleSize),
		})
	}
	return cells
}

func markdownTable(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.Off},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
	)
	table.Header(header)
	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return table.Render()
}

func formatValue(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func mean(vs []float64) float64 {
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}
