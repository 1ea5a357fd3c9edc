// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/tomtom215/marquee/internal/models"
)

// Summary prints the recommendation shortlist and table sizes for a terminal.
func Summary(w io.Writer, t models.Tables, records, expanded int) error {
	rec := t.Recommendations
	fmt.Fprintf(w, "Analysed %d titles (%d category rows).\n", records, expanded)
	fmt.Fprintf(w, "Recommendation rule: %s", rec.Rule)
	if rec.Threshold > 0 {
		fmt.Fprintf(w, " (min %d titles)", rec.Threshold)
	}
	if rec.WindowStart != nil && rec.WindowEnd != nil {
		fmt.Fprintf(w, ", window %d-%d", *rec.WindowStart, *rec.WindowEnd)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)

	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)
	table.Header([]string{"rank", "language", "popularity", "sentiment", "titles"})
	rows := make([][]string, 0, len(rec.Rows))
	for i, r := range rec.Rows {
		rows = append(rows, []string{
			strconv.Itoa(i + 1), r.Language, formatValue(r.AveragePopularity), formatValue(r.AverageSentiment), strconv.Itoa(r.SampleSize),
		})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nTables: yearly_trend=%d language_coverage=%d top_categories=%d recommend_languages=%d\n",
		len(t.YearlyTrend), len(t.LanguageCoverage), len(t.TopCategories), len(rec.Rows))
	return nil
}
