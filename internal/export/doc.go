// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package export writes the pipeline's summary tables to disk and reads them back.

Files:

	yearly_trend.csv         year,kind,title_count,average_rating,total_votes,average_sentiment
	language_coverage.csv    original_language,title_count,average_popularity,average_sentiment,average_rating
	top_categories.csv       category,title_count,average_popularity,average_rating,average_sentiment
	recommend_languages.csv  original_language,average_popularity,average_sentiment,sample_size
	manifest.json            run metadata (not part of the determinism guarantee)

Floats are written with the shortest representation that round-trips, missing values
as empty cells. Tables are written concurrently into a staging directory inside the
output directory and only renamed into place once every table succeeded. Files being
replaced are moved aside first and restored if a rename fails, so a failed export
leaves the previous set in place.

Usage:

	m := export.NewManifest(runID, result.Records, result.Expanded, result.Tables, nil)
	files, err := export.NewCSVWriter(cfg.Output.Dir).WriteWithManifest(ctx, result.Tables, m)
*/
package export
