// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"github.com/tomtom215/marquee/internal/export"
)

// tableDDL holds the column definitions of every exported table. Column order
// matches the CSV headers.
var tableDDL = map[string]string{
	export.TableYearlyTrend: `(
		year INTEGER NOT NULL,
		kind VARCHAR NOT NULL,
		title_count INTEGER NOT NULL,
		average_rating DOUBLE,
		total_votes BIGINT,
		average_sentiment DOUBLE
	)`,
	export.TableLanguageCoverage: `(
		original_language VARCHAR NOT NULL,
		title_count INTEGER NOT NULL,
		average_popularity DOUBLE,
		average_sentiment DOUBLE,
		average_rating DOUBLE
	)`,
	export.TableTopCategories: `(
		category VARCHAR NOT NULL,
		title_count INTEGER NOT NULL,
		average_popularity DOUBLE,
		average_rating DOUBLE,
		average_sentiment DOUBLE
	)`,
	export.TableRecommendations: `(
		original_language VARCHAR NOT NULL,
		average_popularity DOUBLE,
		average_sentiment DOUBLE,
		sample_size INTEGER NOT NULL
	)`,
}

// runsDDL records one row per WriteTables call.
const runsDDL = `CREATE TABLE IF NOT EXISTS marquee_runs (
	run_id VARCHAR PRIMARY KEY,
	written_at TIMESTAMP NOT NULL,
	recommendation_rule VARCHAR,
	recommendation_threshold INTEGER,
	window_start INTEGER,
	window_end INTEGER
)`
