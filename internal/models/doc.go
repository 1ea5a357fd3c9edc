// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package models defines data structures for the Marquee pipeline.

This package contains the record shapes that flow between pipeline stages and the
summary tables the pipeline hands to exporters and reporters. It serves as the single
source of truth for data structure definitions and has no dependencies on other
internal packages.

Key Components:

  - RawRecord: Untyped key/value record as delivered by an ingestion source
  - ContentRecord: Typed, defaulted film or series record
  - EnrichedRecord: ContentRecord plus release year and overview sentiment
  - ExpandedRow: One (record, category) pair for category-level analysis
  - YearlyTrendRow, LanguageCoverageRow, CategoryRow: Aggregate tables
  - RecommendationSet: Ranked language shortlist with the rule that produced it

Missing Values:

Optional fields are pointers. A nil pointer means "missing" and is skipped by every
reduction, so a group whose values are all missing reports a nil mean rather than 0.

	rec := models.ContentRecord{
	    ID:         "603",
	    Kind:       models.KindFilm,
	    Popularity: models.Float64(84.2),
	    // VoteAverage left nil: excluded from average_rating
	}

Thread Safety:

Values are never mutated after the stage that produced them returns, so they are safe
for concurrent read access.
*/
package models
