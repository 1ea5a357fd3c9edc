// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package analytics computes the grouped summary tables of a catalogue run.

All tables are built from one generic primitive, Summarize, which groups rows by a
key, counts distinct record ids per group and reduces any number of optional
measures. Missing measure values are ignored; a group whose values are all missing
reports nil rather than 0.

Tables:

  - YearlyTrend: (year, kind) groups, year ascending
  - LanguageCoverage: original language groups, most titles first
  - TopCategories: category name groups over expanded rows, most titles first

Ordering is deterministic: groups are discovered in input order and every sort is
stable, so equal counts keep their discovery order.
*/
package analytics
