// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package catalog turns untyped catalogue records into typed ContentRecords.

Normalization is lenient by design of the data: malformed optional fields degrade to
missing values (nil pointers) and never fail the record. The only hard failure is a
record without an identifier, reported as ErrMissingID.

Accepted inputs:

  - id: string, any integer type, an integral float, or json.Number
  - numeric fields: float, integer, json.Number, or a numeric string
  - release_date (falling back to first_air_date): time.Time, 2006-01-02, RFC3339,
    "2006-01-02 15:04:05", 2006/01/02, or a bare year
  - category_ids (falling back to genre_ids): an integer slice, []any, or the
    list-like text written by spreadsheet exports such as "[28, 12]"

Usage:

	recs, err := catalog.NormalizeAll(raws)
	if errors.Is(err, catalog.ErrMissingID) {
	    // the whole run fails before any output is written
	}
*/
package catalog
