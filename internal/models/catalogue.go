// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

import (
	"strings"
	"time"
)

// UnknownCategory is the category name used for unresolved ids and for records
// without any category.
const UnknownCategory = "Unknown"

// RawRecord is one untyped catalogue record as produced by an ingestion source.
// Keys follow the catalogue export column names (id, kind, title, original_language,
// overview, popularity, vote_average, vote_count, release_date, genre_ids).
type RawRecord map[string]any

// Kind classifies a record as a film or a series.
type Kind string

const (
	// KindUnknown marks an absent or unrecognised kind.
	KindUnknown Kind = ""
	// KindFilm is a feature film ("movie" in TMDB terms).
	KindFilm Kind = "film"
	// KindSeries is a television series ("tv" in TMDB terms).
	KindSeries Kind = "series"
)

// ParseKind maps the spellings used by catalogue sources onto a Kind.
// Unrecognised values map to KindUnknown.
func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "film", "movie", "movies", "films":
		return KindFilm
	case "series", "tv", "show", "tv_series":
		return KindSeries
	default:
		return KindUnknown
	}
}

// String returns the export spelling of the kind ("unknown" for KindUnknown).
func (k Kind) String() string {
	if k == KindUnknown {
		return "unknown"
	}
	return string(k)
}

// MarshalText encodes the kind with its export spelling.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText accepts any spelling ParseKind understands.
func (k *Kind) UnmarshalText(text []byte) error {
	*k = ParseKind(string(text))
	return nil
}

// sortRank orders kinds for table output: film, series, unknown.
func (k Kind) sortRank() int {
	switch k {
	case KindFilm:
		return 0
	case KindSeries:
		return 1
	default:
		return 2
	}
}

// Less reports whether k sorts before other in table output.
func (k Kind) Less(other Kind) bool {
	return k.sortRank() < other.sortRank()
}

// ContentRecord is a normalized film or series.
//
// Every optional field is a pointer; nil means the source did not carry a usable value.
type ContentRecord struct {
	ID               string     `json:"id"`
	Kind             Kind       `json:"kind"`
	Title            string     `json:"title"`
	OriginalLanguage *string    `json:"original_language,omitempty"`
	Overview         string     `json:"overview"`
	Popularity       *float64   `json:"popularity,omitempty"`
	VoteAverage      *float64   `json:"vote_average,omitempty"`
	VoteCount        *int64     `json:"vote_count,omitempty"`
	ReleaseDate      *time.Time `json:"release_date,omitempty"`
	CategoryIDs      []int      `json:"category_ids"`
}

// EnrichedRecord is a ContentRecord with derived fields attached.
type EnrichedRecord struct {
	ContentRecord

	// Year is the calendar year of ReleaseDate, nil when the date is missing.
	Year *int `json:"year,omitempty"`

	// Sentiment is the overview polarity in [-1, 1]; 0 for an empty overview.
	Sentiment float64 `json:"sentiment"`
}

// ExpandedRow pairs an EnrichedRecord with one of its categories.
// A record without categories yields a single row with a nil CategoryID.
type ExpandedRow struct {
	EnrichedRecord

	CategoryID   *int   `json:"category_id,omitempty"`
	CategoryName string `json:"category_name"`
}

// Float64 returns a pointer to v.
func Float64(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Int64 returns a pointer to v.
func Int64(v int64) *int64 { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }
