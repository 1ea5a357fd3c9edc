// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/models"
)

func TestNormalize_FullRecord(t *testing.T) {
	raw := models.RawRecord{
		"id":                json.Number("603"),
		"kind":              "movie",
		"title":             "The Matrix",
		"original_language": " EN ",
		"overview":          "A hacker learns the truth.",
		"popularity":        "84.2",
		"vote_average":      8.2,
		"vote_count":        json.Number("25000"),
		"release_date":      "1999-03-30",
		"genre_ids":         "[28, 878]",
	}

	rec, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if rec.ID != "603" {
		t.Errorf("ID = %q, want 603", rec.ID)
	}
	if rec.Kind != models.KindFilm {
		t.Errorf("Kind = %q, want film", rec.Kind)
	}
	if rec.OriginalLanguage == nil || *rec.OriginalLanguage != "en" {
		t.Errorf("OriginalLanguage = %v, want en", rec.OriginalLanguage)
	}
	if rec.Popularity == nil || *rec.Popularity != 84.2 {
		t.Errorf("Popularity = %v, want 84.2", rec.Popularity)
	}
	if rec.VoteCount == nil || *rec.VoteCount != 25000 {
		t.Errorf("VoteCount = %v, want 25000", rec.VoteCount)
	}
	want := time.Date(1999, 3, 30, 0, 0, 0, 0, time.UTC)
	if rec.ReleaseDate == nil || !rec.ReleaseDate.Equal(want) {
		t.Errorf("ReleaseDate = %v, want %v", rec.ReleaseDate, want)
	}
	if !reflect.DeepEqual(rec.CategoryIDs, []int{28, 878}) {
		t.Errorf("CategoryIDs = %v, want [28 878]", rec.CategoryIDs)
	}
}

func TestNormalize_SeriesFallbacks(t *testing.T) {
	rec, err := Normalize(models.RawRecord{
		"id":             1399,
		"kind":           "TV",
		"name":           "Game of Thrones",
		"first_air_date": "2011-04-17",
	})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if rec.Kind != models.KindSeries {
		t.Errorf("Kind = %q, want series", rec.Kind)
	}
	if rec.Title != "Game of Thrones" {
		t.Errorf("Title = %q, want name fallback", rec.Title)
	}
	if rec.ReleaseDate == nil || rec.ReleaseDate.Year() != 2011 {
		t.Errorf("ReleaseDate = %v, want 2011 first_air_date", rec.ReleaseDate)
	}
}

func TestNormalize_MissingFieldsDegrade(t *testing.T) {
	rec, err := Normalize(models.RawRecord{
		"id":           "42",
		"overview":     math.NaN(),
		"popularity":   "abc",
		"vote_average": 11.5,
		"vote_count":   -3,
		"release_date": "not-a-date",
	})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if rec.Kind != models.KindUnknown {
		t.Errorf("Kind = %q, want unknown", rec.Kind)
	}
	if rec.Overview != "" {
		t.Errorf("Overview = %q, want empty", rec.Overview)
	}
	if rec.OriginalLanguage != nil {
		t.Errorf("OriginalLanguage = %v, want nil", *rec.OriginalLanguage)
	}
	if rec.Popularity != nil {
		t.Errorf("Popularity = %v, want nil", *rec.Popularity)
	}
	if rec.VoteAverage != nil {
		t.Errorf("VoteAverage = %v, want nil (out of range)", *rec.VoteAverage)
	}
	if rec.VoteCount != nil {
		t.Errorf("VoteCount = %v, want nil (negative)", *rec.VoteCount)
	}
	if rec.ReleaseDate != nil {
		t.Errorf("ReleaseDate = %v, want nil", *rec.ReleaseDate)
	}
	if rec.CategoryIDs == nil || len(rec.CategoryIDs) != 0 {
		t.Errorf("CategoryIDs = %#v, want empty non-nil slice", rec.CategoryIDs)
	}
}

func TestNormalize_ID(t *testing.T) {
	tests := []struct {
		name    string
		id      any
		want    string
		wantErr bool
	}{
		{name: "string", id: "tt0133093", want: "tt0133093"},
		{name: "int", id: 603, want: "603"},
		{name: "int64", id: int64(1399), want: "1399"},
		{name: "integral float", id: 603.0, want: "603"},
		{name: "json number", id: json.Number("77"), want: "77"},
		{name: "absent", id: nil, wantErr: true},
		{name: "empty string", id: "  ", wantErr: true},
		{name: "fractional float", id: 1.5, wantErr: true},
		{name: "NaN", id: math.NaN(), wantErr: true},
		{name: "bool", id: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := models.RawRecord{}
			if tt.id != nil {
				raw["id"] = tt.id
			}
			rec, err := Normalize(raw)
			if tt.wantErr {
				if !errors.Is(err, ErrMissingID) {
					t.Fatalf("Normalize() error = %v, want ErrMissingID", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			if rec.ID != tt.want {
				t.Errorf("ID = %q, want %q", rec.ID, tt.want)
			}
		})
	}
}

func TestNormalizeAll_FailsFastWithIndex(t *testing.T) {
	raws := []models.RawRecord{
		{"id": "1"},
		{"title": "no id"},
		{"id": "3"},
	}

	recs, err := NormalizeAll(raws)
	if !errors.Is(err, ErrMissingID) {
		t.Fatalf("NormalizeAll() error = %v, want ErrMissingID", err)
	}
	if recs != nil {
		t.Errorf("NormalizeAll() returned %d records alongside an error", len(recs))
	}
	if got := err.Error(); got != "record 1: record has no id" {
		t.Errorf("error message = %q", got)
	}
}

func TestNormalizeAll_PreservesOrder(t *testing.T) {
	recs, err := NormalizeAll([]models.RawRecord{{"id": "b"}, {"id": "a"}, {"id": "c"}})
	if err != nil {
		t.Fatalf("NormalizeAll() error = %v", err)
	}
	var ids []string
	for _, r := range recs {
		ids = append(ids, r.ID)
	}
	if !reflect.DeepEqual(ids, []string{"b", "a", "c"}) {
		t.Errorf("ids = %v, want [b a c]", ids)
	}
}
