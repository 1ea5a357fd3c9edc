// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package enrich

import (
	"math"
	"testing"
	"time"

	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/sentiment"
)

func TestEnrich_YearAndSentiment(t *testing.T) {
	date := time.Date(2021, 11, 5, 0, 0, 0, 0, time.UTC)
	e := New(sentiment.ScorerFunc(func(string) float64 { return 0.4 }))

	got := e.Enrich(models.ContentRecord{ID: "1", Overview: "anything", ReleaseDate: &date})

	if got.Year == nil || *got.Year != 2021 {
		t.Errorf("Year = %v, want 2021", got.Year)
	}
	if got.Sentiment != 0.4 {
		t.Errorf("Sentiment = %v, want 0.4", got.Sentiment)
	}
	if got.ID != "1" {
		t.Errorf("ID = %q, want embedded record preserved", got.ID)
	}
}

func TestEnrich_MissingDateAndEmptyOverview(t *testing.T) {
	called := false
	e := New(sentiment.ScorerFunc(func(string) float64 {
		called = true
		return 0.9
	}))

	got := e.Enrich(models.ContentRecord{ID: "2"})

	if got.Year != nil {
		t.Errorf("Year = %v, want nil", *got.Year)
	}
	if got.Sentiment != 0 {
		t.Errorf("Sentiment = %v, want exactly 0 for empty overview", got.Sentiment)
	}
	if called {
		t.Error("scorer invoked for empty overview")
	}
}

func TestEnrich_ClampsScorerOutput(t *testing.T) {
	tests := []struct {
		raw  float64
		want float64
	}{
		{raw: 5, want: 1},
		{raw: -5, want: -1},
		{raw: math.NaN(), want: 0},
	}
	for _, tt := range tests {
		e := New(sentiment.ScorerFunc(func(string) float64 { return tt.raw }))
		if got := e.Enrich(models.ContentRecord{ID: "x", Overview: "text"}).Sentiment; got != tt.want {
			t.Errorf("Sentiment for raw %v = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestEnrichAll_DefaultScorer(t *testing.T) {
	e := New(nil)
	recs := []models.ContentRecord{
		{ID: "a", Overview: "A wonderful film."},
		{ID: "b", Overview: "A terrible film."},
		{ID: "c"},
	}

	got := e.EnrichAll(recs)
	if len(got) != len(recs) {
		t.Fatalf("EnrichAll() returned %d records, want %d", len(got), len(recs))
	}
	if got[0].Sentiment <= 0 {
		t.Errorf("positive overview scored %v", got[0].Sentiment)
	}
	if got[1].Sentiment >= 0 {
		t.Errorf("negative overview scored %v", got[1].Sentiment)
	}
	if got[2].Sentiment != 0 {
		t.Errorf("empty overview scored %v", got[2].Sentiment)
	}
}
