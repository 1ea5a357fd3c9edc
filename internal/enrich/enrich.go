// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package enrich derives the release year and overview sentiment of each record.
package enrich

import (
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/sentiment"
)

// Enricher attaches derived fields to normalized records.
type Enricher struct {
	scorer sentiment.Scorer
}

// New returns an Enricher scoring overviews with s. A nil scorer falls back to the
// built-in lexicon. Scores are clamped to [-1, 1] whatever s returns.
func New(s sentiment.Scorer) *Enricher {
	if s == nil {
		s = sentiment.NewLexicon()
	}
	return &Enricher{scorer: sentiment.Bounded(s)}
}

// Enrich returns rec with Year and Sentiment populated.
func (e *Enricher) Enrich(rec models.ContentRecord) models.EnrichedRecord {
	out := models.EnrichedRecord{
		ContentRecord: rec,
		Sentiment:     e.scorer.Score(rec.Overview),
	}
	if rec.ReleaseDate != nil {
		year := rec.ReleaseDate.Year()
		out.Year = &year
	}
	return out
}

// EnrichAll enriches every record, preserving order.
func (e *Enricher) EnrichAll(recs []models.ContentRecord) []models.EnrichedRecord {
	out := make([]models.EnrichedRecord, len(recs))
	for i := range recs {
		out[i] = e.Enrich(recs[i])
	}
	return out
}
