// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package sentiment scores the polarity of short free-text overviews.
//
// Scores are in [-1, 1]: negative for negative tone, positive for positive tone and
// exactly 0 for empty or neutral text. Any implementation of Scorer can be plugged
// into the pipeline; Lexicon is the deterministic default.
package sentiment

import "math"

// Scorer computes a polarity score for a piece of text.
type Scorer interface {
	Score(text string) float64
}

// ScorerFunc adapts an ordinary function to the Scorer interface.
type ScorerFunc func(text string) float64

// Score calls f(text).
func (f ScorerFunc) Score(text string) float64 {
	return f(text)
}

// Clamp bounds a score to [-1, 1] and maps NaN to 0.
func Clamp(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v > 1:
		return 1
	case v < -1:
		return -1
	default:
		return v
	}
}

// Bounded wraps a scorer so its output always satisfies the polarity contract.
func Bounded(s Scorer) Scorer {
	return ScorerFunc(func(text string) float64 {
		if text == "" {
			return 0
		}
		return Clamp(s.Score(text))
	})
}
