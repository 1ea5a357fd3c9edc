// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package sentiment

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// negationFactor flips and dampens a negated polarity ("not good" is mildly negative).
const negationFactor = -0.5

// negationWindow is how many preceding tokens are searched for a negator.
const negationWindow = 2

// Lexicon is a word-polarity scorer.
//
// A score is the mean polarity of the lexicon words found in the text. An intensifier
// directly before a polar word scales it; a negator within the two preceding tokens
// flips and dampens it. Text without any lexicon word scores 0.
type Lexicon struct {
	polarity     map[string]float64
	intensifiers map[string]float64
	negators     map[string]struct{}
}

// NewLexicon returns a Lexicon with the built-in English word tables.
func NewLexicon() *Lexicon {
	return NewLexiconWith(defaultPolarity, defaultIntensifiers)
}

// NewLexiconWith returns a Lexicon using the given polarity and intensifier tables.
// Keys are matched after case folding.
func NewLexiconWith(polarity, intensifiers map[string]float64) *Lexicon {
	l := &Lexicon{
		polarity:     make(map[string]float64, len(polarity)),
		intensifiers: make(map[string]float64, len(intensifiers)),
		negators:     make(map[string]struct{}, len(defaultNegators)),
	}
	fold := cases.Fold()
	for w, p := range polarity {
		l.polarity[fold.String(w)] = Clamp(p)
	}
	for w, m := range intensifiers {
		l.intensifiers[fold.String(w)] = m
	}
	for _, w := range defaultNegators {
		l.negators[w] = struct{}{}
	}
	return l
}

// Score implements Scorer. It is safe for concurrent use.
func (l *Lexicon) Score(text string) float64 {
	tokens := l.tokenize(text)
	if len(tokens) == 0 {
		return 0
	}

	var sum float64
	var matched int
	for i, tok := range tokens {
		p, ok := l.polarity[tok]
		if !ok {
			continue
		}
		if i > 0 {
			if m, isIntensifier := l.intensifiers[tokens[i-1]]; isIntensifier {
				p = Clamp(p * m)
			}
		}
		if l.negated(tokens, i) {
			p *= negationFactor
		}
		sum += p
		matched++
	}

	if matched == 0 {
		return 0
	}
	return Clamp(sum / float64(matched))
}

func (l *Lexicon) negated(tokens []string, i int) bool {
	for j := i - 1; j >= 0 && j >= i-negationWindow; j-- {
		tok := tokens[j]
		if _, ok := l.negators[tok]; ok {
			return true
		}
		if strings.HasSuffix(tok, "n't") {
			return true
		}
	}
	return false
}

// tokenize normalises text (NFKC, case fold) and splits it into word tokens.
// Apostrophes are kept inside words so contractions such as "isn't" survive.
func (l *Lexicon) tokenize(text string) []string {
	if text == "" {
		return nil
	}
	text = norm.NFKC.String(text)
	text = strings.ReplaceAll(text, "’", "'")
	// Casers carry state and are not shared between goroutines.
	text = cases.Fold().String(text)

	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '\''
	})
}

var defaultNegators = []string{"not", "no", "never", "without", "nor", "neither", "nobody", "nothing"}

var defaultIntensifiers = map[string]float64{
	"very":         1.3,
	"really":       1.3,
	"extremely":    1.5,
	"incredibly":   1.5,
	"truly":        1.2,
	"deeply":       1.3,
	"utterly":      1.4,
	"so":           1.2,
	"most":         1.2,
	"quite":        1.1,
	"highly":       1.3,
	"totally":      1.3,
	"slightly":     0.6,
	"somewhat":     0.7,
	"barely":       0.5,
	"increasingly": 1.1,
}

var defaultPolarity = map[string]float64{
	// positive
	"good":          0.7,
	"great":         0.8,
	"best":          1.0,
	"better":        0.5,
	"excellent":     1.0,
	"amazing":       0.6,
	"wonderful":     1.0,
	"beautiful":     0.85,
	"brilliant":     0.9,
	"happy":         0.8,
	"joy":           0.8,
	"joyful":        0.8,
	"love":          0.5,
	"loving":        0.6,
	"lovely":        0.5,
	"fun":           0.3,
	"funny":         0.25,
	"hilarious":     0.5,
	"charming":      0.5,
	"heartwarming":  0.6,
	"inspiring":     0.5,
	"hope":          0.4,
	"hopeful":       0.5,
	"brave":         0.6,
	"heroic":        0.5,
	"kind":          0.6,
	"friendly":      0.4,
	"peaceful":      0.5,
	"triumph":       0.6,
	"triumphant":    0.6,
	"success":       0.5,
	"successful":    0.75,
	"perfect":       1.0,
	"delightful":    0.8,
	"magical":       0.5,
	"romantic":      0.4,
	"sweet":         0.35,
	"gentle":        0.4,
	"epic":          0.4,
	"legendary":     0.5,
	"extraordinary": 0.6,
	"remarkable":    0.6,
	"unforgettable": 0.5,
	"win":           0.5,
	"wins":          0.5,
	"free":          0.4,
	"safe":          0.5,
	"rich":          0.375,
	"powerful":      0.3,
	"young":         0.1,
	"new":           0.14,
	// negative
	"bad":        -0.7,
	"worse":      -0.4,
	"worst":      -1.0,
	"terrible":   -1.0,
	"horrible":   -1.0,
	"awful":      -1.0,
	"evil":       -1.0,
	"sad":        -0.5,
	"tragic":     -0.75,
	"tragedy":    -0.6,
	"dark":       -0.15,
	"deadly":     -0.6,
	"dead":       -0.2,
	"death":      -0.5,
	"dangerous":  -0.6,
	"violent":    -0.8,
	"brutal":     -0.9,
	"cruel":      -1.0,
	"corrupt":    -0.5,
	"lonely":     -0.5,
	"lost":       -0.3,
	"broken":     -0.4,
	"fear":       -0.5,
	"afraid":     -0.6,
	"scary":      -0.5,
	"terrifying": -0.8,
	"desperate":  -0.6,
	"grim":       -0.5,
	"hate":       -0.8,
	"angry":      -0.5,
	"bitter":     -0.4,
	"mysterious": -0.1,
	"strange":    -0.05,
	"dull":       -0.6,
	"boring":     -1.0,
	"poor":       -0.4,
	"ugly":       -0.7,
	"war":        -0.3,
	"crime":      -0.3,
	"revenge":    -0.4,
	"murder":     -0.6,
	"betrayal":   -0.6,
	"haunted":    -0.4,
	"sinister":   -0.6,
	"failure":    -0.6,
	"fail":       -0.5,
	"wrong":      -0.5,
}
