// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// dateLayouts are tried in order. Day-first layouts are ambiguous and not accepted.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"2006",
}

var integerToken = regexp.MustCompile(`^[+-]?[0-9]+$`)

// ParseDate returns the release date carried by v, or nil when v is absent or
// unparsable. The zero time is treated as absent.
func ParseDate(v any) *time.Time {
	switch d := v.(type) {
	case time.Time:
		if d.IsZero() {
			return nil
		}
		return &d
	case *time.Time:
		if d == nil || d.IsZero() {
			return nil
		}
		t := *d
		return &t
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return &t
			}
		}
	case json.Number:
		return yearOnly(d.String())
	case float64:
		if d == math.Trunc(d) {
			return yearOnly(strconv.FormatInt(int64(d), 10))
		}
	case int:
		return yearOnly(strconv.Itoa(d))
	case int64:
		return yearOnly(strconv.FormatInt(d, 10))
	}
	return nil
}

func yearOnly(s string) *time.Time {
	if len(s) != 4 {
		return nil
	}
	t, err := time.Parse("2006", s)
	if err != nil {
		return nil
	}
	return &t
}

// ParseCategoryIDs extracts an ordered list of category ids. It never fails:
// unusable elements are dropped and an absent value yields an empty, non-nil slice.
//
//	ParseCategoryIDs("[28, 12, -5]")  // [28 12 -5]
//	ParseCategoryIDs("[28,,abc,12]")  // [28 12]
//	ParseCategoryIDs("[]")            // []
func ParseCategoryIDs(v any) []int {
	out := []int{}
	switch ids := v.(type) {
	case nil:
	case string:
		s := strings.TrimSpace(ids)
		s = strings.TrimPrefix(s, "[")
		s = strings.TrimSuffix(s, "]")
		for _, tok := range strings.Split(s, ",") {
			if id, ok := parseIDToken(tok); ok {
				out = append(out, id)
			}
		}
	case []int:
		out = append(out, ids...)
	case []int32:
		for _, id := range ids {
			out = append(out, int(id))
		}
	case []int64:
		for _, id := range ids {
			if id >= math.MinInt && id <= math.MaxInt {
				out = append(out, int(id))
			}
		}
	case []float64:
		for _, id := range ids {
			if n, ok := ParseInt(id); ok && n >= math.MinInt && n <= math.MaxInt {
				out = append(out, int(n))
			}
		}
	case []string:
		for _, tok := range ids {
			if id, ok := parseIDToken(tok); ok {
				out = append(out, id)
			}
		}
	case []any:
		for _, elem := range ids {
			if id, ok := coerceElement(elem); ok {
				out = append(out, id)
			}
		}
	}
	return out
}

func coerceElement(v any) (int, bool) {
	if s, ok := v.(string); ok {
		return parseIDToken(s)
	}
	n, ok := ParseInt(v)
	if !ok || n < math.MinInt || n > math.MaxInt {
		return 0, false
	}
	return int(n), true
}

func parseIDToken(tok string) (int, bool) {
	tok = strings.TrimSpace(tok)
	if tok == "" || !integerToken.MatchString(tok) {
		return 0, false
	}
	id, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false
	}
	return id, true
}
