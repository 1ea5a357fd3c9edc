// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/models"
)

// ErrMissingID is returned when a record carries no usable identifier.
var ErrMissingID = errors.New("record has no id")

// maxVoteAverage is the upper bound of the rating scale.
const maxVoteAverage = 10.0

// Normalize converts one raw record into a ContentRecord.
func Normalize(raw models.RawRecord) (models.ContentRecord, error) {
	id, ok := parseID(raw["id"])
	if !ok {
		return models.ContentRecord{}, ErrMissingID
	}

	rec := models.ContentRecord{
		ID:          id,
		Kind:        models.ParseKind(stringValue(raw["kind"])),
		Title:       firstString(raw, "title", "name"),
		Overview:    stringValue(raw["overview"]),
		CategoryIDs: ParseCategoryIDs(firstPresent(raw, "category_ids", "genre_ids")),
	}

	if lang := strings.ToLower(strings.TrimSpace(stringValue(raw["original_language"]))); lang != "" {
		rec.OriginalLanguage = &lang
	}

	if v, ok := ParseFloat(raw["popularity"]); ok && v >= 0 {
		rec.Popularity = &v
	}
	if v, ok := ParseFloat(raw["vote_average"]); ok && v >= 0 && v <= maxVoteAverage {
		rec.VoteAverage = &v
	}
	if v, ok := ParseInt(raw["vote_count"]); ok && v >= 0 {
		rec.VoteCount = &v
	}

	rec.ReleaseDate = ParseDate(firstPresent(raw, "release_date", "first_air_date"))

	return rec, nil
}

// NormalizeAll normalizes every record, failing on the first record without an id.
func NormalizeAll(raws []models.RawRecord) ([]models.ContentRecord, error) {
	out := make([]models.ContentRecord, 0, len(raws))
	for i, raw := range raws {
		rec, err := Normalize(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func parseID(v any) (string, bool) {
	switch id := v.(type) {
	case nil:
		return "", false
	case string:
		id = strings.TrimSpace(id)
		return id, id != ""
	case json.Number:
		if n, err := id.Int64(); err == nil {
			return strconv.FormatInt(n, 10), true
		}
		if f, err := id.Float64(); err == nil {
			return integralFloatID(f)
		}
		return "", false
	case float64:
		return integralFloatID(id)
	case float32:
		return integralFloatID(float64(id))
	case int:
		return strconv.FormatInt(int64(id), 10), true
	case int8:
		return strconv.FormatInt(int64(id), 10), true
	case int16:
		return strconv.FormatInt(int64(id), 10), true
	case int32:
		return strconv.FormatInt(int64(id), 10), true
	case int64:
		return strconv.FormatInt(id, 10), true
	case uint:
		return strconv.FormatUint(uint64(id), 10), true
	case uint8:
		return strconv.FormatUint(uint64(id), 10), true
	case uint16:
		return strconv.FormatUint(uint64(id), 10), true
	case uint32:
		return strconv.FormatUint(uint64(id), 10), true
	case uint64:
		return strconv.FormatUint(id, 10), true
	default:
		return "", false
	}
}

func integralFloatID(f float64) (string, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return "", false
	}
	return strconv.FormatInt(int64(f), 10), true
}

// ParseFloat coerces a raw numeric value. NaN, infinities, empty and unparsable
// strings report false.
func ParseFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseInt coerces a raw integer value. Integral floats and numeric strings such as
// "1200.0" are accepted; fractional values report false.
func ParseInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
	case string:
		if i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
			return i, true
		}
	}
	f, ok := ParseFloat(v)
	if !ok || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, false
	}
	return int64(f), true
}

func stringValue(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	case fmt.Stringer:
		return s.String()
	default:
		return ""
	}
}

func firstString(raw models.RawRecord, keys ...string) string {
	for _, k := range keys {
		if s := stringValue(raw[k]); s != "" {
			return s
		}
	}
	return ""
}

// firstPresent returns the first non-empty value among keys.
func firstPresent(raw models.RawRecord, keys ...string) any {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
			continue
		}
		return v
	}
	return nil
}
