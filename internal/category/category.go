// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package category resolves category ids to names and explodes records into one row
// per category.
package category

import (
	"github.com/tomtom215/marquee/internal/models"
)

// Lookup maps category ids to display names. A nil Lookup is valid and resolves
// every id to models.UnknownCategory.
type Lookup map[int]string

// Resolve returns the name for id, or models.UnknownCategory when id is not mapped.
func (l Lookup) Resolve(id int) string {
	if name, ok := l[id]; ok && name != "" {
		return name
	}
	return models.UnknownCategory
}

// Merge returns a new Lookup with the entries of l overlaid by other.
func (l Lookup) Merge(other Lookup) Lookup {
	out := make(Lookup, len(l)+len(other))
	for id, name := range l {
		out[id] = name
	}
	for id, name := range other {
		out[id] = name
	}
	return out
}

// Expand returns one row per category id of rec, in id order. A record without
// categories yields exactly one row with a nil CategoryID and the Unknown name.
func Expand(rec models.EnrichedRecord, lookup Lookup) []models.ExpandedRow {
	if len(rec.CategoryIDs) == 0 {
		return []models.ExpandedRow{{
			EnrichedRecord: rec,
			CategoryName:   models.UnknownCategory,
		}}
	}

	rows := make([]models.ExpandedRow, 0, len(rec.CategoryIDs))
	for _, id := range rec.CategoryIDs {
		id := id
		rows = append(rows, models.ExpandedRow{
			EnrichedRecord: rec,
			CategoryID:     &id,
			CategoryName:   lookup.Resolve(id),
		})
	}
	return rows
}

// ExpandAll expands every record, preserving record order.
func ExpandAll(recs []models.EnrichedRecord, lookup Lookup) []models.ExpandedRow {
	rows := make([]models.ExpandedRow, 0, len(recs))
	for i := range recs {
		rows = append(rows, Expand(recs[i], lookup)...)
	}
	return rows
}
