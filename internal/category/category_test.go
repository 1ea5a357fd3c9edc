// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package category

import (
	"testing"

	"github.com/tomtom215/marquee/internal/models"
)

func enriched(id string, categories ...int) models.EnrichedRecord {
	return models.EnrichedRecord{ContentRecord: models.ContentRecord{ID: id, CategoryIDs: categories}}
}

func TestLookup_Resolve(t *testing.T) {
	lookup := Lookup{18: "Drama", 35: "Comedy", 99: ""}

	tests := []struct {
		id   int
		want string
	}{
		{id: 18, want: "Drama"},
		{id: 35, want: "Comedy"},
		{id: 7, want: "Unknown"},
		{id: 99, want: "Unknown"},
	}
	for _, tt := range tests {
		if got := lookup.Resolve(tt.id); got != tt.want {
			t.Errorf("Resolve(%d) = %q, want %q", tt.id, got, tt.want)
		}
	}

	var empty Lookup
	if got := empty.Resolve(18); got != "Unknown" {
		t.Errorf("nil Lookup Resolve() = %q, want Unknown", got)
	}
}

func TestLookup_Merge(t *testing.T) {
	films := Lookup{28: "Action", 18: "Drama"}
	series := Lookup{10759: "Action & Adventure", 18: "Drama (TV)"}

	got := films.Merge(series)
	if len(got) != 3 {
		t.Fatalf("len(Merge) = %d, want 3", len(got))
	}
	if got[18] != "Drama (TV)" {
		t.Errorf("Merge()[18] = %q, want later table to win", got[18])
	}
	if films[18] != "Drama" {
		t.Error("Merge() mutated the receiver")
	}
}

func TestExpand(t *testing.T) {
	lookup := Lookup{18: "Drama", 35: "Comedy"}

	t.Run("one row per category in order", func(t *testing.T) {
		rows := Expand(enriched("1", 35, 18, 7), lookup)
		want := []string{"Comedy", "Drama", "Unknown"}
		if len(rows) != len(want) {
			t.Fatalf("len(rows) = %d, want %d", len(rows), len(want))
		}
		for i, row := range rows {
			if row.CategoryName != want[i] {
				t.Errorf("rows[%d].CategoryName = %q, want %q", i, row.CategoryName, want[i])
			}
			if row.CategoryID == nil {
				t.Errorf("rows[%d].CategoryID = nil", i)
			}
			if row.ID != "1" {
				t.Errorf("rows[%d].ID = %q, want 1", i, row.ID)
			}
		}
		if *rows[0].CategoryID != 35 || *rows[2].CategoryID != 7 {
			t.Errorf("category ids = %d, %d; want 35, 7", *rows[0].CategoryID, *rows[2].CategoryID)
		}
	})

	t.Run("no categories yields one unknown row", func(t *testing.T) {
		rows := Expand(enriched("2"), lookup)
		if len(rows) != 1 {
			t.Fatalf("len(rows) = %d, want 1", len(rows))
		}
		if rows[0].CategoryID != nil {
			t.Errorf("CategoryID = %d, want nil", *rows[0].CategoryID)
		}
		if rows[0].CategoryName != "Unknown" {
			t.Errorf("CategoryName = %q, want Unknown", rows[0].CategoryName)
		}
	})
}

func TestExpandAll_RowCount(t *testing.T) {
	recs := []models.EnrichedRecord{
		enriched("1", 18, 35),
		enriched("2"),
		enriched("3", 18),
	}
	rows := ExpandAll(recs, nil)
	if len(rows) != 4 {
		t.Errorf("len(ExpandAll) = %d, want 4", len(rows))
	}

	single := []models.EnrichedRecord{enriched("1", 18), enriched("2", 35)}
	if got := len(ExpandAll(single, nil)); got != len(single) {
		t.Errorf("len(ExpandAll) = %d, want %d when every record has one category", got, len(single))
	}
}
