// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

//go:build integration

package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/export"
	"github.com/tomtom215/marquee/internal/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "marquee.duckdb"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestScanSource_CSV(t *testing.T) {
	db := openTestDB(t)
	path := filepath.Join(t.TempDir(), "catalogue.csv")
	content := "id,kind,title,original_language,popularity,vote_average,release_date,genre_ids\n" +
		"1,movie,Alpha,en,12.5,7.1,2023-04-01,\"[18, 35]\"\n" +
		"2,tv,Beta,,3,,2022-01-01,[]\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	src, err := NewScanSource(db, path, "auto")
	if err != nil {
		t.Fatal(err)
	}
	recs, err := src.Records(context.Background())
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if _, ok := recs[1]["original_language"]; ok {
		t.Error("empty cell should be absent")
	}
	if _, ok := recs[1]["vote_average"]; ok {
		t.Error("empty vote_average should be absent")
	}

	normalized, err := catalog.NormalizeAll(recs)
	if err != nil {
		t.Fatalf("NormalizeAll() error = %v", err)
	}
	if normalized[0].ID != "1" || normalized[0].Kind != models.KindFilm {
		t.Errorf("record 0 = %+v", normalized[0])
	}
	if len(normalized[0].CategoryIDs) != 2 {
		t.Errorf("CategoryIDs = %v, want [18 35]", normalized[0].CategoryIDs)
	}
}

func TestNewScanSource_UnsupportedFormat(t *testing.T) {
	if _, err := NewScanSource(nil, "catalogue.xlsx", "auto"); err == nil {
		t.Error("NewScanSource() should reject .xlsx")
	}
}

func TestStore_WriteTables(t *testing.T) {
	db := openTestDB(t)
	parquetDir := t.TempDir()
	store := NewStore(db, WithParquetDir(parquetDir))

	tables := models.Tables{
		YearlyTrend: []models.YearlyTrendRow{
			{Year: 2023, Kind: models.KindFilm, TitleCount: 2, AverageRating: models.Float64(7.5)},
		},
		LanguageCoverage: []models.LanguageCoverageRow{
			{Language: "en", TitleCount: 2, AveragePopularity: models.Float64(10)},
		},
		TopCategories: []models.CategoryRow{
			{Category: "Drama", TitleCount: 2},
		},
		Recommendations: models.RecommendationSet{
			Rows: []models.RecommendationRow{{Language: "en", SampleSize: 2}},
			Rule: "fallback",
		},
	}

	ctx := context.Background()
	if err := store.WriteTables(ctx, "run-1", tables); err != nil {
		t.Fatalf("WriteTables() error = %v", err)
	}
	// A second run replaces rather than appends.
	if err := store.WriteTables(ctx, "run-2", tables); err != nil {
		t.Fatalf("WriteTables() second run error = %v", err)
	}

	var count int
	if err := db.Conn().QueryRowContext(ctx, "SELECT COUNT(*) FROM yearly_trend").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("yearly_trend rows = %d, want 1", count)
	}

	var nulls int
	if err := db.Conn().QueryRowContext(ctx,
		"SELECT COUNT(*) FROM yearly_trend WHERE total_votes IS NULL AND average_sentiment IS NULL").Scan(&nulls); err != nil {
		t.Fatal(err)
	}
	if nulls != 1 {
		t.Errorf("missing values should be NULL, got %d null rows", nulls)
	}

	var runs int
	if err := db.Conn().QueryRowContext(ctx, "SELECT COUNT(*) FROM marquee_runs").Scan(&runs); err != nil {
		t.Fatal(err)
	}
	if runs != 2 {
		t.Errorf("marquee_runs = %d, want 2", runs)
	}

	for _, name := range export.TableNames {
		if _, err := os.Stat(filepath.Join(parquetDir, name+".parquet")); err != nil {
			t.Errorf("parquet file for %s: %v", name, err)
		}
	}

	src, err := NewScanSource(db, filepath.Join(parquetDir, export.TableLanguageCoverage+".parquet"), "")
	if err != nil {
		t.Fatal(err)
	}
	recs, err := src.Records(ctx)
	if err != nil {
		t.Fatalf("reading parquet back: %v", err)
	}
	if len(recs) != 1 || recs[0]["original_language"] != "en" {
		t.Errorf("parquet records = %v", recs)
	}
}
