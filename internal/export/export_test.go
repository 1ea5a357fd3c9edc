// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package export

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/tomtom215/marquee/internal/models"
)

func sampleTables() models.Tables {
	return models.Tables{
		YearlyTrend: []models.YearlyTrendRow{
			{Year: 2023, Kind: models.KindFilm, TitleCount: 2, AverageRating: models.Float64(7.25), TotalVotes: models.Int64(1500), AverageSentiment: models.Float64(0.1)},
			{Year: 2023, Kind: models.KindUnknown, TitleCount: 1},
		},
		LanguageCoverage: []models.LanguageCoverageRow{
			{Language: "en", TitleCount: 3, AveragePopularity: models.Float64(41.5), AverageSentiment: models.Float64(-0.05), AverageRating: models.Float64(6.8)},
		},
		TopCategories: []models.CategoryRow{
			{Category: "Drama", TitleCount: 3, AveragePopularity: models.Float64(12), AverageRating: models.Float64(7), AverageSentiment: models.Float64(0)},
			{Category: "Science, Fiction", TitleCount: 1},
		},
		Recommendations: models.RecommendationSet{
			Rows: []models.RecommendationRow{
				{Language: "ko", AveragePopularity: models.Float64(88.125), AverageSentiment: models.Float64(0.3), SampleSize: 12},
			},
			Rule:           "threshold",
			Threshold:      10,
			WindowStart:    models.Int(2021),
			WindowEnd:      models.Int(2023),
			CandidateCount: 4,
		},
	}
}

func TestCSVWriter_Write(t *testing.T) {
	dir := t.TempDir()
	files, err := NewCSVWriter(dir).Write(context.Background(), sampleTables())
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	want := []string{"yearly_trend.csv", "language_coverage.csv", "top_categories.csv", "recommend_languages.csv"}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("files = %v, want %v", files, want)
	}

	got, err := os.ReadFile(filepath.Join(dir, "yearly_trend.csv"))
	if err != nil {
		t.Fatal(err)
	}
	wantYearly := "year,kind,title_count,average_rating,total_votes,average_sentiment\n" +
		"2023,film,2,7.25,1500,0.1\n" +
		"2023,unknown,1,,,\n"
	if string(got) != wantYearly {
		t.Errorf("yearly_trend.csv =\n%s\nwant\n%s", got, wantYearly)
	}

	got, err = os.ReadFile(filepath.Join(dir, "top_categories.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), "\"Science, Fiction\",1,,,\n") {
		t.Errorf("top_categories.csv should quote embedded commas and leave missing cells empty:\n%s", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 4 {
		t.Errorf("output dir has %d entries, want 4 (staging removed)", len(entries))
	}
}

func TestCSVWriter_Deterministic(t *testing.T) {
	dirA, dirB := t.TempDir(), t.TempDir()
	tables := sampleTables()

	if _, err := NewCSVWriter(dirA).Write(context.Background(), tables); err != nil {
		t.Fatal(err)
	}
	if _, err := NewCSVWriter(dirB).Write(context.Background(), tables); err != nil {
		t.Fatal(err)
	}

	for _, name := range TableNames {
		a, err := os.ReadFile(filepath.Join(dirA, FileName(name)))
		if err != nil {
			t.Fatal(err)
		}
		b, err := os.ReadFile(filepath.Join(dirB, FileName(name)))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(a, b) {
			t.Errorf("%s differs between runs", name)
		}
	}
}

func TestCSVWriter_FailureLeavesNoFiles(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir)
	w.create = func(path string) (io.WriteCloser, error) {
		if filepath.Base(path) == FileName(TableTopCategories) {
			return nil, errors.New("disk full")
		}
		return os.Create(path) //nolint:gosec // test path
	}

	if _, err := w.Write(context.Background(), sampleTables()); err == nil {
		t.Fatal("Write() should fail")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("output dir should be empty, has %v", names)
	}
}

func TestCSVWriter_WriteWithManifest(t *testing.T) {
	dir := t.TempDir()
	tables := sampleTables()
	m := NewManifest("run-7", 5, 8, tables, nil)

	files, err := NewCSVWriter(dir).WriteWithManifest(context.Background(), tables, m)
	if err != nil {
		t.Fatalf("WriteWithManifest() error = %v", err)
	}
	got, err := ReadManifest(dir)
	if err != nil {
		t.Fatalf("ReadManifest() error = %v", err)
	}
	if got.RunID != "run-7" {
		t.Errorf("RunID = %q, want run-7", got.RunID)
	}
	if !reflect.DeepEqual(got.Files, files) {
		t.Errorf("manifest files = %v, want %v", got.Files, files)
	}

	t.Run("failed table keeps manifest out", func(t *testing.T) {
		dir := t.TempDir()
		w := NewCSVWriter(dir)
		w.create = func(path string) (io.WriteCloser, error) {
			if filepath.Base(path) == FileName(TableYearlyTrend) {
				return nil, errors.New("disk full")
			}
			return os.Create(path) //nolint:gosec // test path
		}
		if _, err := w.WriteWithManifest(context.Background(), tables, m); err == nil {
			t.Fatal("WriteWithManifest() should fail")
		}
		if _, err := os.Stat(filepath.Join(dir, ManifestFile)); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("manifest should not exist, stat error = %v", err)
		}
	})
}

func TestCSVWriter_RenameFailureRestoresPrevious(t *testing.T) {
	dir := t.TempDir()
	first := NewManifest("run-1", 5, 8, sampleTables(), nil)
	if _, err := NewCSVWriter(dir).WriteWithManifest(context.Background(), sampleTables(), first); err != nil {
		t.Fatal(err)
	}

	before := make(map[string][]byte)
	for _, file := range append(append([]string{}, tableFiles()...), ManifestFile) {
		data, err := os.ReadFile(filepath.Join(dir, file))
		if err != nil {
			t.Fatal(err)
		}
		before[file] = data
	}

	w := NewCSVWriter(dir)
	w.rename = func(oldpath, newpath string) error {
		fromStaging := strings.HasPrefix(filepath.Base(filepath.Dir(oldpath)), ".staging-")
		if fromStaging && filepath.Base(oldpath) == FileName(TableTopCategories) {
			return errors.New("device busy")
		}
		return os.Rename(oldpath, newpath)
	}
	second := NewManifest("run-2", 0, 0, models.Tables{}, nil)
	if _, err := w.WriteWithManifest(context.Background(), models.Tables{}, second); err == nil {
		t.Fatal("WriteWithManifest() should fail")
	}

	for file, want := range before {
		got, err := os.ReadFile(filepath.Join(dir, file))
		if err != nil {
			t.Errorf("%s missing after failed export: %v", file, err)
			continue
		}
		if !bytes.Equal(got, want) {
			t.Errorf("%s changed after failed export:\n%s", file, got)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != len(before) {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("output dir has %v, want only the previous export", names)
	}
}

func tableFiles() []string {
	files := make([]string, 0, len(TableNames))
	for _, name := range TableNames {
		files = append(files, FileName(name))
	}
	return files
}

func TestCSVWriter_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := t.TempDir()
	if _, err := NewCSVWriter(dir).Write(ctx, sampleTables()); !errors.Is(err, context.Canceled) {
		t.Errorf("Write() error = %v, want context.Canceled", err)
	}
}

func TestReadTables(t *testing.T) {
	dir := t.TempDir()
	tables := sampleTables()
	files, err := NewCSVWriter(dir).Write(context.Background(), tables)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("without manifest", func(t *testing.T) {
		got, err := ReadTables(dir)
		if err != nil {
			t.Fatalf("ReadTables() error = %v", err)
		}
		if !reflect.DeepEqual(got.YearlyTrend, tables.YearlyTrend) {
			t.Errorf("YearlyTrend = %+v", got.YearlyTrend)
		}
		if !reflect.DeepEqual(got.TopCategories, tables.TopCategories) {
			t.Errorf("TopCategories = %+v", got.TopCategories)
		}
		if got.Recommendations.Rule != "" {
			t.Errorf("Rule = %q, want empty without manifest", got.Recommendations.Rule)
		}
	})

	t.Run("with manifest", func(t *testing.T) {
		m := NewManifest("run-1", 5, 8, tables, files)
		if err := WriteManifest(dir, m); err != nil {
			t.Fatal(err)
		}
		got, err := ReadTables(dir)
		if err != nil {
			t.Fatalf("ReadTables() error = %v", err)
		}
		if !reflect.DeepEqual(got.Recommendations, tables.Recommendations) {
			t.Errorf("Recommendations = %+v, want %+v", got.Recommendations, tables.Recommendations)
		}
	})

	t.Run("missing table", func(t *testing.T) {
		if err := os.Remove(filepath.Join(dir, FileName(TableLanguageCoverage))); err != nil {
			t.Fatal(err)
		}
		if _, err := ReadTables(dir); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("ReadTables() error = %v, want os.ErrNotExist", err)
		}
	})
}

func TestReadTables_BadHeader(t *testing.T) {
	dir := t.TempDir()
	if _, err := NewCSVWriter(dir).Write(context.Background(), models.Tables{}); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, FileName(TableRecommendations))
	if err := os.WriteFile(path, []byte("language,popularity,sentiment,n\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadTables(dir); err == nil {
		t.Error("ReadTables() should reject an unexpected header")
	}
}

func TestWriteManifest(t *testing.T) {
	dir := t.TempDir()
	m := NewManifest("run-42", 5, 8, sampleTables(), []string{"yearly_trend.csv"})
	if err := WriteManifest(dir, m); err != nil {
		t.Fatalf("WriteManifest() error = %v", err)
	}

	got, err := ReadManifest(dir)
	if err != nil {
		t.Fatalf("ReadManifest() error = %v", err)
	}
	if got.RunID != "run-42" || got.Records != 5 || got.Expanded != 8 {
		t.Errorf("manifest = %+v", got)
	}
	if got.Rule != "threshold" || got.Threshold != 10 {
		t.Errorf("rule/threshold = %q/%d", got.Rule, got.Threshold)
	}
	if got.Rows.TopCategories != 2 {
		t.Errorf("Rows.TopCategories = %d, want 2", got.Rows.TopCategories)
	}
}
