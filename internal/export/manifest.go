// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/models"
)

// ManifestFile is the manifest's file name inside the output directory.
const ManifestFile = "manifest.json"

// Manifest records how one export was produced.
type Manifest struct {
	RunID          string    `json:"run_id"`
	GeneratedAt    time.Time `json:"generated_at"`
	Records        int       `json:"records"`
	Enriched       int       `json:"enriched"`
	Expanded       int       `json:"expanded"`
	Rule           string    `json:"recommendation_rule"`
	Threshold      int       `json:"recommendation_threshold"`
	WindowStart    *int      `json:"window_start,omitempty"`
	WindowEnd      *int      `json:"window_end,omitempty"`
	CandidateCount int       `json:"candidate_count"`
	Rows           RowCounts `json:"rows"`
	Files          []string  `json:"files"`
}

// RowCounts holds the number of data rows per table.
type RowCounts struct {
	YearlyTrend      int `json:"yearly_trend"`
	LanguageCoverage int `json:"language_coverage"`
	TopCategories    int `json:"top_categories"`
	Recommendations  int `json:"recommend_languages"`
}

// NewManifest fills a manifest from a run's tables and counts.
func NewManifest(runID string, records, expanded int, tables models.Tables, files []string) Manifest {
	rec := tables.Recommendations
	return Manifest{
		RunID:          runID,
		GeneratedAt:    time.Now().UTC(),
		Records:        records,
		Enriched:       records,
		Expanded:       expanded,
		Rule:           rec.Rule,
		Threshold:      rec.Threshold,
		WindowStart:    rec.WindowStart,
		WindowEnd:      rec.WindowEnd,
		CandidateCount: rec.CandidateCount,
		Rows: RowCounts{
			YearlyTrend:      len(tables.YearlyTrend),
			LanguageCoverage: len(tables.LanguageCoverage),
			TopCategories:    len(tables.TopCategories),
			Recommendations:  len(rec.Rows),
		},
		Files: files,
	}
}

func encodeManifest(m Manifest) ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteManifest writes m as indented JSON to dir/manifest.json on its own. Use
// CSVWriter.WriteWithManifest to commit it together with the tables.
func WriteManifest(dir string, m Manifest) error {
	data, err := encodeManifest(m)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".manifest-*.json")
	if err != nil {
		return fmt.Errorf("failed to create manifest: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(dir, ManifestFile)); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to move manifest into place: %w", err)
	}
	return nil
}

// ReadManifest loads dir/manifest.json. A missing file reports an error wrapping
// os.ErrNotExist.
func ReadManifest(dir string) (Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile)) //nolint:gosec // fixed file name
	if err != nil {
		return m, err
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("failed to decode manifest: %w", err)
	}
	return m, nil
}
