// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
)

// ScanSource reads catalogue records through DuckDB's file readers. It accepts
// CSV, JSON and Parquet and satisfies ingest.Source.
type ScanSource struct {
	db     *DB
	path   string
	format string
}

// NewScanSource returns a source reading path with db. format is one of csv,
// json, jsonl or parquet; "" or "auto" infers it from the extension.
func NewScanSource(db *DB, path, format string) (*ScanSource, error) {
	if format == "" || format == "auto" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	switch format {
	case "csv", "json", "jsonl", "ndjson", "parquet":
	default:
		return nil, fmt.Errorf("duckdb scan: unsupported format %q", format)
	}
	return &ScanSource{db: db, path: path, format: format}, nil
}

func (s *ScanSource) readFunction() string {
	path := quoteLiteral(s.path)
	switch s.format {
	case "csv":
		// all_varchar keeps ids, dates and genre lists as written; coercion happens
		// during normalization like for every other source.
		return fmt.Sprintf("read_csv_auto(%s, header = true, all_varchar = true)", path)
	case "json":
		return fmt.Sprintf("read_json_auto(%s, format = 'array')", path)
	case "jsonl", "ndjson":
		return fmt.Sprintf("read_json_auto(%s, format = 'newline_delimited')", path)
	default:
		return fmt.Sprintf("read_parquet(%s)", path)
	}
}

// Records returns one RawRecord per row. NULL and empty-string cells are left out
// of the record.
func (s *ScanSource) Records(ctx context.Context) ([]models.RawRecord, error) {
	query := "SELECT * FROM " + s.readFunction()
	rows, err := s.db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", s.path, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	var out []models.RawRecord
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", len(out)+1, err)
		}
		rec := make(models.RawRecord, len(cols))
		for i, col := range cols {
			switch v := values[i].(type) {
			case nil:
			case string:
				if v != "" {
					rec[col] = v
				}
			default:
				rec[col] = v
			}
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", s.path, err)
	}

	logging.Ctx(ctx).Debug().Str("path", s.path).Str("format", s.format).Int("records", len(out)).Msg("Scanned records with DuckDB")
	return out, nil
}
