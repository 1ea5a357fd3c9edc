// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package ingest loads raw catalogue records and the category lookup from files.
//
// CSV and JSON are read natively. Parquet, and any format when the DuckDB engine
// is selected, goes through database.ScanSource, which satisfies Source as well.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tomtom215/marquee/internal/models"
)

// ErrUnsupportedFormat is returned by Open for formats it cannot read natively.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// Source yields the raw records of a catalogue.
type Source interface {
	Records(ctx context.Context) ([]models.RawRecord, error)
}

// Format names accepted by Open.
const (
	FormatAuto    = "auto"
	FormatCSV     = "csv"
	FormatJSON    = "json"
	FormatJSONL   = "jsonl"
	FormatParquet = "parquet"
)

// DetectFormat resolves "auto" (or "") from the file extension.
func DetectFormat(path, format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != "" && format != FormatAuto {
		return format
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		return FormatCSV
	case ".json":
		return FormatJSON
	case ".jsonl", ".ndjson":
		return FormatJSONL
	case ".parquet":
		return FormatParquet
	default:
		return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
}

// Open returns a native Source for path. Parquet reports ErrUnsupportedFormat;
// callers route it to the DuckDB engine.
func Open(path, format string) (Source, error) {
	switch f := DetectFormat(path, format); f {
	case FormatCSV:
		return NewCSVSource(path), nil
	case FormatJSON, FormatJSONL:
		return NewJSONSource(path), nil
	default:
		return nil, fmt.Errorf("%w: %q (%s)", ErrUnsupportedFormat, f, path)
	}
}
