// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/category"
)

// LoadLookup reads a category lookup. CSV files hold id,name rows (a leading row
// whose first cell is not an integer is treated as a header); JSON files hold one
// object mapping ids to names. An empty path or a missing file yields an empty
// lookup, which resolves every id to Unknown.
func LoadLookup(path string) (category.Lookup, error) {
	if path == "" {
		return category.Lookup{}, nil
	}
	f, err := os.Open(path) //nolint:gosec // path comes from configuration
	if errors.Is(err, os.ErrNotExist) {
		return category.Lookup{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open category lookup: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return decodeLookupJSON(f)
	}
	return decodeLookupCSV(f)
}

func decodeLookupCSV(r io.Reader) (category.Lookup, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	lookup := category.Lookup{}
	for line := 1; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return lookup, nil
		}
		if err != nil {
			return nil, fmt.Errorf("category lookup line %d: %w", line, err)
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("category lookup line %d: want id,name", line)
		}
		id, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(row[0], "\ufeff")))
		if err != nil {
			if line == 1 {
				continue
			}
			return nil, fmt.Errorf("category lookup line %d: bad id %q", line, row[0])
		}
		lookup[id] = strings.TrimSpace(row[1])
	}
}

func decodeLookupJSON(r io.Reader) (category.Lookup, error) {
	var raw map[string]string
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode category lookup: %w", err)
	}
	lookup := make(category.Lookup, len(raw))
	for k, name := range raw {
		id, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			return nil, fmt.Errorf("category lookup: bad id %q", k)
		}
		lookup[id] = name
	}
	return lookup, nil
}
