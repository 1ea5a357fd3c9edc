// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package ingest

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
)

// JSONSource reads either a JSON array of objects or JSON lines. Numbers are kept
// as json.Number so integer ids survive untouched; null values are left out.
type JSONSource struct {
	path string
}

// NewJSONSource returns a source reading path.
func NewJSONSource(path string) *JSONSource {
	return &JSONSource{path: path}
}

// Records decodes every object in the file.
func (s *JSONSource) Records(ctx context.Context) ([]models.RawRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer f.Close()

	out, err := decodeRecords(ctx, bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.path, err)
	}

	logging.Ctx(ctx).Debug().Str("path", s.path).Int("records", len(out)).Msg("Read JSON records")
	return out, nil
}

func decodeRecords(ctx context.Context, r *bufio.Reader) ([]models.RawRecord, error) {
	first, err := peekNonSpace(r)
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(r)
	dec.UseNumber()

	if first == '[' {
		var objs []map[string]any
		if err := dec.Decode(&objs); err != nil {
			return nil, err
		}
		out := make([]models.RawRecord, 0, len(objs))
		for _, obj := range objs {
			out = append(out, dropNulls(obj))
		}
		return out, nil
	}

	var out []models.RawRecord
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var obj map[string]any
		err := dec.Decode(&obj)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line record %d: %w", len(out)+1, err)
		}
		out = append(out, dropNulls(obj))
	}
	return out, nil
}

func peekNonSpace(r *bufio.Reader) (byte, error) {
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b, r.UnreadByte()
	}
}

func dropNulls(obj map[string]any) models.RawRecord {
	rec := make(models.RawRecord, len(obj))
	for k, v := range obj {
		if v != nil {
			rec[k] = v
		}
	}
	return rec
}
