// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
)

// CSVWriter exports tables as CSV files into one directory.
type CSVWriter struct {
	dir string

	// create opens a staging file and rename moves files into place; both are
	// replaced in tests to inject failures.
	create func(path string) (io.WriteCloser, error)
	rename func(oldpath, newpath string) error
}

// NewCSVWriter returns a writer targeting dir. The directory is created on Write.
func NewCSVWriter(dir string) *CSVWriter {
	return &CSVWriter{
		dir: dir,
		create: func(path string) (io.WriteCloser, error) {
			return os.Create(path) //nolint:gosec // path is built from a fixed table name
		},
		rename: os.Rename,
	}
}

// Dir returns the target directory.
func (w *CSVWriter) Dir() string {
	return w.dir
}

// Write exports all four tables and returns the written file names in table order.
// On error the directory keeps the files it held before the call.
func (w *CSVWriter) Write(ctx context.Context, tables models.Tables) ([]string, error) {
	return w.write(ctx, tables, nil)
}

// WriteWithManifest exports the tables like Write and commits m as manifest.json in
// the same step, so the manifest always describes the tables next to it. m.Files
// is set to the table file names.
func (w *CSVWriter) WriteWithManifest(ctx context.Context, tables models.Tables, m Manifest) ([]string, error) {
	return w.write(ctx, tables, &m)
}

func (w *CSVWriter) write(ctx context.Context, tables models.Tables, m *Manifest) ([]string, error) {
	if err := os.MkdirAll(w.dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", w.dir, err)
	}

	staging, err := os.MkdirTemp(w.dir, ".staging-")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(staging); rmErr != nil {
			logging.Ctx(ctx).Warn().Err(rmErr).Str("dir", staging).Msg("Failed to remove staging directory")
		}
	}()

	rows := Rows(tables)
	files := make([]string, 0, len(TableNames))
	for _, name := range TableNames {
		files = append(files, FileName(name))
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, name := range TableNames {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(staging, FileName(name))
			if err := w.writeTable(path, Headers[name], rows[name]); err != nil {
				return fmt.Errorf("table %s: %w", name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	commit := files
	if m != nil {
		m.Files = files
		data, err := encodeManifest(*m)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(filepath.Join(staging, ManifestFile), data, 0o600); err != nil {
			return nil, fmt.Errorf("failed to stage manifest: %w", err)
		}
		commit = append(append([]string{}, files...), ManifestFile)
	}

	if err := w.promote(staging, commit); err != nil {
		return nil, err
	}

	for _, name := range TableNames {
		metrics.RecordExport(name, len(rows[name]))
	}
	logging.Ctx(ctx).Debug().Str("dir", w.dir).Strs("files", commit).Msg("Exported tables")

	return files, nil
}

func (w *CSVWriter) writeTable(path string, header []string, rows [][]string) error {
	f, err := w.create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		_ = f.Close()
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// promote renames the staged files into the output directory. Files they replace
// are first moved aside into the staging directory; on failure every promoted file
// is removed and the previous copies are moved back.
func (w *CSVWriter) promote(staging string, files []string) error {
	previous := filepath.Join(staging, ".previous")
	if err := os.Mkdir(previous, 0o750); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	type promoted struct {
		file     string
		replaced bool
	}
	done := make([]promoted, 0, len(files))

	restore := func(p promoted) {
		target := filepath.Join(w.dir, p.file)
		if p.replaced {
			_ = w.rename(filepath.Join(previous, p.file), target)
			return
		}
		_ = os.Remove(target)
	}
	rollback := func() {
		for i := len(done) - 1; i >= 0; i-- {
			restore(done[i])
		}
	}

	for _, file := range files {
		target := filepath.Join(w.dir, file)
		p := promoted{file: file}
		if _, err := os.Lstat(target); err == nil {
			if err := w.rename(target, filepath.Join(previous, file)); err != nil {
				rollback()
				return fmt.Errorf("failed to back up %s: %w", file, err)
			}
			p.replaced = true
		}
		if err := w.rename(filepath.Join(staging, file), target); err != nil {
			if p.replaced {
				_ = w.rename(filepath.Join(previous, file), target)
			}
			rollback()
			return fmt.Errorf("failed to move %s into place: %w", file, err)
		}
		done = append(done, p)
	}
	return nil
}
