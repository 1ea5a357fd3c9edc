// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tomtom215/marquee/internal/export"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
)

// Store writes the summary tables into a DuckDB database.
type Store struct {
	db         *DB
	parquetDir string
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithParquetDir also copies each table to dir/<table>.parquet after the write
// commits.
func WithParquetDir(dir string) StoreOption {
	return func(s *Store) {
		s.parquetDir = dir
	}
}

// NewStore returns a Store writing through db.
func NewStore(db *DB, opts ...StoreOption) *Store {
	s := &Store{db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WriteTables replaces the four tables in one transaction and records the run.
func (s *Store) WriteTables(ctx context.Context, runID string, tables models.Tables) error {
	values := tableValues(tables)

	err := withRetry(ctx, defaultRetryConfig, func() error {
		return s.writeTx(ctx, runID, tables.Recommendations, values)
	})
	if err != nil {
		return fmt.Errorf("failed to write tables: %w", err)
	}

	logger := logging.Ctx(ctx)
	for _, name := range export.TableNames {
		logger.Debug().Str("table", name).Int("rows", len(values[name])).Msg("Wrote DuckDB table")
	}

	if s.parquetDir != "" {
		return s.copyParquet(ctx)
	}
	return nil
}

func (s *Store) writeTx(ctx context.Context, runID string, rec models.RecommendationSet, values map[string][][]any) (err error) {
	tx, err := s.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				logging.Ctx(ctx).Warn().Err(rbErr).Msg("Rollback failed")
			}
		}
	}()

	for _, name := range export.TableNames {
		if _, err = tx.ExecContext(ctx, fmt.Sprintf("CREATE OR REPLACE TABLE %s %s", name, tableDDL[name])); err != nil {
			return fmt.Errorf("create %s: %w", name, err)
		}
		if err = insertRows(ctx, tx, name, values[name]); err != nil {
			return fmt.Errorf("insert %s: %w", name, err)
		}
	}

	if _, err = tx.ExecContext(ctx, runsDDL); err != nil {
		return fmt.Errorf("create marquee_runs: %w", err)
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO marquee_runs VALUES (?, ?, ?, ?, ?, ?)`,
		runID, time.Now().UTC(), rec.Rule, rec.Threshold, nullableInt(rec.WindowStart), nullableInt(rec.WindowEnd),
	); err != nil {
		return fmt.Errorf("record run: %w", err)
	}

	return tx.Commit()
}

func insertRows(ctx context.Context, tx *sql.Tx, table string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(rows[0])), ", ")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s VALUES (%s)", table, placeholders))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return err
		}
	}
	return nil
}

// copyParquet exports every table with ZSTD compression.
func (s *Store) copyParquet(ctx context.Context) error {
	if err := os.MkdirAll(s.parquetDir, 0o750); err != nil {
		return fmt.Errorf("failed to create parquet directory: %w", err)
	}
	for _, name := range export.TableNames {
		path := filepath.Join(s.parquetDir, name+".parquet")
		query := fmt.Sprintf("COPY %s TO %s (FORMAT PARQUET, COMPRESSION 'ZSTD')", name, quoteLiteral(path))
		if _, err := s.db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to export %s to parquet: %w", name, err)
		}
	}
	logging.Ctx(ctx).Debug().Str("dir", s.parquetDir).Msg("Exported Parquet tables")
	return nil
}

// tableValues converts the tables into driver values with nil for missing cells.
func tableValues(t models.Tables) map[string][][]any {
	out := make(map[string][][]any, len(export.TableNames))

	for _, r := range t.YearlyTrend {
		out[export.TableYearlyTrend] = append(out[export.TableYearlyTrend], []any{
			r.Year, r.Kind.String(), r.TitleCount,
			nullableFloat(r.AverageRating), nullableInt64(r.TotalVotes), nullableFloat(r.AverageSentiment),
		})
	}
	for _, r := range t.LanguageCoverage {
		out[export.TableLanguageCoverage] = append(out[export.TableLanguageCoverage], []any{
			r.Language, r.TitleCount,
			nullableFloat(r.AveragePopularity), nullableFloat(r.AverageSentiment), nullableFloat(r.AverageRating),
		})
	}
	for _, r := range t.TopCategories {
		out[export.TableTopCategories] = append(out[export.TableTopCategories], []any{
			r.Category, r.TitleCount,
			nullableFloat(r.AveragePopularity), nullableFloat(r.AverageRating), nullableFloat(r.AverageSentiment),
		})
	}
	for _, r := range t.Recommendations.Rows {
		out[export.TableRecommendations] = append(out[export.TableRecommendations], []any{
			r.Language, nullableFloat(r.AveragePopularity), nullableFloat(r.AverageSentiment), r.SampleSize,
		})
	}
	return out
}

func nullableFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
