// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/database"
	"github.com/tomtom215/marquee/internal/export"
	"github.com/tomtom215/marquee/internal/ingest"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/pipeline"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/report"
)

// analysis is one completed pipeline run.
type analysis struct {
	RunID       string
	GeneratedAt time.Time
	Result      *pipeline.Result
}

func newAnalyseCmd(opts *globalOptions) *cobra.Command {
	var (
		input      string
		categories string
		output     string
		duckdbPath string
		parquet    bool
		reportPath string
	)

	cmd := &cobra.Command{
		Use:     "analyse",
		Aliases: []string{"analyze"},
		Short:   "Run the analysis pipeline and export the tables",
		Long: "Reads the catalogue, scores overviews, expands categories, builds the four summary " +
			"tables and writes them as CSV with a manifest. Optionally mirrors the tables into " +
			"DuckDB (and Parquet) and renders the Markdown report.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("input") {
				cfg.Input.Path = input
			}
			if flags.Changed("categories") {
				cfg.Input.CategoriesPath = categories
			}
			if flags.Changed("output") {
				cfg.Output.Dir = output
			}
			if flags.Changed("duckdb") {
				cfg.Output.DuckDBPath = duckdbPath
			}
			if flags.Changed("parquet") {
				cfg.Output.Parquet = parquet
			}
			if flags.Changed("report") {
				cfg.Output.ReportPath = reportPath
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			run, err := runAnalysis(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if err := exportAnalysis(cmd.Context(), cfg, run); err != nil {
				return err
			}

			res := run.Result
			return report.Summary(cmd.OutOrStdout(), res.Tables, res.Records, res.Expanded)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&input, "input", "i", "", "catalogue file (csv, json, jsonl or parquet)")
	f.StringVarP(&categories, "categories", "c", "", "category lookup (id,name CSV or JSON object)")
	f.StringVarP(&output, "output", "o", "", "output directory for the CSV tables")
	f.StringVar(&duckdbPath, "duckdb", "", "also write the tables into this DuckDB database")
	f.BoolVar(&parquet, "parquet", false, "also export each table as Parquet (requires --duckdb)")
	f.StringVar(&reportPath, "report", "", "write the Markdown report to this file")

	return cmd
}

// runAnalysis loads the catalogue and runs the pipeline under the analysis timeout.
func runAnalysis(ctx context.Context, cfg *config.Config) (*analysis, error) {
	runID := logging.GenerateRunID()
	ctx = logging.ContextWithCorrelationID(ctx, runID)
	ctx, cancel := context.WithTimeout(ctx, cfg.Analysis.Timeout)
	defer cancel()

	logger := logging.Ctx(ctx)

	lookup, err := ingest.LoadLookup(cfg.Input.CategoriesPath)
	if err != nil {
		return nil, err
	}

	raws, err := loadRecords(ctx, cfg.Input)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Str("input", cfg.Input.Path).
		Int("records", len(raws)).
		Int("categories", len(lookup)).
		Msg("Catalogue loaded")

	p, err := pipeline.New(
		pipeline.WithLookup(lookup),
		pipeline.WithRecommendConfig(recommend.Config{
			WindowYears:   cfg.Analysis.WindowYears,
			Thresholds:    cfg.Analysis.Thresholds,
			MinGroups:     cfg.Analysis.MinGroups,
			FallbackLimit: cfg.Analysis.FallbackLimit,
		}),
		pipeline.WithTopCategories(cfg.Analysis.TopCategories),
		pipeline.WithLogger(logging.WithComponent("pipeline")),
	)
	if err != nil {
		return nil, err
	}

	res, err := p.Run(ctx, raws)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}
	return &analysis{RunID: runID, GeneratedAt: time.Now().UTC(), Result: res}, nil
}

// loadRecords reads the catalogue natively, or through DuckDB for Parquet input
// and when the duckdb engine is selected.
func loadRecords(ctx context.Context, in config.InputConfig) ([]models.RawRecord, error) {
	format := ingest.DetectFormat(in.Path, in.Format)
	if format != ingest.FormatParquet && in.Engine != "duckdb" {
		src, err := ingest.Open(in.Path, format)
		if err != nil {
			return nil, err
		}
		return src.Records(ctx)
	}

	db, err := database.Open("")
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logging.Ctx(ctx).Warn().Err(cerr).Msg("Failed to close scan database")
		}
	}()

	src, err := database.NewScanSource(db, in.Path, format)
	if err != nil {
		return nil, err
	}
	return src.Records(ctx)
}

// exportAnalysis commits the CSV tables and manifest together, then writes the
// optional DuckDB store, report and metrics textfile. Those later sinks run after
// the commit: when one fails the CSV set and its manifest stay consistent.
func exportAnalysis(ctx context.Context, cfg *config.Config, run *analysis) error {
	ctx = logging.ContextWithCorrelationID(ctx, run.RunID)
	res := run.Result

	manifest := export.NewManifest(run.RunID, res.Records, res.Expanded, res.Tables, nil)
	manifest.GeneratedAt = run.GeneratedAt
	files, err := export.NewCSVWriter(cfg.Output.Dir).WriteWithManifest(ctx, res.Tables, manifest)
	if err != nil {
		return err
	}

	if cfg.Output.DuckDBPath != "" {
		if err := storeTables(ctx, cfg.Output, run.RunID, res.Tables); err != nil {
			return err
		}
	}

	if cfg.Output.ReportPath != "" {
		if err := report.WriteFile(cfg.Output.ReportPath, res.Tables, report.Options{}); err != nil {
			return err
		}
		logging.Ctx(ctx).Info().Str("path", cfg.Output.ReportPath).Msg("Report written")
	}

	if cfg.Metrics.Textfile != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			return fmt.Errorf("failed to write metrics textfile: %w", err)
		}
	}

	logging.Ctx(ctx).Info().
		Str("dir", cfg.Output.Dir).
		Int("files", len(files)).
		Str("rule", res.Tables.Recommendations.Rule).
		Msg("Analysis exported")
	return nil
}

func storeTables(ctx context.Context, out config.OutputConfig, runID string, tables models.Tables) (err error) {
	db, err := database.Open(out.DuckDBPath)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, db.Close())
	}()

	var opts []database.StoreOption
	if out.Parquet {
		opts = append(opts, database.WithParquetDir(filepath.Join(out.Dir, "parquet")))
	}
	return database.NewStore(db, opts...).WriteTables(ctx, runID, tables)
}
