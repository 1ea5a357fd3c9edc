// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package database provides the DuckDB integration for Marquee.

DuckDB is used on both ends of the pipeline:

  - ScanSource reads catalogue records with read_csv_auto, read_json_auto or
    read_parquet. It is the ingestion path for Parquet files and an alternative
    engine for CSV and JSON (INPUT_ENGINE=duckdb).
  - Store writes the four summary tables into a database file inside a single
    transaction (CREATE OR REPLACE, NULL for missing values) and can copy each
    table to Parquet afterwards.

Usage:

	db, err := database.Open(cfg.Output.DuckDBPath)
	if err != nil {
	    return err
	}
	defer db.Close()

	store := database.NewStore(db, database.WithParquetDir(cfg.Output.Dir))
	if err := store.WriteTables(ctx, runID, result.Tables); err != nil {
	    return err
	}

The driver requires cgo and the DuckDB native library; tests exercising it carry
the integration build tag.
*/
package database
