// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tomtom215/marquee/internal/export"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/report"
)

// defaultReportFile is used when neither --file nor REPORT_PATH is set.
const defaultReportFile = "strategy_report.md"

func newReportCmd(opts *globalOptions) *cobra.Command {
	var (
		output string
		file   string
		source string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the Markdown report from exported tables",
		Long:  "Reads the CSV tables written by analyse and renders the Markdown strategy report.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("output") {
				cfg.Output.Dir = output
			}

			path := file
			if path == "" {
				path = cfg.Output.ReportPath
			}
			if path == "" {
				path = filepath.Join(cfg.Output.Dir, defaultReportFile)
			}

			tables, err := export.ReadTables(cfg.Output.Dir)
			if err != nil {
				return err
			}
			if err := report.WriteFile(path, tables, report.Options{Source: source}); err != nil {
				return err
			}

			logging.Info().Str("path", path).Msg("Report written")
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "directory holding the exported tables")
	cmd.Flags().StringVarP(&file, "file", "f", "", "report file (default: REPORT_PATH or <output>/"+defaultReportFile+")")
	cmd.Flags().StringVar(&source, "source", "", "data source named in the report (default: TMDB)")

	return cmd
}
