// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"github.com/spf13/cobra"

	"github.com/tomtom215/marquee/internal/api"
)

func newServeCmd(opts *globalOptions) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the analysis once and serve the tables over HTTP",
		Long: "Runs the pipeline with the current configuration, then serves the tables " +
			"read-only under /api/v1 with Prometheus metrics on /metrics until interrupted.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			run, err := runAnalysis(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			handler := api.NewHandler(&api.Snapshot{
				RunID:       run.RunID,
				GeneratedAt: run.GeneratedAt,
				Records:     run.Result.Records,
				Expanded:    run.Result.Expanded,
				Tables:      run.Result.Tables,
			})
			return api.NewServer(cfg.Server, handler).Serve(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "bind address (default: HTTP_HOST or 127.0.0.1)")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (default: HTTP_PORT or 8080)")

	return cmd
}
