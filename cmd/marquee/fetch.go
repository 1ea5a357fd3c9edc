// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/tmdb"
)

func newFetchCmd(opts *globalOptions) *cobra.Command {
	var (
		pages    int
		language string
		dataDir  string
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download popular titles and genres from TMDB",
		Long: "Pages through TMDB's popular films and series and writes tmdb_popular.csv and " +
			"genres_map.csv. Requires TMDB_API_KEY.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("pages") {
				cfg.TMDB.Pages = pages
			}
			if flags.Changed("language") {
				cfg.TMDB.Language = language
			}
			if flags.Changed("data-dir") {
				cfg.TMDB.DataDir = dataDir
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.RequireAPIKey(); err != nil {
				return err
			}

			var clientOpts []tmdb.ClientOption
			if cfg.TMDB.CacheDir != "" {
				var cache *tmdb.Cache
				cache, err = tmdb.OpenCache(cfg.TMDB.CacheDir, cfg.TMDB.CacheTTL)
				if err != nil {
					return err
				}
				defer func() {
					err = errors.Join(err, cache.Close())
				}()
				clientOpts = append(clientOpts, tmdb.WithCache(cache))
			}

			client, err := tmdb.NewClient(&cfg.TMDB, clientOpts...)
			if err != nil {
				return err
			}

			ctx := logging.ContextWithNewCorrelationID(cmd.Context())
			logging.Ctx(ctx).Info().
				Str("api_key", logging.SanitizeToken(cfg.TMDB.APIKey)).
				Int("pages", cfg.TMDB.Pages).
				Str("language", cfg.TMDB.Language).
				Msg("Fetching from TMDB")
			collection, err := tmdb.NewFetcher(client, cfg.TMDB.Pages).Collect(ctx)
			if err != nil {
				return err
			}

			catalogue, genres, err := collection.WriteFiles(cfg.TMDB.DataDir)
			if err != nil {
				return err
			}

			logging.Ctx(ctx).Info().
				Int("titles", len(collection.Items)).
				Int("genres", len(collection.Genres)).
				Str("catalogue", catalogue).
				Str("genres_file", genres).
				Msg("Fetch complete")
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Saved %d titles to %s and %d genres to %s\n",
				len(collection.Items), catalogue, len(collection.Genres), genres)
			return err
		},
	}

	cmd.Flags().IntVarP(&pages, "pages", "p", 0, "popular pages per kind (default: TMDB_PAGES or 10)")
	cmd.Flags().StringVarP(&language, "language", "l", "", "language tag for titles and genre names (default: en-US)")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "directory for the fetched files (default: data)")

	return cmd
}
