// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package main is the entry point of the marquee command.
//
// Marquee turns a catalogue of popular films and series into four summary
// tables (yearly trend, language coverage, top categories and a language
// recommendation shortlist), a Markdown strategy report and an optional
// read-only HTTP API.
//
// # Commands
//
//	marquee fetch      download popular titles and genre names from TMDB
//	marquee analyse    run the pipeline and export the tables
//	marquee report     render the Markdown report from exported tables
//	marquee serve      run the pipeline once and serve the tables over HTTP
//	marquee version    print build information
//
// # Configuration
//
// Settings are layered with Koanf v2 (highest priority wins):
//   - Command-line flags
//   - Environment variables (a .env file in the working directory is loaded first)
//   - Config file (--config, CONFIG_PATH, marquee.yaml or config.yaml)
//   - Built-in defaults
//
// # Example Usage
//
//	export TMDB_API_KEY=your-api-key
//	marquee fetch --pages 10
//	marquee analyse --report outputs/strategy_report.md
//	marquee serve
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
)

// Build information, set with -ldflags.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("marquee failed")
		}
		os.Exit(1)
	}
}

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

// load reads .env, loads the layered configuration, applies the logging flags
// and initializes the global logger.
func (g *globalOptions) load(cmd *cobra.Command) (*config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = g.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Logging.Format = g.logFormat
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.Format = cfg.Logging.Format
	logCfg.Caller = cfg.Logging.Caller
	logCfg.Output = cmd.ErrOrStderr()
	logging.Init(logCfg)

	return cfg, nil
}

// newRootCmd creates the root command for the marquee CLI.
func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "marquee",
		Short: "Content catalogue analytics and investment insights",
		Long: "Marquee analyses a catalogue of popular films and series and recommends " +
			"which original languages deserve investment focus.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate("marquee version {{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (default: CONFIG_PATH, marquee.yaml or config.yaml)")
	pf.StringVar(&opts.logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	pf.StringVar(&opts.logFormat, "log-format", "json", "log format (json, console)")

	rootCmd.AddCommand(newAnalyseCmd(opts))
	rootCmd.AddCommand(newReportCmd(opts))
	rootCmd.AddCommand(newFetchCmd(opts))
	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
