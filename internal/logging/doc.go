// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package logging provides centralized zerolog-based structured logging for Marquee.
//
// # Overview
//
// The package provides:
//   - A global zerolog logger with level helpers (Info, Debug, Warn, Error)
//   - JSON output for batch and service use, console output for interactive runs
//   - Context-aware logging with correlation ID propagation across pipeline stages
//   - Redaction helpers that keep the TMDB API key out of logs and cache keys
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "console",
//	})
//
//	ctx = logging.ContextWithNewCorrelationID(ctx)
//	logging.Ctx(ctx).Info().Int("records", n).Msg("Analysis complete")
//
// # Configuration
//
// Environment Variables:
//
//	LOG_LEVEL   - Minimum log level: trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - Output format: json, console (default: json)
//	LOG_CALLER  - Include caller file:line: true, false (default: false)
//
// The --log-level and --log-format CLI flags take precedence over both.
//
// # Best Practices
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("table", name).Msg("Exported")  // Correct
//	logging.Info().Str("table", name)                  // WRONG - log not emitted
package logging
