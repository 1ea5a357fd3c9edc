// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/tomtom215/marquee/internal/logging"
)

// configureConnectionPool sets connection pool parameters.
func (db *DB) configureConnectionPool() {
	db.conn.SetMaxOpenConns(runtime.NumCPU())
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// retryConfig bounds retries of conflicting transactions.
type retryConfig struct {
	maxAttempts int
	baseDelay   time.Duration
}

var defaultRetryConfig = retryConfig{maxAttempts: 3, baseDelay: 100 * time.Millisecond}

// withRetry runs fn, retrying with exponential backoff while it fails with a
// transaction conflict.
func withRetry(ctx context.Context, cfg retryConfig, fn func() error) error {
	var err error
	delay := cfg.baseDelay
	for attempt := 1; attempt <= cfg.maxAttempts; attempt++ {
		if err = fn(); err == nil || !isTransactionConflict(err) {
			return err
		}
		if attempt == cfg.maxAttempts {
			break
		}
		logging.Ctx(ctx).Warn().Err(err).Int("attempt", attempt).Msg("Transaction conflict, retrying")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return fmt.Errorf("giving up after %d attempts: %w", cfg.maxAttempts, err)
}

// isTransactionConflict checks if an error is a DuckDB transaction conflict
func isTransactionConflict(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "Transaction conflict") ||
		strings.Contains(errStr, "Conflict on update") ||
		strings.Contains(errStr, "cannot update a table that has been altered")
}
