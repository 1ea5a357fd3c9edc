// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package pipeline runs the catalogue analysis end to end: normalize, enrich,
// expand, aggregate and recommend. Each stage consumes the materialised output of
// the previous one; nothing is shared between runs.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/analytics"
	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/category"
	"github.com/tomtom215/marquee/internal/enrich"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/sentiment"
)

// Stage names, also used as the metrics label.
const (
	StageNormalize = "normalize"
	StageEnrich    = "enrich"
	StageExpand    = "expand"
	StageAggregate = "aggregate"
	StageRecommend = "recommend"
)

// Pipeline holds the collaborators of an analysis run.
type Pipeline struct {
	scorer        sentiment.Scorer
	lookup        category.Lookup
	recommendCfg  recommend.Config
	topCategories int
	logger        zerolog.Logger

	enricher    *enrich.Enricher
	recommender *recommend.Recommender
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithScorer sets the overview sentiment scorer. Defaults to the built-in lexicon.
func WithScorer(s sentiment.Scorer) Option {
	return func(p *Pipeline) {
		p.scorer = s
	}
}

// WithLookup sets the category lookup. Defaults to an empty lookup.
func WithLookup(l category.Lookup) Option {
	return func(p *Pipeline) {
		p.lookup = l
	}
}

// WithRecommendConfig sets the recommender tunables.
func WithRecommendConfig(cfg recommend.Config) Option {
	return func(p *Pipeline) {
		p.recommendCfg = cfg
	}
}

// WithTopCategories sets the row limit of the top categories table.
func WithTopCategories(n int) Option {
	return func(p *Pipeline) {
		p.topCategories = n
	}
}

// WithLogger sets the logger used by Run and the recommender. Defaults to the
// global logger.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func WithLogger(l zerolog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// New builds a Pipeline. It fails when the recommender configuration is invalid.
func New(opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		scorer:        sentiment.NewLexicon(),
		lookup:        category.Lookup{},
		recommendCfg:  recommend.DefaultConfig(),
		topCategories: analytics.DefaultTopCategories,
		logger:        logging.Logger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.topCategories < 1 {
		return nil, fmt.Errorf("top categories must be at least 1, got %d", p.topCategories)
	}

	rec, err := recommend.New(p.recommendCfg, p.logger)
	if err != nil {
		return nil, err
	}
	p.recommender = rec
	p.enricher = enrich.New(p.scorer)
	return p, nil
}

// Result is the output of one run.
type Result struct {
	Tables    models.Tables
	Records   int
	Expanded  int
	Durations map[string]time.Duration
}

// Run executes every stage over raws. A record without an id aborts the run before
// any table is built. ctx is checked between stages.
func (p *Pipeline) Run(ctx context.Context, raws []models.RawRecord) (*Result, error) {
	if logging.CorrelationIDFromContext(ctx) == "" {
		ctx = logging.ContextWithNewCorrelationID(ctx)
	}
	ctx = logging.ContextWithLogger(ctx, p.logger)
	logger := logging.Ctx(ctx)
	res := &Result{Durations: make(map[string]time.Duration, 5)}

	var (
		records  []models.ContentRecord
		enriched []models.EnrichedRecord
		expanded []models.ExpandedRow
		err      error
	)

	stages := []struct {
		name string
		run  func() error
	}{
		{StageNormalize, func() error {
			records, err = catalog.NormalizeAll(raws)
			if err != nil {
				return fmt.Errorf("normalize: %w", err)
			}
			return nil
		}},
		{StageEnrich, func() error {
			enriched = p.enricher.EnrichAll(records)
			return nil
		}},
		{StageExpand, func() error {
			expanded = category.ExpandAll(enriched, p.lookup)
			return nil
		}},
		{StageAggregate, func() error {
			res.Tables.YearlyTrend = analytics.YearlyTrend(enriched)
			res.Tables.LanguageCoverage = analytics.LanguageCoverage(enriched)
			res.Tables.TopCategories = analytics.TopCategories(expanded, p.topCategories)
			return nil
		}},
		{StageRecommend, func() error {
			res.Tables.Recommendations = p.recommender.Recommend(enriched)
			return nil
		}},
	}

	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("pipeline canceled before %s: %w", stage.name, err)
		}
		start := time.Now()
		if err := stage.run(); err != nil {
			return nil, err
		}
		elapsed := time.Since(start)
		res.Durations[stage.name] = elapsed
		metrics.RecordStage(stage.name, elapsed)
		logger.Debug().Str("stage", stage.name).Dur("duration", elapsed).Msg("Pipeline stage complete")
	}

	res.Records = len(records)
	res.Expanded = len(expanded)

	metrics.RecordsIngested.Add(float64(res.Records))
	metrics.ExpandedRows.Set(float64(res.Expanded))
	metrics.RecordRecommendation(res.Tables.Recommendations.Rule, res.Tables.Recommendations.Threshold)

	logger.Info().
		Int("records", res.Records).
		Int("expanded", res.Expanded).
		Str("rule", res.Tables.Recommendations.Rule).
		Int("threshold", res.Tables.Recommendations.Threshold).
		Int("recommended", len(res.Tables.Recommendations.Rows)).
		Msg("Pipeline run complete")

	return res, nil
}
