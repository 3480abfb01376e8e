// Package service runs spatial distribution analyses over the record catalog
// and records their outcome in logs and metrics.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/okian/tianwen/internal/adapters/repository"
	"github.com/okian/tianwen/internal/domain/analyzer"
	"github.com/okian/tianwen/internal/domain/model"
	"github.com/okian/tianwen/pkg/logger"
	"github.com/okian/tianwen/pkg/metrics"
)

// Failure reasons reported to metrics.
const (
	reasonInvalidInput = "invalid_input"
	reasonScript       = "script"
	reasonNormalizer   = "normalizer"
	reasonCanceled     = "canceled"
	reasonNoStore      = "no_store"
)

// Report is one analysis result with its timing.
type Report struct {
	Source       string
	Distribution model.Distribution
	GeneratedAt  time.Time
	Duration     time.Duration
}

// Stats summarizes the service's activity.
type Stats struct {
	Source    string
	Records   int
	Runs      int
	Failures  int
	LastRunAt time.Time
}

// Service wires the catalog, analyzer, metrics and logger.
// It is not safe for concurrent use.
type Service struct {
	store    repository.Store
	source   string
	analyzer *analyzer.Analyzer
	clock    clockwork.Clock
	metrics  *metrics.Manager
	logger   logger.Logger

	runs      int
	failures  int
	lastRunAt time.Time
}

// New constructs a Service. Without WithStore only AnalyzeRecords is usable.
func New(opts ...Option) *Service {
	s := &Service{
		source:   "records",
		analyzer: analyzer.New(),
		clock:    clockwork.NewRealClock(),
		metrics:  metrics.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		if l := logger.Safe(); l != nil {
			s.logger = l.Named("service")
		} else {
			s.logger = logger.Discard()
		}
	}
	return s
}

// Analyze runs the analyzer over the whole catalog.
func (s *Service) Analyze(ctx context.Context) (Report, error) {
	if s.store == nil {
		s.fail(ctx, reasonNoStore, ErrNoStore)
		return Report{}, ErrNoStore
	}
	return s.run(ctx, s.source, s.store.All(ctx))
}

// AnalyzeRecords runs the analyzer over records supplied by the caller.
// A nil slice fails with *analyzer.InvalidInputError.
func (s *Service) AnalyzeRecords(ctx context.Context, records []model.CelestialRecord) (Report, error) {
	return s.run(ctx, "input", records)
}

func (s *Service) run(ctx context.Context, source string, records []model.CelestialRecord) (Report, error) {
	if err := ctx.Err(); err != nil {
		s.fail(ctx, reasonCanceled, err)
		return Report{}, err
	}

	start := s.clock.Now()
	s.runs++
	s.lastRunAt = start

	dist, err := s.analyzer.AnalyzeSpatialDistribution(records)
	if err != nil {
		s.fail(ctx, failureReason(err), err, logger.String("dataset", source))
		return Report{}, err
	}

	took := s.clock.Since(start)
	s.metrics.RecordAnalysis(dist.Total, float64(took.Microseconds())/1000)
	s.metrics.UpdateDistribution(len(dist.ObservationCenters), len(dist.RegionalDensity), dist.Unrecognized)

	s.logger.Info(ctx, "analysis complete",
		logger.String("dataset", source),
		logger.Int("records", dist.Total),
		logger.Int("centers", len(dist.ObservationCenters)),
		logger.Int("regions", len(dist.RegionalDensity)),
		logger.Int("unrecognized", dist.Unrecognized),
		logger.Duration("took", took),
	)

	return Report{
		Source:       source,
		Distribution: dist,
		GeneratedAt:  start,
		Duration:     took,
	}, nil
}

// fail counts a failed run. Invalid input is the caller's problem and is logged at warn.
func (s *Service) fail(ctx context.Context, reason string, err error, fields ...logger.Field) {
	s.failures++
	s.metrics.RecordAnalysisFailure(reason)

	fields = append(fields, logger.String("reason", reason), logger.Error(err))
	if reason == reasonInvalidInput {
		s.logger.Warn(ctx, "analysis rejected input", fields...)
		return
	}
	s.logger.Error(ctx, "analysis failed", fields...)
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, analyzer.ErrInvalidInput):
		return reasonInvalidInput
	case errors.Is(err, analyzer.ErrScript):
		return reasonScript
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return reasonCanceled
	default:
		return reasonNormalizer
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats(ctx context.Context) Stats {
	st := Stats{
		Source:    s.source,
		Runs:      s.runs,
		Failures:  s.failures,
		LastRunAt: s.lastRunAt,
	}
	if s.store != nil {
		st.Records = s.store.Count(ctx)
	}
	return st
}
