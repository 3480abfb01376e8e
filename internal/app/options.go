package service

import (
	"github.com/jonboulle/clockwork"
	"github.com/okian/tianwen/internal/adapters/repository"
	"github.com/okian/tianwen/internal/domain/analyzer"
	"github.com/okian/tianwen/pkg/logger"
	"github.com/okian/tianwen/pkg/metrics"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the catalog analyzed by Analyze.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithSource names the dataset behind the store in reports and logs.
func WithSource(source string) Option {
	return func(s *Service) {
		if source != "" {
			s.source = source
		}
	}
}

// WithAnalyzer sets the analyzer used for every run.
func WithAnalyzer(a *analyzer.Analyzer) Option {
	return func(s *Service) {
		if a != nil {
			s.analyzer = a
		}
	}
}

// WithClock sets the clock used to stamp and time reports.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithMetrics sets the metrics manager. Defaults to the global manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
