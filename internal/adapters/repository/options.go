// Package repository holds the read-only catalog of celestial records.
package repository

import "github.com/okian/tianwen/pkg/metrics"

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithMetrics publishes the catalog size to m.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *MemoryStore) {
		if m != nil {
			s.metrics = m
		}
	}
}
