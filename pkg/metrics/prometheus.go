// Package metrics provides Prometheus metrics for the tianwen analysis engine.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector exported by tianwen.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	constLabels      prometheus.Labels
	registry         prometheus.Registerer
	gatherer         prometheus.Gatherer

	// Analysis
	analysesTotal     prometheus.Counter
	analysisFailures  *prometheus.CounterVec
	analysisDuration  prometheus.Histogram
	recordsAnalyzed   prometheus.Counter
	distinctLocations prometheus.Gauge
	distinctRegions   prometheus.Gauge
	unrecognized      prometheus.Gauge

	// Dataset
	catalogRecords    prometheus.Gauge
	duplicatesDropped prometheus.Counter

	// Presentation
	viewTransitions *prometheus.CounterVec

	errorsByComponent *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "tianwen",
		subsystem:        "analysis",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250},
		enabled:          true,
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
		gatherer:         prometheus.DefaultGatherer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // flat list of collector definitions
	auto := promauto.With(m.registry)

	m.analysesTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "runs_total",
		Help:        "Total number of completed spatial distribution analyses",
		ConstLabels: m.constLabels,
	})

	m.analysisFailures = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "failures_total",
			Help:        "Total number of failed analyses by reason",
			ConstLabels: m.constLabels,
		},
		[]string{"reason"},
	)

	m.analysisDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "duration_milliseconds",
		Help:        "Histogram of analysis duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.recordsAnalyzed = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "records_total",
		Help:        "Total number of celestial records fed to the analyzer",
		ConstLabels: m.constLabels,
	})

	m.distinctLocations = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "observation_centers",
		Help:        "Distinct observation locations in the last analysis",
		ConstLabels: m.constLabels,
	})

	m.distinctRegions = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "regions",
		Help:        "Distinct regions in the last analysis",
		ConstLabels: m.constLabels,
	})

	m.unrecognized = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "unrecognized_records",
		Help:        "Records in the last analysis whose location is not a known capital",
		ConstLabels: m.constLabels,
	})

	m.catalogRecords = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "dataset",
		Name:        "records",
		Help:        "Number of records held by the catalog",
		ConstLabels: m.constLabels,
	})

	m.duplicatesDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "dataset",
		Name:        "duplicates_dropped_total",
		Help:        "Records dropped at load time because their ID was already seen",
		ConstLabels: m.constLabels,
	})

	m.viewTransitions = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   "view",
			Name:        "transitions_total",
			Help:        "Presentation state transitions by target state",
			ConstLabels: m.constLabels,
		},
		[]string{"state"},
	)

	m.errorsByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_by_component_total",
			Help:        "Total number of errors by component",
			ConstLabels: m.constLabels,
		},
		[]string{"component", "error_type"},
	)
}

// RecordAnalysis records one successful analysis of n records.
func (m *Manager) RecordAnalysis(records int, durationMs float64) {
	if !m.enabled {
		return
	}
	m.analysesTotal.Inc()
	m.recordsAnalyzed.Add(float64(records))
	m.analysisDuration.Observe(durationMs)
}

// RecordAnalysisFailure increments the failure counter for reason.
func (m *Manager) RecordAnalysisFailure(reason string) {
	if !m.enabled {
		return
	}
	m.analysisFailures.WithLabelValues(reason).Inc()
}

// UpdateDistribution publishes the shape of the last distribution.
func (m *Manager) UpdateDistribution(locations, regions, unrecognized int) {
	if !m.enabled {
		return
	}
	m.distinctLocations.Set(float64(locations))
	m.distinctRegions.Set(float64(regions))
	m.unrecognized.Set(float64(unrecognized))
}

func (m *Manager) UpdateCatalogRecords(count int) {
	if !m.enabled {
		return
	}
	m.catalogRecords.Set(float64(count))
}

func (m *Manager) RecordDuplicatesDropped(count int) {
	if !m.enabled || count <= 0 {
		return
	}
	m.duplicatesDropped.Add(float64(count))
}

func (m *Manager) RecordViewTransition(state string) {
	if !m.enabled {
		return
	}
	m.viewTransitions.WithLabelValues(state).Inc()
}

func (m *Manager) RecordErrorByComponent(component, errorType string) {
	if !m.enabled {
		return
	}
	m.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// WriteTextfile writes the gathered metrics in the text exposition format.
// The file is written atomically, suitable for the node exporter textfile collector.
func (m *Manager) WriteTextfile(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrWriteTextfile)
	}
	if err := prometheus.WriteToTextfile(path, m.gatherer); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteTextfile, err)
	}
	return nil
}

// Package-level helpers operating on the global manager.

// Default returns the global manager.
func Default() *Manager {
	return globalManager
}

// RecordAnalysis records one successful analysis on the global manager.
func RecordAnalysis(records int, durationMs float64) {
	globalManager.RecordAnalysis(records, durationMs)
}

// RecordAnalysisFailure increments the global failure counter for reason.
func RecordAnalysisFailure(reason string) {
	globalManager.RecordAnalysisFailure(reason)
}

// UpdateDistribution publishes the shape of the last distribution globally.
func UpdateDistribution(locations, regions, unrecognized int) {
	globalManager.UpdateDistribution(locations, regions, unrecognized)
}

// UpdateCatalogRecords sets the catalog size gauge.
func UpdateCatalogRecords(count int) {
	globalManager.UpdateCatalogRecords(count)
}

// RecordDuplicatesDropped adds count to the dropped duplicates counter.
func RecordDuplicatesDropped(count int) {
	globalManager.RecordDuplicatesDropped(count)
}

// RecordViewTransition counts a presentation transition into state.
func RecordViewTransition(state string) {
	globalManager.RecordViewTransition(state)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.RecordErrorByComponent(component, errorType)
}

// WriteTextfile dumps the global registry to path.
func WriteTextfile(path string) error {
	return globalManager.WriteTextfile(path)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
