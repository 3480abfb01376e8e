package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating a manager with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("sub"),
				WithHistogramBuckets([]float64{1, 10}),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then collectors should use the configured names", func() {
				manager.RecordAnalysis(3, 1.5)
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "test_sub_runs_total")
				So(names, ShouldContain, "test_sub_records_total")
				So(names, ShouldContain, "test_sub_duration_milliseconds")
			})
		})

		Convey("When empty values are passed", func() {
			m := &Manager{namespace: "keep", subsystem: "keep"}
			WithNamespace("")(m)
			WithSubsystem("")(m)
			WithHistogramBuckets(nil)(m)
			WithPrometheusRegistry(nil)(m)

			Convey("Then the defaults should be kept", func() {
				So(m.namespace, ShouldEqual, "keep")
				So(m.subsystem, ShouldEqual, "keep")
				So(m.histogramBuckets, ShouldBeNil)
				So(m.registry, ShouldBeNil)
			})
		})
	})
}

func TestManagerRecording(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(registry))

		Convey("When analyses are recorded", func() {
			m.RecordAnalysis(5, 0.3)
			m.RecordAnalysis(7, 0.4)

			Convey("Then runs and records should accumulate", func() {
				So(testutil.ToFloat64(m.analysesTotal), ShouldEqual, 2.0)
				So(testutil.ToFloat64(m.recordsAnalyzed), ShouldEqual, 12.0)
				So(testutil.CollectAndCount(m.analysisDuration), ShouldEqual, 1)
			})
		})

		Convey("When failures are recorded", func() {
			m.RecordAnalysisFailure("invalid_input")
			m.RecordAnalysisFailure("invalid_input")
			m.RecordAnalysisFailure("normalizer")

			Convey("Then each reason should be counted separately", func() {
				So(testutil.ToFloat64(m.analysisFailures.WithLabelValues("invalid_input")), ShouldEqual, 2.0)
				So(testutil.ToFloat64(m.analysisFailures.WithLabelValues("normalizer")), ShouldEqual, 1.0)
			})
		})

		Convey("When the distribution shape is updated", func() {
			m.UpdateDistribution(4, 2, 1)
			m.UpdateDistribution(3, 2, 0)

			Convey("Then the gauges should hold the last values", func() {
				So(testutil.ToFloat64(m.distinctLocations), ShouldEqual, 3.0)
				So(testutil.ToFloat64(m.distinctRegions), ShouldEqual, 2.0)
				So(testutil.ToFloat64(m.unrecognized), ShouldEqual, 0.0)
			})
		})

		Convey("When dataset metrics are recorded", func() {
			m.UpdateCatalogRecords(30)
			m.RecordDuplicatesDropped(2)
			m.RecordDuplicatesDropped(0)
			m.RecordDuplicatesDropped(-1)

			Convey("Then only positive drops should count", func() {
				So(testutil.ToFloat64(m.catalogRecords), ShouldEqual, 30.0)
				So(testutil.ToFloat64(m.duplicatesDropped), ShouldEqual, 2.0)
			})
		})

		Convey("When view transitions are recorded", func() {
			m.RecordViewTransition("loading")
			m.RecordViewTransition("ready")
			m.RecordViewTransition("loading")

			Convey("Then they should be counted by state", func() {
				So(testutil.ToFloat64(m.viewTransitions.WithLabelValues("loading")), ShouldEqual, 2.0)
				So(testutil.ToFloat64(m.viewTransitions.WithLabelValues("ready")), ShouldEqual, 1.0)
			})
		})

		Convey("When component errors are recorded", func() {
			m.RecordErrorByComponent("feed", "decode")

			Convey("Then the labelled counter should increase", func() {
				So(testutil.ToFloat64(m.errorsByComponent.WithLabelValues("feed", "decode")), ShouldEqual, 1.0)
			})
		})
	})

	Convey("Given a disabled manager", t, func() {
		m := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()), WithMetricsEnabled(false))

		Convey("When recording", func() {
			m.RecordAnalysis(5, 1)
			m.RecordAnalysisFailure("x")
			m.RecordViewTransition("ready")

			Convey("Then nothing should be observed", func() {
				So(testutil.ToFloat64(m.analysesTotal), ShouldEqual, 0.0)
				So(testutil.ToFloat64(m.recordsAnalyzed), ShouldEqual, 0.0)
			})
		})
	})
}

func TestWriteTextfile(t *testing.T) {
	Convey("Given a manager with recorded metrics", t, func() {
		m := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))
		m.RecordAnalysis(5, 0.2)

		Convey("When writing to a textfile", func() {
			path := filepath.Join(t.TempDir(), "tianwen.prom")
			err := m.WriteTextfile(path)

			Convey("Then the file should contain the exposition", func() {
				So(err, ShouldBeNil)
				data, readErr := os.ReadFile(path)
				So(readErr, ShouldBeNil)
				So(strings.Contains(string(data), "tianwen_analysis_runs_total 1"), ShouldBeTrue)
			})
		})

		Convey("When the path is empty", func() {
			err := m.WriteTextfile("")

			Convey("Then it should fail with ErrWriteTextfile", func() {
				So(errors.Is(err, ErrWriteTextfile), ShouldBeTrue)
			})
		})

		Convey("When the directory does not exist", func() {
			err := m.WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"))

			Convey("Then it should fail with ErrWriteTextfile", func() {
				So(errors.Is(err, ErrWriteTextfile), ShouldBeTrue)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When calling package helpers", func() {
			Convey("Then they should not panic", func() {
				So(func() {
					RecordAnalysis(1, 0.1)
					RecordAnalysisFailure("invalid_input")
					UpdateDistribution(1, 1, 0)
					UpdateCatalogRecords(1)
					RecordDuplicatesDropped(1)
					RecordViewTransition("idle")
					RecordErrorByComponent("app", "test")
				}, ShouldNotPanic)
				So(Default(), ShouldNotBeNil)
				So(GetRegistry(), ShouldNotBeNil)
			})
		})
	})
}
