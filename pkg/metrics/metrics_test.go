package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	. "github.com/smartystreets/goconvey/convey"
)

// find returns the metric family with the given full name, or nil.
func find(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, f := range families {
		if f.GetName() == name {
			return f
		}
	}
	return nil
}

// counterWithLabel sums counters whose label matches value.
func counterWithLabel(f *dto.MetricFamily, label, value string) float64 {
	var total float64
	for _, m := range f.GetMetric() {
		for _, lp := range m.GetLabel() {
			if lp.GetName() == label && lp.GetValue() == value {
				total += m.GetCounter().GetValue()
			}
		}
	}
	return total
}

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithMetricPrefix("test_prefix"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithRefreshInterval(5*time.Second),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.RecordMaterialWarning()

			Convey("Then names should carry namespace, subsystem and prefix", func() {
				f := find(t, registry, "test_namespace_test_subsystem_test_prefix_material_warnings_total")
				So(f, ShouldNotBeNil)
				So(f.GetMetric()[0].GetLabel()[0].GetName(), ShouldEqual, "env")
				So(manager.RefreshInterval(), ShouldEqual, 5*time.Second)
			})
		})

		Convey("When zero values are passed", func() {
			manager := NewManager(
				WithNamespace(""),
				WithRefreshInterval(0),
				WithHistogramBuckets(nil),
			)

			Convey("Then defaults should be kept", func() {
				So(manager.namespace, ShouldEqual, "wellguard")
				So(manager.refreshInterval, ShouldEqual, defaultRefreshInterval)
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})
	})
}

func TestFormMetrics(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		registry := prometheus.NewRegistry()
		manager := NewManager(WithPrometheusRegistry(registry))

		Convey("When renders and verdicts are recorded", func() {
			manager.RecordPageRender(false)
			manager.RecordPageRender(false)
			manager.RecordPageRender(true)
			manager.RecordRiskVerdict("stable")
			manager.RecordAdminAttempt(false)
			manager.RecordAdminAttempt(true)
			manager.RecordRejectedValues(0)
			manager.RecordRejectedValues(3)

			Convey("Then the counters should reflect each label", func() {
				renders := find(t, registry, "wellguard_analyzer_page_renders_total")
				So(counterWithLabel(renders, "ready", "false"), ShouldEqual, 2)
				So(counterWithLabel(renders, "ready", "true"), ShouldEqual, 1)

				verdicts := find(t, registry, "wellguard_analyzer_risk_verdicts_total")
				So(counterWithLabel(verdicts, "verdict", "stable"), ShouldEqual, 1)

				attempts := find(t, registry, "wellguard_analyzer_admin_attempts_total")
				So(counterWithLabel(attempts, "granted", "true"), ShouldEqual, 1)
				So(counterWithLabel(attempts, "granted", "false"), ShouldEqual, 1)

				rejected := find(t, registry, "wellguard_analyzer_rejected_values_total")
				So(rejected.GetMetric()[0].GetCounter().GetValue(), ShouldEqual, 3)
			})
		})

		Convey("When chart and asset metrics are recorded", func() {
			manager.RecordChartRenderLatency(12.5)
			manager.RecordChartRenderError()
			manager.RecordBackgroundMissing()

			Convey("Then they should be gathered", func() {
				latency := find(t, registry, "wellguard_analyzer_chart_render_latency_milliseconds")
				So(latency.GetMetric()[0].GetHistogram().GetSampleCount(), ShouldEqual, 1)
				So(find(t, registry, "wellguard_analyzer_chart_render_errors_total"), ShouldNotBeNil)
				So(find(t, registry, "wellguard_analyzer_background_missing_total"), ShouldNotBeNil)
			})
		})
	})
}

func TestDisabledManager(t *testing.T) {
	Convey("Given a disabled manager", t, func() {
		registry := prometheus.NewRegistry()
		manager := NewManager(WithPrometheusRegistry(registry), WithMetricsEnabled(false))

		Convey("When metrics are recorded", func() {
			manager.RecordPageRender(true)
			manager.RecordHTTPRequest("/", "GET", "200")

			Convey("Then vectors should stay empty", func() {
				So(find(t, registry, "wellguard_analyzer_page_renders_total"), ShouldBeNil)
				So(find(t, registry, "wellguard_analyzer_http_requests_total"), ShouldBeNil)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When helpers are called", func() {
			Convey("Then none of them should panic", func() {
				So(func() {
					RecordPageRender(true)
					RecordRejectedValues(1)
					RecordRiskVerdict("extreme")
					RecordMaterialWarning()
					RecordAdminAttempt(false)
					RecordBackgroundMissing()
					RecordChartRenderLatency(3)
					RecordChartRenderError()
					RecordHTTPRequest("/healthz", "GET", "200")
					RecordHTTPRequestDuration("/healthz", "GET", "200", 1.5)
					RecordHTTPError("/", "PUT", "client_error")
					UpdateSystemMemoryUsage(1024)
					UpdateSystemGoroutineCount(8)
					RecordSystemGCPauseTime(0.2)
				}, ShouldNotPanic)
			})

			Convey("And the custom registry should expose them", func() {
				RecordHTTPRequest("/healthz", "GET", "200")
				f := find(t, GetRegistry(), "wellguard_analyzer_http_requests_total")
				So(f, ShouldNotBeNil)
				So(counterWithLabel(f, "endpoint", "/healthz"), ShouldBeGreaterThan, 0)
				So(RefreshInterval(), ShouldEqual, defaultRefreshInterval)
			})
		})
	})
}

func TestInit(t *testing.T) {
	defer Init()

	Convey("Given the global manager rebuilt with a namespace", t, func() {
		manager := Init(WithNamespace("rig7"))
		RecordPageRender(true)

		Convey("Then the global helpers should record under the new name", func() {
			So(manager, ShouldNotBeNil)
			f := find(t, GetRegistry(), "rig7_analyzer_page_renders_total")
			So(f, ShouldNotBeNil)
			So(counterWithLabel(f, "ready", "true"), ShouldEqual, 1)
			So(find(t, GetRegistry(), "wellguard_analyzer_page_renders_total"), ShouldBeNil)
		})
	})

	Convey("Given the global manager rebuilt disabled", t, func() {
		Init(WithMetricsEnabled(false))
		RecordPageRender(true)

		Convey("Then nothing should be recorded", func() {
			So(find(t, GetRegistry(), "wellguard_analyzer_page_renders_total"), ShouldBeNil)
		})
	})
}
