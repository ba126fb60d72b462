// Package metrics provides Prometheus metrics for the WellGuard analyzer.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the analyzer.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Form Metrics - how users move through the form
	pageRenders      *prometheus.CounterVec
	rejectedValues   prometheus.Counter
	riskVerdicts     *prometheus.CounterVec
	materialWarnings prometheus.Counter
	adminAttempts    *prometheus.CounterVec

	// Asset and Chart Metrics
	backgroundMissing  prometheus.Counter
	chartRenderLatency prometheus.Histogram
	chartRenderErrors  prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpErrors          *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// Init replaces the global manager with one built from opts on a fresh
// registry and returns it. Call it before serving; the global helpers are
// not synchronised with it.
func Init(opts ...Option) *Manager {
	registry := prometheus.NewRegistry()
	customRegistry = registry
	globalManager = NewManager(append(opts, WithPrometheusRegistry(registry))...)
	return globalManager
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "wellguard",
		subsystem:        "analyzer",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.NewRegistry(),
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// name applies the optional metric prefix.
func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.pageRenders = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("page_renders_total"),
		Help:        "Total number of form renders by readiness",
		ConstLabels: labels,
	}, []string{"ready"})

	m.rejectedValues = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("rejected_values_total"),
		Help:        "Submitted dropdown values that were not on the menu",
		ConstLabels: labels,
	})

	m.riskVerdicts = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("risk_verdicts_total"),
		Help:        "Total number of risk verdicts shown by outcome",
		ConstLabels: labels,
	}, []string{"verdict"})

	m.materialWarnings = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("material_warnings_total"),
		Help:        "Total number of unsuitable material warnings shown",
		ConstLabels: labels,
	})

	m.adminAttempts = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("admin_attempts_total"),
		Help:        "Admin passcode checks by outcome (empty input excluded)",
		ConstLabels: labels,
	}, []string{"granted"})

	m.backgroundMissing = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("background_missing_total"),
		Help:        "Renders where the background image was not found",
		ConstLabels: labels,
	})

	m.chartRenderLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("chart_render_latency_milliseconds"),
		Help:        "Histogram of trend chart render latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.chartRenderErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("chart_render_errors_total"),
		Help:        "Total number of failed trend chart renders",
		ConstLabels: labels,
	})

	// HTTP Performance Metrics - User experience indicators
	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("http_requests_total"),
			Help:        "Total number of HTTP requests by endpoint and method",
			ConstLabels: labels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("http_request_duration_milliseconds"),
			Help:        "HTTP request duration in milliseconds (user experience)",
			Buckets:     m.histogramBuckets,
			ConstLabels: labels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("http_errors_total"),
			Help:        "HTTP responses with status >= 400 by endpoint and error type",
			ConstLabels: labels,
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_memory_usage_bytes"),
		Help:        "System memory usage in bytes",
		ConstLabels: labels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_goroutine_count"),
		Help:        "Number of goroutines",
		ConstLabels: labels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_gc_pause_time_milliseconds"),
		Help:        "Garbage collection pause time in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})
}

// RefreshInterval is how often system gauges should be sampled.
func (m *Manager) RefreshInterval() time.Duration {
	return m.refreshInterval
}

// RecordPageRender counts a form render.
func (m *Manager) RecordPageRender(ready bool) {
	if m.enabled {
		m.pageRenders.WithLabelValues(strconv.FormatBool(ready)).Inc()
	}
}

// RecordRejectedValues counts off-menu submitted values.
func (m *Manager) RecordRejectedValues(n int) {
	if m.enabled && n > 0 {
		m.rejectedValues.Add(float64(n))
	}
}

// RecordRiskVerdict counts a verdict shown to the user.
func (m *Manager) RecordRiskVerdict(verdict string) {
	if m.enabled {
		m.riskVerdicts.WithLabelValues(verdict).Inc()
	}
}

// RecordMaterialWarning counts an unsuitable material warning.
func (m *Manager) RecordMaterialWarning() {
	if m.enabled {
		m.materialWarnings.Inc()
	}
}

// RecordAdminAttempt counts a passcode check.
func (m *Manager) RecordAdminAttempt(granted bool) {
	if m.enabled {
		m.adminAttempts.WithLabelValues(strconv.FormatBool(granted)).Inc()
	}
}

// RecordBackgroundMissing counts a render without the background image.
func (m *Manager) RecordBackgroundMissing() {
	if m.enabled {
		m.backgroundMissing.Inc()
	}
}

// RecordChartRenderLatency records chart render latency in milliseconds.
func (m *Manager) RecordChartRenderLatency(latencyMs float64) {
	if m.enabled {
		m.chartRenderLatency.Observe(latencyMs)
	}
}

// RecordChartRenderError counts a failed chart render.
func (m *Manager) RecordChartRenderError() {
	if m.enabled {
		m.chartRenderErrors.Inc()
	}
}

// RecordHTTPRequest counts an HTTP request.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string) {
	if m.enabled {
		m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func (m *Manager) RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if m.enabled {
		m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
	}
}

// RecordHTTPError counts an error response.
func (m *Manager) RecordHTTPError(endpoint, method, errorType string) {
	if m.enabled {
		m.httpErrors.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// UpdateSystemMemoryUsage sets the memory gauge.
func (m *Manager) UpdateSystemMemoryUsage(bytes uint64) {
	if m.enabled {
		m.systemMemoryUsage.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func (m *Manager) UpdateSystemGoroutineCount(count int) {
	if m.enabled {
		m.systemGoroutineCount.Set(float64(count))
	}
}

// RecordSystemGCPauseTime records a GC pause in milliseconds.
func (m *Manager) RecordSystemGCPauseTime(pauseMs float64) {
	if m.enabled {
		m.systemGCPauseTime.Observe(pauseMs)
	}
}

// RecordPageRender counts a form render on the global manager.
func RecordPageRender(ready bool) { globalManager.RecordPageRender(ready) }

// RecordRejectedValues counts off-menu submitted values on the global manager.
func RecordRejectedValues(n int) { globalManager.RecordRejectedValues(n) }

// RecordRiskVerdict counts a verdict on the global manager.
func RecordRiskVerdict(verdict string) { globalManager.RecordRiskVerdict(verdict) }

// RecordMaterialWarning counts a material warning on the global manager.
func RecordMaterialWarning() { globalManager.RecordMaterialWarning() }

// RecordAdminAttempt counts a passcode check on the global manager.
func RecordAdminAttempt(granted bool) { globalManager.RecordAdminAttempt(granted) }

// RecordBackgroundMissing counts a missing background on the global manager.
func RecordBackgroundMissing() { globalManager.RecordBackgroundMissing() }

// RecordChartRenderLatency records chart latency on the global manager.
func RecordChartRenderLatency(latencyMs float64) { globalManager.RecordChartRenderLatency(latencyMs) }

// RecordChartRenderError counts a chart failure on the global manager.
func RecordChartRenderError() { globalManager.RecordChartRenderError() }

// RecordHTTPRequest increments the HTTP requests counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode)
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.RecordHTTPRequestDuration(endpoint, method, statusCode, duration)
}

// RecordHTTPError counts an error response.
func RecordHTTPError(endpoint, method, errorType string) {
	globalManager.RecordHTTPError(endpoint, method, errorType)
}

// UpdateSystemMemoryUsage updates system memory usage metric.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.UpdateSystemMemoryUsage(bytes) }

// UpdateSystemGoroutineCount updates goroutine count metric.
func UpdateSystemGoroutineCount(count int) { globalManager.UpdateSystemGoroutineCount(count) }

// RecordSystemGCPauseTime records GC pause time.
func RecordSystemGCPauseTime(pauseMs float64) { globalManager.RecordSystemGCPauseTime(pauseMs) }

// RefreshInterval returns the sampling interval of the global manager.
func RefreshInterval() time.Duration { return globalManager.RefreshInterval() }

// GetRegistry returns the custom registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
