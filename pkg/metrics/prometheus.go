// Package metrics provides Prometheus metrics for the IPL analyser.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Query outcomes used as the "outcome" label.
const (
	OutcomeOK    = "ok"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

// Manager manages all Prometheus metrics for the analyser.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Ingestion
	recordsLoaded *prometheus.GaugeVec
	loadErrors    *prometheus.CounterVec
	loadDuration  *prometheus.HistogramVec

	// Queries
	queriesTotal *prometheus.CounterVec
	queryLatency *prometheus.HistogramVec
	emptyResults *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "iplstat",
		subsystem:        "analyser",
		histogramBuckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50, 100, 500},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.recordsLoaded = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_loaded",
		Help:      "Number of records held by the record store per dataset",
	}, []string{"dataset"})

	m.loadErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "load_errors_total",
		Help:      "Total number of failed dataset loads by dataset and error kind",
	}, []string{"dataset", "kind"})

	m.loadDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "load_duration_milliseconds",
		Help:      "Dataset ingestion duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"dataset"})

	m.queriesTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queries_total",
		Help:      "Total number of queries by name and outcome",
	}, []string{"query", "outcome"})

	m.queryLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "query_latency_milliseconds",
		Help:      "Query evaluation latency in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"query"})

	m.emptyResults = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "empty_results_total",
		Help:      "Queries that failed because nothing qualified for ranking",
	}, []string{"query"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_endpoint_total",
		Help:      "Total number of errors by endpoint",
	}, []string{"endpoint", "method", "error_type"})
}

// UpdateRecordsLoaded sets the number of records held for a dataset.
func UpdateRecordsLoaded(dataset string, count int) {
	globalManager.recordsLoaded.WithLabelValues(dataset).Set(float64(count))
}

// RecordLoadError increments the load error counter.
func RecordLoadError(dataset, kind string) {
	globalManager.loadErrors.WithLabelValues(dataset, kind).Inc()
}

// RecordLoadDuration records ingestion duration in milliseconds.
func RecordLoadDuration(dataset string, durationMs float64) {
	globalManager.loadDuration.WithLabelValues(dataset).Observe(durationMs)
}

// RecordQuery increments the query counter for the given outcome.
func RecordQuery(query, outcome string) {
	globalManager.queriesTotal.WithLabelValues(query, outcome).Inc()
}

// RecordQueryLatency records query latency in milliseconds.
func RecordQueryLatency(query string, latencyMs float64) {
	globalManager.queryLatency.WithLabelValues(query).Observe(latencyMs)
}

// RecordEmptyResult increments the empty result counter.
func RecordEmptyResult(query string) {
	globalManager.emptyResults.WithLabelValues(query).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
