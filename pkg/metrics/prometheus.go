// Package metrics provides Prometheus metrics for credit data generation runs.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Score and impact histograms follow the domain bounds.
var (
	scoreBuckets  = prometheus.LinearBuckets(350, 50, 11)
	impactBuckets = prometheus.LinearBuckets(-50, 15, 6)
)

// Manager manages all Prometheus metrics for a generation run.
type Manager struct {
	namespace      string
	subsystem      string
	latencyBuckets []float64
	enabled        bool
	constLabels    map[string]string
	registry       *prometheus.Registry

	// Generation output
	customersProcessed prometheus.Counter
	scoreRecords       *prometheus.CounterVec
	riskCategories     *prometheus.CounterVec
	scoreValues        *prometheus.HistogramVec
	creditEvents       *prometheus.CounterVec
	eventImpact        prometheus.Histogram

	// Run timings
	customerLatency  prometheus.Histogram
	runDuration      prometheus.Gauge
	lastRunTimestamp prometheus.Gauge

	// Worker and queue state
	workerCount   prometheus.Gauge
	queueSize     prometheus.Gauge
	queueCapacity prometheus.Gauge
	queueEnqueued prometheus.Counter
	queueDequeued prometheus.Counter

	errors *prometheus.CounterVec
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
		namespace:      "creditgen",
		subsystem:      "synth",
		latencyBuckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
		enabled:        true,
		constLabels:    make(map[string]string),
		registry:       prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.customersProcessed = auto.NewCounter(m.counterOpts("customers_processed_total", "Total number of customers scored"))
	m.scoreRecords = auto.NewCounterVec(m.counterOpts("score_records_total", "Score records emitted by kind and bureau"), []string{"kind", "bureau"})
	m.riskCategories = auto.NewCounterVec(m.counterOpts("risk_category_total", "Score records emitted by kind and risk category"), []string{"kind", "category"})
	m.scoreValues = auto.NewHistogramVec(m.histogramOpts("score_value", "Distribution of emitted scores", scoreBuckets), []string{"kind"})
	m.creditEvents = auto.NewCounterVec(m.counterOpts("credit_events_total", "Credit events emitted by type"), []string{"event_type"})
	m.eventImpact = auto.NewHistogram(m.histogramOpts("credit_event_impact", "Distribution of credit event impact scores", impactBuckets))

	m.customerLatency = auto.NewHistogram(m.histogramOpts("customer_latency_milliseconds", "Time spent generating one customer's records", m.latencyBuckets))
	m.runDuration = auto.NewGauge(m.gaugeOpts("run_duration_seconds", "Wall time of the last generation run"))
	m.lastRunTimestamp = auto.NewGauge(m.gaugeOpts("last_run_timestamp_seconds", "Unix time the last generation run finished"))

	m.workerCount = auto.NewGauge(m.gaugeOpts("worker_count", "Workers used by the current run"))
	m.queueSize = auto.NewGauge(m.gaugeOpts("queue_size", "Jobs waiting in the generation queue"))
	m.queueCapacity = auto.NewGauge(m.gaugeOpts("queue_capacity", "Capacity of the generation queue"))
	m.queueEnqueued = auto.NewCounter(m.counterOpts("queue_enqueued_total", "Jobs enqueued"))
	m.queueDequeued = auto.NewCounter(m.counterOpts("queue_dequeued_total", "Jobs dequeued"))

	m.errors = auto.NewCounterVec(m.counterOpts("errors_total", "Errors by component and type"), []string{"component", "type"})
}

// Registry returns the registry the manager's metrics live on.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// RecordCustomer counts one scored customer and its latency.
func (m *Manager) RecordCustomer(latencyMs float64) {
	if !m.enabled {
		return
	}
	m.customersProcessed.Inc()
	m.customerLatency.Observe(latencyMs)
}

// RecordScore counts one emitted score record.
func (m *Manager) RecordScore(kind, bureau, category string, score int) {
	if !m.enabled {
		return
	}
	m.scoreRecords.WithLabelValues(kind, bureau).Inc()
	m.riskCategories.WithLabelValues(kind, category).Inc()
	m.scoreValues.WithLabelValues(kind).Observe(float64(score))
}

// RecordCreditEvent counts one emitted credit event.
func (m *Manager) RecordCreditEvent(eventType string, impact int) {
	if !m.enabled {
		return
	}
	m.creditEvents.WithLabelValues(eventType).Inc()
	m.eventImpact.Observe(float64(impact))
}

// RecordRun stores the run's wall time and completion time.
func (m *Manager) RecordRun(durationSeconds float64, finishedUnix int64) {
	if !m.enabled {
		return
	}
	m.runDuration.Set(durationSeconds)
	m.lastRunTimestamp.Set(float64(finishedUnix))
}

// RecordError counts an error for a component.
func (m *Manager) RecordError(component, errorType string) {
	if !m.enabled {
		return
	}
	m.errors.WithLabelValues(component, errorType).Inc()
}

// WriteTextfile writes every metric in the text exposition format, for the
// node exporter textfile collector.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: textfile %s: %w", ErrExportFailed, path, err)
	}
	return nil
}

// RecordCustomer counts one scored customer on the global manager.
func RecordCustomer(latencyMs float64) { globalManager.RecordCustomer(latencyMs) }

// RecordScore counts one emitted score record on the global manager.
func RecordScore(kind, bureau, category string, score int) {
	globalManager.RecordScore(kind, bureau, category, score)
}

// RecordCreditEvent counts one emitted credit event on the global manager.
func RecordCreditEvent(eventType string, impact int) {
	globalManager.RecordCreditEvent(eventType, impact)
}

// RecordRun stores run timings on the global manager.
func RecordRun(durationSeconds float64, finishedUnix int64) {
	globalManager.RecordRun(durationSeconds, finishedUnix)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.RecordError(component, errorType)
}

// UpdateWorkerCount sets the current worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueued.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	globalManager.queueDequeued.Inc()
}

// WriteTextfile writes the global registry to path.
func WriteTextfile(path string) error {
	return globalManager.WriteTextfile(path)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
