// Package metrics provides Prometheus metrics for the rating pipeline
// and the source-data fetcher.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager registers and owns all pipeline metrics.
type Manager struct {
	namespace      string
	registry       *prometheus.Registry
	latencyBuckets []float64

	// Ingestion
	ticksRead      prometheus.Counter
	malformedLines prometheus.Counter
	duplicateTicks prometheus.Counter
	ticksDropped   *prometheus.CounterVec

	// Rating pipeline
	batchesApplied  prometheus.Counter
	comparisons     prometheus.Counter
	batchSize       prometheus.Histogram
	climbersTracked prometheus.Gauge
	routesTracked   prometheus.Gauge

	// Fetcher
	fetchRequests prometheus.Counter
	fetchErrors   prometheus.Counter
	fetchLatency  prometheus.Histogram
}

// globalManager backs the package-level helpers.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager()
}

// NewManager creates a metrics manager on its own registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:      "cragrank",
		registry:       prometheus.NewRegistry(),
		latencyBuckets: prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.register()
	return m
}

func (m *Manager) register() {
	factory := func(name, help string) prometheus.Counter {
		c := prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: m.namespace, Name: name, Help: help,
		})
		m.registry.MustRegister(c)
		return c
	}

	m.ticksRead = factory("ticks_read_total", "Tick records decoded from the input log.")
	m.malformedLines = factory("malformed_lines_total", "Input lines skipped because they failed to decode.")
	m.duplicateTicks = factory("duplicate_ticks_total", "Tick rows suppressed by ingest deduplication.")
	m.batchesApplied = factory("batches_applied_total", "Same-day batches applied to the rating engine.")
	m.comparisons = factory("comparisons_total", "Climber-versus-route comparisons fed to the engine.")
	m.fetchRequests = factory("fetch_requests_total", "HTTP requests issued by the source-data fetcher.")
	m.fetchErrors = factory("fetch_errors_total", "Failed fetch requests.")

	m.ticksDropped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "ticks_dropped_total",
		Help:      "Ticks excluded by eligibility filtering, by reason.",
	}, []string{"reason"})
	m.registry.MustRegister(m.ticksDropped)

	m.batchSize = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "batch_size",
		Help:      "Comparisons per same-day batch.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	})
	m.registry.MustRegister(m.batchSize)

	m.climbersTracked = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "climbers_tracked",
		Help:      "Climbers with at least one rated comparison.",
	})
	m.routesTracked = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "routes_tracked",
		Help:      "Routes with at least one rated comparison.",
	})
	m.registry.MustRegister(m.climbersTracked, m.routesTracked)

	m.fetchLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "fetch_page_latency_seconds",
		Help:      "Latency of fetched API pages.",
		Buckets:   m.latencyBuckets,
	})
	m.registry.MustRegister(m.fetchLatency)
}

// Handler serves this manager's registry in the Prometheus exposition
// format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Package-level helpers against the global manager.

func RecordTicksRead(n int)   { globalManager.ticksRead.Add(float64(n)) }
func RecordMalformedLine()    { globalManager.malformedLines.Inc() }
func RecordDuplicateTick()    { globalManager.duplicateTicks.Inc() }
func RecordComparisons(n int) { globalManager.comparisons.Add(float64(n)) }
func RecordFetchRequest()     { globalManager.fetchRequests.Inc() }
func RecordFetchError()       { globalManager.fetchErrors.Inc() }

func ObserveFetchLatency(s float64) { globalManager.fetchLatency.Observe(s) }

// RecordTicksDropped adds n drops under the given reason label.
func RecordTicksDropped(reason string, n int) {
	if n > 0 {
		globalManager.ticksDropped.WithLabelValues(reason).Add(float64(n))
	}
}

// RecordBatchApplied counts one applied batch of the given size.
func RecordBatchApplied(size int) {
	globalManager.batchesApplied.Inc()
	globalManager.batchSize.Observe(float64(size))
}

// UpdatePopulations sets the tracked-entity gauges.
func UpdatePopulations(climbers, routes int) {
	globalManager.climbersTracked.Set(float64(climbers))
	globalManager.routesTracked.Set(float64(routes))
}

// Handler serves the global registry.
func Handler() http.Handler { return globalManager.Handler() }
