// Package metrics exposes Prometheus metrics for detection scans, snapshot
// ingestion and the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/XavierBriggs/fortuna/services/betedge/pkg/models"
)

// Manager owns the service's metrics and the registry they live on.
// A nil *Manager is valid and records nothing.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	// Detection
	scans              *prometheus.CounterVec
	opportunitiesFound *prometheus.CounterVec
	scanDuration       *prometheus.HistogramVec
	eventsScanned      *prometheus.CounterVec

	// Ingestion
	fetches        *prometheus.CounterVec
	fetchDuration  *prometheus.HistogramVec
	droppedQuotes  prometheus.Counter
	cacheLookups   *prometheus.CounterVec
	quotaRemaining prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithHistogramBuckets sets custom histogram buckets for latency metrics (seconds).
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = buckets
		}
	}
}

// WithRegistry registers metrics on the given registry instead of a fresh one.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}

// NewManager creates a metrics manager on its own registry
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "betedge",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.scans = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "detector",
		Name:      "scans_total",
		Help:      "Detection scans run, by opportunity type",
	}, []string{"type"})

	m.opportunitiesFound = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "detector",
		Name:      "opportunities_found_total",
		Help:      "Opportunities produced by detection scans, by opportunity type",
	}, []string{"type"})

	m.eventsScanned = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "detector",
		Name:      "events_scanned_total",
		Help:      "Events passed through detection, by opportunity type",
	}, []string{"type"})

	m.scanDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "detector",
		Name:      "scan_duration_seconds",
		Help:      "Time spent grouping, detecting and ranking a snapshot",
		Buckets:   m.histogramBuckets,
	}, []string{"type"})

	m.fetches = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "ingest",
		Name:      "fetches_total",
		Help:      "Per-sport snapshot fetches, by sport and result",
	}, []string{"sport", "result"})

	m.fetchDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "ingest",
		Name:      "fetch_duration_seconds",
		Help:      "Per-sport snapshot fetch latency",
		Buckets:   m.histogramBuckets,
	}, []string{"sport"})

	m.droppedQuotes = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "ingest",
		Name:      "dropped_quotes_total",
		Help:      "Outcome quotes rejected by validation (price <= 1.0)",
	})

	m.cacheLookups = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "cache",
		Name:      "lookups_total",
		Help:      "Snapshot cache lookups, by result (hit, miss, error)",
	}, []string{"result"})

	m.quotaRemaining = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "oddsapi",
		Name:      "requests_remaining",
		Help:      "Remaining odds provider request quota as last reported",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route, method and status code",
	}, []string{"route", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request duration by route and method",
		Buckets:   m.histogramBuckets,
	}, []string{"route", "method"})
}

// Registry returns the registry the metrics are registered on
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in Prometheus exposition format
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveScan records one detection scan
func (m *Manager) ObserveScan(kind models.OpportunityType, events, found int, elapsed time.Duration) {
	if m == nil {
		return
	}
	label := string(kind)
	m.scans.WithLabelValues(label).Inc()
	m.eventsScanned.WithLabelValues(label).Add(float64(events))
	m.opportunitiesFound.WithLabelValues(label).Add(float64(found))
	m.scanDuration.WithLabelValues(label).Observe(elapsed.Seconds())
}

// ObserveFetch records one per-sport snapshot fetch
func (m *Manager) ObserveFetch(sport string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.fetches.WithLabelValues(sport, result).Inc()
	m.fetchDuration.WithLabelValues(sport).Observe(elapsed.Seconds())
}

// AddDroppedQuotes counts quotes rejected by validation
func (m *Manager) AddDroppedQuotes(n int) {
	if m == nil || n == 0 {
		return
	}
	m.droppedQuotes.Add(float64(n))
}

// ObserveCacheLookup records a cache hit, miss or error
func (m *Manager) ObserveCacheLookup(result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// SetQuotaRemaining records the provider's remaining request quota
func (m *Manager) SetQuotaRemaining(remaining int) {
	if m == nil {
		return
	}
	m.quotaRemaining.Set(float64(remaining))
}

// ObserveHTTPRequest records one served HTTP request
func (m *Manager) ObserveHTTPRequest(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}
