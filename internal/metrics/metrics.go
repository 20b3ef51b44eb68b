// Package metrics holds the Prometheus collectors shared by the client core
// and the reference service. Every method is safe to call on a nil *Metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "arbor"

// Cache lookup results
const (
	ResultHit    = "hit"
	ResultMiss   = "miss"
	ResultStale  = "stale"
	ResultForced = "forced"
)

// Metrics tracks cache, task and request statistics
type Metrics struct {
	cacheLookups       *prometheus.CounterVec
	cacheFetchErrors   *prometheus.CounterVec
	cacheInvalidations *prometheus.CounterVec
	tasks              *prometheus.CounterVec
	queueDepth         prometheus.Gauge
	requests           *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
// A nil reg leaves the collectors unregistered, which is what tests want.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Cache lookups by entity kind and result.",
		}, []string{"kind", "result"}),
		cacheFetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "fetch_errors_total",
			Help:      "Failed fetches that left the cache untouched.",
		}, []string{"kind"}),
		cacheInvalidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "invalidations_total",
			Help:      "Cache entries removed by mutations or manual refresh.",
		}, []string{"kind"}),
		tasks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tasks",
			Name:      "completed_total",
			Help:      "Background tasks by name and outcome.",
		}, []string{"task", "outcome"}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "tasks",
			Name:      "queue_depth",
			Help:      "Tasks waiting for a worker.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "soap",
			Name:      "requests_total",
			Help:      "SOAP requests by operation and outcome.",
		}, []string{"operation", "outcome"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "soap",
			Name:      "request_duration_seconds",
			Help:      "SOAP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.cacheLookups,
			m.cacheFetchErrors,
			m.cacheInvalidations,
			m.tasks,
			m.queueDepth,
			m.requests,
			m.requestDuration,
		)
	}
	return m
}

// IncCacheLookup counts one cache lookup
func (m *Metrics) IncCacheLookup(kind, result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(kind, result).Inc()
}

// IncCacheFetchError counts one failed fetch
func (m *Metrics) IncCacheFetchError(kind string) {
	if m == nil {
		return
	}
	m.cacheFetchErrors.WithLabelValues(kind).Inc()
}

// IncCacheInvalidation counts one removed entry
func (m *Metrics) IncCacheInvalidation(kind string) {
	if m == nil {
		return
	}
	m.cacheInvalidations.WithLabelValues(kind).Inc()
}

// ObserveTask counts one finished background task
func (m *Metrics) ObserveTask(task string, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.tasks.WithLabelValues(task, outcome).Inc()
}

// SetQueueDepth records how many tasks are waiting
func (m *Metrics) SetQueueDepth(n int) {
	if m == nil {
		return
	}
	m.queueDepth.Set(float64(n))
}

// ObserveRequest records one handled SOAP request
func (m *Metrics) ObserveRequest(operation, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(operation, outcome).Inc()
	m.requestDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}
