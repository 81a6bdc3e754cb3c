package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ResponseSize    prometheus.Histogram
	RedirectsTotal  prometheus.Counter
	TransportErrors *prometheus.CounterVec

	// Snapshot for summaries - track current values
	snapshot MetricsSnapshot

	mu sync.RWMutex
}

// MetricsSnapshot holds running totals
type MetricsSnapshot struct {
	TotalRequests   int64
	TotalErrors     int64 // status >= 400
	TransportErrors int64
	Redirects       int64
	TotalBytes      int64
	TotalDuration   float64 // sum of all request durations
}

// NewMetrics creates a metrics collector registered on reg. A nil reg
// uses the default Prometheus registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "browsing_requests_total",
				Help: "Total number of request hops sent",
			},
			[]string{"method", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "browsing_request_duration_seconds",
				Help:    "Request hop duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method"},
		),
		ResponseSize: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "browsing_response_size_bytes",
				Help:    "Response body size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
		),
		RedirectsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "browsing_redirects_total",
				Help: "Total number of redirects followed",
			},
		),
		TransportErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "browsing_transport_errors_total",
				Help: "Request hops that failed without a response",
			},
			[]string{"method"},
		),
	}
}

// RecordRequest records one completed hop
func (m *Metrics) RecordRequest(method string, status int, duration time.Duration, size int) {
	m.RequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method).Observe(duration.Seconds())
	m.ResponseSize.Observe(float64(size))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.TotalDuration += duration.Seconds()
	m.snapshot.TotalBytes += int64(size)
	if status >= 400 {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordRedirect counts a followed redirect
func (m *Metrics) RecordRedirect() {
	m.RedirectsTotal.Inc()

	m.mu.Lock()
	m.snapshot.Redirects++
	m.mu.Unlock()
}

// RecordTransportError counts a hop that ended without a response
func (m *Metrics) RecordTransportError(method string) {
	m.TransportErrors.WithLabelValues(method).Inc()

	m.mu.Lock()
	m.snapshot.TransportErrors++
	m.mu.Unlock()
}

// Snapshot returns a copy of the running totals
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}

// AverageDuration returns the mean hop duration
func (s MetricsSnapshot) AverageDuration() time.Duration {
	if s.TotalRequests == 0 {
		return 0
	}
	return time.Duration(s.TotalDuration / float64(s.TotalRequests) * float64(time.Second))
}
