package monitoring

import "time"

// Timer measures one request hop
type Timer struct {
	start   time.Time
	metrics *Metrics
	method  string
}

// NewTimer creates a new timer; a nil metrics makes Stop a no-op
func NewTimer(metrics *Metrics, method string) *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: metrics,
		method:  method,
	}
}

// Stop stops the timer and records the hop
func (t *Timer) Stop(status int, size int) {
	if t.metrics == nil {
		return
	}
	t.metrics.RecordRequest(t.method, status, time.Since(t.start), size)
}

// Fail records a hop that ended without a response
func (t *Timer) Fail() {
	if t.metrics == nil {
		return
	}
	t.metrics.RecordTransportError(t.method)
}
