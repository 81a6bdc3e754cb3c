/*
Package monitoring provides Prometheus metrics for browsing sessions.

# Overview

Metrics track every request hop a browser sends: counts by method and
status, latency, response sizes, redirects followed and transport failures.
A snapshot of running totals is kept alongside for quick summaries.

# Usage

	// Register on a caller-owned registry
	reg := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(reg)

	// Time a hop
	timer := monitoring.NewTimer(metrics, "GET")
	// ... perform request ...
	timer.Stop(200, len(body))

	// Hand to a browser
	b, err := browser.New(browser.WithMetrics(metrics))

# Metrics Endpoint

Expose metrics via the standard Prometheus handler:

	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
*/
package monitoring
