// Package metrics exposes Prometheus collectors for link resolution and settings reloads.
//
// Metrics are served at /metrics in Prometheus text format.
//
//   - stashlink_resolutions_total: resolution attempts
//     Labels: provider, format (identifier format), outcome (resolved, unsupported, unresolved)
//   - stashlink_settings_reloads_total: settings reloads
//     Labels: source (file, redis, defaults), result (success, error)
//   - stashlink_custom_endpoints: custom endpoints registered by the current settings
//   - stashlink_rate_limited_total: requests rejected by the rate limiter
//   - stashlink_http_requests_total: HTTP requests
//     Labels: method, route, status
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resolution outcomes.
const (
	OutcomeResolved    = "resolved"
	OutcomeUnsupported = "unsupported"
	OutcomeUnresolved  = "unresolved"
)

var (
	Resolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stashlink_resolutions_total",
			Help: "Link resolution attempts by provider, identifier format and outcome",
		},
		[]string{"provider", "format", "outcome"},
	)

	SettingsReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stashlink_settings_reloads_total",
			Help: "Settings reloads by source and result",
		},
		[]string{"source", "result"},
	)

	CustomEndpoints = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stashlink_custom_endpoints",
			Help: "Custom Stash-Box endpoints registered by the current settings",
		},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stashlink_rate_limited_total",
			Help: "Resolution requests rejected by the per-client rate limit",
		},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stashlink_http_requests_total",
			Help: "HTTP requests by method, route pattern and status",
		},
		[]string{"method", "route", "status"},
	)
)

// RecordResolution counts one resolution attempt.
func RecordResolution(provider, format, outcome string) {
	Resolutions.WithLabelValues(provider, format, outcome).Inc()
}

// RecordReload counts one settings reload.
func RecordReload(source string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	SettingsReloads.WithLabelValues(source, result).Inc()
}

// RecordHTTPRequest counts one served HTTP request.
func RecordHTTPRequest(method, route string, status int) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
