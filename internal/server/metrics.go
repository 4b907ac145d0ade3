package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lapse_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lapse_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Stopwatch operation metrics
	stopwatchOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lapse_stopwatch_ops_total",
			Help: "Total number of stopwatch operations",
		},
		[]string{"op", "status"}, // op: create, start, lap, stop, reset
	)

	lapDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lapse_lap_duration_seconds",
			Help:    "Recorded lap durations in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10, 60},
		},
	)

	registeredStopwatches = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lapse_registered_stopwatches",
			Help: "Number of registered stopwatches",
		},
	)

	// WebSocket metrics
	websocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lapse_websocket_active_connections",
			Help: "Number of active WebSocket connections",
		},
	)
)
