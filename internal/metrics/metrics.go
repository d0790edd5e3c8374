package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Transport metrics
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "credprobe_requests_total",
			Help: "Total number of API requests by method and status class",
		},
		[]string{"method", "status"},
	)

	RetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "credprobe_retries_total",
			Help: "Total number of request retries after 5xx or connection failure",
		},
	)

	RateLimitWaitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "credprobe_rate_limit_waits_total",
			Help: "Number of times the transport paused for a rate limit reset",
		},
	)

	RateLimitWaitSeconds = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "credprobe_rate_limit_wait_seconds_total",
			Help: "Cumulative seconds spent waiting on rate limit resets",
		},
	)

	// Engine metrics
	ProbesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "credprobe_probes_total",
			Help: "Permission probes executed by verdict",
		},
		[]string{"verdict"}, // granted, denied, failed, ambiguous
	)

	NodesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "credprobe_nodes_total",
			Help: "Enumeration nodes finished by terminal status",
		},
		[]string{"kind", "status"},
	)
)
