// Package metrics exposes Prometheus collectors for the honeypot.
// Collectors are registered at package load; the HTTP endpoint is
// optional and only started when a listen address is configured.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "telnetlog_connections_active",
		Help: "Currently open peer connections",
	})
	ConnectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "telnetlog_connections_total",
		Help: "Accepted peer connections",
	})
	CredentialsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "telnetlog_credentials_total",
		Help: "Credential pairs reported to the sinks",
	})
	CredentialsSuppressed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "telnetlog_credentials_suppressed_total",
		Help: "Credential pairs dropped as benign client artifacts",
	})
	SessionErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "telnetlog_session_errors_total",
		Help: "Sessions ended by an error, by kind",
	}, []string{"kind"})
	SinkErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "telnetlog_sink_errors_total",
		Help: "Reporting sink write failures, by sink",
	}, []string{"sink"})
	SessionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "telnetlog_session_duration_seconds",
		Help:    "Connection lifetime in seconds",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
	})
)
