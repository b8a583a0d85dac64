package oidcbearer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ReasonOK labels successful authentications.
const ReasonOK = "ok"

// Metrics records the outcome of every authenticated request.
type Metrics interface {
	// ObserveAuthentication is called with the core.Reason of a failure, or
	// an empty reason on success.
	ObserveAuthentication(reason string, duration time.Duration)
}

// NoopMetrics is a default metrics implementation that does nothing.
type NoopMetrics struct{}

func (NoopMetrics) ObserveAuthentication(string, time.Duration) {}

// PrometheusMetrics implements the Metrics interface using Prometheus.
type PrometheusMetrics struct {
	total    *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewPrometheusMetrics registers the authentication metrics on reg:
//
//	oidc_bearer_auth_total{reason}       counter, reason is "ok" on success
//	oidc_bearer_auth_duration_seconds    histogram
func NewPrometheusMetrics(reg prometheus.Registerer) (*PrometheusMetrics, error) {
	m := &PrometheusMetrics{
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "oidc_bearer_auth_total",
			Help: "Bearer token authentications by outcome.",
		}, []string{"reason"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "oidc_bearer_auth_duration_seconds",
			Help:    "Time spent authenticating a bearer token.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}

	for _, c := range []prometheus.Collector{m.total, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *PrometheusMetrics) ObserveAuthentication(reason string, duration time.Duration) {
	if reason == "" {
		reason = ReasonOK
	}
	m.total.WithLabelValues(reason).Inc()
	m.duration.Observe(duration.Seconds())
}
