package remp

import (
	"context"
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "remp_client"

// PrometheusMetrics exports request counters and latencies through Prometheus.
type PrometheusMetrics struct {
	requests *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewPrometheusMetrics creates the collectors and registers them with reg.
func NewPrometheusMetrics(reg prometheus.Registerer) (*PrometheusMetrics, error) {
	m := &PrometheusMetrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "requests_total",
				Help:      "Completed CRM API requests by method, path and status code.",
			},
			[]string{"method", "path", "code"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "transport_failures_total",
				Help:      "CRM API requests that failed before a status code was received.",
			},
			[]string{"method", "path"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "request_duration_seconds",
				Help:      "CRM API request latency.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}

	for _, collector := range []prometheus.Collector{m.requests, m.failures, m.duration} {
		err := reg.Register(collector)
		if err != nil {
			return nil, fmt.Errorf("registering metrics: %w", err)
		}
	}

	return m, nil
}

// Attach installs the metrics interceptors on chain.
func (m *PrometheusMetrics) Attach(chain *InterceptorChain) {
	chain.AddRequestInterceptor(m.RequestInterceptor())
	chain.AddResponseInterceptor(m.ResponseInterceptor())
}

// RequestInterceptor records the request start time.
func (m *PrometheusMetrics) RequestInterceptor() RequestInterceptor {
	return markStartTime
}

// ResponseInterceptor observes the outcome of a request.
func (m *PrometheusMetrics) ResponseInterceptor() ResponseInterceptor {
	return func(ctx context.Context, req *Request, resp *Response) error {
		if latency, ok := elapsed(req); ok {
			m.duration.WithLabelValues(req.Method, req.Path).Observe(latency.Seconds())
		}

		if resp.StatusCode == 0 {
			m.failures.WithLabelValues(req.Method, req.Path).Inc()

			return nil
		}

		m.requests.WithLabelValues(req.Method, req.Path, strconv.Itoa(resp.StatusCode)).Inc()

		return nil
	}
}
