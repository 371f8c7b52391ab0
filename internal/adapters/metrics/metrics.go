package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rafaelleal24/cart/internal/core/port"
)

const (
	labelOperation = "operation"
	labelOutcome   = "outcome"
)

type Metrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	latency    *prometheus.HistogramVec
}

func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: reg,
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cart_operations_total",
				Help: "Cart operations by outcome",
			},
			[]string{labelOperation, labelOutcome},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cart_operation_duration_seconds",
				Help:    "Cart operation latency, remote lookups included",
				Buckets: prometheus.DefBuckets,
			},
			[]string{labelOperation},
		),
	}

	reg.MustRegister(m.operations, m.latency)
	return m
}

var _ port.MetricsPort = (*Metrics)(nil)

func (m *Metrics) ObserveOperation(operation, outcome string, elapsed time.Duration) {
	m.operations.WithLabelValues(operation, outcome).Inc()
	m.latency.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
