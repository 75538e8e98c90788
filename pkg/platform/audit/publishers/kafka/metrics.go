package kafka

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks delivery of audit events to Kafka.
type Metrics struct {
	Published      prometheus.Counter
	Failures       prometheus.Counter
	Dropped        prometheus.Counter
	CircuitBreaker prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		Published: factory.NewCounter(prometheus.CounterOpts{
			Name: "ocdm_audit_kafka_published_total",
			Help: "Audit events acknowledged by Kafka",
		}),
		Failures: factory.NewCounter(prometheus.CounterOpts{
			Name: "ocdm_audit_kafka_failures_total",
			Help: "Audit events Kafka failed to acknowledge",
		}),
		Dropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "ocdm_audit_kafka_dropped_total",
			Help: "Audit events dropped while the circuit breaker was open",
		}),
		CircuitBreaker: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ocdm_audit_kafka_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=open)",
		}),
	}
}

func (m *Metrics) incPublished() {
	if m != nil {
		m.Published.Inc()
	}
}

func (m *Metrics) incFailures() {
	if m != nil {
		m.Failures.Inc()
	}
}

func (m *Metrics) incDropped() {
	if m != nil {
		m.Dropped.Inc()
	}
}

func (m *Metrics) setCircuitOpen(open bool) {
	if m == nil {
		return
	}
	if open {
		m.CircuitBreaker.Set(1)
		return
	}
	m.CircuitBreaker.Set(0)
}
