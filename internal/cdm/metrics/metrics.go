package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Wait outcomes recorded by ObserveWait.
const (
	WaitFound     = "found"
	WaitTimeout   = "timeout"
	WaitCancelled = "cancelled"
)

// Metrics holds the Prometheus collectors for the coordination layer.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	SessionsRegistered prometheus.Gauge
	SessionsDuplicate  prometheus.Counter
	SessionsDestroyed  prometheus.Counter
	SessionsOrphaned   prometheus.Counter
	Waiters            prometheus.Gauge
	WaitOutcomes       *prometheus.CounterVec
	WaitDuration       prometheus.Histogram
	DecryptResults     *prometheus.CounterVec
}

// New creates and registers all collectors with reg. A nil reg uses the
// default Prometheus registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		SessionsRegistered: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ocdm_sessions_registered",
			Help: "Number of sessions currently held by the registry",
		}),
		SessionsDuplicate: factory.NewCounter(prometheus.CounterOpts{
			Name: "ocdm_sessions_duplicate_total",
			Help: "Sessions rejected because their id was already registered",
		}),
		SessionsDestroyed: factory.NewCounter(prometheus.CounterOpts{
			Name: "ocdm_sessions_destroyed_total",
			Help: "Sessions released after their last reference was dropped",
		}),
		SessionsOrphaned: factory.NewCounter(prometheus.CounterOpts{
			Name: "ocdm_sessions_orphaned_total",
			Help: "Sessions still alive when their system was destructed",
		}),
		Waiters: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ocdm_key_waiters",
			Help: "Goroutines currently blocked waiting for a key status",
		}),
		WaitOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ocdm_key_wait_total",
			Help: "Key waits by outcome",
		}, []string{"outcome"}),
		WaitDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ocdm_key_wait_duration_ms",
			Help:    "Time spent in key waits in milliseconds",
			Buckets: []float64{0.1, 1, 5, 10, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		}),
		DecryptResults: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ocdm_decrypt_total",
			Help: "Decrypt calls by result code",
		}, []string{"result"}),
	}
}

func (m *Metrics) IncSessionsRegistered() {
	if m == nil {
		return
	}
	m.SessionsRegistered.Inc()
}

func (m *Metrics) DecSessionsRegistered() {
	if m == nil {
		return
	}
	m.SessionsRegistered.Dec()
}

func (m *Metrics) IncSessionsDuplicate() {
	if m == nil {
		return
	}
	m.SessionsDuplicate.Inc()
}

func (m *Metrics) IncSessionsDestroyed() {
	if m == nil {
		return
	}
	m.SessionsDestroyed.Inc()
}

func (m *Metrics) AddSessionsOrphaned(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.SessionsOrphaned.Add(float64(n))
}

func (m *Metrics) IncWaiters() {
	if m == nil {
		return
	}
	m.Waiters.Inc()
}

func (m *Metrics) DecWaiters() {
	if m == nil {
		return
	}
	m.Waiters.Dec()
}

// ObserveWait records the outcome and latency of one WaitForKey call.
func (m *Metrics) ObserveWait(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.WaitOutcomes.WithLabelValues(outcome).Inc()
	m.WaitDuration.Observe(float64(elapsed.Microseconds()) / 1000)
}

func (m *Metrics) ObserveDecrypt(result string) {
	if m == nil {
		return
	}
	m.DecryptResults.WithLabelValues(result).Inc()
}
