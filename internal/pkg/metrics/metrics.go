package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the punch subsystem.
type Metrics struct {
	// Punch outcomes by direction ("in"/"out") and result ("ok"/"rejected"/"error")
	PunchOutcome *prometheus.CounterVec

	// RecordPunch latency including the serialized critical section
	RecordPunchLatency prometheus.Histogram

	// Failed credential resolutions
	AuthFailures prometheus.Counter
}

// New creates a Metrics instance with all collectors registered on the default
// registry.
func New() *Metrics {
	return &Metrics{
		PunchOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "crm_punch_outcomes_total",
			Help: "Total punch outcomes by direction and result",
		}, []string{"direction", "result"}),

		RecordPunchLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "crm_punch_record_duration_seconds",
			Help:    "Duration of RecordPunch calls",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),

		AuthFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "crm_auth_failures_total",
			Help: "Total failed credential resolutions",
		}),
	}
}

// IncrementPunch records a punch outcome.
func (m *Metrics) IncrementPunch(direction, result string) {
	if m != nil {
		m.PunchOutcome.WithLabelValues(direction, result).Inc()
	}
}

// ObserveRecordPunch records the duration of a RecordPunch call.
func (m *Metrics) ObserveRecordPunch(d time.Duration) {
	if m != nil {
		m.RecordPunchLatency.Observe(d.Seconds())
	}
}

// IncrementAuthFailure records a failed credential resolution.
func (m *Metrics) IncrementAuthFailure() {
	if m != nil {
		m.AuthFailures.Inc()
	}
}
