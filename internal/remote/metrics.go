package remote

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// Metrics is safe to leave nil; a nil *Metrics records nothing.
type Metrics struct {
	Fetches   *prometheus.CounterVec
	Duration  prometheus.Histogram
	LastCount prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Fetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "todolist_remote_fetches_total",
				Help: "Remote listing fetches by outcome",
			},
			[]string{"outcome"},
		),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "todolist_remote_fetch_duration_seconds",
			Help:    "Remote listing fetch latency",
			Buckets: prometheus.DefBuckets,
		}),
		LastCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "todolist_remote_last_fetch_records",
			Help: "Records returned by the last successful fetch",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Fetches, m.Duration, m.LastCount)
	}
	return m
}

func (m *Metrics) observe(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Fetches.WithLabelValues(outcome).Inc()
	m.Duration.Observe(elapsed.Seconds())
}

func (m *Metrics) setLastCount(n int) {
	if m == nil {
		return
	}
	m.LastCount.Set(float64(n))
}
