package httpapi

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CountFunc reports the store's counters at collection time.
type CountFunc func() (total, completed int)

type Metrics struct {
	Requests    *prometheus.CounterVec
	TodosActive prometheus.GaugeFunc
	TodosDone   prometheus.GaugeFunc
}

func NewMetrics(reg prometheus.Registerer, counts CountFunc) *Metrics {
	todoGauge := func(state string, value func(total, completed int) int) prometheus.GaugeFunc {
		return prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name:        "todolist_todos",
				Help:        "Todos held by the store",
				ConstLabels: prometheus.Labels{"state": state},
			},
			func() float64 { return float64(value(counts())) },
		)
	}
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "todolist_http_requests_total",
				Help: "API requests by route and status",
			},
			[]string{"method", "route", "status"},
		),
		TodosActive: todoGauge("active", func(total, completed int) int { return total - completed }),
		TodosDone:   todoGauge("done", func(_, completed int) int { return completed }),
	}
	if reg != nil {
		reg.MustRegister(m.Requests, m.TodosActive, m.TodosDone)
	}
	return m
}
