package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/zephyrtronium/scicalc"
)

// Collector records evaluation outcomes as Prometheus metrics. It implements
// scicalc.Observer.
type Collector struct {
	evaluations *prometheus.CounterVec
	duration    prometheus.Histogram
}

// New creates a collector and registers its metrics with reg.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scicalc_evaluations_total",
				Help: "Total number of evaluations by outcome",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "scicalc_evaluation_duration_seconds",
				Help:    "Duration of evaluations",
				Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
			},
		),
	}
	reg.MustRegister(c.evaluations, c.duration)
	return c
}

// Observe records one evaluation.
func (c *Collector) Observe(kind scicalc.ErrorKind, d time.Duration) {
	c.evaluations.WithLabelValues(Outcome(kind)).Inc()
	c.duration.Observe(d.Seconds())
}

// Outcome is the label value for an evaluation that ended with an error of the
// given kind.
func Outcome(kind scicalc.ErrorKind) string {
	if kind == scicalc.KindNone {
		return "ok"
	}
	return kind.String()
}

var _ scicalc.Observer = (*Collector)(nil)
