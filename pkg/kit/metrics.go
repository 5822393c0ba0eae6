package kit

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const (
	labelOp      = "op"
	labelOutcome = "outcome"
)

type Metrics struct {
	Registry   *prometheus.Registry
	Operations *prometheus.CounterVec
	Duration   *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_operations_total",
				Help: "Total catalog operations",
			},
			[]string{labelOp, labelOutcome},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "catalog_operation_duration_seconds",
				Help: "Catalog operation latency",
			},
			[]string{labelOp},
		),
	}

	reg.MustRegister(m.Operations, m.Duration)
	return m
}

func (m *Metrics) Observe(op, outcome string, d time.Duration) {
	m.Duration.WithLabelValues(op).Observe(d.Seconds())
	m.Operations.WithLabelValues(op, outcome).Inc()
}

// Dump writes the text exposition of every registered metric. The tool has
// no listener to scrape, so this is the shutdown summary instead.
func (m *Metrics) Dump(w io.Writer) error {
	mfs, err := m.Registry.Gather()
	if err != nil {
		return err
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
