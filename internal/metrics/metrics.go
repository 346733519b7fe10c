// Package metrics defines Prometheus metrics for promptshape.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tinkerloft/promptshape/internal/model"
)

// Metrics holds all registered Prometheus collectors.
type Metrics struct {
	DispatchTotal      *prometheus.CounterVec
	RetrievalResults   prometheus.Histogram
	GenerationDuration *prometheus.HistogramVec
	GenerationTotal    *prometheus.CounterVec
}

// Register creates the metrics and registers them with the given registry.
func Register(reg prometheus.Registerer) (*Metrics, error) {
	m := New()
	if err := RegisterWith(reg, m); err != nil {
		return nil, err
	}
	return m, nil
}

// RegisterWith registers a pre-built Metrics instance with the given registry.
func RegisterWith(reg prometheus.Registerer, m *Metrics) error {
	collectors := []prometheus.Collector{
		m.DispatchTotal,
		m.RetrievalResults,
		m.GenerationDuration,
		m.GenerationTotal,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// New creates uninitialised metric instances.
func New() *Metrics {
	return &Metrics{
		DispatchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "promptshape_dispatch_total",
				Help: "Total number of conversations shaped, by resolved strategy and whether the identifier fell back.",
			},
			[]string{"strategy", "fallback"},
		),
		RetrievalResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "promptshape_retrieval_results",
			Help:    "Number of knowledge entries injected into RAG conversations.",
			Buckets: []float64{0, 1, 2, 3, 5, 10},
		}),
		GenerationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "promptshape_generation_duration_seconds",
				Help:    "Duration of generation provider calls in seconds.",
				Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"provider", "result"},
		),
		GenerationTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "promptshape_generation_total",
				Help: "Total number of generation provider calls by provider and result.",
			},
			[]string{"provider", "result"},
		),
	}
}

// ObserveDispatch records a dispatch outcome. It satisfies prompt.Observer.
func (m *Metrics) ObserveDispatch(strategy model.Strategy, fallback bool, retrieved int) {
	m.DispatchTotal.WithLabelValues(string(strategy), strconv.FormatBool(fallback)).Inc()
	if strategy == model.StrategyRAG {
		m.RetrievalResults.Observe(float64(retrieved))
	}
}
