package metrics

import (
	"context"
	"time"

	"github.com/tinkerloft/promptshape/internal/generate"
	"github.com/tinkerloft/promptshape/internal/model"
)

// InstrumentedGenerator wraps a Generator and records duration and outcome
// metrics for every call.
type InstrumentedGenerator struct {
	next generate.Generator
	m    *Metrics
}

// Instrument wraps next with metrics recording.
func Instrument(next generate.Generator, m *Metrics) *InstrumentedGenerator {
	return &InstrumentedGenerator{next: next, m: m}
}

// Provider implements generate.Generator.
func (g *InstrumentedGenerator) Provider() string {
	return g.next.Provider()
}

// Generate implements generate.Generator.
func (g *InstrumentedGenerator) Generate(ctx context.Context, conv model.Conversation) (string, error) {
	start := time.Now()

	answer, err := g.next.Generate(ctx, conv)

	duration := time.Since(start).Seconds()
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}

	provider := g.next.Provider()
	g.m.GenerationDuration.WithLabelValues(provider, outcome).Observe(duration)
	g.m.GenerationTotal.WithLabelValues(provider, outcome).Inc()

	return answer, err
}
