package metrics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinkerloft/promptshape/internal/metrics"
	"github.com/tinkerloft/promptshape/internal/model"
	"github.com/tinkerloft/promptshape/internal/prompt"
)

func TestRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.Register(reg)
	require.NoError(t, err)

	// Seed vec metrics so they appear in Gather()
	m.DispatchTotal.WithLabelValues("seed", "false").Add(0)
	m.GenerationDuration.WithLabelValues("seed", "success").Observe(0)
	m.GenerationTotal.WithLabelValues("seed", "success").Add(0)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	assert.True(t, names["promptshape_dispatch_total"])
	assert.True(t, names["promptshape_retrieval_results"])
	assert.True(t, names["promptshape_generation_duration_seconds"])
	assert.True(t, names["promptshape_generation_total"])
}

func TestRegister_Twice(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := metrics.Register(reg)
	require.NoError(t, err)
	_, err = metrics.Register(reg)
	assert.Error(t, err)
}

func TestObserveDispatch_ThroughDispatcher(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New()
	require.NoError(t, metrics.RegisterWith(reg, m))

	d := prompt.NewDispatcher(nil, prompt.WithObserver(m))
	d.Dispatch("Who is the main character in Naruto?", "RAG")
	d.Dispatch("x", "ZeroShot")
	d.Dispatch("x", "typo")

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.Equal(t, float64(1), findCounter(mfs, "promptshape_dispatch_total", "strategy", "RAG", "fallback", "false"))
	assert.Equal(t, float64(1), findCounter(mfs, "promptshape_dispatch_total", "strategy", "ZeroShot", "fallback", "false"))
	assert.Equal(t, float64(1), findCounter(mfs, "promptshape_dispatch_total", "strategy", "Default", "fallback", "true"))

	h := findHistogram(mfs, "promptshape_retrieval_results")
	require.NotNil(t, h)
	assert.Equal(t, uint64(1), h.GetSampleCount())
	assert.Equal(t, float64(2), h.GetSampleSum())
}

func TestInstrument_RecordsSuccess(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New()
	require.NoError(t, metrics.RegisterWith(reg, m))

	g := metrics.Instrument(&fakeGenerator{answer: "ok"}, m)
	answer, err := g.Generate(context.Background(), model.NewConversation("s", "u"))
	require.NoError(t, err)
	assert.Equal(t, "ok", answer)
	assert.Equal(t, "fake", g.Provider())

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.Equal(t, float64(1), findCounter(mfs, "promptshape_generation_total", "provider", "fake", "result", "success"))
}

func TestInstrument_RecordsFailure(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New()
	require.NoError(t, metrics.RegisterWith(reg, m))

	g := metrics.Instrument(&fakeGenerator{err: errors.New("boom")}, m)
	_, err := g.Generate(context.Background(), model.NewConversation("s", "u"))
	require.Error(t, err)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.Equal(t, float64(1), findCounter(mfs, "promptshape_generation_total", "provider", "fake", "result", "failure"))
}

// --- helpers ---

type fakeGenerator struct {
	answer string
	err    error
}

func (f *fakeGenerator) Generate(_ context.Context, _ model.Conversation) (string, error) {
	return f.answer, f.err
}

func (f *fakeGenerator) Provider() string { return "fake" }

func findCounter(mfs []*dto.MetricFamily, name string, labelPairs ...string) float64 {
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if matchLabels(m, labelPairs) {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func findHistogram(mfs []*dto.MetricFamily, name string) *dto.Histogram {
	for _, mf := range mfs {
		if mf.GetName() == name && len(mf.GetMetric()) > 0 {
			return mf.GetMetric()[0].GetHistogram()
		}
	}
	return nil
}

func matchLabels(m *dto.Metric, pairs []string) bool {
	labels := make(map[string]string)
	for _, lp := range m.GetLabel() {
		labels[lp.GetName()] = lp.GetValue()
	}
	for i := 0; i+1 < len(pairs); i += 2 {
		if labels[pairs[i]] != pairs[i+1] {
			return false
		}
	}
	return true
}
