package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinkerloft/promptshape/internal/model"
)

func TestStore_RememberAndRecall(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "nested", "state"))
	s.now = func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) }

	require.NoError(t, s.RememberStrategy(model.StrategyRAG))

	got, err := s.LastStrategy()
	require.NoError(t, err)
	assert.Equal(t, model.StrategyRAG, got)

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "last_strategy: RAG")
	assert.Contains(t, string(data), "updated_at: 2026-10-19T12:00:00Z")

	require.NoError(t, s.RememberStrategy(model.StrategyFewShot))
	got, err = s.LastStrategy()
	require.NoError(t, err)
	assert.Equal(t, model.StrategyFewShot, got)

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_NoHistory(t *testing.T) {
	s := Open(t.TempDir())
	_, err := s.LastStrategy()
	assert.ErrorIs(t, err, ErrNoHistory)

	require.NoError(t, os.WriteFile(s.Path(), []byte("last_strategy: \"\"\n"), 0o600))
	_, err = s.LastStrategy()
	assert.ErrorIs(t, err, ErrNoHistory)
}

func TestStore_RejectsUnknownStrategies(t *testing.T) {
	s := Open(t.TempDir())
	assert.Error(t, s.RememberStrategy(model.StrategyDefault))
	assert.Error(t, s.RememberStrategy("Telepathy"))

	require.NoError(t, os.WriteFile(s.Path(), []byte("last_strategy: Telepathy\n"), 0o600))
	_, err := s.LastStrategy()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoHistory)
}

func TestStore_CorruptFile(t *testing.T) {
	s := Open(t.TempDir())
	require.NoError(t, os.WriteFile(s.Path(), []byte("last_strategy: [unclosed\n"), 0o600))
	_, err := s.LastStrategy()
	assert.Error(t, err)
}

func TestDefault_UsesHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	s, err := Default()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".promptshape", "state.yaml"), s.Path())
}
