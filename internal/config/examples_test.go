package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinkerloft/promptshape/internal/knowledge"
)

func TestLoadExampleFiles(t *testing.T) {
	// Find examples directory (go test runs from the package directory)
	examplesDir := filepath.Join("..", "..", "examples")

	if _, err := os.Stat(examplesDir); os.IsNotExist(err) {
		t.Skip("Examples directory not found, skipping test")
	}

	tests := []struct {
		file             string
		expectedProvider string
		expectedTopK     int
	}{
		{file: "promptshape.yaml", expectedProvider: "openai", expectedTopK: 2},
		{file: "promptshape-anthropic.yaml", expectedProvider: "anthropic", expectedTopK: 3},
	}

	for _, tc := range tests {
		t.Run(tc.file, func(t *testing.T) {
			cfg, err := LoadFile(filepath.Join(examplesDir, tc.file))
			require.NoError(t, err, "Failed to load %s", tc.file)
			assert.Equal(t, tc.expectedProvider, cfg.Generation.Provider)
			assert.Equal(t, tc.expectedTopK, cfg.Knowledge.TopK)

			if cfg.Knowledge.Path != "" {
				corpus, err := knowledge.Load(filepath.Join(examplesDir, cfg.Knowledge.Path))
				require.NoError(t, err)
				assert.Positive(t, corpus.Len())
			}
		})
	}
}
