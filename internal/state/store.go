// Package state persists small pieces of CLI history between runs.
package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tinkerloft/promptshape/internal/model"
)

const fileName = "state.yaml"

// ErrNoHistory is returned when nothing has been recorded yet.
var ErrNoHistory = errors.New("no strategy recorded")

// snapshot is the on-disk layout of state.yaml.
type snapshot struct {
	LastStrategy model.Strategy `yaml:"last_strategy"`
	UpdatedAt    time.Time      `yaml:"updated_at,omitempty"`
}

// Store keeps state in a single YAML file inside dir.
type Store struct {
	dir string
	now func() time.Time
}

// Open returns a Store rooted at dir. The directory is created on first write.
func Open(dir string) *Store {
	return &Store{dir: dir, now: time.Now}
}

// Default returns the Store under ~/.promptshape.
func Default() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("locating home directory: %w", err)
	}
	return Open(filepath.Join(home, ".promptshape")), nil
}

// Path is the state file location.
func (s *Store) Path() string {
	return filepath.Join(s.dir, fileName)
}

// RememberStrategy records strategy as the most recently used one.
// StrategyDefault is a fallback marker, not a choice, and is rejected.
func (s *Store) RememberStrategy(strategy model.Strategy) error {
	if _, ok := model.ParseStrategy(string(strategy)); !ok {
		return fmt.Errorf("cannot remember strategy %q", strategy)
	}

	data, err := yaml.Marshal(snapshot{LastStrategy: strategy, UpdatedAt: s.now().UTC()})
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("creating %s: %w", s.dir, err)
	}

	tmp, err := os.CreateTemp(s.dir, fileName+".*")
	if err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	return os.Rename(tmp.Name(), s.Path())
}

// LastStrategy returns the most recently remembered strategy, or
// ErrNoHistory when none was recorded.
func (s *Store) LastStrategy() (model.Strategy, error) {
	data, err := os.ReadFile(s.Path())
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoHistory
	}
	if err != nil {
		return "", fmt.Errorf("reading state: %w", err)
	}

	var snap snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return "", fmt.Errorf("decoding %s: %w", s.Path(), err)
	}
	if snap.LastStrategy == "" {
		return "", ErrNoHistory
	}
	strategy, ok := model.ParseStrategy(string(snap.LastStrategy))
	if !ok {
		return "", fmt.Errorf("%s: unknown strategy %q", s.Path(), snap.LastStrategy)
	}
	return strategy, nil
}
