// Package main is the promptshape CLI entry point.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tinkerloft/promptshape/internal/config"
	"github.com/tinkerloft/promptshape/internal/knowledge"
	"github.com/tinkerloft/promptshape/internal/logging"
	"github.com/tinkerloft/promptshape/internal/model"
	"github.com/tinkerloft/promptshape/internal/prompt"
	"github.com/tinkerloft/promptshape/internal/state"
)

// app holds what the persistent pre-run resolved for subcommands.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *state.Store // nil when there is no home directory
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "promptshape",
		Short:         "Prompt-engineering playground CLI",
		Long:          "Shape questions with a prompting technique, inspect the resulting conversation, and ask a model to answer it",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $"+config.EnvConfigPath+")")
	rootCmd.PersistentFlags().String("log-level", "", "Log level override (debug, info, warn, error)")

	rootCmd.AddCommand(newAskCmd(a))
	rootCmd.AddCommand(newPromptCmd(a))
	rootCmd.AddCommand(newSearchCmd(a))
	rootCmd.AddCommand(newKnowledgeCmd(a))
	rootCmd.AddCommand(newStrategiesCmd())
	rootCmd.AddCommand(newSamplesCmd())

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	logLevel, _ := cmd.Flags().GetString("log-level")

	cfg, err := config.Resolve(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	logger, err := logging.New(cmd.ErrOrStderr(), logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	if a.store, err = state.Default(); err != nil {
		logger.Debug("strategy history disabled", "error", err)
	}
	return nil
}

// dispatcher builds a Dispatcher over the configured corpus.
func (a *app) dispatcher() (*prompt.Dispatcher, error) {
	corpus, err := loadCorpus(a.cfg)
	if err != nil {
		return nil, err
	}
	return prompt.NewDispatcher(corpus,
		prompt.WithTopK(a.cfg.Knowledge.TopK),
		prompt.WithLogger(a.logger),
	), nil
}

func loadCorpus(cfg *config.Config) (*knowledge.Corpus, error) {
	if cfg.Knowledge.Path == "" {
		return knowledge.DefaultCorpus(), nil
	}
	corpus, err := knowledge.Load(cfg.Knowledge.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load knowledge from %s: %w", cfg.Knowledge.Path, err)
	}
	return corpus, nil
}

// strategyFlag returns the --strategy value, or the last strategy used when
// the flag was not given, or ZeroShot when there is no history.
func (a *app) strategyFlag(cmd *cobra.Command) string {
	if cmd.Flags().Changed("strategy") {
		s, _ := cmd.Flags().GetString("strategy")
		return s
	}
	if a.store != nil {
		last, err := a.store.LastStrategy()
		if err == nil {
			return string(last)
		}
		if !errors.Is(err, state.ErrNoHistory) {
			a.logger.Warn("ignoring strategy history", "error", err)
		}
	}
	return string(model.StrategyZeroShot)
}

func questionArg(args []string) string {
	return strings.Join(args, " ")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
