// Package main is the promptshape API server entry point.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/tinkerloft/promptshape/internal/config"
	"github.com/tinkerloft/promptshape/internal/generate"
	"github.com/tinkerloft/promptshape/internal/knowledge"
	"github.com/tinkerloft/promptshape/internal/logging"
	"github.com/tinkerloft/promptshape/internal/metrics"
	"github.com/tinkerloft/promptshape/internal/notify"
	"github.com/tinkerloft/promptshape/internal/prompt"
	"github.com/tinkerloft/promptshape/internal/server"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "promptshape-server",
		Short:         "Serve the promptshape HTTP API",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			return run(cmd.Context(), configPath)
		},
	}
	cmd.Flags().String("config", "", "Path to config file (default $"+config.EnvConfigPath+")")
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(os.Stderr, logging.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.Register(reg)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	corpus := knowledge.DefaultCorpus()
	if cfg.Knowledge.Path != "" {
		corpus, err = knowledge.Load(cfg.Knowledge.Path)
		if err != nil {
			return fmt.Errorf("failed to load knowledge from %s: %w", cfg.Knowledge.Path, err)
		}
	}
	logger.Info("knowledge loaded", "entries", corpus.Len(), "path", cfg.Knowledge.Path)

	d := prompt.NewDispatcher(corpus,
		prompt.WithTopK(cfg.Knowledge.TopK),
		prompt.WithLogger(logger),
		prompt.WithObserver(m),
	)

	// Without credentials the server still shapes prompts; /ask answers 503.
	var gen generate.Generator
	if err := config.CheckCredentials(cfg, config.ModeRequire, logger); err != nil {
		logger.Warn("answer generation disabled", "error", err)
	} else if g, err := generate.New(cfg.GeneratorOptions()); err != nil {
		logger.Warn("answer generation disabled", "error", err)
	} else {
		gen = metrics.Instrument(g, m)
		logger.Info("answer generation enabled", "provider", cfg.Generation.Provider, "model", cfg.Generation.Model)
	}

	var opts []server.Option
	if cfg.Slack.Channel != "" && cfg.SlackToken() != "" {
		opts = append(opts, server.WithNotifier(notify.NewSlackNotifier(cfg.SlackToken(), cfg.Slack.Channel)))
		logger.Info("posting answers to slack", "channel", cfg.Slack.Channel)
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.New(d, gen, reg, opts...),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("promptshape server listening", "addr", cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
