package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tinkerloft/promptshape/internal/config"
	"github.com/tinkerloft/promptshape/internal/generate"
	"github.com/tinkerloft/promptshape/internal/notify"
)

func newAskCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question...>",
		Short: "Answer a question using a prompting technique",
		Long:  "Shape the question with the chosen technique, send it to the configured model and print the answer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAsk(cmd, args)
		},
	}
	cmd.Flags().StringP("strategy", "s", "", "Prompting technique id or label (default: last used, else ZeroShot)")
	cmd.Flags().String("slack-channel", "", "Also post the answer to this Slack channel")
	return cmd
}

func (a *app) runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	question := questionArg(args)

	if err := config.CheckCredentials(a.cfg, config.ModeRequire, a.logger); err != nil {
		return err
	}
	gen, err := generate.New(a.cfg.GeneratorOptions())
	if err != nil {
		return fmt.Errorf("failed to create generator: %w", err)
	}

	d, err := a.dispatcher()
	if err != nil {
		return err
	}
	strategyID := a.strategyFlag(cmd)
	res := d.Prepare(question, strategyID)
	if res.Fallback {
		a.logger.Warn("unknown strategy, using zero-shot", "strategy", strategyID)
	} else if a.store != nil {
		if err := a.store.RememberStrategy(res.Strategy); err != nil {
			a.logger.Warn("failed to remember strategy", "error", err)
		}
	}

	answer, err := gen.Generate(ctx, res.Conversation)
	if err != nil {
		a.logger.Debug("generation failed", "provider", gen.Provider(), "error", err)
		return errors.New(generate.UserMessage(err))
	}

	fmt.Fprintln(cmd.OutOrStdout(), answer)

	channel, _ := cmd.Flags().GetString("slack-channel")
	if channel == "" {
		channel = a.cfg.Slack.Channel
	}
	if channel != "" {
		token := a.cfg.SlackToken()
		if token == "" {
			a.logger.Warn("slack channel set but no token", "env", config.EnvSlackToken)
			return nil
		}
		n := notify.NewSlackNotifier(token, channel)
		if err := n.PostAnswer(ctx, question, res.Strategy, answer); err != nil {
			a.logger.Warn("failed to post answer to slack", "channel", channel, "error", err)
		}
	}

	return nil
}
