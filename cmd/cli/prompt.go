package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tinkerloft/promptshape/internal/model"
)

// promptOutput is what the prompt command prints.
type promptOutput struct {
	Strategy     model.Strategy     `json:"strategy" yaml:"strategy"`
	Fallback     bool               `json:"fallback" yaml:"fallback"`
	Conversation model.Conversation `json:"conversation" yaml:"conversation"`
}

func newPromptCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompt <question...>",
		Short: "Print the conversation a technique builds, without calling a model",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPrompt(cmd, args)
		},
	}
	cmd.Flags().StringP("strategy", "s", "", "Prompting technique id or label (default: last used, else ZeroShot)")
	cmd.Flags().StringP("output", "o", "json", "Output format: json or yaml")
	return cmd
}

func (a *app) runPrompt(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("output")

	d, err := a.dispatcher()
	if err != nil {
		return err
	}
	res := d.Prepare(questionArg(args), a.strategyFlag(cmd))
	out := promptOutput{
		Strategy:     res.Strategy,
		Fallback:     res.Fallback,
		Conversation: res.Conversation,
	}

	w := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(out)
	default:
		return fmt.Errorf("unsupported output format %q (use json or yaml)", format)
	}
}
