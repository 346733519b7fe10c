package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tinkerloft/promptshape/internal/knowledge"
	"github.com/tinkerloft/promptshape/internal/model"
)

func newSearchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Rank knowledge entries against a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, _ := cmd.Flags().GetInt("k")
			if !cmd.Flags().Changed("k") {
				k = a.cfg.Knowledge.TopK
			}
			if k < 1 {
				return fmt.Errorf("-k must be at least 1")
			}

			corpus, err := loadCorpus(a.cfg)
			if err != nil {
				return err
			}
			results := knowledge.RankScored(questionArg(args), corpus, k)

			w := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(w, "No matching entries")
				return nil
			}
			fmt.Fprintf(w, "%-6s %s\n", "SCORE", "TITLE")
			fmt.Fprintln(w, strings.Repeat("-", 40))
			for _, r := range results {
				fmt.Fprintf(w, "%-6d %s\n", r.Score, r.Entry.Title)
			}
			return nil
		},
	}
	cmd.Flags().IntP("k", "k", 0, "Maximum number of results (default: knowledge.top_k)")
	return cmd
}

func newKnowledgeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "knowledge",
		Short: "Inspect the knowledge corpus",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every knowledge entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			corpus, err := loadCorpus(a.cfg)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, e := range corpus.Entries() {
				fmt.Fprintln(w, e.String())
			}
			return nil
		},
	})
	return cmd
}

func newStrategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List prompting techniques",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-18s %-20s %s\n", "ID", "LABEL", "DESCRIPTION")
			fmt.Fprintln(w, strings.Repeat("-", 80))
			for _, s := range model.Strategies() {
				fmt.Fprintf(w, "%-18s %-20s %s\n", s.ID, s.Label, s.Description)
			}
			return nil
		},
	}
}

func newSamplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "samples",
		Short: "Print sample questions to try",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, q := range model.SampleQuestions() {
				fmt.Fprintf(cmd.OutOrStdout(), "- %s\n", q)
			}
			return nil
		},
	}
}
