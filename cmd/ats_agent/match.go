package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/observability"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Compute the semantic similarity between a resume and a job description",
	Long: `Embeds the resume, the job description and 100-word resume chunks, then reports the overall
cosine similarity with the most and least relevant resume sections. Requires an embedding backend.`,
	RunE: runMatch,
}

var (
	matchInput inputFlags
	matchJSON  bool
)

func init() {
	matchInput.register(matchCmd, true)
	matchCmd.Flags().BoolVar(&matchJSON, "json", false, "Print as JSON")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	resume, job, err := lexicalInputs(cmd, a, &matchInput)
	if err != nil {
		return err
	}

	analyzer, cleanup, err := a.analyzer(ctx, true)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := analyzer.Match(ctx, resume, job)
	if err != nil {
		return err
	}
	if matchJSON {
		return printJSON(cmd, result)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintMatch(result)
	return nil
}
