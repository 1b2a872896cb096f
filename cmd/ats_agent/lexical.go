package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/pipeline"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Extract technical keywords from a job description",
	RunE:  runKeywords,
}

var skillGapCmd = &cobra.Command{
	Use:   "skill-gap",
	Short: "List matched, missing and extra taxonomy skills",
	RunE:  runSkillGap,
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Compute the lexical ATS score without semantic matching",
	RunE:  runScore,
}

var (
	keywordsInput inputFlags
	keywordsJSON  bool

	skillGapInput inputFlags
	skillGapJSON  bool

	scoreInput inputFlags
	scoreJSON  bool
)

func init() {
	keywordsInput.register(keywordsCmd, false)
	keywordsCmd.Flags().BoolVar(&keywordsJSON, "json", false, "Print as JSON")

	skillGapInput.register(skillGapCmd, true)
	skillGapCmd.Flags().BoolVar(&skillGapJSON, "json", false, "Print as JSON")

	scoreInput.register(scoreCmd, true)
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Print as JSON")

	rootCmd.AddCommand(keywordsCmd, skillGapCmd, scoreCmd)
}

func runKeywords(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	job, err := keywordsInput.jobInput(cmd.Context(), a)
	if err != nil {
		return err
	}

	kws := pipeline.NewAnalyzer(a.tax, pipeline.WithLogger(a.log)).Keywords(job)
	if keywordsJSON {
		return printJSON(cmd, map[string]any{"keywords": kws, "count": len(kws)})
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintKeywords(kws)
	return nil
}

func runSkillGap(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	resume, job, err := lexicalInputs(cmd, a, &skillGapInput)
	if err != nil {
		return err
	}

	gap := pipeline.NewAnalyzer(a.tax, pipeline.WithLogger(a.log)).SkillGap(resume, job)
	if skillGapJSON {
		return printJSON(cmd, gap)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintSkillGap(gap)
	return nil
}

func runScore(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	resume, job, err := lexicalInputs(cmd, a, &scoreInput)
	if err != nil {
		return err
	}

	analyzer := pipeline.NewAnalyzer(a.tax, pipeline.WithLogger(a.log))
	gap := analyzer.SkillGap(resume, job)
	ats := analyzer.ATSScore(resume, job, gap.SkillMatchPercent)
	if scoreJSON {
		return printJSON(cmd, ats)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintATSScore(ats)
	return nil
}

// lexicalInputs reads both texts and applies the job description check the analysis pipeline uses
func lexicalInputs(cmd *cobra.Command, a *app, in *inputFlags) (string, string, error) {
	resume, _, _, err := in.resumeInput()
	if err != nil {
		return "", "", err
	}
	job, err := in.jobInput(cmd.Context(), a)
	if err != nil {
		return "", "", err
	}
	if err := pipeline.ValidateJobDescription(job); err != nil {
		return "", "", fmt.Errorf("invalid job description: %w", err)
	}
	return resume, job, nil
}
