package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/types"
)

// reportSchemaPath is resolved relative to the working directory
const reportSchemaPath = "schemas/analysis_report.schema.json"

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full ATS analysis of a resume against a job description",
	Long: `Scores the resume on keyword match, skill coverage, section structure and achievements, lists
matched, missing and extra skills and, when embeddings are available, adds a semantic match.`,
	RunE: runAnalyze,
}

var (
	analyzeInput      inputFlags
	analyzeOut        string
	analyzeJSON       bool
	analyzeSave       bool
	analyzeNoSemantic bool
)

func init() {
	analyzeInput.register(analyzeCmd, true)
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "Write the report as JSON to this file")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the report as JSON instead of a summary")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Save the report to analysis history")
	analyzeCmd.Flags().BoolVar(&analyzeNoSemantic, "no-semantic", false, "Skip semantic matching")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.log.Sync() }()

	resume, source, words, err := analyzeInput.resumeInput()
	if err != nil {
		return err
	}
	job, err := analyzeInput.jobInput(ctx, a)
	if err != nil {
		return err
	}

	analyzer := pipeline.NewAnalyzer(a.tax, pipeline.WithLogger(a.log))
	if !analyzeNoSemantic {
		var cleanup func()
		analyzer, cleanup, err = a.analyzer(ctx, false)
		if err != nil {
			return err
		}
		defer cleanup()
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	var onProgress pipeline.ProgressCallback
	if a.cfg.Verbose {
		progress := observability.NewPrinter(cmd.ErrOrStderr())
		onProgress = progress.PrintProgress
	}

	report, err := analyzer.Analyze(ctx, pipeline.Input{
		ResumeText:     resume,
		JobDescription: job,
		Source:         source,
		WordCount:      words,
		OnProgress:     onProgress,
	})
	if err != nil {
		return err
	}

	if analyzeSave {
		if err := saveToHistory(cmd, a, report); err != nil {
			// the analysis itself succeeded
			a.log.Warn("failed to save analysis", zap.Error(err))
		}
	}

	if analyzeOut != "" {
		if err := writeReport(analyzeOut, report); err != nil {
			return err
		}
		validateReport(a.log, analyzeOut)
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Report: %s\n", analyzeOut)
	}

	if analyzeJSON {
		return printJSON(cmd, report)
	}
	printer.PrintReport(report)
	return nil
}

func saveToHistory(cmd *cobra.Command, a *app, report *types.AnalysisReport) error {
	store, err := a.historyStore(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.SaveAnalysis(cmd.Context(), report); err != nil {
		return err
	}
	a.log.Info("analysis saved", zap.String("id", report.ID))
	return nil
}

func writeReport(path string, report *types.AnalysisReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// validateReport checks a written report against its schema. Problems are logged, never fatal.
func validateReport(log *zap.Logger, path string) {
	schemaPath := schemas.ResolveSchemaPath(reportSchemaPath)
	if schemaPath == "" {
		log.Debug("report schema not found, skipping validation")
		return
	}
	if err := schemas.ValidateJSON(schemaPath, path); err != nil {
		log.Warn("report does not match schema", zap.String("path", path), zap.Error(err))
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}
