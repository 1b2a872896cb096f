package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/observability"
)

var historyCmd = &cobra.Command{
	Use:   "history [id]",
	Short: "List saved analyses, or show one by ID",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

var (
	historyLimit int
	historyJSON  bool
)

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", db.DefaultListLimit, "Maximum analyses to list")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Print as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	store, err := a.historyStore(ctx)
	if err != nil {
		return fmt.Errorf("failed to open analysis history: %w", err)
	}
	defer func() { _ = store.Close() }()

	printer := observability.NewPrinter(cmd.OutOrStdout())

	if len(args) == 1 {
		report, err := store.GetAnalysis(ctx, args[0])
		if err != nil {
			return err
		}
		if report == nil {
			return fmt.Errorf("analysis not found: %s", args[0])
		}
		if historyJSON {
			return printJSON(cmd, report)
		}
		printer.PrintReport(report)
		return nil
	}

	analyses, err := store.ListAnalyses(ctx, historyLimit)
	if err != nil {
		return err
	}
	if historyJSON {
		return printJSON(cmd, analyses)
	}
	printer.PrintAnalyses(analyses)
	return nil
}
