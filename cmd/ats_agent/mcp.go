package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the matching tools over MCP (stdio)",
	Long: `Runs a Model Context Protocol server on stdin/stdout exposing extract_keywords, skill_gap,
ats_score, analyze_match and analyze_resume as read-only tools. Logs go to stderr.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.log.Sync() }()

	analyzer, cleanup, err := a.analyzer(ctx, false)
	if err != nil {
		return err
	}
	defer cleanup()

	srv, err := mcpserver.NewServer(analyzer, a.tax, a.log)
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}
