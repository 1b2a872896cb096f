// Package main provides the entry point for the ATS resume matcher CLI, HTTP API and MCP server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ats_agent",
	Short: "Score resumes against job descriptions",
	Long: `ats_agent compares a resume with a job description the way an applicant tracking system would:
keyword coverage, taxonomy skill gap, section structure, quantified achievements and, when an
embedding backend is configured, semantic similarity.

Configuration is read from --config (JSON, YAML or TOML), then ATS_* environment variables, then flags.`,
	SilenceUsage: true,
}

var configPath string

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Path to config file (JSON, YAML or TOML)")
	pf.String("taxonomy-path", "", "Skills taxonomy JSON file replacing the built-in taxonomy")
	pf.String("embedding-provider", "", "Embedding backend: gemini or hash")
	pf.String("database-url", "", "PostgreSQL connection URL for analysis history (defaults to DATABASE_URL env var)")
	pf.String("sqlite-path", "", "SQLite file for analysis history")
	pf.BoolP("verbose", "v", false, "Print pipeline progress")
	pf.BoolP("debug", "d", false, "Debug logging")
	pf.Bool("log-json", false, "Log in JSON format")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
