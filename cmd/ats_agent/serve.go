package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/server"
	"github.com/jonathan/resume-matcher/internal/server/ratelimit"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing /analyze (multipart resume upload) and the JSON /api endpoints.
History endpoints are enabled when database_url or sqlite_path is configured; /api is protected by
bearer tokens when jwt_secret is set.`,
	RunE: runServe,
}

func init() {
	// read through config.Load, which binds flags by key name
	serveCmd.Flags().Int("port", 8080, "Port to listen on (defaults to PORT env var)")
	serveCmd.Flags().Bool("rate-limit-enabled", true, "Rate limit requests per client")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
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

	srv, err := newServer(ctx, a, analyzer)
	if err != nil {
		return err
	}

	return srv.Start(ctx)
}

// newServer validates auth settings before opening the store, and closes the store if the server cannot be built.
func newServer(ctx context.Context, a *app, analyzer *pipeline.Analyzer) (*server.Server, error) {
	var jwtCfg *config.JWTConfig
	if a.cfg.AuthEnabled() {
		var err error
		if jwtCfg, err = a.cfg.JWT(); err != nil {
			return nil, err
		}
	}

	// server history is opt-in; no home-directory fallback
	store, err := db.Open(ctx, a.cfg.DatabaseURL, a.cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open analysis store: %w", err)
	}

	srv, err := server.New(server.Config{
		Port:      a.cfg.Port,
		Analyzer:  analyzer,
		Store:     store,
		RateLimit: ratelimit.NewConfig(a.cfg.RateLimitEnabled, a.cfg.RateLimitRPS, a.cfg.RateLimitBurst),
		JWT:       jwtCfg,
		Logger:    a.log,
	})
	if err != nil {
		if store != nil {
			_ = store.Close()
		}
		return nil, fmt.Errorf("failed to create server: %w", err)
	}
	return srv, nil
}
