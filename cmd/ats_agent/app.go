package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/fetch"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/taxonomy"
)

const renderTimeout = 30 * time.Second

// app bundles what every subcommand needs
type app struct {
	cfg *config.Config
	log *zap.Logger
	tax *taxonomy.Taxonomy
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	tax, err := taxonomy.Open(cfg.TaxonomyPath)
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, log: log, tax: tax}, nil
}

// analyzer builds the analysis pipeline. With requireSemantic unset a missing API key
// degrades to lexical-only analysis instead of failing.
func (a *app) analyzer(ctx context.Context, requireSemantic bool) (*pipeline.Analyzer, func(), error) {
	opts := []pipeline.Option{pipeline.WithLogger(a.log)}
	cleanup := func() {}

	embCfg := a.cfg.Embedding()
	if embCfg.Provider == embedding.ProviderGemini && a.cfg.APIKey == "" {
		if requireSemantic {
			return nil, nil, fmt.Errorf("GEMINI_API_KEY environment variable is required for semantic matching (or set embedding_provider=hash)")
		}
		a.log.Warn("no API key configured, semantic matching disabled")
		return pipeline.NewAnalyzer(a.tax, opts...), cleanup, nil
	}

	emb, err := embedding.New(ctx, embCfg, a.cfg.APIKey, a.log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create embedder: %w", err)
	}
	cleanup = func() {
		if err := emb.Close(); err != nil {
			a.log.Warn("failed to close embedder", zap.Error(err))
		}
	}

	opts = append(opts, pipeline.WithEmbedder(emb, a.cfg.Chunking()))
	return pipeline.NewAnalyzer(a.tax, opts...), cleanup, nil
}

// historyStore opens the configured store, falling back to a SQLite file in the user's home directory.
func (a *app) historyStore(ctx context.Context) (db.Store, error) {
	sqlitePath := a.cfg.SQLitePath
	if a.cfg.DatabaseURL == "" && sqlitePath == "" {
		path, err := defaultHistoryPath()
		if err != nil {
			return nil, err
		}
		sqlitePath = path
	}
	return db.Open(ctx, a.cfg.DatabaseURL, sqlitePath)
}

func defaultHistoryPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".ats_agent", "history.db"), nil
}

// inputFlags are the resume and job description sources shared by the analysis commands
type inputFlags struct {
	resume     string
	resumeText string
	job        string
	jobFile    string
	jobURL     string
}

func (f *inputFlags) register(cmd *cobra.Command, withResume bool) {
	if withResume {
		cmd.Flags().StringVarP(&f.resume, "resume", "r", "", "Path to resume file (PDF, DOCX, TXT or MD)")
		cmd.Flags().StringVar(&f.resumeText, "resume-text", "", "Resume text (mutually exclusive with --resume)")
	}
	cmd.Flags().StringVarP(&f.job, "job", "j", "", "Job description text")
	cmd.Flags().StringVar(&f.jobFile, "job-file", "", "Path to job description file")
	cmd.Flags().StringVar(&f.jobURL, "job-url", "", "URL of a job posting to fetch")
}

// resumeInput returns the cleaned resume text, its source name and word count
func (f *inputFlags) resumeInput() (string, string, int, error) {
	switch {
	case f.resume != "" && f.resumeText != "":
		return "", "", 0, fmt.Errorf("--resume and --resume-text are mutually exclusive; provide only one")
	case f.resumeText != "":
		return f.resumeText, "", 0, nil
	case f.resume != "":
		res, err := ingestion.ParseFile(f.resume)
		if err != nil {
			return "", "", 0, err
		}
		if !res.Success {
			return "", "", 0, res.Err()
		}
		return res.CleanText, filepath.Base(f.resume), res.WordCount, nil
	default:
		return "", "", 0, fmt.Errorf("either --resume or --resume-text must be provided")
	}
}

// jobInput returns the job description from exactly one of --job, --job-file, --job-url
func (f *inputFlags) jobInput(ctx context.Context, a *app) (string, error) {
	set := 0
	for _, v := range []string{f.job, f.jobFile, f.jobURL} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return "", fmt.Errorf("exactly one of --job, --job-file or --job-url must be provided")
	}

	switch {
	case f.jobFile != "":
		text, _, err := ingestion.JobFromFile(f.jobFile)
		if err != nil {
			return "", fmt.Errorf("failed to read job description: %w", err)
		}
		return text, nil
	case f.jobURL != "":
		text, meta, err := ingestion.JobFromURL(ctx, f.jobURL, fetch.JobOptions{
			Fetch:         fetch.DefaultOptions(),
			UseBrowser:    a.cfg.UseBrowser,
			RenderTimeout: renderTimeout,
			Logger:        a.log,
		})
		if err != nil {
			return "", err
		}
		a.log.Debug("fetched job posting", zap.String("url", f.jobURL),
			zap.String("platform", meta.Platform), zap.Int("words", meta.WordCount))
		return text, nil
	default:
		return f.job, nil
	}
}
