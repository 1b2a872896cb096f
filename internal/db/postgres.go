package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/resume-matcher/internal/types"
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS analyses (
	id         UUID PRIMARY KEY,
	source     TEXT NOT NULL DEFAULT '',
	ats_score  DOUBLE PRECISION NOT NULL,
	ats_label  TEXT NOT NULL,
	report     JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS analyses_created_at_idx ON analyses (created_at DESC)`

// PostgresStore wraps a PostgreSQL connection pool
type PostgresStore struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database and creates the analyses table if needed
func Connect(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close closes the connection pool
func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// SaveAnalysis stores a report as JSONB
func (s *PostgresStore) SaveAnalysis(ctx context.Context, report *types.AnalysisReport) error {
	id, body, err := prepareReport(report)
	if err != nil {
		return err
	}

	var createdAt time.Time
	err = s.pool.QueryRow(ctx,
		`INSERT INTO analyses (id, source, ats_score, ats_label, report)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		id, report.Source, report.ATSScore, report.ATSLabel, body,
	).Scan(&createdAt)
	if err != nil {
		report.ID = ""
		return fmt.Errorf("failed to save analysis: %w", err)
	}

	report.CreatedAt = &createdAt
	return nil
}

// GetAnalysis retrieves a report by ID
func (s *PostgresStore) GetAnalysis(ctx context.Context, id string) (*types.AnalysisReport, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}

	var body []byte
	var createdAt time.Time
	err = s.pool.QueryRow(ctx,
		`SELECT report, created_at FROM analyses WHERE id = $1`,
		uid,
	).Scan(&body, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	report, err := decodeReport(body)
	if err != nil {
		return nil, err
	}
	report.ID = uid.String()
	report.CreatedAt = &createdAt
	return report, nil
}

// ListAnalyses retrieves recent analyses
func (s *PostgresStore) ListAnalyses(ctx context.Context, limit int) ([]types.AnalysisSummary, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, source, ats_score, ats_label, created_at
		 FROM analyses ORDER BY created_at DESC LIMIT $1`,
		listLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	summaries := make([]types.AnalysisSummary, 0)
	for rows.Next() {
		var id uuid.UUID
		var a types.AnalysisSummary
		if err := rows.Scan(&id, &a.Source, &a.ATSScore, &a.ATSLabel, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		a.ID = id.String()
		summaries = append(summaries, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	return summaries, nil
}
