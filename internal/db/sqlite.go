package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/jonathan/resume-matcher/internal/types"
)

// timeLayout is fixed-width so stored timestamps sort as text
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const sqliteSchema = `CREATE TABLE IF NOT EXISTS analyses (
	id         TEXT PRIMARY KEY,
	source     TEXT NOT NULL DEFAULT '',
	ats_score  REAL NOT NULL,
	ats_label  TEXT NOT NULL,
	report     TEXT NOT NULL,
	created_at TEXT NOT NULL
)`

// SQLiteStore keeps analysis history in a local SQLite file
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1) // single writer

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveAnalysis stores a report as JSON text
func (s *SQLiteStore) SaveAnalysis(ctx context.Context, report *types.AnalysisReport) error {
	id, body, err := prepareReport(report)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO analyses (id, source, ats_score, ats_label, report, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id.String(), report.Source, report.ATSScore, report.ATSLabel, string(body), now.Format(timeLayout),
	)
	if err != nil {
		report.ID = ""
		return fmt.Errorf("saving analysis: %w", err)
	}

	report.CreatedAt = &now
	return nil
}

// GetAnalysis retrieves a report by ID
func (s *SQLiteStore) GetAnalysis(ctx context.Context, id string) (*types.AnalysisReport, error) {
	var body, created string
	err := s.db.QueryRowContext(ctx,
		`SELECT report, created_at FROM analyses WHERE id = ?`, id,
	).Scan(&body, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting analysis: %w", err)
	}

	report, err := decodeReport([]byte(body))
	if err != nil {
		return nil, err
	}
	createdAt, err := time.Parse(timeLayout, created)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	report.ID = id
	report.CreatedAt = &createdAt
	return report, nil
}

// ListAnalyses returns the newest analyses first
func (s *SQLiteStore) ListAnalyses(ctx context.Context, limit int) ([]types.AnalysisSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, ats_score, ats_label, created_at
		 FROM analyses ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		listLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("listing analyses: %w", err)
	}
	defer rows.Close()

	summaries := make([]types.AnalysisSummary, 0)
	for rows.Next() {
		var a types.AnalysisSummary
		var created string
		if err := rows.Scan(&a.ID, &a.Source, &a.ATSScore, &a.ATSLabel, &created); err != nil {
			return nil, fmt.Errorf("scanning analysis: %w", err)
		}
		if a.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		summaries = append(summaries, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing analyses: %w", err)
	}
	return summaries, nil
}
