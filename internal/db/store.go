// Package db persists analysis reports in PostgreSQL (server) or SQLite (local history).
package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/resume-matcher/internal/types"
)

// DefaultListLimit is used when ListAnalyses is called without a positive limit
const DefaultListLimit = 50

// Store saves and reads analysis reports
type Store interface {
	// SaveAnalysis assigns the report an ID and creation time and stores it
	SaveAnalysis(ctx context.Context, report *types.AnalysisReport) error
	// GetAnalysis returns the report with the given ID, or nil if there is none
	GetAnalysis(ctx context.Context, id string) (*types.AnalysisReport, error)
	// ListAnalyses returns the newest reports first
	ListAnalyses(ctx context.Context, limit int) ([]types.AnalysisSummary, error)
	Close() error
}

// Open returns a PostgresStore when databaseURL is set, otherwise a SQLiteStore when sqlitePath is set.
// With neither it returns nil and no error.
func Open(ctx context.Context, databaseURL, sqlitePath string) (Store, error) {
	switch {
	case databaseURL != "":
		return Connect(ctx, databaseURL)
	case sqlitePath != "":
		return OpenSQLite(ctx, sqlitePath)
	default:
		return nil, nil
	}
}

// prepareReport assigns a new ID and encodes the report body
func prepareReport(report *types.AnalysisReport) (uuid.UUID, []byte, error) {
	id := uuid.New()
	report.ID = id.String()
	report.CreatedAt = nil

	body, err := json.Marshal(report)
	if err != nil {
		report.ID = ""
		return uuid.Nil, nil, fmt.Errorf("failed to marshal analysis: %w", err)
	}
	return id, body, nil
}

func decodeReport(body []byte) (*types.AnalysisReport, error) {
	var report types.AnalysisReport
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, fmt.Errorf("failed to decode stored analysis: %w", err)
	}
	return &report, nil
}

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
