// Package types provides type definitions for structured data used throughout the resume-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// AnalysisReport is the full result of analyzing one resume against one job description
type AnalysisReport struct {
	ID                string         `json:"id,omitempty"`
	CreatedAt         *time.Time     `json:"created_at,omitempty"`
	Source            string         `json:"source,omitempty"` // Resume file name or other origin
	ATSScore          float64        `json:"ats_score"`
	ATSLabel          string         `json:"ats_label"`
	ATSBreakdown      ScoreBreakdown `json:"ats_breakdown"`
	MatchedKeywords   []string       `json:"matched_keywords"`
	MissingKeywords   []string       `json:"missing_keywords"`
	MatchedSkills     []string       `json:"matched_skills"`
	MissingSkills     []string       `json:"missing_skills"`
	ExtraSkills       []string       `json:"extra_skills"`
	SkillMatchPercent float64        `json:"skill_match_percent"`
	TotalJobSkills    int            `json:"total_job_skills"`
	TotalMatched      int            `json:"total_matched"`
	TotalMissing      int            `json:"total_missing"`
	WordCount         int            `json:"word_count"`
	// Semantic is nil when no embedder is configured
	Semantic *MatchResult `json:"semantic,omitempty"`
}

// AnalysisSummary is the list view of a stored report
type AnalysisSummary struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	ATSScore  float64   `json:"ats_score"`
	ATSLabel  string    `json:"ats_label"`
	CreatedAt time.Time `json:"created_at"`
}
