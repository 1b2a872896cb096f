// Package types provides type definitions for structured data used throughout the resume-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// SkillGapResult compares the canonical skills found in a resume against those found in a job description
type SkillGapResult struct {
	ResumeSkills      []string `json:"resume_skills"`
	JobSkills         []string `json:"job_skills"`
	MatchedSkills     []string `json:"matched_skills"`
	MissingSkills     []string `json:"missing_skills"`
	ExtraSkills       []string `json:"extra_skills"`
	SkillMatchPercent float64  `json:"skill_match_percent"` // 0-100, 0 when the job lists no known skills
	TotalJobSkills    int      `json:"total_job_skills"`
	TotalMatched      int      `json:"total_matched"`
	TotalMissing      int      `json:"total_missing"`
}
