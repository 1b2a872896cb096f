// Package types provides type definitions for structured data used throughout the resume-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ATSScore is the weighted composite of the four lexical component scores
type ATSScore struct {
	Score               float64        `json:"ats_score"`
	Label               string         `json:"ats_label"`
	Breakdown           ScoreBreakdown `json:"breakdown"`
	MatchedKeywords     []string       `json:"matched_keywords"`
	MissingKeywords     []string       `json:"missing_keywords"`
	KeywordMatchPercent float64        `json:"keyword_match_percent"`
}

// ScoreBreakdown holds each component score with its integer weight
type ScoreBreakdown struct {
	KeywordMatch     ComponentScore `json:"keyword_match"`
	SkillCoverage    ComponentScore `json:"skill_coverage"`
	SectionStructure ComponentScore `json:"section_structure"`
	Achievements     ComponentScore `json:"achievements"`
}

// ComponentScore is a single 0-100 sub-score and the weight it carries in the composite
type ComponentScore struct {
	Score  float64 `json:"score"`
	Weight int     `json:"weight"`
}

// KeywordMatch is the result of checking job keywords against resume text
type KeywordMatch struct {
	Score   float64  `json:"score"`
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
}
