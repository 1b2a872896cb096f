package server

import (
	"github.com/jonathan/resume-matcher/internal/types"
)

// KeywordsRequest is the body of POST /api/keywords
type KeywordsRequest struct {
	Text string `json:"text" validate:"required"`
}

// KeywordsResponse lists the extracted keywords
type KeywordsResponse struct {
	Keywords []string `json:"keywords"`
	Count    int      `json:"count"`
}

// TextPairRequest is the body of POST /api/skill-gap
type TextPairRequest struct {
	ResumeText     string `json:"resume_text" validate:"required"`
	JobDescription string `json:"job_description" validate:"required"`
}

// ATSScoreRequest is the body of POST /api/ats-score. The skill-match percentage is
// computed from the texts when omitted.
type ATSScoreRequest struct {
	ResumeText        string   `json:"resume_text" validate:"required"`
	JobDescription    string   `json:"job_description" validate:"required"`
	SkillMatchPercent *float64 `json:"skill_match_percent,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// MatchRequest is the body of POST /api/match: vectors computed by the caller
type MatchRequest struct {
	ResumeEmbedding []float32         `json:"resume_embedding" validate:"required,min=1"`
	JobEmbedding    []float32         `json:"job_embedding" validate:"required,min=1"`
	Chunks          []types.TextChunk `json:"chunks" validate:"dive"`
}

// AnalyzeResponse is the body returned by POST /analyze
type AnalyzeResponse struct {
	Success bool `json:"success"`
	*types.AnalysisReport
}

// AnalysesResponse lists stored analyses
type AnalysesResponse struct {
	Analyses []types.AnalysisSummary `json:"analyses"`
	Count    int                     `json:"count"`
}
