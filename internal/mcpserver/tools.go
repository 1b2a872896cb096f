package mcpserver

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/types"
)

// KeywordsInput is the input schema for extract_keywords.
type KeywordsInput struct {
	Text string `json:"text" jsonschema:"job description text to extract technical keywords from"`
}

// KeywordsOutput is the output schema for extract_keywords.
type KeywordsOutput struct {
	Keywords []string `json:"keywords"`
	Count    int      `json:"count"`
}

// TextPairInput carries a resume and a job description.
type TextPairInput struct {
	ResumeText     string `json:"resume_text" jsonschema:"plain text of the resume"`
	JobDescription string `json:"job_description" jsonschema:"plain text of the job description"`
}

// ATSScoreInput is the input schema for ats_score.
type ATSScoreInput struct {
	ResumeText        string   `json:"resume_text" jsonschema:"plain text of the resume"`
	JobDescription    string   `json:"job_description" jsonschema:"plain text of the job description"`
	SkillMatchPercent *float64 `json:"skill_match_percent,omitempty" jsonschema:"skill coverage 0-100; computed from the texts when omitted"`
}

func (s *Server) registerTools() {
	readOnly := &mcp.ToolAnnotations{ReadOnlyHint: true}

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "extract_keywords",
		Description: "Extract up to 40 technical keywords (known skills, CamelCase names, tech suffixes, acronyms) from a job description.",
		Annotations: readOnly,
	}, s.handleExtractKeywords)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "skill_gap",
		Description: "Compare taxonomy skills found in a resume against a job description: matched, missing and extra skills plus match percentage.",
		Annotations: readOnly,
	}, s.handleSkillGap)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ats_score",
		Description: "Compute the weighted ATS score (keywords 40%, skills 30%, sections 15%, achievements 15%) with its breakdown and label.",
		Annotations: readOnly,
	}, s.handleATSScore)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_match",
		Description: "Semantic similarity between a resume and a job description, with the most and least relevant resume sections.",
		Annotations: readOnly,
	}, s.handleAnalyzeMatch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_resume",
		Description: "Full analysis of a resume against a job description: skill gap, ATS score and, when embeddings are configured, semantic match.",
		Annotations: readOnly,
	}, s.handleAnalyzeResume)
}

func requireTexts(resume, job string) error {
	if strings.TrimSpace(resume) == "" {
		return errors.New("resume_text is required")
	}
	if strings.TrimSpace(job) == "" {
		return errors.New("job_description is required")
	}
	return nil
}

func (s *Server) handleExtractKeywords(_ context.Context, _ *mcp.CallToolRequest, input KeywordsInput) (*mcp.CallToolResult, KeywordsOutput, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, KeywordsOutput{}, errors.New("text is required")
	}
	keywords := s.analyzer.Keywords(input.Text)
	return nil, KeywordsOutput{Keywords: keywords, Count: len(keywords)}, nil
}

func (s *Server) handleSkillGap(_ context.Context, _ *mcp.CallToolRequest, input TextPairInput) (*mcp.CallToolResult, *types.SkillGapResult, error) {
	if err := requireTexts(input.ResumeText, input.JobDescription); err != nil {
		return nil, nil, err
	}
	return nil, s.analyzer.SkillGap(input.ResumeText, input.JobDescription), nil
}

func (s *Server) handleATSScore(_ context.Context, _ *mcp.CallToolRequest, input ATSScoreInput) (*mcp.CallToolResult, *types.ATSScore, error) {
	if err := requireTexts(input.ResumeText, input.JobDescription); err != nil {
		return nil, nil, err
	}

	var pct float64
	if input.SkillMatchPercent != nil {
		pct = *input.SkillMatchPercent
		if pct < 0 || pct > 100 {
			return nil, nil, errors.New("skill_match_percent must be between 0 and 100")
		}
	} else {
		pct = s.analyzer.SkillGap(input.ResumeText, input.JobDescription).SkillMatchPercent
	}

	return nil, s.analyzer.ATSScore(input.ResumeText, input.JobDescription, pct), nil
}

func (s *Server) handleAnalyzeMatch(ctx context.Context, _ *mcp.CallToolRequest, input TextPairInput) (*mcp.CallToolResult, *types.MatchResult, error) {
	if err := requireTexts(input.ResumeText, input.JobDescription); err != nil {
		return nil, nil, err
	}
	result, err := s.analyzer.Match(ctx, input.ResumeText, input.JobDescription)
	if err != nil {
		s.logger.Warn("analyze_match failed", zap.Error(err))
		return nil, nil, err
	}
	return nil, result, nil
}

// handleAnalyzeResume returns a *types.AnalysisReport. The output is untyped so no output schema is
// inferred for the report's timestamp field.
func (s *Server) handleAnalyzeResume(ctx context.Context, _ *mcp.CallToolRequest, input TextPairInput) (*mcp.CallToolResult, any, error) {
	report, err := s.analyzer.Analyze(ctx, pipeline.Input{
		ResumeText:     input.ResumeText,
		JobDescription: input.JobDescription,
		Source:         "mcp",
	})
	if err != nil {
		return nil, nil, err
	}
	return nil, report, nil
}
