// Package pipeline runs a complete resume-versus-job analysis: skill gap, ATS score and,
// when an embedder is configured, semantic match.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/ranking"
	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/taxonomy"
	"github.com/jonathan/resume-matcher/internal/types"
)

// MinJobDescriptionChars is the shortest trimmed job description accepted
const MinJobDescriptionChars = 20

// User-facing validation messages
const (
	MsgInvalidJobDescription = "Please provide a valid job description"
	MsgEmptyResume           = "Resume text is empty"
)

// Step names reported in progress events
const (
	StepParse     = "parse_resume"
	StepSkillGap  = "skill_gap"
	StepATSScore  = "ats_score"
	StepEmbedding = "embedding"
	StepSemantic  = "semantic_match"
	StepComplete  = "complete"
)

// Step categories
const (
	CategoryIngestion = "ingestion"
	CategoryLexical   = "lexical"
	CategorySemantic  = "semantic"
)

// ProgressEvent represents a progress update during an analysis
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when analysis progress occurs. It may be called from several goroutines.
type ProgressCallback func(event ProgressEvent)

// ErrNoEmbedder is returned by Match when the analyzer was built without an embedder
var ErrNoEmbedder = errors.New("semantic matching is not configured")

// InputError reports unusable input. Its message is safe to show to users.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

// Input is one analysis request
type Input struct {
	ResumeText     string
	JobDescription string
	// Source names where the resume came from (file name); stored with the report
	Source string
	// WordCount of the resume; computed from ResumeText when zero
	WordCount  int
	OnProgress ProgressCallback
}

// Analyzer runs analyses. It is safe for concurrent use.
type Analyzer struct {
	skills   *skills.Extractor
	scorer   *scoring.Scorer
	embedder embedding.Embedder
	chunking embedding.ChunkOptions
	logger   *zap.Logger
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithEmbedder enables the semantic match using e and the given chunking.
func WithEmbedder(e embedding.Embedder, chunking embedding.ChunkOptions) Option {
	return func(a *Analyzer) {
		a.embedder = e
		a.chunking = chunking
	}
}

// WithLogger sets the analyzer's logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Analyzer) {
		a.logger = l
	}
}

// NewAnalyzer builds an analyzer around tax. Without WithEmbedder, reports carry no semantic section.
func NewAnalyzer(tax *taxonomy.Taxonomy, opts ...Option) *Analyzer {
	a := &Analyzer{
		skills:   skills.NewExtractor(tax),
		scorer:   scoring.NewScorer(tax),
		chunking: embedding.DefaultChunkOptions(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = logger.OrNop(a.logger)
	return a
}

// Semantic reports whether the analyzer has an embedder.
func (a *Analyzer) Semantic() bool {
	return a.embedder != nil
}

// ValidateJobDescription returns an *InputError when job is too short to analyze.
func ValidateJobDescription(job string) error {
	if len(strings.TrimSpace(job)) < MinJobDescriptionChars {
		return &InputError{Message: MsgInvalidJobDescription}
	}
	return nil
}

// Analyze scores the resume against the job description. The lexical branch (skill gap, then ATS
// score) and the semantic branch run concurrently.
func (a *Analyzer) Analyze(ctx context.Context, in Input) (*types.AnalysisReport, error) {
	if err := ValidateJobDescription(in.JobDescription); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.ResumeText) == "" {
		return nil, &InputError{Message: MsgEmptyResume}
	}

	start := time.Now()
	emit := func(step, category, message string, content any) {
		if in.OnProgress != nil {
			in.OnProgress(ProgressEvent{Step: step, Category: category, Message: message, Content: content})
		}
	}

	var (
		gap      *types.SkillGapResult
		ats      *types.ATSScore
		semantic *types.MatchResult
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		gap = a.skills.SkillGap(in.ResumeText, in.JobDescription)
		emit(StepSkillGap, CategoryLexical,
			fmt.Sprintf("Matched %d of %d job skills", gap.TotalMatched, gap.TotalJobSkills), gap)

		ats = a.scorer.CalculateATSScore(in.ResumeText, in.JobDescription, gap.SkillMatchPercent)
		emit(StepATSScore, CategoryLexical,
			fmt.Sprintf("ATS score %.2f (%s)", ats.Score, ats.Label), ats)
		return nil
	})

	if a.embedder != nil {
		g.Go(func() error {
			result, err := a.semanticMatch(gctx, in.ResumeText, in.JobDescription, emit)
			if err != nil {
				return err
			}
			semantic = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		a.logger.Error("analysis failed", zap.String("source", in.Source), zap.Error(err))
		return nil, err
	}

	wordCount := in.WordCount
	if wordCount == 0 {
		wordCount = len(strings.Fields(in.ResumeText))
	}

	report := &types.AnalysisReport{
		Source:            in.Source,
		ATSScore:          ats.Score,
		ATSLabel:          ats.Label,
		ATSBreakdown:      ats.Breakdown,
		MatchedKeywords:   ats.MatchedKeywords,
		MissingKeywords:   ats.MissingKeywords,
		MatchedSkills:     gap.MatchedSkills,
		MissingSkills:     gap.MissingSkills,
		ExtraSkills:       gap.ExtraSkills,
		SkillMatchPercent: gap.SkillMatchPercent,
		TotalJobSkills:    gap.TotalJobSkills,
		TotalMatched:      gap.TotalMatched,
		TotalMissing:      gap.TotalMissing,
		WordCount:         wordCount,
		Semantic:          semantic,
	}

	a.logger.Info("analysis complete",
		zap.String("source", in.Source),
		zap.Float64("ats_score", report.ATSScore),
		zap.Float64("skill_match_percent", report.SkillMatchPercent),
		zap.Bool("semantic", semantic != nil),
		zap.Duration("elapsed", time.Since(start)))
	emit(StepComplete, CategoryLexical, "Analysis complete", nil)

	return report, nil
}

func (a *Analyzer) semanticMatch(ctx context.Context, resume, job string, emit func(string, string, string, any)) (*types.MatchResult, error) {
	vectors, err := embedding.EmbedResumeAndJob(ctx, a.embedder, resume, job, a.chunking)
	if err != nil {
		return nil, fmt.Errorf("semantic match failed: %w", err)
	}
	emit(StepEmbedding, CategorySemantic,
		fmt.Sprintf("Embedded resume, job and %d chunks with %s", len(vectors.Chunks), a.embedder.ModelName()), nil)
	a.logger.Debug("generated embeddings",
		zap.String("model", a.embedder.ModelName()),
		zap.Int("chunks", len(vectors.Chunks)),
		zap.Int("dimensions", len(vectors.Resume)))

	result, err := ranking.AnalyzeMatch(vectors.Resume, vectors.Job, vectors.Chunks)
	if err != nil {
		return nil, fmt.Errorf("semantic match failed: %w", err)
	}
	emit(StepSemantic, CategorySemantic,
		fmt.Sprintf("Semantic match %.2f (%s)", result.Score, result.Label), result)
	return result, nil
}

// AnalyzeDocument parses an uploaded resume and analyzes it. The job description is validated
// before parsing; a failed parse is returned as an *ingestion.ParseError.
func (a *Analyzer) AnalyzeDocument(ctx context.Context, data []byte, filename, job string, onProgress ProgressCallback) (*types.AnalysisReport, error) {
	if err := ValidateJobDescription(job); err != nil {
		return nil, err
	}

	parsed := ingestion.ParseDocument(data, filename)
	if !parsed.Success {
		a.logger.Warn("resume parse failed", zap.String("file", filename), zap.String("error", parsed.Error))
		return nil, parsed.Err()
	}
	if onProgress != nil {
		onProgress(ProgressEvent{
			Step:     StepParse,
			Category: CategoryIngestion,
			Message:  fmt.Sprintf("Extracted %d words from %s", parsed.WordCount, parsed.FileType),
		})
	}

	return a.Analyze(ctx, Input{
		ResumeText:     parsed.CleanText,
		JobDescription: job,
		Source:         filename,
		WordCount:      parsed.WordCount,
		OnProgress:     onProgress,
	})
}

// Keywords extracts the technical keywords of a job description.
func (a *Analyzer) Keywords(text string) []string {
	return a.scorer.Keywords().Extract(text)
}

// SkillGap compares taxonomy skills found in the resume against those in the job description.
func (a *Analyzer) SkillGap(resumeText, jobText string) *types.SkillGapResult {
	return a.skills.SkillGap(resumeText, jobText)
}

// ATSScore computes the composite ATS score for an already known skill-match percentage.
func (a *Analyzer) ATSScore(resumeText, jobText string, skillMatchPercent float64) *types.ATSScore {
	return a.scorer.CalculateATSScore(resumeText, jobText, skillMatchPercent)
}

// Match runs only the semantic comparison of resume and job description.
func (a *Analyzer) Match(ctx context.Context, resumeText, jobText string) (*types.MatchResult, error) {
	if a.embedder == nil {
		return nil, ErrNoEmbedder
	}
	return a.semanticMatch(ctx, resumeText, jobText, func(string, string, string, any) {})
}
