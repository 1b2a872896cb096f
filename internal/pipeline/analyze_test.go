package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/taxonomy"
)

const testResume = `Summary
Backend engineer with 6 years of Python experience.
Experience
Built FastAPI services and deployed them with Docker on AWS. Reduced latency by 35%.
Education
BS Computer Science
Skills
Python, FastAPI, Docker, AWS, PostgreSQL`

const testJob = `We are hiring a backend engineer with strong Python and FastAPI skills.
Docker and Kubernetes experience required. AWS is a plus.`

func newTestAnalyzer(t *testing.T, opts ...Option) *Analyzer {
	t.Helper()
	tax, err := taxonomy.Default()
	require.NoError(t, err)
	opts = append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)
	return NewAnalyzer(tax, opts...)
}

func TestAnalyze_LexicalOnly(t *testing.T) {
	a := newTestAnalyzer(t)
	assert.False(t, a.Semantic())

	report, err := a.Analyze(context.Background(), Input{
		ResumeText:     testResume,
		JobDescription: testJob,
		Source:         "resume.txt",
	})
	require.NoError(t, err)

	assert.Equal(t, "resume.txt", report.Source)
	assert.Contains(t, report.MatchedSkills, "Python")
	assert.Contains(t, report.MatchedSkills, "Docker")
	assert.Contains(t, report.MissingSkills, "Kubernetes")
	assert.Equal(t, report.TotalMatched+report.TotalMissing, report.TotalJobSkills)
	assert.Equal(t, report.SkillMatchPercent, report.ATSBreakdown.SkillCoverage.Score)
	assert.Equal(t, 100.0, report.ATSBreakdown.SectionStructure.Score)
	assert.Equal(t, len(strings.Fields(testResume)), report.WordCount)
	assert.GreaterOrEqual(t, report.ATSScore, 0.0)
	assert.LessOrEqual(t, report.ATSScore, 100.0)
	assert.NotEmpty(t, report.ATSLabel)
	assert.Nil(t, report.Semantic)
}

func TestAnalyze_WithSemanticMatch(t *testing.T) {
	a := newTestAnalyzer(t, WithEmbedder(embedding.NewHashEmbedder(0), embedding.DefaultChunkOptions()))
	require.True(t, a.Semantic())

	report, err := a.Analyze(context.Background(), Input{ResumeText: testResume, JobDescription: testJob})
	require.NoError(t, err)
	require.NotNil(t, report.Semantic)

	assert.GreaterOrEqual(t, report.Semantic.Score, 0.0)
	assert.LessOrEqual(t, report.Semantic.Score, 100.0)
	assert.NotEmpty(t, report.Semantic.AllChunks)
	assert.NotEmpty(t, report.Semantic.Label)
}

func TestAnalyze_IdenticalTextsArePerfect(t *testing.T) {
	a := newTestAnalyzer(t, WithEmbedder(embedding.NewHashEmbedder(0), embedding.DefaultChunkOptions()))

	report, err := a.Analyze(context.Background(), Input{ResumeText: testJob, JobDescription: testJob})
	require.NoError(t, err)
	require.NotNil(t, report.Semantic)
	assert.InDelta(t, 100.0, report.Semantic.Score, 0.01)
	assert.Equal(t, 100.0, report.SkillMatchPercent)
}

func TestAnalyze_RejectsShortJobDescription(t *testing.T) {
	a := newTestAnalyzer(t)

	for _, job := range []string{"", "   ", "too short", "  exactly nineteen  "} {
		_, err := a.Analyze(context.Background(), Input{ResumeText: testResume, JobDescription: job})
		var inputErr *InputError
		require.ErrorAs(t, err, &inputErr, "job %q", job)
		assert.Equal(t, MsgInvalidJobDescription, inputErr.Message)
	}

	// 20 characters after trimming is enough
	_, err := a.Analyze(context.Background(), Input{ResumeText: testResume, JobDescription: "  Senior Python developer  "})
	assert.NoError(t, err)
}

func TestAnalyze_RejectsEmptyResume(t *testing.T) {
	a := newTestAnalyzer(t)

	_, err := a.Analyze(context.Background(), Input{ResumeText: " \n ", JobDescription: testJob})
	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, MsgEmptyResume, inputErr.Message)
}

func TestAnalyze_ProgressEvents(t *testing.T) {
	a := newTestAnalyzer(t, WithEmbedder(embedding.NewHashEmbedder(64), embedding.DefaultChunkOptions()))

	var (
		mu    sync.Mutex
		steps []string
	)
	_, err := a.Analyze(context.Background(), Input{
		ResumeText:     testResume,
		JobDescription: testJob,
		OnProgress: func(e ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			steps = append(steps, e.Step)
		},
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{StepSkillGap, StepATSScore, StepEmbedding, StepSemantic, StepComplete}, steps)
	assert.Equal(t, StepComplete, steps[len(steps)-1])
}

type failingEmbedder struct {
	*embedding.HashEmbedder
}

func (failingEmbedder) EmbedBatch(context.Context, []string) ([][]float32, error) {
	return nil, errors.New("quota exceeded")
}

func TestAnalyze_EmbedderFailure(t *testing.T) {
	a := newTestAnalyzer(t, WithEmbedder(failingEmbedder{embedding.NewHashEmbedder(16)}, embedding.DefaultChunkOptions()))

	report, err := a.Analyze(context.Background(), Input{ResumeText: testResume, JobDescription: testJob})
	require.Error(t, err)
	assert.Nil(t, report)
	assert.Contains(t, err.Error(), "semantic match failed")
}

func TestAnalyze_CanceledContext(t *testing.T) {
	a := newTestAnalyzer(t, WithEmbedder(embedding.NewHashEmbedder(16), embedding.DefaultChunkOptions()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Analyze(ctx, Input{ResumeText: testResume, JobDescription: testJob})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzeDocument(t *testing.T) {
	a := newTestAnalyzer(t)

	var parsed bool
	report, err := a.AnalyzeDocument(context.Background(), []byte(testResume), "resume.txt", testJob, func(e ProgressEvent) {
		if e.Step == StepParse {
			parsed = true
		}
	})
	require.NoError(t, err)
	assert.True(t, parsed)
	assert.Equal(t, "resume.txt", report.Source)
	assert.Contains(t, report.MatchedSkills, "FastAPI")
}

func TestAnalyzeDocument_ParseFailures(t *testing.T) {
	a := newTestAnalyzer(t)

	_, err := a.AnalyzeDocument(context.Background(), []byte(testResume), "resume.odt", testJob, nil)
	var parseErr *ingestion.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, ingestion.MsgUnsupported, parseErr.Message)

	_, err = a.AnalyzeDocument(context.Background(), []byte("Python"), "resume.txt", testJob, nil)
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, ingestion.MsgNoText, parseErr.Message)
}

func TestAnalyzeDocument_ValidatesJobFirst(t *testing.T) {
	a := newTestAnalyzer(t)

	_, err := a.AnalyzeDocument(context.Background(), []byte("not parsed"), "resume.odt", "short", nil)
	var inputErr *InputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestMatch(t *testing.T) {
	_, err := newTestAnalyzer(t).Match(context.Background(), testResume, testJob)
	assert.ErrorIs(t, err, ErrNoEmbedder)

	a := newTestAnalyzer(t, WithEmbedder(embedding.NewHashEmbedder(0), embedding.DefaultChunkOptions()))
	result, err := a.Match(context.Background(), testResume, testJob)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Label)
	assert.Len(t, result.MostRelevantSections, 1)
}

func TestLexicalAccessors(t *testing.T) {
	a := newTestAnalyzer(t)

	assert.Contains(t, a.Keywords(testJob), "Python")

	gap := a.SkillGap(testResume, testJob)
	score := a.ATSScore(testResume, testJob, gap.SkillMatchPercent)
	report, err := a.Analyze(context.Background(), Input{ResumeText: testResume, JobDescription: testJob})
	require.NoError(t, err)
	assert.Equal(t, report.ATSScore, score.Score)
}
