package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/keywords"
	"github.com/jonathan/resume-matcher/internal/taxonomy"
)

const scenarioJob = "Looking for a Python developer with FastAPI and Docker experience, 3+ years."

func defaultKeywords(t *testing.T) *keywords.Extractor {
	t.Helper()
	tax, err := taxonomy.Default()
	require.NoError(t, err)
	return keywords.NewExtractor(tax)
}

func TestKeywordMatch(t *testing.T) {
	kw := KeywordMatch(defaultKeywords(t), "python and DOCKER engineer", scenarioJob)

	assert.Equal(t, []string{"Python", "Docker"}, kw.Matched)
	assert.Equal(t, []string{"FastAPI"}, kw.Missing)
	assert.Equal(t, 66.67, kw.Score)
}

func TestKeywordMatch_SubstringCounts(t *testing.T) {
	// containment is not word-bounded
	kw := KeywordMatch(defaultKeywords(t), "pythonista, dockerized", scenarioJob)

	assert.Equal(t, []string{"Python", "Docker"}, kw.Matched)
}

func TestKeywordMatch_NoJobKeywords(t *testing.T) {
	kw := KeywordMatch(defaultKeywords(t), "Python developer", "we are a friendly team")

	assert.Equal(t, 0.0, kw.Score)
	assert.NotNil(t, kw.Matched)
	assert.NotNil(t, kw.Missing)
	assert.Empty(t, kw.Matched)
	assert.Empty(t, kw.Missing)
}

func TestSectionStructureScore(t *testing.T) {
	tests := []struct {
		name   string
		resume string
		want   float64
	}{
		{"empty", "", 0},
		{"all four", "SUMMARY\nWork Experience\nEducation\nSkills", 100},
		{"projects counts as experience", "Projects: chat app", 25},
		{"singular skill", "Skill: Go", 25},
		{"career counts as summary", "Career objective and education", 50},
		{"presence only", "experience experience experience", 25},
		{"needs whole words", "reskilling inexperienced educational", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SectionStructureScore(tt.resume))
		})
	}
}

func TestAchievementScore(t *testing.T) {
	tests := []struct {
		name   string
		resume string
		want   float64
	}{
		{"percentages and action verbs", "Improved latency by 40% and reduced costs by 25%", 40},
		{"quantifier phrase", "Deployed 3 services", 20},
		{"decimal percent", "cut errors 12.5 %", 10},
		{"action words need whole words", "rebuilt and redesigned", 0},
		{"nothing", "Responsible for things", 0},
		{"capped", strings.Repeat("Built 10 APIs, improved 50% ", 10), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AchievementScore(tt.resume))
		})
	}
}
