package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/taxonomy"
)

func TestMatchSkill(t *testing.T) {
	tests := []struct {
		name  string
		skill taxonomy.Skill
		text  string
		want  bool
	}{
		{"name case-insensitive", taxonomy.Skill{Name: "Python"}, "Strong PYTHON background", true},
		{"alias match", taxonomy.Skill{Name: "Kubernetes", Aliases: []string{"K8s"}}, "deployed on k8s clusters", true},
		{"word boundary blocks substring", taxonomy.Skill{Name: "Java"}, "JavaScript only", false},
		{"dot is literal", taxonomy.Skill{Name: "Node.js"}, "NodeXjs services", false},
		{"dotted name matches", taxonomy.Skill{Name: "Node.js"}, "built with Node.js and React", true},
		{"plus signs escaped", taxonomy.Skill{Name: "C++"}, "Senior C++ developer", true},
		{"plus signs at end of text", taxonomy.Skill{Name: "C++"}, "Languages: C, C++", true},
		{"plus signs need a boundary before", taxonomy.Skill{Name: "C++"}, "ObjC++ bindings", false},
		{"hash escaped", taxonomy.Skill{Name: "C#"}, "C# and .NET", true},
		{"leading dot", taxonomy.Skill{Name: ".NET"}, "Experience with .NET Core", true},
		{"leading dot not inside word", taxonomy.Skill{Name: ".NET"}, "ASP.NET only", false},
		{"multi-word flexible whitespace", taxonomy.Skill{Name: "Machine Learning"}, "applied machine\n   learning", true},
		{"multi-word needs boundary", taxonomy.Skill{Name: "Machine Learning"}, "machine learnings", false},
		{"empty alias skipped", taxonomy.Skill{Name: "Rust", Aliases: []string{"", "  "}}, "Go only", false},
		{"empty text", taxonomy.Skill{Name: "Rust"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchSkill(tt.skill, tt.text))
		})
	}
}

func TestPattern_Empty(t *testing.T) {
	assert.Nil(t, Pattern(""))
	assert.Nil(t, Pattern("   "))
	assert.Nil(t, ExactPattern(""))
}

func TestExactPattern_LiteralSpaces(t *testing.T) {
	re := ExactPattern("machine learning")
	require.NotNil(t, re)
	assert.True(t, re.MatchString("Machine Learning engineer"))
	assert.False(t, re.MatchString("machine  learning"))
}

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	tax, err := taxonomy.Load([]byte(`{
		"technical_skills_taxonomy": {
			"languages": {"skills": [
				{"name": "Python", "aliases": ["Python3"]},
				{"name": "Java"},
				{"name": "Go", "aliases": ["Golang"]}
			]},
			"frameworks": {"skills": [
				{"name": "FastAPI"},
				{"name": "Flask"},
				{"name": "Spring Boot"}
			]},
			"devops": {"skills": [
				{"name": "Docker"},
				{"name": "Kubernetes", "aliases": ["K8s"]},
				{"name": "AWS", "aliases": ["Amazon Web Services"]}
			]}
		}
	}`))
	require.NoError(t, err)
	return NewExtractor(tax)
}

func TestExtractor_Extract_SortedCanonicalNames(t *testing.T) {
	e := newTestExtractor(t)

	got := e.Extract("Shipped golang services on Amazon Web Services with docker and Flask")
	assert.Equal(t, []string{"AWS", "Docker", "Flask", "Go"}, got)
}

func TestExtractor_Extract_EmptyText(t *testing.T) {
	e := newTestExtractor(t)

	got := e.Extract("   ")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestExtractor_DefaultTaxonomy(t *testing.T) {
	tax, err := taxonomy.Default()
	require.NoError(t, err)
	e := NewExtractor(tax)

	job := `We are looking for a Python developer with experience in machine learning,
deep learning, and NLP. Candidates should know PyTorch, scikit-learn,
and have experience deploying models using FastAPI or Flask.
Knowledge of Docker and cloud platforms like AWS is a plus.`

	got := e.Extract(job)
	for _, want := range []string{"AWS", "Deep Learning", "Docker", "FastAPI", "Flask", "Machine Learning", "NLP", "PyTorch", "Python", "scikit-learn"} {
		assert.Contains(t, got, want)
	}
}

func TestExtractor_DefaultTaxonomy_EnglishGoIsNotASkill(t *testing.T) {
	tax, err := taxonomy.Default()
	require.NoError(t, err)
	e := NewExtractor(tax)

	got := e.Extract("A self-starter who can hit the ground running and go the extra mile. Good to go on day one.")
	assert.Empty(t, got)

	got = e.Extract("Built services in Golang and the Go language")
	assert.Equal(t, []string{"Golang"}, got)
}
