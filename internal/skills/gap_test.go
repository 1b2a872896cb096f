package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkillGap_PartialMatch(t *testing.T) {
	e := newTestExtractor(t)

	resume := "Python3 engineer. Built Flask APIs and deployed with Docker on K8s."
	job := "Looking for Python and FastAPI experience, Docker required, AWS a plus."

	gap := e.SkillGap(resume, job)

	assert.Equal(t, []string{"Docker", "Flask", "Kubernetes", "Python"}, gap.ResumeSkills)
	assert.Equal(t, []string{"AWS", "Docker", "FastAPI", "Python"}, gap.JobSkills)
	assert.Equal(t, []string{"Docker", "Python"}, gap.MatchedSkills)
	assert.Equal(t, []string{"AWS", "FastAPI"}, gap.MissingSkills)
	assert.Equal(t, []string{"Flask", "Kubernetes"}, gap.ExtraSkills)
	assert.Equal(t, 50.0, gap.SkillMatchPercent)
	assert.Equal(t, 4, gap.TotalJobSkills)
	assert.Equal(t, 2, gap.TotalMatched)
	assert.Equal(t, 2, gap.TotalMissing)
}

func TestSkillGap_EmptyJobSkills(t *testing.T) {
	e := newTestExtractor(t)

	gap := e.SkillGap("Python and Docker", "We value curiosity and kindness.")

	assert.Equal(t, 0.0, gap.SkillMatchPercent)
	assert.Empty(t, gap.JobSkills)
	assert.Empty(t, gap.MissingSkills)
	assert.Empty(t, gap.MatchedSkills)
	assert.Equal(t, []string{"Docker", "Python"}, gap.ExtraSkills)
	assert.NotNil(t, gap.MissingSkills)
}

func TestSkillGap_Rounding(t *testing.T) {
	e := newTestExtractor(t)

	gap := e.SkillGap("Python", "Python, Java and Docker")

	assert.Equal(t, 33.33, gap.SkillMatchPercent)
}

func TestSkillGap_PartitionProperties(t *testing.T) {
	e := newTestExtractor(t)

	cases := [][2]string{
		{"", ""},
		{"Python Java Go", "Java"},
		{"Docker", "Python Java Go Docker Kubernetes AWS"},
		{"Spring Boot and golang", "spring   boot, Golang, Flask"},
	}

	for _, c := range cases {
		gap := e.SkillGap(c[0], c[1])

		// matched and missing partition the job skills
		union := append(append([]string{}, gap.MatchedSkills...), gap.MissingSkills...)
		assert.ElementsMatch(t, gap.JobSkills, union)
		for _, m := range gap.MatchedSkills {
			assert.NotContains(t, gap.MissingSkills, m)
		}

		// extra is resume minus job
		for _, x := range gap.ExtraSkills {
			assert.Contains(t, gap.ResumeSkills, x)
			assert.NotContains(t, gap.JobSkills, x)
		}

		assert.GreaterOrEqual(t, gap.SkillMatchPercent, 0.0)
		assert.LessOrEqual(t, gap.SkillMatchPercent, 100.0)
	}
}
