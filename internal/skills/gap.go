package skills

import (
	"math"

	"github.com/jonathan/resume-matcher/internal/types"
)

// SkillGap compares the skills present in a resume with those present in a job description.
// Lists inherit the sorted order of Extract. The match percentage is relative to the job's
// skills and is 0 when the job mentions none.
func (e *Extractor) SkillGap(resumeText, jobText string) *types.SkillGapResult {
	resumeSkills := e.Extract(resumeText)
	jobSkills := e.Extract(jobText)

	resumeSet := toSet(resumeSkills)
	jobSet := toSet(jobSkills)

	matched := make([]string, 0)
	missing := make([]string, 0)
	for _, s := range jobSkills {
		if resumeSet[s] {
			matched = append(matched, s)
		} else {
			missing = append(missing, s)
		}
	}

	extra := make([]string, 0)
	for _, s := range resumeSkills {
		if !jobSet[s] {
			extra = append(extra, s)
		}
	}

	percent := 0.0
	if len(jobSkills) > 0 {
		percent = round2(float64(len(matched)) / float64(len(jobSkills)) * 100)
	}

	return &types.SkillGapResult{
		ResumeSkills:      resumeSkills,
		JobSkills:         jobSkills,
		MatchedSkills:     matched,
		MissingSkills:     missing,
		ExtraSkills:       extra,
		SkillMatchPercent: percent,
		TotalJobSkills:    len(jobSkills),
		TotalMatched:      len(matched),
		TotalMissing:      len(missing),
	}
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
