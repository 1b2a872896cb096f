package scoring

import (
	"github.com/jonathan/resume-matcher/internal/keywords"
	"github.com/jonathan/resume-matcher/internal/taxonomy"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Component weights, as percentages of the composite score
const (
	KeywordWeight     = 40
	SkillWeight       = 30
	SectionWeight     = 15
	AchievementWeight = 15
)

// Scorer computes ATS scores. It is safe for concurrent use.
type Scorer struct {
	keywords *keywords.Extractor
}

// NewScorer builds a scorer whose keyword extraction uses tax.
func NewScorer(tax *taxonomy.Taxonomy) *Scorer {
	return &Scorer{keywords: keywords.NewExtractor(tax)}
}

// NewScorerWithExtractor builds a scorer around an existing keyword extractor.
func NewScorerWithExtractor(extractor *keywords.Extractor) *Scorer {
	return &Scorer{keywords: extractor}
}

// Keywords returns the scorer's keyword extractor.
func (s *Scorer) Keywords() *keywords.Extractor {
	return s.keywords
}

// CalculateATSScore combines keyword match, skill coverage (skillMatchPercent, passed in from the
// skill gap), section structure and achievement density into a weighted 0-100 score.
func (s *Scorer) CalculateATSScore(resumeText, jobText string, skillMatchPercent float64) *types.ATSScore {
	kw := KeywordMatch(s.keywords, resumeText, jobText)
	skill := round2(skillMatchPercent)
	section := SectionStructureScore(resumeText)
	achievement := AchievementScore(resumeText)

	score := Composite(kw.Score, skill, section, achievement)

	return &types.ATSScore{
		Score: score,
		Label: ATSLabel(score),
		Breakdown: types.ScoreBreakdown{
			KeywordMatch:     types.ComponentScore{Score: kw.Score, Weight: KeywordWeight},
			SkillCoverage:    types.ComponentScore{Score: skill, Weight: SkillWeight},
			SectionStructure: types.ComponentScore{Score: section, Weight: SectionWeight},
			Achievements:     types.ComponentScore{Score: achievement, Weight: AchievementWeight},
		},
		MatchedKeywords:     kw.Matched,
		MissingKeywords:     kw.Missing,
		KeywordMatchPercent: kw.Score,
	}
}

// Composite weights the four component scores and rounds to two decimals.
func Composite(keyword, skill, section, achievement float64) float64 {
	return round2(keyword*0.40 + skill*0.30 + section*0.15 + achievement*0.15)
}

// ATSLabel maps a composite score to its label.
func ATSLabel(score float64) string {
	switch {
	case score >= 95:
		return "Perfect Match"
	case score >= 80:
		return "Strong Match"
	case score >= 60:
		return "Good Match"
	case score >= 40:
		return "Partial Match"
	default:
		return "Low Match"
	}
}
