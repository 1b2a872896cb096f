// Package scoring computes the lexical ATS sub-scores and the weighted composite score.
package scoring

import (
	"math"
	"regexp"
	"strings"

	"github.com/jonathan/resume-matcher/internal/keywords"
	"github.com/jonathan/resume-matcher/internal/types"
)

// sectionMarkers are the resume sections checked for presence, each worth 25 points.
// Patterns run against lower-cased text.
var sectionMarkers = []*regexp.Regexp{
	regexp.MustCompile(`\b(experience|projects?)\b`),
	regexp.MustCompile(`\beducation\b`),
	regexp.MustCompile(`\bskills?\b`),
	regexp.MustCompile(`\b(summary|objective|career)\b`),
}

const sectionPoints = 25.0

var (
	percentPattern    = regexp.MustCompile(`\d+\.?\d*\s*%`)
	quantifierPattern = regexp.MustCompile(`\b\d+\s+[a-zA-Z]+`)
)

// actionWords are counted as achievement evidence wherever they appear as whole words
var actionWords = []string{
	"improved", "achieved", "reduced", "increased",
	"built", "designed", "developed", "deployed",
}

var actionPatterns = compileActionPatterns(actionWords)

func compileActionPatterns(words []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		patterns[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(w) + `\b`)
	}
	return patterns
}

const (
	pointsPerAchievement = 10.0
	maxScore             = 100.0
)

// KeywordMatch extracts keywords from the job text and checks each one against the resume
// as a case-insensitive substring. The score is the matched share as a percentage.
// A job text with no keywords scores 0 with empty lists.
func KeywordMatch(extractor *keywords.Extractor, resumeText, jobText string) types.KeywordMatch {
	jobKeywords := extractor.Extract(jobText)

	result := types.KeywordMatch{
		Matched: make([]string, 0),
		Missing: make([]string, 0),
	}
	if len(jobKeywords) == 0 {
		return result
	}

	resumeLower := strings.ToLower(resumeText)
	for _, kw := range jobKeywords {
		if strings.Contains(resumeLower, strings.ToLower(kw)) {
			result.Matched = append(result.Matched, kw)
		} else {
			result.Missing = append(result.Missing, kw)
		}
	}

	result.Score = round2(float64(len(result.Matched)) / float64(len(jobKeywords)) * 100)
	return result
}

// SectionStructureScore awards 25 points for each standard resume section present:
// experience or projects, education, skills, and summary/objective/career.
func SectionStructureScore(resumeText string) float64 {
	text := strings.ToLower(resumeText)

	total := 0.0
	for _, marker := range sectionMarkers {
		if marker.MatchString(text) {
			total += sectionPoints
		}
	}
	return total
}

// AchievementScore counts quantified results and action verbs in the resume.
// Each hit is worth 10 points, capped at 100.
func AchievementScore(resumeText string) float64 {
	return math.Min(float64(countAchievements(resumeText))*pointsPerAchievement, maxScore)
}

func countAchievements(text string) int {
	count := len(percentPattern.FindAllStringIndex(text, -1))
	count += len(quantifierPattern.FindAllStringIndex(text, -1))
	for _, re := range actionPatterns {
		count += len(re.FindAllStringIndex(text, -1))
	}
	return count
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
