// Package ranking scores a resume against a job description in embedding space and ranks resume chunks by relevance.
package ranking

import (
	"errors"
	"fmt"
	"math"
)

// ErrDimensionMismatch is returned when two compared vectors differ in length.
var ErrDimensionMismatch = errors.New("embedding dimensions do not match")

// CosineSimilarity returns the cosine of the angle between a and b.
// A zero-magnitude vector yields 0.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// OverallScore maps the similarity between resume and job vectors to a 0-100 percentage, rounded to 2 decimals.
func OverallScore(resumeVec, jobVec []float32) (float64, error) {
	sim, err := CosineSimilarity(resumeVec, jobVec)
	if err != nil {
		return 0, err
	}
	return toPercent(sim), nil
}

// MatchLabel maps an overall semantic score to its label.
func MatchLabel(score float64) string {
	switch {
	case score >= 95:
		return "Perfect Choice"
	case score >= 80:
		return "Good Match"
	case score >= 50:
		return "Average Match"
	default:
		return "Worst Match"
	}
}

// toPercent floors opposed vectors at 0 so scores stay within 0-100.
func toPercent(sim float64) float64 {
	return math.Max(0, math.Round(sim*100*100)/100)
}
