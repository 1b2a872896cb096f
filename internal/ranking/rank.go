package ranking

import (
	"fmt"
	"sort"

	"github.com/jonathan/resume-matcher/internal/types"
)

// relevantSections is how many chunks are reported at each end of the ranking
const relevantSections = 2

// RankChunks scores every chunk against the job vector and sorts the results by score, highest first.
// Chunks with equal scores keep their original order.
func RankChunks(chunks []types.TextChunk, jobVec []float32) ([]types.ChunkScore, error) {
	scored := make([]types.ChunkScore, 0, len(chunks))
	for i, chunk := range chunks {
		sim, err := CosineSimilarity(chunk.Embedding, jobVec)
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", i, err)
		}
		scored = append(scored, types.ChunkScore{Text: chunk.Text, Score: toPercent(sim)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored, nil
}

// AnalyzeMatch compares the resume and job vectors and ranks the resume chunks.
// The two most and two least relevant chunks overlap when there are fewer than four.
func AnalyzeMatch(resumeVec, jobVec []float32, chunks []types.TextChunk) (*types.MatchResult, error) {
	score, err := OverallScore(resumeVec, jobVec)
	if err != nil {
		return nil, fmt.Errorf("failed to score resume: %w", err)
	}

	ranked, err := RankChunks(chunks, jobVec)
	if err != nil {
		return nil, fmt.Errorf("failed to rank chunks: %w", err)
	}

	return &types.MatchResult{
		Score:                 score,
		Label:                 MatchLabel(score),
		MostRelevantSections:  head(ranked, relevantSections),
		LeastRelevantSections: tail(ranked, relevantSections),
		AllChunks:             ranked,
	}, nil
}

func head(s []types.ChunkScore, n int) []types.ChunkScore {
	if len(s) < n {
		n = len(s)
	}
	return append([]types.ChunkScore{}, s[:n]...)
}

func tail(s []types.ChunkScore, n int) []types.ChunkScore {
	if len(s) < n {
		n = len(s)
	}
	return append([]types.ChunkScore{}, s[len(s)-n:]...)
}
