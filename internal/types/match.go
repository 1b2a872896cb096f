// Package types provides type definitions for structured data used throughout the resume-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// TextChunk is a contiguous word window of resume text with its embedding
type TextChunk struct {
	Text      string    `json:"text"`
	Embedding []float32 `json:"embedding,omitempty"`
}

// ChunkScore pairs a chunk's text with its similarity to the job description (0-100)
type ChunkScore struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// MatchResult represents the semantic comparison of a resume and a job description
type MatchResult struct {
	Score                 float64      `json:"match_score"`
	Label                 string       `json:"label"`
	MostRelevantSections  []ChunkScore `json:"most_relevant_sections"`
	LeastRelevantSections []ChunkScore `json:"least_relevant_sections"`
	AllChunks             []ChunkScore `json:"all_chunks"`
}
