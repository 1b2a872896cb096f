package embedding

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-matcher/internal/types"
)

// ChunkOptions controls how resume text is split before chunk embedding
type ChunkOptions struct {
	// Size is the number of words per chunk
	Size int
	// MinChars drops chunks whose trimmed text is this many characters or fewer
	MinChars int
}

// DefaultChunkOptions returns 100-word chunks, dropping any of 20 characters or fewer.
func DefaultChunkOptions() ChunkOptions {
	return ChunkOptions{Size: DefaultChunkSize, MinChars: DefaultMinChunkChars}
}

// ChunkText splits text on whitespace into consecutive windows of size words joined by single spaces.
// Windows whose trimmed length is not greater than minChars are dropped.
func ChunkText(text string, size, minChars int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}

	words := strings.Fields(text)
	chunks := make([]string, 0, len(words)/size+1)
	for start := 0; start < len(words); start += size {
		end := min(start+size, len(words))
		chunk := strings.Join(words[start:end], " ")
		if len(strings.TrimSpace(chunk)) > minChars {
			chunks = append(chunks, chunk)
		}
	}
	return chunks
}

// Embeddings holds every vector needed for one semantic match
type Embeddings struct {
	Resume []float32
	Job    []float32
	Chunks []types.TextChunk
}

// EmbedResumeAndJob embeds the resume, the job description and each resume chunk concurrently.
// All returned vectors have the same length.
func EmbedResumeAndJob(ctx context.Context, e Embedder, resumeText, jobText string, opts ChunkOptions) (*Embeddings, error) {
	chunks := ChunkText(resumeText, opts.Size, opts.MinChars)
	out := &Embeddings{Chunks: make([]types.TextChunk, 0, len(chunks))}

	var chunkVecs [][]float32

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := e.Embed(gctx, resumeText)
		if err != nil {
			return fmt.Errorf("failed to embed resume: %w", err)
		}
		out.Resume = v
		return nil
	})
	g.Go(func() error {
		v, err := e.Embed(gctx, jobText)
		if err != nil {
			return fmt.Errorf("failed to embed job description: %w", err)
		}
		out.Job = v
		return nil
	})
	if len(chunks) > 0 {
		g.Go(func() error {
			v, err := e.EmbedBatch(gctx, chunks)
			if err != nil {
				return fmt.Errorf("failed to embed resume chunks: %w", err)
			}
			chunkVecs = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(chunkVecs) != len(chunks) {
		return nil, fmt.Errorf("expected %d chunk embeddings, got %d", len(chunks), len(chunkVecs))
	}

	dims := len(out.Resume)
	if len(out.Job) != dims {
		return nil, fmt.Errorf("%w: resume %d, job %d", ErrDimensionMismatch, dims, len(out.Job))
	}
	for i, text := range chunks {
		if len(chunkVecs[i]) != dims {
			return nil, fmt.Errorf("%w: resume %d, chunk %d has %d", ErrDimensionMismatch, dims, i, len(chunkVecs[i]))
		}
		out.Chunks = append(out.Chunks, types.TextChunk{Text: text, Embedding: chunkVecs[i]})
	}

	return out, nil
}
