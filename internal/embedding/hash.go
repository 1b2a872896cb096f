package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"regexp"
	"strings"
)

const hashModelName = "feature-hash-v1"

var tokenPattern = regexp.MustCompile(`[a-z0-9][a-z0-9+#]*(?:\.[a-z0-9]+)*`)

// HashEmbedder is a deterministic bag-of-words embedder. Each lower-cased token is hashed
// into one of Dimensions() buckets with a hashed sign, and the vector is L2-normalised.
// Texts sharing vocabulary land close together; it needs no model or network.
type HashEmbedder struct {
	dims int
}

// NewHashEmbedder returns a hash embedder with dims buckets (DefaultHashDimensions if dims <= 0).
func NewHashEmbedder(dims int) *HashEmbedder {
	if dims <= 0 {
		dims = DefaultHashDimensions
	}
	return &HashEmbedder{dims: dims}
}

// Embed hashes the tokens of text. Text without tokens yields the zero vector.
func (h *HashEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vec := make([]float64, h.dims)
	for _, tok := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		f := fnv.New64a()
		_, _ = f.Write([]byte(tok))
		sum := f.Sum64()

		idx := int(sum % uint64(h.dims))
		if sum>>63 == 1 {
			vec[idx]--
		} else {
			vec[idx]++
		}
	}

	return normalize(vec), nil
}

// EmbedBatch embeds each text in turn
func (h *HashEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := h.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (h *HashEmbedder) Dimensions() int   { return h.dims }
func (h *HashEmbedder) ModelName() string { return hashModelName }
func (h *HashEmbedder) Close() error      { return nil }

func normalize(v []float64) []float32 {
	var norm float64
	for _, x := range v {
		norm += x * x
	}
	norm = math.Sqrt(norm)

	out := make([]float32, len(v))
	if norm == 0 {
		return out
	}
	for i, x := range v {
		out[i] = float32(x / norm)
	}
	return out
}
