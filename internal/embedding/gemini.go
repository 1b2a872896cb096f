package embedding

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// maxBatchSize is the most texts sent in one BatchEmbedContents call
const maxBatchSize = 100

// GeminiEmbedder implements Embedder with the Gemini embedding API
type GeminiEmbedder struct {
	client *genai.Client
	model  *genai.EmbeddingModel
	name   string
	dims   int
	logger *zap.Logger
}

// NewGeminiEmbedder creates a Gemini embedder
func NewGeminiEmbedder(ctx context.Context, cfg *Config, apiKey string, logger *zap.Logger) (*GeminiEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	name := cfg.Model
	if name == "" {
		name = DefaultGeminiModel
	}
	dims := cfg.Dimensions
	if dims <= 0 {
		dims = DefaultGeminiDims
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.EmbeddingModel(name)
	model.TaskType = genai.TaskTypeSemanticSimilarity

	return &GeminiEmbedder{
		client: client,
		model:  model,
		name:   name,
		dims:   dims,
		logger: logger,
	}, nil
}

// Embed returns the vector for text
func (g *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := g.model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, &Error{Model: g.name, Message: "embed request failed", Cause: err}
	}
	if resp == nil || resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, &Error{Model: g.name, Message: "empty embedding in response"}
	}
	return resp.Embedding.Values, nil
}

// EmbedBatch embeds texts in groups of at most maxBatchSize
func (g *GeminiEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))

	for start := 0; start < len(texts); start += maxBatchSize {
		end := min(start+maxBatchSize, len(texts))

		batch := g.model.NewBatch()
		for _, t := range texts[start:end] {
			batch.AddContent(genai.Text(t))
		}

		g.logger.Debug("embedding batch",
			zap.String("model", g.name),
			zap.Int("offset", start),
			zap.Int("size", end-start))

		resp, err := g.model.BatchEmbedContents(ctx, batch)
		if err != nil {
			return nil, &Error{Model: g.name, Message: "batch embed request failed", Cause: err}
		}
		if len(resp.Embeddings) != end-start {
			return nil, &Error{
				Model:   g.name,
				Message: fmt.Sprintf("expected %d embeddings, got %d", end-start, len(resp.Embeddings)),
			}
		}
		for _, e := range resp.Embeddings {
			vectors = append(vectors, e.Values)
		}
	}

	return vectors, nil
}

// Dimensions returns the configured vector size
func (g *GeminiEmbedder) Dimensions() int { return g.dims }

// ModelName returns the Gemini model name
func (g *GeminiEmbedder) ModelName() string { return g.name }

// Close releases the underlying client
func (g *GeminiEmbedder) Close() error {
	return g.client.Close()
}
