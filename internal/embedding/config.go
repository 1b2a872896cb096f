// Package embedding turns resume and job description text into fixed-dimension vectors.
package embedding

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Provider names an embedding backend
type Provider string

const (
	// ProviderGemini embeds through the Gemini API
	ProviderGemini Provider = "gemini"
	// ProviderHash embeds locally with feature hashing; no network access
	ProviderHash Provider = "hash"
)

// Defaults
const (
	DefaultGeminiModel    = "text-embedding-004"
	DefaultGeminiDims     = 768
	DefaultHashDimensions = 384
	DefaultChunkSize      = 100
	DefaultMinChunkChars  = 20
)

// Config selects and configures an embedding backend
type Config struct {
	Provider   Provider
	Model      string
	Dimensions int
}

// DefaultConfig returns the Gemini configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider:   ProviderGemini,
		Model:      DefaultGeminiModel,
		Dimensions: DefaultGeminiDims,
	}
}

// HashConfig returns the offline configuration.
func HashConfig() *Config {
	return &Config{
		Provider:   ProviderHash,
		Model:      hashModelName,
		Dimensions: DefaultHashDimensions,
	}
}

// New builds the embedder described by cfg. apiKey is only used by remote providers.
func New(ctx context.Context, cfg *Config, apiKey string, logger *zap.Logger) (Embedder, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	switch cfg.Provider {
	case ProviderGemini, "":
		return NewGeminiEmbedder(ctx, cfg, apiKey, logger)
	case ProviderHash:
		return NewHashEmbedder(cfg.Dimensions), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}
