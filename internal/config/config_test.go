package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/embedding"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "gemini", cfg.EmbeddingProvider)
	assert.Equal(t, embedding.DefaultGeminiModel, cfg.EmbeddingModel)
	assert.Equal(t, 100, cfg.ChunkSize)
	assert.Equal(t, 20, cfg.MinChunkChars)
	assert.Equal(t, 24, cfg.JWTExpirationHours)
	assert.True(t, cfg.RateLimitEnabled)
	assert.False(t, cfg.AuthEnabled())
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	path := writeFile(t, "ats.yaml", `
port: 9000
embedding_provider: hash
chunk_size: 80
verbose: true
`)
	t.Setenv("ATS_CHUNK_SIZE", "50")
	t.Setenv("GEMINI_API_KEY", "legacy-key")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", 8080, "")
	flags.Bool("debug", false, "")
	require.NoError(t, flags.Parse([]string{"--port", "7000"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Port, "explicit flag wins")
	assert.Equal(t, 50, cfg.ChunkSize, "env beats file")
	assert.Equal(t, "hash", cfg.EmbeddingProvider, "file beats default")
	assert.Equal(t, "legacy-key", cfg.APIKey)
	assert.True(t, cfg.Verbose)
	assert.False(t, cfg.Debug, "unset flag keeps default")
}

func TestLoad_PrefixedEnvBeatsLegacy(t *testing.T) {
	t.Setenv("ATS_DATABASE_URL", "postgres://new")
	t.Setenv("DATABASE_URL", "postgres://old")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "postgres://new", cfg.DatabaseURL)
}

func TestLoad_JSONFile(t *testing.T) {
	path := writeFile(t, "ats.json", `{"jwt_secret": "s3cret", "jwt_expiration_hours": 2, "rate_limit_rps": 5.5}`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	jwt, err := cfg.JWT()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", jwt.Secret)
	assert.Equal(t, 2, jwt.ExpirationHours)
	assert.Equal(t, 5.5, cfg.RateLimitRPS)
	assert.True(t, cfg.AuthEnabled())
}

func TestLoad_FileErrors(t *testing.T) {
	_, err := Load("/nonexistent/path/ats.yaml", nil)
	assert.ErrorContains(t, err, "failed to read config file")

	_, err = Load(writeFile(t, "ats.json", `{ invalid json }`), nil)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Port:              8080,
			EmbeddingProvider: "hash",
			ChunkSize:         100,
			RateLimitEnabled:  true,
			RateLimitRPS:      1,
			RateLimitBurst:    1,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		message string
	}{
		{"port out of range", func(c *Config) { c.Port = 70000 }, "'port'"},
		{"unknown provider", func(c *Config) { c.EmbeddingProvider = "openai" }, "embedding_provider"},
		{"zero chunk size", func(c *Config) { c.ChunkSize = 0 }, "chunk_size"},
		{"negative min chars", func(c *Config) { c.MinChunkChars = -1 }, "min_chunk_chars"},
		{"zero rps", func(c *Config) { c.RateLimitRPS = 0 }, "rate_limit_rps"},
		{"zero burst", func(c *Config) { c.RateLimitBurst = 0 }, "rate_limit_burst"},
		{"jwt without expiry", func(c *Config) { c.JWTSecret = "x"; c.JWTExpirationHours = 0 }, "jwt_expiration_hours"},
		{"missing taxonomy", func(c *Config) { c.TaxonomyPath = "/nonexistent/skills.json" }, "taxonomy file not found"},
	}

	base := valid()
	require.NoError(t, base.Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			assert.ErrorContains(t, c.Validate(), tt.message)
		})
	}

	disabled := valid()
	disabled.RateLimitEnabled = false
	disabled.RateLimitRPS = 0
	assert.NoError(t, disabled.Validate())
}

func TestEmbeddingConfig(t *testing.T) {
	c := Config{EmbeddingProvider: "gemini", EmbeddingModel: "custom-embed"}
	e := c.Embedding()
	assert.Equal(t, embedding.ProviderGemini, e.Provider)
	assert.Equal(t, "custom-embed", e.Model)
	assert.Equal(t, embedding.DefaultGeminiDims, e.Dimensions)

	c = Config{EmbeddingProvider: "hash", EmbeddingDimensions: 128}
	e = c.Embedding()
	assert.Equal(t, embedding.ProviderHash, e.Provider)
	assert.Equal(t, 128, e.Dimensions)
}

func TestJWT_RequiresSecret(t *testing.T) {
	_, err := (&Config{JWTExpirationHours: 24}).JWT()
	assert.ErrorContains(t, err, "jwt_secret is required")
}
