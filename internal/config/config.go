// Package config loads service and CLI configuration from files, environment variables and flags.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jonathan/resume-matcher/internal/embedding"
)

// EnvPrefix prefixes every environment variable read by Load (ATS_PORT, ATS_API_KEY, ...).
const EnvPrefix = "ATS"

// Config holds all settings. Keys are the mapstructure tags; flags use the same names with dashes.
type Config struct {
	Port int `mapstructure:"port"`

	// Persistence: Postgres for the server, SQLite for local history
	DatabaseURL string `mapstructure:"database_url"`
	SQLitePath  string `mapstructure:"sqlite_path"`

	// Embeddings
	APIKey              string `mapstructure:"api_key"`
	EmbeddingProvider   string `mapstructure:"embedding_provider"`
	EmbeddingModel      string `mapstructure:"embedding_model"`
	EmbeddingDimensions int    `mapstructure:"embedding_dimensions"`
	ChunkSize           int    `mapstructure:"chunk_size"`
	MinChunkChars       int    `mapstructure:"min_chunk_chars"`

	// TaxonomyPath replaces the embedded skills taxonomy when set
	TaxonomyPath string `mapstructure:"taxonomy_path"`

	JWTSecret          string `mapstructure:"jwt_secret"`
	JWTExpirationHours int    `mapstructure:"jwt_expiration_hours"`

	RateLimitEnabled bool    `mapstructure:"rate_limit_enabled"`
	RateLimitRPS     float64 `mapstructure:"rate_limit_rps"`
	RateLimitBurst   int     `mapstructure:"rate_limit_burst"`

	UseBrowser bool `mapstructure:"use_browser"`
	LogJSON    bool `mapstructure:"log_json"`
	Debug      bool `mapstructure:"debug"`
	Verbose    bool `mapstructure:"verbose"`
}

var defaults = map[string]any{
	"port":                 8080,
	"database_url":         "",
	"sqlite_path":          "",
	"api_key":              "",
	"embedding_provider":   string(embedding.ProviderGemini),
	"embedding_model":      embedding.DefaultGeminiModel,
	"embedding_dimensions": 0,
	"chunk_size":           embedding.DefaultChunkSize,
	"min_chunk_chars":      embedding.DefaultMinChunkChars,
	"taxonomy_path":        "",
	"jwt_secret":           "",
	"jwt_expiration_hours": 24,
	"rate_limit_enabled":   true,
	"rate_limit_rps":       2.0,
	"rate_limit_burst":     10,
	"use_browser":          false,
	"log_json":             false,
	"debug":                false,
	"verbose":              false,
}

// unprefixed environment names still honoured
var legacyEnv = map[string]string{
	"database_url": "DATABASE_URL",
	"api_key":      "GEMINI_API_KEY",
	"jwt_secret":   "JWT_SECRET",
	"port":         "PORT",
}

// Load builds a Config from defaults, then the optional config file at path (JSON, YAML or TOML),
// then environment variables, then any flags in flags that were set explicitly.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	for key, legacy := range legacyEnv {
		if err := v.BindEnv(key, EnvPrefix+"_"+strings.ToUpper(key), legacy); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if flags != nil {
		for key := range defaults {
			if f := flags.Lookup(strings.ReplaceAll(key, "_", "-")); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", f.Name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535, got %d", c.Port)
	}

	switch embedding.Provider(c.EmbeddingProvider) {
	case embedding.ProviderGemini, embedding.ProviderHash:
	default:
		return fmt.Errorf("config error: unknown 'embedding_provider' %q (want gemini or hash)", c.EmbeddingProvider)
	}

	if c.EmbeddingDimensions < 0 {
		return fmt.Errorf("config error: 'embedding_dimensions' must be non-negative")
	}
	if c.ChunkSize < 1 {
		return fmt.Errorf("config error: 'chunk_size' must be at least 1")
	}
	if c.MinChunkChars < 0 {
		return fmt.Errorf("config error: 'min_chunk_chars' must be non-negative")
	}

	if c.RateLimitEnabled {
		if c.RateLimitRPS <= 0 {
			return fmt.Errorf("config error: 'rate_limit_rps' must be positive when rate limiting is enabled")
		}
		if c.RateLimitBurst < 1 {
			return fmt.Errorf("config error: 'rate_limit_burst' must be at least 1")
		}
	}

	if c.JWTSecret != "" && c.JWTExpirationHours < 1 {
		return fmt.Errorf("config error: 'jwt_expiration_hours' must be at least 1, got %d", c.JWTExpirationHours)
	}

	if c.TaxonomyPath != "" {
		if _, err := os.Stat(c.TaxonomyPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: taxonomy file not found: %s", c.TaxonomyPath)
		}
	}

	return nil
}

// Embedding returns the embedder configuration.
func (c *Config) Embedding() *embedding.Config {
	cfg := embedding.DefaultConfig()
	if embedding.Provider(c.EmbeddingProvider) == embedding.ProviderHash {
		cfg = embedding.HashConfig()
	} else if c.EmbeddingModel != "" {
		cfg.Model = c.EmbeddingModel
	}
	if c.EmbeddingDimensions > 0 {
		cfg.Dimensions = c.EmbeddingDimensions
	}
	return cfg
}

// Chunking returns the resume chunking options.
func (c *Config) Chunking() embedding.ChunkOptions {
	return embedding.ChunkOptions{Size: c.ChunkSize, MinChars: c.MinChunkChars}
}
