// Package config loads, validates, and persists the chatbot
// configuration from .genai.yml plus GENAI_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// ErrMissingCredential indicates the configured provider's API key env
// var is absent. Startup must not proceed without it.
var ErrMissingCredential = errors.New("missing provider credential")

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (GENAI_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: GENAI_PROVIDER -> provider, etc.
	// Double underscore separates nesting: GENAI_SERVER__PORT -> server.port.
	if err := k.Load(env.Provider("GENAI_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "GENAI_")), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validProviders is the set of recognized provider values.
var validProviders = map[ProviderType]bool{
	ProviderOpenAI: true,
	ProviderOllama: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Provider == "" {
		return fmt.Errorf("provider is required")
	}
	if !validProviders[c.Provider] {
		return fmt.Errorf("invalid provider %q: must be one of openai, ollama", c.Provider)
	}
	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	if c.EmbeddingProvider != "" && !validProviders[c.EmbeddingProvider] {
		return fmt.Errorf("invalid embedding_provider %q", c.EmbeddingProvider)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if c.IndexDir == "" {
		return fmt.Errorf("index_dir is required")
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive")
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("chunk_overlap must be in [0, chunk_size)")
	}
	if c.TopK < 1 {
		return fmt.Errorf("top_k must be at least 1")
	}
	if c.MaxAnswerTokens < 1 {
		return fmt.Errorf("max_answer_tokens must be at least 1")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be a valid port")
	}
	return nil
}

// CheckCredentials verifies the API keys required by the configured
// providers are present in the environment. Ollama needs none.
func (c *Config) CheckCredentials() error {
	for _, p := range []ProviderType{c.EffectiveEmbeddingProvider(), c.Provider} {
		if v := APIKeyEnvVar(p); v != "" && os.Getenv(v) == "" {
			return fmt.Errorf("%w: set %s in your environment or .env file", ErrMissingCredential, v)
		}
	}
	return nil
}

// EffectiveEmbeddingProvider returns the embedding provider, falling
// back to the generation provider when unset.
func (c *Config) EffectiveEmbeddingProvider() ProviderType {
	if c.EmbeddingProvider != "" {
		return c.EmbeddingProvider
	}
	return c.Provider
}

// APIKeyEnvVar returns the conventional environment variable name for
// the API key of the given provider, or "" when none is needed.
func APIKeyEnvVar(provider ProviderType) string {
	switch provider {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	default:
		return ""
	}
}
