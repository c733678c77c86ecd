package config

// DefaultConfig returns a Config with sensible defaults: OpenAI for both
// embeddings and generation, data/ and index/ next to the config file,
// and the standard 1000/150 chunking.
func DefaultConfig() *Config {
	return &Config{
		Provider:          ProviderOpenAI,
		Model:             "gpt-4o-mini",
		EmbeddingProvider: ProviderOpenAI,
		EmbeddingModel:    "text-embedding-3-small",
		DataDir:           "data",
		IndexDir:          "index",
		ChunkSize:         1000,
		ChunkOverlap:      150,
		TopK:              4,
		MaxAnswerTokens:   512,
		Server: ServerConfig{
			Port: 8000,
		},
		History: HistoryConfig{
			Enabled: true,
		},
	}
}

// DefaultEmbeddingModel maps a provider to its usual embedding model.
func DefaultEmbeddingModel(provider ProviderType) string {
	switch provider {
	case ProviderOllama:
		return "nomic-embed-text"
	default:
		return "text-embedding-3-small"
	}
}

// DefaultChatModel maps a provider to its usual generation model.
func DefaultChatModel(provider ProviderType) string {
	switch provider {
	case ProviderOllama:
		return "llama3"
	default:
		return "gpt-4o-mini"
	}
}
