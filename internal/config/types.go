package config

// ProviderType identifies an embedding/generation provider.
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderOllama ProviderType = "ollama"
)

// Config is the top-level configuration, corresponding to .genai.yml.
type Config struct {
	Provider          ProviderType `yaml:"provider" koanf:"provider"`
	Model             string       `yaml:"model" koanf:"model"`
	EmbeddingProvider ProviderType `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel    string       `yaml:"embedding_model" koanf:"embedding_model"`

	DataDir  string   `yaml:"data_dir" koanf:"data_dir"`
	IndexDir string   `yaml:"index_dir" koanf:"index_dir"`
	Include  []string `yaml:"include" koanf:"include"`
	Exclude  []string `yaml:"exclude" koanf:"exclude"`

	ChunkSize    int `yaml:"chunk_size" koanf:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap" koanf:"chunk_overlap"`

	TopK            int `yaml:"top_k" koanf:"top_k"`
	MaxAnswerTokens int `yaml:"max_answer_tokens" koanf:"max_answer_tokens"`

	Server  ServerConfig  `yaml:"server" koanf:"server"`
	History HistoryConfig `yaml:"history" koanf:"history"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all" koanf:"allow_all"` // allow all CORS origins (dev mode)
}

// HistoryConfig controls the question/answer log kept by the server.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled" koanf:"enabled"`
	Path    string `yaml:"path" koanf:"path"` // defaults to <index_dir>/history.db
}
