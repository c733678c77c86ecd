package cmd

import (
	"fmt"
	"os"

	"github.com/coolashishranjan44551-bit/Gen-Ai/internal/config"
	"github.com/coolashishranjan44551-bit/Gen-Ai/internal/embeddings"
	"github.com/coolashishranjan44551-bit/Gen-Ai/internal/llm"
	"github.com/coolashishranjan44551-bit/Gen-Ai/internal/ragservice"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `genai init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.CheckCredentials(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// createEmbedderFromConfig creates an embeddings.Embedder based on config.
// This is the shared version used by the index, ask, chat, and serve commands.
func createEmbedderFromConfig(cfg *config.Config) (embeddings.Embedder, error) {
	provider := cfg.EffectiveEmbeddingProvider()
	model := cfg.EmbeddingModel
	if model == "" {
		model = config.DefaultEmbeddingModel(provider)
	}

	switch provider {
	case config.ProviderOpenAI:
		apiKey := os.Getenv(config.APIKeyEnvVar(config.ProviderOpenAI))
		if apiKey == "" {
			return nil, fmt.Errorf("%w: OPENAI_API_KEY environment variable is required for OpenAI embeddings", config.ErrMissingCredential)
		}
		return embeddings.NewOpenAIEmbedder(apiKey, embeddings.OpenAIModel(model), os.Getenv("OPENAI_BASE_URL")), nil
	case config.ProviderOllama:
		return embeddings.NewOllamaEmbedder(model, 768, os.Getenv("OLLAMA_HOST")), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", provider)
	}
}

// createProviderFromConfig creates an LLM provider based on config settings.
func createProviderFromConfig(cfg *config.Config) (llm.Provider, error) {
	return llm.NewProvider(string(cfg.Provider), cfg.Model)
}

// printAnswer writes an answer with its numbered citations to stdout.
func printAnswer(answer *ragservice.Answer) {
	fmt.Println(answer.Text)
	if len(answer.Sources) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Sources:")
	for i, src := range answer.Sources {
		location := src.Source
		if src.Page != "" {
			location = fmt.Sprintf("%s (page %s)", location, src.Page)
		}
		fmt.Printf("  %d. %s\n", i+1, location)
		if src.Snippet != "" {
			fmt.Printf("     %s\n", src.Snippet)
		}
	}
}
