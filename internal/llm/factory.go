package llm

import (
	"fmt"
	"os"

	"github.com/coolashishranjan44551-bit/Gen-Ai/internal/config"
)

// NewProvider creates a new LLM provider based on the given provider type
// and model. Supported provider types: "openai", "ollama". Credentials
// come from the environment; a missing key is a startup failure, not
// something discovered on the first request.
func NewProvider(providerType string, model string) (Provider, error) {
	switch providerType {
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("%w: OPENAI_API_KEY environment variable is not set", config.ErrMissingCredential)
		}
		return NewOpenAIProvider(apiKey, model, os.Getenv("OPENAI_BASE_URL")), nil

	case "ollama":
		host := os.Getenv("OLLAMA_HOST")
		if host == "" {
			host = "http://localhost:11434"
		}
		return NewOllamaProvider(host, model), nil

	default:
		return nil, fmt.Errorf("unsupported provider type: %s", providerType)
	}
}
