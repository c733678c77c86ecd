package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. The caller decides where to save it.
func RunWizard() (*Config, error) {
	fmt.Println("Let's configure your document chatbot.")
	fmt.Println()

	cfg := DefaultConfig()

	providerPrompt := promptui.Select{
		Label: "Select provider",
		Items: []string{"openai", "ollama"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	cfg.Provider = ProviderType(providerStr)
	cfg.EmbeddingProvider = cfg.Provider
	cfg.Model = DefaultChatModel(cfg.Provider)
	cfg.EmbeddingModel = DefaultEmbeddingModel(cfg.Provider)

	dataPrompt := promptui.Prompt{
		Label:   "Directory containing your documents",
		Default: cfg.DataDir,
	}
	if cfg.DataDir, err = dataPrompt.Run(); err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	indexPrompt := promptui.Prompt{
		Label:   "Directory for the persisted index",
		Default: cfg.IndexDir,
	}
	if cfg.IndexDir, err = indexPrompt.Run(); err != nil {
		return nil, fmt.Errorf("index dir: %w", err)
	}

	portPrompt := promptui.Prompt{
		Label:   "HTTP port for `genai serve`",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			p, err := strconv.Atoi(s)
			if err != nil || p <= 0 || p > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
