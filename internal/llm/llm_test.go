package llm

import (
	"errors"
	"testing"

	"github.com/coolashishranjan44551-bit/Gen-Ai/internal/config"
)

func TestNewProvider_OpenAIRequiresKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	_, err := NewProvider("openai", "gpt-4o-mini")
	if err == nil {
		t.Fatal("expected error when OPENAI_API_KEY is unset")
	}
	if !errors.Is(err, config.ErrMissingCredential) {
		t.Errorf("error %v does not wrap ErrMissingCredential", err)
	}

	t.Setenv("OPENAI_API_KEY", "sk-test")
	p, err := NewProvider("openai", "gpt-4o-mini")
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	if p.Name() != "openai" {
		t.Errorf("provider name %q, want openai", p.Name())
	}
}

func TestNewProvider_OllamaDefaultsHost(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "")
	p, err := NewProvider("ollama", "llama3")
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	op, ok := p.(*OllamaProvider)
	if !ok {
		t.Fatalf("expected *OllamaProvider, got %T", p)
	}
	if op.baseURL != "http://localhost:11434" {
		t.Errorf("baseURL %q, want default", op.baseURL)
	}
}

func TestNewProvider_Unsupported(t *testing.T) {
	if _, err := NewProvider("carrier-pigeon", "x"); err == nil {
		t.Fatal("expected error for unsupported provider")
	}
}
