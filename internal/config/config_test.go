package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWhenFileAbsent(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), ".genai.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider != ProviderOpenAI || cfg.ChunkSize != 1000 || cfg.ChunkOverlap != 150 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.TopK != 4 || cfg.Server.Port != 8000 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".genai.yml")
	yaml := "provider: ollama\nmodel: llama3\ndata_dir: docs\nserver:\n  port: 9000\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GENAI_MODEL", "llama3:70b")
	t.Setenv("GENAI_SERVER__PORT", "9001")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider != ProviderOllama {
		t.Errorf("provider %q, want ollama", cfg.Provider)
	}
	if cfg.Model != "llama3:70b" {
		t.Errorf("env override lost: model %q", cfg.Model)
	}
	if cfg.DataDir != "docs" {
		t.Errorf("data_dir %q, want docs", cfg.DataDir)
	}
	if cfg.Server.Port != 9001 {
		t.Errorf("server.port %d, want 9001", cfg.Server.Port)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".genai.yml")
	cfg := DefaultConfig()
	cfg.Provider = ProviderOllama
	cfg.Model = "llama3"
	cfg.TopK = 6

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Provider != cfg.Provider || loaded.Model != cfg.Model || loaded.TopK != cfg.TopK {
		t.Errorf("round-trip mismatch: %+v", loaded)
	}
}

func TestValidate(t *testing.T) {
	breakages := map[string]func(*Config){
		"empty provider":    func(c *Config) { c.Provider = "" },
		"unknown provider":  func(c *Config) { c.Provider = "huggingface" },
		"empty model":       func(c *Config) { c.Model = "" },
		"empty data dir":    func(c *Config) { c.DataDir = "" },
		"zero chunk size":   func(c *Config) { c.ChunkSize = 0 },
		"overlap too large": func(c *Config) { c.ChunkOverlap = 1000 },
		"zero top_k":        func(c *Config) { c.TopK = 0 },
		"bad port":          func(c *Config) { c.Server.Port = 0 },
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	for name, breakIt := range breakages {
		cfg := DefaultConfig()
		breakIt(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestCheckCredentials(t *testing.T) {
	cfg := DefaultConfig()

	t.Setenv("OPENAI_API_KEY", "")
	if err := cfg.CheckCredentials(); !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}

	t.Setenv("OPENAI_API_KEY", "sk-test")
	if err := cfg.CheckCredentials(); err != nil {
		t.Fatalf("CheckCredentials with key set: %v", err)
	}

	// Ollama needs no credential at all.
	cfg.Provider = ProviderOllama
	cfg.EmbeddingProvider = ProviderOllama
	t.Setenv("OPENAI_API_KEY", "")
	if err := cfg.CheckCredentials(); err != nil {
		t.Fatalf("ollama should need no credential: %v", err)
	}
}
