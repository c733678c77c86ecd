package llm

import (
	"context"
	"errors"
)

// ErrUnavailable indicates the generation provider could not be reached
// or rejected the request. Callers surface it per request; the engine
// never retries on its own.
var ErrUnavailable = errors.New("generation provider unavailable")

// Provider defines the interface for LLM providers.
type Provider interface {
	// Complete sends a completion request and returns the response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// Name returns the name of this provider.
	Name() string
}
