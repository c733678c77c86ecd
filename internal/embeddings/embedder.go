package embeddings

import (
	"context"
	"errors"
)

// ErrUnavailable indicates the embedding provider could not be reached or
// rejected the request. Index construction aborts on it rather than
// silently skipping chunks; callers decide whether to retry.
var ErrUnavailable = errors.New("embedding provider unavailable")

// Embedder defines the interface for generating text embeddings.
type Embedder interface {
	// Embed generates embeddings for one or more texts. The result is
	// order-preserving and has exactly one vector per input text.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the number of dimensions in the embedding vectors.
	Dimensions() int

	// Name returns the identity of the embedding model. Vectors from
	// different names must never be mixed in one index.
	Name() string
}
