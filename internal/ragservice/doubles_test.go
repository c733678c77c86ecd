package ragservice

import (
	"context"
	"errors"
	"math"
	"sync"

	"github.com/coolashishranjan44551-bit/Gen-Ai/internal/llm"
	"github.com/coolashishranjan44551-bit/Gen-Ai/internal/vectorindex"
)

// stubEmbedder returns deterministic embeddings based on text content,
// so similar texts land near each other without any network calls.
type stubEmbedder struct {
	mu    sync.Mutex
	dims  int
	name  string
	calls int
	err   error
}

func newStubEmbedder(dims int) *stubEmbedder {
	return &stubEmbedder{dims: dims, name: "stub-embedder"}
}

func (m *stubEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	results := make([][]float32, len(texts))
	for i, text := range texts {
		results[i] = m.deterministicVector(text)
	}
	return results, nil
}

func (m *stubEmbedder) Dimensions() int { return m.dims }
func (m *stubEmbedder) Name() string    { return m.name }

func (m *stubEmbedder) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *stubEmbedder) deterministicVector(text string) []float32 {
	vec := make([]float32, m.dims)
	for i, ch := range text {
		idx := (int(ch) + i) % m.dims
		vec[idx] += 1.0
	}
	var norm float64
	for _, v := range vec {
		norm += float64(v * v)
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] = float32(float64(vec[i]) / norm)
		}
	}
	return vec
}

// stubSearcher returns canned results and records the k of every call.
type stubSearcher struct {
	mu      sync.Mutex
	results []vectorindex.Result
	err     error
	ks      []int
}

func (s *stubSearcher) Search(_ []float32, k int) ([]vectorindex.Result, error) {
	s.mu.Lock()
	s.ks = append(s.ks, k)
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	if k < len(s.results) {
		return s.results[:k], nil
	}
	return s.results, nil
}

// stubProvider returns a canned completion and records every request.
type stubProvider struct {
	mu       sync.Mutex
	reply    string
	err      error
	requests []llm.CompletionRequest
}

func (p *stubProvider) Complete(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.mu.Lock()
	p.requests = append(p.requests, req)
	p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	return &llm.CompletionResponse{Content: p.reply, FinishReason: "stop"}, nil
}

func (p *stubProvider) Name() string { return "stub" }

var errBoom = errors.New("boom")
