// Package ragservice answers natural-language questions grounded in an
// indexed document corpus: a cheap relevance probe gates an expensive
// generation call, and every answer cites the chunks it was built from.
package ragservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/coolashishranjan44551-bit/Gen-Ai/internal/embeddings"
	"github.com/coolashishranjan44551-bit/Gen-Ai/internal/llm"
	"github.com/coolashishranjan44551-bit/Gen-Ai/internal/vectorindex"
)

// NotInDocs is the fixed reply for questions the corpus cannot answer.
// It doubles as the sentinel the model is instructed to emit when the
// retrieved context is insufficient.
const NotInDocs = "Not in docs."

// snippetLimit bounds citation snippets, in runes.
const snippetLimit = 280

// Searcher is the k-nearest-neighbour lookup the service retrieves
// grounding context from. *vectorindex.Index satisfies it.
type Searcher interface {
	Search(query []float32, k int) ([]vectorindex.Result, error)
}

// Options tune the query path.
type Options struct {
	Model           string // Generation model; empty uses the provider default.
	TopK            int    // Chunks retrieved per question (default 4).
	MaxAnswerTokens int    // Generation output bound (default 512).
}

func (o Options) withDefaults() Options {
	if o.TopK < 1 {
		o.TopK = 4
	}
	if o.MaxAnswerTokens < 1 {
		o.MaxAnswerTokens = 512
	}
	return o
}

// Citation points an answer back at the chunk that grounds it.
type Citation struct {
	Source  string `json:"source"`
	Page    string `json:"page,omitempty"`
	Snippet string `json:"snippet,omitempty"`
}

// Answer is the result of one question: the reply text plus citations
// in retrieval order.
type Answer struct {
	Text    string     `json:"answer"`
	Sources []Citation `json:"sources"`
}

// Service is the stateless query path over a read-only index. One
// instance serves any number of concurrent questions.
type Service struct {
	searcher Searcher
	embedder embeddings.Embedder
	provider llm.Provider
	opts     Options
}

// New assembles a Service from an index and the two provider adapters.
func New(searcher Searcher, embedder embeddings.Embedder, provider llm.Provider, opts Options) *Service {
	return &Service{
		searcher: searcher,
		embedder: embedder,
		provider: provider,
		opts:     opts.withDefaults(),
	}
}

// HasRelevantContent probes the index with the top-1 neighbour of the
// question and reports whether anything came back. Deliberately no
// similarity threshold: a weak match still passes, and the generation
// step makes the final relevance judgment from the prompt.
func (s *Service) HasRelevantContent(ctx context.Context, question string) (bool, error) {
	qvec, err := s.embedQuery(ctx, question)
	if err != nil {
		return false, err
	}
	results, err := s.searcher.Search(qvec, 1)
	if err != nil {
		return false, err
	}
	return len(results) > 0, nil
}

// Answer runs the full question pipeline: validate, gate, retrieve,
// generate, post-process. Unanswerable questions return the NotInDocs
// sentinel with no sources and no generation call.
func (s *Service) Answer(ctx context.Context, question string) (*Answer, error) {
	cleaned := strings.TrimSpace(question)
	if cleaned == "" {
		return nil, ErrEmptyQuestion
	}

	relevant, err := s.HasRelevantContent(ctx, cleaned)
	if err != nil {
		return nil, &RetrievalError{Err: err}
	}
	// Sources stays an empty slice, not nil, so the refusal still
	// serializes as "sources": [].
	if !relevant {
		return &Answer{Text: NotInDocs, Sources: []Citation{}}, nil
	}

	qvec, err := s.embedQuery(ctx, cleaned)
	if err != nil {
		return nil, &RetrievalError{Err: err}
	}
	results, err := s.searcher.Search(qvec, s.opts.TopK)
	if err != nil {
		return nil, &RetrievalError{Err: err}
	}

	contexts := make([]string, len(results))
	for i, r := range results {
		contexts[i] = r.Entry.Text
	}

	resp, err := s.provider.Complete(ctx, llm.CompletionRequest{
		Model:       s.opts.Model,
		Messages:    buildMessages(contexts, cleaned),
		MaxTokens:   s.opts.MaxAnswerTokens,
		Temperature: 0,
	})
	if err != nil {
		return nil, &GenerationError{Err: err}
	}

	text := strings.TrimSpace(resp.Content)
	if text == "" {
		text = NotInDocs
	}

	return &Answer{Text: text, Sources: citations(results)}, nil
}

// citations converts retrieval results to citations, preserving order.
func citations(results []vectorindex.Result) []Citation {
	out := make([]Citation, 0, len(results))
	for _, r := range results {
		out = append(out, Citation{
			Source:  r.Entry.Source,
			Page:    r.Entry.Page,
			Snippet: snippet(r.Entry.Text),
		})
	}
	return out
}

// snippet collapses newlines to spaces and truncates to snippetLimit
// runes so citations stay single-line and bounded.
func snippet(text string) string {
	flat := strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(text)
	runes := []rune(flat)
	if len(runes) > snippetLimit {
		runes = runes[:snippetLimit]
	}
	return string(runes)
}

func (s *Service) embedQuery(ctx context.Context, question string) ([]float32, error) {
	vecs, err := s.embedder.Embed(ctx, []string{question})
	if err != nil {
		return nil, err
	}
	if len(vecs) != 1 {
		return nil, fmt.Errorf("embedder returned %d vectors for one query", len(vecs))
	}
	return vecs[0], nil
}
