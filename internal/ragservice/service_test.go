package ragservice

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/coolashishranjan44551-bit/Gen-Ai/internal/vectorindex"
)

func testResults() []vectorindex.Result {
	return []vectorindex.Result{
		{Entry: vectorindex.Entry{ChunkID: "guide.md#0", Source: "/data/guide.md", Text: "Deployments roll out\nin waves of ten."}, Similarity: 0.91},
		{Entry: vectorindex.Entry{ChunkID: "guide.md#1", Source: "/data/guide.md", Text: strings.Repeat("long context ", 40)}, Similarity: 0.64},
		{Entry: vectorindex.Entry{ChunkID: "faq.txt#0", Source: "/data/faq.txt", Page: "2", Text: "Rollbacks are automatic."}, Similarity: 0.41},
	}
}

func TestAnswer_EmptyQuestion(t *testing.T) {
	embedder := newStubEmbedder(16)
	provider := &stubProvider{reply: "should never run"}
	svc := New(&stubSearcher{}, embedder, provider, Options{})

	for _, q := range []string{"", "   ", "\n\t "} {
		if _, err := svc.Answer(context.Background(), q); !errors.Is(err, ErrEmptyQuestion) {
			t.Errorf("question %q: expected ErrEmptyQuestion, got %v", q, err)
		}
	}
	if embedder.callCount() != 0 {
		t.Errorf("embedder called %d times before validation", embedder.callCount())
	}
	if len(provider.requests) != 0 {
		t.Errorf("generation called %d times before validation", len(provider.requests))
	}
}

func TestAnswer_GateShortCircuitsGeneration(t *testing.T) {
	provider := &stubProvider{reply: "should never run"}
	svc := New(&stubSearcher{}, newStubEmbedder(16), provider, Options{})

	ans, err := svc.Answer(context.Background(), "anything relevant?")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if ans.Text != NotInDocs {
		t.Errorf("answer %q, want %q", ans.Text, NotInDocs)
	}
	if len(ans.Sources) != 0 {
		t.Errorf("expected no sources, got %d", len(ans.Sources))
	}
	if ans.Sources == nil {
		t.Errorf("sources must be an empty slice, not nil")
	}
	if len(provider.requests) != 0 {
		t.Errorf("generation invoked %d times despite empty gate", len(provider.requests))
	}
}

func TestAnswer_GateProbesTopOne(t *testing.T) {
	searcher := &stubSearcher{results: testResults()}
	svc := New(searcher, newStubEmbedder(16), &stubProvider{reply: "ok"}, Options{TopK: 4})

	if _, err := svc.Answer(context.Background(), "how do deployments work?"); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if len(searcher.ks) != 2 || searcher.ks[0] != 1 || searcher.ks[1] != 4 {
		t.Errorf("search ks %v, want [1 4]", searcher.ks)
	}
}

func TestAnswer_CitationsOrderedAndBounded(t *testing.T) {
	searcher := &stubSearcher{results: testResults()}
	svc := New(searcher, newStubEmbedder(16), &stubProvider{reply: "In waves of ten."}, Options{TopK: 3})

	ans, err := svc.Answer(context.Background(), "how do deployments roll out?")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if ans.Text != "In waves of ten." {
		t.Errorf("answer %q", ans.Text)
	}
	if len(ans.Sources) != 3 {
		t.Fatalf("expected 3 citations, got %d", len(ans.Sources))
	}

	wantSources := []string{"/data/guide.md", "/data/guide.md", "/data/faq.txt"}
	for i, c := range ans.Sources {
		if c.Source != wantSources[i] {
			t.Errorf("citation %d source %q, want %q", i, c.Source, wantSources[i])
		}
		if strings.ContainsAny(c.Snippet, "\n\r") {
			t.Errorf("citation %d snippet contains newline: %q", i, c.Snippet)
		}
		if n := len([]rune(c.Snippet)); n > 280 {
			t.Errorf("citation %d snippet has %d runes", i, n)
		}
	}
	if ans.Sources[2].Page != "2" {
		t.Errorf("citation 2 page %q, want 2", ans.Sources[2].Page)
	}
}

func TestAnswer_EmptyGenerationBecomesSentinel(t *testing.T) {
	searcher := &stubSearcher{results: testResults()}
	svc := New(searcher, newStubEmbedder(16), &stubProvider{reply: "  \n "}, Options{})

	ans, err := svc.Answer(context.Background(), "anything?")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if ans.Text != NotInDocs {
		t.Errorf("answer %q, want sentinel", ans.Text)
	}
	if len(ans.Sources) == 0 {
		t.Error("sources should still be attached when the model abstains")
	}
}

func TestAnswer_PromptCompositionAndDecoding(t *testing.T) {
	searcher := &stubSearcher{results: testResults()}
	provider := &stubProvider{reply: "ok"}
	svc := New(searcher, newStubEmbedder(16), provider, Options{Model: "gpt-4o-mini", TopK: 2, MaxAnswerTokens: 256})

	question := "how do deployments roll out?"
	if _, err := svc.Answer(context.Background(), "  "+question+"  "); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if len(provider.requests) != 1 {
		t.Fatalf("expected 1 generation call, got %d", len(provider.requests))
	}

	req := provider.requests[0]
	if req.Temperature != 0 {
		t.Errorf("temperature %f, want 0", req.Temperature)
	}
	if req.MaxTokens != 256 {
		t.Errorf("max tokens %d, want 256", req.MaxTokens)
	}
	if req.Model != "gpt-4o-mini" {
		t.Errorf("model %q", req.Model)
	}
	if len(req.Messages) != 2 {
		t.Fatalf("expected system+user messages, got %d", len(req.Messages))
	}

	system := req.Messages[0].Content
	if !strings.Contains(system, "Answer ONLY using the provided context") {
		t.Error("system message lost the grounding instruction")
	}
	if !strings.Contains(system, "Deployments roll out") {
		t.Error("system message missing retrieved context")
	}
	if strings.Contains(system, "Rollbacks are automatic") {
		t.Error("system message includes context beyond top_k")
	}
	if req.Messages[1].Content != question {
		t.Errorf("user message %q, want trimmed question", req.Messages[1].Content)
	}
}

func TestAnswer_RetrievalErrorsAreClassified(t *testing.T) {
	embedder := newStubEmbedder(16)
	embedder.err = errBoom
	svc := New(&stubSearcher{results: testResults()}, embedder, &stubProvider{reply: "ok"}, Options{})

	_, err := svc.Answer(context.Background(), "q")
	var re *RetrievalError
	if !errors.As(err, &re) {
		t.Fatalf("expected RetrievalError, got %v", err)
	}
	if !errors.Is(err, errBoom) {
		t.Errorf("cause not preserved: %v", err)
	}

	svc = New(&stubSearcher{err: errBoom}, newStubEmbedder(16), &stubProvider{reply: "ok"}, Options{})
	if _, err := svc.Answer(context.Background(), "q"); !errors.As(err, &re) {
		t.Fatalf("search failure should classify as RetrievalError, got %v", err)
	}
}

func TestAnswer_GenerationErrorsAreClassified(t *testing.T) {
	svc := New(&stubSearcher{results: testResults()}, newStubEmbedder(16), &stubProvider{err: errBoom}, Options{})

	_, err := svc.Answer(context.Background(), "q")
	var ge *GenerationError
	if !errors.As(err, &ge) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	var re *RetrievalError
	if errors.As(err, &re) {
		t.Error("generation failure must not classify as retrieval failure")
	}
}

func TestAnswer_ConcurrentQueries(t *testing.T) {
	searcher := &stubSearcher{results: testResults()}
	svc := New(searcher, newStubEmbedder(16), &stubProvider{reply: "ok"}, Options{})

	// Queries share nothing but the read-only index, so this mainly
	// guards against accidental shared state creeping into Answer.
	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			_, err := svc.Answer(context.Background(), "how do deployments roll out?")
			done <- err
		}()
	}
	for i := 0; i < 8; i++ {
		if err := <-done; err != nil {
			t.Errorf("concurrent Answer: %v", err)
		}
	}
}

func TestSnippet(t *testing.T) {
	long := strings.Repeat("ω", 400)
	got := snippet("line one\r\nline two\nline three " + long)
	if strings.ContainsAny(got, "\n\r") {
		t.Errorf("snippet contains newline: %q", got)
	}
	if n := len([]rune(got)); n != 280 {
		t.Errorf("snippet has %d runes, want 280", n)
	}
	if !strings.HasPrefix(got, "line one line two line three") {
		t.Errorf("snippet prefix %q", got[:40])
	}
}
