package ragservice

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/coolashishranjan44551-bit/Gen-Ai/internal/chunker"
	"github.com/coolashishranjan44551-bit/Gen-Ai/internal/config"
	"github.com/coolashishranjan44551-bit/Gen-Ai/internal/embeddings"
	"github.com/coolashishranjan44551-bit/Gen-Ai/internal/llm"
	"github.com/coolashishranjan44551-bit/Gen-Ai/internal/loader"
	"github.com/coolashishranjan44551-bit/Gen-Ai/internal/progress"
	"github.com/coolashishranjan44551-bit/Gen-Ai/internal/vectorindex"
)

// embedBatchSize is how many chunk texts go to the embedder per call
// during index construction.
const embedBatchSize = 64

// BuildOrLoad is the once-per-process index lifecycle decision. It scans
// the document source directory (absent or empty is fatal), then either
// reloads a persisted index — skipping re-embedding entirely — or runs
// the full chunk → embed → build → persist pipeline. The returned
// Service is ready for concurrent queries.
func BuildOrLoad(ctx context.Context, cfg *config.Config, embedder embeddings.Embedder, provider llm.Provider, reporter progress.Reporter) (*Service, error) {
	docs, err := loader.Load(loader.Config{
		Dir:     cfg.DataDir,
		Include: cfg.Include,
		Exclude: cfg.Exclude,
	})
	if err != nil {
		return nil, err
	}

	indexPath := filepath.Join(cfg.IndexDir, vectorindex.IndexFileName)

	var ix *vectorindex.Index
	if vectorindex.HasPersisted(cfg.IndexDir) {
		ix, err = vectorindex.Load(indexPath, embedder.Name())
		if err != nil {
			return nil, err
		}
		log.Printf("loaded index from %s (%d entries, model %s)", indexPath, ix.Len(), ix.Model())
	} else {
		ix, err = buildIndex(ctx, cfg, docs, embedder, reporter)
		if err != nil {
			return nil, err
		}
		if err := ix.Save(indexPath); err != nil {
			return nil, err
		}
		log.Printf("built index from %d documents (%d entries), saved to %s", len(docs), ix.Len(), indexPath)
	}

	return New(ix, embedder, provider, Options{
		Model:           cfg.Model,
		TopK:            cfg.TopK,
		MaxAnswerTokens: cfg.MaxAnswerTokens,
	}), nil
}

// buildIndex chunks every document and embeds the chunks in batches,
// producing index entries in document-then-sequence order.
func buildIndex(ctx context.Context, cfg *config.Config, docs []loader.Document, embedder embeddings.Embedder, reporter progress.Reporter) (*vectorindex.Index, error) {
	if reporter == nil {
		reporter = progress.Silent{}
	}

	ccfg := chunker.Config{Size: cfg.ChunkSize, Overlap: cfg.ChunkOverlap}

	var chunks []chunker.Chunk
	sources := make(map[string]string, len(docs))
	for _, doc := range docs {
		sources[doc.ID] = doc.Path
		chunks = append(chunks, chunker.Split(doc.ID, doc.Text, ccfg)...)
	}
	if len(chunks) == 0 {
		return nil, vectorindex.ErrEmptyCorpus
	}

	reporter.Start(len(chunks))
	defer reporter.Finish()

	entries := make([]vectorindex.Entry, 0, len(chunks))
	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.Text
		}

		vectors, err := embedder.Embed(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embedding chunks %d-%d: %w", start, end-1, err)
		}
		if len(vectors) != len(batch) {
			return nil, fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(batch))
		}

		for i, c := range batch {
			entries = append(entries, vectorindex.Entry{
				ChunkID: c.ID,
				Vector:  vectors[i],
				Source:  sources[c.DocumentID],
				Text:    c.Text,
			})
		}
		reporter.Update(end, fmt.Sprintf("Embedding chunks (%d/%d)", end, len(chunks)))
	}

	return vectorindex.Build(embedder.Name(), entries)
}
