// Package vectorindex implements an exact nearest-neighbour index over
// chunk embeddings: brute-force cosine similarity with stable ordering,
// plus round-trip persistence to disk.
package vectorindex

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrEmptyCorpus is returned by Build when there is nothing to index.
	ErrEmptyCorpus = errors.New("cannot build index from zero entries")

	// ErrInvalidLimit is returned by Search for a non-positive k.
	ErrInvalidLimit = errors.New("search limit must be at least 1")
)

// Entry is the durable unit of the index: one chunk's vector plus the
// metadata needed to cite it.
type Entry struct {
	ChunkID string
	Vector  []float32
	Source  string // Path of the originating document.
	Page    string // Optional page locator; empty for plain text sources.
	Text    string // Chunk text, returned as grounding context.
}

// Result pairs an entry with its cosine similarity to the query.
type Result struct {
	Entry      Entry
	Similarity float32
}

// Index is an immutable similarity-searchable collection of entries.
// After Build or Load it is never mutated, so Search is safe for any
// number of concurrent readers.
type Index struct {
	model   string
	dims    int
	entries []Entry
}

// Build constructs an index from all entries at once. model records the
// embedding-model identity the vectors came from; it travels with the
// persisted index so mismatched models are caught at load time. Vectors
// are copied and L2-normalized, which reduces cosine similarity to a dot
// product at query time. Insertion order is preserved.
func Build(model string, entries []Entry) (*Index, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyCorpus
	}

	dims := len(entries[0].Vector)
	if dims == 0 {
		return nil, fmt.Errorf("entry %q has an empty vector", entries[0].ChunkID)
	}

	indexed := make([]Entry, len(entries))
	for i, e := range entries {
		if len(e.Vector) != dims {
			return nil, fmt.Errorf("entry %q has %d dimensions, index has %d", e.ChunkID, len(e.Vector), dims)
		}
		vec := make([]float32, dims)
		copy(vec, e.Vector)
		normalize(vec)
		e.Vector = vec
		indexed[i] = e
	}

	return &Index{model: model, dims: dims, entries: indexed}, nil
}

// Model returns the embedding-model identity the index was built with.
func (ix *Index) Model() string { return ix.model }

// Dimensions returns the vector dimensionality of the index.
func (ix *Index) Dimensions() int { return ix.dims }

// Len returns the number of entries.
func (ix *Index) Len() int { return len(ix.entries) }

// Search returns up to k entries nearest to query by cosine similarity,
// sorted by non-increasing similarity. Ties keep insertion order.
func (ix *Index) Search(query []float32, k int) ([]Result, error) {
	if k < 1 {
		return nil, ErrInvalidLimit
	}
	if len(query) != ix.dims {
		return nil, fmt.Errorf("query has %d dimensions, index has %d", len(query), ix.dims)
	}

	q := make([]float32, len(query))
	copy(q, query)
	normalize(q)

	results := make([]Result, len(ix.entries))
	for i, e := range ix.entries {
		results[i] = Result{Entry: e, Similarity: dot(q, e.Vector)}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// normalize scales v to unit length in place; a zero vector is left as is.
func normalize(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	inv := float32(1 / math.Sqrt(sum))
	for i := range v {
		v[i] *= inv
	}
}
