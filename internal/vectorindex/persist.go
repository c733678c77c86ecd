package vectorindex

import (
	"compress/gzip"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// IndexFileName is the on-disk name of a persisted index.
const IndexFileName = "index" + indexFileExt

// indexFileExt marks persisted index files; presence detection goes by
// extension so stale temp files in the index directory are ignored.
const indexFileExt = ".gob.gz"

// formatVersion is bumped whenever the persisted layout changes.
const formatVersion = 1

// ErrCorruptIndex indicates the persisted index cannot be used: the data
// is unreadable, from an incompatible format version, or built with a
// different embedding model than the one configured. The remedy is a
// rebuild.
var ErrCorruptIndex = errors.New("corrupt or incompatible index")

// persistedIndex is the gob-encoded on-disk layout. The header fields
// make the file self-describing so mismatches surface at load time
// instead of as garbage search results.
type persistedIndex struct {
	FormatVersion int
	Model         string
	Dimensions    int
	Entries       []Entry
}

// Save writes the index to path as a gzip-compressed gob stream, going
// through a temp file and rename so a crash never leaves a torn index.
func (ix *Index) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".index-*")
	if err != nil {
		return fmt.Errorf("creating temp index file: %w", err)
	}
	defer os.Remove(tmp.Name())

	zw := gzip.NewWriter(tmp)
	enc := gob.NewEncoder(zw)
	if err := enc.Encode(persistedIndex{
		FormatVersion: formatVersion,
		Model:         ix.model,
		Dimensions:    ix.dims,
		Entries:       ix.entries,
	}); err != nil {
		tmp.Close()
		return fmt.Errorf("encoding index: %w", err)
	}
	if err := zw.Close(); err != nil {
		tmp.Close()
		return fmt.Errorf("compressing index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing index file: %w", err)
	}
	return nil
}

// Load reconstructs an index from path. model is the currently configured
// embedding-model identity; a persisted index built with any other model
// fails with ErrCorruptIndex, as does unreadable or inconsistent data.
// The loaded index answers searches identically to the one that was saved.
func Load(path, model string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening index file: %w", err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptIndex, err)
	}
	defer zr.Close()

	var p persistedIndex
	if err := gob.NewDecoder(zr).Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptIndex, err)
	}

	if p.FormatVersion != formatVersion {
		return nil, fmt.Errorf("%w: format version %d, expected %d", ErrCorruptIndex, p.FormatVersion, formatVersion)
	}
	if p.Model != model {
		return nil, fmt.Errorf("%w: index built with embedding model %q, configured model is %q", ErrCorruptIndex, p.Model, model)
	}
	if len(p.Entries) == 0 || p.Dimensions <= 0 {
		return nil, fmt.Errorf("%w: index holds no entries", ErrCorruptIndex)
	}
	for _, e := range p.Entries {
		if len(e.Vector) != p.Dimensions {
			return nil, fmt.Errorf("%w: entry %q has %d dimensions, header says %d", ErrCorruptIndex, e.ChunkID, len(e.Vector), p.Dimensions)
		}
	}

	// Vectors were normalized before Save; no re-normalization needed.
	return &Index{model: p.Model, dims: p.Dimensions, entries: p.Entries}, nil
}

// HasPersisted reports whether dir contains any persisted index file.
func HasPersisted(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(e.Name(), indexFileExt) {
			return true
		}
	}
	return false
}
