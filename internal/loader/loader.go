// Package loader reads the document source directory and turns each
// regular file into a Document ready for chunking.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultMaxFileSize is the maximum document size to ingest (1 MB).
const DefaultMaxFileSize int64 = 1 << 20

// ErrNoDocuments indicates the source directory is missing or holds no
// ingestible files. This is a configuration problem, not a runtime one.
var ErrNoDocuments = errors.New("no documents found")

// Document is a single ingested file. Documents exist only while the
// index is being built; afterwards only their chunks persist.
type Document struct {
	ID   string // File name, stable across rebuilds.
	Path string // Absolute path on disk.
	Text string // Raw UTF-8 content.
}

// Config controls which files in the source directory become documents.
type Config struct {
	Dir         string   // Source directory.
	Include     []string // Glob patterns — only matching file names are ingested.
	Exclude     []string // Glob patterns — matching file names are skipped.
	MaxFileSize int64    // Files larger than this are skipped (0 = use default).
}

// Load reads every regular file in cfg.Dir, sorted by name. Directories
// and dangling symlinks are skipped. It returns ErrNoDocuments when the
// directory is absent, not a directory, or yields zero documents.
func Load(cfg Config) ([]Document, error) {
	dir, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("loader: resolve %s: %w", cfg.Dir, err)
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("loader: %s is not a readable directory: %w", dir, ErrNoDocuments)
	}

	maxSize := cfg.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("loader: reading %s: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var docs []Document
	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)

		// Follow symlinks so a link to a regular file still counts;
		// a dangling link fails the stat and is skipped.
		fi, err := os.Stat(path)
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}
		if fi.Size() > maxSize {
			continue
		}

		if !matchesInclude(name, cfg.Include) || matchesExclude(name, cfg.Exclude) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("loader: reading %s: %w", path, err)
		}
		text := string(data)
		if strings.TrimSpace(text) == "" {
			continue
		}

		docs = append(docs, Document{ID: name, Path: path, Text: text})
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("loader: %s holds no ingestible files: %w", dir, ErrNoDocuments)
	}
	return docs, nil
}
