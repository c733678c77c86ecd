package vectorindex

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	ix := buildTestIndex(t)
	path := filepath.Join(t.TempDir(), IndexFileName)

	if err := ix.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path, "test-model")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if loaded.Len() != ix.Len() || loaded.Model() != ix.Model() || loaded.Dimensions() != ix.Dimensions() {
		t.Fatalf("loaded index shape differs: %d/%s/%d", loaded.Len(), loaded.Model(), loaded.Dimensions())
	}

	// Identical search behaviour for a fixed query.
	query := vec(0.7, 0.3, 0.1)
	want, err := ix.Search(query, 3)
	if err != nil {
		t.Fatalf("Search original: %v", err)
	}
	got, err := loaded.Search(query, 3)
	if err != nil {
		t.Fatalf("Search loaded: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("result counts differ: %d vs %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Entry.ChunkID != want[i].Entry.ChunkID || got[i].Similarity != want[i].Similarity {
			t.Errorf("result %d differs after round-trip: %+v vs %+v", i, got[i], want[i])
		}
	}
}

func TestLoad_ModelMismatch(t *testing.T) {
	ix := buildTestIndex(t)
	path := filepath.Join(t.TempDir(), IndexFileName)
	if err := ix.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if _, err := Load(path, "some-other-model"); !errors.Is(err, ErrCorruptIndex) {
		t.Fatalf("expected ErrCorruptIndex for model mismatch, got %v", err)
	}
}

func TestLoad_CorruptData(t *testing.T) {
	path := filepath.Join(t.TempDir(), IndexFileName)
	if err := os.WriteFile(path, []byte("definitely not a gzip stream"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path, "test-model"); !errors.Is(err, ErrCorruptIndex) {
		t.Fatalf("expected ErrCorruptIndex for garbage data, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), IndexFileName), "test-model")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if errors.Is(err, ErrCorruptIndex) {
		t.Fatalf("missing file should not classify as corrupt: %v", err)
	}
}

func TestHasPersisted(t *testing.T) {
	dir := t.TempDir()
	if HasPersisted(dir) {
		t.Error("empty dir should have no persisted index")
	}

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if HasPersisted(dir) {
		t.Error("unrelated files should not count as a persisted index")
	}

	ix := buildTestIndex(t)
	if err := ix.Save(filepath.Join(dir, IndexFileName)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !HasPersisted(dir) {
		t.Error("saved index not detected")
	}
}
