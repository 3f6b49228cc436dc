// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/biotrek-engine/internal/embed"
	"github.com/pdiddy/biotrek-engine/pkg/types"
)

func testEngineConfig(t *testing.T) types.EngineConfig {
	t.Helper()
	root := t.TempDir()
	cacheDir := filepath.Join(root, "Cache")
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		t.Fatal(err)
	}
	pages := map[string]string{
		"bion_m1.html":   "The Bion-M 1 mission carried mice into orbit for thirty days of biological study.",
		"plant_gro.html": "Plant growth experiments on the station examined root orientation in microgravity.",
	}
	for name, text := range pages {
		if err := os.WriteFile(filepath.Join(cacheDir, name), []byte(text), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return types.EngineConfig{
		Corpus: types.CorpusConfig{
			CacheDir:    cacheDir,
			PDFDir:      filepath.Join(root, "pdfs"),
			DatasetsDir: filepath.Join(root, "datasets"),
		},
		Index: types.IndexConfig{Path: filepath.Join(root, "db", "index.db")},
		Pipeline: types.PipelineConfig{
			ChunkSize:           500,
			ChunkOverlap:        100,
			SimilarityThreshold: 0.7,
			K:                   5,
		},
	}
}

func TestManagerBuildsWhenAbsent(t *testing.T) {
	cfg := testEngineConfig(t)
	var out bytes.Buffer
	mgr := NewManager(cfg, embed.NewLocal(32), &out)

	store, err := mgr.LoadOrBuild(context.Background())
	if err != nil {
		t.Fatalf("LoadOrBuild: %v", err)
	}
	defer store.Close()

	n, err := store.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
	if !strings.Contains(out.String(), "index built") {
		t.Errorf("progress output missing build note: %q", out.String())
	}
}

func TestLoadOrBuildReusesPersistedIndex(t *testing.T) {
	cfg := testEngineConfig(t)
	mgr := NewManager(cfg, embed.NewLocal(32), nil)

	built, err := mgr.Rebuild(context.Background())
	if err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	want, err := built.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	built.Close()

	// Empty the corpus. A reload that re-ran ingestion would now see
	// nothing; the persisted index must be served as-is.
	if err := os.RemoveAll(cfg.Corpus.CacheDir); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	loaded, err := NewManager(cfg, embed.NewLocal(32), &out).LoadOrBuild(context.Background())
	if err != nil {
		t.Fatalf("LoadOrBuild: %v", err)
	}
	defer loaded.Close()

	got, err := loaded.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if got != want {
		t.Errorf("count = %d, want %d", got, want)
	}
	if !strings.Contains(out.String(), "loaded existing index") {
		t.Errorf("progress output missing reuse note: %q", out.String())
	}
}

func TestLoadOrBuildRebuildsEmptyIndexFile(t *testing.T) {
	cfg := testEngineConfig(t)
	if err := os.MkdirAll(filepath.Dir(cfg.Index.Path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfg.Index.Path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	mgr := NewManager(cfg, embed.NewLocal(32), nil)
	store, err := mgr.LoadOrBuild(context.Background())
	if err != nil {
		t.Fatalf("LoadOrBuild: %v", err)
	}
	defer store.Close()

	n, err := store.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
}

func TestRebuildDiscardsExistingUnits(t *testing.T) {
	cfg := testEngineConfig(t)
	mgr := NewManager(cfg, embed.NewLocal(32), nil)

	first, err := mgr.Rebuild(context.Background())
	if err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	first.Close()

	// Shrink the corpus to one page. A rebuild must reflect the current
	// sources, not the previously persisted units.
	if err := os.Remove(filepath.Join(cfg.Corpus.CacheDir, "plant_gro.html")); err != nil {
		t.Fatal(err)
	}

	second, err := mgr.Rebuild(context.Background())
	if err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	defer second.Close()

	n, err := second.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Errorf("count = %d, want 1 after rebuild", n)
	}
}

func TestBuildRefusedWhileLockHeld(t *testing.T) {
	cfg := testEngineConfig(t)
	release, err := acquireBuildLock(cfg.Index.Path)
	if err != nil {
		t.Fatalf("acquireBuildLock: %v", err)
	}
	defer release()

	mgr := NewManager(cfg, embed.NewLocal(32), nil)
	if _, err := mgr.Rebuild(context.Background()); err == nil {
		t.Fatal("expected error while build lock is held")
	}
}

func TestBuildAndSearchRoundTrip(t *testing.T) {
	cfg := testEngineConfig(t)
	embedder := embed.NewLocal(64)
	mgr := NewManager(cfg, embedder, nil)

	store, err := mgr.LoadOrBuild(context.Background())
	if err != nil {
		t.Fatalf("LoadOrBuild: %v", err)
	}
	defer store.Close()

	query, err := embedder.Embed(context.Background(), "mice in orbit Bion mission")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	hits, err := store.Search(context.Background(), query, cfg.Pipeline.K, 0.1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) == 0 {
		t.Fatal("expected at least one hit for overlapping vocabulary")
	}
	if hits[0].Unit.Meta.Title != "bion_m1" {
		t.Errorf("top hit title = %q, want %q", hits[0].Unit.Meta.Title, "bion_m1")
	}
}
