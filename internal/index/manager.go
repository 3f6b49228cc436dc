// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/pdiddy/biotrek-engine/internal/chunk"
	"github.com/pdiddy/biotrek-engine/internal/ingest"
	"github.com/pdiddy/biotrek-engine/internal/metadata"
	"github.com/pdiddy/biotrek-engine/pkg/types"
)

// embedBatchSize bounds the number of texts sent to the embedding
// collaborator per request.
const embedBatchSize = 64

// Embedder is the subset of the embedding service the Manager needs.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
}

// Manager owns the load-or-build decision for the persisted index. The
// load path and the build path produce indexes with the same logical
// schema, so retrieval behavior is independent of which path ran.
type Manager struct {
	corpus   types.CorpusConfig
	indexCfg types.IndexConfig
	pipeline types.PipelineConfig
	embedder Embedder
	w        io.Writer
}

// NewManager returns a Manager writing progress to w.
func NewManager(cfg types.EngineConfig, embedder Embedder, w io.Writer) *Manager {
	if w == nil {
		w = io.Discard
	}
	return &Manager{
		corpus:   cfg.Corpus,
		indexCfg: cfg.Index,
		pipeline: cfg.Pipeline,
		embedder: embedder,
		w:        w,
	}
}

// LoadOrBuild opens the persisted index when it exists and is non-empty,
// and otherwise runs the full ingestion pipeline and persists a fresh one.
// An existing index that cannot be opened surfaces ErrIndexUnavailable.
func (m *Manager) LoadOrBuild(ctx context.Context) (*Store, error) {
	path := m.indexCfg.Path

	if info, err := os.Stat(path); err == nil && info.Size() > 0 {
		store, err := Open(path)
		if err != nil {
			return nil, err
		}
		n, err := store.Count()
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
		}
		if n > 0 {
			fmt.Fprintf(m.w, "loaded existing index (%d units) from %s\n", n, path)
			return store, nil
		}
		// Present but empty: treat as absent and rebuild.
		store.Close()
		if err := os.Remove(path); err != nil {
			return nil, fmt.Errorf("removing empty index: %w", err)
		}
	}

	return m.build(ctx)
}

// Rebuild unconditionally discards any persisted index and runs the build
// path, picking up current ingestion settings such as a revised chunk size.
func (m *Manager) Rebuild(ctx context.Context) (*Store, error) {
	if err := os.Remove(m.indexCfg.Path); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("removing existing index: %w", err)
	}
	return m.build(ctx)
}

func (m *Manager) build(ctx context.Context) (*Store, error) {
	release, err := acquireBuildLock(m.indexCfg.Path)
	if err != nil {
		return nil, err
	}
	defer release()

	units, err := m.gather(ctx)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(m.w, "indexing %d chunk(s)\n", len(units))

	store, err := Create(m.indexCfg.Path, m.embedder.Dimensions())
	if err != nil {
		return nil, err
	}

	for start := 0; start < len(units); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(units) {
			end = len(units)
		}
		batch := units[start:end]

		texts := make([]string, len(batch))
		for i, u := range batch {
			texts[i] = u.Text
		}
		vectors, err := m.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("embedding units: %w", err)
		}
		if err := store.Upsert(ctx, batch, vectors); err != nil {
			store.Close()
			return nil, fmt.Errorf("persisting units: %w", err)
		}
	}

	fmt.Fprintf(m.w, "index built and persisted at %s\n", store.Path())
	return store, nil
}

// gather runs Loader -> Chunker -> Normalizer over all configured sources.
// Units with empty trimmed text are dropped, never indexed.
func (m *Manager) gather(ctx context.Context) ([]types.ContentUnit, error) {
	report, err := ingest.LoadAll(ctx, m.corpus, m.w)
	if err != nil {
		return nil, err
	}

	splitter, err := chunk.NewSplitter(m.pipeline.ChunkSize, m.pipeline.ChunkOverlap)
	if err != nil {
		return nil, fmt.Errorf("configuring chunker: %w", err)
	}

	var units []types.ContentUnit
	for _, raw := range report.Units {
		meta := metadata.Normalize(raw.Meta)
		for _, piece := range splitter.Split(raw.Text) {
			if strings.TrimSpace(piece) == "" {
				continue
			}
			units = append(units, types.ContentUnit{
				ID:   uuid.NewString(),
				Text: piece,
				Meta: meta,
			})
		}
	}
	return units, nil
}
