// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package embed generates vector embeddings for content units and queries.
// The same Service instance is used at index-build time and at query time,
// so identical text always maps to identical vectors.
package embed

import (
	"context"
	"fmt"

	"github.com/pdiddy/biotrek-engine/pkg/types"
)

// Service converts text into a fixed-dimension vector.
type Service interface {
	// Embed returns the vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch returns vectors for multiple texts, in input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the vector size produced by this service.
	Dimensions() int

	// ModelName identifies the embedding model.
	ModelName() string
}

// New constructs the embedding service selected by cfg.Backend.
func New(cfg types.EmbeddingConfig) (Service, error) {
	switch cfg.Backend {
	case "", "local":
		return NewLocal(cfg.Dimensions), nil
	case "openai":
		return NewOpenAI(cfg)
	default:
		return nil, fmt.Errorf("unknown embedding backend %q: use local or openai", cfg.Backend)
	}
}
