// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline answers a question end to end: embed the query, search
// the index, stuff the retrieved units into the assistant prompt, and pair
// the generated answer with its provenance views.
package pipeline

import (
	"context"
	"fmt"

	"github.com/pdiddy/biotrek-engine/internal/index"
	"github.com/pdiddy/biotrek-engine/internal/provenance"
	"github.com/pdiddy/biotrek-engine/pkg/types"
)

const defaultMaxAnswerWords = 600

// Embedder embeds a single query text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Searcher serves similarity search over the persisted index.
type Searcher interface {
	Search(ctx context.Context, query []float32, k int, threshold float64) ([]index.Hit, error)
}

// Generator produces an answer from a rendered prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Result is the complete answer payload for one question.
type Result struct {
	Answer     string                  `json:"answer"`
	Sources    []provenance.SourceView `json:"sources"`
	References []string                `json:"references"`
	Timeline   []string                `json:"timeline"`
	HasSources bool                    `json:"has_sources"`
}

// Pipeline wires the retrieval and generation collaborators together.
type Pipeline struct {
	embedder Embedder
	searcher Searcher
	model    Generator
	cfg      types.PipelineConfig
}

// New returns a Pipeline over the given collaborators.
func New(embedder Embedder, searcher Searcher, model Generator, cfg types.PipelineConfig) *Pipeline {
	if cfg.MaxAnswerWords <= 0 {
		cfg.MaxAnswerWords = defaultMaxAnswerWords
	}
	return &Pipeline{embedder: embedder, searcher: searcher, model: model, cfg: cfg}
}

// Retrieve returns the units most similar to the query, best first, after
// applying the configured similarity threshold and result cap.
func (p *Pipeline) Retrieve(ctx context.Context, query string) ([]types.ContentUnit, error) {
	vec, err := p.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	hits, err := p.searcher.Search(ctx, vec, p.cfg.K, p.cfg.SimilarityThreshold)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}
	units := make([]types.ContentUnit, len(hits))
	for i, h := range hits {
		units[i] = h.Unit
	}
	return units, nil
}

// Answer runs retrieval and generation for one question. Zero retrieved
// units short-circuits to the specialization decline without consulting
// the model, with empty provenance views. When session is non-nil it is
// updated to reflect this answer's sources.
func (p *Pipeline) Answer(ctx context.Context, query string, session *Session) (Result, error) {
	units, err := p.Retrieve(ctx, query)
	if err != nil {
		return Result{}, err
	}

	if len(units) == 0 {
		if session != nil {
			session.Clear()
		}
		return Result{
			Answer:     DeclineMessage,
			Sources:    []provenance.SourceView{},
			References: []string{},
			Timeline:   []string{},
		}, nil
	}

	contexts := make([]string, len(units))
	for i, u := range units {
		contexts[i] = u.Text
	}
	prompt, err := renderPrompt(contexts, query, p.cfg.MaxAnswerWords)
	if err != nil {
		return Result{}, err
	}

	answer, err := p.model.Generate(ctx, prompt)
	if err != nil {
		return Result{}, fmt.Errorf("generating answer: %w", err)
	}

	if session != nil {
		session.Replace(units)
	}
	return Result{
		Answer:     answer,
		Sources:    provenance.Sources(units),
		References: provenance.References(units),
		Timeline:   provenance.Timeline(units),
		HasSources: true,
	}, nil
}
