// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"

	"github.com/pdiddy/biotrek-engine/internal/embed"
	"github.com/pdiddy/biotrek-engine/internal/index"
	"github.com/pdiddy/biotrek-engine/internal/llm"
	"github.com/pdiddy/biotrek-engine/internal/pipeline"
	"github.com/pdiddy/biotrek-engine/pkg/types"
)

func setConfigDefaults() {
	viper.SetDefault("corpus.cache_dir", "Cache")
	viper.SetDefault("corpus.pdf_dir", "Data/pdfs")
	viper.SetDefault("corpus.datasets_dir", "Data/datasets")
	viper.SetDefault("index.path", "biotrek_db/index.db")
	viper.SetDefault("pipeline.chunk_size", 500)
	viper.SetDefault("pipeline.chunk_overlap", 100)
	viper.SetDefault("pipeline.similarity_threshold", 0.7)
	viper.SetDefault("pipeline.k", 5)
	viper.SetDefault("pipeline.max_answer_words", 600)
	viper.SetDefault("embedding.backend", "local")
	viper.SetDefault("generation.model", "gemma2-9b-it")
	viper.SetDefault("generation.max_tokens", 1024)
	viper.SetDefault("generation.temperature", 0.1)
}

// engineConfig assembles the engine configuration from the config file,
// environment, and secrets. API keys resolve config file first, then the
// conventional env vars, then .secrets/ files.
func engineConfig() types.EngineConfig {
	var cfg types.EngineConfig

	cfg.Corpus = types.CorpusConfig{
		CacheDir:    viper.GetString("corpus.cache_dir"),
		PDFDir:      viper.GetString("corpus.pdf_dir"),
		DatasetsDir: viper.GetString("corpus.datasets_dir"),
	}
	cfg.Index = types.IndexConfig{Path: viper.GetString("index.path")}
	cfg.Pipeline = types.PipelineConfig{
		ChunkSize:           viper.GetInt("pipeline.chunk_size"),
		ChunkOverlap:        viper.GetInt("pipeline.chunk_overlap"),
		SimilarityThreshold: viper.GetFloat64("pipeline.similarity_threshold"),
		K:                   viper.GetInt("pipeline.k"),
		MaxAnswerWords:      viper.GetInt("pipeline.max_answer_words"),
	}
	cfg.Embedding = types.EmbeddingConfig{
		Backend:    viper.GetString("embedding.backend"),
		Model:      viper.GetString("embedding.model"),
		BaseURL:    viper.GetString("embedding.base_url"),
		APIKey:     secretDefault("openai-api-key", firstNonEmpty(viper.GetString("embedding.api_key"), os.Getenv("OPENAI_API_KEY"))),
		Dimensions: viper.GetInt("embedding.dimensions"),
	}
	cfg.Generation = types.GenerationConfig{
		Model:       viper.GetString("generation.model"),
		APIKey:      secretDefault("groq-api-key", firstNonEmpty(viper.GetString("generation.api_key"), os.Getenv("GROQ_API_KEY"))),
		MaxTokens:   viper.GetInt("generation.max_tokens"),
		Temperature: viper.GetFloat64("generation.temperature"),
	}
	return cfg
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// openIndex builds the embedder and runs load-or-build against the
// persisted index, writing progress to w.
func openIndex(ctx context.Context, cfg types.EngineConfig, w io.Writer) (*index.Store, embed.Service, error) {
	embedder, err := embed.New(cfg.Embedding)
	if err != nil {
		return nil, nil, fmt.Errorf("configuring embedder: %w", err)
	}
	store, err := index.NewManager(cfg, embedder, w).LoadOrBuild(ctx)
	if err != nil {
		return nil, nil, err
	}
	return store, embedder, nil
}

// newPipeline wires the answer pipeline over an opened index.
func newPipeline(cfg types.EngineConfig, store *index.Store, embedder embed.Service) (*pipeline.Pipeline, error) {
	model, err := llm.NewGroq(cfg.Generation)
	if err != nil {
		return nil, err
	}
	return pipeline.New(embedder, store, model, cfg.Pipeline), nil
}
