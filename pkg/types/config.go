// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// CorpusConfig holds the source locations, partitioned by format.
type CorpusConfig struct {
	// CacheDir contains cached HTML pages (*.html), read as text.
	CacheDir string `json:"cache_dir" yaml:"cache_dir"`

	// PDFDir contains PDF files (*.pdf).
	PDFDir string `json:"pdf_dir" yaml:"pdf_dir"`

	// DatasetsDir contains tabular metadata datasets (*.csv), one content
	// unit per row.
	DatasetsDir string `json:"datasets_dir" yaml:"datasets_dir"`
}

// IndexConfig holds settings for the persisted index.
type IndexConfig struct {
	// Path is the SQLite database file backing the index. Absence or
	// emptiness of this location is the sole signal to trigger a build.
	Path string `json:"path" yaml:"path"`
}

// PipelineConfig enumerates every tunable of a retrieval pipeline instance.
type PipelineConfig struct {
	// ChunkSize is the target chunk length in characters (default 500).
	ChunkSize int `json:"chunk_size" yaml:"chunk_size"`

	// ChunkOverlap is the overlap between consecutive chunks in characters
	// (default 100). Must be smaller than ChunkSize.
	ChunkOverlap int `json:"chunk_overlap" yaml:"chunk_overlap"`

	// SimilarityThreshold is the minimum similarity score for a unit to be
	// retrieved (default 0.7).
	SimilarityThreshold float64 `json:"similarity_threshold" yaml:"similarity_threshold"`

	// K is the maximum number of units retrieved per query (default 5).
	K int `json:"k" yaml:"k"`

	// MaxAnswerWords is the word budget suggested to the model (default 600).
	MaxAnswerWords int `json:"max_answer_words" yaml:"max_answer_words"`
}

// EmbeddingConfig holds settings for the embedding collaborator.
type EmbeddingConfig struct {
	// Backend selects the embedder: "local" (deterministic in-process,
	// default) or "openai" (OpenAI-compatible HTTP API).
	Backend string `json:"backend" yaml:"backend"`

	// Model is the embedding model identifier for remote backends
	// (e.g. "text-embedding-3-small").
	Model string `json:"model" yaml:"model"`

	// BaseURL overrides the API base URL for OpenAI-compatible servers.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// APIKey is the authentication key for remote backends.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Dimensions is the vector size. For the local backend it defaults to
	// 256; for remote backends it is determined by the model when zero.
	Dimensions int `json:"dimensions" yaml:"dimensions"`

	// Timeout is the HTTP request timeout for remote backends (default 60s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// GenerationConfig holds settings for the answer-generation collaborator.
type GenerationConfig struct {
	// Model is the chat model identifier (e.g. "gemma2-9b-it").
	Model string `json:"model" yaml:"model"`

	// APIKey is the Groq API key. Required; a missing key is a fatal
	// startup error.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxTokens caps the generated answer length (default 1024).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// Temperature controls sampling randomness (default 0.1).
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// Timeout is the HTTP request timeout (default 120s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// EngineConfig groups all stage configurations for the engine.
type EngineConfig struct {
	Corpus     CorpusConfig     `json:"corpus" yaml:"corpus"`
	Index      IndexConfig      `json:"index" yaml:"index"`
	Pipeline   PipelineConfig   `json:"pipeline" yaml:"pipeline"`
	Embedding  EmbeddingConfig  `json:"embedding" yaml:"embedding"`
	Generation GenerationConfig `json:"generation" yaml:"generation"`
}
