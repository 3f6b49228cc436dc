// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pdiddy/biotrek-engine/internal/httputil"
	"github.com/pdiddy/biotrek-engine/pkg/types"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOpenAIModel   = "text-embedding-3-small"
	defaultOpenAITimeout = 60 * time.Second
)

// openaiModelDims maps known embedding models to their vector sizes.
var openaiModelDims = map[string]int{
	"text-embedding-3-small": 1536,
	"text-embedding-3-large": 3072,
	"text-embedding-ada-002": 1536,
}

// OpenAI calls an OpenAI-compatible embeddings endpoint.
type OpenAI struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
	dims    int
}

type openaiEmbedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type openaiEmbedResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewOpenAI returns an embedding service backed by an OpenAI-compatible
// API. The API key is required.
func NewOpenAI(cfg types.EmbeddingConfig) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai embedding backend requires an API key")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultOpenAITimeout
	}
	dims := cfg.Dimensions
	if dims == 0 {
		var ok bool
		if dims, ok = openaiModelDims[model]; !ok {
			dims = 1536
		}
	}

	return &OpenAI{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		model:   model,
		dims:    dims,
	}, nil
}

// Embed returns the vector for a single text.
func (s *OpenAI) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := s.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}
	return vectors[0], nil
}

// EmbedBatch embeds multiple texts in one request, returning vectors in
// input order.
func (s *OpenAI) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(openaiEmbedRequest{Model: s.model, Input: texts})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := httputil.DoWithRetry(ctx, s.client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("calling embeddings API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var embedResp openaiEmbedResponse
	if err := json.Unmarshal(respBody, &embedResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if embedResp.Error != nil {
		return nil, fmt.Errorf("embeddings API error: %s", embedResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embeddings API returned HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	// The API may reorder entries; place each by its index.
	vectors := make([][]float32, len(texts))
	for _, d := range embedResp.Data {
		if d.Index < 0 || d.Index >= len(texts) {
			return nil, fmt.Errorf("embeddings API returned out-of-range index %d", d.Index)
		}
		vec := make([]float32, len(d.Embedding))
		for i, v := range d.Embedding {
			vec[i] = float32(v)
		}
		vectors[d.Index] = vec
	}
	for i, v := range vectors {
		if v == nil {
			return nil, fmt.Errorf("embeddings API returned no vector for input %d", i)
		}
	}
	return vectors, nil
}

// Dimensions returns the vector size.
func (s *OpenAI) Dimensions() int { return s.dims }

// ModelName identifies the embedding model.
func (s *OpenAI) ModelName() string { return s.model }
