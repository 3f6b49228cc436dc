// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

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

// groqAPIURL is the Groq chat completions endpoint (OpenAI-compatible).
// Package-level var for test substitution.
var groqAPIURL = "https://api.groq.com/openai/v1/chat/completions"

const (
	defaultGroqModel       = "gemma2-9b-it"
	defaultGroqMaxTokens   = 1024
	defaultGroqTemperature = 0.1
	defaultGroqTimeout     = 120 * time.Second
)

// GroqBackend calls the Groq chat completions API.
type GroqBackend struct {
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	client      *http.Client
}

// groqRequest is the request body for the chat completions API.
type groqRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	Messages    []groqMessage `json:"messages"`
}

// groqMessage is a single message in the conversation.
type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// groqResponse is the response body from the chat completions API.
type groqResponse struct {
	Choices []struct {
		Message groqMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewGroq returns a Groq-backed generator. The API key is required.
func NewGroq(cfg types.GenerationConfig) (*GroqBackend, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("groq generation backend requires an API key")
	}
	model := cfg.Model
	if model == "" {
		model = defaultGroqModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultGroqMaxTokens
	}
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = defaultGroqTemperature
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultGroqTimeout
	}

	return &GroqBackend{
		apiKey:      cfg.APIKey,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		client:      &http.Client{Timeout: timeout},
	}, nil
}

// Generate sends the prompt as a single user message and returns the
// first choice's content.
func (g *GroqBackend) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(groqRequest{
		Model:       g.model,
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
		Messages:    []groqMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, groqAPIURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := httputil.DoWithRetry(ctx, g.client, req, 0)
	if err != nil {
		return "", fmt.Errorf("calling Groq API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Groq API returned %d: %s", resp.StatusCode, string(respBody))
	}

	var gResp groqResponse
	if err := json.NewDecoder(resp.Body).Decode(&gResp); err != nil {
		return "", fmt.Errorf("decoding Groq response: %w", err)
	}
	if gResp.Error != nil {
		return "", fmt.Errorf("Groq API error: %s", gResp.Error.Message)
	}
	if len(gResp.Choices) == 0 {
		return "", fmt.Errorf("Groq API returned no choices")
	}
	return gResp.Choices[0].Message.Content, nil
}
