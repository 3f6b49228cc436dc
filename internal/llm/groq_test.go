// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pdiddy/biotrek-engine/pkg/types"
)

// withGroqServer points groqAPIURL at a test server for the duration of
// one test.
func withGroqServer(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	ts := httptest.NewServer(handler)
	old := groqAPIURL
	groqAPIURL = ts.URL
	t.Cleanup(func() {
		groqAPIURL = old
		ts.Close()
	})
}

func TestNewGroqRequiresKey(t *testing.T) {
	if _, err := NewGroq(types.GenerationConfig{}); err == nil {
		t.Error("NewGroq without API key returned nil error")
	}
}

func TestGenerate(t *testing.T) {
	withGroqServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer gsk-test" {
			t.Errorf("Authorization = %q", got)
		}
		var req groqRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("messages = %+v, want one user message", req.Messages)
		}
		if req.Model != "gemma2-9b-it" {
			t.Errorf("model = %q, want default", req.Model)
		}
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"Plants adapt their root growth."}}]}`)
	})

	g, err := NewGroq(types.GenerationConfig{APIKey: "gsk-test"})
	if err != nil {
		t.Fatal(err)
	}

	answer, err := g.Generate(context.Background(), "How do plants grow in space?")
	if err != nil {
		t.Fatal(err)
	}
	if answer != "Plants adapt their root growth." {
		t.Errorf("answer = %q", answer)
	}
}

func TestGenerateAPIError(t *testing.T) {
	withGroqServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"message":"model not found"}}`)
	})

	g, err := NewGroq(types.GenerationConfig{APIKey: "gsk-test"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := g.Generate(context.Background(), "q"); err == nil {
		t.Error("expected error on HTTP 400")
	}
}

func TestGenerateEmptyChoices(t *testing.T) {
	withGroqServer(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	})

	g, err := NewGroq(types.GenerationConfig{APIKey: "gsk-test"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := g.Generate(context.Background(), "q"); err == nil {
		t.Error("expected error on empty choices")
	}
}
