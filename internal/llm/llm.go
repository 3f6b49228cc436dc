// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm calls the generation collaborator that composes an answer
// from retrieved context. The core never inspects or post-processes the
// model output; it passes the rendered prompt in and the answer text out.
package llm

import "context"

// Generator produces an answer from a fully rendered prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
