// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package embed

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

const defaultLocalDimensions = 256

// Local is a deterministic in-process embedder: a hashed bag-of-words
// projection normalized to unit length. It needs no credentials or network
// access, which keeps the index usable offline and gives tests a stable
// collaborator. Texts sharing vocabulary score high under cosine
// similarity; disjoint texts score zero.
type Local struct {
	dims int
}

// NewLocal returns a Local embedder with the given dimension count
// (default 256).
func NewLocal(dims int) *Local {
	if dims <= 0 {
		dims = defaultLocalDimensions
	}
	return &Local{dims: dims}
}

// Embed hashes each token into a bucket and normalizes the result.
func (l *Local) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, l.dims)
	for _, tok := range tokenize(text) {
		h := fnv.New32a()
		h.Write([]byte(tok))
		vec[h.Sum32()%uint32(l.dims)]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		inv := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= inv
		}
	}
	return vec, nil
}

// EmbedBatch embeds each text in order.
func (l *Local) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		v, err := l.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = v
	}
	return vectors, nil
}

// Dimensions returns the vector size.
func (l *Local) Dimensions() int { return l.dims }

// ModelName identifies the embedding model.
func (l *Local) ModelName() string { return "local-hash" }

// tokenize lowercases and splits on non-letter, non-digit runes.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
