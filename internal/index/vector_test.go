// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"math"
	"testing"
)

func TestVectorRoundTrip(t *testing.T) {
	in := []float32{0, 1, -1, 0.5, 3.25}
	out, err := decodeVector(encodeVector(in))
	if err != nil {
		t.Fatalf("decodeVector: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("got %d values, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("value %d: got %v, want %v", i, out[i], in[i])
		}
	}
}

func TestDecodeVectorBadLength(t *testing.T) {
	if _, err := decodeVector([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected error for truncated blob")
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cosineSimilarity(tt.a, tt.b)
			if err != nil {
				t.Fatalf("cosineSimilarity: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCosineSimilarityErrors(t *testing.T) {
	if _, err := cosineSimilarity([]float32{1}, []float32{1, 2}); err == nil {
		t.Error("expected error for dimension mismatch")
	}
	if _, err := cosineSimilarity(nil, nil); err == nil {
		t.Error("expected error for empty vectors")
	}
}
