// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chunk splits long text into overlapping fixed-size segments
// for indexing.
package chunk

import (
	"fmt"
	"strings"
)

// separators are tried in order when snapping a chunk boundary: paragraph
// break, sentence end, line break, word break. A hard character cut is the
// final fallback.
var separators = [][]rune{[]rune("\n\n"), []rune(". "), []rune("\n"), []rune(" ")}

// Splitter divides text into chunks of at most Size characters, with
// consecutive chunks overlapping by Overlap characters. Boundaries snap to
// the nearest preceding separator so chunks end at semantic breaks where
// possible.
type Splitter struct {
	size    int
	overlap int
}

// NewSplitter validates the chunk geometry and returns a Splitter.
func NewSplitter(size, overlap int) (*Splitter, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("chunk overlap must be in [0, size), got %d for size %d", overlap, size)
	}
	return &Splitter{size: size, overlap: overlap}, nil
}

// Split returns the ordered chunks of text. Text no longer than the chunk
// size yields exactly one chunk; empty or whitespace-only text yields none.
// Size and overlap are measured in characters, so a hard cut never lands
// inside a multi-byte rune.
func (s *Splitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	runes := []rune(text)
	if len(runes) <= s.size {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + s.size
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}

		cut := snapBoundary(runes, start, end)
		chunks = append(chunks, string(runes[start:cut]))

		// The next chunk re-covers the last overlap characters. Guard
		// against a snapped cut so close to start that the window would
		// stop advancing.
		next := cut - s.overlap
		if next <= start {
			next = cut
		}
		start = next
	}
	return chunks
}

// snapBoundary returns the cut position in (start, end], preferring the
// last separator occurrence inside the window. end is the hard fallback.
func snapBoundary(runes []rune, start, end int) int {
	window := runes[start:end]
	for _, sep := range separators {
		if i := lastIndexRunes(window, sep); i > 0 {
			return start + i + len(sep)
		}
	}
	return end
}

// lastIndexRunes returns the index of the last occurrence of sep in
// window, or -1.
func lastIndexRunes(window, sep []rune) int {
	for i := len(window) - len(sep); i >= 0; i-- {
		match := true
		for j := range sep {
			if window[i+j] != sep[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
