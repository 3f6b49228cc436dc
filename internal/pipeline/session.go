// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import "github.com/pdiddy/biotrek-engine/pkg/types"

// Session holds the retrieved units backing the most recent answer, so
// follow-up provenance commands refer to that answer and no earlier one.
// It is owned by a single caller and is not safe for concurrent use.
type Session struct {
	units []types.ContentUnit
}

// Replace installs the units retrieved for the latest answer.
func (s *Session) Replace(units []types.ContentUnit) {
	s.units = units
}

// Clear drops the stored units. Called when an answer had no sources, so
// stale provenance cannot be attributed to the new answer.
func (s *Session) Clear() {
	s.units = nil
}

// HasSources reports whether the last answer was backed by any units.
func (s *Session) HasSources() bool {
	return len(s.units) > 0
}

// Units returns the stored units in retrieval order.
func (s *Session) Units() []types.ContentUnit {
	return s.units
}
