// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package provenance renders retrieved content units into the traceable
// views that accompany an answer: source payloads, numbered references,
// a date-ordered timeline, and full evidence snippets. Every view is
// derived from the retrieved units only; zero units means every view is
// empty.
package provenance

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/biotrek-engine/internal/metadata"
	"github.com/pdiddy/biotrek-engine/pkg/types"
)

const (
	// sourceContentLimit caps the content excerpt carried in a SourceView.
	sourceContentLimit = 500

	// evidenceContentLimit caps each snippet in the full evidence view.
	evidenceContentLimit = 3000
)

// SourceView is the per-unit payload attached to an answer.
type SourceView struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	PubDate string `json:"pub_date"`
	Content string `json:"content"`
}

// TimelineEntry is one dated unit in chronological order.
type TimelineEntry struct {
	Date  string
	Title string
	Link  string
}

// Sources returns one SourceView per unit in retrieval order, with
// content truncated at 500 characters.
func Sources(units []types.ContentUnit) []SourceView {
	views := make([]SourceView, 0, len(units))
	for _, u := range units {
		meta := metadata.Renormalize(u.Meta)
		views = append(views, SourceView{
			Title:   meta.Title,
			Link:    meta.Link,
			PubDate: meta.PubDate,
			Content: truncate(u.Text, sourceContentLimit),
		})
	}
	return views
}

// References returns 1-indexed "[i] title — link" lines in retrieval
// order, so reference numbers match the Sources slice.
func References(units []types.ContentUnit) []string {
	refs := make([]string, 0, len(units))
	for i, u := range units {
		meta := metadata.Renormalize(u.Meta)
		refs = append(refs, fmt.Sprintf("[%d] %s — %s", i+1, meta.Title, meta.Link))
	}
	return refs
}

// TimelineEntries returns the units ordered oldest to newest. Entries
// with an unknown date sort after every dated entry; within each group
// the order is stable. ISO dates make the lexicographic comparison a
// chronological one.
func TimelineEntries(units []types.ContentUnit) []TimelineEntry {
	entries := make([]TimelineEntry, 0, len(units))
	for _, u := range units {
		meta := metadata.Renormalize(u.Meta)
		entries = append(entries, TimelineEntry{
			Date:  meta.PubDate,
			Title: meta.Title,
			Link:  meta.Link,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		di, dj := entries[i].Date, entries[j].Date
		if (di == types.DateUnknown) != (dj == types.DateUnknown) {
			return dj == types.DateUnknown
		}
		return di < dj
	})
	return entries
}

// Timeline renders the sorted entries as "date | title" lines.
func Timeline(units []types.ContentUnit) []string {
	entries := TimelineEntries(units)
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s | %s", e.Date, e.Title))
	}
	return lines
}

// Evidence renders the full snippet view: each unit labeled with its
// reference index and truncated at 3000 characters.
func Evidence(units []types.ContentUnit) string {
	if len(units) == 0 {
		return ""
	}
	var b strings.Builder
	for i, u := range units {
		meta := metadata.Renormalize(u.Meta)
		fmt.Fprintf(&b, "--- Source [%d] %s — %s\n%s\n\n",
			i+1, meta.Title, meta.Link, truncate(u.Text, evidenceContentLimit))
	}
	return b.String()
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}
