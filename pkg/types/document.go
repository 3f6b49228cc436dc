// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared domain and configuration types used across
// the biotrek-engine stages.
package types

// DateUnknown is the canonical sentinel for a publication date that could
// not be resolved to a calendar date. It is the only non-date value a
// CanonicalMetadata.PubDate may carry.
const DateUnknown = "unknown"

// TitleUnknown is the canonical fallback when no source provides a title.
const TitleUnknown = "Unknown"

// CanonicalMetadata is the normalized source metadata schema used uniformly
// regardless of the original format (HTML cache file, PDF, dataset row).
type CanonicalMetadata struct {
	// Title is the human-readable source title. Never empty; TitleUnknown
	// when no source field provided one.
	Title string `json:"title" yaml:"title"`

	// Link is the source location (URL or filename). May be empty.
	Link string `json:"link" yaml:"link"`

	// PubDate is a YYYY-MM-DD calendar date string, or DateUnknown. Raw
	// numeric timestamps are resolved before a unit reaches provenance
	// assembly.
	PubDate string `json:"pub_date" yaml:"pub_date"`
}

// ContentUnit is the atomic indexable item: a span of text plus canonical
// metadata. Every unit persisted to the index has non-empty trimmed text.
type ContentUnit struct {
	// ID is a stable identifier assigned at ingestion.
	ID string `json:"id" yaml:"id"`

	// Text is the unit content.
	Text string `json:"text" yaml:"text"`

	// Meta is the canonical source metadata. Chunks split from the same
	// source carry identical metadata; provenance is at source-item
	// granularity, not chunk granularity.
	Meta CanonicalMetadata `json:"meta" yaml:"meta"`
}

// RawUnit is a loader's output before chunking and normalization: extracted
// text plus provisional metadata whose key names vary by source format.
type RawUnit struct {
	Text string
	Meta map[string]any
}
