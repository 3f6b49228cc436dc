// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest reads raw corpus sources (cached HTML pages, PDFs, tabular
// metadata datasets) and converts each source item into content units with
// provisional metadata. A failure on one item never aborts the run: every
// item produces an ItemResult, and skips are aggregated as data.
package ingest

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/biotrek-engine/pkg/types"
)

// ItemResult records the outcome of loading one source item (a file, or a
// dataset row).
type ItemResult struct {
	// Source identifies the item: a file path, or "file:row N" for rows.
	Source string

	// Units holds the extracted content. Empty when the item was skipped.
	Units []types.RawUnit

	// Skipped reports whether the item was dropped.
	Skipped bool

	// Reason explains a skip.
	Reason string
}

// Report aggregates a full ingestion run.
type Report struct {
	Loaded  int
	Skipped int
	Units   []types.RawUnit

	// Skips retains the skipped items with their reasons.
	Skips []ItemResult
}

// LoadAll reads every configured source location and returns the aggregated
// report. Missing directories contribute zero items; unreadable or corrupt
// items are skipped with a note to w. The only errors returned are context
// cancellation.
func LoadAll(ctx context.Context, cfg types.CorpusConfig, w io.Writer) (Report, error) {
	var results []ItemResult

	for _, load := range []func() []ItemResult{
		func() []ItemResult { return loadHTMLDir(cfg.CacheDir) },
		func() []ItemResult { return loadPDFDir(cfg.PDFDir) },
		func() []ItemResult { return loadDatasetDir(cfg.DatasetsDir) },
	} {
		select {
		case <-ctx.Done():
			return Report{}, ctx.Err()
		default:
		}
		results = append(results, load()...)
	}

	var report Report
	for _, r := range results {
		if r.Skipped {
			fmt.Fprintf(w, "skipped %s: %s\n", r.Source, r.Reason)
			report.Skipped++
			report.Skips = append(report.Skips, r)
			continue
		}
		report.Loaded++
		report.Units = append(report.Units, r.Units...)
	}

	fmt.Fprintf(w, "loaded %d source item(s), skipped %d, %d unit(s) total\n",
		report.Loaded, report.Skipped, len(report.Units))
	return report, nil
}
