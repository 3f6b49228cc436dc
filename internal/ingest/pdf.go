// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/biotrek-engine/pkg/types"
)

// loadPDFDir extracts text from every *.pdf file in dir. Provisional
// metadata mirrors the HTML loader's shape.
func loadPDFDir(dir string) []ItemResult {
	var results []ItemResult
	for _, path := range listFiles(dir, ".pdf") {
		results = append(results, loadPDFFile(path))
	}
	return results
}

func loadPDFFile(path string) (result ItemResult) {
	result.Source = path

	// The pdf package panics on some malformed files; a corrupt PDF must
	// become a skip, not a crash.
	defer func() {
		if r := recover(); r != nil {
			result = ItemResult{Source: path, Skipped: true, Reason: fmt.Sprintf("parse panic: %v", r)}
		}
	}()

	text, err := extractPDFText(path)
	if err != nil {
		return ItemResult{Source: path, Skipped: true, Reason: err.Error()}
	}
	if strings.TrimSpace(text) == "" {
		return ItemResult{Source: path, Skipped: true, Reason: "no extractable text"}
	}

	info, err := os.Stat(path)
	if err != nil {
		return ItemResult{Source: path, Skipped: true, Reason: err.Error()}
	}

	result.Units = []types.RawUnit{{
		Text: text,
		Meta: fileMeta(path, info.ModTime().Unix()),
	}}
	return result
}

// extractPDFText extracts the text of every page in the file.
func extractPDFText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	return collectPages(reader.NumPage(), func(i int) (string, error) {
		page := reader.Page(i)
		if page.V.IsNull() {
			return "", nil
		}
		return page.GetPlainText(nil)
	}), nil
}

// collectPages concatenates the texts of pages 1..n with newline
// separators. A page that fails extraction or yields no text contributes
// nothing but does not abort the file.
func collectPages(n int, pageText func(int) (string, error)) string {
	var parts []string
	for i := 1; i <= n; i++ {
		text, err := pageText(i)
		if err != nil || strings.TrimSpace(text) == "" {
			continue
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n")
}
