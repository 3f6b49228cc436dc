// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/biotrek-engine/pkg/types"
)

// loadHTMLDir reads every *.html file in dir as plain text. Provisional
// metadata records the filename stem as title, the filename as link, and
// the file modification time as a numeric pub_date.
func loadHTMLDir(dir string) []ItemResult {
	var results []ItemResult
	for _, path := range listFiles(dir, ".html") {
		results = append(results, loadHTMLFile(path))
	}
	return results
}

func loadHTMLFile(path string) ItemResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return ItemResult{Source: path, Skipped: true, Reason: err.Error()}
	}
	text := string(data)
	if strings.TrimSpace(text) == "" {
		return ItemResult{Source: path, Skipped: true, Reason: "empty content"}
	}

	info, err := os.Stat(path)
	if err != nil {
		return ItemResult{Source: path, Skipped: true, Reason: err.Error()}
	}

	return ItemResult{
		Source: path,
		Units: []types.RawUnit{{
			Text: text,
			Meta: fileMeta(path, info.ModTime().Unix()),
		}},
	}
}

// fileMeta builds the provisional metadata shared by the file-backed
// loaders: filename stem as title, filename as link, mtime as pub_date.
func fileMeta(path string, mtime int64) map[string]any {
	name := filepath.Base(path)
	return map[string]any{
		"title":    strings.TrimSuffix(name, filepath.Ext(name)),
		"link":     name,
		"pub_date": mtime,
	}
}

// listFiles returns the sorted paths of regular files in dir with the
// given extension. A missing directory yields no paths.
func listFiles(dir, ext string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths
}
