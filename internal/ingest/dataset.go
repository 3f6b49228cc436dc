// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/biotrek-engine/pkg/types"
)

// Dataset columns are matched case-insensitively against these aliases.
var (
	rowTitleCols    = []string{"title"}
	rowAbstractCols = []string{"abstract"}
	rowLinkCols     = []string{"link", "url"}
	rowDateCols     = []string{"pub_date", "publication date", "publication_date", "date"}
)

// loadDatasetDir reads every *.csv file in dir, converting each data row
// into one content unit.
func loadDatasetDir(dir string) []ItemResult {
	var results []ItemResult
	for _, path := range listFiles(dir, ".csv") {
		results = append(results, loadDatasetFile(path)...)
	}
	return results
}

func loadDatasetFile(path string) []ItemResult {
	f, err := os.Open(path)
	if err != nil {
		return []ItemResult{{Source: path, Skipped: true, Reason: err.Error()}}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return []ItemResult{{Source: path, Skipped: true, Reason: fmt.Sprintf("reading header: %v", err)}}
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var results []ItemResult
	for rowNum := 2; ; rowNum++ {
		record, err := r.Read()
		source := fmt.Sprintf("%s:row %d", path, rowNum)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Malformed row: skip it, keep reading the rest of the file.
			results = append(results, ItemResult{Source: source, Skipped: true, Reason: err.Error()})
			continue
		}
		results = append(results, rowResult(source, header, record))
	}
	return results
}

// rowResult converts one dataset row into a content unit. The unit text is
// synthesized from the labeled fields present in the row; when none are
// present the whole row is stringified as a fallback.
func rowResult(source string, header, record []string) ItemResult {
	title := rowField(header, record, rowTitleCols)
	abstract := rowField(header, record, rowAbstractCols)
	link := rowField(header, record, rowLinkCols)
	pubDate := rowField(header, record, rowDateCols)

	var parts []string
	if title != "" && title != types.TitleUnknown {
		parts = append(parts, "Title: "+title)
	}
	if abstract != "" {
		parts = append(parts, "Abstract: "+abstract)
	}
	if link != "" {
		parts = append(parts, "Link: "+link)
	}

	text := strings.Join(parts, "\n")
	if text == "" {
		text = stringifyRow(header, record)
	}
	if strings.TrimSpace(text) == "" {
		return ItemResult{Source: source, Skipped: true, Reason: "empty row"}
	}

	meta := map[string]any{
		"title":    title,
		"link":     link,
		"pub_date": pubDate,
	}
	return ItemResult{
		Source: source,
		Units:  []types.RawUnit{{Text: text, Meta: meta}},
	}
}

// rowField returns the first non-empty cell whose column name matches one
// of the aliases, case-insensitively.
func rowField(header, record []string, aliases []string) string {
	for _, alias := range aliases {
		for i, col := range header {
			if i >= len(record) {
				continue
			}
			if strings.EqualFold(col, alias) {
				if v := strings.TrimSpace(record[i]); v != "" {
					return v
				}
			}
		}
	}
	return ""
}

// stringifyRow renders a generic column=value representation for rows with
// no recognized fields.
func stringifyRow(header, record []string) string {
	var parts []string
	for i, v := range record {
		if strings.TrimSpace(v) == "" {
			continue
		}
		col := fmt.Sprintf("col%d", i)
		if i < len(header) && header[i] != "" {
			col = header[i]
		}
		parts = append(parts, col+"="+strings.TrimSpace(v))
	}
	return strings.Join(parts, ", ")
}
