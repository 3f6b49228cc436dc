// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/biotrek-engine/pkg/types"
)

// ExportEntry holds one indexed unit with its canonical metadata for export.
// Vectors are omitted; exports serve inspection and audit, not search.
type ExportEntry struct {
	ID      string `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	Link    string `json:"link" yaml:"link"`
	PubDate string `json:"pub_date" yaml:"pub_date"`
	Text    string `json:"text" yaml:"text"`
}

// ExportYAML writes every indexed unit to path as YAML, in insertion order.
func (s *Store) ExportYAML(ctx context.Context, path string) error {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes every indexed unit to path as JSON, in insertion order.
func (s *Store) ExportJSON(ctx context.Context, path string) error {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Store) exportEntries(ctx context.Context) ([]ExportEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, text, title, link, pub_date FROM units ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	defer rows.Close()

	var entries []ExportEntry
	for rows.Next() {
		var u types.ContentUnit
		if err := rows.Scan(&u.ID, &u.Text, &u.Meta.Title, &u.Meta.Link, &u.Meta.PubDate); err != nil {
			return nil, fmt.Errorf("scanning unit: %w", err)
		}
		entries = append(entries, ExportEntry{
			ID:      u.ID,
			Title:   u.Meta.Title,
			Link:    u.Meta.Link,
			PubDate: u.Meta.PubDate,
			Text:    u.Text,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	return entries, nil
}
