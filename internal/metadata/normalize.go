// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metadata reconciles the inconsistent field names and value types
// produced by the different document loaders into the canonical
// {title, link, pub_date} schema.
package metadata

import (
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/biotrek-engine/pkg/types"
)

// Alias lists are checked in order; the first usable value wins.
var (
	titleKeys = []string{"title", "Title", "filename", "Filename", "name", "Name"}
	linkKeys  = []string{"link", "Link", "url", "URL", "href"}
	dateKeys  = []string{"pub_date", "Pub_Date", "Publication Date", "publication_date", "Date", "date"}
)

// datePlaceholders are string values that look like dates but carry no
// information. They normalize to types.DateUnknown rather than a
// misleading date.
var datePlaceholders = map[string]bool{
	"":             true,
	"1970-01-01":   true,
	"unknown date": true,
	"No date":      true,
}

// Normalize maps provisional loader metadata into the canonical schema.
// It is invoked once at ingestion to stabilize stored metadata and once
// more at result-formatting time, in case stored metadata predates a
// normalization rule change.
func Normalize(raw map[string]any) types.CanonicalMetadata {
	title := firstString(raw, titleKeys)
	if title == "" {
		title = types.TitleUnknown
	}
	return types.CanonicalMetadata{
		Title:   title,
		Link:    firstString(raw, linkKeys),
		PubDate: ResolveDate(firstPresent(raw, dateKeys)),
	}
}

// Renormalize re-applies the canonical rules to already-canonical metadata.
func Renormalize(m types.CanonicalMetadata) types.CanonicalMetadata {
	return Normalize(map[string]any{
		"title":    m.Title,
		"link":     m.Link,
		"pub_date": m.PubDate,
	})
}

// ResolveDate converts a provisional date value into a YYYY-MM-DD string or
// types.DateUnknown. Numeric values are Unix timestamps interpreted in
// local time, matching file modification times recorded by the loaders.
// Out-of-range timestamps and placeholder strings resolve to the unknown
// sentinel, never to a fabricated date.
func ResolveDate(v any) string {
	switch d := v.(type) {
	case nil:
		return types.DateUnknown
	case int:
		return timestampToDate(int64(d))
	case int64:
		return timestampToDate(d)
	case float64:
		return timestampToDate(int64(d))
	case string:
		s := strings.TrimSpace(d)
		if datePlaceholders[s] || s == types.DateUnknown {
			return types.DateUnknown
		}
		return s
	default:
		s := strings.TrimSpace(fmt.Sprintf("%v", d))
		if s == "" || datePlaceholders[s] {
			return types.DateUnknown
		}
		return s
	}
}

// timestampToDate converts a Unix timestamp into a local calendar date.
// Negative or implausibly large values are treated as absent.
func timestampToDate(ts int64) string {
	if ts <= 0 {
		return types.DateUnknown
	}
	t := time.Unix(ts, 0)
	if t.Year() > 9999 {
		return types.DateUnknown
	}
	s := t.Format("2006-01-02")
	if datePlaceholders[s] {
		return types.DateUnknown
	}
	return s
}

// firstString returns the first non-empty string value among the keys.
func firstString(raw map[string]any, keys []string) string {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

// firstPresent returns the first present value among the keys, regardless
// of type. Date values may be numeric timestamps or strings.
func firstPresent(raw map[string]any, keys []string) any {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
				continue
			}
			return v
		}
	}
	return nil
}
