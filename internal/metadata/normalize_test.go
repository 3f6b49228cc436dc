// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metadata

import (
	"testing"
	"time"

	"github.com/pdiddy/biotrek-engine/pkg/types"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want types.CanonicalMetadata
	}{
		{
			name: "lowercase keys pass through",
			raw:  map[string]any{"title": "Plant Growth Study", "link": "https://example.org/p1", "pub_date": "2021-03-15"},
			want: types.CanonicalMetadata{Title: "Plant Growth Study", Link: "https://example.org/p1", PubDate: "2021-03-15"},
		},
		{
			name: "capitalized aliases",
			raw:  map[string]any{"Title": "Microgravity Effects", "URL": "https://example.org/p2", "Pub_Date": "2019-07-01"},
			want: types.CanonicalMetadata{Title: "Microgravity Effects", Link: "https://example.org/p2", PubDate: "2019-07-01"},
		},
		{
			name: "filename fallback for title",
			raw:  map[string]any{"filename": "osd-379.html", "href": "osd-379.html"},
			want: types.CanonicalMetadata{Title: "osd-379.html", Link: "osd-379.html", PubDate: types.DateUnknown},
		},
		{
			name: "missing everything",
			raw:  map[string]any{},
			want: types.CanonicalMetadata{Title: types.TitleUnknown, Link: "", PubDate: types.DateUnknown},
		},
		{
			name: "whitespace-only title falls through to next alias",
			raw:  map[string]any{"title": "   ", "name": "Rodent Research 1"},
			want: types.CanonicalMetadata{Title: "Rodent Research 1", Link: "", PubDate: types.DateUnknown},
		},
		{
			name: "alias order prefers earlier keys",
			raw:  map[string]any{"link": "a", "url": "b", "title": "x", "Title": "y"},
			want: types.CanonicalMetadata{Title: "x", Link: "a", PubDate: types.DateUnknown},
		},
		{
			name: "Publication Date alias",
			raw:  map[string]any{"title": "t", "Publication Date": "2020-01-02"},
			want: types.CanonicalMetadata{Title: "t", Link: "", PubDate: "2020-01-02"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw)
			if got != tt.want {
				t.Errorf("Normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolveDateNumeric(t *testing.T) {
	ts := time.Date(2022, 5, 4, 12, 0, 0, 0, time.Local).Unix()
	want := "2022-05-04"

	for name, v := range map[string]any{
		"int64":   ts,
		"int":     int(ts),
		"float64": float64(ts),
	} {
		t.Run(name, func(t *testing.T) {
			if got := ResolveDate(v); got != want {
				t.Errorf("ResolveDate(%v) = %q, want %q", v, got, want)
			}
		})
	}
}

func TestResolveDateSentinels(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want string
	}{
		{"nil", nil, types.DateUnknown},
		{"zero timestamp", int64(0), types.DateUnknown},
		{"negative timestamp", int64(-7200), types.DateUnknown},
		{"empty string", "", types.DateUnknown},
		{"epoch zero date", "1970-01-01", types.DateUnknown},
		{"unknown date placeholder", "unknown date", types.DateUnknown},
		{"already unknown", types.DateUnknown, types.DateUnknown},
		{"real date string kept", "2018-11-30", "2018-11-30"},
		{"date string trimmed", "  2018-11-30 ", "2018-11-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveDate(tt.v); got != tt.want {
				t.Errorf("ResolveDate(%v) = %q, want %q", tt.v, got, tt.want)
			}
		})
	}
}

func TestRenormalize(t *testing.T) {
	// Stored metadata written before a rule change may carry placeholder
	// dates or an empty title; Renormalize repairs both.
	got := Renormalize(types.CanonicalMetadata{Title: "", Link: "x", PubDate: "1970-01-01"})
	want := types.CanonicalMetadata{Title: types.TitleUnknown, Link: "x", PubDate: types.DateUnknown}
	if got != want {
		t.Errorf("Renormalize() = %+v, want %+v", got, want)
	}

	clean := types.CanonicalMetadata{Title: "t", Link: "l", PubDate: "2020-02-02"}
	if got := Renormalize(clean); got != clean {
		t.Errorf("Renormalize() changed clean metadata: %+v", got)
	}
}
