// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"testing"

	"github.com/pdiddy/biotrek-engine/internal/pipeline"
	"github.com/pdiddy/biotrek-engine/internal/provenance"
)

func TestQueryResponseJSON(t *testing.T) {
	resp := queryResponse{
		Success: true,
		Result: pipeline.Result{
			Answer:     "Microgravity reduces root gravitropism.",
			Sources:    []provenance.SourceView{{Title: "Root Growth Study", Link: "osd-37.html"}},
			References: []string{"[1] Root Growth Study — osd-37.html"},
			Timeline:   []string{"2021: Root Growth Study"},
			HasSources: true,
		},
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatal(err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatal(err)
	}

	// Every command's payload carries success at the top level, flat
	// alongside the answer fields rather than nested under a result key.
	for _, key := range []string{"success", "answer", "sources", "references", "timeline", "has_sources"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("query payload missing %q: %s", key, data)
		}
	}
	if fields["success"] != true {
		t.Errorf("success = %v, want true", fields["success"])
	}
}
