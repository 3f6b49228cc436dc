// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/biotrek-engine/internal/pipeline"
)

// queryResponse is the query command's stdout payload. It carries the
// same success marker as the other commands alongside the answer fields.
type queryResponse struct {
	Success bool `json:"success"`
	pipeline.Result
}

var queryCmd = &cobra.Command{
	Use:   "query <question>",
	Short: "Answer a single question with provenance",
	Long: `Query embeds the question, retrieves the most similar indexed units above the
similarity threshold, and generates an answer grounded in them. The result is
a single JSON object on stdout: answer, sources, references, timeline, and
has_sources. A question with no relevant sources receives the specialization
decline with empty provenance.`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")
	cfg := engineConfig()
	ctx := context.Background()

	store, embedder, err := openIndex(ctx, cfg, os.Stderr)
	if err != nil {
		return emitError(err)
	}
	defer store.Close()

	p, err := newPipeline(cfg, store, embedder)
	if err != nil {
		return emitError(err)
	}

	result, err := p.Answer(ctx, question, nil)
	if err != nil {
		return emitError(err)
	}
	return emitJSON(queryResponse{Success: true, Result: result})
}

func init() {
	rootCmd.AddCommand(queryCmd)
}
