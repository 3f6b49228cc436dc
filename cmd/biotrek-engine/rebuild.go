// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/biotrek-engine/internal/embed"
	"github.com/pdiddy/biotrek-engine/internal/index"
)

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Destroy and rebuild the vector index",
	Long: `Rebuild deletes the persisted index unconditionally and re-runs the full
ingestion pipeline with the current configuration. Use it after corpus changes
or after revising chunk settings, which only take effect through a rebuild.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRebuild,
}

func runRebuild(cmd *cobra.Command, args []string) error {
	cfg := engineConfig()

	embedder, err := embed.New(cfg.Embedding)
	if err != nil {
		return emitError(err)
	}

	store, err := index.NewManager(cfg, embedder, os.Stderr).Rebuild(context.Background())
	if err != nil {
		return emitError(err)
	}
	defer store.Close()

	n, err := store.Count()
	if err != nil {
		return emitError(err)
	}
	return emitJSON(commandStatus{Success: true, Message: "index rebuilt", Units: n})
}

func init() {
	rootCmd.AddCommand(rebuildCmd)
}
