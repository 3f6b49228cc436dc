// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

// commandStatus is the JSON payload emitted by init and rebuild.
type commandStatus struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Units   int    `json:"units,omitempty"`
	Error   string `json:"error,omitempty"`
}

// emitJSON writes v to stdout as a single indented JSON object. Commands
// emit exactly one object per run so callers can parse stdout directly.
func emitJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func emitError(err error) error {
	emitJSON(commandStatus{Success: false, Error: err.Error()})
	return err
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Build or load the vector index",
	Long: `Init opens the persisted vector index if one exists, and otherwise runs the
full ingestion pipeline (load, chunk, normalize, embed, persist) over the
configured corpus directories. Progress is reported on stderr; the result is
a single JSON object on stdout.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg := engineConfig()

	store, _, err := openIndex(context.Background(), cfg, os.Stderr)
	if err != nil {
		return emitError(err)
	}
	defer store.Close()

	n, err := store.Count()
	if err != nil {
		return emitError(err)
	}
	return emitJSON(commandStatus{Success: true, Message: "index ready", Units: n})
}

func init() {
	rootCmd.AddCommand(initCmd)
}
