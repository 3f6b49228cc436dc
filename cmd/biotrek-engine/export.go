// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export indexed units to YAML or JSON",
	Long: `Export writes every indexed content unit, with its canonical metadata, to a
file for inspection or audit. Embedding vectors are not included.`,
	SilenceUsage: true,
	RunE:         runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	cfg := engineConfig()
	ctx := context.Background()

	store, _, err := openIndex(ctx, cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer store.Close()

	switch format {
	case "yaml", "":
		if out == "" {
			out = "export.yaml"
		}
		if err := store.ExportYAML(ctx, out); err != nil {
			return err
		}
	case "json":
		if out == "" {
			out = "export.json"
		}
		if err := store.ExportJSON(ctx, out); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	fmt.Printf("Exported to %s\n", out)
	return nil
}

func init() {
	exportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	exportCmd.Flags().String("out", "", "output file (default: export.yaml or export.json)")

	rootCmd.AddCommand(exportCmd)
}
