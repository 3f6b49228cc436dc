// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the biotrek-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/biotrek-engine/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the biotrek-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "biotrek-engine",
	Short: "Question answering over the NASA BioTrek space biology corpus",
	Long: `biotrek-engine answers natural-language questions against a local corpus of
space biology documents (cached HTML pages, PDFs, tabular datasets). It builds
a persisted vector index over the corpus and pairs every answer with traceable
provenance: sources, numbered references, and a publication timeline.

Use init to build or load the index, query for a one-shot question, rebuild to
re-index after corpus or chunking changes, and chat for an interactive session.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env values become process env, so os.Getenv picks them up.
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("loading .env: %w", err)
		}

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./biotrek-engine.yaml or ~/.config/biotrek-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("biotrek-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "biotrek-engine"))
		}
	}

	viper.SetEnvPrefix("BIOTREK_ENGINE")
	viper.AutomaticEnv()

	setConfigDefaults()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
