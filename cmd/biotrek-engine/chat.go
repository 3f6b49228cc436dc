// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/biotrek-engine/internal/index"
	"github.com/pdiddy/biotrek-engine/internal/pipeline"
	"github.com/pdiddy/biotrek-engine/internal/provenance"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive question-answering session",
	Long: `Chat runs an interactive loop against the indexed corpus. Besides questions,
the loop accepts session commands that refer to the sources behind the most
recent answer:

  timeline            publication timeline of the last answer's sources
  refs, references    numbered reference list
  evidence            full evidence snippets
  rebuild             rebuild the index, then continue
  exit, q             quit`,
	SilenceUsage: true,
	RunE:         runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg := engineConfig()
	ctx := context.Background()

	store, embedder, err := openIndex(ctx, cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer store.Close()

	p, err := newPipeline(cfg, store, embedder)
	if err != nil {
		return err
	}

	fmt.Println("Hello, ask me about NASA BioTrek research (type 'exit' to quit):")
	return chatLoop(ctx, p, os.Stdin, os.Stdout, func() error {
		fresh, err := index.NewManager(cfg, embedder, os.Stderr).Rebuild(ctx)
		if err != nil {
			return err
		}
		return fresh.Close()
	})
}

// chatLoop reads lines from in until exit or EOF. The session holds the
// sources behind the most recent answer; provenance commands format those
// sources without re-querying.
func chatLoop(ctx context.Context, p *pipeline.Pipeline, in io.Reader, out io.Writer, rebuild func() error) error {
	var session pipeline.Session
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch strings.ToLower(line) {
		case "exit", "q":
			fmt.Fprintln(out, "Goodbye!")
			return nil

		case "rebuild":
			fmt.Fprintln(out, "Rebuilding index...")
			if err := rebuild(); err != nil {
				fmt.Fprintf(out, "rebuild failed: %v\n", err)
				continue
			}
			fmt.Fprintln(out, "Done. Restart the session to load the new index.")
			return nil

		case "timeline":
			if !session.HasSources() {
				fmt.Fprintln(out, "No last query sources available.")
				continue
			}
			fmt.Fprintln(out, "\nTimeline (oldest to newest):")
			for _, e := range provenance.TimelineEntries(session.Units()) {
				fmt.Fprintf(out, "- %s | %s\n  %s\n", e.Date, e.Title, e.Link)
			}
			fmt.Fprintln(out)

		case "refs", "references":
			if !session.HasSources() {
				fmt.Fprintln(out, "No last query sources available.")
				continue
			}
			fmt.Fprintln(out, "\nReferences:")
			for _, ref := range provenance.References(session.Units()) {
				fmt.Fprintln(out, ref)
			}
			fmt.Fprintln(out)

		case "evidence", "full evidence":
			if !session.HasSources() {
				fmt.Fprintln(out, "No last query sources available.")
				continue
			}
			fmt.Fprintln(out, "\nFull evidence snippets:")
			fmt.Fprintln(out, provenance.Evidence(session.Units()))

		default:
			result, err := p.Answer(ctx, line, &session)
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "\n%s\n\n", result.Answer)
			if result.HasSources {
				fmt.Fprintf(out, "Found %d relevant source(s). Type 'refs' to see references or 'timeline' to see timeline.\n\n", len(result.Sources))
			}
		}
	}
	return scanner.Err()
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
