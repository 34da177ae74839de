// Command digest summarizes one document from a file or stdin and prints the
// summary to stdout. Configuration comes from the environment (and .env);
// with no LLM_API_KEY set it runs in simulated mode.
//
// Usage:
//
//	digest path/to/extracted.txt
//	some-extractor | digest
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/docdigest/doc-digest/internal/config"
	"github.com/docdigest/doc-digest/internal/summarize"
)

func main() {
	config.LoadEnv()

	text, title, source, err := readInput(os.Args[1:])
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	pipeline, err := summarize.NewPipelineFromEnv()
	if err != nil {
		log.Fatalf("❌ Failed to build pipeline: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := pipeline.Summarize(ctx, text, map[string]string{
		"title":  title,
		"source": source,
	})
	if err != nil {
		log.Fatalf("❌ Summarization failed: %v", err)
	}

	fmt.Println(summary)
}

// readInput returns the document text plus title/source variables, from the
// file named in args or from stdin when no file is given.
func readInput(args []string) (text, title, source string, err error) {
	if len(args) > 0 {
		path := args[0]
		data, err := os.ReadFile(path)
		if err != nil {
			return "", "", "", fmt.Errorf("read %q: %w", path, err)
		}
		base := filepath.Base(path)
		title = strings.TrimSuffix(base, filepath.Ext(base))
		return string(data), title, path, nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", "", "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), "document", "stdin", nil
}
