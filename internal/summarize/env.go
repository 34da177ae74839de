package summarize

import (
	"fmt"
	"log"
	"os"

	"github.com/docdigest/doc-digest/internal/chunker"
	"github.com/docdigest/doc-digest/internal/config"
	"github.com/docdigest/doc-digest/internal/llm"
	"github.com/docdigest/doc-digest/internal/llm/openai"
	"github.com/docdigest/doc-digest/internal/prompt"
)

// NewPipelineFromEnv builds a Pipeline from environment variables.
//
// Backend: LLM_API_KEY and friends (see llm/openai); with LLM_API_KEY unset
// the pipeline runs in simulated mode. Pipeline knobs: DIGEST_CHUNK_SIZE,
// DIGEST_CHUNK_OVERLAP, DIGEST_SEPARATORS (prose|markdown|code),
// DIGEST_CONCURRENCY, DIGEST_PROMPTS_DIR.
func NewPipelineFromEnv() (*Pipeline, error) {
	var gen llm.Generator
	if os.Getenv("LLM_API_KEY") != "" {
		client, err := openai.NewClientFromEnv()
		if err != nil {
			return nil, fmt.Errorf("summarize: backend config: %w", err)
		}
		gen = client
	} else {
		log.Printf("[Pipeline] LLM_API_KEY not set — running in simulated mode")
	}

	cfg := chunker.DefaultConfig()
	cfg.ChunkSize = config.Int("DIGEST_CHUNK_SIZE", cfg.ChunkSize)
	cfg.ChunkOverlap = config.Int("DIGEST_CHUNK_OVERLAP", cfg.ChunkOverlap)
	switch preset := config.Str("DIGEST_SEPARATORS", "prose"); preset {
	case "prose":
		// default hierarchy
	case "markdown":
		cfg.Separators = chunker.MarkdownSeparators
	case "code":
		cfg.Separators = chunker.CodeSeparators
	default:
		return nil, fmt.Errorf("summarize: unknown DIGEST_SEPARATORS preset %q — supported: prose | markdown | code", preset)
	}
	ch, err := chunker.New(cfg)
	if err != nil {
		return nil, err
	}

	return NewPipeline(Options{
		Generator:   gen,
		Chunker:     ch,
		Prompts:     prompt.NewLoader(config.Str("DIGEST_PROMPTS_DIR", "")),
		Concurrency: config.Int("DIGEST_CONCURRENCY", DefaultConcurrency),
	})
}
