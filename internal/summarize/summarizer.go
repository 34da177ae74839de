// Package summarize turns arbitrarily long document text into one
// bounded-length summary via map-reduce over size-bounded chunks.
//
// Summarizer wraps a single backend call for one unit of text; Pipeline
// orchestrates chunking, the concurrent map step, recursive reduction and the
// final call. Both operate against llm.Generator, so the whole package runs
// offline on llm.Simulated.
package summarize

import (
	"context"
	"fmt"

	"github.com/docdigest/doc-digest/internal/llm"
	"github.com/docdigest/doc-digest/internal/prompt"
)

// Summarizer issues exactly one generation call per Summarize invocation.
type Summarizer struct {
	gen llm.Generator
}

// NewSummarizer wraps gen. A nil gen selects the simulated backend, which is
// the documented offline operating mode.
func NewSummarizer(gen llm.Generator) *Summarizer {
	if gen == nil {
		gen = llm.Simulated{}
	}
	return &Summarizer{gen: gen}
}

// Generator returns the wrapped backend.
func (s *Summarizer) Generator() llm.Generator {
	return s.gen
}

// Summarize renders templateBody with variables (plus "text" bound to text)
// and issues one backend call. Backend failures are returned to the caller
// untouched — no retry, no substitute value.
func (s *Summarizer) Summarize(ctx context.Context, text, templateBody string, variables map[string]string) (string, error) {
	vars := make(map[string]string, len(variables)+1)
	for k, v := range variables {
		vars[k] = v
	}
	vars["text"] = text

	out, err := s.gen.Generate(ctx, prompt.Render(templateBody, vars))
	if err != nil {
		return "", fmt.Errorf("summarize: %s: %w", s.gen.Name(), err)
	}
	return out, nil
}
