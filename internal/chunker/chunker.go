// Package chunker splits long text into ordered, size-bounded chunks.
//
// Splitting is three-tiered: structural regions (code fences, headings, list
// items) are carved out first so they stay intact, then a separator hierarchy
// is tried strongest-to-weakest, and finally fixed-width character slicing
// guarantees progress on text with no delimiters at all. Chunk budgets are
// expressed in estimated tokens (internal/token).
package chunker

import (
	"log"
	"strings"

	"github.com/docdigest/doc-digest/internal/token"
)

// Chunker splits text according to an immutable Config. Safe for concurrent
// use: it carries no mutable state.
type Chunker struct {
	cfg Config
}

// New validates cfg and returns a Chunker. Nil slices in cfg fall back to the
// prose defaults. An overlap that is not smaller than the chunk size is a
// construction error, never a call-time one.
func New(cfg Config) (*Chunker, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	// Copy the pattern slice before sorting so a caller-shared slice is not
	// reordered behind their back.
	patterns := make([]SpecialPattern, len(cfg.SpecialPatterns))
	copy(patterns, cfg.SpecialPatterns)
	sortByPriority(patterns)
	cfg.SpecialPatterns = patterns
	return &Chunker{cfg: cfg}, nil
}

// Config returns the effective configuration after defaults were applied.
func (c *Chunker) Config() Config {
	return c.cfg
}

// SplitText splits text into chunks in document order. Text that already fits
// the budget is returned as a single chunk. Empty input yields nil with a
// warning, not an error.
//
// Every chunk estimate is within ChunkSize except character-fallback slices
// (bounded by character count) and chunks extended by overlap text, which
// exceed the budget by up to ChunkOverlap on purpose.
func (c *Chunker) SplitText(text string) []string {
	if strings.TrimSpace(text) == "" {
		log.Printf("[Chunker] Warning: empty input, nothing to split")
		return nil
	}
	if token.FitsWithin(text, c.cfg.ChunkSize) {
		return []string{text}
	}

	var chunks []string
	if fragments := c.splitBySpecial(text); fragments != nil {
		chunks = c.mergeFragments(fragments)
	} else {
		chunks = c.splitBySeparators(text, 0)
	}

	return c.applyOverlap(chunks)
}

// splitBySpecial tries each special pattern in descending priority and splits
// on the first one that matches anywhere. The result alternates text-between-
// matches (skipped when whitespace-only) and matched spans, in document
// order. Returns nil when no pattern matches.
func (c *Chunker) splitBySpecial(text string) []string {
	for _, sp := range c.cfg.SpecialPatterns {
		locs := sp.Pattern.FindAllStringIndex(text, -1)
		if len(locs) == 0 {
			continue
		}

		var fragments []string
		prev := 0
		for _, loc := range locs {
			if between := text[prev:loc[0]]; strings.TrimSpace(between) != "" {
				fragments = append(fragments, between)
			}
			fragments = append(fragments, text[loc[0]:loc[1]])
			prev = loc[1]
		}
		if tail := text[prev:]; strings.TrimSpace(tail) != "" {
			fragments = append(fragments, tail)
		}
		return fragments
	}
	return nil
}

// splitBySeparators walks the separator hierarchy starting at sepIdx. The
// first separator that yields a multi-fragment split wins; over-budget
// fragments recurse with the remaining, weaker separators only. The empty
// separator marks the character-level fallback.
func (c *Chunker) splitBySeparators(text string, sepIdx int) []string {
	if token.FitsWithin(text, c.cfg.ChunkSize) {
		return []string{text}
	}

	for i := sepIdx; i < len(c.cfg.Separators); i++ {
		sep := c.cfg.Separators[i]
		if sep == "" {
			return c.sliceFixedWidth(text)
		}

		parts := strings.Split(text, sep)
		if len(parts) < 2 {
			continue
		}
		if c.cfg.KeepSeparator {
			for j := 0; j < len(parts)-1; j++ {
				parts[j] += sep
			}
		}

		var out []string
		for _, part := range parts {
			if part == "" {
				continue
			}
			if token.FitsWithin(part, c.cfg.ChunkSize) {
				out = append(out, part)
			} else {
				out = append(out, c.splitBySeparators(part, i+1)...)
			}
		}
		if len(out) > 0 {
			return out
		}
	}

	// No usable delimiter and no empty separator configured: emit the
	// oversized atomic unit whole rather than crash.
	log.Printf("[Chunker] Warning: atomic unit of ~%d tokens exceeds budget %d, emitting whole",
		token.Estimate(text), c.cfg.ChunkSize)
	return []string{text}
}

// sliceFixedWidth is the last resort for delimiter-free text: fixed-width
// rune slices bounded by character count instead of token estimate.
func (c *Chunker) sliceFixedWidth(text string) []string {
	width := c.cfg.ChunkSize * token.CharsPerToken
	runes := []rune(text)
	chunks := make([]string, 0, len(runes)/width+1)
	for start := 0; start < len(runes); start += width {
		end := start + width
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

// mergeFragments packs consecutive special-pattern fragments into chunks up
// to the budget. A single fragment that alone exceeds the budget is split
// with the separator hierarchy instead of being merged.
func (c *Chunker) mergeFragments(fragments []string) []string {
	var chunks []string
	var cur strings.Builder
	curEst := 0

	flush := func() {
		if cur.Len() > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
			curEst = 0
		}
	}

	for _, frag := range fragments {
		est := token.Estimate(frag)
		if est > c.cfg.ChunkSize {
			flush()
			chunks = append(chunks, c.splitBySeparators(frag, 0)...)
			continue
		}
		if curEst+est > c.cfg.ChunkSize {
			flush()
		}
		cur.WriteString(frag)
		curEst += est
	}
	flush()
	return chunks
}

// applyOverlap prepends the trailing overlap window of each chunk (before its
// own overlap was added) to the next chunk. The first chunk is untouched.
func (c *Chunker) applyOverlap(chunks []string) []string {
	if c.cfg.ChunkOverlap <= 0 || len(chunks) < 2 {
		return chunks
	}

	window := c.cfg.ChunkOverlap * token.CharsPerToken
	out := make([]string, len(chunks))
	out[0] = chunks[0]
	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1])
		if len(prev) > window {
			prev = prev[len(prev)-window:]
		}
		out[i] = string(prev) + chunks[i]
	}
	return out
}
