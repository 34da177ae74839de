package chunker

import "fmt"

// Default budgets, expressed in estimated tokens (see internal/token).
const (
	DefaultChunkSize    = 3000
	DefaultChunkOverlap = 500
)

// DefaultSeparators is the prose hierarchy: paragraph break, line break,
// sentence end, word boundary, then the empty separator which triggers
// fixed-width character slicing as the last resort.
var DefaultSeparators = []string{"\n\n", "\n", ". ", " ", ""}

// MarkdownSeparators puts heading markers ahead of the generic prose breaks
// so documents split at section boundaries first. Deeper headings come first:
// splitting on "\n## " would otherwise also fire inside "\n### ".
var MarkdownSeparators = []string{
	"\n###### ", "\n##### ", "\n#### ", "\n### ", "\n## ",
	"\n\n", "\n", ". ", " ", "",
}

// CodeSeparators prioritizes statement and block delimiters over prose breaks.
var CodeSeparators = []string{"\n\n", "\n}", ";\n", "\n", " ", ""}

// Config controls how a Chunker splits text.
type Config struct {
	// ChunkSize is the per-chunk token budget. Must be positive.
	ChunkSize int
	// ChunkOverlap is the token-equivalent of trailing text repeated from
	// the previous chunk for continuity. Must be < ChunkSize; 0 disables
	// overlap.
	ChunkOverlap int
	// Separators is the delimiter hierarchy, strongest first. An empty
	// string entry marks the character-level fallback. Nil means
	// DefaultSeparators.
	Separators []string
	// KeepSeparator retains each delimiter at the end of the fragment that
	// precedes it, so concatenating fragments reconstructs the input.
	KeepSeparator bool
	// SpecialPatterns are structural regions that should not be split
	// internally when avoidable. Nil means DefaultSpecialPatterns.
	SpecialPatterns []SpecialPattern
}

// DefaultConfig returns the prose-tuned configuration.
func DefaultConfig() Config {
	return Config{
		ChunkSize:       DefaultChunkSize,
		ChunkOverlap:    DefaultChunkOverlap,
		Separators:      DefaultSeparators,
		KeepSeparator:   true,
		SpecialPatterns: DefaultSpecialPatterns(),
	}
}

// MarkdownConfig returns DefaultConfig with the markdown separator hierarchy.
func MarkdownConfig() Config {
	cfg := DefaultConfig()
	cfg.Separators = MarkdownSeparators
	return cfg
}

func (c *Config) applyDefaults() {
	if c.ChunkSize == 0 {
		c.ChunkSize = DefaultChunkSize
	}
	if c.Separators == nil {
		c.Separators = DefaultSeparators
	}
	if c.SpecialPatterns == nil {
		c.SpecialPatterns = DefaultSpecialPatterns()
	}
}

func (c *Config) validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunker: chunk size must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("chunker: overlap cannot be negative, got %d", c.ChunkOverlap)
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("chunker: overlap (%d) must be smaller than chunk size (%d)",
			c.ChunkOverlap, c.ChunkSize)
	}
	return nil
}
