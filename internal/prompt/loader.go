// Package prompt implements the prompt template provider.
//
// Templates are markdown files with a YAML frontmatter block (name,
// description) followed by the template body. Lookup priority:
//
//   - disk file at <dir>/<name>.md (runtime override)
//   - embedded default at prompts/<name>.md
//   - a built-in fallback template (a named template can never be "missing")
//
// Variable substitution uses {{key}} placeholders; unresolved placeholders
// are left verbatim. The Loader is safe for concurrent use.
package prompt

import (
	"embed"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Well-known template names used by the summarization pipeline.
const (
	NameChunk = "chunk"
	NameFinal = "final"
)

// fallbackBody is returned when a named template exists neither on disk nor
// in the embedded defaults. The provider contract requires a usable default
// string rather than an error.
const fallbackBody = "Summarize the following text:\n\n{{text}}"

// defaultPrompts embeds the template files shipped with the binary.
//
//go:embed prompts/*
var defaultPrompts embed.FS

// Template is one named prompt template.
type Template struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Body        string `yaml:"-"`
}

// Loader reads templates with an optional disk override directory. Contents
// are cached after the first read; Reload invalidates the cache.
type Loader struct {
	dir   string // runtime override directory (may be empty)
	cache map[string]Template
	mu    sync.RWMutex
}

// NewLoader creates a Loader reading overrides from dir (falling back to
// embedded defaults). An empty dir means embedded defaults only.
func NewLoader(dir string) *Loader {
	return &Loader{
		dir:   dir,
		cache: make(map[string]Template),
	}
}

// Load returns the named template. Never fails: a template that exists
// nowhere resolves to the built-in fallback body.
func (l *Loader) Load(name string) Template {
	l.mu.RLock()
	if t, ok := l.cache[name]; ok {
		l.mu.RUnlock()
		return t
	}
	l.mu.RUnlock()

	t := l.loadUncached(name)

	// Double-check under write lock so two goroutines racing through the
	// read miss don't both store.
	l.mu.Lock()
	if cached, ok := l.cache[name]; ok {
		l.mu.Unlock()
		return cached
	}
	l.cache[name] = t
	l.mu.Unlock()

	return t
}

func (l *Loader) loadUncached(name string) Template {
	// Disk override first.
	if l.dir != "" {
		diskPath := filepath.Join(l.dir, name+".md")
		data, err := os.ReadFile(diskPath)
		if err == nil {
			return parseTemplate(name, string(data))
		}
		if !os.IsNotExist(err) {
			log.Printf("[Prompt] Warning: read %q failed: %v; falling back to embedded default", diskPath, err)
		}
	}

	// Embedded default.
	data, err := fs.ReadFile(defaultPrompts, "prompts/"+name+".md")
	if err == nil {
		return parseTemplate(name, string(data))
	}

	log.Printf("[Prompt] Warning: no template named %q on disk or embedded, using built-in fallback", name)
	return Template{Name: name, Body: fallbackBody}
}

// Reload clears the cache so subsequent Load calls re-read from disk.
func (l *Loader) Reload() {
	l.mu.Lock()
	l.cache = make(map[string]Template)
	l.mu.Unlock()
}

// parseTemplate splits an optional "---" YAML frontmatter block off the body.
// Malformed frontmatter is logged and treated as body text, never an error.
func parseTemplate(name, raw string) Template {
	t := Template{Name: name}

	rest, ok := strings.CutPrefix(raw, "---\n")
	if !ok {
		t.Body = raw
		return t
	}
	head, body, ok := strings.Cut(rest, "\n---\n")
	if !ok {
		t.Body = raw
		return t
	}
	if err := yaml.Unmarshal([]byte(head), &t); err != nil {
		log.Printf("[Prompt] Warning: template %q has malformed frontmatter: %v", name, err)
		t = Template{Name: name}
		t.Body = raw
		return t
	}
	if t.Name == "" {
		t.Name = name
	}
	t.Body = strings.TrimPrefix(body, "\n")
	return t
}

// Render substitutes {{key}} placeholders in body with the given variables.
// Placeholders without a matching variable are left verbatim — templates can
// carry literal braces without escaping.
func Render(body string, variables map[string]string) string {
	out := body
	for key, value := range variables {
		out = strings.ReplaceAll(out, "{{"+key+"}}", value)
	}
	return out
}
