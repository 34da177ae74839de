package prompt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ── Load() tests ──────────────────────────────────────────────────────────────

func TestLoad_EmbedDefault(t *testing.T) {
	// No override dir set — must return the embedded default.
	l := NewLoader("")
	got := l.Load(NameChunk)
	if got.Body == "" {
		t.Fatal("Load(chunk) returned empty body; expected embedded default")
	}
	if !strings.Contains(got.Body, "{{text}}") {
		t.Errorf("chunk template missing {{text}} placeholder: %q", got.Body)
	}
	if got.Name != NameChunk {
		t.Errorf("Name = %q, want %q", got.Name, NameChunk)
	}
	if got.Description == "" {
		t.Error("embedded template frontmatter description not parsed")
	}
}

func TestLoad_DiskOverridesEmbed(t *testing.T) {
	dir := t.TempDir()
	custom := "---\nname: final\ndescription: override\n---\ncustom final prompt {{text}}"
	if err := os.WriteFile(filepath.Join(dir, "final.md"), []byte(custom), 0600); err != nil {
		t.Fatalf("write override: %v", err)
	}

	l := NewLoader(dir)
	got := l.Load(NameFinal)
	if got.Body != "custom final prompt {{text}}" {
		t.Errorf("Load() body = %q, want the disk override", got.Body)
	}
	if got.Description != "override" {
		t.Errorf("Description = %q, want %q", got.Description, "override")
	}
}

func TestLoad_MissingFallsBackToBuiltin(t *testing.T) {
	l := NewLoader(t.TempDir())
	got := l.Load("nonexistent_template")
	if got.Body != fallbackBody {
		t.Errorf("Load(nonexistent) body = %q, want built-in fallback", got.Body)
	}
	if got.Name != "nonexistent_template" {
		t.Errorf("Name = %q, want requested name", got.Name)
	}
}

func TestLoad_NoFrontmatter(t *testing.T) {
	dir := t.TempDir()
	body := "plain template without frontmatter {{text}}"
	if err := os.WriteFile(filepath.Join(dir, "plain.md"), []byte(body), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	l := NewLoader(dir)
	got := l.Load("plain")
	if got.Body != body {
		t.Errorf("Body = %q, want file content unchanged", got.Body)
	}
}

func TestLoad_CachesUntilReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cached.md")
	if err := os.WriteFile(path, []byte("first"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	l := NewLoader(dir)
	if got := l.Load("cached").Body; got != "first" {
		t.Fatalf("Load = %q, want %q", got, "first")
	}

	if err := os.WriteFile(path, []byte("second"), 0600); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if got := l.Load("cached").Body; got != "first" {
		t.Errorf("Load after rewrite = %q, want cached %q", got, "first")
	}

	l.Reload()
	if got := l.Load("cached").Body; got != "second" {
		t.Errorf("Load after Reload = %q, want %q", got, "second")
	}
}

// ── Render() tests ────────────────────────────────────────────────────────────

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		body string
		vars map[string]string
		want string
	}{
		{
			name: "single substitution",
			body: "Summarize {{text}}",
			vars: map[string]string{"text": "the report"},
			want: "Summarize the report",
		},
		{
			name: "repeated placeholder",
			body: "{{title}} — {{title}}",
			vars: map[string]string{"title": "Q3"},
			want: "Q3 — Q3",
		},
		{
			name: "unresolved placeholder left verbatim",
			body: "Title: {{title}}, Source: {{source}}",
			vars: map[string]string{"title": "Q3"},
			want: "Title: Q3, Source: {{source}}",
		},
		{
			name: "no variables",
			body: "static prompt",
			vars: nil,
			want: "static prompt",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.body, tt.vars); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}
