package chunker

import (
	"regexp"
	"sort"
)

// SpecialPattern marks a structural region (code fence, heading, list item)
// that should stay intact when the surrounding text is split. Patterns are
// evaluated highest priority first; the first one with at least one match in
// the input wins and the others are not consulted.
type SpecialPattern struct {
	Name     string
	Pattern  *regexp.Regexp
	Priority int
}

// Pattern priorities. The code fence must outrank the header pattern: a line
// starting with '#' inside a fence is code, not a heading.
const (
	priorityCodeFence    = 40
	priorityHeader       = 30
	priorityNumberedList = 20
	priorityBulletList   = 10
)

var (
	reCodeFence    = regexp.MustCompile("(?s)```[^\n]*\n.*?```")
	reHeader       = regexp.MustCompile(`(?m)^#{1,6} [^\n]*\n?`)
	reNumberedList = regexp.MustCompile(`(?m)^[ \t]*\d+[.)][ \t]+[^\n]*\n?`)
	reBulletList   = regexp.MustCompile(`(?m)^[ \t]*[-*+][ \t]+[^\n]*\n?`)
)

// DefaultSpecialPatterns returns the built-in patterns sorted by descending
// priority. The slice is freshly allocated so callers may reorder or trim it.
func DefaultSpecialPatterns() []SpecialPattern {
	return []SpecialPattern{
		{Name: "code_fence", Pattern: reCodeFence, Priority: priorityCodeFence},
		{Name: "header", Pattern: reHeader, Priority: priorityHeader},
		{Name: "numbered_list", Pattern: reNumberedList, Priority: priorityNumberedList},
		{Name: "bullet_list", Pattern: reBulletList, Priority: priorityBulletList},
	}
}

// sortByPriority orders patterns highest priority first. Stable so equal
// priorities keep their configured order.
func sortByPriority(patterns []SpecialPattern) {
	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].Priority > patterns[j].Priority
	})
}
