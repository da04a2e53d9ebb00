// Package glob provides glob pattern matching for catalog titles and names.
//
// Wraps github.com/gobwas/glob so a pattern is compiled once and applied to
// every row of a listing. Titles are free text rather than paths, so there
// are no separators: "*" matches any run of characters including spaces.
package glob

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// Matcher tests titles against a compiled pattern.
type Matcher struct {
	g    glob.Glob
	fold bool
}

// Compile parses a pattern. Unless caseSensitive is set, matching ignores
// case. Supports *, ?, [abc], [!abc] and {a,b} alternation.
func Compile(pattern string, caseSensitive bool) (*Matcher, error) {
	if !caseSensitive {
		pattern = strings.ToLower(pattern)
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return &Matcher{g: g, fold: !caseSensitive}, nil
}

// Match reports whether s matches the pattern.
func (m *Matcher) Match(s string) bool {
	if m.fold {
		s = strings.ToLower(s)
	}
	return m.g.Match(s)
}

// Match compiles pattern and tests s in one step. Prefer Compile when
// testing many values.
func Match(pattern, s string) (bool, error) {
	m, err := Compile(pattern, false)
	if err != nil {
		return false, err
	}
	return m.Match(s), nil
}
