// Package diff compares two catalog entities by their rendered detail views.
//
// Comparing renders rather than structs keeps the output readable: a diff
// shows exactly the lines a user would see change between, say, two
// collections or a document before and after relinking.
package diff

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/jpl-au/darc/internal/catalog"
	"github.com/jpl-au/darc/internal/format"
	"github.com/jpl-au/darc/internal/store"
)

// contextLines is the number of unchanged lines shown before/after changes.
// When equal sections exceed 2*contextLines, they're collapsed with "...".
const contextLines = 3

// Resolver is the part of the catalog service a diff needs.
type Resolver interface {
	Resolve(ctx context.Context, kind store.Kind, key store.Key) (catalog.Detail, error)
}

// Options configures a diff operation.
type Options struct {
	Kind   store.Kind // Kind of both entities
	Colour bool       // ANSI colour output
}

// Run resolves two entities of one kind, diffs their detail renders and
// writes the result to w.
func Run(ctx context.Context, w io.Writer, svc Resolver, a, b store.Key, opts Options) (Result, error) {
	left, err := render(ctx, svc, opts.Kind, a)
	if err != nil {
		return Result{}, fmt.Errorf("%s %s: %w", opts.Kind, a, err)
	}
	right, err := render(ctx, svc, opts.Kind, b)
	if err != nil {
		return Result{}, fmt.Errorf("%s %s: %w", opts.Kind, b, err)
	}

	r := Compute(left, right, fmt.Sprintf("%s/%s", opts.Kind, a), fmt.Sprintf("%s/%s", opts.Kind, b))
	fmt.Fprint(w, r.Format(opts.Colour))
	return r, nil
}

func render(ctx context.Context, svc Resolver, kind store.Kind, key store.Key) (string, error) {
	d, err := svc.Resolve(ctx, kind, key)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := format.Detail(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Result holds diff output.
type Result struct {
	Old  string `json:"old"`  // old label
	New  string `json:"new"`  // new label
	Diff string `json:"diff"` // plain diff text
}

// Same reports whether the two sides rendered identically.
func (r Result) Same() bool {
	for line := range strings.SplitSeq(r.Diff, "\n") {
		if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "+ ") {
			return false
		}
	}
	return true
}

// Compute returns a line diff between old and new content.
func Compute(oldContent, newContent, oldLabel, newLabel string) Result {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldContent, newContent)
	d := dmp.DiffMain(a, b, false)
	d = dmp.DiffCharsToLines(d, lines)

	return Result{
		Old:  oldLabel,
		New:  newLabel,
		Diff: formatDiffs(d),
	}
}

// formatDiffs converts diffs to unified-style text.
func formatDiffs(diffs []diffmatchpatch.Diff) string {
	var b strings.Builder
	for _, d := range diffs {
		// Trim trailing newline to avoid artefact empty string from Split
		text := strings.TrimSuffix(d.Text, "\n")
		if text == "" {
			continue
		}
		lines := strings.Split(text, "\n")
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			for _, l := range lines {
				b.WriteString("- " + l + "\n")
			}
		case diffmatchpatch.DiffInsert:
			for _, l := range lines {
				b.WriteString("+ " + l + "\n")
			}
		case diffmatchpatch.DiffEqual:
			if len(lines) > 2*contextLines {
				for i := range contextLines {
					b.WriteString("  " + lines[i] + "\n")
				}
				b.WriteString("  ...\n")
				for i := len(lines) - contextLines; i < len(lines); i++ {
					b.WriteString("  " + lines[i] + "\n")
				}
			} else {
				for _, l := range lines {
					b.WriteString("  " + l + "\n")
				}
			}
		}
	}
	return b.String()
}

// Colourise adds ANSI colours to diff output.
func Colourise(d string) string {
	const (
		red   = "\033[31m"
		green = "\033[32m"
		reset = "\033[0m"
	)

	var b strings.Builder
	for line := range strings.SplitSeq(d, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "- "):
			b.WriteString(red + line + reset + "\n")
		case strings.HasPrefix(line, "+ "):
			b.WriteString(green + line + reset + "\n")
		default:
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// Format returns the full diff with header.
func (r Result) Format(colour bool) string {
	header := fmt.Sprintf("--- %s\n+++ %s\n", r.Old, r.New)
	if colour {
		return header + Colourise(r.Diff)
	}
	return header + r.Diff
}
