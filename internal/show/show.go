// Package show resolves one catalog entity and writes its detail view.
//
// The plain text layout is the default and is what pipes, redirects and
// diff see. Markdown is produced for terminals, where the caller renders it
// with glamour; this package never inspects the output stream itself.
package show

import (
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/darc/internal/catalog"
	"github.com/jpl-au/darc/internal/format"
	"github.com/jpl-au/darc/internal/service"
	"github.com/jpl-au/darc/internal/store"
)

// Options configures a show operation.
type Options struct {
	Kind     store.Kind
	Markdown bool // Emit markdown instead of the plain layout
	Tree     bool // Append the node's subtree (collections and terms only)
}

// Result contains the outcome of a show operation.
type Result struct {
	Detail catalog.Detail
	Tree   string // Rendered subtree when Options.Tree was set
}

// ToJSON converts the result to JSON-serializable format.
func (r Result) ToJSON() any {
	if r.Detail == nil {
		return nil
	}
	return r.Detail.ToJSON()
}

// Run resolves key as kind and writes its detail view to w.
func Run(ctx context.Context, w io.Writer, svc service.Service, key store.Key, opts Options) (Result, error) {
	var result Result

	d, err := svc.Resolve(ctx, opts.Kind, key)
	if err != nil {
		return result, err
	}
	result.Detail = d

	if opts.Tree {
		if !opts.Kind.Hierarchical() {
			return result, fmt.Errorf("%w: --tree needs a collection or term", catalog.ErrUnknownKind)
		}
		tree, err := svc.RenderSubtree(ctx, opts.Kind, key)
		if err != nil {
			return result, err
		}
		result.Tree = tree
	}

	if opts.Markdown {
		fmt.Fprint(w, format.Markdown(d))
		if result.Tree != "" {
			fmt.Fprintf(w, "\n## Tree\n\n```\n%s\n```\n", result.Tree)
		}
		return result, nil
	}

	if err := format.Detail(w, d); err != nil {
		return result, err
	}
	if result.Tree != "" {
		fmt.Fprintf(w, "\n===== Tree =====\n%s\n", result.Tree)
	}
	return result, nil
}
