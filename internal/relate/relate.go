// Package relate links and unlinks catalog entities through a named edge.
//
// Both ends are given as ids or slugs and resolved against the kinds the
// edge joins, so "relate terms deed places" tags the document "deed" with
// the term "places". Symmetric edges ignore argument order.
package relate

import (
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/darc/internal/service"
	"github.com/jpl-au/darc/internal/store"
)

// Options configures a relate operation.
type Options struct {
	Remove bool // Unlink instead of link
}

// Result reports the resolved ends of the edge.
type Result struct {
	Edge    store.Edge `json:"edge"`
	From    int64      `json:"from"`
	To      int64      `json:"to"`
	Removed bool       `json:"removed,omitempty"`
}

// Run resolves a and b against the edge's kinds and links or unlinks them.
func Run(ctx context.Context, w io.Writer, svc service.Service, edge store.Edge, a, b store.Key, opts Options) (Result, error) {
	result := Result{Edge: edge, Removed: opts.Remove}
	fromKind, toKind := edge.Ends()
	if fromKind == "" {
		return result, fmt.Errorf("%w: %q", store.ErrUnknownEdge, edge)
	}

	var err error
	if result.From, err = svc.ResolveID(ctx, fromKind, a); err != nil {
		return result, fmt.Errorf("%s %q: %w", fromKind, a, err)
	}
	if result.To, err = svc.ResolveID(ctx, toKind, b); err != nil {
		return result, fmt.Errorf("%s %q: %w", toKind, b, err)
	}

	if opts.Remove {
		err = svc.Unrelate(ctx, edge, result.From, result.To)
	} else {
		err = svc.Relate(ctx, edge, result.From, result.To)
	}
	if err != nil {
		return result, err
	}

	verb := "Linked"
	if opts.Remove {
		verb = "Unlinked"
	}
	fmt.Fprintf(w, "%s %s %d and %s %d\n", verb, fromKind, result.From, toKind, result.To)
	return result, nil
}
