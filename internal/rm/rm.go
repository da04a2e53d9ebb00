// Package rm provides deletion of catalog entities.
//
// Deletes are hard and the schema carries the consequences. Removing a
// collection removes its whole subtree, removing a term re-roots its
// children, and removing a document takes its metadata and leaves its data
// files unlinked. Run reports those
// consequences up front so the caller can show them before they happen.
package rm

import (
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/darc/internal/catalog"
	"github.com/jpl-au/darc/internal/service"
	"github.com/jpl-au/darc/internal/store"
)

// Options configures a delete operation.
type Options struct {
	Kind   store.Kind
	DryRun bool // Report what would be removed without removing it
}

// Result contains the outcome of a delete operation.
type Result struct {
	Kind     store.Kind `json:"kind"`
	Key      string     `json:"key"`
	ID       string     `json:"id,omitempty"`
	Name     string     `json:"name,omitempty"`
	Subtree  int        `json:"subtree,omitempty"`  // Collections removed with it, or terms re-rooted
	Unlinked []string   `json:"unlinked,omitempty"` // File ids left without a document
	DryRun   bool       `json:"dry_run,omitempty"`
}

// Run resolves key as kind, describes the consequences and deletes it.
func Run(ctx context.Context, w io.Writer, svc service.Service, key store.Key, opts Options) (Result, error) {
	result := Result{Kind: opts.Kind, Key: key.String(), DryRun: opts.DryRun}

	d, err := svc.Resolve(ctx, opts.Kind, key)
	if err != nil {
		return result, err
	}

	switch d := d.(type) {
	case *catalog.NodeDetail:
		result.ID = fmt.Sprint(d.Node.ID)
		result.Name = d.Node.Name
		tree, err := svc.Subtree(ctx, opts.Kind, key)
		if err != nil {
			return result, err
		}
		// Only a term's direct children become roots; grandchildren keep
		// their parent.
		result.Subtree = tree.Size() - 1
		if opts.Kind == store.KindTerm {
			result.Subtree = len(tree.Children)
		}
	case *catalog.DocumentDetail:
		result.ID = fmt.Sprint(d.Document.ID)
		result.Name = d.Document.Title
		for _, f := range d.Files {
			result.Unlinked = append(result.Unlinked, f.ID)
		}
	case *catalog.FileDetail:
		result.ID = d.File.ID
		result.Name = d.File.FileName
	case *catalog.MetadataDetail:
		result.ID = fmt.Sprint(d.Metadata.ID)
		result.Name = fmt.Sprintf("metadata for document %d", d.Metadata.DocumentID)
	}

	verb := "Deleted"
	if opts.DryRun {
		verb = "Would delete"
	} else if err := svc.Remove(ctx, opts.Kind, key); err != nil {
		return result, err
	}

	fmt.Fprintf(w, "%s %s %s - %s\n", verb, opts.Kind, result.ID, result.Name)
	if result.Subtree > 0 {
		if opts.Kind == store.KindCollection {
			fmt.Fprintf(w, "  with %d descendant collection(s)\n", result.Subtree)
		} else {
			fmt.Fprintf(w, "  %d child term(s) re-rooted\n", result.Subtree)
		}
	}
	for _, id := range result.Unlinked {
		fmt.Fprintf(w, "  file %s unlinked\n", id)
	}
	return result, nil
}
