// Package vacuum compacts the catalog database.
//
// Catalog deletes are hard deletes, so freed pages pile up after large
// removals such as dropping a collection subtree. Vacuum checkpoints the WAL
// and rebuilds the file; dry run only reports the current statistics.
package vacuum

import (
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/darc/internal/format"
	"github.com/jpl-au/darc/internal/progress"
	"github.com/jpl-au/darc/internal/service"
	"github.com/jpl-au/darc/internal/store"
)

// Options configures a vacuum run.
type Options struct {
	DryRun bool // Report statistics without rebuilding
}

// Result reports what vacuum did.
type Result struct {
	Reclaimed int64        `json:"reclaimed"` // Bytes returned to the filesystem
	Stats     *store.Stats `json:"stats"`
	DryRun    bool         `json:"dry_run,omitempty"`
}

// Run rebuilds the database file and prints the bytes reclaimed.
func Run(ctx context.Context, w io.Writer, svc service.Service, opts Options) (Result, error) {
	result := Result{DryRun: opts.DryRun}

	stats, err := svc.Stats(ctx)
	if err != nil {
		return result, err
	}
	result.Stats = stats

	if opts.DryRun {
		if err := format.Stats(w, stats); err != nil {
			return result, err
		}
		fmt.Fprintln(w, "\nDry run: database not rebuilt")
		return result, nil
	}

	spin := progress.NewSpinner("Vacuuming")
	spin.Start()
	n, err := svc.Store().Vacuum(ctx)
	spin.Stop()
	if err != nil {
		return result, err
	}

	result.Reclaimed = n
	if n <= 0 {
		fmt.Fprintln(w, "Nothing to reclaim")
	} else {
		fmt.Fprintf(w, "Reclaimed %d bytes\n", n)
	}
	return result, nil
}
