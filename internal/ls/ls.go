// Package ls provides flat catalog listings with sorting and filtering.
//
// Listings come from Service.List, which returns every entity of a kind as
// id/title pairs in the store's presentation order. Filtering by glob and
// re-sorting happen here so the store keeps a single ordering contract.
package ls

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/jpl-au/darc/internal/catalog"
	"github.com/jpl-au/darc/internal/format"
	"github.com/jpl-au/darc/internal/glob"
	"github.com/jpl-au/darc/internal/service"
	"github.com/jpl-au/darc/internal/store"
)

// SortField specifies how to sort results.
type SortField string

const (
	SortNone  SortField = ""      // Store order
	SortTitle SortField = "title" // Alphabetical by title, then id
	SortID    SortField = "id"    // Numeric ids ascending, UUIDs lexically
)

// Options configures a list operation.
type Options struct {
	Kind          store.Kind
	Match         string    // Glob applied to titles
	CaseSensitive bool      // Glob matching respects case
	Long          bool      // Aligned columns with header
	IDsOnly       bool      // Only print ids
	Sort          SortField // Sort field
	Reverse       bool      // Reverse sort order
}

// Result contains the outcome of a list operation.
type Result struct {
	Kind  store.Kind        `json:"kind"`
	Items []catalog.Summary `json:"items"`
}

// Count returns the number of rows in the result.
func (r Result) Count() int {
	return len(r.Items)
}

// ToJSON converts the result to JSON-serializable format.
func (r Result) ToJSON() any {
	return r
}

// Run lists entities of a kind and writes formatted output to w.
func Run(ctx context.Context, w io.Writer, svc service.Service, opts Options) (Result, error) {
	result := Result{Kind: opts.Kind}

	rows, err := svc.List(ctx, opts.Kind)
	if err != nil {
		return result, err
	}

	if opts.Match != "" {
		m, err := glob.Compile(opts.Match, opts.CaseSensitive)
		if err != nil {
			return result, err
		}
		rows = slices.DeleteFunc(rows, func(r catalog.Summary) bool {
			return !m.Match(r.Title)
		})
	}

	switch opts.Sort {
	case SortTitle:
		slices.SortStableFunc(rows, func(a, b catalog.Summary) int {
			return cmp.Or(cmp.Compare(a.Title, b.Title), compareIDs(a.ID, b.ID))
		})
	case SortID:
		slices.SortStableFunc(rows, func(a, b catalog.Summary) int {
			return compareIDs(a.ID, b.ID)
		})
	}
	if opts.Reverse {
		slices.Reverse(rows)
	}

	result.Items = rows

	switch {
	case opts.IDsOnly:
		err = format.IDs(w, rows)
	case opts.Long:
		err = format.Long(w, rows)
	default:
		err = format.List(w, rows)
	}
	return result, err
}

// compareIDs orders integer ids numerically and anything else lexically.
func compareIDs(a, b string) int {
	ai, errA := strconv.ParseInt(a, 10, 64)
	bi, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		return cmp.Compare(ai, bi)
	}
	return cmp.Compare(a, b)
}

// ParseSort validates a --sort value.
func ParseSort(s string) (SortField, error) {
	switch SortField(s) {
	case SortNone, SortTitle, SortID:
		return SortField(s), nil
	}
	return "", fmt.Errorf("invalid sort field %q (valid: title, id)", s)
}
