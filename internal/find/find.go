// Package find provides substring search across catalog kinds.
//
// This wraps the service.Search method with output formatting, separating
// the search logic from presentation. Matching is plain substring
// containment over collection names, document titles and term names.
package find

import (
	"context"
	"io"
	"strconv"

	"github.com/jpl-au/darc/internal/catalog"
	"github.com/jpl-au/darc/internal/format"
	"github.com/jpl-au/darc/internal/service"
)

// Options configures a search operation.
type Options struct {
	CaseSensitive *bool // Override search.case_sensitive from config
	Count         bool  // Only output the number of matches
}

// Result contains the outcome of a search operation.
type Result struct {
	*catalog.SearchResult
}

// ToJSON converts the result to JSON-serializable format.
func (r Result) ToJSON() any {
	return r.SearchResult
}

// Run searches the catalog and writes output to w.
func Run(ctx context.Context, w io.Writer, svc service.Service, query string, opts Options) (Result, error) {
	var result Result

	r, err := svc.Search(ctx, query, catalog.SearchOptions{CaseSensitive: opts.CaseSensitive})
	if err != nil {
		return result, err
	}
	result.SearchResult = r

	if opts.Count {
		_, err = io.WriteString(w, strconv.Itoa(r.Total())+"\n")
		return result, err
	}
	return result, format.SearchResults(w, r)
}
