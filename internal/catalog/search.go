package catalog

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jpl-au/darc/internal/store"
	"github.com/jpl-au/darc/internal/validate"
)

// SearchOptions configures a catalog search.
type SearchOptions struct {
	// CaseSensitive overrides search.case_sensitive from config when set.
	CaseSensitive *bool
}

// SearchResult holds matches for each searched kind. A section with no
// matches is an empty slice, never nil.
type SearchResult struct {
	Query       string `json:"query"`
	Collections []Ref  `json:"collections"`
	Documents   []Ref  `json:"documents"`
	Terms       []Ref  `json:"terms"`
}

// Total returns the number of matches across all sections.
func (r *SearchResult) Total() int {
	return len(r.Collections) + len(r.Documents) + len(r.Terms)
}

// Search matches query as a substring of Collection names, Document titles
// and Term names. A blank query is rejected before the store is touched.
func (s *Service) Search(ctx context.Context, query string, opts SearchOptions) (*SearchResult, error) {
	if err := validate.Query(query); err != nil {
		return nil, err
	}
	cs := s.caseSensitive
	if opts.CaseSensitive != nil {
		cs = *opts.CaseSensitive
	}

	r := &SearchResult{Query: query}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		r.Collections, err = s.searchNodes(gctx, store.KindCollection, query, cs)
		return err
	})
	g.Go(func() error {
		docs, err := s.store.SearchDocuments(gctx, query, cs)
		if err != nil {
			return err
		}
		r.Documents = make([]Ref, len(docs))
		for i, d := range docs {
			r.Documents[i] = Ref{ID: d.ID, Name: d.Title}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		r.Terms, err = s.searchNodes(gctx, store.KindTerm, query, cs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) searchNodes(ctx context.Context, kind store.Kind, query string, cs bool) ([]Ref, error) {
	nodes, err := s.store.SearchNodes(ctx, kind, query, cs)
	if err != nil {
		return nil, err
	}
	out := make([]Ref, len(nodes))
	for i, n := range nodes {
		out[i] = Ref{ID: n.ID, Name: n.Name}
	}
	return out, nil
}
