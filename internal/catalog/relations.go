// relations.go resolves many-to-many edges for the detail views.
//
// Design: the store answers with ids only. Turning ids into names is a second
// batched read, and because the two reads are not a snapshot, an id that no
// longer resolves is reported as a missing-reference warning instead of
// failing the caller.

package catalog

import (
	"context"

	"github.com/jpl-au/darc/internal/store"
)

// Ref names a related entity.
type Ref struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MembersOf returns the target ids of an edge for its owning entity, for
// example the collections a document belongs to.
func (s *Service) MembersOf(ctx context.Context, edge store.Edge, id int64) ([]int64, error) {
	return s.store.Members(ctx, edge, id)
}

// RelatedSymmetric returns every id linked to id through a symmetric edge,
// whichever direction the row was stored in.
func (s *Service) RelatedSymmetric(ctx context.Context, edge store.Edge, id int64) ([]int64, error) {
	return s.store.Related(ctx, edge, id)
}

// ReverseLookup returns the owners whose forward set contains id, for
// example the documents in a collection.
func (s *Service) ReverseLookup(ctx context.Context, edge store.Edge, id int64) ([]int64, error) {
	return s.store.Reverse(ctx, edge, id)
}

// refs resolves ids of one kind to names ordered by name. Ids that no longer
// exist are dropped and reported as warnings.
func (s *Service) refs(ctx context.Context, kind store.Kind, ids []int64) ([]Ref, []Warning, error) {
	out := []Ref{}
	if len(ids) == 0 {
		return out, nil, nil
	}

	found := make(map[int64]bool, len(ids))
	if kind == store.KindDocument {
		docs, err := s.store.DocumentsByID(ctx, ids)
		if err != nil {
			return nil, nil, err
		}
		for _, d := range docs {
			out = append(out, Ref{ID: d.ID, Name: d.Title})
			found[d.ID] = true
		}
	} else {
		nodes, err := s.store.NodesByID(ctx, kind, ids)
		if err != nil {
			return nil, nil, err
		}
		for _, n := range nodes {
			out = append(out, Ref{ID: n.ID, Name: n.Name})
			found[n.ID] = true
		}
	}

	var warns []Warning
	for _, id := range ids {
		if !found[id] {
			warns = append(warns, missing(kind, id))
		}
	}
	return out, warns, nil
}

// memberRefs resolves the targets of an edge owned by id.
func (s *Service) memberRefs(ctx context.Context, edge store.Edge, id int64) ([]Ref, []Warning, error) {
	ids, err := s.MembersOf(ctx, edge, id)
	if err != nil {
		return nil, nil, err
	}
	_, to := edge.Ends()
	return s.refs(ctx, to, ids)
}

// reverseRefs resolves the owners of an edge pointing at id.
func (s *Service) reverseRefs(ctx context.Context, edge store.Edge, id int64) ([]Ref, []Warning, error) {
	ids, err := s.ReverseLookup(ctx, edge, id)
	if err != nil {
		return nil, nil, err
	}
	from, _ := edge.Ends()
	return s.refs(ctx, from, ids)
}

// relatedRefs resolves both directions of a symmetric edge.
func (s *Service) relatedRefs(ctx context.Context, edge store.Edge, id int64) ([]Ref, []Warning, error) {
	ids, err := s.RelatedSymmetric(ctx, edge, id)
	if err != nil {
		return nil, nil, err
	}
	from, _ := edge.Ends()
	return s.refs(ctx, from, ids)
}
