package catalog

import (
	"context"
	"fmt"

	"github.com/jpl-au/darc/internal/store"
)

// node looks up a Term or Collection by id or slug.
func (s *Service) node(ctx context.Context, kind store.Kind, key store.Key) (*store.Node, error) {
	if key.Slug != "" {
		return s.store.NodeBySlug(ctx, kind, key.Slug)
	}
	id, ok := key.IntID()
	if !ok {
		return nil, fmt.Errorf("%s %s: %w", kind, key, store.ErrNotFound)
	}
	return s.store.Node(ctx, kind, id)
}

func (s *Service) document(ctx context.Context, key store.Key) (*store.Document, error) {
	if key.Slug != "" {
		return s.store.DocumentBySlug(ctx, key.Slug)
	}
	id, ok := key.IntID()
	if !ok {
		return nil, fmt.Errorf("document %s: %w", key, store.ErrNotFound)
	}
	return s.store.Document(ctx, id)
}

// Data files have no slug; any key is tried as a UUID.
func (s *Service) file(ctx context.Context, key store.Key) (*store.DataFile, error) {
	return s.store.DataFile(ctx, key.String())
}

func (s *Service) metadata(ctx context.Context, key store.Key) (*store.Metadata, error) {
	id, ok := key.IntID()
	if !ok {
		return nil, fmt.Errorf("metadata %s: %w", key, store.ErrNotFound)
	}
	return s.store.Metadata(ctx, id)
}

// ResolveID maps a key to the integer id of a Term, Collection or Document.
func (s *Service) ResolveID(ctx context.Context, kind store.Kind, key store.Key) (int64, error) {
	switch {
	case kind.Hierarchical():
		n, err := s.node(ctx, kind, key)
		if err != nil {
			return 0, err
		}
		return n.ID, nil
	case kind == store.KindDocument:
		d, err := s.document(ctx, key)
		if err != nil {
			return 0, err
		}
		return d.ID, nil
	case kind == store.KindMetadata:
		m, err := s.metadata(ctx, key)
		if err != nil {
			return 0, err
		}
		return m.ID, nil
	}
	return 0, fmt.Errorf("%w: %s has no integer id", ErrUnknownKind, kind)
}
