// write.go exposes the administrative writes that populate the catalog.
//
// The read engine never mutates. These methods exist for the import,
// file and relate commands, and apply configured limits plus the caller's
// identity from ctx as the audit author.

package catalog

import (
	"context"
	"fmt"

	"github.com/jpl-au/darc/internal/store"
)

// AddNode creates a Term or Collection.
func (s *Service) AddNode(ctx context.Context, n *store.Node) error {
	return s.store.CreateNode(ctx, n, s.writeOpts(ctx))
}

// UpdateNode rewrites a node's name, description, slug and parent.
func (s *Service) UpdateNode(ctx context.Context, n *store.Node) error {
	return s.store.UpdateNode(ctx, n, s.writeOpts(ctx))
}

// AddDocument creates a document in at least one collection.
func (s *Service) AddDocument(ctx context.Context, d *store.Document, collections, terms []int64) error {
	return s.store.CreateDocument(ctx, d, collections, terms, s.writeOpts(ctx))
}

// SetMembers replaces a document's collection or term set.
func (s *Service) SetMembers(ctx context.Context, edge store.Edge, id int64, targets []int64) error {
	return s.store.SetMembers(ctx, edge, id, targets, s.writeOpts(ctx))
}

// Relate links two entities through an edge.
func (s *Service) Relate(ctx context.Context, edge store.Edge, from, to int64) error {
	return s.store.Relate(ctx, edge, from, to, s.writeOpts(ctx))
}

// Unrelate removes a link in whichever direction it was stored.
func (s *Service) Unrelate(ctx context.Context, edge store.Edge, from, to int64) error {
	return s.store.Unrelate(ctx, edge, from, to, s.writeOpts(ctx))
}

// AddMetadata attaches a metadata payload to a document.
func (s *Service) AddMetadata(ctx context.Context, m *store.Metadata) error {
	return s.store.AddMetadata(ctx, m, s.writeOpts(ctx))
}

// AddFile registers a data file, assigning a UUID when f.ID is empty.
func (s *Service) AddFile(ctx context.Context, f *store.DataFile) error {
	return s.store.CreateFile(ctx, f, s.writeOpts(ctx))
}

// LinkFile attaches a file to a document, or detaches it when documentID is nil.
func (s *Service) LinkFile(ctx context.Context, id string, documentID *int64) error {
	return s.store.SetFileDocument(ctx, id, documentID, s.writeOpts(ctx))
}

// AppendLog appends a line to a file's provenance log.
func (s *Service) AppendLog(ctx context.Context, id, line string) error {
	return s.store.AppendRetrieveLog(ctx, id, line, s.writeOpts(ctx))
}

// Remove deletes an entity addressed by id or slug. Collections take their
// subtree with them, Terms leave their children as roots, Documents take
// their metadata and leave their files unlinked.
func (s *Service) Remove(ctx context.Context, kind store.Kind, key store.Key) error {
	switch kind {
	case store.KindTerm, store.KindCollection:
		n, err := s.node(ctx, kind, key)
		if err != nil {
			return err
		}
		return s.store.DeleteNode(ctx, kind, n.ID)
	case store.KindDocument:
		d, err := s.document(ctx, key)
		if err != nil {
			return err
		}
		return s.store.DeleteDocument(ctx, d.ID)
	case store.KindMetadata:
		m, err := s.metadata(ctx, key)
		if err != nil {
			return err
		}
		return s.store.DeleteMetadata(ctx, m.ID)
	case store.KindDataFile:
		return s.store.DeleteFile(ctx, key.String())
	}
	return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}
