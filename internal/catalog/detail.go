// detail.go assembles the detail view for a single entity.
//
// Separated from relations.go so the per-kind composition lives in one place:
// relations.go knows how to turn edges into named references, detail.go
// decides which edges each kind shows.
//
// Design: sub-lookups are independent reads and run concurrently with
// errgroup. Each goroutine owns one field and one warnings slot; the slots are
// merged in a fixed order afterwards so output is deterministic. A vanished
// reference becomes a warning. Only a failing query fails the whole detail.

package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/jpl-au/darc/internal/store"
)

// Detail is the assembled view of one entity.
type Detail interface {
	// Kind returns the entity kind the detail describes.
	Kind() store.Kind
	// EntityID returns the resolved id as text (a UUID for files).
	EntityID() string
	// Warns returns non-fatal problems found while assembling the view.
	Warns() []Warning
	// ToJSON returns the API representation of the detail.
	ToJSON() any
}

// NodeDetail describes a Term or Collection.
type NodeDetail struct {
	Node      store.Node
	Parent    *Ref // nil for roots
	Children  []Ref
	Documents []Ref
	Related   []Ref // Collections only
	Warnings  []Warning
}

func (d *NodeDetail) Kind() store.Kind { return d.Node.Kind }
func (d *NodeDetail) Warns() []Warning { return d.Warnings }
func (d *NodeDetail) EntityID() string { return strconv.FormatInt(d.Node.ID, 10) }

// DocumentDetail describes a Document with its memberships and attachments.
type DocumentDetail struct {
	Document    store.Document
	Collections []Ref
	Terms       []Ref
	Related     []Ref
	Metadata    *store.Metadata // nil when the document has none
	Files       []store.DataFile
	Warnings    []Warning
}

func (d *DocumentDetail) Kind() store.Kind { return store.KindDocument }
func (d *DocumentDetail) Warns() []Warning { return d.Warnings }
func (d *DocumentDetail) EntityID() string { return strconv.FormatInt(d.Document.ID, 10) }

// FileDetail describes a DataFile. Document is nil when the file is unlinked.
type FileDetail struct {
	File     store.DataFile
	Document *Ref
	Warnings []Warning
}

func (d *FileDetail) Kind() store.Kind { return store.KindDataFile }
func (d *FileDetail) Warns() []Warning { return d.Warnings }
func (d *FileDetail) EntityID() string { return d.File.ID }

// MetadataDetail describes one metadata blob and the document owning it.
type MetadataDetail struct {
	Metadata store.Metadata
	Document *Ref
	Warnings []Warning
}

func (d *MetadataDetail) Kind() store.Kind { return store.KindMetadata }
func (d *MetadataDetail) Warns() []Warning { return d.Warnings }
func (d *MetadataDetail) EntityID() string { return strconv.FormatInt(d.Metadata.ID, 10) }

// Resolve assembles the detail view for an entity addressed by id or slug.
// Document details require a user on ctx; every other kind is anonymous.
func (s *Service) Resolve(ctx context.Context, kind store.Kind, key store.Key) (Detail, error) {
	switch kind {
	case store.KindTerm, store.KindCollection:
		return s.NodeDetail(ctx, kind, key)
	case store.KindDocument:
		return s.DocumentDetail(ctx, key)
	case store.KindDataFile:
		return s.FileDetail(ctx, key)
	case store.KindMetadata:
		return s.MetadataDetail(ctx, key)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// NodeDetail assembles a Term or Collection detail.
func (s *Service) NodeDetail(ctx context.Context, kind store.Kind, key store.Key) (*NodeDetail, error) {
	if err := requireHierarchy(kind); err != nil {
		return nil, err
	}
	n, err := s.node(ctx, kind, key)
	if err != nil {
		return nil, err
	}

	d := &NodeDetail{Node: *n}
	var warns [4][]Warning
	g, gctx := errgroup.WithContext(ctx)

	if n.ParentID != nil {
		pid := *n.ParentID
		g.Go(func() error {
			p, err := s.store.Node(gctx, kind, pid)
			if errors.Is(err, store.ErrNotFound) {
				warns[0] = append(warns[0], missing(kind, pid))
				return nil
			}
			if err != nil {
				return err
			}
			d.Parent = &Ref{ID: p.ID, Name: p.Name}
			return nil
		})
	}
	g.Go(func() error {
		kids, err := s.store.Children(gctx, kind, n.ID)
		if err != nil {
			return err
		}
		d.Children = make([]Ref, len(kids))
		for i, k := range kids {
			d.Children[i] = Ref{ID: k.ID, Name: k.Name}
		}
		return nil
	})
	g.Go(func() error {
		edge := store.EdgeDocumentTerms
		if kind == store.KindCollection {
			edge = store.EdgeDocumentCollections
		}
		var err error
		d.Documents, warns[2], err = s.reverseRefs(gctx, edge, n.ID)
		return err
	})
	if kind == store.KindCollection {
		g.Go(func() error {
			var err error
			d.Related, warns[3], err = s.relatedRefs(gctx, store.EdgeCollectionRelated, n.ID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	d.Warnings = slices.Concat(warns[:]...)
	return d, nil
}

// DocumentDetail assembles a Document detail. An empty collection set is
// reported as a data integrity warning rather than an error.
func (s *Service) DocumentDetail(ctx context.Context, key store.Key) (*DocumentDetail, error) {
	if err := requireUser(ctx); err != nil {
		return nil, err
	}
	doc, err := s.document(ctx, key)
	if err != nil {
		return nil, err
	}

	d := &DocumentDetail{Document: *doc}
	var warns [3][]Warning
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		d.Collections, warns[0], err = s.memberRefs(gctx, store.EdgeDocumentCollections, doc.ID)
		if err != nil {
			return err
		}
		if len(d.Collections) == 0 {
			warns[0] = append(warns[0], Warning{
				Code:    WarnDataIntegrity,
				Message: fmt.Sprintf("document %d belongs to no collection", doc.ID),
			})
		}
		return nil
	})
	g.Go(func() error {
		var err error
		d.Terms, warns[1], err = s.memberRefs(gctx, store.EdgeDocumentTerms, doc.ID)
		return err
	})
	g.Go(func() error {
		var err error
		d.Related, warns[2], err = s.relatedRefs(gctx, store.EdgeDocumentRelated, doc.ID)
		return err
	})
	g.Go(func() error {
		m, err := s.store.FirstMetadata(gctx, doc.ID)
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		d.Metadata = m
		return err
	})
	g.Go(func() error {
		var err error
		d.Files, err = s.store.ListFiles(gctx, &doc.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	d.Warnings = slices.Concat(warns[:]...)
	return d, nil
}

// FileDetail assembles a DataFile detail.
func (s *Service) FileDetail(ctx context.Context, key store.Key) (*FileDetail, error) {
	f, err := s.file(ctx, key)
	if err != nil {
		return nil, err
	}
	d := &FileDetail{File: *f}
	if f.DocumentID != nil {
		d.Document, d.Warnings, err = s.owner(ctx, *f.DocumentID)
		if err != nil {
			return nil, err
		}
	}
	return d, nil
}

// MetadataDetail assembles a metadata detail.
func (s *Service) MetadataDetail(ctx context.Context, key store.Key) (*MetadataDetail, error) {
	m, err := s.metadata(ctx, key)
	if err != nil {
		return nil, err
	}
	d := &MetadataDetail{Metadata: *m}
	d.Document, d.Warnings, err = s.owner(ctx, m.DocumentID)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// owner resolves the document an attachment points at.
func (s *Service) owner(ctx context.Context, id int64) (*Ref, []Warning, error) {
	doc, err := s.store.Document(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, []Warning{missing(store.KindDocument, id)}, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return &Ref{ID: doc.ID, Name: doc.Title}, nil, nil
}

func missing(kind store.Kind, id int64) Warning {
	return Warning{Code: WarnMissing, Message: fmt.Sprintf("%s %d no longer exists", kind, id)}
}
