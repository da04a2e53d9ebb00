// read.go implements entity retrieval operations for the SQLite store.
//
// Separated from the main store file to isolate read-only query logic. These
// operations never modify data, enabling clearer reasoning about side effects.
//
// Design: every list is explicitly ordered. Orderings are part of the
// presentation contract (tree renders and detail views must be stable), so
// no query relies on SQLite's incidental row order.

package store

import (
	"context"
	"fmt"
	"strings"
)

// Node returns a Term or Collection by id.
func (s *SQLiteStore) Node(ctx context.Context, kind Kind, id int64) (*Node, error) {
	h, err := hierarchyFor(kind)
	if err != nil {
		return nil, err
	}
	row := s.db.QueryRowContext(ctx, `SELECT `+nodeColumns+` FROM `+h.table+` WHERE id = ?`, id)
	n, err := scanNode(row, kind)
	return one(n, err, fmt.Sprintf("%s %d", kind, id))
}

// NodeBySlug returns the single Term or Collection carrying slug, matched
// against the stored lower-case form. The
// LIMIT 2 is enough to tell "one" from "many" without counting.
func (s *SQLiteStore) NodeBySlug(ctx context.Context, kind Kind, slug string) (*Node, error) {
	h, err := hierarchyFor(kind)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT `+nodeColumns+` FROM `+h.table+` WHERE slug = ? ORDER BY id LIMIT 2`, strings.ToLower(slug))
	if err != nil {
		return nil, fmt.Errorf("lookup %s %q: %w", kind, slug, err)
	}
	nodes, err := collect(rows, func(sc scanner) (Node, error) { return scanNode(sc, kind) })
	if err != nil {
		return nil, err
	}
	return single(nodes, fmt.Sprintf("%s %q", kind, slug))
}

// NodesByID batch-loads nodes ordered by name then id.
func (s *SQLiteStore) NodesByID(ctx context.Context, kind Kind, ids []int64) ([]Node, error) {
	h, err := hierarchyFor(kind)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []Node{}, nil
	}
	in, args := placeholders(ids)
	rows, err := s.db.QueryContext(ctx, `SELECT `+nodeColumns+` FROM `+h.table+` WHERE id IN (`+in+`) ORDER BY name, id`, args...)
	if err != nil {
		return nil, fmt.Errorf("load %s batch: %w", kind, err)
	}
	return collect(rows, func(sc scanner) (Node, error) { return scanNode(sc, kind) })
}

// Children returns the direct children of parentID ordered by name then id.
// Served by idx_<table>_parent, so each call is a single index range scan.
func (s *SQLiteStore) Children(ctx context.Context, kind Kind, parentID int64) ([]Node, error) {
	h, err := hierarchyFor(kind)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT `+nodeColumns+` FROM `+h.table+` WHERE parent_id = ? ORDER BY name, id`, parentID)
	if err != nil {
		return nil, fmt.Errorf("children of %s %d: %w", kind, parentID, err)
	}
	return collect(rows, func(sc scanner) (Node, error) { return scanNode(sc, kind) })
}

// Roots returns nodes without a parent ordered by name then id.
func (s *SQLiteStore) Roots(ctx context.Context, kind Kind) ([]Node, error) {
	h, err := hierarchyFor(kind)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT `+nodeColumns+` FROM `+h.table+` WHERE parent_id IS NULL ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("roots of %s: %w", kind, err)
	}
	return collect(rows, func(sc scanner) (Node, error) { return scanNode(sc, kind) })
}

// Nodes returns every node of a kind ordered by name then id.
func (s *SQLiteStore) Nodes(ctx context.Context, kind Kind) ([]Node, error) {
	h, err := hierarchyFor(kind)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT `+nodeColumns+` FROM `+h.table+` ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	return collect(rows, func(sc scanner) (Node, error) { return scanNode(sc, kind) })
}

// Document returns a document by id.
func (s *SQLiteStore) Document(ctx context.Context, id int64) (*Document, error) {
	d, err := scanDoc(s.db.QueryRowContext(ctx, `SELECT `+docColumns+` FROM documents WHERE id = ?`, id))
	return one(d, err, fmt.Sprintf("document %d", id))
}

// DocumentBySlug returns the single document carrying slug.
func (s *SQLiteStore) DocumentBySlug(ctx context.Context, slug string) (*Document, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+docColumns+` FROM documents WHERE slug = ? ORDER BY id LIMIT 2`, strings.ToLower(slug))
	if err != nil {
		return nil, fmt.Errorf("lookup document %q: %w", slug, err)
	}
	docs, err := collect(rows, scanDoc)
	if err != nil {
		return nil, err
	}
	return single(docs, fmt.Sprintf("document %q", slug))
}

// DocumentsByID batch-loads documents ordered by title then id.
func (s *SQLiteStore) DocumentsByID(ctx context.Context, ids []int64) ([]Document, error) {
	if len(ids) == 0 {
		return []Document{}, nil
	}
	in, args := placeholders(ids)
	rows, err := s.db.QueryContext(ctx, `SELECT `+docColumns+` FROM documents WHERE id IN (`+in+`) ORDER BY title, id`, args...)
	if err != nil {
		return nil, fmt.Errorf("load document batch: %w", err)
	}
	return collect(rows, scanDoc)
}

// ListDocuments returns every document ordered by id.
func (s *SQLiteStore) ListDocuments(ctx context.Context) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+docColumns+` FROM documents ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return collect(rows, scanDoc)
}

// Metadata returns a metadata blob by id.
func (s *SQLiteStore) Metadata(ctx context.Context, id int64) (*Metadata, error) {
	m, err := scanMeta(s.db.QueryRowContext(ctx, `SELECT `+metaColumns+` FROM document_metadata WHERE id = ?`, id))
	return one(m, err, fmt.Sprintf("metadata %d", id))
}

// FirstMetadata returns the lowest-id blob attached to a document.
func (s *SQLiteStore) FirstMetadata(ctx context.Context, documentID int64) (*Metadata, error) {
	m, err := scanMeta(s.db.QueryRowContext(ctx,
		`SELECT `+metaColumns+` FROM document_metadata WHERE document_id = ? ORDER BY id LIMIT 1`, documentID))
	return one(m, err, fmt.Sprintf("metadata for document %d", documentID))
}

// ListMetadata returns every metadata blob ordered by id. Payloads are
// included; the catalog holds one small packet per document at most.
func (s *SQLiteStore) ListMetadata(ctx context.Context) ([]Metadata, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+metaColumns+` FROM document_metadata ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list metadata: %w", err)
	}
	return collect(rows, scanMeta)
}

// DataFile returns a data file by UUID.
func (s *SQLiteStore) DataFile(ctx context.Context, id string) (*DataFile, error) {
	f, err := scanFile(s.db.QueryRowContext(ctx, `SELECT `+fileColumns+` FROM data_files WHERE id = ?`, id))
	return one(f, err, fmt.Sprintf("file %s", id))
}

// ListFiles returns files newest first with id as tie-breaker. A nil
// documentID lists the whole table.
func (s *SQLiteStore) ListFiles(ctx context.Context, documentID *int64) ([]DataFile, error) {
	q := `SELECT ` + fileColumns + ` FROM data_files`
	var args []any
	if documentID != nil {
		q += ` WHERE document_id = ?`
		args = append(args, *documentID)
	}
	q += ` ORDER BY created_at DESC, id ASC`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	return collect(rows, scanFile)
}

// single enforces the zero-or-one rule for slug lookups.
func single[T any](rows []T, what string) (*T, error) {
	switch len(rows) {
	case 0:
		return nil, fmt.Errorf("%s: %w", what, ErrNotFound)
	case 1:
		return &rows[0], nil
	}
	return nil, fmt.Errorf("%s: %w", what, ErrAmbiguousSlug)
}
