// write.go implements catalog creation and modification operations.
//
// Separated from the read path to isolate mutating operations. Every write
// that touches more than one row runs in a transaction so a failed import
// line never leaves a half-linked document behind.
//
// Design: referential rules live in two places. The schema enforces what
// SQLite can express (cascade, set-null, foreign keys); this file enforces
// what it cannot: no cycles in parent chains, no document outside every
// collection, and no duplicate slugs within a kind.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jpl-au/darc/internal/validate"
)

// tables maps every kind to its backing table.
var tables = map[Kind]string{
	KindTerm:       "terms",
	KindCollection: "collections",
	KindDocument:   "documents",
	KindMetadata:   "document_metadata",
	KindDataFile:   "data_files",
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// CreateNode inserts a Term or Collection and fills in n.ID and the audit
// fields. A blank slug is derived from the name.
func (s *SQLiteStore) CreateNode(ctx context.Context, n *Node, opts WriteOptions) error {
	h, err := hierarchyFor(n.Kind)
	if err != nil {
		return err
	}
	if err := normaliseNode(n, opts); err != nil {
		return err
	}

	return s.Tx(ctx, func(tx *sql.Tx) error {
		if err := slugFree(ctx, tx, h.table, n.Slug, 0); err != nil {
			return fmt.Errorf("%s %q: %w", n.Kind, n.Slug, err)
		}
		if n.ParentID != nil {
			if err := requireIDs(ctx, tx, n.Kind, []int64{*n.ParentID}); err != nil {
				return fmt.Errorf("parent: %w", err)
			}
		}

		now := opts.now()
		res, err := tx.ExecContext(ctx, `INSERT INTO `+h.table+`
			(name, description, slug, parent_id, owner, created_by, modified_by, created_at, modified_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			n.Name, nullString(n.Description), n.Slug, n.ParentID, opts.Author, opts.Author, opts.Author, now, now)
		if err != nil {
			return fmt.Errorf("insert %s: %w", n.Kind, err)
		}
		if n.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("insert %s: %w", n.Kind, err)
		}
		n.Audit = Audit{Owner: opts.Author, CreatedBy: opts.Author, ModifiedBy: opts.Author, CreatedAt: now, ModifiedAt: now}
		return nil
	})
}

// UpdateNode writes name, description, slug and parent for an existing node.
// A parent that is the node itself or one of its descendants is refused
// with ErrCycle.
func (s *SQLiteStore) UpdateNode(ctx context.Context, n *Node, opts WriteOptions) error {
	h, err := hierarchyFor(n.Kind)
	if err != nil {
		return err
	}
	if err := normaliseNode(n, opts); err != nil {
		return err
	}

	return s.Tx(ctx, func(tx *sql.Tx) error {
		if err := requireIDs(ctx, tx, n.Kind, []int64{n.ID}); err != nil {
			return err
		}
		if err := slugFree(ctx, tx, h.table, n.Slug, n.ID); err != nil {
			return fmt.Errorf("%s %q: %w", n.Kind, n.Slug, err)
		}
		if n.ParentID != nil {
			if err := requireIDs(ctx, tx, n.Kind, []int64{*n.ParentID}); err != nil {
				return fmt.Errorf("parent: %w", err)
			}
			cyc, err := isAncestor(ctx, tx, h.table, n.ID, *n.ParentID)
			if err != nil {
				return err
			}
			if cyc {
				return fmt.Errorf("%s %d under %d: %w", n.Kind, n.ID, *n.ParentID, ErrCycle)
			}
		}

		now := opts.now()
		_, err := tx.ExecContext(ctx, `UPDATE `+h.table+`
			SET name = ?, description = ?, slug = ?, parent_id = ?, modified_by = ?, modified_at = ?
			WHERE id = ?`,
			n.Name, nullString(n.Description), n.Slug, n.ParentID, opts.Author, now, n.ID)
		if err != nil {
			return fmt.Errorf("update %s %d: %w", n.Kind, n.ID, err)
		}
		n.ModifiedBy, n.ModifiedAt = opts.Author, now
		return nil
	})
}

// isAncestor reports whether node appears on the parent chain starting at
// start (inclusive). UNION rather than UNION ALL terminates the walk even
// if the stored chain already loops.
func isAncestor(ctx context.Context, q execer, table string, node, start int64) (bool, error) {
	var found int
	err := q.QueryRowContext(ctx, `
		WITH RECURSIVE chain(id) AS (
			SELECT ?
			UNION
			SELECT t.parent_id FROM `+table+` t JOIN chain ON t.id = chain.id
			WHERE t.parent_id IS NOT NULL
		)
		SELECT COUNT(*) FROM chain WHERE id = ?`, start, node).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("walk ancestors: %w", err)
	}
	return found > 0, nil
}

// DeleteNode removes a node. The schema decides what happens below it:
// collection subtrees cascade, term children are detached.
func (s *SQLiteStore) DeleteNode(ctx context.Context, kind Kind, id int64) error {
	h, err := hierarchyFor(kind)
	if err != nil {
		return err
	}
	return deleteRow(ctx, s.db, h.table, id, fmt.Sprintf("%s %d", kind, id))
}

// CreateDocument inserts a document and its memberships in one transaction.
func (s *SQLiteStore) CreateDocument(ctx context.Context, d *Document, collections, terms []int64, opts WriteOptions) error {
	if len(collections) == 0 {
		return ErrNoCollection
	}
	title, err := validate.Name(d.Title, opts.MaxName)
	if err != nil {
		return err
	}
	d.Title = title
	if d.Slug == "" {
		d.Slug = validate.Slugify(d.Title)
	}
	if d.Slug, err = validate.Slug(d.Slug, opts.MaxSlug); err != nil {
		return err
	}

	return s.Tx(ctx, func(tx *sql.Tx) error {
		if err := slugFree(ctx, tx, "documents", d.Slug, 0); err != nil {
			return fmt.Errorf("document %q: %w", d.Slug, err)
		}
		if err := requireIDs(ctx, tx, KindCollection, collections); err != nil {
			return err
		}
		if err := requireIDs(ctx, tx, KindTerm, terms); err != nil {
			return err
		}

		now := opts.now()
		res, err := tx.ExecContext(ctx, `INSERT INTO documents
			(title, slug, owner, created_by, modified_by, created_at, modified_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			d.Title, d.Slug, opts.Author, opts.Author, opts.Author, now, now)
		if err != nil {
			return fmt.Errorf("insert document: %w", err)
		}
		if d.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("insert document: %w", err)
		}
		d.Audit = Audit{Owner: opts.Author, CreatedBy: opts.Author, ModifiedBy: opts.Author, CreatedAt: now, ModifiedAt: now}

		if err := insertEdges(ctx, tx, edges[EdgeDocumentCollections], d.ID, collections); err != nil {
			return err
		}
		return insertEdges(ctx, tx, edges[EdgeDocumentTerms], d.ID, terms)
	})
}

// SetMembers replaces the target set of an edge for one owner. For a
// symmetric edge, rows stored in either direction are replaced.
func (s *SQLiteStore) SetMembers(ctx context.Context, edge Edge, id int64, targets []int64, opts WriteOptions) error {
	e, err := edgeFor(edge)
	if err != nil {
		return err
	}
	if edge == EdgeDocumentCollections && len(targets) == 0 {
		return ErrNoCollection
	}
	for _, t := range targets {
		if err := validate.Relation(id, t, e.symmetric); err != nil {
			return err
		}
	}

	return s.Tx(ctx, func(tx *sql.Tx) error {
		if err := requireIDs(ctx, tx, e.from, []int64{id}); err != nil {
			return err
		}
		if err := requireIDs(ctx, tx, e.to, targets); err != nil {
			return err
		}

		q := `DELETE FROM ` + e.table + ` WHERE ` + e.left + ` = ?`
		args := []any{id}
		if e.symmetric {
			q += ` OR ` + e.right + ` = ?`
			args = append(args, id)
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("clear %s: %w", edge, err)
		}
		if err := insertEdges(ctx, tx, e, id, targets); err != nil {
			return err
		}
		return touch(ctx, tx, tables[e.from], id, opts)
	})
}

// Relate adds one edge row. An edge that already exists, in either
// direction for symmetric edges, is left alone.
func (s *SQLiteStore) Relate(ctx context.Context, edge Edge, from, to int64, opts WriteOptions) error {
	e, err := edgeFor(edge)
	if err != nil {
		return err
	}
	if err := validate.Relation(from, to, e.from == e.to); err != nil {
		return err
	}

	return s.Tx(ctx, func(tx *sql.Tx) error {
		if err := requireIDs(ctx, tx, e.from, []int64{from}); err != nil {
			return err
		}
		if err := requireIDs(ctx, tx, e.to, []int64{to}); err != nil {
			return err
		}
		if e.symmetric {
			var n int
			err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+e.table+`
				WHERE (`+e.left+` = ? AND `+e.right+` = ?) OR (`+e.left+` = ? AND `+e.right+` = ?)`,
				from, to, to, from).Scan(&n)
			if err != nil {
				return fmt.Errorf("check %s: %w", edge, err)
			}
			if n > 0 {
				return nil
			}
		}
		if err := insertEdges(ctx, tx, e, from, []int64{to}); err != nil {
			return err
		}
		return touch(ctx, tx, tables[e.from], from, opts)
	})
}

// Unrelate removes an edge. Removing a document's last collection is
// refused with ErrNoCollection.
func (s *SQLiteStore) Unrelate(ctx context.Context, edge Edge, from, to int64, opts WriteOptions) error {
	e, err := edgeFor(edge)
	if err != nil {
		return err
	}

	return s.Tx(ctx, func(tx *sql.Tx) error {
		q := `DELETE FROM ` + e.table + ` WHERE (` + e.left + ` = ? AND ` + e.right + ` = ?)`
		args := []any{from, to}
		if e.symmetric {
			q += ` OR (` + e.left + ` = ? AND ` + e.right + ` = ?)`
			args = append(args, to, from)
		}
		res, err := tx.ExecContext(ctx, q, args...)
		if err != nil {
			return fmt.Errorf("unrelate %s: %w", edge, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("%s %d-%d: %w", edge, from, to, ErrNotFound)
		}

		if edge == EdgeDocumentCollections {
			var left int
			err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM document_collections WHERE document_id = ?`, from).Scan(&left)
			if err != nil {
				return fmt.Errorf("count memberships: %w", err)
			}
			if left == 0 {
				return fmt.Errorf("document %d: %w", from, ErrNoCollection)
			}
		}
		return touch(ctx, tx, tables[e.from], from, opts)
	})
}

// DeleteDocument removes a document. Metadata and junction rows cascade;
// data files keep their row with document_id set to NULL.
func (s *SQLiteStore) DeleteDocument(ctx context.Context, id int64) error {
	return deleteRow(ctx, s.db, "documents", id, fmt.Sprintf("document %d", id))
}

// AddMetadata attaches a payload to an existing document.
func (s *SQLiteStore) AddMetadata(ctx context.Context, m *Metadata, opts WriteOptions) error {
	return s.Tx(ctx, func(tx *sql.Tx) error {
		if err := requireIDs(ctx, tx, KindDocument, []int64{m.DocumentID}); err != nil {
			return err
		}
		now := opts.now()
		res, err := tx.ExecContext(ctx, `INSERT INTO document_metadata
			(document_id, payload, owner, created_by, modified_by, created_at, modified_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			m.DocumentID, m.Payload, opts.Author, opts.Author, opts.Author, now, now)
		if err != nil {
			return fmt.Errorf("insert metadata: %w", err)
		}
		m.ID, err = res.LastInsertId()
		return err
	})
}

// DeleteMetadata removes a metadata blob.
func (s *SQLiteStore) DeleteMetadata(ctx context.Context, id int64) error {
	return deleteRow(ctx, s.db, "document_metadata", id, fmt.Sprintf("metadata %d", id))
}

// CreateFile registers a data file. A blank ID is replaced with a new UUID;
// a supplied ID must parse as one. A blank format defaults to native.
func (s *SQLiteStore) CreateFile(ctx context.Context, f *DataFile, opts WriteOptions) error {
	if f.ID == "" {
		f.ID = newFileID()
	} else if _, err := uuid.Parse(f.ID); err != nil {
		return fmt.Errorf("%w: file id %q: %w", ErrInvalidValue, f.ID, err)
	}
	name, err := validate.Name(f.FileName, opts.MaxName)
	if err != nil {
		return err
	}
	f.FileName = name
	if f.FormatType == "" {
		f.FormatType = FormatNative
	}
	if _, err := ParseFormatType(string(f.FormatType)); err != nil {
		return err
	}

	return s.Tx(ctx, func(tx *sql.Tx) error {
		if f.DocumentID != nil {
			if err := requireIDs(ctx, tx, KindDocument, []int64{*f.DocumentID}); err != nil {
				return err
			}
		}
		var exists int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM data_files WHERE id = ?`, f.ID).Scan(&exists); err != nil {
			return fmt.Errorf("check file id: %w", err)
		}
		if exists > 0 {
			return fmt.Errorf("file %s: %w", f.ID, ErrAlreadyExists)
		}

		now := opts.now()
		_, err := tx.ExecContext(ctx, `INSERT INTO data_files
			(id, document_id, file_name, mime_type, size, file_modified_at, file_modified_nano, format_type,
			 source_url, source_retrieved_at, source_retrieve_log,
			 owner, created_by, modified_by, created_at, modified_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			f.ID, f.DocumentID, f.FileName, f.MimeType, f.Size, f.FileModifiedAt, f.FileModifiedNano, string(f.FormatType),
			nullString(f.SourceURL), f.SourceRetrieved, nullString(f.SourceLog),
			opts.Author, opts.Author, opts.Author, now, now)
		if err != nil {
			return fmt.Errorf("insert file: %w", err)
		}
		f.Audit = Audit{Owner: opts.Author, CreatedBy: opts.Author, ModifiedBy: opts.Author, CreatedAt: now, ModifiedAt: now}
		return nil
	})
}

// SetFileDocument links a file to a document, or unlinks it when
// documentID is nil. This is the only path that repopulates a link.
func (s *SQLiteStore) SetFileDocument(ctx context.Context, id string, documentID *int64, opts WriteOptions) error {
	return s.Tx(ctx, func(tx *sql.Tx) error {
		if documentID != nil {
			if err := requireIDs(ctx, tx, KindDocument, []int64{*documentID}); err != nil {
				return err
			}
		}
		res, err := tx.ExecContext(ctx, `UPDATE data_files SET document_id = ?, modified_by = ?, modified_at = ? WHERE id = ?`,
			documentID, opts.Author, opts.now(), id)
		if err != nil {
			return fmt.Errorf("link file %s: %w", id, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("file %s: %w", id, ErrNotFound)
		}
		return nil
	})
}

// AppendRetrieveLog appends one line to a file's provenance log and stamps
// the retrieval time.
func (s *SQLiteStore) AppendRetrieveLog(ctx context.Context, id, line string, opts WriteOptions) error {
	return s.Tx(ctx, func(tx *sql.Tx) error {
		var cur sql.NullString
		err := tx.QueryRowContext(ctx, `SELECT source_retrieve_log FROM data_files WHERE id = ?`, id).Scan(&cur)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("file %s: %w", id, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("read log %s: %w", id, err)
		}
		if err := validate.LogLine(line, len(cur.String), opts.MaxLog); err != nil {
			return err
		}

		next := line
		if cur.String != "" {
			next = cur.String + "\n" + line
		}
		now := opts.now()
		_, err = tx.ExecContext(ctx, `UPDATE data_files
			SET source_retrieve_log = ?, source_retrieved_at = ?, modified_by = ?, modified_at = ?
			WHERE id = ?`, next, now, opts.Author, now, id)
		if err != nil {
			return fmt.Errorf("append log %s: %w", id, err)
		}
		return nil
	})
}

// DeleteFile removes a data file.
func (s *SQLiteStore) DeleteFile(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM data_files WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete file %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("file %s: %w", id, ErrNotFound)
	}
	return nil
}

// normaliseNode validates and normalises the writable fields of a node.
func normaliseNode(n *Node, opts WriteOptions) error {
	name, err := validate.Name(n.Name, opts.MaxName)
	if err != nil {
		return err
	}
	n.Name = name
	if n.Slug == "" {
		n.Slug = validate.Slugify(n.Name)
	}
	if n.Slug, err = validate.Slug(n.Slug, opts.MaxSlug); err != nil {
		return err
	}
	if n.ParentID != nil && *n.ParentID == n.ID && n.ID != 0 {
		return fmt.Errorf("%s %d under itself: %w", n.Kind, n.ID, ErrCycle)
	}
	return nil
}

// slugFree returns ErrAlreadyExists if another row in table uses slug.
// self excludes the row being updated.
func slugFree(ctx context.Context, q execer, table, slug string, self int64) error {
	var n int
	err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table+` WHERE slug = ? AND id != ?`, slug, self).Scan(&n)
	if err != nil {
		return fmt.Errorf("check slug: %w", err)
	}
	if n > 0 {
		return ErrAlreadyExists
	}
	return nil
}

// requireIDs returns ErrNotFound naming the first id of kind with no row.
func requireIDs(ctx context.Context, q execer, kind Kind, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	in, args := placeholders(ids)
	rows, err := q.QueryContext(ctx, `SELECT id FROM `+tables[kind]+` WHERE id IN (`+in+`)`, args...)
	if err != nil {
		return fmt.Errorf("check %s ids: %w", kind, err)
	}
	found, err := collectIDs(rows)
	if err != nil {
		return err
	}
	have := make(map[int64]bool, len(found))
	for _, id := range found {
		have[id] = true
	}
	for _, id := range ids {
		if !have[id] {
			return fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
		}
	}
	return nil
}

// insertEdges adds owner->target rows, ignoring pairs already present.
func insertEdges(ctx context.Context, tx *sql.Tx, e edgeSpec, owner int64, targets []int64) error {
	for _, t := range targets {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO `+e.table+` (`+e.left+`, `+e.right+`) VALUES (?, ?)`, owner, t)
		if err != nil {
			return fmt.Errorf("insert %s: %w", e.table, err)
		}
	}
	return nil
}

// touch stamps modified_by/modified_at on a row after a relation change.
func touch(ctx context.Context, q execer, table string, id int64, opts WriteOptions) error {
	_, err := q.ExecContext(ctx, `UPDATE `+table+` SET modified_by = ?, modified_at = ? WHERE id = ?`,
		opts.Author, opts.now(), id)
	if err != nil {
		return fmt.Errorf("touch %s %d: %w", table, id, err)
	}
	return nil
}

// deleteRow removes one row by id, mapping "no rows" to ErrNotFound.
func deleteRow(ctx context.Context, q execer, table string, id int64, what string) error {
	res, err := q.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", what, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}

// nullString stores empty strings as NULL for optional text columns.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
