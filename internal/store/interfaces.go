// interfaces.go defines the storage abstraction for the catalog.
//
// Separated from the SQLite implementation to enable testing and potential
// alternative backends. The interfaces are granular (Reader, Relater,
// Searcher, etc.) so consumers only depend on the capabilities they need:
// the tree resolver needs Reader, the detail assembler needs Reader and
// Relater, and only administrative commands touch Writer.
//
// Design: trees are never cached. Every hierarchy is derived on demand from
// parent references, and every many-to-many relation is a junction table
// read in whichever direction the caller asks for.

package store

import (
	"context"
	"database/sql"
)

// Reader defines read-only operations for retrieving catalog entities.
type Reader interface {
	// Node retrieves a Term or Collection by id. Returns ErrNotFound if the
	// row does not exist.
	Node(ctx context.Context, kind Kind, id int64) (*Node, error)

	// NodeBySlug retrieves a Term or Collection by slug. Returns
	// ErrAmbiguousSlug when more than one row shares the slug.
	NodeBySlug(ctx context.Context, kind Kind, slug string) (*Node, error)

	// NodesByID batch-loads nodes, ordered by name then id. Missing ids are
	// silently omitted; callers compare lengths to detect vanished rows.
	NodesByID(ctx context.Context, kind Kind, ids []int64) ([]Node, error)

	// Children returns the direct children of a node ordered by name then id.
	Children(ctx context.Context, kind Kind, parentID int64) ([]Node, error)

	// Roots returns nodes without a parent ordered by name then id.
	Roots(ctx context.Context, kind Kind) ([]Node, error)

	// Nodes returns every node of a kind in one pass, ordered by name then id,
	// so a whole forest can be assembled without per-node queries.
	Nodes(ctx context.Context, kind Kind) ([]Node, error)

	// Document retrieves a document by id.
	Document(ctx context.Context, id int64) (*Document, error)

	// DocumentBySlug retrieves a document by slug, with the same ambiguity
	// rules as NodeBySlug.
	DocumentBySlug(ctx context.Context, slug string) (*Document, error)

	// DocumentsByID batch-loads documents ordered by title then id.
	DocumentsByID(ctx context.Context, ids []int64) ([]Document, error)

	// ListDocuments returns every document ordered by id.
	ListDocuments(ctx context.Context) ([]Document, error)

	// Metadata retrieves a metadata blob by id.
	Metadata(ctx context.Context, id int64) (*Metadata, error)

	// FirstMetadata returns the lowest-id metadata blob for a document.
	// Returns ErrNotFound when the document has none.
	FirstMetadata(ctx context.Context, documentID int64) (*Metadata, error)

	// ListMetadata returns every metadata blob ordered by id.
	ListMetadata(ctx context.Context) ([]Metadata, error)

	// DataFile retrieves a data file by its UUID.
	DataFile(ctx context.Context, id string) (*DataFile, error)

	// ListFiles returns the files attached to a document, newest first with
	// id as tie-breaker. A nil documentID lists every file.
	ListFiles(ctx context.Context, documentID *int64) ([]DataFile, error)

	// Stats returns aggregate catalog statistics.
	Stats(ctx context.Context) (*Stats, error)
}

// Relater defines reads over junction tables.
type Relater interface {
	// Members returns target ids for the owning side of an edge.
	Members(ctx context.Context, edge Edge, id int64) ([]int64, error)

	// Reverse returns owning ids that point at id, backed by the index on
	// the target column.
	Reverse(ctx context.Context, edge Edge, id int64) ([]int64, error)

	// Related returns the union of both directions of a symmetric edge,
	// de-duplicated and ordered by id.
	Related(ctx context.Context, edge Edge, id int64) ([]int64, error)
}

// Searcher defines substring search operations.
type Searcher interface {
	// SearchNodes returns nodes whose name contains needle.
	SearchNodes(ctx context.Context, kind Kind, needle string, caseSensitive bool) ([]Node, error)

	// SearchDocuments returns documents whose title contains needle.
	SearchDocuments(ctx context.Context, needle string, caseSensitive bool) ([]Document, error)
}

// Writer defines operations that modify the catalog.
type Writer interface {
	// CreateNode inserts a Term or Collection. The parent must exist and the
	// slug must be unused within the kind.
	CreateNode(ctx context.Context, n *Node, opts WriteOptions) error

	// UpdateNode changes name, description, slug and parent. Refuses with
	// ErrCycle when the new parent is the node itself or a descendant.
	UpdateNode(ctx context.Context, n *Node, opts WriteOptions) error

	// DeleteNode removes a node. Collections cascade to descendants; Terms
	// detach their children, which become roots.
	DeleteNode(ctx context.Context, kind Kind, id int64) error

	// CreateDocument inserts a document together with its collection and
	// term memberships. Returns ErrNoCollection when collections is empty.
	CreateDocument(ctx context.Context, d *Document, collections, terms []int64, opts WriteOptions) error

	// SetMembers replaces the target set of an edge for one owner.
	SetMembers(ctx context.Context, edge Edge, id int64, targets []int64, opts WriteOptions) error

	// Relate adds one edge row; adding an existing edge in either direction
	// of a symmetric relation is a no-op.
	Relate(ctx context.Context, edge Edge, from, to int64, opts WriteOptions) error

	// Unrelate removes an edge in whichever direction it was stored.
	Unrelate(ctx context.Context, edge Edge, from, to int64, opts WriteOptions) error

	// DeleteDocument removes a document. Metadata cascades, data files are
	// unlinked and junction rows go with it.
	DeleteDocument(ctx context.Context, id int64) error

	// AddMetadata attaches a payload to a document.
	AddMetadata(ctx context.Context, m *Metadata, opts WriteOptions) error

	// DeleteMetadata removes a metadata blob.
	DeleteMetadata(ctx context.Context, id int64) error

	// CreateFile registers a data file. An empty ID is filled with a new UUID.
	CreateFile(ctx context.Context, f *DataFile, opts WriteOptions) error

	// SetFileDocument links a data file to a document, or unlinks it when
	// documentID is nil.
	SetFileDocument(ctx context.Context, id string, documentID *int64, opts WriteOptions) error

	// AppendRetrieveLog appends a line to a file's provenance log and stamps
	// source_retrieved.
	AppendRetrieveLog(ctx context.Context, id, line string, opts WriteOptions) error

	// DeleteFile removes a data file.
	DeleteFile(ctx context.Context, id string) error
}

// Maintainer defines operations for database maintenance and lifecycle.
type Maintainer interface {
	// Close releases the database connection.
	Close() error

	// DB exposes the underlying connection for extensions needing custom tables.
	DB() *sql.DB

	// Checkpoint flushes WAL to the main database file.
	Checkpoint(ctx context.Context) error

	// Vacuum rebuilds the database file, returning the bytes reclaimed.
	Vacuum(ctx context.Context) (int64, error)
}

// Store defines the persistence interface for the catalog.
type Store interface {
	Reader
	Relater
	Searcher
	Writer
	Maintainer
}
