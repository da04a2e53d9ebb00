// Package service defines the shared interface for catalog operations.
// Commands and extensions depend on this interface rather than concrete
// implementations, enabling testing with mocks and future backend changes.
package service

import (
	"context"
	"database/sql"

	"github.com/jpl-au/darc/internal/catalog"
	"github.com/jpl-au/darc/internal/store"
)

// Service defines all catalog operations.
//
// Extensions should use catalog.New() to obtain a Service implementation.
// Always call Close() when done (use defer).
//
// Example:
//
//	svc, err := catalog.New("")
//	if err != nil {
//	    return err
//	}
//	defer svc.Close()
//	text, err := svc.Tree(ctx, store.KindCollection)
type Service interface {
	// Close releases database resources. Always defer this after New().
	Close() error

	// Resolve returns the detail view of one entity addressed by id or slug.
	// Returns store.ErrNotFound, store.ErrAmbiguousSlug, or for documents
	// catalog.ErrUnauthenticated when ctx carries no user (see
	// catalog.WithUser). Missing references inside the view are returned as
	// warnings on the detail, not as errors.
	Resolve(ctx context.Context, kind store.Kind, key store.Key) (catalog.Detail, error)

	// Tree renders every hierarchy of a kind, roots separated by a blank
	// line. Returns catalog.ErrCycleDetected if the parent graph loops.
	Tree(ctx context.Context, kind store.Kind) (string, error)

	// ForestNodes returns the same forest as Tree in structured form.
	ForestNodes(ctx context.Context, kind store.Kind) ([]*catalog.TreeNode, error)

	// RenderSubtree renders one node and everything below it.
	RenderSubtree(ctx context.Context, kind store.Kind, key store.Key) (string, error)

	// Subtree returns one node and everything below it in structured form.
	Subtree(ctx context.Context, kind store.Kind, key store.Key) (*catalog.TreeNode, error)

	// Children returns the direct children of a node, ordered by name.
	Children(ctx context.Context, kind store.Kind, id int64) ([]store.Node, error)

	// Roots returns the nodes of a kind without a parent, ordered by name.
	Roots(ctx context.Context, kind store.Kind) ([]store.Node, error)

	// Search matches a substring across collection names, document titles
	// and term names. A blank query returns catalog.ErrInvalidQuery.
	Search(ctx context.Context, query string, opts catalog.SearchOptions) (*catalog.SearchResult, error)

	// List returns every entity of a kind as id/title pairs.
	List(ctx context.Context, kind store.Kind) ([]catalog.Summary, error)

	// MembersOf returns the targets of an edge for its owner.
	MembersOf(ctx context.Context, edge store.Edge, id int64) ([]int64, error)

	// RelatedSymmetric returns both directions of a symmetric edge.
	RelatedSymmetric(ctx context.Context, edge store.Edge, id int64) ([]int64, error)

	// ReverseLookup returns the owners of an edge pointing at id.
	ReverseLookup(ctx context.Context, edge store.Edge, id int64) ([]int64, error)

	// ResolveID maps a key to the integer id of a Term, Collection, Document
	// or metadata blob.
	ResolveID(ctx context.Context, kind store.Kind, key store.Key) (int64, error)

	// AddNode creates a Term or Collection. The author is the user on ctx.
	AddNode(ctx context.Context, n *store.Node) error

	// UpdateNode rewrites a node. A parent that would create a cycle is
	// refused with store.ErrCycle.
	UpdateNode(ctx context.Context, n *store.Node) error

	// AddDocument creates a document. At least one collection is required.
	AddDocument(ctx context.Context, d *store.Document, collections, terms []int64) error

	// SetMembers replaces a document's collection or term set.
	SetMembers(ctx context.Context, edge store.Edge, id int64, targets []int64) error

	// Relate links two entities. Repeating an existing symmetric link in
	// either direction is a no-op.
	Relate(ctx context.Context, edge store.Edge, from, to int64) error

	// Unrelate removes a link.
	Unrelate(ctx context.Context, edge store.Edge, from, to int64) error

	// AddMetadata attaches a metadata payload to a document.
	AddMetadata(ctx context.Context, m *store.Metadata) error

	// AddFile registers a data file.
	AddFile(ctx context.Context, f *store.DataFile) error

	// LinkFile attaches a file to a document or, with nil, unlinks it.
	LinkFile(ctx context.Context, id string, documentID *int64) error

	// AppendLog appends a line to a file's provenance log.
	AppendLog(ctx context.Context, id, line string) error

	// Remove deletes an entity with the cascade rules of its kind.
	Remove(ctx context.Context, kind store.Kind, key store.Key) error

	// Stats returns aggregate catalog statistics.
	Stats(ctx context.Context) (*store.Stats, error)

	// Store exposes the underlying store for maintenance operations.
	Store() store.Store

	// Indent returns the tree indent unit in effect.
	Indent() string

	// SetIndent overrides the tree indent unit.
	SetIndent(indent string)

	// ReloadConfig re-reads configuration from disk.
	ReloadConfig() error

	// Tx runs fn within a transaction.
	Tx(ctx context.Context, fn func(tx *sql.Tx) error) error

	// DB returns the underlying database connection for extensions that
	// keep their own tables.
	DB() *sql.DB

	// DBPath returns the path to the database file.
	DBPath() string

	// Dir returns the .darc directory holding the database.
	Dir() string
}

var _ Service = (*catalog.Service)(nil)
