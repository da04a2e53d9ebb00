// schema.go defines the catalog schema, the store's sentinel errors and the
// schema execution helpers.
//
// Schema files are embedded from the sql/ directory and executed in alphabetical
// order (hence the numeric prefixes like 001_, 002_); foreign keys reference
// earlier files only. Every statement uses IF NOT EXISTS, so running the set
// against an existing catalog is a no-op.

package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed sql/*.sql
var schemas embed.FS

var (
	// ErrNotFound indicates the requested entity does not exist. Callers
	// should check for this to distinguish missing data from other errors.
	ErrNotFound = errors.New("not found")
	// ErrAmbiguousSlug is returned when a slug lookup matches more than one
	// row. Slugs are expected to be unique but the schema does not enforce
	// it, so a hand-edited database can still produce duplicates.
	ErrAmbiguousSlug = errors.New("ambiguous slug")
	// ErrAlreadyExists prevents creating a second entity with the same slug.
	ErrAlreadyExists = errors.New("already exists")
	// ErrCycle refuses a parent change that would make a node its own ancestor.
	ErrCycle = errors.New("parent would create a cycle")
	// ErrNoCollection is returned when a document would end up outside
	// every collection.
	ErrNoCollection = errors.New("document needs at least one collection")
	// ErrUnknownKind is returned for kind names the catalog does not hold.
	ErrUnknownKind = errors.New("unknown kind")
	// ErrUnknownEdge is returned for relation names with no junction table.
	ErrUnknownEdge = errors.New("unknown relation")
	// ErrInvalidValue is returned for field values outside their domain.
	ErrInvalidValue = errors.New("invalid value")
	// ErrNotCatalog is returned by Verify for a SQLite file without the
	// catalog tables.
	ErrNotCatalog = errors.New("not a darc catalog")
)

// execEmbedded runs every .sql file under dir in fsys, in name order.
func execEmbedded(db *sql.DB, fsys embed.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("read schema directory: %w", err)
	}

	// Sort entries to ensure deterministic order (should already be sorted, but be explicit)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := dir + "/" + entry.Name()
		data, err := fsys.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if _, err := db.Exec(string(data)); err != nil {
			return fmt.Errorf("exec %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// execSchema executes the embedded core schema files.
func execSchema(db *sql.DB) error {
	return execEmbedded(db, schemas, "sql")
}
