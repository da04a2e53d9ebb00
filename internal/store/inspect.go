// inspect.go answers "is this file a catalog, and what is in it" for
// databases that darc did not open itself, such as every .db under .darc
// when "darc db" lists them.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"
)

// catalogTables are the entity tables every catalog carries. Junction
// tables are not checked; they are created in the same schema files.
var catalogTables = []string{"collections", "data_files", "document_metadata", "documents", "terms"}

// Tables returns the names of the tables in the database, sorted. SQLite's
// own bookkeeping tables are left out.
func (s *SQLiteStore) Tables(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite\_%' ESCAPE '\' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return collect(rows, func(sc scanner) (string, error) {
		var name string
		err := sc.Scan(&name)
		return name, err
	})
}

// Verify returns ErrNotCatalog, naming what is missing, unless every entity
// table is present.
func (s *SQLiteStore) Verify(ctx context.Context) error {
	tables, err := s.Tables(ctx)
	if err != nil {
		return err
	}
	var missing []string
	for _, t := range catalogTables {
		if !slices.Contains(tables, t) {
			missing = append(missing, t)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrNotCatalog, strings.Join(missing, ", "))
	}
	return nil
}

// Inspect opens the database at path long enough to verify it and count its
// contents. Unlike Open it sets no journal mode, so a file that turns out
// not to be a catalog is left exactly as it was.
func Inspect(ctx context.Context, path string) (*Stats, error) {
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	defer db.Close()

	s := &SQLiteStore{db: db}
	if err := s.Verify(ctx); err != nil {
		return nil, err
	}
	return s.Stats(ctx)
}
