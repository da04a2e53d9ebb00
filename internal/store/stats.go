// stats.go implements aggregate queries for operational visibility.
//
// Separated to collect "read-only, aggregate" operations distinct from
// lookups. These power `darc stats` and `darc vacuum --dry-run` and catch integrity drift such as
// documents that lost their last collection.
//
// Design: every figure is a single COUNT so the whole report stays cheap on
// large catalogs.

package store

import (
	"context"
	"fmt"
)

// Stats returns aggregate catalog statistics.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	var st Stats

	counts := []struct {
		dst   *int64
		query string
	}{
		{&st.Collections, `SELECT COUNT(*) FROM collections`},
		{&st.RootCollections, `SELECT COUNT(*) FROM collections WHERE parent_id IS NULL`},
		{&st.Terms, `SELECT COUNT(*) FROM terms`},
		{&st.RootTerms, `SELECT COUNT(*) FROM terms WHERE parent_id IS NULL`},
		{&st.Documents, `SELECT COUNT(*) FROM documents`},
		// Documents that slipped out of every collection, e.g. when their
		// only collection was deleted.
		{&st.Orphans, `SELECT COUNT(*) FROM documents d
			WHERE NOT EXISTS (SELECT 1 FROM document_collections dc WHERE dc.document_id = d.id)`},
		{&st.Metadata, `SELECT COUNT(*) FROM document_metadata`},
		{&st.Files, `SELECT COUNT(*) FROM data_files`},
		{&st.UnlinkedFiles, `SELECT COUNT(*) FROM data_files WHERE document_id IS NULL`},
		{&st.Edges, `SELECT
			(SELECT COUNT(*) FROM document_collections) +
			(SELECT COUNT(*) FROM document_terms) +
			(SELECT COUNT(*) FROM document_related) +
			(SELECT COUNT(*) FROM collection_related)`},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
	}
	return &st, nil
}
