// relations.go implements reads over the many-to-many junction tables.
//
// Separated from read.go because relations are edges, not entities. Each
// edge is a two-column junction table described by an edgeSpec; the same
// three queries serve every edge.
//
// Design: symmetric edges are stored once, in whichever direction they were
// written, and unioned on read. This keeps writes to a single row and makes
// "A related to B" and "B related to A" the same fact.

package store

import (
	"context"
	"fmt"
)

// Members returns target ids for an owner, ordered by id.
func (s *SQLiteStore) Members(ctx context.Context, edge Edge, id int64) ([]int64, error) {
	e, err := edgeFor(edge)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+e.right+` FROM `+e.table+` WHERE `+e.left+` = ? ORDER BY `+e.right, id)
	if err != nil {
		return nil, fmt.Errorf("members of %s %d: %w", edge, id, err)
	}
	return collectIDs(rows)
}

// Reverse returns owner ids pointing at id, ordered by id. The right-hand
// column of every junction table carries its own index for this query.
func (s *SQLiteStore) Reverse(ctx context.Context, edge Edge, id int64) ([]int64, error) {
	e, err := edgeFor(edge)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+e.left+` FROM `+e.table+` WHERE `+e.right+` = ? ORDER BY `+e.left, id)
	if err != nil {
		return nil, fmt.Errorf("reverse %s %d: %w", edge, id, err)
	}
	return collectIDs(rows)
}

// Related returns both directions of a symmetric edge. UNION (not UNION ALL)
// drops the duplicate when a pair was stored both ways.
func (s *SQLiteStore) Related(ctx context.Context, edge Edge, id int64) ([]int64, error) {
	e, err := edgeFor(edge)
	if err != nil {
		return nil, err
	}
	if !e.symmetric {
		return nil, fmt.Errorf("%w: %s is not symmetric", ErrUnknownEdge, edge)
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+e.right+` FROM `+e.table+` WHERE `+e.left+` = ?
		UNION
		SELECT `+e.left+` FROM `+e.table+` WHERE `+e.right+` = ?
		ORDER BY 1`, id, id)
	if err != nil {
		return nil, fmt.Errorf("related %s %d: %w", edge, id, err)
	}
	return collectIDs(rows)
}
