// search.go implements substring search over names and titles.
//
// Design: containment uses instr() rather than LIKE. LIKE treats % and _ as
// wildcards and is case-insensitive for ASCII only, so a query containing
// "50%" or a case-sensitive request would need escaping and a pragma.
// instr() is a plain substring test. The case-insensitive form runs both
// sides through darc_fold, a Unicode case fold registered with the driver,
// since SQLite's lower() leaves non-ASCII letters alone.

package store

import (
	"context"
	"fmt"
)

// containsClause returns the WHERE fragment for a substring match on column.
func containsClause(column string, caseSensitive bool) string {
	if caseSensitive {
		return `instr(` + column + `, ?) > 0`
	}
	return `instr(` + foldFunc + `(` + column + `), ` + foldFunc + `(?)) > 0`
}

// SearchNodes returns nodes whose name contains needle, ordered by name then id.
func (s *SQLiteStore) SearchNodes(ctx context.Context, kind Kind, needle string, caseSensitive bool) ([]Node, error) {
	h, err := hierarchyFor(kind)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+nodeColumns+` FROM `+h.table+` WHERE `+containsClause("name", caseSensitive)+` ORDER BY name, id`, needle)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", kind, err)
	}
	return collect(rows, func(sc scanner) (Node, error) { return scanNode(sc, kind) })
}

// SearchDocuments returns documents whose title contains needle, ordered by
// title then id.
func (s *SQLiteStore) SearchDocuments(ctx context.Context, needle string, caseSensitive bool) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+docColumns+` FROM documents WHERE `+containsClause("title", caseSensitive)+` ORDER BY title, id`, needle)
	if err != nil {
		return nil, fmt.Errorf("search documents: %w", err)
	}
	return collect(rows, scanDoc)
}
