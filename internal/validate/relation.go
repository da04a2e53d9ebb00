// relation.go implements validation for junction table edges.
//
// Design: Self-relations are rejected because a document related to itself
// adds nothing to a detail view and would show up twice in a symmetric read.

package validate

import "fmt"

// Relation validates an edge between two entity ids. sameKind is true when
// both ends share a table (document_related, collection_related).
func Relation(from, to int64, sameKind bool) error {
	if from <= 0 || to <= 0 {
		return fmt.Errorf("%w: ids must be positive", ErrInvalidRelation)
	}
	if sameKind && from == to {
		return fmt.Errorf("%w: self-referential relation", ErrInvalidRelation)
	}
	return nil
}

// LogLine validates an append to a provenance log whose current length is
// cur. Max length is enforced if maxLen > 0.
func LogLine(line string, cur, maxLen int) error {
	if line == "" {
		return fmt.Errorf("%w: empty log line", ErrInvalidName)
	}
	if maxLen > 0 && cur+len(line)+1 > maxLen {
		return fmt.Errorf("%w: would exceed %d bytes", ErrLogTooLarge, maxLen)
	}
	return nil
}
