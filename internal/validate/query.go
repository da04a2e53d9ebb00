// query.go implements search query validation.

package validate

import (
	"fmt"
	"strings"
)

// Query validates a free-text search query. Blank queries are rejected
// because every row contains the empty string.
func Query(q string) error {
	if strings.TrimSpace(q) == "" {
		return fmt.Errorf("%w: empty query", ErrInvalidQuery)
	}
	if strings.ContainsRune(q, 0) {
		return fmt.Errorf("%w: null byte in query", ErrInvalidQuery)
	}
	return nil
}
