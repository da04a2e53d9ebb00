// name.go implements name and title validation.
//
// Design: Validation happens at the store layer (not just service layer)
// because the store is the persistence boundary. Anyone with direct store
// access (import, tests, extensions) must have their inputs validated.
// The service layer passes config limits via WriteOptions.

package validate

import (
	"fmt"
	"strings"
)

// Name validates a node name or document title and returns it trimmed.
//
// Validation rules:
//   - Blank names rejected (nothing to render in a tree)
//   - Null bytes rejected
//   - Newlines rejected (a tree render is one name per line)
//   - Max length enforced in runes if maxLen > 0
func Name(s string, maxLen int) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	if strings.ContainsRune(s, 0) {
		return "", fmt.Errorf("%w: null byte in name", ErrInvalidName)
	}
	if strings.ContainsAny(s, "\r\n") {
		return "", fmt.Errorf("%w: line break in name", ErrInvalidName)
	}
	if maxLen > 0 && len([]rune(s)) > maxLen {
		return "", fmt.Errorf("%w: %d characters (max %d)", ErrNameTooLong, len([]rune(s)), maxLen)
	}
	return s, nil
}
