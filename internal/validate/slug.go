// slug.go implements slug validation and normalisation.
//
// Slugs are the human-facing alternative to numeric ids. They are lower
// case, ASCII letters, digits, hyphens and underscores, matching what the
// catalog has always accepted in URLs.

package validate

import (
	"fmt"
	"strings"
)

// Slug validates a slug and returns it lower-cased.
//
// Validation rules:
//   - Empty slugs rejected
//   - Only [a-z0-9_-] after lower-casing
//   - Must not be all digits (would be indistinguishable from an id)
//   - Max length enforced if maxLen > 0
func Slug(s string, maxLen int) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", fmt.Errorf("%w: empty slug", ErrInvalidSlug)
	}
	if maxLen > 0 && len(s) > maxLen {
		return "", fmt.Errorf("%w: %d characters (max %d)", ErrInvalidSlug, len(s), maxLen)
	}
	digits := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r == '-', r == '_':
			digits = false
		case r >= '0' && r <= '9':
		default:
			return "", fmt.Errorf("%w: %q contains %q", ErrInvalidSlug, s, r)
		}
	}
	if digits {
		return "", fmt.Errorf("%w: %q is all digits", ErrInvalidSlug, s)
	}
	return s, nil
}

// Slugify derives a slug from a display name: lower case, runs of anything
// outside [a-z0-9] collapse to a single hyphen.
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
