package validate

import "errors"

// Each validator wraps one of these with the offending value, so callers
// branch with errors.Is and users still see what was rejected.
var (
	// ErrInvalidName rejects a name or title that is blank or holds a null
	// byte or line break. Empty provenance lines use it too.
	ErrInvalidName = errors.New("invalid name")
	ErrNameTooLong = errors.New("name too long")

	// ErrInvalidSlug covers characters outside [a-z0-9_-] and over-long
	// slugs. All-digit slugs are rejected too since they would read as ids.
	ErrInvalidSlug = errors.New("invalid slug")

	ErrInvalidQuery = errors.New("invalid query")

	// ErrInvalidRelation is a self-link on a same-kind edge or an edge end
	// that is not a positive id.
	ErrInvalidRelation = errors.New("invalid relation")

	// ErrLogTooLarge means appending to a data file's provenance log would
	// pass its size limit.
	ErrLogTooLarge = errors.New("provenance log too large")
)
