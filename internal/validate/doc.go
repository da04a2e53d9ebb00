// Package validate provides input validation for darc's catalog types.
//
// This package enforces data integrity rules at the boundary between user
// input and the storage layer. Each validation function returns nil (or the
// normalised value) on success or a descriptive error on failure.
//
// # Design Philosophy
//
// Validation is minimal. We reject clearly broken inputs (empty names, null
// bytes, slugs that would not survive a URL, excessive sizes) but avoid rules
// that would limit legitimate catalog content such as non-ASCII titles.
//
// # Validation Functions
//
// Name validates Term/Collection names and Document titles.
// Slug validates and normalises URL-safe identifiers.
// Query validates free-text search input.
// Relation validates an edge between two entities.
// LogLine validates provenance log growth.
//
// # Error Handling
//
// All validation errors wrap one of the sentinel errors defined in errors.go
// (ErrInvalidName, ErrInvalidSlug, etc.). Use errors.Is() for type-safe
// error checking:
//
//	if errors.Is(err, validate.ErrInvalidSlug) {
//	    // handle invalid slug
//	}
package validate
