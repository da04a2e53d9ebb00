// flags.go defines constants for all CLI flag names.
//
// Using constants instead of string literals prevents typos and enables
// compile-time checking when flag names are used in both Flags().Type()
// definitions and GetType() calls.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "dry-run" -> FlagDryRun).

package extension

// Flag name constants for CLI commands.
// These are used with cobra's Flags().Type() and GetType() methods.
const (
	// Boolean flags

	FlagCaseSensitive = "case-sensitive" // Respect case when matching
	FlagCount         = "count"          // Output count only
	FlagDryRun        = "dry-run"        // Preview without making changes
	FlagIDs           = "ids"            // Output ids only
	FlagLocal         = "local"          // Use local scope (gitignored)
	FlagLong          = "long"           // Long format output
	FlagNoColour      = "no-colour"      // Plain diff output
	FlagRaw           = "raw"            // Raw output without formatting
	FlagRemove        = "remove"         // Remove instead of add
	FlagReverse       = "reverse"        // Reverse sort order
	FlagShare         = "share"          // Mark as shared (committed)
	FlagTree          = "tree"           // Append the subtree

	// String flags

	FlagDocument = "document" // Owning document id or slug
	FlagFormat   = "format"   // Data file format type
	FlagIndent   = "indent"   // Tree indent unit
	FlagMatch    = "match"    // Glob filter on titles
	FlagName     = "name"     // Override a derived name
	FlagSort     = "sort"     // Sort field
	FlagSource   = "source"   // Source URL
)
