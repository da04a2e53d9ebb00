// Package log provides centralised audit logging for darc operations.
// Logs are stored in ~/.darc/log/darc-log.db and track all CLI commands
// and MCP tool invocations across catalogs.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("catalog:show", "read").
//		Author(cmd.User()).
//		Kind("document").
//		Key(key).
//		Write(err)
//
//	log.Event("search:search", "search").
//		Author(cmd.User()).
//		Detail("query", query).
//		Detail("count", len(results)).
//		Write(err)
//
// The source parameter follows the format "{extension}:{command}" for CLI
// commands or "mcp:{tool}" for MCP tools. Examples: "catalog:tree",
// "admin:import", "mcp:darc_search".
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source string // e.g., "catalog:show", "mcp:darc_resolve"
	Author string // who performed the action
	Action string // verb: read, create, delete, search, relate, etc.
	Kind   string // input: entity kind (collection, term, document, file, metadata)
	Key    string // input: id or slug requested

	// Output fields - populated after operation succeeds
	Resolved string // output: resolved id when the input was a slug or new row

	// Timing
	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool           // whether operation succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write]
// to write the entry.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
//
// The source identifies where the operation originated:
//   - CLI commands: "{extension}:{command}" (e.g., "catalog:show", "admin:rm")
//   - MCP tools: "mcp:{tool}" (e.g., "mcp:darc_resolve")
//
// The action describes what operation was performed:
//   - "read", "create", "update", "delete", "list", "search", "relate", etc.
//
// Example:
//
//	log.Event("catalog:show", "read").
//		Author(cmd.User()).
//		Kind("collection").
//		Key("reports").
//		Write(err)
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Author sets who performed the operation.
//
// For CLI commands, use cmd.User() which returns the configured user.
// For MCP tools, use "mcp" unless the server was started with a user.
func (b *Builder) Author(author string) *Builder {
	b.entry.Author = author
	return b
}

// Kind sets the entity kind this operation targets.
//
// Leave unset for operations that don't target an entity (e.g., config).
func (b *Builder) Kind(kind string) *Builder {
	b.entry.Kind = kind
	return b
}

// Key sets the id or slug the caller asked for.
//
// Example:
//
//	log.Event("catalog:show", "read").Kind("term").Key(args[1])
func (b *Builder) Key(key string) *Builder {
	b.entry.Key = key
	return b
}

// Resolved sets the id the operation settled on (output).
//
// Use when the input was a slug, or when a create produced a new id.
//
// Example:
//
//	l.Resolved(strconv.FormatInt(doc.ID, 10)) // After confirming success
func (b *Builder) Resolved(id string) *Builder {
	b.entry.Resolved = id
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
//
// Use for operation-specific data that doesn't fit standard fields:
// search queries, result counts, source/destination paths, etc.
// Can be called multiple times to add multiple details.
//
// Example:
//
//	log.Event("search:search", "search").
//		Detail("query", query).
//		Detail("count", len(results))
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry to the database, deriving success/failure from err.
//
// If err is nil, the entry is logged as successful.
// If err is non-nil, the entry is logged as failed with the error message.
//
// This is the standard way to complete a log entry after an operation.
//
// Example:
//
//	d, err := svc.Resolve(ctx, kind, key)
//	log.Event("catalog:show", "read").Kind(string(kind)).Key(key.String()).Write(err)
//	if err != nil {
//		return err
//	}
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetProject sets the project identifier for subsequent log entries.
// The dir should be the absolute path to the .darc directory.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dir)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
