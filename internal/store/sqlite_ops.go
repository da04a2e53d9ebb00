// sqlite_ops.go provides SQLite connection management and low-level operations.
//
// Separated to isolate SQLite-specific concerns (pragmas, connection pooling,
// driver registration) from business logic. This is the only file that imports
// the SQLite driver, making it easier to swap implementations if needed.
//
// Design: WAL mode with busy timeout balances concurrency and durability.
// WAL allows concurrent readers during writes (critical for MCP scenarios).
// The 5-second busy timeout prevents "database is locked" errors without
// waiting forever on stuck connections.

package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"modernc.org/sqlite"
)

// foldFunc is the SQL name of the Unicode case fold used by case-insensitive
// search. SQLite's own lower() folds ASCII only.
const foldFunc = "darc_fold"

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(foldFunc, 1, fold)
}

// fold case-folds a TEXT argument. NULL stays NULL. A Caser is not safe for
// concurrent use, so each call builds its own.
func fold(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return cases.Fold().String(v), nil
	case []byte:
		return cases.Fold().String(string(v)), nil
	default:
		return nil, fmt.Errorf("%s: unsupported argument %T", foldFunc, v)
	}
}

// SQLiteStore implements Store using SQLite with WAL mode for concurrent access.
// It holds nothing but the connection pool; every tree and relation is read
// fresh from the tables.
type SQLiteStore struct {
	db *sql.DB
}

// Compile-time interface compliance check. This ensures SQLiteStore implements
// the full Store interface. If a method is missing or has the wrong signature,
// the build fails immediately with a clear error, rather than failing at runtime
// when the method is called. This is especially valuable when interfaces change.
var _ Store = (*SQLiteStore)(nil)

// Open opens the SQLite database file at `path` and returns a configured
// SQLiteStore. The caller should call Close on the returned store.
//
// The pragma configuration balances durability, performance, and concurrency
// for darc's usage pattern (occasional bulk imports, read-heavy lookups).
//
// Foreign keys and the busy timeout are per-connection settings in SQLite,
// so they ride on the DSN and apply to every connection the pool opens.
// The cascade and set-null rules in the schema depend on foreign_keys.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	// WAL mode: Allows concurrent readers while writing. Without this, readers
	// block writers and vice versa. Critical for MCP server scenarios where
	// an LLM might read while the user writes. Trade-off: Creates -wal and
	// -shm files alongside the database.
	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	// Synchronous NORMAL: With WAL mode, NORMAL is safe against corruption
	// (WAL provides the durability guarantee). FULL would fsync on every
	// commit, which is ~10x slower. The only risk with NORMAL is losing the
	// last transaction on OS crash - acceptable for a catalog where
	// users can re-run the import.
	if _, err := db.Exec(`PRAGMA synchronous=NORMAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting synchronous mode: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// dsn appends the per-connection pragmas to a database path. 5 seconds of
// busy timeout prevents "database is locked" errors during concurrent
// access without waiting forever on a stuck connection.
func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Init creates tables and indexes if they don't exist. Safe to call multiple
// times; uses IF NOT EXISTS to avoid errors on existing databases.
func (s *SQLiteStore) Init() error {
	return execSchema(s.db)
}

// Close releases the database connection. Call before program exit to ensure
// all pending writes are flushed.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// DB exposes the underlying connection for extensions that need custom tables.
// Extensions should not modify core tables directly.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// scanner abstracts sql.Row and sql.Rows, enabling a single scan function
// to handle both single-row and multi-row queries.
type scanner interface {
	Scan(dest ...any) error
}

const (
	nodeColumns = `id, name, description, slug, parent_id, owner, created_by, modified_by, created_at, modified_at`
	docColumns  = `id, title, slug, owner, created_by, modified_by, created_at, modified_at`
	metaColumns = `id, document_id, payload`
	fileColumns = `id, document_id, file_name, mime_type, size, file_modified_at, file_modified_nano,
		format_type, source_url, source_retrieved_at, source_retrieve_log,
		owner, created_by, modified_by, created_at, modified_at`
)

// scanNode extracts a Node from a database row, handling nullable fields.
func scanNode(sc scanner, kind Kind) (Node, error) {
	n := Node{Kind: kind}
	var desc sql.NullString
	var parent sql.NullInt64

	err := sc.Scan(&n.ID, &n.Name, &desc, &n.Slug, &parent,
		&n.Owner, &n.CreatedBy, &n.ModifiedBy, &n.CreatedAt, &n.ModifiedAt)
	if err != nil {
		return n, err
	}
	n.Description = desc.String
	if parent.Valid {
		n.ParentID = &parent.Int64
	}
	return n, nil
}

func scanDoc(sc scanner) (Document, error) {
	var d Document
	err := sc.Scan(&d.ID, &d.Title, &d.Slug, &d.Owner, &d.CreatedBy, &d.ModifiedBy, &d.CreatedAt, &d.ModifiedAt)
	return d, err
}

func scanMeta(sc scanner) (Metadata, error) {
	var m Metadata
	err := sc.Scan(&m.ID, &m.DocumentID, &m.Payload)
	return m, err
}

func scanFile(sc scanner) (DataFile, error) {
	var f DataFile
	var doc, retrieved sql.NullInt64
	var url, log sql.NullString
	var format string

	err := sc.Scan(&f.ID, &doc, &f.FileName, &f.MimeType, &f.Size, &f.FileModifiedAt, &f.FileModifiedNano,
		&format, &url, &retrieved, &log,
		&f.Owner, &f.CreatedBy, &f.ModifiedBy, &f.CreatedAt, &f.ModifiedAt)
	if err != nil {
		return f, err
	}
	f.FormatType = FormatType(format)
	f.SourceURL = url.String
	f.SourceLog = log.String
	if doc.Valid {
		f.DocumentID = &doc.Int64
	}
	if retrieved.Valid {
		f.SourceRetrieved = &retrieved.Int64
	}
	return f, nil
}

// one converts sql.ErrNoRows to ErrNotFound for consistent error handling.
func one[T any](v T, err error, what string) (*T, error) {
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", what, err)
	}
	return &v, nil
}

// collect iterates over query results, collecting rows into a slice. The
// result is never nil so empty sections serialise as [] rather than null.
func collect[T any](rows *sql.Rows, scan func(scanner) (T, error)) ([]T, error) {
	defer rows.Close()
	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// collectIDs gathers a single integer column.
func collectIDs(rows *sql.Rows) ([]int64, error) {
	return collect(rows, func(sc scanner) (int64, error) {
		var id int64
		err := sc.Scan(&id)
		return id, err
	})
}

// placeholders returns "?, ?, ?" for n arguments along with the args slice.
func placeholders(ids []int64) (string, []any) {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", "), args
}

// Tx executes fn within a database transaction, handling Begin/Commit/Rollback
// automatically. This eliminates a class of bugs where callers forget to commit,
// forget to rollback on error, or fail to check commit errors.
//
// Context cancellation will abort the transaction at the next database call.
//
//	err := s.Tx(ctx, func(tx *sql.Tx) error {
//	    if _, err := tx.ExecContext(ctx, `UPDATE ...`); err != nil {
//	        return err  // triggers rollback
//	    }
//	    return nil  // triggers commit
//	})
func (s *SQLiteStore) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// newFileID returns a random UUID for a data file. File ids are never
// reused, even after the file row is deleted.
func newFileID() string {
	return uuid.NewString()
}
