// Package catalog provides the catalog query and tree-composition engine
// backed by a Store implementation. It exposes a `Service` which wraps a
// `store.SQLiteStore` and offers tree rendering, detail assembly, search and
// the administrative writes that populate the catalog.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/jpl-au/darc/internal/config"
	"github.com/jpl-au/darc/internal/log"
	"github.com/jpl-au/darc/internal/repo"
	"github.com/jpl-au/darc/internal/store"
)

// Service provides catalog operations backed by a Store. It holds nothing
// between requests except the connection and cached configuration; every
// tree and detail view is read fresh.
type Service struct {
	store         *store.SQLiteStore
	dbPath        string
	caseSensitive bool
	indent        string
	maxName       int
	maxSlug       int
	maxLog        int
}

// New creates a new Service, discovering the DB by walking up the directory tree.
// The db parameter specifies which database to use (empty for default).
// Returns repo.ErrNotInitialised if no matching database is found.
func New(db string) (*Service, error) {
	dbPath, err := repo.Discover(db)
	if err != nil {
		return nil, err
	}
	return Open(dbPath)
}

// Open creates a Service for an explicit database path, skipping discovery.
// The schema is applied idempotently so an empty file becomes a catalog.
func Open(dbPath string) (*Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err // config.Load provides detailed, actionable error messages
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		s.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	svc := &Service{store: s, dbPath: dbPath}
	svc.apply(cfg)
	return svc, nil
}

// Create makes a new catalog and reports its path and tables. If dir is
// empty it uses the current directory. db selects the catalog (empty for
// the default), and local keeps it out of git. Config is not written; that
// is "darc config".
func Create(force bool, db string, local bool, dir string) (*repo.Created, error) {
	return repo.Init(force, db, local, dir)
}

// Init is Create for callers that only need to know it worked.
func Init(force bool, db string, local bool, dir string) error {
	_, err := Create(force, db, local, dir)
	return err
}

// Close checkpoints the WAL and closes the database connection.
func (s *Service) Close() error {
	if err := s.store.Checkpoint(context.Background()); err != nil {
		log.Event("service:close", "checkpoint").
			Detail("error", err.Error()).
			Write(err)
	}
	return s.store.Close()
}

// ReloadConfig reloads configuration from disk and updates cached values.
// Call this after modifying config to ensure the service uses new settings.
func (s *Service) ReloadConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	s.apply(cfg)
	return nil
}

func (s *Service) apply(cfg *config.Config) {
	s.caseSensitive = cfg.CaseSensitive()
	s.indent = cfg.Indent()
	s.maxName = cfg.MaxName()
	s.maxSlug = cfg.MaxSlug()
	s.maxLog = cfg.MaxLog()
}

// SetIndent overrides the tree indent unit for this service.
func (s *Service) SetIndent(indent string) {
	if indent != "" {
		s.indent = indent
	}
}

// Indent returns the tree indent unit in effect.
func (s *Service) Indent() string {
	return s.indent
}

// writeOpts builds store options from configured limits and the caller.
func (s *Service) writeOpts(ctx context.Context) store.WriteOptions {
	user, _ := UserFrom(ctx)
	return store.WriteOptions{
		Author:  user,
		MaxName: s.maxName,
		MaxSlug: s.maxSlug,
		MaxLog:  s.maxLog,
	}
}

// Store exposes the underlying store for maintenance commands.
func (s *Service) Store() store.Store {
	return s.store
}

// DB returns the underlying database connection for extensions.
func (s *Service) DB() *sql.DB {
	return s.store.DB()
}

// DBPath returns the path to the database file.
func (s *Service) DBPath() string {
	return s.dbPath
}

// Dir returns the .darc directory holding the database.
func (s *Service) Dir() string {
	return filepath.Dir(s.dbPath)
}

// Tx runs a function within a database transaction.
//
// Why expose raw *sql.Tx: Extensions may need complex operations not covered
// by the Service API. Raw transactions let them do multi-step atomic operations
// while still benefiting from the service's connection management.
func (s *Service) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	if err := s.store.Tx(ctx, fn); err != nil {
		return fmt.Errorf("transaction rolled back: %w", err)
	}
	return nil
}
