// Package repo locates and creates darc catalogs on disk.
//
// A project keeps its catalogs in a .darc directory: darc.db by default and
// darc-<name>.db for each named catalog selected with --db. Commands find
// that directory by walking up from the working directory the way git finds
// .git. Whether a catalog is committed is decided by .darc/.gitignore (see
// repo_gitignore.go).
package repo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpl-au/darc/internal/store"
)

const (
	// Dir is the directory name for the darc repository.
	Dir = ".darc"
	// DBFile is the default database filename.
	DBFile = "darc.db"
)

// defaultGitignore is written by the first init in a .darc directory.
// Catalogs are committed, their WAL sidecars and the local config are not.
const defaultGitignore = `# darc - ignore WAL sidecars and local config
# Catalog databases (*.db) are the source of truth and should be committed
*.db-wal
*.db-shm
config.yaml
`

// ErrNotInitialised is returned when no darc repository is found.
var ErrNotInitialised = errors.New("darc not initialised (run 'darc init')")

// DBFileName maps a --db name to its file: "" is darc.db, "archive" is
// darc-archive.db, and a name already ending in .db is used as given.
func DBFileName(name string) string {
	if name == "" {
		return DBFile
	}
	if strings.HasSuffix(name, ".db") {
		return name
	}
	return "darc-" + name + ".db"
}

// dbName is the inverse of DBFileName for files found in .darc. ok is false
// for files that do not follow the darc naming.
func dbName(file string) (name string, ok bool) {
	if file == DBFile {
		return "", true
	}
	if rest, found := strings.CutPrefix(file, "darc-"); found && strings.HasSuffix(rest, ".db") {
		return strings.TrimSuffix(rest, ".db"), true
	}
	return "", false
}

// Created describes the catalog Init made.
type Created struct {
	Path     string   `json:"path"`
	Tables   []string `json:"tables"`
	Local    bool     `json:"local"`
	Replaced bool     `json:"replaced"`
}

// Init creates the catalog db in dir/.darc (the working directory when dir
// is empty), with the full schema. An existing catalog is an error unless
// force is set, in which case it is deleted and created afresh. local lists
// the catalog in .darc/.gitignore. Config is left to "darc config".
func Init(force bool, db string, local bool, dir string) (*Created, error) {
	if dir == "" {
		dir = "."
	}
	darcDir := filepath.Join(dir, Dir)
	file := DBFileName(db)
	c := &Created{Path: filepath.Join(darcDir, file), Local: local}

	if _, err := os.Stat(c.Path); err == nil {
		if !force {
			return nil, fmt.Errorf("database %s already exists (use --force to reinitialise)", file)
		}
		for _, p := range []string{c.Path, c.Path + "-wal", c.Path + "-shm"} {
			if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("remove database: %w", err)
			}
		}
		c.Replaced = true
	}

	if err := os.MkdirAll(darcDir, 0755); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}

	s, err := store.Open(c.Path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}
	ctx := context.Background()
	if err := s.Verify(ctx); err != nil {
		return nil, err
	}
	if c.Tables, err = s.Tables(ctx); err != nil {
		return nil, err
	}

	// Later inits for named catalogs keep the file, and with it any
	// local-database block.
	gitignore := filepath.Join(darcDir, ".gitignore")
	if _, err := os.Stat(gitignore); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(gitignore, []byte(defaultGitignore), 0644); err != nil {
			return nil, fmt.Errorf("write gitignore: %w", err)
		}
	}

	if local {
		if err := IgnoreDB(db, darcDir); err != nil {
			return nil, fmt.Errorf("ignore database: %w", err)
		}
	}
	return c, nil
}

// walkUp returns the first path, from the working directory upwards, for
// which rel exists and match accepts its FileInfo.
func walkUp(rel string, match func(os.FileInfo) bool) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	for {
		p := filepath.Join(dir, rel)
		if info, err := os.Stat(p); err == nil && match(info) {
			return p, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}

// Discover returns the path of catalog db in the nearest .darc directory
// holding it.
func Discover(db string) (string, error) {
	return walkUp(filepath.Join(Dir, DBFileName(db)), func(info os.FileInfo) bool {
		return info.Mode().IsRegular()
	})
}

// DiscoverDir returns the nearest .darc directory.
func DiscoverDir() (string, error) {
	return walkUp(Dir, os.FileInfo.IsDir)
}

// DBInfo describes one catalog file in .darc. Stats is nil when the file
// could not be read as a catalog; Problem then says why.
type DBInfo struct {
	Name    string       `json:"name"`
	File    string       `json:"file"`
	Path    string       `json:"path"`
	Local   bool         `json:"local"`
	Stats   *store.Stats `json:"stats,omitempty"`
	Problem string       `json:"problem,omitempty"`
}

// ListDBs returns the catalogs in dir (discovered when empty), ordered by
// file name. Each one is inspected for its counts; a .db that is not a
// catalog is still listed, with the reason in Problem.
func ListDBs(ctx context.Context, dir string) ([]DBInfo, error) {
	if dir == "" {
		var err error
		if dir, err = DiscoverDir(); err != nil {
			return nil, fmt.Errorf("discover .darc directory: %w", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read .darc directory: %w", err)
	}

	// One read of .gitignore for the whole listing. A missing or unreadable
	// file means every catalog is shared.
	ignore, _ := openIgnore(dir)

	dbs := []DBInfo{}
	for _, e := range entries {
		name, ok := dbName(e.Name())
		if !ok || !e.Type().IsRegular() {
			continue
		}
		info := DBInfo{
			Name:  name,
			File:  e.Name(),
			Path:  filepath.Join(dir, e.Name()),
			Local: ignore != nil && ignore.has(e.Name()),
		}
		if info.Stats, err = store.Inspect(ctx, info.Path); err != nil {
			info.Problem = err.Error()
		}
		dbs = append(dbs, info)
	}
	return dbs, nil
}
