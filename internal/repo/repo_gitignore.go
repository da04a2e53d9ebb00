// repo_gitignore.go keeps .darc/.gitignore in step with which catalog
// databases are local (kept out of git) and which are shared.
//
// Local databases sit in their own block under localDBHeader so the entries
// written by init above it are never touched. The block disappears once its
// last database is shared again.

package repo

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const localDBHeader = "# Local databases (not committed)"

// ignoreFile is .darc/.gitignore held as raw lines, so rewriting it keeps
// comments and blank lines as the user left them.
type ignoreFile struct {
	path  string
	lines []string
}

// openIgnore reads the gitignore in dir, discovering the .darc directory
// from the working directory when dir is empty.
func openIgnore(dir string) (*ignoreFile, error) {
	if dir == "" {
		var err error
		if dir, err = DiscoverDir(); err != nil {
			return nil, err
		}
	}
	path := filepath.Join(dir, ".gitignore")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &ignoreFile{
		path:  path,
		lines: strings.Split(strings.TrimRight(string(data), "\n"), "\n"),
	}, nil
}

// index returns the line holding entry, ignoring surrounding whitespace.
func (f *ignoreFile) index(entry string) int {
	return slices.IndexFunc(f.lines, func(l string) bool {
		return strings.TrimSpace(l) == entry
	})
}

func (f *ignoreFile) has(entry string) bool { return f.index(entry) >= 0 }

// add appends entry to the local block, opening the block if needed.
func (f *ignoreFile) add(entry string) {
	if !f.has(localDBHeader) {
		f.lines = append(f.lines, "", localDBHeader)
	}
	f.lines = append(f.lines, entry)
}

// remove drops entry and, if the local block is left without a database,
// the block header and the blank line before it.
func (f *ignoreFile) remove(entry string) {
	f.lines = slices.DeleteFunc(f.lines, func(l string) bool {
		return strings.TrimSpace(l) == entry
	})

	h := f.index(localDBHeader)
	if h < 0 {
		return
	}
	for _, l := range f.lines[h+1:] {
		if strings.HasSuffix(strings.TrimSpace(l), ".db") {
			return
		}
	}
	f.lines = f.lines[:h]
	for len(f.lines) > 0 && strings.TrimSpace(f.lines[len(f.lines)-1]) == "" {
		f.lines = f.lines[:len(f.lines)-1]
	}
}

func (f *ignoreFile) save() error {
	return os.WriteFile(f.path, []byte(strings.Join(f.lines, "\n")+"\n"), 0644)
}

// IgnoreDB marks a database as local by listing it in .darc/.gitignore.
// Marking an already local database is a no-op. An empty dir means the
// .darc directory found from the working directory.
func IgnoreDB(name, dir string) error {
	f, err := openIgnore(dir)
	if err != nil {
		return err
	}
	db := DBFileName(name)
	if f.has(db) {
		return nil
	}
	f.add(db)
	return f.save()
}

// UnignoreDB marks a database as shared by removing it from .darc/.gitignore.
func UnignoreDB(name, dir string) error {
	f, err := openIgnore(dir)
	if err != nil {
		return err
	}
	db := DBFileName(name)
	if !f.has(db) {
		return nil
	}
	f.remove(db)
	return f.save()
}

// IsIgnored reports whether a database is local.
func IsIgnored(name, dir string) (bool, error) {
	f, err := openIgnore(dir)
	if err != nil {
		return false, err
	}
	return f.has(DBFileName(name)), nil
}
