// Package manifest defines the YAML catalog manifest read by import and
// written by export.
//
// A manifest describes entities by slug. Parents must appear before their
// children in the same list, or already exist in the catalog; references to
// collections and terms from documents are resolved the same way. Files are
// either a path to a local file (described on import) or a bare record
// carrying the fields export wrote out.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned for manifests that fail structural checks.
var ErrInvalid = errors.New("invalid manifest")

// Manifest is the top level document.
type Manifest struct {
	Collections []Node     `yaml:"collections,omitempty"`
	Terms       []Node     `yaml:"terms,omitempty"`
	Documents   []Document `yaml:"documents,omitempty"`
	Files       []File     `yaml:"files,omitempty"` // Files with no document
}

// Node is a collection or term entry.
type Node struct {
	Name        string   `yaml:"name"`
	Slug        string   `yaml:"slug,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Parent      string   `yaml:"parent,omitempty"`  // Parent slug
	Related     []string `yaml:"related,omitempty"` // Collections only
}

// Document is a document entry.
type Document struct {
	Title       string   `yaml:"title"`
	Slug        string   `yaml:"slug,omitempty"`
	Collections []string `yaml:"collections"`
	Terms       []string `yaml:"terms,omitempty"`
	Related     []string `yaml:"related,omitempty"`
	Metadata    []string `yaml:"metadata,omitempty"` // Payloads, typically XMP
	Files       []File   `yaml:"files,omitempty"`
}

// File is a data file entry. Path takes precedence: when set the file is
// read from disk and the descriptive fields are detected.
type File struct {
	Path      string `yaml:"path,omitempty"` // Relative to the manifest
	ID        string `yaml:"id,omitempty"`
	Name      string `yaml:"name,omitempty"`
	MimeType  string `yaml:"mime_type,omitempty"`
	Size      int64  `yaml:"size,omitempty"`
	Modified  string `yaml:"modified,omitempty"` // RFC3339 with nanoseconds
	Format    string `yaml:"format,omitempty"`
	SourceURL string `yaml:"source_url,omitempty"`
	Retrieved string `yaml:"retrieved,omitempty"` // RFC3339
	Log       string `yaml:"log,omitempty"`
}

// Load reads and checks a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(bytes.NewReader(data))
}

// Parse decodes a manifest, rejecting unknown fields so typos surface
// instead of being silently dropped.
func Parse(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := m.Check(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Check validates required fields.
func (m *Manifest) Check() error {
	for i, n := range m.Collections {
		if n.Name == "" {
			return fmt.Errorf("%w: collection %d has no name", ErrInvalid, i+1)
		}
	}
	for i, n := range m.Terms {
		if n.Name == "" {
			return fmt.Errorf("%w: term %d has no name", ErrInvalid, i+1)
		}
		if len(n.Related) > 0 {
			return fmt.Errorf("%w: term %q: terms have no related list", ErrInvalid, n.Name)
		}
	}
	for i, d := range m.Documents {
		if d.Title == "" {
			return fmt.Errorf("%w: document %d has no title", ErrInvalid, i+1)
		}
		if len(d.Collections) == 0 {
			return fmt.Errorf("%w: document %q needs at least one collection", ErrInvalid, d.Title)
		}
		for _, f := range d.Files {
			if err := f.check(); err != nil {
				return fmt.Errorf("document %q: %w", d.Title, err)
			}
		}
	}
	for _, f := range m.Files {
		if err := f.check(); err != nil {
			return err
		}
	}
	return nil
}

func (f File) check() error {
	if f.Path == "" && f.Name == "" {
		return fmt.Errorf("%w: file needs a path or a name", ErrInvalid)
	}
	return nil
}

// Write encodes m as YAML.
func (m *Manifest) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return err
	}
	return enc.Close()
}
