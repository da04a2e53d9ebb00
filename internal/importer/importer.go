// Package importer loads a YAML catalog manifest into darc.
//
// Entities are created in dependency order: collections and terms first
// (each parent before its children), then collection relations, documents
// with their metadata and files, document relations, and finally loose
// files. References are slugs, looked up first among entities created by
// this import and then in the catalog.
//
// Design: each write commits on its own. A failure part way leaves what was
// already created in place and reports where it stopped; dry run walks the
// whole manifest and resolves every reference without writing, so running
// it first catches most failures up front.
package importer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jpl-au/darc/internal/ingest"
	"github.com/jpl-au/darc/internal/manifest"
	"github.com/jpl-au/darc/internal/progress"
	"github.com/jpl-au/darc/internal/service"
	"github.com/jpl-au/darc/internal/store"
	"github.com/jpl-au/darc/internal/validate"
)

// Options configures an import operation.
type Options struct {
	DryRun bool   // Resolve references and report without writing
	Base   string // Directory file paths are relative to (default: manifest's)
}

// Result contains the outcome of an import operation.
type Result struct {
	Collections int  `json:"collections"`
	Terms       int  `json:"terms"`
	Documents   int  `json:"documents"`
	Metadata    int  `json:"metadata"`
	Files       int  `json:"files"`
	Relations   int  `json:"relations"`
	DryRun      bool `json:"dry_run,omitempty"`
}

// Run loads the manifest at path and imports it.
func Run(ctx context.Context, w io.Writer, svc service.Service, path string, opts Options) (Result, error) {
	m, err := manifest.Load(path)
	if err != nil {
		return Result{DryRun: opts.DryRun}, err
	}
	if opts.Base == "" {
		opts.Base = filepath.Dir(path)
	}
	return Apply(ctx, w, svc, m, opts)
}

// pending stands in for ids during a dry run.
const pending int64 = -1

// importer carries the slug to id maps built up during one import.
type importer struct {
	svc    service.Service
	w      io.Writer
	opts   Options
	root   *os.Root
	ids    map[store.Kind]map[string]int64
	result Result
}

// Apply imports an already parsed manifest.
func Apply(ctx context.Context, w io.Writer, svc service.Service, m *manifest.Manifest, opts Options) (Result, error) {
	im := &importer{
		svc:  svc,
		w:    w,
		opts: opts,
		ids: map[store.Kind]map[string]int64{
			store.KindCollection: {},
			store.KindTerm:       {},
			store.KindDocument:   {},
		},
		result: Result{DryRun: opts.DryRun},
	}
	if opts.Base == "" {
		im.opts.Base = "."
	}
	defer func() {
		if im.root != nil {
			im.root.Close()
		}
	}()

	if err := im.nodes(ctx, store.KindCollection, m.Collections); err != nil {
		return im.result, err
	}
	if err := im.nodes(ctx, store.KindTerm, m.Terms); err != nil {
		return im.result, err
	}
	for _, n := range m.Collections {
		if err := im.relate(ctx, store.EdgeCollectionRelated, store.KindCollection, slugOf(n.Slug, n.Name), n.Related); err != nil {
			return im.result, err
		}
	}

	prog := progress.New("Importing", len(m.Documents))
	defer prog.Done()
	for _, d := range m.Documents {
		if err := im.document(ctx, d); err != nil {
			return im.result, err
		}
		prog.Step(d.Title)
	}
	for _, d := range m.Documents {
		if err := im.relate(ctx, store.EdgeDocumentRelated, store.KindDocument, slugOf(d.Slug, d.Title), d.Related); err != nil {
			return im.result, err
		}
	}

	for _, f := range m.Files {
		if err := im.file(ctx, nil, f); err != nil {
			return im.result, err
		}
	}
	return im.result, nil
}

// slugOf returns the slug an entry will be stored under.
func slugOf(slug, name string) string {
	if slug = strings.ToLower(strings.TrimSpace(slug)); slug != "" {
		return slug
	}
	return validate.Slugify(name)
}

// lookup resolves a slug created by this import or already in the catalog.
func (im *importer) lookup(ctx context.Context, kind store.Kind, slug string) (int64, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if id, ok := im.ids[kind][slug]; ok {
		return id, nil
	}
	id, err := im.svc.ResolveID(ctx, kind, store.Key{Slug: slug})
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", kind, slug, err)
	}
	return id, nil
}

func (im *importer) lookupAll(ctx context.Context, kind store.Kind, slugs []string) ([]int64, error) {
	ids := make([]int64, 0, len(slugs))
	for _, s := range slugs {
		id, err := im.lookup(ctx, kind, s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (im *importer) nodes(ctx context.Context, kind store.Kind, entries []manifest.Node) error {
	for _, e := range entries {
		n := &store.Node{Kind: kind, Name: e.Name, Slug: e.Slug, Description: e.Description}
		if e.Parent != "" {
			pid, err := im.lookup(ctx, kind, e.Parent)
			if err != nil {
				return fmt.Errorf("parent of %q: %w", e.Name, err)
			}
			n.ParentID = &pid
		}

		slug := slugOf(e.Slug, e.Name)
		if im.opts.DryRun {
			im.ids[kind][slug] = pending
			fmt.Fprintf(im.w, "Would import %s: %s\n", kind, slug)
		} else {
			if err := im.svc.AddNode(ctx, n); err != nil {
				return fmt.Errorf("%s %q: %w", kind, e.Name, err)
			}
			im.ids[kind][n.Slug] = n.ID
			fmt.Fprintf(im.w, "Imported %s %d: %s\n", kind, n.ID, n.Slug)
		}
		if kind == store.KindCollection {
			im.result.Collections++
		} else {
			im.result.Terms++
		}
	}
	return nil
}

func (im *importer) relate(ctx context.Context, edge store.Edge, kind store.Kind, from string, to []string) error {
	if len(to) == 0 {
		return nil
	}
	fromID, err := im.lookup(ctx, kind, from)
	if err != nil {
		return err
	}
	toIDs, err := im.lookupAll(ctx, kind, to)
	if err != nil {
		return fmt.Errorf("related to %q: %w", from, err)
	}
	for _, id := range toIDs {
		if !im.opts.DryRun {
			if err := im.svc.Relate(ctx, edge, fromID, id); err != nil {
				return fmt.Errorf("relate %q: %w", from, err)
			}
		}
		im.result.Relations++
	}
	return nil
}

func (im *importer) document(ctx context.Context, e manifest.Document) error {
	collections, err := im.lookupAll(ctx, store.KindCollection, e.Collections)
	if err != nil {
		return fmt.Errorf("document %q: %w", e.Title, err)
	}
	terms, err := im.lookupAll(ctx, store.KindTerm, e.Terms)
	if err != nil {
		return fmt.Errorf("document %q: %w", e.Title, err)
	}

	slug := slugOf(e.Slug, e.Title)
	docID := pending
	if im.opts.DryRun {
		fmt.Fprintf(im.w, "Would import document: %s\n", slug)
	} else {
		d := &store.Document{Title: e.Title, Slug: e.Slug}
		if err := im.svc.AddDocument(ctx, d, collections, terms); err != nil {
			return fmt.Errorf("document %q: %w", e.Title, err)
		}
		slug, docID = d.Slug, d.ID
		fmt.Fprintf(im.w, "Imported document %d: %s\n", d.ID, d.Slug)
	}
	im.ids[store.KindDocument][slug] = docID
	im.result.Documents++

	for _, payload := range e.Metadata {
		if !im.opts.DryRun {
			if err := im.svc.AddMetadata(ctx, &store.Metadata{DocumentID: docID, Payload: payload}); err != nil {
				return fmt.Errorf("metadata for %q: %w", e.Title, err)
			}
		}
		im.result.Metadata++
	}

	for _, f := range e.Files {
		if err := im.file(ctx, &docID, f); err != nil {
			return fmt.Errorf("document %q: %w", e.Title, err)
		}
	}
	return nil
}

// file registers one file entry, reading it from disk when it has a path.
func (im *importer) file(ctx context.Context, docID *int64, e manifest.File) error {
	var f *store.DataFile
	if e.Path != "" {
		desc, err := im.describe(e.Path)
		if err != nil {
			return err
		}
		f = desc
		if e.Name != "" {
			f.FileName = e.Name
		}
	} else {
		rec, err := record(e)
		if err != nil {
			return err
		}
		f = rec
	}

	f.ID = e.ID
	f.SourceURL = e.SourceURL
	if e.Format != "" {
		ft, err := store.ParseFormatType(e.Format)
		if err != nil {
			return fmt.Errorf("file %q: %w", f.FileName, err)
		}
		f.FormatType = ft
	}
	if docID != nil && *docID != pending {
		f.DocumentID = docID
	}

	if im.opts.DryRun {
		fmt.Fprintf(im.w, "Would import file: %s (%s)\n", f.FileName, f.MimeType)
	} else {
		if err := im.svc.AddFile(ctx, f); err != nil {
			return fmt.Errorf("file %q: %w", f.FileName, err)
		}
		fmt.Fprintf(im.w, "Imported file %s: %s\n", f.ID, f.FileName)
	}
	im.result.Files++
	return nil
}

// describe opens a manifest-relative path inside the base directory.
// Uses os.Root so a manifest cannot reach outside it.
func (im *importer) describe(rel string) (*store.DataFile, error) {
	if im.root == nil {
		root, err := os.OpenRoot(im.opts.Base)
		if err != nil {
			return nil, fmt.Errorf("opening base directory: %w", err)
		}
		im.root = root
	}
	fh, err := im.root.Open(rel)
	if err != nil {
		return nil, fmt.Errorf("file %s: %w", rel, err)
	}
	defer fh.Close()
	return ingest.Describe(fh)
}

// record builds a data file from an entry that carries its own description.
func record(e manifest.File) (*store.DataFile, error) {
	f := &store.DataFile{
		FileName:  e.Name,
		MimeType:  e.MimeType,
		Size:      e.Size,
		SourceLog: e.Log,
	}
	if e.Modified != "" {
		t, err := time.Parse(time.RFC3339Nano, e.Modified)
		if err != nil {
			return nil, fmt.Errorf("file %q modified: %w", e.Name, err)
		}
		f.FileModifiedAt, f.FileModifiedNano = t.Unix(), t.Nanosecond()
	}
	if e.Retrieved != "" {
		t, err := time.Parse(time.RFC3339, e.Retrieved)
		if err != nil {
			return nil, fmt.Errorf("file %q retrieved: %w", e.Name, err)
		}
		ts := t.Unix()
		f.SourceRetrieved = &ts
	}
	return f, nil
}
