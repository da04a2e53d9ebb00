// Package exporter writes the catalog out as a YAML manifest.
//
// The output is the format the importer reads, so export followed by import
// into an empty catalog rebuilds the same trees, memberships and relations.
// Data files are written as records carrying their description; the bytes
// were never stored and are not exported. Symmetric relations are written
// once, from the lower id.
package exporter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/jpl-au/darc/internal/catalog"
	"github.com/jpl-au/darc/internal/manifest"
	"github.com/jpl-au/darc/internal/progress"
	"github.com/jpl-au/darc/internal/service"
	"github.com/jpl-au/darc/internal/store"
)

// Options configures an export operation.
type Options struct {
	Force bool // Overwrite an existing destination file
}

// Result contains the outcome of an export operation.
type Result struct {
	Path        string   `json:"path,omitempty"` // Empty when written to the output stream
	Collections int      `json:"collections"`
	Terms       int      `json:"terms"`
	Documents   int      `json:"documents"`
	Files       int      `json:"files"`
	Warnings    []string `json:"warnings,omitempty"`
}

// Run builds the manifest and writes it to dst, or to w when dst is "-".
func Run(ctx context.Context, w io.Writer, svc service.Service, dst string, opts Options) (Result, error) {
	var result Result

	m, err := Build(ctx, svc, &result)
	if err != nil {
		return result, err
	}

	if dst == "" || dst == "-" {
		return result, m.Write(w)
	}

	if err := writeManifest(dst, m, opts.Force); err != nil {
		return result, err
	}
	result.Path = dst
	fmt.Fprintf(w, "Exported %d collection(s), %d term(s), %d document(s), %d file(s) -> %s\n",
		result.Collections, result.Terms, result.Documents, result.Files, dst)
	for _, warn := range result.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warn)
	}
	return result, nil
}

// Build assembles a manifest of the whole catalog, counting into result.
func Build(ctx context.Context, svc service.Service, result *Result) (*manifest.Manifest, error) {
	var m manifest.Manifest

	colSlugs, err := slugs(ctx, svc, store.KindCollection)
	if err != nil {
		return nil, err
	}
	termSlugs, err := slugs(ctx, svc, store.KindTerm)
	if err != nil {
		return nil, err
	}

	if m.Collections, err = nodes(ctx, svc, store.KindCollection, colSlugs); err != nil {
		return nil, err
	}
	if m.Terms, err = nodes(ctx, svc, store.KindTerm, termSlugs); err != nil {
		return nil, err
	}
	result.Collections, result.Terms = len(m.Collections), len(m.Terms)

	st := svc.Store()
	docs, err := st.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}
	docSlugs := make(map[int64]string, len(docs))
	for _, d := range docs {
		docSlugs[d.ID] = d.Slug
	}

	metas, err := st.ListMetadata(ctx)
	if err != nil {
		return nil, err
	}
	metaByDoc := map[int64][]string{}
	for _, md := range metas {
		metaByDoc[md.DocumentID] = append(metaByDoc[md.DocumentID], md.Payload)
	}

	files, err := st.ListFiles(ctx, nil)
	if err != nil {
		return nil, err
	}
	filesByDoc := map[int64][]manifest.File{}
	for i := range files {
		f := &files[i]
		rec := fileRecord(f)
		if f.DocumentID == nil {
			m.Files = append(m.Files, rec)
			continue
		}
		filesByDoc[*f.DocumentID] = append(filesByDoc[*f.DocumentID], rec)
	}
	result.Files = len(files)

	prog := progress.New("Exporting", len(docs))
	defer prog.Done()
	for _, d := range docs {
		e := manifest.Document{
			Title:    d.Title,
			Slug:     d.Slug,
			Metadata: metaByDoc[d.ID],
			Files:    filesByDoc[d.ID],
		}
		if e.Collections, err = memberSlugs(ctx, svc, store.EdgeDocumentCollections, d.ID, colSlugs); err != nil {
			return nil, err
		}
		if e.Terms, err = memberSlugs(ctx, svc, store.EdgeDocumentTerms, d.ID, termSlugs); err != nil {
			return nil, err
		}
		if e.Related, err = relatedSlugs(ctx, svc, store.EdgeDocumentRelated, d.ID, docSlugs); err != nil {
			return nil, err
		}
		if len(e.Collections) == 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("document %d (%s) has no collection and will not re-import", d.ID, d.Slug))
		}
		m.Documents = append(m.Documents, e)
		prog.Step(e.Title)
	}
	result.Documents = len(m.Documents)

	return &m, nil
}

func slugs(ctx context.Context, svc service.Service, kind store.Kind) (map[int64]string, error) {
	all, err := svc.Store().Nodes(ctx, kind)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]string, len(all))
	for _, n := range all {
		out[n.ID] = n.Slug
	}
	return out, nil
}

// nodes lists a kind parent-first by walking its forest in pre-order.
func nodes(ctx context.Context, svc service.Service, kind store.Kind, slugOf map[int64]string) ([]manifest.Node, error) {
	forest, err := svc.ForestNodes(ctx, kind)
	if err != nil {
		return nil, err
	}
	all, err := svc.Store().Nodes(ctx, kind)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]store.Node, len(all))
	for _, n := range all {
		byID[n.ID] = n
	}

	var out []manifest.Node
	var walk func(t *catalog.TreeNode) error
	walk = func(t *catalog.TreeNode) error {
		n := byID[t.ID]
		e := manifest.Node{Name: n.Name, Slug: n.Slug, Description: n.Description}
		if n.ParentID != nil {
			e.Parent = slugOf[*n.ParentID]
		}
		if kind == store.KindCollection {
			rel, err := relatedSlugs(ctx, svc, store.EdgeCollectionRelated, n.ID, slugOf)
			if err != nil {
				return err
			}
			e.Related = rel
		}
		out = append(out, e)
		for _, c := range t.Children {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	for _, root := range forest {
		if err := walk(root); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func memberSlugs(ctx context.Context, svc service.Service, edge store.Edge, id int64, slugOf map[int64]string) ([]string, error) {
	ids, err := svc.MembersOf(ctx, edge, id)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, t := range ids {
		if s, ok := slugOf[t]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

// relatedSlugs returns the partners with a higher id, so each symmetric
// pair is written once.
func relatedSlugs(ctx context.Context, svc service.Service, edge store.Edge, id int64, slugOf map[int64]string) ([]string, error) {
	ids, err := svc.RelatedSymmetric(ctx, edge, id)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, t := range ids {
		if s, ok := slugOf[t]; ok && t > id {
			out = append(out, s)
		}
	}
	return out, nil
}

func fileRecord(f *store.DataFile) manifest.File {
	rec := manifest.File{
		ID:        f.ID,
		Name:      f.FileName,
		MimeType:  f.MimeType,
		Size:      f.Size,
		Modified:  f.FileModified().Format(time.RFC3339Nano),
		Format:    f.FormatType.Label(),
		SourceURL: f.SourceURL,
		Log:       f.SourceLog,
	}
	if f.SourceRetrieved != nil {
		rec.Retrieved = store.FormatTime(*f.SourceRetrieved)
	}
	return rec
}

// writeManifest writes m to dst within its directory's os.Root.
func writeManifest(dst string, m *manifest.Manifest, force bool) error {
	dir, name := filepath.Dir(dst), filepath.Base(dst)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	root, err := os.OpenRoot(dir)
	if err != nil {
		return fmt.Errorf("opening destination: %w", err)
	}
	defer root.Close()

	if !force {
		if _, err := root.Stat(name); err == nil {
			return fmt.Errorf("file exists: %s (use --force to overwrite)", dst)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	f, err := root.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", dst, err)
	}
	if err := m.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
