// Package format provides output formatting utilities for CLI display.
//
// Centralises formatting logic so that command implementations focus on
// catalog logic while this package handles presentation concerns like
// column alignment, detail layouts and markdown for terminal rendering.
package format

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jpl-au/darc/internal/catalog"
	"github.com/jpl-au/darc/internal/store"
)

// none is printed for empty relation lists and unset fields.
const none = "None"

// humanSize formats a byte count as human-readable (e.g., "1.2K", "3.4M").
func humanSize(bytes int64) string {
	const (
		_        = iota
		KB int64 = 1 << (10 * iota)
		MB
		GB
	)
	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1fG", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.1fM", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1fK", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}

// joinRefs renders reference names as a comma separated list.
func joinRefs(refs []catalog.Ref) string {
	if len(refs) == 0 {
		return none
	}
	names := make([]string, len(refs))
	for i, r := range refs {
		names[i] = r.Name
	}
	return strings.Join(names, ", ")
}

func ref(r *catalog.Ref) string {
	if r == nil {
		return none
	}
	return fmt.Sprintf("%d - %s", r.ID, r.Name)
}

func orNone(s string) string {
	if s == "" {
		return none
	}
	return s
}

func audit(w io.Writer, a store.Audit) {
	fmt.Fprintf(w, "Owner: %s\n", a.Owner)
	fmt.Fprintf(w, "Created by: %s\n", a.CreatedBy)
	fmt.Fprintf(w, "Modified by: %s\n", a.ModifiedBy)
	fmt.Fprintf(w, "Created: %s\n", store.FormatTime(a.CreatedAt))
	fmt.Fprintf(w, "Modified: %s\n\n", store.FormatTime(a.ModifiedAt))
}

// Detail writes the plain text layout of a detail view.
func Detail(w io.Writer, d catalog.Detail) error {
	switch d := d.(type) {
	case *catalog.NodeDetail:
		nodeDetail(w, d)
	case *catalog.DocumentDetail:
		documentDetail(w, d)
	case *catalog.FileDetail:
		fileDetail(w, d)
	case *catalog.MetadataDetail:
		metadataDetail(w, d)
	default:
		return fmt.Errorf("%w: no layout for %T", catalog.ErrUnknownKind, d)
	}
	Warnings(w, d.Warns())
	return nil
}

func nodeDetail(w io.Writer, d *catalog.NodeDetail) {
	n := d.Node
	fmt.Fprintf(w, "%s Detail: %d\n\n", n.Kind.Label(), n.ID)
	fmt.Fprintf(w, "Name: %s\n", n.Name)
	fmt.Fprintf(w, "Slug: %s\n\n", n.Slug)
	fmt.Fprintf(w, "Description: %s\n\n", orNone(n.Description))
	audit(w, n.Audit)
	fmt.Fprintf(w, "Parent: %s\n\n", ref(d.Parent))
	if n.Kind == store.KindCollection {
		fmt.Fprintf(w, "Child collections: %s\n\n", joinRefs(d.Children))
		fmt.Fprintf(w, "Child documents: %s\n", joinRefs(d.Documents))
		fmt.Fprintf(w, "Related: %s\n", joinRefs(d.Related))
		return
	}
	fmt.Fprintf(w, "Child terms: %s\n\n", joinRefs(d.Children))
	fmt.Fprintf(w, "Tagged: %s\n", joinRefs(d.Documents))
}

func documentDetail(w io.Writer, d *catalog.DocumentDetail) {
	doc := d.Document
	fmt.Fprintf(w, "Document Detail: %d\n\n", doc.ID)
	fmt.Fprintf(w, "Title: %s\n", doc.Title)
	fmt.Fprintf(w, "Slug: %s\n\n", doc.Slug)
	audit(w, doc.Audit)
	fmt.Fprintf(w, "Collections: %s\n", joinRefs(d.Collections))
	fmt.Fprintf(w, "Terms: %s\n", joinRefs(d.Terms))
	fmt.Fprintf(w, "Related: %s\n\n", joinRefs(d.Related))

	if len(d.Files) == 0 {
		fmt.Fprintf(w, "Files: %s\n\n", none)
	} else {
		fmt.Fprintln(w, "Files:")
		for _, f := range d.Files {
			fmt.Fprintf(w, "  %s  %6s  %-8s  %s\n", f.ID, humanSize(f.Size), f.FormatType.Label(), f.FileName)
		}
		fmt.Fprintln(w)
	}

	if d.Metadata == nil {
		fmt.Fprintf(w, "XMP Metadata: %s\n", none)
		return
	}
	fmt.Fprintf(w, "XMP Metadata:\n%s\n", d.Metadata.Payload)
}

func fileDetail(w io.Writer, d *catalog.FileDetail) {
	f := d.File
	fmt.Fprintf(w, "DataFile Detail: %s\n\n", f.ID)
	if d.Document == nil {
		fmt.Fprintln(w, "Document: Unlinked")
	} else {
		fmt.Fprintf(w, "Document: %s\n", ref(d.Document))
	}
	fmt.Fprintln(w)
	audit(w, f.Audit)
	fmt.Fprintf(w, "File name: %s\n", f.FileName)
	fmt.Fprintf(w, "File MIME type: %s\n", f.MimeType)
	fmt.Fprintf(w, "File size: %s\n", humanSize(f.Size))
	fmt.Fprintf(w, "File modified: %s\n", f.FileModified().Format(time.RFC3339Nano))
	fmt.Fprintf(w, "Format: %s\n\n", f.FormatType.Label())

	retrieved := ""
	if f.SourceRetrieved != nil {
		retrieved = store.FormatTime(*f.SourceRetrieved)
	}
	fmt.Fprintf(w, "Source URL: %s\n", f.SourceURL)
	fmt.Fprintf(w, "Retrieved: %s\n\n", retrieved)
	fmt.Fprintf(w, "===== Log =====\n%s\n", f.SourceLog)
}

func metadataDetail(w io.Writer, d *catalog.MetadataDetail) {
	fmt.Fprintf(w, "DocumentMetadata Detail: %d\n\n", d.Metadata.ID)
	fmt.Fprintf(w, "Document: %s\n\n", ref(d.Document))
	fmt.Fprintf(w, "===== XMP =====\n%s\n", d.Metadata.Payload)
}

// Warnings prints non-fatal detail warnings, one per line.
func Warnings(w io.Writer, warns []catalog.Warning) {
	if len(warns) == 0 {
		return
	}
	fmt.Fprintln(w)
	for _, wn := range warns {
		fmt.Fprintf(w, "warning [%s]: %s\n", wn.Code, wn.Message)
	}
}

// List prints rows as "<id> - <title>".
func List(w io.Writer, rows []catalog.Summary) error {
	for _, r := range rows {
		fmt.Fprintln(w, r.String())
	}
	return nil
}

// Long prints rows in aligned ID and TITLE columns.
func Long(w io.Writer, rows []catalog.Summary) error {
	if len(rows) == 0 {
		return nil
	}

	maxID := 2 // minimum "ID"
	for _, r := range rows {
		if len(r.ID) > maxID {
			maxID = len(r.ID)
		}
	}

	fmt.Fprintf(w, "%-*s  %s\n", maxID, "ID", "TITLE")
	for _, r := range rows {
		fmt.Fprintf(w, "%-*s  %s\n", maxID, r.ID, r.Title)
	}
	return nil
}

// IDs prints just ids, one per line.
func IDs(w io.Writer, rows []catalog.Summary) error {
	for _, r := range rows {
		fmt.Fprintln(w, r.ID)
	}
	return nil
}

// SearchResults prints each non-empty section of a search result.
func SearchResults(w io.Writer, r *catalog.SearchResult) error {
	sections := []struct {
		title string
		refs  []catalog.Ref
	}{
		{"Collections", r.Collections},
		{"Documents", r.Documents},
		{"Terms", r.Terms},
	}
	first := true
	for _, s := range sections {
		if len(s.refs) == 0 {
			continue
		}
		if !first {
			fmt.Fprintln(w)
		}
		first = false
		fmt.Fprintf(w, "%s:\n", s.title)
		for _, ref := range s.refs {
			fmt.Fprintf(w, "  %d - %s\n", ref.ID, ref.Name)
		}
	}
	return nil
}

// Stats prints catalog statistics.
func Stats(w io.Writer, s *store.Stats) error {
	fmt.Fprintf(w, "Collections:    %d (%d roots)\n", s.Collections, s.RootCollections)
	fmt.Fprintf(w, "Terms:          %d (%d roots)\n", s.Terms, s.RootTerms)
	fmt.Fprintf(w, "Documents:      %d (%d without collection)\n", s.Documents, s.Orphans)
	fmt.Fprintf(w, "Metadata:       %d\n", s.Metadata)
	fmt.Fprintf(w, "Files:          %d (%d unlinked)\n", s.Files, s.UnlinkedFiles)
	fmt.Fprintf(w, "Relation rows:  %d\n", s.Edges)
	return nil
}
