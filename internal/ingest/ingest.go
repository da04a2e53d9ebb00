// Package ingest registers local files as catalog data files.
//
// Only the file's description is stored: name, detected MIME type, size and
// modification time to the nanosecond. The bytes stay where they are. MIME
// detection sniffs content rather than trusting the extension, so a scanned
// PDF saved as .bin is still recorded as application/pdf.
package ingest

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/djherbis/times"
	"github.com/gabriel-vasile/mimetype"

	"github.com/jpl-au/darc/internal/service"
	"github.com/jpl-au/darc/internal/store"
)

// Options configures a file add.
type Options struct {
	Document  *store.Key       // Document to attach to, nil for unlinked
	Format    store.FormatType // Blank means native
	SourceURL string           // Where the file was retrieved from
	ID        string           // Explicit UUID, blank to generate one
	Name      string           // Override the recorded file name
}

// Result contains the outcome of a file add.
type Result struct {
	File *store.DataFile
}

// ToJSON converts the result to JSON-serializable format.
func (r Result) ToJSON() any {
	if r.File == nil {
		return nil
	}
	return r.File.ToJSON()
}

// Describe builds a data file record from an open file. The read offset
// is left at the start of the file.
func Describe(f *os.File) (*store.DataFile, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", f.Name(), err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", f.Name())
	}

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return nil, fmt.Errorf("detect type of %s: %w", f.Name(), err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind %s: %w", f.Name(), err)
	}

	ts, err := times.StatFile(f)
	if err != nil {
		return nil, fmt.Errorf("times of %s: %w", f.Name(), err)
	}
	mod := ts.ModTime()

	return &store.DataFile{
		FileName:         filepath.Base(f.Name()),
		MimeType:         mt.String(),
		Size:             info.Size(),
		FileModifiedAt:   mod.Unix(),
		FileModifiedNano: mod.Nanosecond(),
	}, nil
}

// DescribePath opens path and describes it.
func DescribePath(path string) (*store.DataFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Describe(f)
}

// Apply copies the options onto a described file, resolving the document key.
func Apply(ctx context.Context, svc service.Service, f *store.DataFile, opts Options) error {
	if opts.Name != "" {
		f.FileName = opts.Name
	}
	f.ID = opts.ID
	f.FormatType = opts.Format
	f.SourceURL = opts.SourceURL
	if opts.Document != nil {
		id, err := svc.ResolveID(ctx, store.KindDocument, *opts.Document)
		if err != nil {
			return fmt.Errorf("document %s: %w", opts.Document, err)
		}
		f.DocumentID = &id
	}
	return nil
}

// Run describes the file at path and registers it.
func Run(ctx context.Context, w io.Writer, svc service.Service, path string, opts Options) (Result, error) {
	var result Result

	f, err := DescribePath(path)
	if err != nil {
		return result, err
	}
	if err := Apply(ctx, svc, f, opts); err != nil {
		return result, err
	}
	if err := svc.AddFile(ctx, f); err != nil {
		return result, err
	}
	result.File = f

	fmt.Fprintf(w, "Added file %s (%s, %s)\n", f.ID, f.FileName, f.MimeType)
	return result, nil
}

// Log appends a provenance line to a file and prints the new log.
func Log(ctx context.Context, w io.Writer, svc service.Service, id, line string) error {
	if err := svc.AppendLog(ctx, id, line); err != nil {
		return err
	}
	fmt.Fprintf(w, "Logged to file %s\n", id)
	return nil
}

// Link attaches a file to a document, or detaches it when doc is nil.
func Link(ctx context.Context, w io.Writer, svc service.Service, id string, doc *store.Key) error {
	if doc == nil {
		if err := svc.LinkFile(ctx, id, nil); err != nil {
			return err
		}
		fmt.Fprintf(w, "Unlinked file %s\n", id)
		return nil
	}
	docID, err := svc.ResolveID(ctx, store.KindDocument, *doc)
	if err != nil {
		return fmt.Errorf("document %s: %w", doc, err)
	}
	if err := svc.LinkFile(ctx, id, &docID); err != nil {
		return err
	}
	fmt.Fprintf(w, "Linked file %s to document %d\n", id, docID)
	return nil
}
