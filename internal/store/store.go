// Package store defines catalog persistence types and the Store interface.
// Implementations handle the actual database operations while consumers
// depend only on this interface, enabling testing and alternative backends.
package store

import (
	"encoding/json"
	"fmt"
	"time"
)

// Kind names an entity kind held by the catalog.
type Kind string

const (
	KindTerm       Kind = "term"
	KindCollection Kind = "collection"
	KindDocument   Kind = "document"
	KindDataFile   Kind = "file"
	KindMetadata   Kind = "metadata"
)

// Kinds returns every entity kind in display order.
func Kinds() []Kind {
	return []Kind{KindCollection, KindTerm, KindDocument, KindDataFile, KindMetadata}
}

// ParseKind accepts a kind name, tolerating plurals and a few aliases users
// reach for ("files", "datafile", "xmp").
func ParseKind(s string) (Kind, error) {
	switch s {
	case "term", "terms":
		return KindTerm, nil
	case "collection", "collections":
		return KindCollection, nil
	case "document", "documents", "doc", "docs":
		return KindDocument, nil
	case "file", "files", "datafile", "datafiles":
		return KindDataFile, nil
	case "metadata", "meta", "xmp":
		return KindMetadata, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Hierarchical reports whether the kind carries a self-referential parent.
func (k Kind) Hierarchical() bool {
	_, ok := hierarchies[k]
	return ok
}

// Label returns the capitalised display name ("Collection", "Term", ...).
func (k Kind) Label() string {
	switch k {
	case KindTerm:
		return "Term"
	case KindCollection:
		return "Collection"
	case KindDocument:
		return "Document"
	case KindDataFile:
		return "DataFile"
	case KindMetadata:
		return "DocumentMetadata"
	}
	return string(k)
}

// hierarchy describes the table backing a self-referential kind. Term and
// Collection share one shape and differ only in table and delete behaviour,
// which lives in the schema (SET NULL vs CASCADE).
type hierarchy struct {
	table string
}

var hierarchies = map[Kind]hierarchy{
	KindTerm:       {table: "terms"},
	KindCollection: {table: "collections"},
}

func hierarchyFor(k Kind) (hierarchy, error) {
	h, ok := hierarchies[k]
	if !ok {
		return hierarchy{}, fmt.Errorf("%w: %s is not hierarchical", ErrUnknownKind, k)
	}
	return h, nil
}

// Audit holds the bookkeeping fields every entity carries. CreatedAt is set
// once at insert; ModifiedAt moves on every mutation.
type Audit struct {
	Owner      string // User who owns the entity
	CreatedBy  string // User who inserted it
	ModifiedBy string // User who last changed it
	CreatedAt  int64  // Unix timestamp of insert
	ModifiedAt int64  // Unix timestamp of last mutation
}

// Node is a Term or a Collection. Both form a forest through ParentID.
type Node struct {
	Kind        Kind
	ID          int64
	Name        string
	Description string // Empty when unset
	Slug        string
	ParentID    *int64 // nil for roots
	Audit
}

// IsRoot reports whether the node has no parent.
func (n *Node) IsRoot() bool { return n.ParentID == nil }

// Document is a catalogued work. Its relation sets live in junction tables.
type Document struct {
	ID    int64
	Title string
	Slug  string
	Audit
}

// Metadata is an opaque payload attached to a document, such as an XMP packet.
type Metadata struct {
	ID         int64
	DocumentID int64
	Payload    string
}

// FormatType classifies how a data file came to exist.
type FormatType string

const (
	FormatNative  FormatType = "n" // Born digital
	FormatScanned FormatType = "s" // Usually a set of page images
	FormatWorking FormatType = "w" // Editable word processor or editor formats
)

// ParseFormatType accepts either the stored code or the label.
func ParseFormatType(s string) (FormatType, error) {
	switch s {
	case "n", "native":
		return FormatNative, nil
	case "s", "scanned":
		return FormatScanned, nil
	case "w", "working":
		return FormatWorking, nil
	}
	return "", fmt.Errorf("%w: format type %q (want native, scanned or working)", ErrInvalidValue, s)
}

// Label returns the human readable format name.
func (f FormatType) Label() string {
	switch f {
	case FormatNative:
		return "native"
	case FormatScanned:
		return "scanned"
	case FormatWorking:
		return "working"
	}
	return "unknown"
}

// DataFile is a stored file, optionally attached to a document. The ID is a
// UUID and is never reused. DocumentID becomes nil when the document is
// deleted and is never repopulated automatically.
type DataFile struct {
	ID               string
	DocumentID       *int64
	FileName         string
	MimeType         string
	Size             int64
	FileModifiedAt   int64 // Unix seconds
	FileModifiedNano int   // Sub-second component, kept separately for exactness
	FormatType       FormatType
	SourceURL        string
	SourceRetrieved  *int64 // Unix timestamp, nil if never retrieved
	SourceLog        string
	Audit
}

// FileModified joins the split modification time back into a time.Time.
func (f *DataFile) FileModified() time.Time {
	return time.Unix(f.FileModifiedAt, int64(f.FileModifiedNano)).UTC()
}

// Edge names a many-to-many relation.
type Edge string

const (
	EdgeDocumentCollections Edge = "document_collections"
	EdgeDocumentTerms       Edge = "document_terms"
	EdgeDocumentRelated     Edge = "document_related"
	EdgeCollectionRelated   Edge = "collection_related"
)

// edgeSpec maps an edge onto its junction table. Left is the owning side
// ("document has collections"); Right is the target.
type edgeSpec struct {
	table     string
	left      string
	right     string
	from      Kind
	to        Kind
	symmetric bool
}

var edges = map[Edge]edgeSpec{
	EdgeDocumentCollections: {table: "document_collections", left: "document_id", right: "collection_id", from: KindDocument, to: KindCollection},
	EdgeDocumentTerms:       {table: "document_terms", left: "document_id", right: "term_id", from: KindDocument, to: KindTerm},
	EdgeDocumentRelated:     {table: "document_related", left: "from_id", right: "to_id", from: KindDocument, to: KindDocument, symmetric: true},
	EdgeCollectionRelated:   {table: "collection_related", left: "from_id", right: "to_id", from: KindCollection, to: KindCollection, symmetric: true},
}

func edgeFor(e Edge) (edgeSpec, error) {
	spec, ok := edges[e]
	if !ok {
		return edgeSpec{}, fmt.Errorf("%w: %q", ErrUnknownEdge, e)
	}
	return spec, nil
}

// ParseEdge accepts an edge name or its short form ("related", "terms").
func ParseEdge(s string) (Edge, error) {
	switch s {
	case "document_collections", "collections":
		return EdgeDocumentCollections, nil
	case "document_terms", "terms":
		return EdgeDocumentTerms, nil
	case "document_related", "related":
		return EdgeDocumentRelated, nil
	case "collection_related":
		return EdgeCollectionRelated, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEdge, s)
}

// Symmetric reports whether the edge reads the same from either end.
func (e Edge) Symmetric() bool {
	return edges[e].symmetric
}

// Ends returns the kinds on the owning and target side of the edge.
func (e Edge) Ends() (from, to Kind) {
	spec := edges[e]
	return spec.from, spec.to
}

// NodeJSON is the API-friendly representation of a Node.
type NodeJSON struct {
	Kind        Kind   `json:"kind"`
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	ParentID    *int64 `json:"parent_id,omitempty"`
	AuditJSON
}

// AuditJSON is the API-friendly representation of Audit with RFC3339 times.
type AuditJSON struct {
	Owner      string `json:"owner,omitempty"`
	CreatedBy  string `json:"created_by,omitempty"`
	ModifiedBy string `json:"modified_by,omitempty"`
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
}

// ToJSON converts audit fields to their API representation.
func (a Audit) ToJSON() AuditJSON {
	return AuditJSON{
		Owner:      a.Owner,
		CreatedBy:  a.CreatedBy,
		ModifiedBy: a.ModifiedBy,
		CreatedAt:  FormatTime(a.CreatedAt),
		ModifiedAt: FormatTime(a.ModifiedAt),
	}
}

// ToJSON converts a Node to its API representation.
func (n *Node) ToJSON() NodeJSON {
	return NodeJSON{
		Kind:        n.Kind,
		ID:          n.ID,
		Name:        n.Name,
		Slug:        n.Slug,
		Description: n.Description,
		ParentID:    n.ParentID,
		AuditJSON:   n.Audit.ToJSON(),
	}
}

// DocJSON is the API-friendly representation of a Document.
type DocJSON struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
	AuditJSON
}

// ToJSON converts a Document to its API representation.
func (d *Document) ToJSON() DocJSON {
	return DocJSON{ID: d.ID, Title: d.Title, Slug: d.Slug, AuditJSON: d.Audit.ToJSON()}
}

// FileJSON is the API-friendly representation of a DataFile.
type FileJSON struct {
	ID              string `json:"id"`
	DocumentID      *int64 `json:"document_id"`
	FileName        string `json:"file_name"`
	MimeType        string `json:"mime_type"`
	Size            int64  `json:"size"`
	FileModified    string `json:"file_modified"`
	FormatType      string `json:"format_type"`
	SourceURL       string `json:"source_url,omitempty"`
	SourceRetrieved string `json:"source_retrieved,omitempty"`
	SourceLog       string `json:"source_log,omitempty"`
	AuditJSON
}

// ToJSON converts a DataFile to its API representation. The modification
// time keeps nanosecond precision.
func (f *DataFile) ToJSON() FileJSON {
	j := FileJSON{
		ID:           f.ID,
		DocumentID:   f.DocumentID,
		FileName:     f.FileName,
		MimeType:     f.MimeType,
		Size:         f.Size,
		FileModified: f.FileModified().Format(time.RFC3339Nano),
		FormatType:   f.FormatType.Label(),
		SourceURL:    f.SourceURL,
		SourceLog:    f.SourceLog,
		AuditJSON:    f.Audit.ToJSON(),
	}
	if f.SourceRetrieved != nil {
		j.SourceRetrieved = FormatTime(*f.SourceRetrieved)
	}
	return j
}

// FormatTime renders a unix timestamp as RFC3339 UTC.
func FormatTime(ts int64) string {
	return time.Unix(ts, 0).UTC().Format(time.RFC3339)
}

// MarshalJSON encodes a value with indentation for human-readable CLI output.
// Use this instead of json.Marshal when the output will be displayed to users.
func MarshalJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// WriteOptions configures a mutating operation.
type WriteOptions struct {
	Author  string // Recorded as owner/creator on insert and modifier on update
	At      int64  // Timestamp to stamp; 0 means now
	MaxName int    // 0 means no limit
	MaxSlug int    // 0 means no limit
	MaxLog  int    // 0 means no limit on provenance log growth
}

// now returns the timestamp a write should record.
func (o WriteOptions) now() int64 {
	if o.At != 0 {
		return o.At
	}
	return time.Now().Unix()
}

// Stats provides aggregate catalog statistics for operational visibility.
type Stats struct {
	Collections     int64 // Collection rows
	RootCollections int64 // Collections without a parent
	Terms           int64 // Term rows
	RootTerms       int64 // Terms without a parent
	Documents       int64 // Document rows
	Orphans         int64 // Documents with no collection membership
	Metadata        int64 // Metadata blobs
	Files           int64 // Data files
	UnlinkedFiles   int64 // Data files whose document was deleted
	Edges           int64 // Rows across all junction tables
}

