package catalog

import "github.com/jpl-au/darc/internal/store"

// NodeDetailJSON is the API-friendly representation of a NodeDetail.
type NodeDetailJSON struct {
	store.NodeJSON
	Parent    *Ref      `json:"parent"`
	Children  []Ref     `json:"children"`
	Documents []Ref     `json:"documents"`
	Related   []Ref     `json:"related,omitempty"`
	Warnings  []Warning `json:"warnings,omitempty"`
}

// ToJSON converts the detail to its API representation.
func (d *NodeDetail) ToJSON() any {
	return NodeDetailJSON{
		NodeJSON:  d.Node.ToJSON(),
		Parent:    d.Parent,
		Children:  d.Children,
		Documents: d.Documents,
		Related:   d.Related,
		Warnings:  d.Warnings,
	}
}

// DocumentDetailJSON is the API-friendly representation of a DocumentDetail.
// Metadata is null when the document has no metadata blob.
type DocumentDetailJSON struct {
	store.DocJSON
	Collections []Ref            `json:"collections"`
	Terms       []Ref            `json:"terms"`
	Related     []Ref            `json:"related"`
	Metadata    *string          `json:"metadata"`
	Files       []store.FileJSON `json:"files"`
	Warnings    []Warning        `json:"warnings,omitempty"`
}

// ToJSON converts the detail to its API representation.
func (d *DocumentDetail) ToJSON() any {
	j := DocumentDetailJSON{
		DocJSON:     d.Document.ToJSON(),
		Collections: d.Collections,
		Terms:       d.Terms,
		Related:     d.Related,
		Files:       make([]store.FileJSON, len(d.Files)),
		Warnings:    d.Warnings,
	}
	if d.Metadata != nil {
		j.Metadata = &d.Metadata.Payload
	}
	for i := range d.Files {
		j.Files[i] = d.Files[i].ToJSON()
	}
	return j
}

// ProvenanceJSON is always present in a file detail, even when empty.
type ProvenanceJSON struct {
	URL       string `json:"url"`
	Retrieved string `json:"retrieved"`
	Log       string `json:"log"`
}

// FileDetailJSON is the API-friendly representation of a FileDetail.
type FileDetailJSON struct {
	store.FileJSON
	Document   *Ref           `json:"document"`
	Unlinked   bool           `json:"unlinked"`
	Provenance ProvenanceJSON `json:"provenance"`
	Warnings   []Warning      `json:"warnings,omitempty"`
}

// ToJSON converts the detail to its API representation.
func (d *FileDetail) ToJSON() any {
	f := d.File.ToJSON()
	return FileDetailJSON{
		FileJSON: f,
		Document: d.Document,
		Unlinked: d.Document == nil,
		Provenance: ProvenanceJSON{
			URL:       f.SourceURL,
			Retrieved: f.SourceRetrieved,
			Log:       f.SourceLog,
		},
		Warnings: d.Warnings,
	}
}

// MetadataDetailJSON is the API-friendly representation of a MetadataDetail.
type MetadataDetailJSON struct {
	ID         int64     `json:"id"`
	DocumentID int64     `json:"document_id"`
	Payload    string    `json:"payload"`
	Document   *Ref      `json:"document"`
	Warnings   []Warning `json:"warnings,omitempty"`
}

// ToJSON converts the detail to its API representation.
func (d *MetadataDetail) ToJSON() any {
	return MetadataDetailJSON{
		ID:         d.Metadata.ID,
		DocumentID: d.Metadata.DocumentID,
		Payload:    d.Metadata.Payload,
		Document:   d.Document,
		Warnings:   d.Warnings,
	}
}
