// markdown.go renders detail views as markdown.
//
// Separated from format.go because markdown is only used on a terminal,
// where the caller hands it to glamour. Pipes and redirects get the plain
// text layout, which is stable for scripts and for diffing.

package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/jpl-au/darc/internal/catalog"
	"github.com/jpl-au/darc/internal/store"
)

// Markdown returns a markdown rendition of a detail view.
func Markdown(d catalog.Detail) string {
	var b strings.Builder
	switch d := d.(type) {
	case *catalog.NodeDetail:
		n := d.Node
		fmt.Fprintf(&b, "# %s: %s\n\n", n.Kind.Label(), n.Name)
		fmt.Fprintf(&b, "`%d` · `%s`\n\n", n.ID, n.Slug)
		if n.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", n.Description)
		}
		fmt.Fprintf(&b, "**Parent:** %s\n\n", ref(d.Parent))
		section(&b, "Children", d.Children)
		section(&b, "Documents", d.Documents)
		if n.Kind == store.KindCollection {
			section(&b, "Related", d.Related)
		}
		auditTable(&b, n.Audit)
	case *catalog.DocumentDetail:
		doc := d.Document
		fmt.Fprintf(&b, "# Document: %s\n\n", doc.Title)
		fmt.Fprintf(&b, "`%d` · `%s`\n\n", doc.ID, doc.Slug)
		section(&b, "Collections", d.Collections)
		section(&b, "Terms", d.Terms)
		section(&b, "Related", d.Related)
		if len(d.Files) > 0 {
			b.WriteString("## Files\n\n| ID | Name | Size | Format |\n|---|---|---|---|\n")
			for _, f := range d.Files {
				fmt.Fprintf(&b, "| `%s` | %s | %s | %s |\n", f.ID, f.FileName, humanSize(f.Size), f.FormatType.Label())
			}
			b.WriteString("\n")
		}
		if d.Metadata != nil {
			fmt.Fprintf(&b, "## XMP Metadata\n\n```xml\n%s\n```\n\n", d.Metadata.Payload)
		}
		auditTable(&b, doc.Audit)
	case *catalog.FileDetail:
		f := d.File
		fmt.Fprintf(&b, "# DataFile: %s\n\n", f.FileName)
		fmt.Fprintf(&b, "`%s`\n\n", f.ID)
		if d.Document == nil {
			b.WriteString("**Document:** _unlinked_\n\n")
		} else {
			fmt.Fprintf(&b, "**Document:** %s\n\n", ref(d.Document))
		}
		fmt.Fprintf(&b, "| MIME type | Size | Modified | Format |\n|---|---|---|---|\n| %s | %s | %s | %s |\n\n",
			f.MimeType, humanSize(f.Size), f.FileModified().Format(time.RFC3339Nano), f.FormatType.Label())
		b.WriteString("## Provenance\n\n")
		fmt.Fprintf(&b, "- **Source URL:** %s\n", orNone(f.SourceURL))
		retrieved := none
		if f.SourceRetrieved != nil {
			retrieved = store.FormatTime(*f.SourceRetrieved)
		}
		fmt.Fprintf(&b, "- **Retrieved:** %s\n\n", retrieved)
		if f.SourceLog != "" {
			fmt.Fprintf(&b, "```\n%s\n```\n\n", f.SourceLog)
		}
		auditTable(&b, f.Audit)
	case *catalog.MetadataDetail:
		fmt.Fprintf(&b, "# DocumentMetadata: %d\n\n", d.Metadata.ID)
		fmt.Fprintf(&b, "**Document:** %s\n\n", ref(d.Document))
		fmt.Fprintf(&b, "```xml\n%s\n```\n", d.Metadata.Payload)
	}
	for _, w := range d.Warns() {
		fmt.Fprintf(&b, "> **warning** `%s`: %s\n\n", w.Code, w.Message)
	}
	return b.String()
}

func section(b *strings.Builder, title string, refs []catalog.Ref) {
	fmt.Fprintf(b, "## %s\n\n", title)
	if len(refs) == 0 {
		b.WriteString("_none_\n\n")
		return
	}
	for _, r := range refs {
		fmt.Fprintf(b, "- %s (`%d`)\n", r.Name, r.ID)
	}
	b.WriteString("\n")
}

func auditTable(b *strings.Builder, a store.Audit) {
	b.WriteString("| Owner | Created by | Modified by | Created | Modified |\n|---|---|---|---|---|\n")
	fmt.Fprintf(b, "| %s | %s | %s | %s | %s |\n",
		a.Owner, a.CreatedBy, a.ModifiedBy, store.FormatTime(a.CreatedAt), store.FormatTime(a.ModifiedAt))
}
