// file.go implements "darc file" and its add, log and link subcommands.
//
// Design: add reads only what it needs to describe the file (type sniffing
// and a stat); the bytes stay where they are and the catalog records where
// they came from.

package admin

import (
	"fmt"
	"io"
	"strings"

	"github.com/jpl-au/darc/cmd"
	"github.com/jpl-au/darc/extension"
	"github.com/jpl-au/darc/internal/ingest"
	"github.com/jpl-au/darc/internal/log"
	"github.com/jpl-au/darc/internal/store"
	"github.com/spf13/cobra"
)

func (e *Extension) newFileCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "file",
		Short: "Register and manage data files",
		Long: `Register local files, append provenance and attach files to documents.

  darc file add scan.pdf --document deed --format scanned
  darc file log <uuid> "re-scanned at 600dpi"
  darc file link <uuid> will
  darc file link <uuid>          # detach from its document`,
	}
	c.AddCommand(e.newFileAddCmd(), e.newFileLogCmd(), e.newFileLinkCmd())
	return c
}

func (e *Extension) newFileAddCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "add <path>",
		Short: "Register a local file",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runFileAdd,
	}
	c.Flags().StringP(extension.FlagDocument, "d", "", "Document to attach to (id or slug)")
	c.Flags().StringP(extension.FlagFormat, "f", "", "Format: native, scanned, working (default native)")
	c.Flags().String(extension.FlagSource, "", "URL the file was retrieved from")
	c.Flags().String(extension.FlagName, "", "Record a different file name")
	return c
}

func (e *Extension) runFileAdd(c *cobra.Command, args []string) error {
	path := args[0]
	var opts ingest.Options
	if doc, _ := c.Flags().GetString(extension.FlagDocument); doc != "" {
		k := store.ParseKey(doc)
		opts.Document = &k
	}
	if f, _ := c.Flags().GetString(extension.FlagFormat); f != "" {
		ft, err := store.ParseFormatType(f)
		if err != nil {
			return cmd.PrintJSONError(err)
		}
		opts.Format = ft
	}
	opts.SourceURL, _ = c.Flags().GetString(extension.FlagSource)
	opts.Name, _ = c.Flags().GetString(extension.FlagName)

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	result, err := ingest.Run(c.Context(), w, e.svc, path, opts)

	l := log.Event("admin:file", "create").Author(cmd.User()).Kind(string(store.KindDataFile)).Detail("path", path)
	if result.File != nil {
		l = l.Resolved(result.File.ID)
	}
	l.Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("file add %q: %w", path, err))
	}
	return cmd.PrintJSON(result.ToJSON())
}

func (e *Extension) newFileLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log <uuid> <line...>",
		Short: "Append a line to a file's provenance log",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			id, line := args[0], strings.Join(args[1:], " ")

			w := cmd.Out()
			if cmd.JSON() {
				w = io.Discard
			}
			err := ingest.Log(c.Context(), w, e.svc, id, line)

			log.Event("admin:file", "log").Author(cmd.User()).Kind(string(store.KindDataFile)).Key(id).Write(err)

			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("file log %q: %w", id, err))
			}
			return cmd.PrintJSON(map[string]string{"id": id, "logged": line})
		},
	}
}

func (e *Extension) newFileLinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "link <uuid> [document]",
		Short: "Attach a file to a document, or detach it",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(c *cobra.Command, args []string) error {
			id := args[0]
			var doc *store.Key
			if len(args) == 2 {
				k := store.ParseKey(args[1])
				doc = &k
			}

			w := cmd.Out()
			if cmd.JSON() {
				w = io.Discard
			}
			err := ingest.Link(c.Context(), w, e.svc, id, doc)

			l := log.Event("admin:file", "link").Author(cmd.User()).Kind(string(store.KindDataFile)).Key(id)
			if doc != nil {
				l = l.Detail("document", doc.String())
			}
			l.Write(err)

			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("file link %q: %w", id, err))
			}
			return cmd.PrintJSON(map[string]any{"id": id, "linked": doc != nil})
		},
	}
}
