// show.go implements the "darc show" command for detail views.
//
// Separated from catalog.go to isolate output selection: glamour-rendered
// markdown on a terminal, the plain layout through a pipe, JSON with -o json.

package catalog

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/jpl-au/darc/cmd"
	"github.com/jpl-au/darc/extension"
	"github.com/jpl-au/darc/internal/log"
	"github.com/jpl-au/darc/internal/show"
	"github.com/jpl-au/darc/internal/store"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (e *Extension) newShowCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "show <kind> <id|slug>",
		Short: "Show one catalog entity",
		Long: `Show the detail view of a collection, term, document, file or metadata blob.

Examples:
  darc show collection reports
  darc show term 4 --tree
  darc show document q1-summary -o json
  darc show file 5f1c8a4e-2b7d-4c1e-9a3f-6d2e8b0c4a11`,
		Args: cobra.ExactArgs(2),
		RunE: e.runShow,
	}
	c.Flags().BoolP(extension.FlagTree, "t", false, "Append the subtree (collections and terms)")
	c.Flags().Bool(extension.FlagRaw, false, "Plain layout without markdown rendering")
	return c
}

func (e *Extension) runShow(c *cobra.Command, args []string) error {
	ctx := c.Context()
	tree, _ := c.Flags().GetBool(extension.FlagTree)
	raw, _ := c.Flags().GetBool(extension.FlagRaw)

	kind, err := store.ParseKind(args[0])
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	key := store.ParseKey(args[1])
	opts := show.Options{Kind: kind, Tree: tree}

	var result show.Result
	defer func() {
		b := log.Event("catalog:show", "read").Author(cmd.User()).Kind(string(kind)).Key(key.String())
		if result.Detail != nil {
			b = b.Resolved(result.Detail.EntityID())
		}
		b.Write(err)
	}()

	if cmd.JSON() {
		result, err = show.Run(ctx, io.Discard, e.svc, key, opts)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("show %s %q: %w", kind, key, err))
		}
		return cmd.PrintJSON(result.ToJSON())
	}

	if !raw && term.IsTerminal(int(os.Stdout.Fd())) {
		opts.Markdown = true
		var buf bytes.Buffer
		result, err = show.Run(ctx, &buf, e.svc, key, opts)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("show %s %q: %w", kind, key, err))
		}
		rendered, renderErr := glamour.Render(buf.String(), "dark")
		if renderErr == nil {
			fmt.Fprint(cmd.Out(), rendered)
			return nil
		}
		fmt.Fprint(cmd.Out(), buf.String())
		return nil
	}

	result, err = show.Run(ctx, cmd.Out(), e.svc, key, opts)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("show %s %q: %w", kind, key, err))
	}
	return nil
}
