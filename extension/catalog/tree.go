// tree.go implements the "darc tree" command.
//
// Design: The indent unit comes from config (render.indent) and can be
// overridden per call with --indent. The override is applied to the shared
// service for the lifetime of the process, which is one command.

package catalog

import (
	"fmt"

	"github.com/jpl-au/darc/cmd"
	"github.com/jpl-au/darc/extension"
	"github.com/jpl-au/darc/internal/log"
	"github.com/jpl-au/darc/internal/store"
	"github.com/spf13/cobra"
)

func (e *Extension) newTreeCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "tree <collection|term> [id|slug]",
		Short: "Render collection or term hierarchies",
		Long: `Render hierarchies depth first with children indented below their parent.

Without a key every root is rendered, separated by a blank line.

Examples:
  darc tree collection
  darc tree term places
  darc tree collection --indent "  "`,
		Args: cobra.RangeArgs(1, 2),
		RunE: e.runTree,
	}
	c.Flags().String(extension.FlagIndent, "", "Indent unit (default render.indent, a tab)")
	return c
}

func (e *Extension) runTree(c *cobra.Command, args []string) error {
	ctx := c.Context()
	kind, err := store.ParseKind(args[0])
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	if indent, _ := c.Flags().GetString(extension.FlagIndent); c.Flags().Changed(extension.FlagIndent) {
		e.svc.SetIndent(indent)
	}

	b := log.Event("catalog:tree", "read").Author(cmd.User()).Kind(string(kind))

	if len(args) == 2 {
		key := store.ParseKey(args[1])
		b = b.Key(key.String())
		if cmd.JSON() {
			node, err := e.svc.Subtree(ctx, kind, key)
			b.Write(err)
			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("tree %s %q: %w", kind, key, err))
			}
			return cmd.PrintJSON(node)
		}
		text, err := e.svc.RenderSubtree(ctx, kind, key)
		b.Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("tree %s %q: %w", kind, key, err))
		}
		fmt.Fprintln(cmd.Out(), text)
		return nil
	}

	if cmd.JSON() {
		nodes, err := e.svc.ForestNodes(ctx, kind)
		b.Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("tree %s: %w", kind, err))
		}
		return cmd.PrintJSON(nodes)
	}
	text, err := e.svc.Tree(ctx, kind)
	b.Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("tree %s: %w", kind, err))
	}
	if text != "" {
		fmt.Fprintln(cmd.Out(), text)
	}
	return nil
}
