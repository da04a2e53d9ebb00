// relate.go implements the "darc relate" command.

package admin

import (
	"fmt"
	"io"

	"github.com/jpl-au/darc/cmd"
	"github.com/jpl-au/darc/extension"
	"github.com/jpl-au/darc/internal/log"
	"github.com/jpl-au/darc/internal/relate"
	"github.com/jpl-au/darc/internal/store"
	"github.com/spf13/cobra"
)

func (e *Extension) newRelateCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "relate <edge> <a> <b>",
		Short: "Link two entities",
		Long: `Link or unlink two entities through an edge.

Edges:
  related             document <-> document (symmetric)
  collection_related  collection <-> collection (symmetric)
  collections         document -> collection
  terms               document -> term

Examples:
  darc relate related deed will
  darc relate terms deed places
  darc relate collections deed drafts --remove`,
		Args: cobra.ExactArgs(3),
		RunE: e.runRelate,
	}
	c.Flags().Bool(extension.FlagRemove, false, "Unlink instead of link")
	return c
}

func (e *Extension) runRelate(c *cobra.Command, args []string) error {
	edge, err := store.ParseEdge(args[0])
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	a, b := store.ParseKey(args[1]), store.ParseKey(args[2])
	remove, _ := c.Flags().GetBool(extension.FlagRemove)

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	result, err := relate.Run(c.Context(), w, e.svc, edge, a, b, relate.Options{Remove: remove})

	action := "relate"
	if remove {
		action = "unrelate"
	}
	log.Event("admin:relate", action).
		Author(cmd.User()).
		Key(a.String()).
		Detail("edge", string(edge)).
		Detail("other", b.String()).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("relate %s %q %q: %w", edge, a, b, err))
	}
	return cmd.PrintJSON(result)
}
