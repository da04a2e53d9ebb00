// diff.go implements the "darc diff" command for comparing two entities.
//
// Design: Both sides are rendered with the plain detail layout and compared
// line by line, so anything visible in "darc show" shows up in the diff.

package catalog

import (
	"fmt"
	"io"

	"github.com/jpl-au/darc/cmd"
	"github.com/jpl-au/darc/extension"
	"github.com/jpl-au/darc/internal/diff"
	"github.com/jpl-au/darc/internal/log"
	"github.com/jpl-au/darc/internal/store"
	"github.com/spf13/cobra"
)

func (e *Extension) newDiffCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "diff <kind> <a> <b>",
		Short: "Compare two entities of the same kind",
		Long: `Show a line diff between the detail views of two entities.

Examples:
  darc diff collection 2020-reports 2021-reports
  darc diff file <uuid> <uuid> --no-colour`,
		Args: cobra.ExactArgs(3),
		RunE: e.runDiff,
	}
	c.Flags().Bool(extension.FlagNoColour, false, "Output without colour")
	return c
}

func (e *Extension) runDiff(c *cobra.Command, args []string) error {
	kind, err := store.ParseKind(args[0])
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	a, b := store.ParseKey(args[1]), store.ParseKey(args[2])
	plain, _ := c.Flags().GetBool(extension.FlagNoColour)

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	r, err := diff.Run(c.Context(), w, e.svc, a, b, diff.Options{Kind: kind, Colour: !plain})

	log.Event("catalog:diff", "diff").
		Author(cmd.User()).
		Kind(string(kind)).
		Key(a.String()).
		Detail("other", b.String()).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("diff %s %q %q: %w", kind, a, b, err))
	}

	return cmd.PrintJSON(map[string]any{
		"old":  r.Old,
		"new":  r.New,
		"same": r.Same(),
		"diff": r.Diff,
	})
}
