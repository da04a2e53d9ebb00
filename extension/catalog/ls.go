// ls.go implements the "darc ls" command for flat listings.

package catalog

import (
	"fmt"
	"io"

	"github.com/jpl-au/darc/cmd"
	"github.com/jpl-au/darc/extension"
	"github.com/jpl-au/darc/internal/log"
	"github.com/jpl-au/darc/internal/ls"
	"github.com/jpl-au/darc/internal/store"
	"github.com/spf13/cobra"
)

func (e *Extension) newLsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "ls <kind>",
		Short: "List entities of a kind",
		Long: `List every collection, term, document, file or metadata blob as "<id> - <title>".

Examples:
  darc ls collections
  darc ls documents --match 'q? *' --sort title
  darc ls files -l
  darc ls terms --ids`,
		Args: cobra.ExactArgs(1),
		RunE: e.runLs,
	}
	c.Flags().StringP(extension.FlagMatch, "m", "", "Glob filter on titles (*, ?, [abc], {a,b})")
	c.Flags().Bool(extension.FlagCaseSensitive, false, "Glob matching respects case (default search.case_sensitive)")
	c.Flags().BoolP(extension.FlagLong, "l", false, "Aligned columns with header")
	c.Flags().Bool(extension.FlagIDs, false, "Print ids only")
	c.Flags().StringP(extension.FlagSort, "s", "", "Sort by: title, id")
	c.Flags().BoolP(extension.FlagReverse, "r", false, "Reverse sort order")
	return c
}

func (e *Extension) runLs(c *cobra.Command, args []string) error {
	kind, err := store.ParseKind(args[0])
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	opts := ls.Options{Kind: kind}
	opts.Match, _ = c.Flags().GetString(extension.FlagMatch)
	if c.Flags().Changed(extension.FlagCaseSensitive) {
		opts.CaseSensitive, _ = c.Flags().GetBool(extension.FlagCaseSensitive)
	} else if e.cfg != nil {
		opts.CaseSensitive = e.cfg.CaseSensitive()
	}
	opts.Long, _ = c.Flags().GetBool(extension.FlagLong)
	opts.IDsOnly, _ = c.Flags().GetBool(extension.FlagIDs)
	opts.Reverse, _ = c.Flags().GetBool(extension.FlagReverse)

	sortBy, _ := c.Flags().GetString(extension.FlagSort)
	if opts.Sort, err = ls.ParseSort(sortBy); err != nil {
		return cmd.PrintJSONError(err)
	}

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	result, err := ls.Run(c.Context(), w, e.svc, opts)

	log.Event("catalog:ls", "list").
		Author(cmd.User()).
		Kind(string(kind)).
		Detail("match", opts.Match).
		Detail("count", result.Count()).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("ls %s: %w", kind, err))
	}
	return cmd.PrintJSON(result.ToJSON())
}
