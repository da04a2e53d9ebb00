// find.go implements the "darc search" command.
//
// Design: Matching is a plain substring test across collection names,
// document titles and term names. Case sensitivity defaults to the
// search.case_sensitive config key. Only an explicitly set flag overrides
// it, so --case-sensitive=false works against a case-sensitive config.

package search

import (
	"fmt"
	"io"

	"github.com/jpl-au/darc/cmd"
	"github.com/jpl-au/darc/extension"
	"github.com/jpl-au/darc/internal/find"
	"github.com/jpl-au/darc/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newSearchCmd() *cobra.Command {
	c := &cobra.Command{
		Use:     "search <query>",
		Aliases: []string{"find"},
		Short:   "Search names and titles",
		Long: `Search collection names, document titles and term names for a substring.

Results are grouped by kind; empty groups are omitted.`,
		Args: cobra.ExactArgs(1),
		RunE: e.runSearch,
	}
	c.Flags().Bool(extension.FlagCaseSensitive, false, "Respect case (default search.case_sensitive)")
	c.Flags().BoolP(extension.FlagCount, "c", false, "Only print the number of matches")
	return c
}

func (e *Extension) runSearch(c *cobra.Command, args []string) error {
	query := args[0]
	var opts find.Options
	opts.Count, _ = c.Flags().GetBool(extension.FlagCount)
	if c.Flags().Changed(extension.FlagCaseSensitive) {
		v, _ := c.Flags().GetBool(extension.FlagCaseSensitive)
		opts.CaseSensitive = &v
	}

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	result, err := find.Run(c.Context(), w, e.svc, query, opts)

	count := 0
	if result.SearchResult != nil {
		count = result.Total()
	}
	log.Event("search:search", "search").
		Author(cmd.User()).
		Detail("query", query).
		Detail("count", count).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("search %q: %w", query, err))
	}
	return cmd.PrintJSON(result.ToJSON())
}
