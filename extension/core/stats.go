// stats.go implements the "darc stats" command.

package core

import (
	"fmt"

	"github.com/jpl-au/darc/cmd"
	"github.com/jpl-au/darc/internal/format"
	"github.com/jpl-au/darc/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show catalog statistics",
		Long:  `Counts per kind, root nodes, documents outside any collection, unlinked files and database size.`,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			st, err := e.svc.Stats(c.Context())

			log.Event("core:stats", "read").Author(cmd.User()).Write(err)

			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("stats: %w", err))
			}
			if cmd.JSON() {
				return cmd.PrintJSON(st)
			}
			return format.Stats(cmd.Out(), st)
		},
	}
}
