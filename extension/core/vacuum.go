// vacuum.go implements the "darc vacuum" command for database compaction.
//
// Separated from extension.go because vacuum rewrites the database file and
// needs confirmation prompts and dry-run support.
//
// Design: Catalog deletes are hard deletes, so there is nothing to purge;
// vacuum only returns freed pages to the filesystem. It runs on the shared
// service because rebuilding needs the same connection that holds the WAL.

package core

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jpl-au/darc/cmd"
	"github.com/jpl-au/darc/extension"
	"github.com/jpl-au/darc/internal/log"
	"github.com/jpl-au/darc/internal/vacuum"
	"github.com/spf13/cobra"
)

func (e *Extension) newVacuumCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "vacuum",
		Short: "Rebuild the database to reclaim space",
		Long: `Rebuild the catalog database, returning space freed by deletes.

Use --dry-run to print statistics without rebuilding.
Use --force to skip confirmation.`,
		RunE: e.runVacuum,
	}
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Show statistics only")
	return c
}

func (e *Extension) runVacuum(c *cobra.Command, _ []string) error {
	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)

	if !dryRun && !cmd.Force() && !cmd.JSON() {
		fmt.Fprint(cmd.Out(), "Rebuild the database now? Other darc processes must be idle. [y/N] ")
		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("reading confirmation: %w", err))
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(cmd.Out(), "Cancelled")
			return nil
		}
	}

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}
	result, err := vacuum.Run(c.Context(), w, e.svc, vacuum.Options{DryRun: dryRun})

	log.Event("core:vacuum", "vacuum").
		Author(cmd.User()).
		Detail("dry_run", dryRun).
		Detail("reclaimed", result.Reclaimed).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("vacuum: %w", err))
	}
	return cmd.PrintJSON(result)
}
