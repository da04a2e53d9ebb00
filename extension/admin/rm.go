// rm.go implements the "darc rm" command for deleting catalog entities.
//
// Design: Deletes are permanent, so the command shows what will cascade
// (subtree size, files left unlinked) and asks for confirmation unless
// --force or -o json is given. --dry-run stops after the report.

package admin

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jpl-au/darc/cmd"
	"github.com/jpl-au/darc/extension"
	"github.com/jpl-au/darc/internal/log"
	"github.com/jpl-au/darc/internal/rm"
	"github.com/jpl-au/darc/internal/store"
	"github.com/spf13/cobra"
)

func (e *Extension) newRmCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "rm <kind> <id|slug>",
		Short: "Delete a catalog entity",
		Long: `Delete a collection, term, document, file or metadata blob.

Collections take their subtree with them. Terms leave their children as
roots. Documents take their metadata and leave their files unlinked.`,
		Args: cobra.ExactArgs(2),
		RunE: e.runRm,
	}
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Report what would be deleted")
	return c
}

func (e *Extension) runRm(c *cobra.Command, args []string) error {
	ctx := c.Context()
	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)

	kind, err := store.ParseKind(args[0])
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	key := store.ParseKey(args[1])

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	if !dryRun && !cmd.Force() && !cmd.JSON() {
		var preview bytes.Buffer
		if _, err := rm.Run(ctx, &preview, e.svc, key, rm.Options{Kind: kind, DryRun: true}); err != nil {
			return fmt.Errorf("rm %s %q: %w", kind, key, err)
		}
		fmt.Fprint(cmd.Out(), preview.String())
		fmt.Fprint(cmd.Out(), "Proceed? This cannot be undone. [y/N] ")
		response, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading confirmation: %w", err)
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(cmd.Out(), "Cancelled")
			return nil
		}
	}

	l := log.Event("admin:rm", "delete").
		Author(cmd.User()).
		Kind(string(kind)).
		Key(key.String()).
		Detail("dry_run", dryRun)

	result, err := rm.Run(ctx, w, e.svc, key, rm.Options{Kind: kind, DryRun: dryRun})
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(fmt.Errorf("rm %s %q: %w", kind, key, err))
	}

	l.Resolved(result.ID).
		Detail("subtree", result.Subtree).
		Detail("unlinked", len(result.Unlinked)).
		Write(nil)

	return cmd.PrintJSON(result)
}
