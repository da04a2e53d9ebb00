// db.go implements "darc db": list the catalogs in .darc with what each
// holds, and move a catalog between local and shared.
//
// db is storeless. Listing inspects each file directly, so it also shows
// catalogs other than the one --db selects, and .db files that are not
// catalogs at all.

package core

import (
	"fmt"
	"path/filepath"

	"github.com/jpl-au/darc/cmd"
	"github.com/jpl-au/darc/extension"
	"github.com/jpl-au/darc/internal/log"
	"github.com/jpl-au/darc/internal/repo"
	"github.com/jpl-au/darc/internal/store"
	"github.com/spf13/cobra"
)

func newDBCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "db [name]",
		Short: "List catalogs or mark one local or shared",
		Long: `List the catalogs in .darc with their contents, or change whether one
is committed.

  darc db                    # every catalog with its counts
  darc db archive            # one catalog
  darc db archive --local    # keep darc-archive.db out of git
  darc db archive --share    # commit it again
  darc db --dir /path        # catalogs of another project

Without a name, --local and --share act on the default catalog.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDB,
	}
	c.Flags().BoolP(extension.FlagLocal, "l", false, "Mark catalog as local")
	c.Flags().BoolP(extension.FlagShare, "s", false, "Mark catalog as shared")
	c.MarkFlagsMutuallyExclusive(extension.FlagLocal, extension.FlagShare)
	return c
}

func runDB(c *cobra.Command, args []string) error {
	local, _ := c.Flags().GetBool(extension.FlagLocal)
	share, _ := c.Flags().GetBool(extension.FlagShare)

	// repo wants the .darc directory itself; empty means discover it.
	dir := cmd.Dir()
	darcDir := ""
	if dir != "" {
		darcDir = filepath.Join(dir, repo.Dir)
	}

	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	switch {
	case local || share:
		action, mark, status := "ignore", repo.IgnoreDB, "local"
		if share {
			action, mark, status = "unignore", repo.UnignoreDB, "shared"
		}
		err := mark(name, darcDir)
		log.Event("core:db", action).Author(cmd.User()).Detail("db", name).Detail("dir", dir).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("db %s %q: %w", action, name, err))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]any{"file": repo.DBFileName(name), "local": local})
		}
		fmt.Fprintf(cmd.Out(), "%s marked as %s\n", repo.DBFileName(name), status)
		return nil
	}

	dbs, err := repo.ListDBs(c.Context(), darcDir)
	log.Event("core:db", "list").Author(cmd.User()).Detail("db", name).Detail("dir", dir).Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("db list: %w", err))
	}

	if len(args) > 0 {
		file := repo.DBFileName(name)
		var found []repo.DBInfo
		for _, db := range dbs {
			if db.File == file {
				found = append(found, db)
			}
		}
		if len(found) == 0 {
			return cmd.PrintJSONError(fmt.Errorf("db %q: %w", file, store.ErrNotFound))
		}
		dbs = found
	}

	if cmd.JSON() {
		return cmd.PrintJSON(dbs)
	}
	if len(dbs) == 0 {
		fmt.Fprintln(cmd.Out(), "No databases found")
		return nil
	}
	for _, db := range dbs {
		fmt.Fprintln(cmd.Out(), dbLine(db))
	}
	return nil
}

// dbLine renders one catalog as "<file>  <local|shared>  <summary>".
func dbLine(db repo.DBInfo) string {
	status := "shared"
	if db.Local {
		status = "local"
	}
	if db.Stats == nil {
		return fmt.Sprintf("%s  %s  (%s)", db.File, status, db.Problem)
	}
	st := db.Stats
	return fmt.Sprintf("%s  %s  %d collection(s), %d term(s), %d document(s), %d file(s)",
		db.File, status, st.Collections, st.Terms, st.Documents, st.Files)
}
