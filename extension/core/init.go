// init.go implements "darc init", which creates an empty catalog.
//
// init runs before any catalog exists, so it is storeless and opens the new
// database itself. It writes no config.

package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jpl-au/darc/cmd"
	"github.com/jpl-au/darc/extension"
	"github.com/jpl-au/darc/internal/catalog"
	"github.com/jpl-au/darc/internal/log"
	"github.com/jpl-au/darc/internal/repo"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "init",
		Short: "Initialise a new darc catalog",
		Long: `Create an empty catalog in .darc/darc.db, with the collection, term,
document, metadata and data file tables.

  darc init                      # .darc/darc.db
  darc init --db archive         # a second catalog, .darc/darc-archive.db
  darc init --db drafts --local  # kept out of git
  darc init --dir ../papers      # in another project
  darc init --force              # replace an existing catalog, emptying it

Set user.name with "darc config" before importing; writes need an owner.`,
		RunE: runInit,
	}
	c.Flags().BoolP(extension.FlagLocal, "l", false, "Keep the catalog out of git")
	return c
}

func runInit(c *cobra.Command, _ []string) error {
	local, _ := c.Flags().GetBool(extension.FlagLocal)
	db, dir := cmd.DB(), cmd.Dir()

	// --local edits this project's .gitignore, which says nothing about a
	// catalog created under --dir.
	if local && dir != "" {
		return cmd.PrintJSONError(errors.New("cannot use --local with --dir: mark the catalog local from that project with 'darc db --local'"))
	}

	created, err := catalog.Create(cmd.Force(), db, local, dir)

	l := log.Event("core:init", "init").
		Author(cmd.User()).
		Detail("db", db).
		Detail("dir", dir).
		Detail("local", local)
	if created != nil {
		l = l.Detail("replaced", created.Replaced).Detail("tables", len(created.Tables))
	}
	l.Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("init: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(created)
	}

	loc := repo.Dir + "/" + repo.DBFileName(db)
	if dir != "" {
		loc = dir + "/" + loc
	}
	verb := "Initialised"
	if created.Replaced {
		verb = "Reinitialised"
	}
	fmt.Fprintf(cmd.Out(), "%s darc catalog in %s\n", verb, loc)
	fmt.Fprintf(cmd.Out(), "Tables: %s\n", strings.Join(created.Tables, ", "))
	if local {
		fmt.Fprintln(cmd.Out(), "Local: listed in .darc/.gitignore")
	}
	return nil
}
