// import.go implements the "darc import" command for loading manifests.
//
// Design: Each write commits on its own, so a failure part way through
// leaves earlier entities in place. --dry-run resolves every reference and
// opens every file without writing, which catches the common failures first.

package admin

import (
	"fmt"
	"io"

	"github.com/jpl-au/darc/cmd"
	"github.com/jpl-au/darc/extension"
	"github.com/jpl-au/darc/internal/importer"
	"github.com/jpl-au/darc/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newImportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "import <manifest.yaml>",
		Short: "Import a YAML catalog manifest",
		Long: `Import collections, terms, documents, metadata and data files from a manifest.

File paths in the manifest are relative to the manifest's directory.
See 'darc guide import' for the format.`,
		Args: cobra.ExactArgs(1),
		RunE: e.runImport,
	}
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Resolve references without writing")
	return c
}

func (e *Extension) runImport(c *cobra.Command, args []string) error {
	path := args[0]
	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	result, err := importer.Run(c.Context(), w, e.svc, path, importer.Options{DryRun: dryRun})

	log.Event("admin:import", "import").
		Author(cmd.User()).
		Detail("manifest", path).
		Detail("dry_run", dryRun).
		Detail("documents", result.Documents).
		Detail("files", result.Files).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("import %q: %w", path, err))
	}
	return cmd.PrintJSON(result)
}
