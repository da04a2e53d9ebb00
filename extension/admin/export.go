// export.go implements the "darc export" command for writing manifests.

package admin

import (
	"errors"
	"fmt"
	"io"

	"github.com/jpl-au/darc/cmd"
	"github.com/jpl-au/darc/internal/exporter"
	"github.com/jpl-au/darc/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [dest.yaml|-]",
		Short: "Export the catalog as a YAML manifest",
		Long: `Write the whole catalog as a manifest that "darc import" can load.

Without a destination, or with "-", the manifest goes to stdout.
Use --force to overwrite an existing file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: e.runExport,
	}
}

func (e *Extension) runExport(c *cobra.Command, args []string) error {
	dst := ""
	if len(args) > 0 {
		dst = args[0]
	}
	if cmd.JSON() && (dst == "" || dst == "-") {
		return cmd.PrintJSONError(errors.New("export with -o json needs a destination file"))
	}

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	result, err := exporter.Run(c.Context(), w, e.svc, dst, exporter.Options{Force: cmd.Force()})

	log.Event("admin:export", "export").
		Author(cmd.User()).
		Detail("dest", dst).
		Detail("documents", result.Documents).
		Detail("warnings", len(result.Warnings)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("export: %w", err))
	}
	return cmd.PrintJSON(result)
}
