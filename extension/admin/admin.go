// Package admin provides the write-side extension: import, export, file,
// relate, rm. These are the only commands that change the catalog; the
// lookup commands live in the catalog extension.
//
// Each command file is separated to isolate its flag handling. The MCP
// write tools are registered here too, so the server exposes exactly the
// writes the CLI does.

package admin

import (
	"github.com/jpl-au/darc/extension"
	"github.com/jpl-au/darc/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the admin extension.
type Extension struct {
	svc service.Service
}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.Writer        = (*Extension)(nil)
)

// Name returns "admin" - this extension handles catalog writes.
func (e *Extension) Name() string { return "admin" }

// Init connects to the shared service.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the write commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newImportCmd(),
		e.newExportCmd(),
		e.newFileCmd(),
		e.newRelateCmd(),
		e.newRmCmd(),
	}
}

// WriteCommands names the commands that stamp owner and author columns.
// export only reads, so it runs without a user.
func (e *Extension) WriteCommands() []string {
	return []string{"import", "file", "relate", "rm"}
}
