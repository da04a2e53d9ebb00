// Package catalog provides the read-side extension: show, tree, ls, diff.
//
// These commands never write. Each command file is separated to isolate its
// flag handling and output formatting logic.

package catalog

import (
	"github.com/jpl-au/darc/extension"
	"github.com/jpl-au/darc/internal/config"
	"github.com/jpl-au/darc/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the catalog extension.
type Extension struct {
	svc service.Service
	cfg *config.Config
}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "catalog" - this extension handles lookups and listings.
func (e *Extension) Name() string { return "catalog" }

// Init connects to the shared service.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	e.cfg = ctx.Config()
	return nil
}

// Commands returns the read commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newShowCmd(),
		e.newTreeCmd(),
		e.newLsCmd(),
		e.newDiffCmd(),
	}
}

// MCPTools returns nil - read tools are provided by the internal/mcp package.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}
