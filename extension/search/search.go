// Package search provides catalog discovery by substring.
// Registers commands: search (alias find).
package search

import (
	"github.com/jpl-au/darc/extension"
	"github.com/jpl-au/darc/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the search extension.
type Extension struct {
	svc service.Service
}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "search" - this extension provides discovery commands.
func (e *Extension) Name() string { return "search" }

// Init connects to the shared service for search operations.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the search command.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newSearchCmd(),
	}
}

// MCPTools returns nil - MCP search tools are in internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}
