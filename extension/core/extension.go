// Package core provides the core extension for darc.
// It registers commands: init, config, serve, guide, stats, vacuum, db, version.
package core

import (
	"github.com/jpl-au/darc/extension"
	"github.com/jpl-au/darc/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension. svc is nil until Init runs,
// which only happens for commands that need the catalog.
type Extension struct {
	svc service.Service
}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.Storeless     = (*Extension)(nil)
)

// Name returns "core" - this extension provides fundamental darc commands.
func (e *Extension) Name() string { return "core" }

// Init keeps the shared service for stats and vacuum.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns all core CLI commands for repository management.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newInitCmd(),
		newConfigCmd(),
		newServeCmd(),
		newGuideCmd(),
		e.newStatsCmd(),
		e.newVacuumCmd(),
		newDBCmd(),
		newVersionCmd(),
	}
}

// MCPTools returns nil - the server registers its own read tools directly.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// NoStoreCommands returns commands that manage their own service lifecycle.
// serve: Long-running MCP server needs its own service lifecycle.
// db: Manages gitignore, doesn't need database connection.
// version: Displays build info, doesn't need database connection.
func (e *Extension) NoStoreCommands() []string {
	return []string{"serve", "db", "version"}
}
