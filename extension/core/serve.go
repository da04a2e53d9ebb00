// serve.go implements the "darc serve" command for MCP server operation.
//
// Separated from extension.go because serve has unique lifecycle requirements.
// Unlike other commands that run and exit, serve blocks indefinitely handling
// MCP requests over stdio.
//
// Design: Serve is a NoStoreCommand - it manages its own service lifecycle
// instead of using the shared service from root.go, so it can start before
// a catalog exists and offer darc_init.

package core

import (
	"github.com/jpl-au/darc/cmd"
	"github.com/jpl-au/darc/internal/mcp"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio for LLM integration.

Lookups run as --user (or user.name from config) unless a tool call
supplies its own user argument.

Use --db to serve a specific database:
  darc serve --db archive    # serve darc-archive.db`,
		RunE: runServe,
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	return mcp.Serve(cmd.DB(), cmd.User())
}
