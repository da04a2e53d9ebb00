// tools_init.go implements the MCP tool for initialising a new catalog.
//
// This tool works without an existing catalog, allowing LLMs to bootstrap
// a new darc repository. Other tools require initialisation first.

package mcp

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/darc/internal/catalog"
	"github.com/jpl-au/darc/internal/log"
)

// initCatalog handles darc_init tool calls.
func (h *handlers) initCatalog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	if h.svc != nil {
		return mcp.NewToolResultError("catalog already initialised"), nil
	}

	local := getBool(req, "local", false)

	created, err := catalog.Create(false, h.db, local, "")

	log.Event("mcp:init", "init").Author(h.user).Detail("local", local).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	svc, err := catalog.New(h.db)
	if err != nil {
		return mcp.NewToolResultError("init succeeded but failed to open catalog: " + err.Error()), nil
	}
	h.svc = svc

	slog.Info("catalog initialised", "local", local)

	msg := "catalog initialised at " + created.Path + "\ntables: " + strings.Join(created.Tables, ", ")
	if local {
		msg += "\nlocal: gitignored"
	}
	return mcp.NewToolResultText(msg), nil
}
