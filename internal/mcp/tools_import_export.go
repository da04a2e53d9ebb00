// tools_import_export.go implements MCP tools for manifest import and export.
//
// Separated because these tools touch the filesystem, unlike the read tools
// that work purely with the database. They have different failure modes
// (permissions, missing files) and import is the only MCP path that writes.
//
// Design: Import supports dry run so an LLM can check every reference in a
// manifest resolves before committing. Export returns the manifest inline
// when no destination is given.

package mcp

import (
	"bytes"
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/darc/internal/exporter"
	"github.com/jpl-au/darc/internal/importer"
	"github.com/jpl-au/darc/internal/log"
)

// importManifest handles darc_import tool calls.
func (h *handlers) importManifest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}

	user := getString(req, "user", h.user)
	opts := importer.Options{DryRun: getBool(req, "dry_run", false)}

	var buf bytes.Buffer
	result, err := importer.Run(h.withUser(ctx, req), &buf, h.svc, path, opts)

	log.Event("mcp:import", "import").Author(user).Detail("source", path).Detail("documents", result.Documents).Detail("dry_run", opts.DryRun).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result)
}

// exportManifest handles darc_export tool calls.
func (h *handlers) exportManifest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}
	dest := getString(req, "dest", "")

	var buf bytes.Buffer
	result, err := exporter.Run(ctx, &buf, h.svc, dest, exporter.Options{Force: getBool(req, "force", false)})

	log.Event("mcp:export", "export").Author(h.user).Detail("dest", dest).Detail("documents", result.Documents).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if dest == "" {
		return mcp.NewToolResultText(buf.String()), nil
	}
	return jsonResult(result)
}
