// tools_search.go implements MCP tools that work across entities.
//
// Separated from tools_catalog.go because search and diff take free text or
// pairs of keys rather than addressing a single entity.

package mcp

import (
	"context"
	"io"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/darc/internal/catalog"
	"github.com/jpl-au/darc/internal/diff"
	"github.com/jpl-au/darc/internal/log"
)

// search handles darc_search tool calls.
func (h *handlers) search(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query is required"), nil //nolint:nilerr
	}

	r, err := h.svc.Search(ctx, query, catalog.SearchOptions{CaseSensitive: getOptBool(req, "case_sensitive")})

	count := 0
	if r != nil {
		count = r.Total()
	}
	log.Event("mcp:search", "search").Author(h.user).Detail("query", query).Detail("count", count).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(r)
}

// diff handles darc_diff tool calls.
func (h *handlers) diff(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}
	kind, res := kindParam(req)
	if res != nil {
		return res, nil
	}
	a, res := keyParam(req, "a")
	if res != nil {
		return res, nil
	}
	b, res := keyParam(req, "b")
	if res != nil {
		return res, nil
	}

	user := getString(req, "user", h.user)
	r, err := diff.Run(h.withUser(ctx, req), io.Discard, h.svc, a, b, diff.Options{Kind: kind})

	log.Event("mcp:diff", "diff").Author(user).Kind(string(kind)).Key(a.String()).Detail("other", b.String()).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"old":  r.Old,
		"new":  r.New,
		"same": r.Same(),
		"diff": r.Diff,
	})
}
