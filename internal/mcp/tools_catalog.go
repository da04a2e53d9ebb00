// tools_catalog.go implements MCP tools for reading the catalog structure.
//
// Separated from tools_search.go because these tools address entities
// directly by kind and key, while search and diff work across entities.
//
// Design: Detail views are returned as JSON by default so the LLM gets ids
// alongside names and can follow references with further darc_resolve calls.
// The text layout is available for when the assistant is quoting it to a user.

package mcp

import (
	"bytes"
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/darc/internal/format"
	"github.com/jpl-au/darc/internal/log"
	"github.com/jpl-au/darc/internal/ls"
	"github.com/jpl-au/darc/internal/store"
)

// resolve handles darc_resolve tool calls.
func (h *handlers) resolve(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}
	kind, res := kindParam(req)
	if res != nil {
		return res, nil
	}
	key, res := keyParam(req, "key")
	if res != nil {
		return res, nil
	}

	user := getString(req, "user", h.user)
	d, err := h.svc.Resolve(h.withUser(ctx, req), kind, key)

	log.Event("mcp:resolve", "read").Author(user).Kind(string(kind)).Key(key.String()).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if getBool(req, "text", false) {
		var buf bytes.Buffer
		if err := format.Detail(&buf, d); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(buf.String()), nil
	}
	return jsonResult(d.ToJSON())
}

// tree handles darc_tree tool calls.
func (h *handlers) tree(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}
	kind, res := kindParam(req)
	if res != nil {
		return res, nil
	}
	structured := getBool(req, "structured", false)
	keyStr := getString(req, "key", "")

	var text string
	var nodes any
	var err error
	switch {
	case keyStr != "" && structured:
		nodes, err = h.svc.Subtree(ctx, kind, store.ParseKey(keyStr))
	case keyStr != "":
		text, err = h.svc.RenderSubtree(ctx, kind, store.ParseKey(keyStr))
	case structured:
		nodes, err = h.svc.ForestNodes(ctx, kind)
	default:
		text, err = h.svc.Tree(ctx, kind)
	}

	log.Event("mcp:tree", "read").Author(h.user).Kind(string(kind)).Key(keyStr).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if structured {
		return jsonResult(nodes)
	}
	return mcp.NewToolResultText(text), nil
}

// list handles darc_list tool calls.
func (h *handlers) list(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}
	kind, res := kindParam(req)
	if res != nil {
		return res, nil
	}
	match := getString(req, "match", "")

	var buf bytes.Buffer
	r, err := ls.Run(ctx, &buf, h.svc, ls.Options{Kind: kind, Match: match})

	log.Event("mcp:list", "list").Author(h.user).Kind(string(kind)).Detail("match", match).Detail("count", r.Count()).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(r.ToJSON())
}

// stats handles darc_stats tool calls.
func (h *handlers) stats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // req unused
	if res := h.requireInit(); res != nil {
		return res, nil
	}
	s, err := h.svc.Stats(ctx)

	log.Event("mcp:stats", "read").Author(h.user).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s)
}
