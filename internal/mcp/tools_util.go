// tools_util.go provides helper functions for MCP tool parameter extraction.
//
// Separated to centralise the boilerplate of extracting typed parameters from
// MCP's generic argument map. These helpers provide safe defaults when
// optional parameters are missing.
//
// Design: We use permissive extraction (return default on error) rather than
// strict validation because an LLM omitting an optional parameter shouldn't
// cause cryptic errors. Required parameters still fail with a named message.

package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/darc/internal/catalog"
	"github.com/jpl-au/darc/internal/store"
)

// getString extracts a string parameter, returning def if it is missing or
// not a string.
func getString(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

// getBool extracts a boolean parameter. A string "true" is not accepted;
// JSON booleans decode as Go bool values.
func getBool(req mcp.CallToolRequest, name string, def bool) bool {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return def
	}
	if v, ok := args[name].(bool); ok {
		return v
	}
	return def
}

// getOptBool is getBool for parameters where absence means "use config".
func getOptBool(req mcp.CallToolRequest, name string) *bool {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return nil
	}
	if v, ok := args[name].(bool); ok {
		return &v
	}
	return nil
}

// kindParam extracts and parses a required kind parameter.
func kindParam(req mcp.CallToolRequest) (store.Kind, *mcp.CallToolResult) {
	s, err := req.RequireString("kind")
	if err != nil {
		return "", mcp.NewToolResultError("kind is required")
	}
	k, err := store.ParseKind(s)
	if err != nil {
		return "", mcp.NewToolResultError(err.Error())
	}
	return k, nil
}

// keyParam extracts a required id-or-slug parameter.
func keyParam(req mcp.CallToolRequest, name string) (store.Key, *mcp.CallToolResult) {
	s, err := req.RequireString(name)
	if err != nil || s == "" {
		return store.Key{}, mcp.NewToolResultError(name + " is required")
	}
	return store.ParseKey(s), nil
}

// withUser attaches the caller's identity, falling back to the server's.
func (h *handlers) withUser(ctx context.Context, req mcp.CallToolRequest) context.Context {
	return catalog.WithUser(ctx, getString(req, "user", h.user))
}

// jsonResult serialises v as pretty-printed JSON in a text result.
//
// Marshal errors become tool error results rather than Go errors, keeping
// all failures on MCP's error result channel where the LLM can read them.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := store.MarshalJSON(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
