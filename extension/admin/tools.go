// tools.go registers the admin writes as MCP tools.
//
// Design: Tool output reuses the CLI's result structs so an assistant sees
// the same fields as "darc ... -o json". The caller's identity arrives on
// ctx; the server attaches it before the handler runs.

package admin

import (
	"bytes"
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/darc/extension"
	"github.com/jpl-au/darc/internal/catalog"
	"github.com/jpl-au/darc/internal/ingest"
	"github.com/jpl-au/darc/internal/log"
	"github.com/jpl-au/darc/internal/relate"
	"github.com/jpl-au/darc/internal/rm"
	"github.com/jpl-au/darc/internal/store"
)

// MCPTools exposes rm, relate and the file log and link operations.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{
		{
			Tool: mcp.NewTool("darc_rm",
				mcp.WithDescription("Delete a catalog entity. Collections take their subtree; terms re-root their children; documents unlink their files."),
				mcp.WithString("kind", mcp.Required(), mcp.Description("collection, term, document, file or metadata")),
				mcp.WithString("key", mcp.Required(), mcp.Description("Numeric id, file UUID, or slug")),
				mcp.WithBoolean("dry_run", mcp.Description("Report consequences without deleting")),
				mcp.WithString("user", mcp.Description("Identity recorded in the audit log")),
			),
			Handler: removeTool,
		},
		{
			Tool: mcp.NewTool("darc_relate",
				mcp.WithDescription("Link or unlink two entities through an edge: related, collection_related, collections or terms"),
				mcp.WithString("edge", mcp.Required(), mcp.Description("Edge name")),
				mcp.WithString("a", mcp.Required(), mcp.Description("Owning end (id or slug)")),
				mcp.WithString("b", mcp.Required(), mcp.Description("Target end (id or slug)")),
				mcp.WithBoolean("remove", mcp.Description("Unlink instead of link")),
				mcp.WithString("user", mcp.Description("Identity recorded as modifier")),
			),
			Handler: relateTool,
		},
		{
			Tool: mcp.NewTool("darc_file_log",
				mcp.WithDescription("Append a line to a data file's provenance log"),
				mcp.WithString("id", mcp.Required(), mcp.Description("File UUID")),
				mcp.WithString("line", mcp.Required(), mcp.Description("Text to append")),
				mcp.WithString("user", mcp.Description("Identity recorded as modifier")),
			),
			Handler: fileLogTool,
		},
		{
			Tool: mcp.NewTool("darc_file_link",
				mcp.WithDescription("Attach a data file to a document, or detach it when document is empty"),
				mcp.WithString("id", mcp.Required(), mcp.Description("File UUID")),
				mcp.WithString("document", mcp.Description("Document id or slug")),
				mcp.WithString("user", mcp.Description("Identity recorded as modifier")),
			),
			Handler: fileLinkTool,
		},
	}
}

// required returns a named string argument or an error result.
func required(req mcp.CallToolRequest, name string) (string, *mcp.CallToolResult) {
	v, err := req.RequireString(name)
	if err != nil || v == "" {
		return "", mcp.NewToolResultError(name + " is required")
	}
	return v, nil
}

// flag returns a boolean argument, false when absent.
func flag(req mcp.CallToolRequest, name string) bool {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return false
	}
	v, _ := args[name].(bool)
	return v
}

// actor returns the identity the server attached to ctx.
func actor(ctx context.Context) string {
	u, _ := catalog.UserFrom(ctx)
	return u
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := store.MarshalJSON(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func removeTool(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	k, errRes := required(req, "kind")
	if errRes != nil {
		return errRes, nil
	}
	kind, err := store.ParseKind(k)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	key, errRes := required(req, "key")
	if errRes != nil {
		return errRes, nil
	}
	dryRun := flag(req, "dry_run")

	var buf bytes.Buffer
	result, err := rm.Run(ctx, &buf, extCtx.Service(), store.ParseKey(key), rm.Options{Kind: kind, DryRun: dryRun})

	log.Event("mcp:darc_rm", "delete").
		Author(actor(ctx)).
		Kind(string(kind)).
		Key(key).
		Resolved(result.ID).
		Detail("dry_run", dryRun).
		Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result)
}

func relateTool(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	e, errRes := required(req, "edge")
	if errRes != nil {
		return errRes, nil
	}
	edge, err := store.ParseEdge(e)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	a, errRes := required(req, "a")
	if errRes != nil {
		return errRes, nil
	}
	b, errRes := required(req, "b")
	if errRes != nil {
		return errRes, nil
	}
	remove := flag(req, "remove")

	var buf bytes.Buffer
	result, err := relate.Run(ctx, &buf, extCtx.Service(), edge, store.ParseKey(a), store.ParseKey(b), relate.Options{Remove: remove})

	log.Event("mcp:darc_relate", "relate").
		Author(actor(ctx)).
		Key(a).
		Detail("edge", string(edge)).
		Detail("other", b).
		Detail("remove", remove).
		Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result)
}

func fileLogTool(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errRes := required(req, "id")
	if errRes != nil {
		return errRes, nil
	}
	line, errRes := required(req, "line")
	if errRes != nil {
		return errRes, nil
	}

	var buf bytes.Buffer
	err := ingest.Log(ctx, &buf, extCtx.Service(), id, line)

	log.Event("mcp:darc_file_log", "log").Author(actor(ctx)).Kind(string(store.KindDataFile)).Key(id).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

func fileLinkTool(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errRes := required(req, "id")
	if errRes != nil {
		return errRes, nil
	}
	var doc *store.Key
	if d, err := req.RequireString("document"); err == nil && d != "" {
		k := store.ParseKey(d)
		doc = &k
	}

	var buf bytes.Buffer
	err := ingest.Link(ctx, &buf, extCtx.Service(), id, doc)

	log.Event("mcp:darc_file_link", "link").Author(actor(ctx)).Kind(string(store.KindDataFile)).Key(id).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}
