// Package mcp implements the Model Context Protocol server, exposing darc
// catalog lookups to LLMs. Assistants can browse trees, read detail views
// and search the catalog through a standardised protocol.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jpl-au/darc/extension"
	"github.com/jpl-au/darc/internal/catalog"
	"github.com/jpl-au/darc/internal/config"
	"github.com/jpl-au/darc/internal/repo"
	"github.com/jpl-au/darc/internal/service"
	"github.com/jpl-au/darc/internal/version"
)

// ErrNotInitialised is returned by tools when the catalog has not been initialised.
// The LLM should call darc_init to create a catalog before using other tools.
const ErrNotInitialised = "catalog not initialised - call darc_init first"

// Serve starts the MCP server over stdio. user is the identity lookups run
// as unless a tool call names its own.
//
// Design: The server starts successfully even if no catalog exists. This
// allows LLMs to call darc_init to create one, rather than failing with an
// opaque error. Tools that need the catalog return ErrNotInitialised.
func Serve(db, user string) error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	h := &handlers{db: db, user: user}

	svc, err := catalog.New(db)
	if err != nil && !errors.Is(err, repo.ErrNotInitialised) {
		slog.Error("failed to open catalog", "error", err)
		return err
	}
	// darc_init may replace h.svc, so close whatever is open at exit
	defer func() {
		if h.svc != nil {
			h.svc.Close()
		}
	}()
	if err == nil {
		h.svc = svc
	} else {
		slog.Info("darc not initialised, starting in uninitialised mode - call darc_init to create catalog")
	}

	s := newServer(h)

	slog.Info("darc MCP server ready", "version", version.Short(), "transport", "stdio", "user", user)

	err = server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// newServer builds the MCP server with every resource and tool registered.
func newServer(h *handlers) *server.MCPServer {
	s := server.NewMCPServer(
		"darc",
		version.Short(),
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)
	registerResources(s, h)
	registerTools(s, h)
	registerExtensionTools(s, h, extension.Tools())
	return s
}

// registerExtensionTools adds the write tools contributed by extensions.
// Each call gets a fresh extension Context so config edits made through
// darc_config_set are seen by later calls.
func registerExtensionTools(s *server.MCPServer, h *handlers, tools []extension.MCPTool) {
	for _, t := range tools {
		s.AddTool(t.Tool, h.extensionHandler(t.Handler))
	}
}

// extensionHandler adapts an extension handler to the server's signature,
// attaching the caller's identity and the shared service.
func (h *handlers) extensionHandler(fn extension.MCPHandler) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if r := h.requireInit(); r != nil {
			return r, nil
		}
		cfg, err := config.Load()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		extCtx := extension.NewContext(h.svc, cfg)
		return fn(h.withUser(ctx, req), extCtx, req)
	}
}

// handlers provides MCP request handlers with access to the catalog.
// The svc field may be nil if the catalog has not been initialised.
type handlers struct {
	db   string          // database name for init
	user string          // default identity
	svc  service.Service // nil if not initialised
}

// requireInit returns an error result if the catalog is not initialised.
func (h *handlers) requireInit() *mcp.CallToolResult {
	if h.svc == nil {
		return mcp.NewToolResultError(ErrNotInitialised)
	}
	return nil
}

// registerResources adds URI-based access to detail views.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"darc://{kind}/{key}",
			"Catalog entity",
			mcp.WithTemplateDescription("Detail view of a collection, term, document, file or metadata blob by id or slug"),
			mcp.WithTemplateMIMEType("text/plain"),
		),
		h.readEntity,
	)
}

// kinds lists accepted kind names for tool descriptions.
const kinds = "collection, term, document, file or metadata"

// registerTools exposes darc operations as MCP tools for LLM invocation.
func registerTools(s *server.MCPServer, h *handlers) {
	// Init - works without existing catalog
	s.AddTool(
		mcp.NewTool("darc_init",
			mcp.WithDescription("Initialise a new darc catalog. Call this first if other tools return 'catalog not initialised'."),
			mcp.WithBoolean("local", mcp.Description("If true, database is gitignored (not committed to version control)")),
		),
		h.initCatalog,
	)

	s.AddTool(
		mcp.NewTool("darc_resolve",
			mcp.WithDescription("Show the detail view of one catalog entity: own fields, parent, children, memberships and relations"),
			mcp.WithString("kind", mcp.Required(), mcp.Description("Entity kind: "+kinds)),
			mcp.WithString("key", mcp.Required(), mcp.Description("Numeric id, file UUID, or slug")),
			mcp.WithBoolean("text", mcp.Description("Return the plain text layout instead of JSON")),
			mcp.WithString("user", mcp.Description("Identity to read as (document details require one)")),
		),
		h.resolve,
	)

	s.AddTool(
		mcp.NewTool("darc_tree",
			mcp.WithDescription("Render the hierarchy of collections or terms as indented text"),
			mcp.WithString("kind", mcp.Required(), mcp.Description("collection or term")),
			mcp.WithString("key", mcp.Description("Render only this node's subtree (id or slug)")),
			mcp.WithBoolean("structured", mcp.Description("Return nested JSON nodes instead of text")),
		),
		h.tree,
	)

	s.AddTool(
		mcp.NewTool("darc_search",
			mcp.WithDescription("Substring search across collection names, document titles and term names"),
			mcp.WithString("query", mcp.Required(), mcp.Description("Text to look for")),
			mcp.WithBoolean("case_sensitive", mcp.Description("Override the configured case sensitivity")),
		),
		h.search,
	)

	s.AddTool(
		mcp.NewTool("darc_list",
			mcp.WithDescription("List every entity of a kind as id and title"),
			mcp.WithString("kind", mcp.Required(), mcp.Description("Entity kind: "+kinds)),
			mcp.WithString("match", mcp.Description("Glob filter on titles (supports *, ?, [abc], {a,b})")),
		),
		h.list,
	)

	s.AddTool(
		mcp.NewTool("darc_diff",
			mcp.WithDescription("Compare the detail views of two entities of the same kind"),
			mcp.WithString("kind", mcp.Required(), mcp.Description("Entity kind: "+kinds)),
			mcp.WithString("a", mcp.Required(), mcp.Description("First id or slug")),
			mcp.WithString("b", mcp.Required(), mcp.Description("Second id or slug")),
			mcp.WithString("user", mcp.Description("Identity to read as (document details require one)")),
		),
		h.diff,
	)

	s.AddTool(
		mcp.NewTool("darc_stats",
			mcp.WithDescription("Catalog statistics: counts per kind, roots, orphans and unlinked files"),
		),
		h.stats,
	)

	s.AddTool(
		mcp.NewTool("darc_config_get",
			mcp.WithDescription("Get a configuration value"),
			mcp.WithString("key", mcp.Description("Config key (user.name, search.case_sensitive, render.indent, limits.*) or empty for all")),
		),
		h.configGet,
	)

	s.AddTool(
		mcp.NewTool("darc_config_set",
			mcp.WithDescription("Set a configuration value"),
			mcp.WithString("key", mcp.Required(), mcp.Description("Config key")),
			mcp.WithString("value", mcp.Required(), mcp.Description("Value to set")),
		),
		h.configSet,
	)

	s.AddTool(
		mcp.NewTool("darc_import",
			mcp.WithDescription("Import a YAML catalog manifest"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Filesystem path of the manifest")),
			mcp.WithBoolean("dry_run", mcp.Description("Resolve references and report without writing")),
			mcp.WithString("user", mcp.Description("Identity recorded as owner and creator")),
		),
		h.importManifest,
	)

	s.AddTool(
		mcp.NewTool("darc_export",
			mcp.WithDescription("Export the catalog as a YAML manifest"),
			mcp.WithString("dest", mcp.Description("Filesystem destination (empty returns the manifest inline)")),
			mcp.WithBoolean("force", mcp.Description("Overwrite an existing file")),
		),
		h.exportManifest,
	)

	s.AddTool(
		mcp.NewTool("darc_guide",
			mcp.WithDescription("Get help/guide content for darc commands"),
			mcp.WithString("topic", mcp.Description("Guide topic (e.g., 'show', 'tree', 'import') or empty for index")),
		),
		h.getGuide,
	)
}
