package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/darc/extension"
	"github.com/jpl-au/darc/internal/catalog"
	"github.com/jpl-au/darc/internal/store"
)

// setupHandlers opens a catalog with a small collection tree and returns
// handlers reading as "alice".
func setupHandlers(t *testing.T) *handlers {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	require.NoError(t, catalog.Init(true, "", false, ""))
	svc, err := catalog.New("")
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })

	ctx := catalog.WithUser(context.Background(), "alice")
	root := &store.Node{Kind: store.KindCollection, Name: "Archive"}
	require.NoError(t, svc.AddNode(ctx, root))
	require.NoError(t, svc.AddNode(ctx, &store.Node{Kind: store.KindCollection, Name: "Letters", ParentID: &root.ID}))
	require.NoError(t, svc.AddDocument(ctx, &store.Document{Title: "Letter to Mary"}, []int64{root.ID}, nil))

	return &handlers{user: "alice", svc: svc}
}

func call(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

// text returns the first text content of a result.
func text(t *testing.T, r *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, r.Content)
	tc, ok := r.Content[0].(mcp.TextContent)
	require.True(t, ok, "want text content, got %T", r.Content[0])
	return tc.Text
}

func TestParseEntityURI(t *testing.T) {
	tests := []struct {
		uri  string
		kind store.Kind
		key  store.Key
		err  error
	}{
		{"darc://collection/archive", store.KindCollection, store.Key{Slug: "archive"}, nil},
		{"darc://docs/12", store.KindDocument, store.Key{ID: "12"}, nil},
		{"darc://file/5f1c8a4e-2b7d-4c1e-9a3f-6d2e8b0c4a11", store.KindDataFile, store.Key{ID: "5f1c8a4e-2b7d-4c1e-9a3f-6d2e8b0c4a11"}, nil},
		{"ftp://collection/x", "", store.Key{}, ErrInvalidURI},
		{"darc://collection/", "", store.Key{}, ErrEmptyKey},
		{"darc://collection/a/b", "", store.Key{}, ErrInvalidURI},
		{"darc://pool/x", "", store.Key{}, store.ErrUnknownKind},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			kind, key, err := parseEntityURI(tt.uri)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestResolveTool(t *testing.T) {
	h := setupHandlers(t)
	ctx := context.Background()

	r, err := h.resolve(ctx, call(map[string]any{"kind": "collection", "key": "archive"}))
	require.NoError(t, err)
	require.False(t, r.IsError, text(t, r))

	var got struct {
		Name     string `json:"name"`
		Children []struct {
			Name string `json:"name"`
		} `json:"children"`
	}
	require.NoError(t, json.Unmarshal([]byte(text(t, r)), &got))
	assert.Equal(t, "Archive", got.Name)
	require.Len(t, got.Children, 1)
	assert.Equal(t, "Letters", got.Children[0].Name)

	r, err = h.resolve(ctx, call(map[string]any{"kind": "collection", "key": "1", "text": true}))
	require.NoError(t, err)
	assert.Contains(t, text(t, r), "Collection Detail: 1")

	t.Run("document needs a user", func(t *testing.T) {
		anon := &handlers{svc: h.svc}
		r, err := anon.resolve(ctx, call(map[string]any{"kind": "document", "key": "letter-to-mary"}))
		require.NoError(t, err)
		assert.True(t, r.IsError)

		r, err = anon.resolve(ctx, call(map[string]any{"kind": "document", "key": "letter-to-mary", "user": "bob"}))
		require.NoError(t, err)
		assert.False(t, r.IsError, text(t, r))
	})

	t.Run("missing params", func(t *testing.T) {
		r, err := h.resolve(ctx, call(map[string]any{"kind": "collection"}))
		require.NoError(t, err)
		assert.True(t, r.IsError)
		assert.Equal(t, "key is required", text(t, r))
	})
}

func TestTreeTool(t *testing.T) {
	h := setupHandlers(t)
	ctx := context.Background()

	r, err := h.tree(ctx, call(map[string]any{"kind": "collection"}))
	require.NoError(t, err)
	assert.Equal(t, "Archive\n\tLetters", text(t, r))

	r, err = h.tree(ctx, call(map[string]any{"kind": "collection", "key": "letters", "structured": true}))
	require.NoError(t, err)
	var node catalog.TreeNode
	require.NoError(t, json.Unmarshal([]byte(text(t, r)), &node))
	assert.Equal(t, "Letters", node.Name)

	r, err = h.tree(ctx, call(map[string]any{"kind": "document"}))
	require.NoError(t, err)
	assert.True(t, r.IsError, "documents have no hierarchy")
}

func TestSearchAndListTools(t *testing.T) {
	h := setupHandlers(t)
	ctx := context.Background()

	r, err := h.search(ctx, call(map[string]any{"query": "LETTER"}))
	require.NoError(t, err)
	var res catalog.SearchResult
	require.NoError(t, json.Unmarshal([]byte(text(t, r)), &res))
	assert.Len(t, res.Collections, 1)
	assert.Len(t, res.Documents, 1)

	r, err = h.search(ctx, call(map[string]any{"query": "LETTER", "case_sensitive": true}))
	require.NoError(t, err)
	res = catalog.SearchResult{}
	require.NoError(t, json.Unmarshal([]byte(text(t, r)), &res))
	assert.Equal(t, 0, res.Total())

	r, err = h.list(ctx, call(map[string]any{"kind": "collections", "match": "l*"}))
	require.NoError(t, err)
	assert.Contains(t, text(t, r), `"title": "Letters"`)
	assert.NotContains(t, text(t, r), "Archive")
}

func TestDiffTool(t *testing.T) {
	h := setupHandlers(t)

	r, err := h.diff(context.Background(), call(map[string]any{"kind": "collection", "a": "archive", "b": "letters"}))
	require.NoError(t, err)
	require.False(t, r.IsError, text(t, r))
	assert.Contains(t, text(t, r), `"same": false`)
}

func TestUninitialised(t *testing.T) {
	h := &handlers{}
	r, err := h.tree(context.Background(), call(map[string]any{"kind": "term"}))
	require.NoError(t, err)
	assert.True(t, r.IsError)
	assert.Equal(t, ErrNotInitialised, text(t, r))
}

func TestExtensionHandler(t *testing.T) {
	h := setupHandlers(t)

	var gotUser string
	fn := func(ctx context.Context, extCtx extension.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		gotUser, _ = catalog.UserFrom(ctx)
		st, err := extCtx.Service().Stats(ctx)
		if err != nil {
			return nil, err
		}
		return jsonResult(st)
	}

	r, err := h.extensionHandler(fn)(context.Background(), call(map[string]any{"user": "bob"}))
	require.NoError(t, err)
	require.False(t, r.IsError, text(t, r))
	assert.Equal(t, "bob", gotUser)

	r, err = (&handlers{}).extensionHandler(fn)(context.Background(), call(nil))
	require.NoError(t, err)
	assert.True(t, r.IsError)
}

func TestInitCatalog(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	h := &handlers{user: "alice"}
	r, err := h.initCatalog(context.Background(), call(map[string]any{"local": true}))
	require.NoError(t, err)
	require.False(t, r.IsError, text(t, r))
	t.Cleanup(func() { h.svc.Close() })

	assert.Contains(t, text(t, r), "tables: collection_related, collections, data_files")
	assert.Contains(t, text(t, r), "local: gitignored")
	require.NotNil(t, h.svc)

	r, err = h.initCatalog(context.Background(), call(nil))
	require.NoError(t, err)
	assert.True(t, r.IsError, "second init is refused")
}
