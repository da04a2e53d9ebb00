package catalog_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jpl-au/darc/internal/catalog"
	"github.com/jpl-au/darc/internal/store"
)

// setupService creates a catalog in a temporary directory. HOME is moved too
// so a developer's global config cannot leak into the test.
func setupService(t *testing.T) *catalog.Service {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	require.NoError(t, catalog.Init(true, "", false, ""), "init catalog")
	svc, err := catalog.New("")
	require.NoError(t, err, "open catalog")
	t.Cleanup(func() { svc.Close() })
	return svc
}

// userCtx returns a context carrying an identity.
func userCtx() context.Context {
	return catalog.WithUser(context.Background(), "alice")
}

func mkNode(t *testing.T, svc *catalog.Service, kind store.Kind, name string, parent *int64) int64 {
	t.Helper()
	n := &store.Node{Kind: kind, Name: name, ParentID: parent}
	require.NoError(t, svc.AddNode(userCtx(), n), "add %s %q", kind, name)
	return n.ID
}

func mkDoc(t *testing.T, svc *catalog.Service, title string, collections []int64, terms ...int64) int64 {
	t.Helper()
	d := &store.Document{Title: title}
	require.NoError(t, svc.AddDocument(userCtx(), d, collections, terms), "add document %q", title)
	return d.ID
}

func ptr[T any](v T) *T { return &v }

func idKey(id int64) store.Key {
	return store.ParseKey(strconv.FormatInt(id, 10))
}
