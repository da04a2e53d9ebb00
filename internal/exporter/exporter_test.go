package exporter_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/darc/internal/catalog"
	"github.com/jpl-au/darc/internal/exporter"
	"github.com/jpl-au/darc/internal/manifest"
	"github.com/jpl-au/darc/internal/service"
	"github.com/jpl-au/darc/internal/store"
)

func setupService(t *testing.T) service.Service {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	require.NoError(t, catalog.Init(true, "", false, ""))
	svc, err := catalog.New("")
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestBuild(t *testing.T) {
	svc := setupService(t)
	ctx := catalog.WithUser(context.Background(), "tester")

	root := &store.Node{Kind: store.KindCollection, Name: "Archive"}
	require.NoError(t, svc.AddNode(ctx, root))
	child := &store.Node{Kind: store.KindCollection, Name: "Boxes", ParentID: &root.ID}
	require.NoError(t, svc.AddNode(ctx, child))
	a := &store.Document{Title: "Alpha"}
	require.NoError(t, svc.AddDocument(ctx, a, []int64{child.ID}, nil))
	b := &store.Document{Title: "Beta"}
	require.NoError(t, svc.AddDocument(ctx, b, []int64{root.ID}, nil))
	require.NoError(t, svc.Relate(ctx, store.EdgeDocumentRelated, b.ID, a.ID))

	var r exporter.Result
	m, err := exporter.Build(ctx, svc, &r)
	require.NoError(t, err)

	assert.Equal(t, []manifest.Node{
		{Name: "Archive", Slug: "archive"},
		{Name: "Boxes", Slug: "boxes", Parent: "archive"},
	}, m.Collections)
	require.Len(t, m.Documents, 2)
	assert.Equal(t, []string{"boxes"}, m.Documents[0].Collections)
	assert.Equal(t, []string{"beta"}, m.Documents[0].Related, "pair written from the lower id")
	assert.Empty(t, m.Documents[1].Related)
	assert.Equal(t, 2, r.Documents)
}

func TestRun_File(t *testing.T) {
	svc := setupService(t)
	ctx := catalog.WithUser(context.Background(), "tester")
	require.NoError(t, svc.AddNode(ctx, &store.Node{Kind: store.KindTerm, Name: "Places"}))

	dst := filepath.Join(t.TempDir(), "out", "catalog.yaml")
	var buf bytes.Buffer
	r, err := exporter.Run(ctx, &buf, svc, dst, exporter.Options{})
	require.NoError(t, err)
	assert.Equal(t, dst, r.Path)
	assert.FileExists(t, dst)

	m, err := manifest.Load(dst)
	require.NoError(t, err)
	assert.Equal(t, "places", m.Terms[0].Slug)

	_, err = exporter.Run(ctx, &buf, svc, dst, exporter.Options{})
	assert.ErrorContains(t, err, "file exists")

	_, err = exporter.Run(ctx, &buf, svc, dst, exporter.Options{Force: true})
	assert.NoError(t, err)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Contains(t, string(data), "terms:")
}
