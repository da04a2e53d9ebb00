package ls_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/darc/internal/catalog"
	"github.com/jpl-au/darc/internal/ls"
	"github.com/jpl-au/darc/internal/service"
	"github.com/jpl-au/darc/internal/store"
)

// setupService creates a catalog with one collection and three documents.
func setupService(t *testing.T) service.Service {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	require.NoError(t, catalog.Init(true, "", false, ""), "init catalog")
	svc, err := catalog.New("")
	require.NoError(t, err, "open catalog")
	t.Cleanup(func() { svc.Close() })

	ctx := catalog.WithUser(context.Background(), "tester")
	c := &store.Node{Kind: store.KindCollection, Name: "Reports"}
	require.NoError(t, svc.AddNode(ctx, c))
	for _, title := range []string{"Q2 Summary", "Q1 Summary", "Letters"} {
		require.NoError(t, svc.AddDocument(ctx, &store.Document{Title: title}, []int64{c.ID}, nil))
	}
	return svc
}

func TestRun(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	t.Run("store order", func(t *testing.T) {
		var buf bytes.Buffer
		r, err := ls.Run(ctx, &buf, svc, ls.Options{Kind: store.KindDocument})
		require.NoError(t, err)
		assert.Equal(t, 3, r.Count())
		assert.Equal(t, "1 - Q2 Summary\n2 - Q1 Summary\n3 - Letters\n", buf.String())
	})

	t.Run("glob filter", func(t *testing.T) {
		var buf bytes.Buffer
		r, err := ls.Run(ctx, &buf, svc, ls.Options{Kind: store.KindDocument, Match: "q? summary"})
		require.NoError(t, err)
		assert.Equal(t, 2, r.Count())

		_, err = ls.Run(ctx, &buf, svc, ls.Options{Kind: store.KindDocument, Match: "q*", CaseSensitive: true})
		require.NoError(t, err)
	})

	t.Run("sort by title reversed", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := ls.Run(ctx, &buf, svc, ls.Options{Kind: store.KindDocument, Sort: ls.SortTitle, Reverse: true})
		require.NoError(t, err)
		assert.Equal(t, "1 - Q2 Summary\n2 - Q1 Summary\n3 - Letters\n", buf.String())
	})

	t.Run("ids only", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := ls.Run(ctx, &buf, svc, ls.Options{Kind: store.KindDocument, Sort: ls.SortTitle, IDsOnly: true})
		require.NoError(t, err)
		assert.Equal(t, "3\n2\n1\n", buf.String())
	})
}

func TestParseSort(t *testing.T) {
	f, err := ls.ParseSort("title")
	require.NoError(t, err)
	assert.Equal(t, ls.SortTitle, f)

	_, err = ls.ParseSort("size")
	assert.Error(t, err)
}
