package find_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/darc/internal/catalog"
	"github.com/jpl-au/darc/internal/find"
	"github.com/jpl-au/darc/internal/service"
	"github.com/jpl-au/darc/internal/store"
)

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
	c := &store.Node{Kind: store.KindCollection, Name: "Annual Reports"}
	require.NoError(t, svc.AddNode(ctx, c))
	require.NoError(t, svc.AddNode(ctx, &store.Node{Kind: store.KindTerm, Name: "Reporting"}))
	require.NoError(t, svc.AddDocument(ctx, &store.Document{Title: "Report 2020"}, []int64{c.ID}, nil))
	return svc
}

func TestRun(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	t.Run("sections", func(t *testing.T) {
		var buf bytes.Buffer
		r, err := find.Run(ctx, &buf, svc, "report", find.Options{})
		require.NoError(t, err)
		assert.Equal(t, 3, r.Total())
		assert.Equal(t, "Collections:\n  1 - Annual Reports\n\nDocuments:\n  1 - Report 2020\n\nTerms:\n  1 - Reporting\n", buf.String())
	})

	t.Run("count", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := find.Run(ctx, &buf, svc, "Report", find.Options{Count: true})
		require.NoError(t, err)
		assert.Equal(t, "3\n", buf.String())
	})

	t.Run("case sensitive", func(t *testing.T) {
		cs := true
		var buf bytes.Buffer
		r, err := find.Run(ctx, &buf, svc, "report", find.Options{CaseSensitive: &cs})
		require.NoError(t, err)
		assert.Equal(t, 0, r.Total())
		assert.Empty(t, buf.String())
	})

	t.Run("blank query", func(t *testing.T) {
		_, err := find.Run(ctx, &bytes.Buffer{}, svc, "  ", find.Options{})
		assert.ErrorIs(t, err, catalog.ErrInvalidQuery)
	})
}
