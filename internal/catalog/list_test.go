package catalog_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/darc/internal/catalog"
	"github.com/jpl-au/darc/internal/store"
)

func TestList(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	coll := mkNode(t, svc, store.KindCollection, "Reports", nil)
	b := mkDoc(t, svc, "Beta", []int64{coll})
	a := mkDoc(t, svc, "Alpha", []int64{coll})

	docs, err := svc.List(ctx, store.KindDocument)
	require.NoError(t, err)
	assert.Equal(t, []catalog.Summary{
		{ID: fmt.Sprint(b), Title: "Beta"},
		{ID: fmt.Sprint(a), Title: "Alpha"},
	}, docs, "documents listed by id")
	assert.Equal(t, fmt.Sprintf("%d - Beta", b), docs[0].String())

	empty, err := svc.List(ctx, store.KindTerm)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	m := &store.Metadata{DocumentID: a, Payload: "x"}
	require.NoError(t, svc.AddMetadata(userCtx(), m))
	metas, err := svc.List(ctx, store.KindMetadata)
	require.NoError(t, err)
	require.Len(t, metas, 1)
	assert.Equal(t, fmt.Sprintf("document %d", a), metas[0].Title)

	f := &store.DataFile{FileName: "scan.tiff", FormatType: store.FormatScanned}
	require.NoError(t, svc.AddFile(userCtx(), f))
	files, err := svc.List(ctx, store.KindDataFile)
	require.NoError(t, err)
	assert.Equal(t, []catalog.Summary{{ID: f.ID, Title: "scan.tiff"}}, files)

	_, err = svc.List(ctx, store.Kind("pool"))
	assert.ErrorIs(t, err, catalog.ErrUnknownKind)
}

func TestIdentity(t *testing.T) {
	_, ok := catalog.UserFrom(context.Background())
	assert.False(t, ok)

	name, ok := catalog.UserFrom(catalog.WithUser(context.Background(), " alice "))
	assert.True(t, ok)
	assert.Equal(t, "alice", name)
}

func TestWritesStampAuthor(t *testing.T) {
	svc := setupService(t)

	n := &store.Node{Kind: store.KindCollection, Name: "Reports"}
	require.NoError(t, svc.AddNode(catalog.WithUser(context.Background(), "bob"), n))
	assert.Equal(t, "bob", n.Owner)
	assert.Equal(t, "bob", n.CreatedBy)

	d, err := svc.Resolve(context.Background(), store.KindCollection, idKey(n.ID))
	require.NoError(t, err)
	assert.Equal(t, "bob", d.(*catalog.NodeDetail).Node.ModifiedBy)
}
