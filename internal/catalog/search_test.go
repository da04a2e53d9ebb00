package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/darc/internal/catalog"
	"github.com/jpl-au/darc/internal/store"
)

func TestSearch(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	coll := mkNode(t, svc, store.KindCollection, "Annual Reports", nil)
	mkNode(t, svc, store.KindTerm, "Reporting", nil)
	mkDoc(t, svc, "Report on Mining", []int64{coll})
	mkDoc(t, svc, "Field report", []int64{coll})
	mkDoc(t, svc, "Misreported figures", []int64{coll})
	mkDoc(t, svc, "Letters", []int64{coll})

	r, err := svc.Search(ctx, "report", catalog.SearchOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Annual Reports"}, names(r.Collections))
	assert.Equal(t, []string{"Field report", "Misreported figures", "Report on Mining"}, names(r.Documents),
		"prefix, suffix and middle fragments all match")
	assert.Equal(t, []string{"Reporting"}, names(r.Terms))
	assert.Equal(t, 5, r.Total())

	r, err = svc.Search(ctx, "report", catalog.SearchOptions{CaseSensitive: ptr(true)})
	require.NoError(t, err)
	assert.Empty(t, r.Collections)
	assert.Equal(t, []string{"Field report", "Misreported figures"}, names(r.Documents))
	assert.Empty(t, r.Terms)

	r, err = svc.Search(ctx, "Letters", catalog.SearchOptions{})
	require.NoError(t, err)
	assert.NotNil(t, r.Collections, "empty sections are empty, not nil")
	assert.Empty(t, r.Collections)
	assert.Len(t, r.Documents, 1)
}

func TestSearchNonASCII(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	coll := mkNode(t, svc, store.KindCollection, "Übersicht", nil)
	mkNode(t, svc, store.KindTerm, "ÉTUDES", nil)
	mkDoc(t, svc, "Ärzte Bericht", []int64{coll})

	for q, want := range map[string]int{"über": 1, "études": 1, "ärzte": 1, "ÄRZTE": 1} {
		r, err := svc.Search(ctx, q, catalog.SearchOptions{})
		require.NoError(t, err)
		assert.Equal(t, want, r.Total(), "query %q", q)
	}

	r, err := svc.Search(ctx, "über", catalog.SearchOptions{CaseSensitive: ptr(true)})
	require.NoError(t, err)
	assert.Zero(t, r.Total())
}

func TestSearchBlankQuery(t *testing.T) {
	svc := setupService(t)

	for _, q := range []string{"", "   ", "\t"} {
		r, err := svc.Search(context.Background(), q, catalog.SearchOptions{})
		assert.ErrorIs(t, err, catalog.ErrInvalidQuery, "query %q", q)
		assert.Nil(t, r)
	}
}

func TestRelatedSymmetric(t *testing.T) {
	svc := setupService(t)
	ctx := userCtx()

	coll := mkNode(t, svc, store.KindCollection, "Reports", nil)
	x := mkDoc(t, svc, "X", []int64{coll})
	y := mkDoc(t, svc, "Y", []int64{coll})
	z := mkDoc(t, svc, "Z", []int64{coll})

	require.NoError(t, svc.Relate(ctx, store.EdgeDocumentRelated, x, y))
	require.NoError(t, svc.Relate(ctx, store.EdgeDocumentRelated, z, x))

	got, err := svc.RelatedSymmetric(ctx, store.EdgeDocumentRelated, x)
	require.NoError(t, err)
	assert.Equal(t, []int64{y, z}, got)

	got, err = svc.RelatedSymmetric(ctx, store.EdgeDocumentRelated, y)
	require.NoError(t, err)
	assert.Equal(t, []int64{x}, got)

	// Stored both ways by hand: still one result.
	_, err = svc.DB().Exec(`INSERT INTO document_related (from_id, to_id) VALUES (?, ?)`, y, x)
	require.NoError(t, err)
	got, err = svc.RelatedSymmetric(ctx, store.EdgeDocumentRelated, x)
	require.NoError(t, err)
	assert.Equal(t, []int64{y, z}, got)

	require.NoError(t, svc.Unrelate(ctx, store.EdgeDocumentRelated, x, z))
	got, err = svc.RelatedSymmetric(ctx, store.EdgeDocumentRelated, z)
	require.NoError(t, err)
	assert.Empty(t, got)

	members, err := svc.MembersOf(ctx, store.EdgeDocumentCollections, x)
	require.NoError(t, err)
	assert.Equal(t, []int64{coll}, members)
}
