package catalog_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/darc/internal/catalog"
	"github.com/jpl-au/darc/internal/store"
)

func TestChildrenAndRoots(t *testing.T) {
	svc := setupService(t)
	ctx := userCtx()

	root := mkNode(t, svc, store.KindCollection, "Reports", nil)
	b := mkNode(t, svc, store.KindCollection, "B", &root)
	a := mkNode(t, svc, store.KindCollection, "A", &root)
	mkNode(t, svc, store.KindCollection, "Deep", &a)

	kids, err := svc.Children(ctx, store.KindCollection, root)
	require.NoError(t, err)
	require.Len(t, kids, 2)
	assert.Equal(t, []int64{a, b}, []int64{kids[0].ID, kids[1].ID}, "children ordered by name")

	roots, err := svc.Roots(ctx, store.KindCollection)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, root, roots[0].ID)

	leaf, err := svc.Children(ctx, store.KindCollection, b)
	require.NoError(t, err)
	assert.Empty(t, leaf)

	_, err = svc.Roots(ctx, store.KindDocument)
	assert.ErrorIs(t, err, catalog.ErrUnknownKind)
}

func TestRenderSubtree(t *testing.T) {
	svc := setupService(t)
	ctx := userCtx()

	root := mkNode(t, svc, store.KindTerm, "Science", nil)
	phys := mkNode(t, svc, store.KindTerm, "Physics", &root)
	mkNode(t, svc, store.KindTerm, "Biology", &root)
	optics := mkNode(t, svc, store.KindTerm, "Optics", &phys)
	mkNode(t, svc, store.KindTerm, "Lasers", &optics)

	out, err := svc.RenderSubtree(ctx, store.KindTerm, store.Key{Slug: "science"})
	require.NoError(t, err)
	assert.Equal(t, "Science\n\tBiology\n\tPhysics\n\t\tOptics\n\t\t\tLasers", out)

	out, err = svc.RenderSubtree(ctx, store.KindTerm, idKey(optics))
	require.NoError(t, err)
	assert.Equal(t, "Optics\n\tLasers", out)

	_, err = svc.RenderSubtree(ctx, store.KindTerm, store.Key{Slug: "nope"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTreeForest(t *testing.T) {
	svc := setupService(t)
	ctx := userCtx()

	out, err := svc.Tree(ctx, store.KindCollection)
	require.NoError(t, err)
	assert.Empty(t, out, "empty kind renders nothing")

	r1 := mkNode(t, svc, store.KindCollection, "Reports", nil)
	mkNode(t, svc, store.KindCollection, "2023 Reports", &r1)
	r2 := mkNode(t, svc, store.KindCollection, "Archive", nil)
	mkNode(t, svc, store.KindCollection, "Letters", &r2)

	out, err = svc.Tree(ctx, store.KindCollection)
	require.NoError(t, err)
	assert.Equal(t, "Archive\n\tLetters\n\nReports\n\t2023 Reports", out)

	svc.SetIndent("  ")
	out, err = svc.Tree(ctx, store.KindCollection)
	require.NoError(t, err)
	assert.Equal(t, "Archive\n  Letters\n\nReports\n  2023 Reports", out)
}

// Every node appears exactly once and its indentation equals its depth.
func TestTreeDepthAndCoverage(t *testing.T) {
	svc := setupService(t)
	ctx := userCtx()

	depth := map[string]int{}
	var build func(parent *int64, prefix string, level, width int)
	build = func(parent *int64, prefix string, level, width int) {
		if level > 4 {
			return
		}
		for i := range width {
			name := prefix + string(rune('a'+i))
			id := mkNode(t, svc, store.KindTerm, name, parent)
			depth[name] = level
			build(&id, name, level+1, width-1)
		}
	}
	build(nil, "n", 0, 3)

	out, err := svc.Tree(ctx, store.KindTerm)
	require.NoError(t, err)

	seen := map[string]int{}
	for line := range strings.SplitSeq(out, "\n") {
		if line == "" {
			continue
		}
		name := strings.TrimLeft(line, "\t")
		seen[name]++
		assert.Equal(t, depth[name], len(line)-len(name), "indent of %s", name)
	}
	assert.Len(t, seen, len(depth))
	for name, n := range seen {
		assert.Equal(t, 1, n, "%s rendered once", name)
	}

	trees, err := svc.ForestNodes(ctx, store.KindTerm)
	require.NoError(t, err)
	total := 0
	for _, tr := range trees {
		total += tr.Size()
	}
	assert.Equal(t, len(depth), total)
}

func TestTreeCycle(t *testing.T) {
	svc := setupService(t)
	ctx := userCtx()

	a := mkNode(t, svc, store.KindTerm, "A", nil)
	b := mkNode(t, svc, store.KindTerm, "B", &a)
	mkNode(t, svc, store.KindTerm, "Other", nil)

	// Writes refuse cycles, so inject one directly.
	_, err := svc.DB().Exec(`UPDATE terms SET parent_id = ? WHERE id = ?`, b, a)
	require.NoError(t, err)

	_, err = svc.Tree(ctx, store.KindTerm)
	require.ErrorIs(t, err, catalog.ErrCycleDetected)
	var ce *catalog.CycleError
	require.True(t, errors.As(err, &ce))
	assert.ElementsMatch(t, []int64{a, b}, ce.IDs)

	_, err = svc.RenderSubtree(ctx, store.KindTerm, idKey(a))
	require.ErrorIs(t, err, catalog.ErrCycleDetected)
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, []int64{a, b, a}, ce.IDs)
}

func TestTreeNodeRender(t *testing.T) {
	tree := &catalog.TreeNode{Name: "root", Children: []*catalog.TreeNode{
		{Name: "a", Children: []*catalog.TreeNode{{Name: "a1"}}},
		{Name: "b"},
	}}
	assert.Equal(t, "root\n-a\n--a1\n-b", tree.Render("-"))
	assert.Equal(t, 4, tree.Size())
	assert.Equal(t, "x\n\ny", catalog.RenderForest([]*catalog.TreeNode{{Name: "x"}, {Name: "y"}}, "\t"))
}
