// tree.go builds and renders Term and Collection hierarchies.
//
// Separated from detail.go because both hierarchies share one traversal: the
// walker is parameterised by a kind and a children lookup, so the same code
// serves a per-node store query (RenderSubtree) and an in-memory index built
// from a single pass over the table (Forest).
//
// Design: trees are derived on every call and never cached. A walk keeps the
// ids on its current path; meeting one again is a cycle and aborts that render
// with a *CycleError. Nodes never reached from a root can only be on a parent
// loop, so Forest reports those the same way.

package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jpl-au/darc/internal/store"
)

// TreeNode is one node of a rendered hierarchy.
type TreeNode struct {
	ID       int64       `json:"id"`
	Name     string      `json:"name"`
	Children []*TreeNode `json:"children,omitempty"`
}

// Render writes the node name followed by every child block, each line of
// which is indented by one more unit than its parent.
func (t *TreeNode) Render(indent string) string {
	var b strings.Builder
	t.render(&b, indent, 0)
	return b.String()
}

func (t *TreeNode) render(b *strings.Builder, indent string, depth int) {
	if depth > 0 {
		b.WriteByte('\n')
	}
	b.WriteString(strings.Repeat(indent, depth))
	b.WriteString(t.Name)
	for _, c := range t.Children {
		c.render(b, indent, depth+1)
	}
}

// Size returns the number of nodes in the subtree including t.
func (t *TreeNode) Size() int {
	n := 1
	for _, c := range t.Children {
		n += c.Size()
	}
	return n
}

// RenderForest joins root renders with a blank line.
func RenderForest(roots []*TreeNode, indent string) string {
	blocks := make([]string, len(roots))
	for i, r := range roots {
		blocks[i] = r.Render(indent)
	}
	return strings.Join(blocks, "\n\n")
}

type childrenFunc func(ctx context.Context, id int64) ([]store.Node, error)

// walker performs a depth-first pre-order traversal.
type walker struct {
	kind     store.Kind
	children childrenFunc
	path     []int64
	onPath   map[int64]bool
	visited  int
}

func newWalker(kind store.Kind, children childrenFunc) *walker {
	return &walker{kind: kind, children: children, onPath: make(map[int64]bool)}
}

func (w *walker) walk(ctx context.Context, n store.Node) (*TreeNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if w.onPath[n.ID] {
		return nil, w.cycle(n.ID)
	}
	w.onPath[n.ID] = true
	w.path = append(w.path, n.ID)
	w.visited++

	kids, err := w.children(ctx, n.ID)
	if err != nil {
		return nil, err
	}
	t := &TreeNode{ID: n.ID, Name: n.Name}
	for _, k := range kids {
		c, err := w.walk(ctx, k)
		if err != nil {
			return nil, err
		}
		t.Children = append(t.Children, c)
	}

	w.path = w.path[:len(w.path)-1]
	delete(w.onPath, n.ID)
	return t, nil
}

// cycle returns the loop from the first visit of id back to id.
func (w *walker) cycle(id int64) error {
	start := 0
	for i, p := range w.path {
		if p == id {
			start = i
			break
		}
	}
	ids := append(append([]int64(nil), w.path[start:]...), id)
	return &CycleError{Kind: w.kind, IDs: ids}
}

// requireHierarchy rejects kinds that have no parent relation.
func requireHierarchy(kind store.Kind) error {
	if !kind.Hierarchical() {
		return fmt.Errorf("%w: %s has no hierarchy", ErrUnknownKind, kind)
	}
	return nil
}

// Children returns the direct children of a node, ordered by name.
func (s *Service) Children(ctx context.Context, kind store.Kind, id int64) ([]store.Node, error) {
	if err := requireHierarchy(kind); err != nil {
		return nil, err
	}
	return s.store.Children(ctx, kind, id)
}

// Roots returns every node of kind without a parent, ordered by name.
func (s *Service) Roots(ctx context.Context, kind store.Kind) ([]store.Node, error) {
	if err := requireHierarchy(kind); err != nil {
		return nil, err
	}
	return s.store.Roots(ctx, kind)
}

// Subtree builds the hierarchy below a node using one indexed child query
// per node.
func (s *Service) Subtree(ctx context.Context, kind store.Kind, key store.Key) (*TreeNode, error) {
	if err := requireHierarchy(kind); err != nil {
		return nil, err
	}
	n, err := s.node(ctx, kind, key)
	if err != nil {
		return nil, err
	}
	w := newWalker(kind, func(ctx context.Context, id int64) ([]store.Node, error) {
		return s.store.Children(ctx, kind, id)
	})
	return w.walk(ctx, *n)
}

// RenderSubtree renders the hierarchy below a node as indented text.
func (s *Service) RenderSubtree(ctx context.Context, kind store.Kind, key store.Key) (string, error) {
	t, err := s.Subtree(ctx, kind, key)
	if err != nil {
		return "", err
	}
	return t.Render(s.indent), nil
}

// ForestNodes builds every tree of a kind from a single read of the table.
// Children are grouped by parent in memory; the store returns rows ordered by
// name so each group keeps that order.
func (s *Service) ForestNodes(ctx context.Context, kind store.Kind) ([]*TreeNode, error) {
	if err := requireHierarchy(kind); err != nil {
		return nil, err
	}
	all, err := s.store.Nodes(ctx, kind)
	if err != nil {
		return nil, err
	}

	byParent := make(map[int64][]store.Node)
	var roots []store.Node
	for _, n := range all {
		if n.ParentID == nil {
			roots = append(roots, n)
			continue
		}
		byParent[*n.ParentID] = append(byParent[*n.ParentID], n)
	}

	w := newWalker(kind, func(_ context.Context, id int64) ([]store.Node, error) {
		return byParent[id], nil
	})
	trees := make([]*TreeNode, 0, len(roots))
	for _, r := range roots {
		t, err := w.walk(ctx, r)
		if err != nil {
			return nil, err
		}
		trees = append(trees, t)
	}

	if w.visited != len(all) {
		reached := make(map[int64]bool, w.visited)
		for _, t := range trees {
			mark(t, reached)
		}
		var lost []int64
		for _, n := range all {
			if !reached[n.ID] {
				lost = append(lost, n.ID)
			}
		}
		return nil, &CycleError{Kind: kind, IDs: lost}
	}
	return trees, nil
}

func mark(t *TreeNode, seen map[int64]bool) {
	seen[t.ID] = true
	for _, c := range t.Children {
		mark(c, seen)
	}
}

// Tree renders the whole forest of a kind: each root's subtree, separated by
// a blank line. An empty kind renders as an empty string.
func (s *Service) Tree(ctx context.Context, kind store.Kind) (string, error) {
	trees, err := s.ForestNodes(ctx, kind)
	if err != nil {
		return "", err
	}
	return RenderForest(trees, s.indent), nil
}
