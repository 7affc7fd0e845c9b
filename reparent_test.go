// Copyright (c) 2026, The NodePointer Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nodepointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/Ardot66/NodePointer"
	"github.com/Ardot66/NodePointer/testdata"
	"github.com/Ardot66/NodePointer/tree"
)

func newRoot(name string) *tree.NodeBase {
	n := tree.New[*tree.NodeBase]()
	n.SetName(name)
	return n
}

func newNamed(parent tree.Node, name string) *tree.NodeBase {
	n := tree.New[*tree.NodeBase](parent)
	n.SetName(name)
	return n
}

func childNames(n tree.Node) []string {
	nms := []string{}
	for _, c := range n.AsTree().Children {
		nms = append(nms, c.AsTree().Name)
	}
	return nms
}

func names(nodes []tree.Node) []string {
	nms := []string{}
	for _, n := range nodes {
		nms = append(nms, n.AsTree().Name)
	}
	return nms
}

// pointersByTarget walks the whole tree and collects all pointers per target.
func pointersByTarget(root tree.Node) map[tree.Node][]*Pointer {
	res := map[tree.Node][]*Pointer{}
	root.AsTree().WalkDown(func(n tree.Node) bool {
		if p, ok := n.(*Pointer); ok {
			res[p.Target] = append(res[p.Target], p)
		}
		return tree.Continue
	})
	return res
}

func pointerCount(root tree.Node) int {
	c := 0
	for _, ps := range pointersByTarget(root) {
		c += len(ps)
	}
	return c
}

func TestReparentCreatesPointer(t *testing.T) {
	root := newRoot("root")
	b := newNamed(root, "b")
	c := newNamed(root, "c")
	n := newNamed(b, "n")
	n2 := newNamed(b, "n2")

	Reparent(n, c, false, nil)
	assert.Equal(t, tree.Node(c), n.Parent)

	p := PointerOf(n)
	require.NotNil(t, p)
	assert.Same(t, n, p.Target)
	assert.Equal(t, "n", p.Name)
	assert.Equal(t, tree.Node(b), p.Parent)
	assert.Equal(t, 0, p.IndexInParent()) // takes over n's former position
	assert.True(t, Displaced(n))
	assert.False(t, Displaced(n2))
}

func TestReparentNoOpSameParent(t *testing.T) {
	root := newRoot("root")
	b := newNamed(root, "b")
	n := newNamed(b, "n")

	Reparent(n, b, false, nil)
	assert.Nil(t, PointerOf(n))
	assert.Equal(t, []string{"n"}, childNames(b))
}

func TestReparentNilArgs(t *testing.T) {
	root := newRoot("root")
	b := newNamed(root, "b")
	n := newNamed(b, "n")

	Reparent(nil, b, false, nil)
	Reparent(n, nil, false, nil)
	assert.Equal(t, tree.Node(b), n.Parent)
	assert.Nil(t, PointerOf(n))
}

func TestReparentIgnore(t *testing.T) {
	root := newRoot("root")
	b := newNamed(root, "b")
	c := newNamed(root, "c")
	n := newNamed(b, "n")
	g := newNamed(n, "g")

	SetIgnore(n)
	Reparent(n, c, false, nil)
	assert.Equal(t, tree.Node(c), n.Parent)
	assert.Nil(t, PointerOf(n))
	assert.Nil(t, PointerOf(g))
	assert.Empty(t, b.Children)
	assert.Zero(t, pointerCount(root))
}

func TestReparentIgnoreChildren(t *testing.T) {
	root := newRoot("root")
	a := newNamed(root, "a")
	c := newNamed(root, "c")
	b := newNamed(a, "b")
	n1 := newNamed(b, "n1")
	newNamed(n1, "g1")

	SetIgnoreChildren(b)
	Reparent(b, c, false, nil)

	p := PointerOf(b)
	require.NotNil(t, p)
	assert.Empty(t, p.Children) // no shadows for descendants
	assert.Nil(t, PointerOf(n1))
	assert.Equal(t, 1, pointerCount(root))
}

func TestReparentIgnoreChildrenPredicate(t *testing.T) {
	root := newRoot("root")
	a := newNamed(root, "a")
	c := newNamed(root, "c")
	b := newNamed(a, "b")
	n1 := newNamed(b, "n1")

	var evaluated []tree.Node
	Reparent(b, c, false, func(n tree.Node) bool {
		evaluated = append(evaluated, n)
		return true
	})

	// the predicate is evaluated once, against the node being moved
	require.Len(t, evaluated, 1)
	assert.Equal(t, tree.Node(b), evaluated[0])

	p := PointerOf(b)
	require.NotNil(t, p)
	assert.Empty(t, p.Children)
	assert.Nil(t, PointerOf(n1))
}

func TestReparentShadowTree(t *testing.T) {
	root := newRoot("root")
	a := newNamed(root, "a")
	x := newNamed(root, "x")
	b := newNamed(a, "b")
	c := newNamed(b, "c")
	d := newNamed(c, "d")

	Reparent(b, x, false, nil)

	pb := PointerOf(b)
	require.NotNil(t, pb)
	assert.Equal(t, tree.Node(a), pb.Parent)

	pc := PointerOf(c)
	require.NotNil(t, pc)
	assert.Equal(t, tree.Node(pb), pc.Parent)
	assert.Same(t, c, pc.Target)

	pd := PointerOf(d)
	require.NotNil(t, pd)
	assert.Equal(t, tree.Node(pc), pd.Parent)

	assert.Equal(t, "/root/a/b/c/d", Path(d))
	assert.Equal(t, tree.Node(d), Find(root, "a/b/c/d", true))
}

func TestReparentShadowRelocatesExistingPointers(t *testing.T) {
	root := newRoot("root")
	a := newNamed(root, "a")
	x := newNamed(root, "x")
	y := newNamed(root, "y")
	b := newNamed(a, "b")
	g := newNamed(b, "g")

	Reparent(g, x, false, nil)
	pg := PointerOf(g)
	require.NotNil(t, pg)
	assert.Equal(t, tree.Node(b), pg.Parent)

	Reparent(b, y, false, nil)
	pb := PointerOf(b)
	require.NotNil(t, pb)
	// g's pointer stays at the original position, nested under b's pointer
	assert.Equal(t, tree.Node(pb), pg.Parent)
	assert.Empty(t, b.Children)
	assert.Equal(t, "/root/a/b/g", Path(g))
	assert.Equal(t, 2, pointerCount(root))
}

func TestReparentDoubleMove(t *testing.T) {
	root := newRoot("root")
	b := newNamed(root, "b")
	c := newNamed(root, "c")
	d := newNamed(root, "d")
	n := newNamed(b, "n")

	Reparent(n, c, false, nil)
	p1 := PointerOf(n)
	require.NotNil(t, p1)

	Reparent(n, d, false, nil)
	p2 := PointerOf(n)
	assert.Same(t, p1, p2)
	assert.Equal(t, tree.Node(d), n.Parent)
	assert.Equal(t, "/root/b/n", Path(n))
	assert.Equal(t, 1, pointerCount(root))
}

func TestReparentRoundTrip(t *testing.T) {
	root := newRoot("root")
	b := newNamed(root, "b")
	c := newNamed(root, "c")
	newNamed(b, "n1")
	n2 := newNamed(b, "n2")
	newNamed(b, "n3")

	Reparent(n2, c, false, nil)
	Reparent(n2, b, false, nil)

	assert.Equal(t, []string{"n1", "n2", "n3"}, childNames(b))
	assert.Equal(t, 1, n2.IndexInParent())
	assert.Nil(t, PointerOf(n2))
	assert.Empty(t, c.Children)
	assert.Zero(t, pointerCount(root))
}

func TestReparentNestedMerge(t *testing.T) {
	root := newRoot("root")
	r := newNamed(root, "r")
	x := newNamed(root, "x")
	y := newNamed(root, "y")
	c := newNamed(r, "c")
	g := newNamed(c, "g")

	Reparent(g, x, false, nil)
	pathG := Path(g)
	assert.Equal(t, "/root/r/c/g", pathG)

	Reparent(r, y, false, nil)
	Reparent(r, root, false, nil)

	assert.Nil(t, PointerOf(r))
	assert.Nil(t, PointerOf(c))
	pg := PointerOf(g)
	require.NotNil(t, pg)
	assert.Equal(t, tree.Node(c), pg.Parent)
	assert.Equal(t, pathG, Path(g))
	assert.Equal(t, tree.Node(g), Find(root, "r/c/g", true))
	assert.Equal(t, 0, r.IndexInParent())
	assert.Equal(t, 1, pointerCount(root))
}

func TestReparentMergePromotesDisplacedChildren(t *testing.T) {
	root := newRoot("root")
	p1 := newNamed(root, "p1")
	p2 := newNamed(root, "p2")
	p3 := newNamed(root, "p3")
	x := newNamed(p1, "x")
	y := newNamed(x, "y")

	Reparent(x, p2, false, nil)
	Reparent(y, p1, false, nil)
	Reparent(x, p3, false, nil)
	Reparent(x, p1, false, nil) // home again; y's pointer is promoted under x

	assert.Nil(t, PointerOf(x))
	py := PointerOf(y)
	require.NotNil(t, py)
	assert.Equal(t, tree.Node(x), py.Parent)
	assert.Equal(t, "/root/p1/x/y", Path(y))
	assert.Equal(t, []string{"x", "y"}, childNames(p1))
}

func TestAtMostOnePointerInvariant(t *testing.T) {
	root := newRoot("root")
	p1 := newNamed(root, "p1")
	p2 := newNamed(root, "p2")
	p3 := newNamed(root, "p3")
	x := newNamed(p1, "x")
	y := newNamed(x, "y")
	z := newNamed(p2, "z")

	moves := []struct {
		n, parent tree.Node
	}{
		{x, p2}, {y, p3}, {z, p1}, {x, p3}, {x, p1}, {z, p3}, {y, x},
	}
	for _, m := range moves {
		Reparent(m.n, m.parent, false, nil)
		for target, ps := range pointersByTarget(root) {
			require.Len(t, ps, 1)
			require.NotNil(t, target)
			assert.Same(t, ps[0], PointerOf(target))
		}
	}
}

func TestReparentKeepPlacement(t *testing.T) {
	root := tree.New[*testdata.Sprite]()
	root.SetName("root")
	a := tree.New[*testdata.Sprite](root)
	a.SetName("a")
	a.X, a.Y = 10, 20
	b := tree.New[*testdata.Sprite](root)
	b.SetName("b")
	b.X, b.Y = 100, 200
	s := tree.New[*testdata.Sprite](a)
	s.SetName("s")
	s.X, s.Y = 5, 5

	Reparent(s, b, true, nil)
	gx, gy := s.GlobalPosition()
	assert.Equal(t, float32(15), gx)
	assert.Equal(t, float32(25), gy)
	assert.Equal(t, float32(-85), s.X)
	assert.Equal(t, float32(-175), s.Y)

	// without keepPlacement the local offset is preserved instead
	s2 := tree.New[*testdata.Sprite](a)
	s2.SetName("s2")
	s2.X, s2.Y = 5, 5
	Reparent(s2, b, false, nil)
	assert.Equal(t, float32(5), s2.X)
	gx2, gy2 := s2.GlobalPosition()
	assert.Equal(t, float32(105), gx2)
	assert.Equal(t, float32(205), gy2)
}

func TestReparentPointerDirectly(t *testing.T) {
	root := newRoot("root")
	b := newNamed(root, "b")
	c := newNamed(root, "c")
	d := newNamed(root, "d")
	n := newNamed(b, "n")

	Reparent(n, c, false, nil)
	p := PointerOf(n)
	require.NotNil(t, p)

	// moving a pointer by hand is a plain move with no extra bookkeeping
	Reparent(p, d, false, nil)
	assert.Equal(t, tree.Node(d), p.Parent)
	assert.Equal(t, 1, pointerCount(root))
	assert.Same(t, p, PointerOf(n))
}
