// Copyright (c) 2026, The NodePointer Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nodepointer

import (
	"slices"

	"github.com/Ardot66/NodePointer/base/errors"
	"github.com/Ardot66/NodePointer/tree"
)

// Reparent moves the given node to the given new parent, maintaining the
// pointer bookkeeping so that paths through the node's original position
// keep resolving to it:
//
//   - On the first move away from its original parent, a [Pointer] named
//     after the node is inserted at the node's former position and linked
//     to it, and the node's subtree gains a parallel shadow tree of
//     Pointers marking the original positions of its descendants (unless
//     suppressed, see below).
//   - Moving a node that is already displaced leaves its existing Pointer
//     untouched; a node has at most one Pointer however often it moves.
//   - Moving a displaced node back to its Pointer's parent merges the
//     Pointer away: shadow children whose targets are still displaced are
//     promoted under the returning node, the rest are merged recursively,
//     and the node is unlinked and re-inserted at the Pointer's position.
//
// Moving a node to its current parent is a silent no-op. A node marked
// with [IgnoreProperty] is moved without any bookkeeping. Shadow creation
// for descendants is skipped when the node is marked with
// [IgnoreChildrenProperty] or when the given ignoreChildren function,
// which may be nil, returns true; the function is evaluated once, against
// the node being moved, not against each descendant.
//
// If keepPlacement is true and the node implements [Placer], its placement
// is captured before the move and restored after it, so a node with a
// global transform stays put visually.
func Reparent(n, parent tree.Node, keepPlacement bool, ignoreChildren func(n tree.Node) bool) {
	if n == nil || parent == nil {
		errors.Log(errors.New("nodepointer.Reparent: node and parent must not be nil"))
		return
	}
	nb := n.AsTree()
	n = nb.This
	parent = parent.AsTree().This
	if nb.Parent == parent || n == parent {
		return
	}

	var plc Placer
	var pl any
	if keepPlacement {
		if p, ok := n.(Placer); ok {
			plc, pl = p, p.Placement()
		}
	}

	// Pointers are managed by this package; moving one around manually is
	// a plain move, as is moving a node flagged ignore.
	if _, isPointer := n.(*Pointer); isPointer || Ignored(n) {
		tree.MoveToParent(n, parent)
		if plc != nil {
			plc.SetPlacement(pl)
		}
		return
	}

	oldParent := nb.Parent
	oldIndex := nb.IndexInParent()
	if oldParent != nil {
		oldParent.AsTree().RemoveChild(n)
	}

	if p := PointerOf(n); p != nil {
		if p.Parent == parent { // returning home
			idx := p.IndexInParent()
			merge(n, p)
			parent.AsTree().InsertChild(n, idx)
			if plc != nil {
				plc.SetPlacement(pl)
			}
			return
		}
		// already displaced; the existing Pointer keeps marking the
		// original position, so this is a physical move only
	} else if oldParent != nil {
		p := newPointer(n)
		oldParent.AsTree().InsertChild(p, oldIndex)
		setLink(n, p)
		if !IgnoresChildren(n) && (ignoreChildren == nil || !ignoreChildren(n)) {
			makeShadows(n, p)
		}
	}

	parent.AsTree().AddChild(n)
	if plc != nil {
		plc.SetPlacement(pl)
	}
}

// makeShadows builds the shadow tree of [Pointer] nodes under the given
// freshly created pointer, mirroring the original positions of the moved
// node's subtree. It uses an explicit worklist so that deep trees do not
// grow the call stack.
func makeShadows(n tree.Node, p *Pointer) {
	type frame struct {
		node   tree.Node
		shadow *Pointer
	}
	stack := []frame{{n, p}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		// iterate over a snapshot: relocating pointer children mutates the list
		for _, c := range slices.Clone(f.node.AsTree().Children) {
			if cp, ok := c.(*Pointer); ok {
				// an existing pointer for a previously moved descendant
				// stays at the original position, under the new shadow
				tree.MoveToParent(cp, f.shadow)
				continue
			}
			if Ignored(c) || Displaced(c) {
				// ignored subtrees get no shadows; a displaced child's
				// pointer already marks its true original position
				continue
			}
			cs := newPointer(c)
			f.shadow.AsTree().AddChild(cs)
			setLink(c, cs)
			if !IgnoresChildren(c) {
				stack = append(stack, frame{c, cs})
			}
		}
	}
}

// merge reconciles the shadow children of the given pointer with the live
// children of the node returning home, then unlinks the node and destroys
// the pointer. Shadow children whose targets are still displaced (no live
// child of the same name) are promoted to live children of the node; the
// ones with a live same-named child are merged into it recursively. Name
// reconciliation relies on sibling name uniqueness; with duplicate names
// the first match wins.
func merge(n tree.Node, p *Pointer) {
	for _, c := range slices.Clone(p.Children) {
		cp, ok := c.(*Pointer)
		if !ok {
			continue
		}
		live := n.AsTree().ChildByName(cp.Name)
		if live == nil {
			tree.MoveToParent(cp, n)
			continue
		}
		merge(live, cp)
	}
	clearLink(n)
	p.Delete()
}
