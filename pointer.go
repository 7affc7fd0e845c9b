// Copyright (c) 2026, The NodePointer Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nodepointer implements reference-preserving reparenting for the
// [tree] package: when a node is moved to a new parent with [Reparent], a
// lightweight surrogate node (a [Pointer]) is left behind at its original
// position, so that paths computed before the move keep resolving to the
// relocated node through [Find], [Path], and [Children].
//
// A node is "displaced" while it is away from its original position; it
// then carries a property linking it to the single Pointer marking that
// position, and the Pointer's [Pointer.Target] refers back to it. Moving a
// displaced node back to its Pointer's parent merges the Pointer away
// again, so a node has at most one Pointer no matter how many times it is
// moved.
//
// All operations are synchronous and must run on the goroutine that owns
// the tree; concurrent mutation of the same subtree is undefined.
package nodepointer

import (
	"github.com/Ardot66/NodePointer/base/errors"
	"github.com/Ardot66/NodePointer/base/metadata"
	"github.com/Ardot66/NodePointer/tree"
)

// Property keys used for the pointer bookkeeping. They can be reassigned,
// but only before any node is moved, as nodes linked under the old keys
// would otherwise no longer be recognized.
var (
	// LinkProperty is the property key under which a displaced node holds
	// the [Pointer] marking its original position.
	LinkProperty = "NodePointer:Link"

	// IgnoreProperty marks a node to be moved by [Reparent] without any
	// pointer bookkeeping, for it and, transitively, its subtree. Path
	// stability is intentionally given up for such nodes.
	IgnoreProperty = "NodePointer:Ignore"

	// IgnoreChildrenProperty marks a node to get a [Pointer] for itself
	// while skipping pointer creation for its descendants when it is moved.
	IgnoreChildrenProperty = "NodePointer:IgnoreChildren"
)

// Pointer is a surrogate node standing at the original tree position of a
// node that has been moved elsewhere with [Reparent]. It takes over the
// node's name so that paths through the original position resolve
// identically. A Pointer aliases its target; it never owns its lifetime.
// Pointers are created and destroyed by [Reparent] and should not be
// constructed directly.
type Pointer struct {
	tree.NodeBase

	// Target is the displaced node this Pointer stands in for.
	Target tree.Node `copier:"-"`
}

// Placer is the optional interface for node types with a placement (such
// as a global transform) that can be captured before a reparent and
// restored afterward. The placement payload is opaque to this package: it
// is only read back and written, never interpreted.
type Placer interface {

	// Placement returns the node's current placement.
	Placement() any

	// SetPlacement restores a placement previously returned by Placement.
	SetPlacement(p any)
}

// PointerOf returns the [Pointer] marking the original position of the
// given node, or nil if the node is at its original position (or has
// never been moved).
func PointerOf(n tree.Node) *Pointer {
	if n == nil {
		return nil
	}
	return errors.Ignore1(metadata.Get[*Pointer](n.AsTree().Properties, LinkProperty))
}

// Displaced reports whether the given node is currently away from its
// original position, i.e. linked to a [Pointer].
func Displaced(n tree.Node) bool {
	return PointerOf(n) != nil
}

// SetIgnore marks the given node to be moved without pointer bookkeeping.
// See [IgnoreProperty].
func SetIgnore(n tree.Node) {
	n.AsTree().SetProperty(IgnoreProperty, true)
}

// Ignored reports whether the given node is marked with [IgnoreProperty].
func Ignored(n tree.Node) bool {
	return n.AsTree().HasProperty(IgnoreProperty)
}

// SetIgnoreChildren marks the given node so that its descendants are
// skipped during pointer creation. See [IgnoreChildrenProperty].
func SetIgnoreChildren(n tree.Node) {
	n.AsTree().SetProperty(IgnoreChildrenProperty, true)
}

// IgnoresChildren reports whether the given node is marked with
// [IgnoreChildrenProperty].
func IgnoresChildren(n tree.Node) bool {
	return n.AsTree().HasProperty(IgnoreChildrenProperty)
}

// newPointer returns a new unparented [Pointer] for the given node,
// named identically to it.
func newPointer(target tree.Node) *Pointer {
	p := tree.New[*Pointer]()
	p.SetName(target.AsTree().Name)
	p.Target = target.AsTree().This
	return p
}

// setLink records the node side of the node to pointer link.
func setLink(n tree.Node, p *Pointer) {
	n.AsTree().SetProperty(LinkProperty, p)
}

// clearLink removes the node side of the node to pointer link.
func clearLink(n tree.Node) {
	n.AsTree().DeleteProperty(LinkProperty)
}
