// Copyright (c) 2026, The NodePointer Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"reflect"
	"strconv"
	"strings"
	"sync/atomic"
)

// admin.go has infrastructure code outside of the Node interface.

// InitNode initializes the node: it sets [NodeBase.This] to the given
// value and calls [Node.Init] if the node has not already been
// initialized. It is called implicitly by [New] and the child adding
// functions, so you only need to call it directly for root nodes
// constructed as literals.
func InitNode(n Node) {
	nb := n.AsTree()
	if nb.This == nil {
		nb.This = n
		n.Init()
	}
}

// SetParent sets the parent of the given node to the given parent node.
// This is only for nodes with no existing parent; see [MoveToParent] to
// move nodes that already have a parent. It does not add the node to the
// parent's list of children; see [NodeBase.AddChild] for a version that
// does. If the node does not have a name yet, it is given one from its
// lowercase type name and the number of children that have ever been
// added to the parent.
func SetParent(child Node, parent Node) {
	nb := child.AsTree()
	if nb.This != nil {
		child = nb.This
	}
	pb := parent.AsTree()
	nb.Parent = pb.This
	c := atomic.AddUint64(&pb.numLifetimeChildren, 1)
	if nb.Name == "" {
		nb.SetName(typeIDName(child) + "-" + strconv.FormatUint(c-1, 10)) // must subtract 1 so we start at 0
	}
	child.OnAdd()
	nb.WalkUpParent(func(p Node) bool {
		if fun := p.AsTree().OnChildAdded; fun != nil {
			fun(child)
		}
		return Continue
	})
}

// MoveToParent removes the given node from its current parent
// and adds it as a child of the given new parent.
// The old and new parents can be in different trees (or not).
func MoveToParent(child Node, parent Node) {
	if op := child.AsTree().Parent; op != nil {
		op.AsTree().RemoveChild(child)
	}
	parent.AsTree().AddChild(child)
}

// New returns a new node of the given type. If a parent is given, the
// node is added as a child of it; otherwise, the node is a root node,
// and its name defaults to its lowercase type name.
func New[T Node](parent ...Node) T {
	n := reflect.New(reflect.TypeOf((*T)(nil)).Elem().Elem()).Interface().(T)
	InitNode(n)
	if len(parent) == 0 {
		nb := n.AsTree()
		if nb.Name == "" {
			nb.SetName(typeIDName(n))
		}
		return n
	}
	parent[0].AsTree().AddChild(n)
	return n
}

// NewInstance returns a new uninitialized instance of this node's type.
func (n *NodeBase) NewInstance() Node {
	return reflect.New(reflect.TypeOf(n.This).Elem()).Interface().(Node)
}

// typeIDName returns the lowercase type name of the given node,
// used for automatic unique naming.
func typeIDName(n Node) string {
	t := reflect.TypeOf(n)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return strings.ToLower(t.Name())
}

// IsRoot tests whether the given node is the root node in its tree.
func IsRoot(n Node) bool {
	return n.AsTree().Parent == nil
}

// Root returns the root node of the given node's tree.
func Root(n Node) Node {
	if IsRoot(n) {
		return n.AsTree().This
	}
	return Root(n.AsTree().Parent)
}
