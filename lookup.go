// Copyright (c) 2026, The NodePointer Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nodepointer

import (
	"fmt"

	"github.com/Ardot66/NodePointer/base/errors"
	"github.com/Ardot66/NodePointer/tree"
)

// Children returns the children of the given parent as they would appear
// had no node ever been reparented: children that have been moved away
// (linked to a [Pointer] elsewhere) are omitted, and [Pointer] children
// are replaced by the nodes they stand in for. If displaced is true, the
// actual children are returned unmodified.
func Children(parent tree.Node, displaced bool) []tree.Node {
	if parent == nil {
		return nil
	}
	kids := parent.AsTree().Children
	if displaced {
		return kids
	}
	res := make([]tree.Node, 0, len(kids))
	for _, c := range kids {
		if p, ok := c.(*Pointer); ok {
			res = append(res, p.Target)
			continue
		}
		if Displaced(c) {
			continue
		}
		res = append(res, c)
	}
	return res
}

// Path returns the path of the given node's [Pointer] if it is displaced,
// so that references computed before a move keep working, and the node's
// own path otherwise. The returned path always leads back to the node
// through [Find] with displaced set.
func Path(n tree.Node) string {
	if p := PointerOf(n); p != nil {
		return p.Path()
	}
	return n.AsTree().Path()
}

// PathFrom is like [Path] but relative to the given parent node, which is
// also mapped to its original position if it is itself displaced. The
// returned path is in the format consumed by [Find], so relative
// references stay stable regardless of where either node currently lives.
func PathFrom(n, parent tree.Node) string {
	from := parent.AsTree().This
	if p := PointerOf(parent); p != nil {
		from = p
	}
	if p := PointerOf(n); p != nil {
		return p.PathFrom(from)
	}
	return n.AsTree().PathFrom(from)
}

// Find resolves the given path starting from the original position of the
// given origin node: if the origin is displaced, resolution starts from
// its [Pointer] instead, so relative paths remain stable regardless of
// where the caller's reference currently lives. If the path resolves to a
// [Pointer], the node it stands in for is returned. If it resolves to a
// displaced node and displaced is false, or if it does not resolve at all,
// nil is returned. See [FindErr] for a version that returns an error.
func Find(origin tree.Node, path string, displaced bool) tree.Node {
	n, err := FindErr(origin, path, displaced)
	if err != nil {
		return nil
	}
	return n
}

// FindErr is the fallible version of [Find]. It returns an error wrapping
// [ErrNilOrigin] if origin is nil, an error wrapping [ErrNotFound] if the
// path does not resolve, and a [*DisplacedError] if the path resolves to a
// displaced node and displaced is false.
func FindErr(origin tree.Node, path string, displaced bool) (tree.Node, error) {
	if origin == nil {
		return nil, errors.Log(fmt.Errorf("nodepointer.FindErr: %w", ErrNilOrigin))
	}
	start := origin.AsTree().This
	if p := PointerOf(origin); p != nil {
		start = p
	}
	n := start.AsTree().FindPath(path)
	if n == nil {
		return nil, fmt.Errorf("%w: %q from %q", ErrNotFound, path, start.AsTree().Path())
	}
	if !displaced && Displaced(n) {
		return nil, &DisplacedError{Node: n, Path: path}
	}
	if p, ok := n.(*Pointer); ok {
		n = p.Target
	}
	return n, nil
}
