// Copyright (c) 2026, The NodePointer Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nodepointer

import (
	"fmt"

	"github.com/Ardot66/NodePointer/base/errors"
	"github.com/Ardot66/NodePointer/tree"
)

// ErrNilOrigin indicates that a nil origin node was passed where a valid
// node is required.
var ErrNilOrigin = errors.New("origin node is nil")

// ErrNotFound indicates that a path did not resolve to any node.
var ErrNotFound = errors.New("no node found at path")

// DisplacedError is returned by [FindErr] when a path resolves to a node
// that is currently displaced and displaced nodes were not requested.
// It signals that the caller's path expectation is stale: the node now
// appears, through its [Pointer], at its original position instead.
type DisplacedError struct {

	// Node is the displaced node the path resolved to.
	Node tree.Node

	// Path is the path that was resolved.
	Path string
}

func (e *DisplacedError) Error() string {
	return fmt.Sprintf("node %q at path %q is displaced", e.Node.AsTree().Name, e.Path)
}
