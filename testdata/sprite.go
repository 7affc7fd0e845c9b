// Copyright (c) 2026, The NodePointer Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package testdata provides node types used in NodePointer tests.
package testdata

import (
	"github.com/Ardot66/NodePointer/tree"
)

// Sprite is a node with a 2D offset relative to its parent, whose global
// position is the sum of the offsets of its Sprite ancestors. It
// implements the placement accessors used for keep-placement reparenting.
type Sprite struct {
	tree.NodeBase

	// X and Y are the sprite's offset relative to its parent.
	X, Y float32
}

// GlobalPosition returns the sprite's position summed over all of its
// Sprite ancestors.
func (s *Sprite) GlobalPosition() (x, y float32) {
	x, y = s.X, s.Y
	for p := s.Parent; p != nil; p = p.AsTree().Parent {
		if ps, ok := p.(*Sprite); ok {
			x += ps.X
			y += ps.Y
		}
	}
	return x, y
}

// Placement returns the sprite's global position as an opaque payload.
func (s *Sprite) Placement() any {
	x, y := s.GlobalPosition()
	return [2]float32{x, y}
}

// SetPlacement restores a global position captured by [Sprite.Placement],
// adjusting the local offset for the sprite's current parent.
func (s *Sprite) SetPlacement(p any) {
	g, ok := p.([2]float32)
	if !ok {
		return
	}
	var px, py float32
	for a := s.Parent; a != nil; a = a.AsTree().Parent {
		if as, ok := a.(*Sprite); ok {
			px += as.X
			py += as.Y
		}
	}
	s.X, s.Y = g[0]-px, g[1]-py
}
