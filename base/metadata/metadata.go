// Copyright (c) 2026, The NodePointer Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metadata provides a map of named any elements
// with generic support for type-safe Get and nil-safe Set.
// Metadata keys often function as optional fields in a struct,
// and values may hold object references, so in general it is good
// practice to provide access functions that establish standard key
// names, to avoid issues with typos.
package metadata

import (
	"fmt"
	"maps"
)

// Data is metadata as a map of named any elements
// with generic support for type-safe [Get] and nil-safe [Data.Set].
type Data map[string]any

func (md *Data) init() {
	if *md == nil {
		*md = make(map[string]any)
	}
}

// Set sets the given key to the given value, ensuring that
// the map is created if not previously.
func (md *Data) Set(key string, value any) {
	md.init()
	(*md)[key] = value
}

// Has reports whether the given key is present.
func (md Data) Has(key string) bool {
	_, ok := md[key]
	return ok
}

// Delete removes the given key, doing nothing if it is not present.
func (md Data) Delete(key string) {
	delete(md, key)
}

// Get gets the metadata value of the given type for the given key.
// It returns an error if the key is not present or the value is a
// different type.
func Get[T any](md Data, key string) (T, error) {
	var z T
	x, ok := md[key]
	if !ok {
		return z, fmt.Errorf("key %q not found in metadata", key)
	}
	v, ok := x.(T)
	if !ok {
		return z, fmt.Errorf("key %q has a different type than expected %T: is %T", key, z, x)
	}
	return v, nil
}

// Copy does a shallow copy of metadata from the source.
// Any pointer-based values will still point to the same
// underlying data as the source, but the two maps remain
// distinct. It uses [maps.Copy].
func (md *Data) Copy(src Data) {
	if src == nil {
		return
	}
	md.init()
	maps.Copy(*md, src)
}
