// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package amr

// Offsets enumerates the 26 face/edge/corner neighbor directions as unit
// steps in {-1,0,1}^3 (excluding the origin), in a fixed, deterministic
// order used to index Patch.Sibling.
var Offsets [NSib][3]int

var offsetIndex = make(map[[3]int]int, NSib)

func init() {
	idx := 0
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				Offsets[idx] = [3]int{dx, dy, dz}
				offsetIndex[Offsets[idx]] = idx
				idx++
			}
		}
	}
}

// OppositeIndex returns the sibling slot holding the direction opposite to
// Offsets[i], used to enforce spec.md §3 invariant 3 (sibling symmetry).
func OppositeIndex(i int) int {
	o := Offsets[i]
	return offsetIndex[[3]int{-o[0], -o[1], -o[2]}]
}

// DirIndex returns the sibling slot for a given unit offset, or -1 if the
// offset is not one of the 26 directions (e.g. the zero offset).
func DirIndex(dx, dy, dz int) int {
	if i, ok := offsetIndex[[3]int{dx, dy, dz}]; ok {
		return i
	}
	return -1
}

// FaceIndex maps the 6 axis-aligned face directions (used by flux
// fix-up/restriction) to their Offsets slot: order -x,+x,-y,+y,-z,+z.
var FaceIndex [6]int

func init() {
	FaceIndex = [6]int{
		DirIndex(-1, 0, 0), DirIndex(1, 0, 0),
		DirIndex(0, -1, 0), DirIndex(0, 1, 0),
		DirIndex(0, 0, -1), DirIndex(0, 0, 1),
	}
}
