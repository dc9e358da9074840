// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package amr

// Level holds per-level state: the patches, timing, and refinement
// thresholds used by spec.md §3's Level data model.
type Level struct {
	Index int

	Patches []*Patch
	// corner2id maps a patch's integer corner coordinates to its index in
	// Patches, enabling O(1) sibling lookup without pointer-based edges.
	corner2id map[[3]int]PatchID

	T        float64 // current time
	TPrev    float64 // previous time
	SubStep  int     // sub-step counter (individual-timestep mode)
	Dh       float64 // cell size at this level
}

// NewLevel creates an empty level.
func NewLevel(index int, dh float64) *Level {
	return &Level{
		Index:     index,
		corner2id: make(map[[3]int]PatchID),
		Dh:        dh,
	}
}

// Add registers a new patch in this level and indexes it by corner.
func (lv *Level) Add(p *Patch) PatchID {
	id := PatchID(len(lv.Patches))
	lv.Patches = append(lv.Patches, p)
	lv.corner2id[p.Corner] = id
	return id
}

// Lookup returns the patch id at the given corner, or NoNeighbor if absent.
func (lv *Level) Lookup(corner [3]int) PatchID {
	if id, ok := lv.corner2id[corner]; ok {
		if lv.Patches[id].Active {
			return id
		}
	}
	return NoNeighbor
}

// Count returns the number of active patches in this level.
func (lv *Level) Count() int {
	n := 0
	for _, p := range lv.Patches {
		if p.Active {
			n++
		}
	}
	return n
}

// remove marks a patch inactive and drops it from the corner index. The
// backing slot in Patches is left as a tombstone so other patches' integer
// ids remain valid (spec.md §9: indices, never pointers, survive mutation).
func (lv *Level) remove(id PatchID) {
	p := lv.Patches[id]
	p.Active = false
	delete(lv.corner2id, p.Corner)
}
