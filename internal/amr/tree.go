// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package amr

import "github.com/cpmech/gosl/chk"

// Tree is the forest of patches across all levels: the direct analogue of
// fem.Domain's role as owner-of-topology, specialized to an octree instead
// of an unstructured mesh. Patches are referenced by (level, PatchID).
type Tree struct {
	Levels   []*Level
	Lmax     int // number of levels == MaxLevel+1
	NVar     int
	PatchSize int
	WithPot  bool
}

// NewTree creates an empty forest for the given number of levels.
func NewTree(lmax, nvar, patchSize int, withPot bool, dh []float64) *Tree {
	t := &Tree{Lmax: lmax, NVar: nvar, PatchSize: patchSize, WithPot: withPot}
	t.Levels = make([]*Level, lmax)
	for l := 0; l < lmax; l++ {
		t.Levels[l] = NewLevel(l, dh[l])
	}
	return t
}

// InitRoot populates level 0 with nx0^3/PatchSize^3 patches tiling the
// domain, then wires their sibling relations (periodic or boundary-coded
// per the caller's wrap flag).
func (t *Tree) InitRoot(nx0 int, periodic bool) error {
	if nx0%t.PatchSize != 0 {
		return chk.Err("nx0 (%d) must be a multiple of PatchSize (%d)", nx0, t.PatchSize)
	}
	n := nx0 / t.PatchSize
	span := t.PatchSize << uint(t.Lmax-1)
	lv := t.Levels[0]
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				corner := [3]int{i * span, j * span, k * span}
				p := NewPatch(0, corner, 0, t.NVar, t.PatchSize, t.WithPot)
				lv.Add(p)
			}
		}
	}
	t.rebuildSiblings(0, n, span, periodic)
	return nil
}

// rebuildSiblings recomputes every patch's 26 sibling ids at level l by
// looking up the neighbor corner coordinates. periodic wraps lookups at
// the root level across an n x n x n tiling spanning `span` units/patch;
// out-of-domain, non-periodic neighbors are coded as boundary sentinels.
func (t *Tree) rebuildSiblings(l, n, span int, periodic bool) {
	lv := t.Levels[l]
	domainSpan := n * span
	for _, p := range lv.Patches {
		if !p.Active {
			continue
		}
		for d := 0; d < NSib; d++ {
			off := Offsets[d]
			nc := [3]int{p.Corner[0] + off[0]*span, p.Corner[1] + off[1]*span, p.Corner[2] + off[2]*span}
			if l == 0 {
				outside := false
				for axis := 0; axis < 3; axis++ {
					if nc[axis] < 0 || nc[axis] >= domainSpan {
						outside = true
					}
					if periodic {
						nc[axis] = ((nc[axis] % domainSpan) + domainSpan) % domainSpan
					}
				}
				if outside && !periodic {
					p.Sibling[d] = BoundaryLo - d
					continue
				}
			}
			p.Sibling[d] = int(lv.Lookup(nc))
		}
	}
	// enforce sibling symmetry (invariant 3): if A lists B, B must list A.
	for _, p := range lv.Patches {
		if !p.Active {
			continue
		}
		for d := 0; d < NSib; d++ {
			nb := p.Sibling[d]
			if nb >= 0 {
				other := lv.Patches[nb]
				od := OppositeIndex(d)
				myID := lv.Lookup(p.Corner)
				other.Sibling[od] = int(myID)
			}
		}
	}
}

// Refine creates the 8 children of patch id at level l, filled by
// interpolation from the father via fillChild, and wires father/son links.
// This is the nonexistent->leaf transition of spec.md §4.7.
func (t *Tree) Refine(l int, id PatchID, fillChild func(father *Patch, octant int, child *Patch)) (PatchID, error) {
	if l+1 >= t.Lmax {
		return NoSon, chk.Err("cannot refine patch at level %d: no level %d available", l, l+1)
	}
	father := t.Levels[l].Patches[id]
	if father.Son != NoSon {
		return father.Son, nil // already refined
	}
	childLevel := t.Levels[l+1]
	childSpan := t.PatchSize << uint(t.Lmax-1-(l+1))
	base := PatchID(len(childLevel.Patches))
	for oct := 0; oct < 8; oct++ {
		dx := (oct >> 0) & 1
		dy := (oct >> 1) & 1
		dz := (oct >> 2) & 1
		corner := [3]int{
			father.Corner[0] + dx*childSpan,
			father.Corner[1] + dy*childSpan,
			father.Corner[2] + dz*childSpan,
		}
		child := NewPatch(l+1, corner, oct, t.NVar, t.PatchSize, t.WithPot)
		child.Father = id
		childLevel.Add(child)
		if fillChild != nil {
			fillChild(father, oct, child)
		}
	}
	father.Son = base
	t.rebuildSiblingsAtLevel(l + 1)
	t.rebuildFluxPatches(l)
	return base, nil
}

// rebuildSiblingsAtLevel recomputes sibling links for every active patch
// at level l by looking up neighbor corners within that level only
// (non-periodic; refined levels never wrap).
func (t *Tree) rebuildSiblingsAtLevel(l int) {
	lv := t.Levels[l]
	span := t.PatchSize << uint(t.Lmax-1-l)
	for _, p := range lv.Patches {
		if !p.Active {
			continue
		}
		for d := 0; d < NSib; d++ {
			off := Offsets[d]
			nc := [3]int{p.Corner[0] + off[0]*span, p.Corner[1] + off[1]*span, p.Corner[2] + off[2]*span}
			p.Sibling[d] = int(lv.Lookup(nc))
		}
	}
	for _, p := range lv.Patches {
		if !p.Active {
			continue
		}
		for d := 0; d < NSib; d++ {
			nb := p.Sibling[d]
			if nb >= 0 {
				other := lv.Patches[nb]
				od := OppositeIndex(d)
				other.Sibling[od] = int(lv.Lookup(p.Corner))
			}
		}
	}
}

// rebuildFluxPatches (de)allocates flux arrays on level-l patches per
// invariant 4: a patch carries a flux patch on face f iff the l+1
// neighbors across that face exist.
func (t *Tree) rebuildFluxPatches(l int) {
	if l+1 >= t.Lmax {
		return
	}
	lv := t.Levels[l]
	faceSize := t.PatchSize
	for _, p := range lv.Patches {
		if !p.Active {
			continue
		}
		var need [6]bool
		for f := 0; f < 6; f++ {
			nbID := p.Sibling[FaceIndex[f]]
			if nbID >= 0 && t.Levels[l].Patches[nbID].Son != NoSon {
				need[f] = true
			}
		}
		p.AllocFlux(need, t.NVar, faceSize)
	}
}

// Coarsen deallocates the 8 children rooted at a father's Son, after the
// caller has restricted their data into the father (preserving invariant
// 5). This is the leaf->nonexistent transition of spec.md §4.7.
func (t *Tree) Coarsen(l int, id PatchID) error {
	father := t.Levels[l].Patches[id]
	if father.Son == NoSon {
		return nil
	}
	childLevel := t.Levels[l+1]
	base := father.Son
	for oct := 0; oct < 8; oct++ {
		childLevel.remove(base + PatchID(oct))
	}
	father.Son = NoSon
	t.rebuildSiblingsAtLevel(l + 1)
	t.rebuildFluxPatches(l)
	return nil
}

// Children returns the 8 active child patch ids of father, or nil if it is
// a leaf.
func (t *Tree) Children(l int, id PatchID) []PatchID {
	father := t.Levels[l].Patches[id]
	if father.Son == NoSon {
		return nil
	}
	out := make([]PatchID, 8)
	for oct := 0; oct < 8; oct++ {
		out[oct] = father.Son + PatchID(oct)
	}
	return out
}

// IsLeaf reports whether a patch currently has no children.
func (t *Tree) IsLeaf(l int, id PatchID) bool {
	return t.Levels[l].Patches[id].Son == NoSon
}
