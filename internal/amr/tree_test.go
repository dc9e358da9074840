// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package amr

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func newTestTree(tst *testing.T) *Tree {
	lmax := 2
	dh := []float64{1.0, 0.5}
	tr := NewTree(lmax, 5, 8, false, dh)
	if err := tr.InitRoot(16, true); err != nil {
		tst.Fatalf("InitRoot: %v", err)
	}
	return tr
}

func TestSiblingSymmetry(tst *testing.T) {
	chk.PrintTitle("SiblingSymmetry")
	tr := newTestTree(tst)
	lv := tr.Levels[0]
	for _, p := range lv.Patches {
		for d := 0; d < NSib; d++ {
			nb := p.Sibling[d]
			if nb < 0 {
				continue
			}
			other := lv.Patches[nb]
			od := OppositeIndex(d)
			myID := lv.Lookup(p.Corner)
			if other.Sibling[od] != int(myID) {
				tst.Errorf("sibling symmetry violated at corner %v dir %d", p.Corner, d)
			}
		}
	}
}

func TestRefineCompleteOctants(tst *testing.T) {
	chk.PrintTitle("RefineCompleteOctants")
	tr := newTestTree(tst)
	_, err := tr.Refine(0, 0, nil)
	if err != nil {
		tst.Fatalf("Refine: %v", err)
	}
	children := tr.Children(0, 0)
	if len(children) != 8 {
		tst.Fatalf("expected 8 children, got %d", len(children))
	}
	for _, cid := range children {
		if !tr.Levels[1].Patches[cid].Active {
			tst.Errorf("child %d not active", cid)
		}
	}
}

func TestRefineThenCoarsenRoundTrip(tst *testing.T) {
	chk.PrintTitle("RefineThenCoarsenRoundTrip")
	tr := newTestTree(tst)
	father := tr.Levels[0].Patches[0]
	for v := 0; v < tr.NVar; v++ {
		for k := 0; k < tr.PatchSize; k++ {
			for j := 0; j < tr.PatchSize; j++ {
				for i := 0; i < tr.PatchSize; i++ {
					father.Fluid[0][v][k][j][i] = 2.0
				}
			}
		}
	}
	snapshot := make([]float64, 0)
	for v := 0; v < tr.NVar; v++ {
		for k := 0; k < tr.PatchSize; k++ {
			for j := 0; j < tr.PatchSize; j++ {
				for i := 0; i < tr.PatchSize; i++ {
					snapshot = append(snapshot, father.Fluid[0][v][k][j][i])
				}
			}
		}
	}
	_, err := tr.Refine(0, 0, func(fa *Patch, octant int, child *Patch) {
		for v := 0; v < tr.NVar; v++ {
			for k := 0; k < tr.PatchSize; k++ {
				for j := 0; j < tr.PatchSize; j++ {
					for i := 0; i < tr.PatchSize; i++ {
						child.Fluid[0][v][k][j][i] = fa.Fluid[0][v][k][j][i]
					}
				}
			}
		}
	})
	if err != nil {
		tst.Fatalf("Refine: %v", err)
	}
	if !tr.IsLeaf(0, 0) {
		// father is now internal
	}
	if err := tr.Coarsen(0, 0); err != nil {
		tst.Fatalf("Coarsen: %v", err)
	}
	if !tr.IsLeaf(0, 0) {
		tst.Errorf("father should be a leaf again after coarsening")
	}
	idx := 0
	for v := 0; v < tr.NVar; v++ {
		for k := 0; k < tr.PatchSize; k++ {
			for j := 0; j < tr.PatchSize; j++ {
				for i := 0; i < tr.PatchSize; i++ {
					chk.Scalar(tst, "restored fluid", 1e-12, father.Fluid[0][v][k][j][i], snapshot[idx])
					idx++
				}
			}
		}
	}
}
