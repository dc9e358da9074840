// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package restrict implements the 8-to-1 restriction of child data into a
// parent patch and the coarse/fine flux fix-up, per spec.md §4.4.4/§4.5.
package restrict

import (
	"math"

	"github.com/cpmech/daino/internal/amr"
	"github.com/cpmech/gosl/chk"
)

// octantOf returns the child octant id (matching amr.Tree.Refine's
// dx+dy*2+dz*4 convention) owning coarse cell (i,j,k) of an n-cube patch,
// along with the coarse cell's local index within that octant's half-cube.
func octantOf(i, j, k, n int) (oct, ci, cj, ck int) {
	half := n / 2
	dx, dy, dz := 0, 0, 0
	ci, cj, ck = i, j, k
	if i >= half {
		dx, ci = 1, i-half
	}
	if j >= half {
		dy, cj = 1, j-half
	}
	if k >= half {
		dz, ck = 1, k-half
	}
	oct = dx + dy*2 + dz*4
	return
}

// Restrict overwrites father's cells (sandglass slot) with the 1/8 average
// of the 8 co-located fine cells drawn from its 8 children, for each of
// nvar conserved variables and (if present) the potential array.
func Restrict(father *amr.Patch, children [8]*amr.Patch, slot, nvar, n int, elbdm bool) error {
	if father.Son == amr.NoSon {
		return chk.Err("cannot restrict: father has no children")
	}
	for v := 0; v < nvar; v++ {
		for k := 0; k < n; k++ {
			for j := 0; j < n; j++ {
				for i := 0; i < n; i++ {
					oct, ci, cj, ck := octantOf(i, j, k, n)
					child := children[oct]
					sum := 0.0
					for dz := 0; dz < 2; dz++ {
						for dy := 0; dy < 2; dy++ {
							for dx := 0; dx < 2; dx++ {
								sum += child.Fluid[slot][v][2*ck+dz][2*cj+dy][2*ci+dx]
							}
						}
					}
					father.Fluid[slot][v][k][j][i] = sum / 8
				}
			}
		}
	}
	if father.HasPot {
		for k := 0; k < n; k++ {
			for j := 0; j < n; j++ {
				for i := 0; i < n; i++ {
					oct, ci, cj, ck := octantOf(i, j, k, n)
					child := children[oct]
					sum := 0.0
					for dz := 0; dz < 2; dz++ {
						for dy := 0; dy < 2; dy++ {
							for dx := 0; dx < 2; dx++ {
								sum += child.Pot[slot][2*ck+dz][2*cj+dy][2*ci+dx]
							}
						}
					}
					father.Pot[slot][k][j][i] = sum / 8
				}
			}
		}
	}
	if elbdm {
		rescaleELBDMPhase(father, slot, n)
	}
	return nil
}

// rescaleELBDMPhase rescales the restricted real/imag components so that
// Re^2+Im^2 matches the independently-restricted density, preserving phase
// while enforcing the authoritative density invariant (spec.md §4.5).
func rescaleELBDMPhase(father *amr.Patch, slot, n int) {
	const (
		densIdx = 0
		reIdx   = 1
		imIdx   = 2
	)
	for k := 0; k < n; k++ {
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				dens := father.Fluid[slot][densIdx][k][j][i]
				re := father.Fluid[slot][reIdx][k][j][i]
				im := father.Fluid[slot][imIdx][k][j][i]
				mag2 := re*re + im*im
				if mag2 <= 0 {
					continue
				}
				scale := math.Sqrt(dens / mag2)
				father.Fluid[slot][reIdx][k][j][i] = re * scale
				father.Fluid[slot][imIdx][k][j][i] = im * scale
			}
		}
	}
}

// FixUp replaces each coarse face-cell flux by the sum of the 4
// corresponding fine child-face fluxes, per spec.md §4.4.4: the flux
// arrays store extensive (already area-weighted) quantities, so no
// averaging factor is applied. childFaces is indexed by quadrant
// childRow+childCol*2, each a (coarseN x coarseN) fine-resolution face
// array covering one quarter of the coarse face's area.
func FixUp(coarseFace [][][]float64, childFaces [4][][][]float64, nvar, coarseN int) {
	half := coarseN / 2
	for v := 0; v < nvar; v++ {
		for r := 0; r < coarseN; r++ {
			childRow, localR := 0, r
			if r >= half {
				childRow, localR = 1, r-half
			}
			for c := 0; c < coarseN; c++ {
				childCol, localC := 0, c
				if c >= half {
					childCol, localC = 1, c-half
				}
				quad := childRow + childCol*2
				face := childFaces[quad][v]
				sum := 0.0
				for dr := 0; dr < 2; dr++ {
					for dc := 0; dc < 2; dc++ {
						sum += face[2*localR+dr][2*localC+dc]
					}
				}
				coarseFace[v][r][c] = sum
			}
		}
	}
}
