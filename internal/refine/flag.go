// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package refine implements the per-cell refinement-flagging criteria, flag
// buffering, and proper-nesting enforcement of spec.md §4.6.
package refine

import (
	"math"

	"github.com/cpmech/daino/internal/amr"
	"github.com/cpmech/daino/internal/hydro"
)

// UserCriterion is an optional caller-supplied flagging hook (spec.md §4.6
// criterion 6); it receives the cell's conserved state and cell indices and
// returns whether the cell should be flagged.
type UserCriterion func(u hydro.Con, k, j, i int) bool

// Criteria bundles the enabled flagging criteria and their thresholds for
// one level, used by FlagPatch.
type Criteria struct {
	EnableDens     bool
	DensThreshold  float64
	EnableDensGrad bool
	DensGradThresh float64
	EnablePresGrad bool
	PresGradThresh float64
	Gamma          float64
	EnableLohner   bool
	LohnerThresh   float64
	LohnerFilter   float64
	LohnerSoften   float64
	EnableELBDM    bool
	ELBDMThreshold float64
	ELBDMSoften    float64
	EnableUser     bool
	User           UserCriterion
}

// centeredGrad1D returns a one-sided or centered undivided difference at
// index idx along one axis of length n, per spec.md §4.6 criterion 2's
// stencil policy: centered half-differences in the interior, one-sided at
// patch faces.
func centeredGrad1D(vals func(int) float64, idx, n int) float64 {
	if idx == 0 {
		return vals(1) - vals(0)
	}
	if idx == n-1 {
		return vals(n-1) - vals(n-2)
	}
	return 0.5 * (vals(idx+1) - vals(idx-1))
}

// FlagPatch evaluates all enabled criteria for every cell of an n-cube
// patch and ORs their results, per spec.md §4.6's evaluation order.
func FlagPatch(fluid [][][][]float64, pot [][][]float64, n int, model int, c Criteria) [][][]bool {
	flag := make([][][]bool, n)
	for k := range flag {
		flag[k] = make([][]bool, n)
		for j := range flag[k] {
			flag[k][j] = make([]bool, n)
		}
	}

	rho := func(k, j, i int) float64 { return fluid[hydro.Dens][k][j][i] }
	pres := func(k, j, i int) float64 {
		var u hydro.Con
		for v := 0; v < hydro.NVar; v++ {
			u[v] = fluid[v][k][j][i]
		}
		w := hydro.ConToPri(u, c.Gamma, false, 0)
		return w[hydro.Engy]
	}

	for k := 0; k < n; k++ {
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				flagged := false

				if c.EnableDens {
					flagged = flagged || rho(k, j, i) > c.DensThreshold
				}

				if c.EnableDensGrad {
					gx := centeredGrad1D(func(ii int) float64 { return rho(k, j, ii) }, i, n)
					gy := centeredGrad1D(func(jj int) float64 { return rho(k, jj, i) }, j, n)
					gz := centeredGrad1D(func(kk int) float64 { return rho(kk, j, i) }, k, n)
					g := maxAbs3(gx, gy, gz) / rho(k, j, i)
					flagged = flagged || g > c.DensGradThresh
				}

				if c.EnablePresGrad {
					gx := centeredGrad1D(func(ii int) float64 { return pres(k, j, ii) }, i, n)
					gy := centeredGrad1D(func(jj int) float64 { return pres(k, jj, i) }, j, n)
					gz := centeredGrad1D(func(kk int) float64 { return pres(kk, j, i) }, k, n)
					g := maxAbs3(gx, gy, gz) / pres(k, j, i)
					flagged = flagged || g > c.PresGradThresh
				}

				if c.EnableELBDM && model == 1 {
					re, im := fluid[1][k][j][i], fluid[2][k][j][i]
					phase := math.Atan2(im, re)
					energy := phase * phase / (1 + c.ELBDMSoften)
					flagged = flagged || energy > c.ELBDMThreshold
				}

				if c.EnableUser && c.User != nil {
					var u hydro.Con
					for v := 0; v < hydro.NVar; v++ {
						u[v] = fluid[v][k][j][i]
					}
					flagged = flagged || c.User(u, k, j, i)
				}

				flag[k][j][i] = flagged
			}
		}
	}

	if c.EnableLohner {
		applyLohner(flag, fluid, n, c)
	}

	return flag
}

func maxAbs3(a, b, cc float64) float64 {
	m := math.Abs(a)
	if v := math.Abs(b); v > m {
		m = v
	}
	if v := math.Abs(cc); v > m {
		m = v
	}
	return m
}

// applyLohner ORs in the Lohner (1987) second-derivative/first-derivative
// error estimator, per spec.md §4.6 criterion 5. It reads only the n^3
// patch cells it is given, with no ghost ring, so the outermost layer of
// cells is never flagged by this criterion.
func applyLohner(flag [][][]bool, fluid [][][][]float64, n int, c Criteria) {
	rho := func(k, j, i int) float64 { return fluid[hydro.Dens][k][j][i] }
	for k := 1; k < n-1; k++ {
		for j := 1; j < n-1; j++ {
			for i := 1; i < n-1; i++ {
				num := lohnerSecondDeriv(rho, k, j, i)
				den := lohnerFirstDerivNorm(rho, k, j, i, c.LohnerFilter)
				if den <= 0 {
					continue
				}
				err := num / den
				if err > c.LohnerThresh {
					flag[k][j][i] = true
				}
			}
		}
	}
}

func lohnerSecondDeriv(rho func(k, j, i int) float64, k, j, i int) float64 {
	dxx := rho(k, j, i+1) - 2*rho(k, j, i) + rho(k, j, i-1)
	dyy := rho(k, j+1, i) - 2*rho(k, j, i) + rho(k, j-1, i)
	dzz := rho(k+1, j, i) - 2*rho(k, j, i) + rho(k-1, j, i)
	return math.Sqrt(dxx*dxx + dyy*dyy + dzz*dzz)
}

func lohnerFirstDerivNorm(rho func(k, j, i int) float64, k, j, i int, filter float64) float64 {
	termX := math.Abs(rho(k, j, i+1)-rho(k, j, i)) + math.Abs(rho(k, j, i)-rho(k, j, i-1)) + filter*(math.Abs(rho(k, j, i+1))+2*math.Abs(rho(k, j, i))+math.Abs(rho(k, j, i-1)))
	termY := math.Abs(rho(k, j+1, i)-rho(k, j, i)) + math.Abs(rho(k, j, i)-rho(k, j-1, i)) + filter*(math.Abs(rho(k, j+1, i))+2*math.Abs(rho(k, j, i))+math.Abs(rho(k, j-1, i)))
	termZ := math.Abs(rho(k+1, j, i)-rho(k, j, i)) + math.Abs(rho(k, j, i)-rho(k-1, j, i)) + filter*(math.Abs(rho(k+1, j, i))+2*math.Abs(rho(k, j, i))+math.Abs(rho(k-1, j, i)))
	return math.Sqrt(termX*termX + termY*termY + termZ*termZ)
}

// BufferFlags dilates a patch's flag grid outward by bufferSize cells, so
// refinement is not placed right against a discontinuity (spec.md §4.6).
func BufferFlags(flag [][][]bool, n, bufferSize int) [][][]bool {
	out := flag
	for step := 0; step < bufferSize; step++ {
		next := make([][][]bool, n)
		for k := range next {
			next[k] = make([][]bool, n)
			for j := range next[k] {
				next[k][j] = make([]bool, n)
				copy(next[k][j], out[k][j])
			}
		}
		for k := 0; k < n; k++ {
			for j := 0; j < n; j++ {
				for i := 0; i < n; i++ {
					if !out[k][j][i] {
						continue
					}
					for _, d := range [6][3]int{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}} {
						kk, jj, ii := k+d[0], j+d[1], i+d[2]
						if kk >= 0 && kk < n && jj >= 0 && jj < n && ii >= 0 && ii < n {
							next[kk][jj][ii] = true
						}
					}
				}
			}
		}
		out = next
	}
	return out
}

// AnyFlagged reports whether any cell in a patch's flag grid is set, and
// whether any flagged cell touches the patch boundary (needed by the
// caller to propagate buffering into neighbor patches).
func AnyFlagged(flag [][][]bool, n int) (any, touchesBoundary bool) {
	for k := 0; k < n; k++ {
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				if flag[k][j][i] {
					any = true
					if k == 0 || k == n-1 || j == 0 || j == n-1 || i == 0 || i == n-1 {
						touchesBoundary = true
					}
				}
			}
		}
	}
	return
}

// EnforceProperNesting flags additional father patches whose
// children-to-be would otherwise violate spec.md §3 invariant 1: for every
// patch flagged for refinement, every face/edge/corner neighbor of its
// father must exist (or be flagged) at the father's level. wantRefine maps
// a level-l patch id to whether it is currently flagged.
func EnforceProperNesting(tr *amr.Tree, level int, wantRefine map[amr.PatchID]bool) {
	lv := tr.Levels[level]
	span := tr.PatchSize << uint(tr.Lmax-1-level)
	changed := true
	for changed {
		changed = false
		for id, want := range wantRefine {
			if !want {
				continue
			}
			p := lv.Patches[id]
			for d := 0; d < amr.NSib; d++ {
				off := amr.Offsets[d]
				nc := [3]int{p.Corner[0] + off[0]*span, p.Corner[1] + off[1]*span, p.Corner[2] + off[2]*span}
				nbID := lv.Lookup(nc)
				if nbID == amr.NoNeighbor {
					continue // outside domain or truly absent; handled by boundary policy
				}
				if !wantRefine[nbID] {
					wantRefine[nbID] = true
					changed = true
				}
			}
		}
	}
}
