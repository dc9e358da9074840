// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrator

import "github.com/cpmech/daino/internal/hydro"

// LineFluxFunc computes the n+1 interior face fluxes for one 1D line of
// n+2*ng cell-centered conserved states (already rotated so the sweep
// axis behaves as x), given the scheme's shared Options. Each concrete
// scheme (mhm.go, ctu.go, waf.go) registers one of these.
type LineFluxFunc func(line []hydro.Con, opt Options) ([]hydro.Con, error)

// axisIndices maps a position along the sweep axis and the two transverse
// coordinates to the padded cube's (k,j,i) indices.
func axisIndices(axis hydro.Axis, pos, c1, c2 int) (k, j, i int) {
	switch axis {
	case hydro.AxisX:
		return c1, c2, pos
	case hydro.AxisY:
		return c1, pos, c2
	default: // AxisZ
		return pos, c1, c2
	}
}

func getCon(fluid [][][][]float64, k, j, i int) hydro.Con {
	var u hydro.Con
	for v := 0; v < hydro.NVar; v++ {
		u[v] = fluid[v][k][j][i]
	}
	return u
}

// extractLine reads the padded (n+2*ng)-long line along axis at transverse
// position (c1,c2), rotating each cell into x-axis orientation so the
// generic 1D reconstruction/Riemann machinery applies unchanged.
func extractLine(fluid [][][][]float64, axis hydro.Axis, full int, c1, c2 int) []hydro.Con {
	line := make([]hydro.Con, full)
	for pos := 0; pos < full; pos++ {
		k, j, i := axisIndices(axis, pos, c1, c2)
		line[pos] = hydro.Rotate(getCon(fluid, k, j, i), axis, true)
	}
	return line
}

// SweepAxis runs lineFlux over every transverse line of the padded cube
// along axis, returning an (n+1) x n x n cube of face fluxes (already
// un-rotated back to global axis orientation) suitable for both the
// conservative update and the flux fix-up boundary faces.
func SweepAxis(fluid [][][][]float64, n, ng int, axis hydro.Axis, opt Options, lineFlux LineFluxFunc) ([][][]hydro.Con, error) {
	full := n + 2*ng
	faces := make([][][]hydro.Con, n+1)
	for c := range faces {
		faces[c] = make([][]hydro.Con, n)
		for b1 := range faces[c] {
			faces[c][b1] = make([]hydro.Con, n)
		}
	}
	for b1 := 0; b1 < n; b1++ {
		for b2 := 0; b2 < n; b2++ {
			line := extractLine(fluid, axis, full, b1+ng, b2+ng)
			flux, err := lineFlux(line, opt)
			if err != nil {
				return nil, err
			}
			for c := 0; c <= n; c++ {
				faces[c][b1][b2] = hydro.Rotate(flux[c], axis, false)
			}
		}
	}
	return faces, nil
}

// LineFluxFuncCtx is LineFluxFunc with the sweep's transverse coordinates
// made visible, for schemes (CTU) whose per-line correction depends on
// data outside the line itself.
type LineFluxFuncCtx func(line []hydro.Con, b1, b2 int, opt Options) ([]hydro.Con, error)

// SweepAxisCtx is SweepAxis with the transverse coordinates passed through
// to lineFlux.
func SweepAxisCtx(fluid [][][][]float64, n, ng int, axis hydro.Axis, opt Options, lineFlux LineFluxFuncCtx) ([][][]hydro.Con, error) {
	full := n + 2*ng
	faces := make([][][]hydro.Con, n+1)
	for c := range faces {
		faces[c] = make([][]hydro.Con, n)
		for b1 := range faces[c] {
			faces[c][b1] = make([]hydro.Con, n)
		}
	}
	for b1 := 0; b1 < n; b1++ {
		for b2 := 0; b2 < n; b2++ {
			line := extractLine(fluid, axis, full, b1+ng, b2+ng)
			flux, err := lineFlux(line, b1, b2, opt)
			if err != nil {
				return nil, err
			}
			for c := 0; c <= n; c++ {
				faces[c][b1][b2] = hydro.Rotate(flux[c], axis, false)
			}
		}
	}
	return faces, nil
}

// FaceDivergence returns, for every interior cell, the face-to-face
// difference of a SweepAxis flux cube along its own axis (faces[pos+1]-
// faces[pos] for pos in [0,n)), indexed div[c1][c2][pos] with the sweep's
// own axis last: divX[k][j][i], divY[k][i][j], divZ[j][i][k].
func FaceDivergence(faces [][][]hydro.Con, n int) [][][]hydro.Con {
	div := make([][][]hydro.Con, n)
	for a := range div {
		div[a] = make([][]hydro.Con, n)
		for b := range div[a] {
			div[a][b] = make([]hydro.Con, n)
			for pos := 0; pos < n; pos++ {
				var d hydro.Con
				for v := 0; v < hydro.NVar; v++ {
					d[v] = faces[pos+1][a][b][v] - faces[pos][a][b][v]
				}
				div[a][b][pos] = d
			}
		}
	}
	return div
}

// DivAt looks up the divergence value for global cell (k,j,i) inside a
// cube returned by FaceDivergence for the given sweep axis, inverting
// FaceDivergence's (c1,c2,pos) layout back to natural cube coordinates.
func DivAt(div [][][]hydro.Con, axis hydro.Axis, k, j, i int) hydro.Con {
	switch axis {
	case hydro.AxisX:
		return div[k][j][i]
	case hydro.AxisY:
		return div[k][i][j]
	default: // AxisZ
		return div[j][i][k]
	}
}

// ConservativeUpdate applies the shared finite-volume update
// U_new = U_old - (dt/dh) * sum_axis(F_hi - F_lo) to every interior cell,
// per spec.md §4.4's common full-step formula, then enforces positivity.
func ConservativeUpdate(fluid [][][][]float64, n, ng int, fx, fy, fz [][][]hydro.Con, opt Options) [][][][]float64 {
	out := zeroCube(n)
	coeff := opt.Dt / opt.Dh
	for k := 0; k < n; k++ {
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				uOld := getCon(fluid, k+ng, j+ng, i+ng)
				var uNew hydro.Con
				for v := 0; v < hydro.NVar; v++ {
					div := (fx[i+1][k][j][v] - fx[i][k][j][v]) +
						(fy[j+1][k][i][v] - fy[j][k][i][v]) +
						(fz[k+1][j][i][v] - fz[k][j][i][v])
					uNew[v] = uOld[v] - coeff*div
				}
				uNew = enforcePositivity(uOld, uNew, opt)
				for v := 0; v < hydro.NVar; v++ {
					out[v][k][j][i] = uNew[v]
				}
			}
		}
	}
	return out
}

// enforcePositivity reverts a cell's full update to its pre-update state
// if the update produced non-positive density or pressure, per spec.md
// §4.4's local numerical-fault policy.
func enforcePositivity(uOld, uNew hydro.Con, opt Options) hydro.Con {
	if !opt.Positivity {
		return uNew
	}
	if uNew[hydro.Dens] <= 0 {
		return uOld
	}
	w := hydro.ConToPri(uNew, opt.Gamma, false, 0)
	if w[hydro.Engy] < opt.EpsP {
		return uOld
	}
	return uNew
}

// facesToArrays converts one boundary slice (c==0 or c==n) of a SweepAxis
// result into the [NVar][n][n]float64 layout amr.FluxPatch expects.
func facesToArrays(faces [][][]hydro.Con, n int) [][][]float64 {
	out := zeroFace(n)
	for b1 := 0; b1 < n; b1++ {
		for b2 := 0; b2 < n; b2++ {
			for v := 0; v < hydro.NVar; v++ {
				out[v][b1][b2] = faces[b1][b2][v]
			}
		}
	}
	return out
}
