// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrator

import (
	"github.com/cpmech/daino/internal/hydro"
	"github.com/cpmech/daino/internal/recon"
)

func init() {
	Register("ctu", ctuScheme)
}

// ctuScheme implements the corner-transport-upwind scheme of spec.md
// §4.4.2: a first preliminary sweep along all 3 axes (plain PLM
// reconstruction plus a single Riemann solve, no time evolution) supplies
// each axis's flux divergence; the defining transverse-gradient
// correction then evolves every face state for a half timestep using the
// divergence from the *other two* axes before the final, corrected
// Riemann solve.
func ctuScheme(fluid [][][][]float64, n int, opt Options) ([][][][]float64, [6][][][]float64, error) {
	ng := opt.NGhost
	fxP, err := SweepAxis(fluid, n, ng, hydro.AxisX, opt, prelimLineFlux)
	if err != nil {
		return nil, [6][][][]float64{}, err
	}
	fyP, err := SweepAxis(fluid, n, ng, hydro.AxisY, opt, prelimLineFlux)
	if err != nil {
		return nil, [6][][][]float64{}, err
	}
	fzP, err := SweepAxis(fluid, n, ng, hydro.AxisZ, opt, prelimLineFlux)
	if err != nil {
		return nil, [6][][][]float64{}, err
	}
	divX := FaceDivergence(fxP, n)
	divY := FaceDivergence(fyP, n)
	divZ := FaceDivergence(fzP, n)

	corrected := func(axis hydro.Axis, divA, divB [][][]hydro.Con, axisA, axisB hydro.Axis) LineFluxFuncCtx {
		return func(line []hydro.Con, b1, b2 int, o Options) ([]hydro.Con, error) {
			return ctuLineFlux(line, axis, b1, b2, divA, divB, axisA, axisB, o)
		}
	}

	fx, err := SweepAxisCtx(fluid, n, ng, hydro.AxisX, opt, corrected(hydro.AxisX, divY, divZ, hydro.AxisY, hydro.AxisZ))
	if err != nil {
		return nil, [6][][][]float64{}, err
	}
	fy, err := SweepAxisCtx(fluid, n, ng, hydro.AxisY, opt, corrected(hydro.AxisY, divX, divZ, hydro.AxisX, hydro.AxisZ))
	if err != nil {
		return nil, [6][][][]float64{}, err
	}
	fz, err := SweepAxisCtx(fluid, n, ng, hydro.AxisZ, opt, corrected(hydro.AxisZ, divX, divY, hydro.AxisX, hydro.AxisY))
	if err != nil {
		return nil, [6][][][]float64{}, err
	}

	out := ConservativeUpdate(fluid, n, ng, fx, fy, fz, opt)
	var faces [6][][][]float64
	faces[0] = facesToArrays(fx[0], n)
	faces[1] = facesToArrays(fx[n], n)
	faces[2] = facesToArrays(fy[0], n)
	faces[3] = facesToArrays(fy[n], n)
	faces[4] = facesToArrays(fz[0], n)
	faces[5] = facesToArrays(fz[n], n)
	return out, faces, nil
}

// prelimLineFlux does a plain PLM reconstruction and single Riemann solve
// per face, with no time evolution: the first pass of CTU's 2-pass
// structure.
func prelimLineFlux(line []hydro.Con, opt Options) ([]hydro.Con, error) {
	prims := toPriLine(line, opt.Gamma)
	faceL, faceR := recon.PLMAxis(prims, opt.LimiterName, opt.LimiterCoef, opt.Characteristic, opt.Gamma)
	nFaces := len(faceL) - 2
	flux := make([]hydro.Con, nFaces+1)
	for c := 0; c <= nFaces; c++ {
		f, err := opt.Solver(faceR[c], faceL[c+1], opt.Gamma)
		if err != nil {
			return nil, err
		}
		flux[c] = f
	}
	return flux, nil
}

// ctuLineFlux evolves this axis's PLM face states for a half timestep
// using the transverse flux divergence from the other two axes (divA,
// divB, FaceDivergence cubes of axisA and axisB, read per cell through
// DivAt), then performs the final Riemann solve.
func ctuLineFlux(line []hydro.Con, axis hydro.Axis, b1, b2 int, divA, divB [][][]hydro.Con, axisA, axisB hydro.Axis, opt Options) ([]hydro.Con, error) {
	prims := toPriLine(line, opt.Gamma)
	faceL, faceR := recon.PLMAxis(prims, opt.LimiterName, opt.LimiterCoef, opt.Characteristic, opt.Gamma)
	nCells := len(faceL)
	nFaces := nCells - 2
	ng := opt.NGhost
	coeff := 0.5 * opt.Dt / opt.Dh

	predL := make([]hydro.Pri, nCells)
	predR := make([]hydro.Pri, nCells)
	for c := 0; c < nCells; c++ {
		center := prims[c+1]
		newL, newR := recon.HalfStepPredict(center, faceL[c], faceR[c], opt.Gamma, opt.Dt, opt.Dh)

		// transverse correction: only interior cells (not the outer ghost
		// entries of the reconstructed range) have a defined divergence.
		pos := c + 1 - ng // global interior index along this axis
		if pos >= 0 && pos < nFaces {
			k, j, i := axisIndices(axis, pos, b1, b2)
			da := DivAt(divA, axisA, k, j, i)
			db := DivAt(divB, axisB, k, j, i)
			var corr hydro.Con
			for v := 0; v < hydro.NVar; v++ {
				corr[v] = coeff * (da[v] + db[v])
			}
			wL, wR := hydro.PriToCon(newL, opt.Gamma), hydro.PriToCon(newR, opt.Gamma)
			for v := 0; v < hydro.NVar; v++ {
				wL[v] -= corr[v]
				wR[v] -= corr[v]
			}
			newL = hydro.ConToPri(wL, opt.Gamma, opt.Positivity, opt.EpsP)
			newR = hydro.ConToPri(wR, opt.Gamma, opt.Positivity, opt.EpsP)
		}
		predL[c], predR[c] = newL, newR
	}

	flux := make([]hydro.Con, nFaces+1)
	for c := 0; c <= nFaces; c++ {
		f, err := opt.Solver(predR[c], predL[c+1], opt.Gamma)
		if err != nil {
			return nil, err
		}
		flux[c] = f
	}
	return flux, nil
}
