// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package riemann

import (
	"math"

	"github.com/cpmech/daino/internal/hydro"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/num"
)

func init() {
	Register("exact", Exact)
}

// pressureFuncs evaluates Toro's fK(p) wave function and its derivative for
// one side (L or R) of the interface.
func pressureFuncs(p, rhoK, pK, cK, gamma float64) (f, df float64) {
	if p > pK { // shock
		AK := 2.0 / ((gamma + 1) * rhoK)
		BK := (gamma - 1) / (gamma + 1) * pK
		f = (p - pK) * math.Sqrt(AK/(p+BK))
		df = math.Sqrt(AK/(BK+p)) * (1 - (p-pK)/(2*(BK+p)))
		return
	}
	// rarefaction
	f = 2 * cK / (gamma - 1) * (math.Pow(p/pK, (gamma-1)/(2*gamma)) - 1)
	df = 1.0 / (rhoK * cK) * math.Pow(p/pK, -(gamma+1)/(2*gamma))
	return
}

// Exact implements the iterative exact Riemann solver of spec.md §4.2,
// following Toro's pressure-velocity iteration. The nonlinear pressure
// equation is solved with gosl/num.NlSolver (as msolid/hyperelast1.go uses
// it for the analogous 1-equation eps0 solve) to MaxErrorDouble tolerance.
func Exact(wl, wr hydro.Pri, gamma float64) (flux hydro.Con, err error) {
	rhoL, uL, pL := wl[hydro.Dens], wl[hydro.MomX], wl[hydro.Engy]
	rhoR, uR, pR := wr[hydro.Dens], wr[hydro.MomX], wr[hydro.Engy]
	cL := hydro.SoundSpeed(wl, gamma)
	cR := hydro.SoundSpeed(wr, gamma)

	// two-rarefaction initial guess
	pGuess := 0.5 * (pL + pR)
	pPV := 0.5*(pL+pR) - 0.125*(uR-uL)*(rhoL+rhoR)*(cL+cR)
	if pPV > 0 {
		pGuess = pPV
	}
	if pGuess < 1e-8 {
		pGuess = 1e-8
	}

	var nls num.NlSolver
	nls.Init(1, func(fx, x []float64) error {
		p := x[0]
		fLv, _ := pressureFuncs(p, rhoL, pL, cL, gamma)
		fRv, _ := pressureFuncs(p, rhoR, pR, cR, gamma)
		fx[0] = fLv + fRv + (uR - uL)
		return nil
	}, nil, func(J [][]float64, x []float64) (err error) {
		p := x[0]
		_, dfL := pressureFuncs(p, rhoL, pL, cL, gamma)
		_, dfR := pressureFuncs(p, rhoR, pR, cR, gamma)
		J[0][0] = dfL + dfR
		return nil
	}, true, false, nil)
	nls.SetTols(MaxErrorDouble, MaxErrorDouble, 1e-14, num.EPS)
	x := []float64{pGuess}
	if serr := nls.Solve(x, true); serr != nil {
		return flux, chk.Err("exact riemann solver: pressure iteration failed:\n%v", serr)
	}
	pStar := x[0]
	if pStar < 1e-12 {
		pStar = 1e-12
	}

	fL, _ := pressureFuncs(pStar, rhoL, pL, cL, gamma)
	fR, _ := pressureFuncs(pStar, rhoR, pR, cR, gamma)
	uStar := 0.5*(uL+uR) + 0.5*(fR-fL)

	// sample the solution at S = x/t = 0
	var rho, u, p float64
	var vy, vz float64
	if uStar >= 0 {
		vy, vz = wl[hydro.MomY], wl[hydro.MomZ]
		rho, u, p = sampleSide(0, rhoL, uL, pL, cL, uStar, pStar, gamma, true)
	} else {
		vy, vz = wr[hydro.MomY], wr[hydro.MomZ]
		rho, u, p = sampleSide(0, rhoR, uR, pR, cR, uStar, pStar, gamma, false)
	}

	wStar := hydro.Pri{rho, u, vy, vz, p}
	uCon := hydro.PriToCon(wStar, gamma)
	return hydro.ConToFlux(uCon, gamma), nil
}

// sampleSide samples the exact-solver fan/shock structure on one side
// (left if isLeft, else right) of the contact, at speed s = x/t.
func sampleSide(s, rhoK, uK, pK, cK, uStar, pStar, gamma float64, isLeft bool) (rho, u, p float64) {
	sign := 1.0
	if !isLeft {
		sign = -1.0
	}
	if pStar > pK { // shock on this side
		q := math.Sqrt((gamma+1)/(2*gamma)*(pStar/pK) + (gamma-1)/(2*gamma))
		shockSpeed := uK - sign*cK*q
		if (isLeft && s < shockSpeed) || (!isLeft && s > shockSpeed) {
			return rhoK, uK, pK
		}
		rhoStar := rhoK * ((pStar/pK + (gamma-1)/(gamma+1)) / ((gamma-1)/(gamma+1)*(pStar/pK) + 1))
		return rhoStar, uStar, pStar
	}
	// rarefaction on this side
	cStar := cK * math.Pow(pStar/pK, (gamma-1)/(2*gamma))
	headSpeed := uK - sign*cK
	tailSpeed := uStar - sign*cStar
	if isLeft {
		if s < headSpeed {
			return rhoK, uK, pK
		}
		if s > tailSpeed {
			rhoStar := rhoK * math.Pow(pStar/pK, 1/gamma)
			return rhoStar, uStar, pStar
		}
	} else {
		if s > headSpeed {
			return rhoK, uK, pK
		}
		if s < tailSpeed {
			rhoStar := rhoK * math.Pow(pStar/pK, 1/gamma)
			return rhoStar, uStar, pStar
		}
	}
	// inside the fan
	c := (2.0 / (gamma + 1)) * (cK + sign*(gamma-1)/2*(uK-s))
	u = (2.0/(gamma+1))*(sign*cK+(gamma-1)/2*uK+s)
	rho = rhoK * math.Pow(c/cK, 2/(gamma-1))
	p = pK * math.Pow(c/cK, 2*gamma/(gamma-1))
	return
}
