// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package riemann

import (
	"math"

	"github.com/cpmech/daino/internal/hydro"
	"github.com/cpmech/gosl/chk"
)

func init() {
	Register("roe", Roe)
}

// roeFallbackName is the compile-time-selected safe solver used when Roe's
// intermediate-state check fails (spec.md §4.2). It is set once, at
// driver start-up, by SetRoeFallback; the per-interface hot path never
// mutates it, matching spec.md §9's guidance to keep runtime polymorphism
// in a function-pointer table rather than a virtual dispatch tree.
var roeFallbackName = "hllc"

// SetRoeFallback selects the solver used when Roe's linearization produces
// a non-physical intermediate state.
func SetRoeFallback(name string) {
	if _, err := Get(name); err != nil {
		chk.Panic("cannot set roe fallback to %q: %v", name, err)
	}
	roeFallbackName = name
}

// Roe implements the linearized Roe solver of spec.md §4.2: flux evaluated
// from the Roe-averaged eigensystem of the 3D Euler equations, with a
// fallback to roeFallbackName whenever any intermediate state between
// successive eigenvalues has non-positive density or pressure.
func Roe(wl, wr hydro.Pri, gamma float64) (flux hydro.Con, err error) {
	ul := hydro.PriToCon(wl, gamma)
	ur := hydro.PriToCon(wr, gamma)
	fl := hydro.ConToFlux(ul, gamma)
	fr := hydro.ConToFlux(ur, gamma)

	u, v, w, h, c := roeAverage(wl, wr, gamma)

	dRho := wr[hydro.Dens] - wl[hydro.Dens]
	dU := wr[hydro.MomX] - wl[hydro.MomX]
	dV := wr[hydro.MomY] - wl[hydro.MomY]
	dW := wr[hydro.MomZ] - wl[hydro.MomZ]
	dP := wr[hydro.Engy] - wl[hydro.Engy]

	rhoRoe := math.Sqrt(wl[hydro.Dens] * wr[hydro.Dens])
	c2 := c * c

	alpha := [5]float64{
		(dP - rhoRoe*c*dU) / (2 * c2), // a1: u-c wave
		dRho - dP/c2,                  // a2: entropy wave
		rhoRoe * dV,                   // a3: v-shear wave
		rhoRoe * dW,                   // a4: w-shear wave
		(dP + rhoRoe*c*dU) / (2 * c2), // a5: u+c wave
	}
	lambda := [5]float64{u - c, u, u, u, u + c}
	kvec := [5]hydro.Con{
		{1, u - c, v, w, h - u*c},
		{1, u, v, w, 0.5 * (u*u + v*v + w*w)},
		{0, 0, 1, 0, v},
		{0, 0, 0, 1, w},
		{1, u + c, v, w, h + u*c},
	}

	// cumulative intermediate states U_L + sum_{k<=i} alpha_k*K_k must stay
	// physical (rho>0, p>0) at every crossed eigenvalue.
	state := ul
	physical := true
	for i := 0; i < 5; i++ {
		for j := 0; j < hydro.NVar; j++ {
			state[j] += alpha[i] * kvec[i][j]
		}
		if i < 4 {
			w := hydro.ConToPri(state, gamma, false, 0)
			if state[hydro.Dens] <= 0 || w[hydro.Engy] <= 0 {
				physical = false
				break
			}
		}
	}

	if !physical {
		fallback, ferr := Get(roeFallbackName)
		if ferr != nil {
			return flux, ferr
		}
		return fallback(wl, wr, gamma)
	}

	var f hydro.Con
	for j := 0; j < hydro.NVar; j++ {
		sum := 0.0
		for i := 0; i < 5; i++ {
			sum += math.Abs(lambda[i]) * alpha[i] * kvec[i][j]
		}
		f[j] = 0.5*(fl[j]+fr[j]) - 0.5*sum
	}
	return f, nil
}
