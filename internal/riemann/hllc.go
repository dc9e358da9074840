// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package riemann

import "github.com/cpmech/daino/internal/hydro"

func init() {
	Register("hllc", HLLC)
}

// HLLC implements the three-wave estimate preserving the contact
// discontinuity, per spec.md §4.2. The contact speed SM follows the
// pressure-consistent formula; the same 0-inclusive wave-speed clamp used
// by HLLE is applied.
func HLLC(wl, wr hydro.Pri, gamma float64) (flux hydro.Con, err error) {
	ul := hydro.PriToCon(wl, gamma)
	ur := hydro.PriToCon(wr, gamma)
	fl := hydro.ConToFlux(ul, gamma)
	fr := hydro.ConToFlux(ur, gamma)

	sl, sr := waveSpeedEstimate(wl, wr, gamma)

	rhoL, uL, pL := wl[hydro.Dens], wl[hydro.MomX], wl[hydro.Engy]
	rhoR, uR, pR := wr[hydro.Dens], wr[hydro.MomX], wr[hydro.Engy]

	denom := rhoL*(sl-uL) - rhoR*(sr-uR)
	sm := (pR - pL + rhoL*uL*(sl-uL) - rhoR*uR*(sr-uR)) / denom

	starState := func(w hydro.Pri, u hydro.Con, s float64) hydro.Con {
		rho, uu, p := w[hydro.Dens], w[hydro.MomX], w[hydro.Engy]
		coeff := rho * (s - uu) / (s - sm)
		var us hydro.Con
		us[hydro.Dens] = coeff
		us[hydro.MomX] = coeff * sm
		us[hydro.MomY] = coeff * w[hydro.MomY]
		us[hydro.MomZ] = coeff * w[hydro.MomZ]
		e := u[hydro.Engy] / rho
		us[hydro.Engy] = coeff * (e + (sm-uu)*(sm+p/(rho*(s-uu))))
		return us
	}

	switch {
	case sl >= 0:
		return fl, nil
	case sr <= 0:
		return fr, nil
	case sm >= 0:
		us := starState(wl, ul, sl)
		var f hydro.Con
		for i := 0; i < hydro.NVar; i++ {
			f[i] = fl[i] + sl*(us[i]-ul[i])
		}
		return f, nil
	default:
		us := starState(wr, ur, sr)
		var f hydro.Con
		for i := 0; i < hydro.NVar; i++ {
			f[i] = fr[i] + sr*(us[i]-ur[i])
		}
		return f, nil
	}
}
