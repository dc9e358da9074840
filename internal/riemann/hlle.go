// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package riemann

import (
	"math"

	"github.com/cpmech/daino/internal/hydro"
)

func init() {
	Register("hlle", HLLE)
}

// roeAverage computes the density-weighted (Roe) average primitive state
// and sound speed used to estimate wave speeds for HLLE/HLLC.
func roeAverage(wl, wr hydro.Pri, gamma float64) (vx, vy, vz, h, c float64) {
	sqrtRl, sqrtRr := math.Sqrt(wl[hydro.Dens]), math.Sqrt(wr[hydro.Dens])
	invSum := 1.0 / (sqrtRl + sqrtRr)
	vx = (sqrtRl*wl[hydro.MomX] + sqrtRr*wr[hydro.MomX]) * invSum
	vy = (sqrtRl*wl[hydro.MomY] + sqrtRr*wr[hydro.MomY]) * invSum
	vz = (sqrtRl*wl[hydro.MomZ] + sqrtRr*wr[hydro.MomZ]) * invSum
	hl := 0.5*(wl[hydro.MomX]*wl[hydro.MomX]+wl[hydro.MomY]*wl[hydro.MomY]+wl[hydro.MomZ]*wl[hydro.MomZ]) +
		gamma/(gamma-1)*wl[hydro.Engy]/wl[hydro.Dens]
	hr := 0.5*(wr[hydro.MomX]*wr[hydro.MomX]+wr[hydro.MomY]*wr[hydro.MomY]+wr[hydro.MomZ]*wr[hydro.MomZ]) +
		gamma/(gamma-1)*wr[hydro.Engy]/wr[hydro.Dens]
	h = (sqrtRl*hl + sqrtRr*hr) * invSum
	v2 := vx*vx + vy*vy + vz*vz
	c2 := (gamma - 1) * (h - 0.5*v2)
	c = math.Sqrt(math.Max(c2, 0))
	return
}

// waveSpeedEstimate returns the two-wave (HLL) signal-speed bracket,
// clamped to always include 0 per spec.md §4.2's HLLE description.
func waveSpeedEstimate(wl, wr hydro.Pri, gamma float64) (sl, sr float64) {
	cl := hydro.SoundSpeed(wl, gamma)
	cr := hydro.SoundSpeed(wr, gamma)
	vxRoe, _, _, _, cRoe := roeAverage(wl, wr, gamma)
	sl = math.Min(wl[hydro.MomX]-cl, vxRoe-cRoe)
	sr = math.Max(wr[hydro.MomX]+cr, vxRoe+cRoe)
	if sl > 0 {
		sl = 0
	}
	if sr < 0 {
		sr = 0
	}
	return
}

// HLLE implements the two-wave HLL estimate of spec.md §4.2.
func HLLE(wl, wr hydro.Pri, gamma float64) (flux hydro.Con, err error) {
	ul := hydro.PriToCon(wl, gamma)
	ur := hydro.PriToCon(wr, gamma)
	fl := hydro.ConToFlux(ul, gamma)
	fr := hydro.ConToFlux(ur, gamma)
	sl, sr := waveSpeedEstimate(wl, wr, gamma)
	if sl >= 0 {
		return fl, nil
	}
	if sr <= 0 {
		return fr, nil
	}
	var f hydro.Con
	for i := 0; i < hydro.NVar; i++ {
		f[i] = (sr*fl[i] - sl*fr[i] + sl*sr*(ur[i]-ul[i])) / (sr - sl)
	}
	return f, nil
}
