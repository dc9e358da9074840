// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrator

import (
	"math"

	"github.com/cpmech/daino/internal/hydro"
)

func init() {
	Register("waf", wafScheme)
	Register("wafdissipate", wafDissipateScheme)
}

const wafMaxError = 1e-13

// WafLimiter is a WAF flux limiter: given the smoothness ratio r of a
// wave's strength across the interface and its local Courant number c,
// it returns the limited weight applied to that wave's flux contribution.
type WafLimiter func(r, c float64) float64

func wafPsi(name string) func(r float64) float64 {
	switch name {
	case "superbee":
		return func(r float64) float64 {
			return math.Max(0, math.Max(math.Min(2*r, 1), math.Min(r, 2)))
		}
	case "vanalbada":
		return func(r float64) float64 {
			if r <= 0 {
				return 0
			}
			return r * (r + 1) / (r*r + 1)
		}
	case "minbee":
		return func(r float64) float64 {
			return math.Max(0, math.Min(1, r))
		}
	default: // "vanleer"
		return func(r float64) float64 {
			if r <= 0 {
				return 0
			}
			return 2 * r / (1 + r)
		}
	}
}

// Superbee, VanLeerWaf, VanAlbada and MinBee are the 4 named WAF
// limiters of spec.md §4.4.3, each of the classical form
// phi(r,c) = 1 - (1-|c|)*psi(r).
func makeWafLimiter(psiName string) WafLimiter {
	psi := wafPsi(psiName)
	return func(r, c float64) float64 {
		return 1 - (1-math.Abs(c))*psi(r)
	}
}

var (
	Superbee   = makeWafLimiter("superbee")
	VanLeerWaf = makeWafLimiter("vanleer")
	VanAlbada  = makeWafLimiter("vanalbada")
	MinBee     = makeWafLimiter("minbee")
)

func wafLimiterByName(name string) WafLimiter {
	switch name {
	case "superbee":
		return Superbee
	case "vanalbada":
		return VanAlbada
	case "minbee":
		return MinBee
	default:
		return VanLeerWaf
	}
}

// roeWave holds one Roe-decomposed characteristic wave's speed, strength
// and right eigenvector for a single interface.
type roeWave struct {
	lam   float64
	alpha float64
	r     hydro.Con
}

// roeDecompose performs the standard Roe-averaged linearization of the
// Euler equations into its 5 characteristic waves (u-c, u, u, u, u+c),
// used by WAF to build its wave-by-wave flux blend.
func roeDecompose(wl, wr hydro.Pri, gamma float64) [5]roeWave {
	rhoL, rhoR := wl[hydro.Dens], wr[hydro.Dens]
	sqrtL, sqrtR := math.Sqrt(rhoL), math.Sqrt(rhoR)
	denom := sqrtL + sqrtR
	u := (sqrtL*wl[hydro.MomX] + sqrtR*wr[hydro.MomX]) / denom
	v := (sqrtL*wl[hydro.MomY] + sqrtR*wr[hydro.MomY]) / denom
	w := (sqrtL*wl[hydro.MomZ] + sqrtR*wr[hydro.MomZ]) / denom
	hl := (wl[hydro.Engy]*gamma/(gamma-1) + 0.5*rhoL*(wl[hydro.MomX]*wl[hydro.MomX]+wl[hydro.MomY]*wl[hydro.MomY]+wl[hydro.MomZ]*wl[hydro.MomZ])) / rhoL
	hr := (wr[hydro.Engy]*gamma/(gamma-1) + 0.5*rhoR*(wr[hydro.MomX]*wr[hydro.MomX]+wr[hydro.MomY]*wr[hydro.MomY]+wr[hydro.MomZ]*wr[hydro.MomZ])) / rhoR
	h := (sqrtL*hl + sqrtR*hr) / denom
	c := math.Sqrt((gamma - 1) * (h - 0.5*(u*u+v*v+w*w)))

	drho := rhoR - rhoL
	du := wr[hydro.MomX] - wl[hydro.MomX]
	dv := wr[hydro.MomY] - wl[hydro.MomY]
	dw := wr[hydro.MomZ] - wl[hydro.MomZ]
	dp := wr[hydro.Engy] - wl[hydro.Engy]

	a2 := drho - dp/(c*c)
	a1 := (dp - rhoL*c*du) / (2 * c * c)
	a5 := (dp + rhoL*c*du) / (2 * c * c)
	a3 := rhoAvg(rhoL, rhoR) * dv
	a4 := rhoAvg(rhoL, rhoR) * dw

	var waves [5]roeWave
	waves[0] = roeWave{lam: u - c, alpha: a1, r: hydro.Con{1, u - c, v, w, h - u*c}}
	waves[1] = roeWave{lam: u, alpha: a2, r: hydro.Con{1, u, v, w, 0.5 * (u*u + v*v + w*w)}}
	waves[2] = roeWave{lam: u, alpha: a3, r: hydro.Con{0, 0, 1, 0, v}}
	waves[3] = roeWave{lam: u, alpha: a4, r: hydro.Con{0, 0, 0, 1, w}}
	waves[4] = roeWave{lam: u + c, alpha: a5, r: hydro.Con{1, u + c, v, w, h + u*c}}
	return waves
}

func rhoAvg(rhoL, rhoR float64) float64 {
	return math.Sqrt(rhoL * rhoR)
}

// wafScheme implements the WAF scheme of spec.md §4.4.3 with the
// undissipated flux composition (2 states collapsed per
// coincident-eigenvalue wave group), using the Weighted Average Flux blend
// of the Godunov-averaged and upwind fluxes across the Roe wave fan. It is
// not dimensionally split: the three axis sweeps all read the same input
// cube and their divergences are summed in one ConservativeUpdate, so no
// sweep sees another axis's updated state and sweep order has no effect.
func wafScheme(fluid [][][][]float64, n int, opt Options) ([][][][]float64, [6][][][]float64, error) {
	return wafSweep(fluid, n, opt, false)
}

// wafDissipateScheme is wafScheme's build-time sibling selecting the
// dissipated flux composition (the coincident waves accumulated one at a
// time through 2 ghost states, see wafLineFluxDissipated) instead of the
// collapsed undissipated one.
func wafDissipateScheme(fluid [][][][]float64, n int, opt Options) ([][][][]float64, [6][][][]float64, error) {
	return wafSweep(fluid, n, opt, true)
}

func wafSweep(fluid [][][][]float64, n int, opt Options, dissipate bool) ([][][][]float64, [6][][][]float64, error) {
	ng := opt.NGhost
	lineFlux := wafLineFlux
	if dissipate {
		lineFlux = wafLineFluxDissipated
	}
	fx, err := SweepAxis(fluid, n, ng, hydro.AxisX, opt, lineFlux)
	if err != nil {
		return nil, [6][][][]float64{}, err
	}
	fy, err := SweepAxis(fluid, n, ng, hydro.AxisY, opt, lineFlux)
	if err != nil {
		return nil, [6][][][]float64{}, err
	}
	fz, err := SweepAxis(fluid, n, ng, hydro.AxisZ, opt, lineFlux)
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

// wafWaveWeights decomposes every interior face of the line into its 5 Roe
// waves and the limiter weight (phi) and propagation sign (theta) the WAF
// blend applies to each, using the neighbouring upwind interface's wave
// strength as the smoothness reference.
func wafWaveWeights(line []hydro.Con, opt Options) (waves [][5]roeWave, phi, theta [][5]float64) {
	nFaces := len(line) - 1
	waves = make([][5]roeWave, nFaces)
	for c := 0; c < nFaces; c++ {
		wl := hydro.ConToPri(line[c], opt.Gamma, false, 0)
		wr := hydro.ConToPri(line[c+1], opt.Gamma, false, 0)
		waves[c] = roeDecompose(wl, wr, opt.Gamma)
	}
	lim := wafLimiterByName(opt.LimiterName)
	phi = make([][5]float64, nFaces)
	theta = make([][5]float64, nFaces)
	for c := 0; c < nFaces; c++ {
		for k := 0; k < 5; k++ {
			wv := waves[c][k]
			switch {
			case wv.lam > 0:
				theta[c][k] = 1
			case wv.lam < 0:
				theta[c][k] = -1
			}
			phi[c][k] = 1.0
			if math.Abs(wv.lam) >= wafMaxError {
				upwind := c - 1
				if wv.lam < 0 {
					upwind = c + 1
				}
				ratio := 1.0
				if upwind >= 0 && upwind < nFaces {
					denomAlpha := wv.alpha
					if math.Abs(denomAlpha) > wafMaxError {
						ratio = waves[upwind][k].alpha / denomAlpha
					}
				}
				courant := wv.lam * opt.Dt / opt.Dh
				phi[c][k] = lim(ratio, courant)
			}
		}
	}
	return
}

// trimToInterior drops the ng-1 extra faces SweepAxis's ghosted line
// supplies on either side, leaving only the n+1 faces straddling the
// interior it expects back.
func trimToInterior(full []hydro.Con, ng int) []hydro.Con {
	offset := ng - 1
	need := len(full) - 2*offset
	return full[offset : offset+need]
}

// wafLineFlux computes the undissipated WAF flux at every interior face of
// a 1D line: each wave's contribution collapses directly via the
// linearized Roe jump -0.5*sign(lam)*phi*alpha*lam*r, the 3 coincident
// u-eigenvalue waves (entropy, v-shear, w-shear) folded into one segment
// between the left and right star regions.
func wafLineFlux(line []hydro.Con, opt Options) ([]hydro.Con, error) {
	waves, phi, theta := wafWaveWeights(line, opt)
	nFaces := len(waves)
	full := make([]hydro.Con, nFaces)
	for c := 0; c < nFaces; c++ {
		fl := hydro.ConToFlux(line[c], opt.Gamma)
		fr := hydro.ConToFlux(line[c+1], opt.Gamma)
		var f hydro.Con
		for v := 0; v < hydro.NVar; v++ {
			f[v] = 0.5 * (fl[v] + fr[v])
		}
		for k := 0; k < 5; k++ {
			wv := waves[c][k]
			for v := 0; v < hydro.NVar; v++ {
				f[v] -= 0.5 * theta[c][k] * phi[c][k] * wv.alpha * wv.lam * wv.r[v]
			}
		}
		full[c] = f
	}
	return trimToInterior(full, opt.NGhost), nil
}

// wafLineFluxDissipated computes the dissipated WAF flux (spec.md §4.4.3
// step 4): the u-c and u+c waves bound a left and right star state exactly
// as in wafLineFlux, but the 3 coincident u-eigenvalue waves (entropy,
// v-shear, w-shear) are no longer folded into one jump. Instead they are
// accumulated one at a time, in an order fixed by a partial, stable sort of
// their 3 limiter weights (ascending; ties broken by wave index ascending),
// exposing 2 additional ghost states between the star regions. The true
// (nonlinear) flux is evaluated at all 6 resulting states — L, left star,
// 2 ghosts, right star, R — rather than relying on the linear Roe jump
// wafLineFlux uses, so the dissipated and undissipated compositions
// genuinely differ beyond the choice of limiter weighting.
func wafLineFluxDissipated(line []hydro.Con, opt Options) ([]hydro.Con, error) {
	waves, phi, theta := wafWaveWeights(line, opt)
	nFaces := len(waves)
	full := make([]hydro.Con, nFaces)
	for c := 0; c < nFaces; c++ {
		mid := [3]int{1, 2, 3}
		// partial 3-element sort of the coincident waves by limiter
		// weight, ascending, stable on ties (mirrors the reference
		// solver's bubble-sort of its 3 middle limiter values).
		for i := 0; i < 2; i++ {
			for j := 0; j < 2-i; j++ {
				if phi[c][mid[j]] > phi[c][mid[j+1]] {
					mid[j], mid[j+1] = mid[j+1], mid[j]
				}
			}
		}

		states := make([]hydro.Con, 6)
		states[0] = line[c]
		states[1] = accumulate(states[0], waves[c][0])
		states[2] = accumulate(states[1], waves[c][mid[0]])
		states[3] = accumulate(states[2], waves[c][mid[1]])
		states[4] = accumulate(states[3], waves[c][mid[2]])
		states[5] = line[c+1]

		idx := [5]int{0, mid[0], mid[1], mid[2], 4}
		var f hydro.Con
		f0 := hydro.ConToFlux(states[0], opt.Gamma)
		f5 := hydro.ConToFlux(states[5], opt.Gamma)
		for v := 0; v < hydro.NVar; v++ {
			f[v] = 0.5 * (f0[v] + f5[v])
		}
		for seg := 0; seg < 5; seg++ {
			k := idx[seg]
			flo := hydro.ConToFlux(states[seg], opt.Gamma)
			fhi := hydro.ConToFlux(states[seg+1], opt.Gamma)
			for v := 0; v < hydro.NVar; v++ {
				f[v] -= 0.5 * theta[c][k] * phi[c][k] * (fhi[v] - flo[v])
			}
		}
		full[c] = f
	}
	return trimToInterior(full, opt.NGhost), nil
}

// accumulate adds a Roe wave's conservative jump alpha*r onto a state.
func accumulate(u hydro.Con, wv roeWave) hydro.Con {
	var out hydro.Con
	for v := 0; v < hydro.NVar; v++ {
		out[v] = u[v] + wv.alpha*wv.r[v]
	}
	return out
}
