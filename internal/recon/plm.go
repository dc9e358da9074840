// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recon

import "github.com/cpmech/daino/internal/hydro"

// PLMAxis performs piecewise-linear reconstruction along a single axis: for
// each interior cell of a 1D stencil of cell-centered primitive states, it
// returns the left- and right-face values built from a limited slope. The
// input stencil has length n; output slices have length n-2, one entry per
// interior cell i=1..n-2 (0-based), matching spec.md §4.3's "stencil of
// length N_in - 2*NGhost" contract for a single ghost cell per side.
//
// When characteristic is true (self-gravity off, per spec.md §4.3's "when
// self-gravity is off, reconstruction is performed in characteristic
// variables" rule), the two one-sided slopes are projected onto the local
// eigenvectors of the primitive-variable Euler Jacobian (ProjectToChar)
// before limiting, and the limited characteristic slope is projected back
// (ProjectFromChar) before building the face states. When characteristic
// is false (self-gravity on), limiting runs directly on the primitive
// components, unchanged from the gravity-coupled case's requirement.
func PLMAxis(stencil []hydro.Pri, limiterName string, coeff float64, characteristic bool, gamma float64) (faceL, faceR []hydro.Pri) {
	lim := MustGet(limiterName)
	n := len(stencil)
	faceL = make([]hydro.Pri, n-2)
	faceR = make([]hydro.Pri, n-2)
	for i := 1; i < n-1; i++ {
		w := stencil[i]
		var a, b hydro.Pri
		for k := 0; k < hydro.NVar; k++ {
			a[k] = w[k] - stencil[i-1][k]
			b[k] = stencil[i+1][k] - w[k]
		}
		if characteristic {
			a = ProjectToChar(w, a, gamma)
			b = ProjectToChar(w, b, gamma)
		}
		var slope hydro.Pri
		for k := 0; k < hydro.NVar; k++ {
			slope[k] = lim(a[k], b[k], coeff)
		}
		if characteristic {
			slope = ProjectFromChar(w, slope, gamma)
		}
		var l, r hydro.Pri
		for k := 0; k < hydro.NVar; k++ {
			l[k] = w[k] - 0.5*slope[k]
			r[k] = w[k] + 0.5*slope[k]
		}
		faceL[i-1] = l
		faceR[i-1] = r
	}
	return
}

// primJacobianApply applies the primitive-variable Euler flux Jacobian A(W)
// to a slope vector dW, returning A(W)*dW, used by the half-step predictor.
// A(W) for the 1D (x-aligned) system is:
//
//	[ u   rho  0   0   0   ]
//	[ 0   u    0   0  1/rho]
//	[ 0   0    u   0   0   ]
//	[ 0   0    0   u   0   ]
//	[ 0 rho*c2 0   0   u   ]
func primJacobianApply(w hydro.Pri, dW hydro.Pri, gamma float64) hydro.Pri {
	rho, u, p := w[hydro.Dens], w[hydro.MomX], w[hydro.Engy]
	c2 := gamma * p / rho
	var out hydro.Pri
	out[hydro.Dens] = u*dW[hydro.Dens] + rho*dW[hydro.MomX]
	out[hydro.MomX] = u*dW[hydro.MomX] + dW[hydro.Engy]/rho
	out[hydro.MomY] = u * dW[hydro.MomY]
	out[hydro.MomZ] = u * dW[hydro.MomZ]
	out[hydro.Engy] = rho*c2*dW[hydro.MomX] + u*dW[hydro.Engy]
	return out
}

// HalfStepPredict advances a cell's two PLM face states by half a timestep
// using the primitive-form evolution equation (the MUSCL-Hancock
// predictor of spec.md §4.4.1): each face is corrected by
// -0.5*(dt/dh)*A(W)*(faceR-faceL).
func HalfStepPredict(center, faceL, faceR hydro.Pri, gamma, dt, dh float64) (newL, newR hydro.Pri) {
	var slope hydro.Pri
	for k := 0; k < hydro.NVar; k++ {
		slope[k] = faceR[k] - faceL[k]
	}
	corr := primJacobianApply(center, slope, gamma)
	coeff := 0.5 * dt / dh
	for k := 0; k < hydro.NVar; k++ {
		newL[k] = faceL[k] - coeff*corr[k]
		newR[k] = faceR[k] - coeff*corr[k]
	}
	return
}
