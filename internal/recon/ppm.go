// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recon

import "github.com/cpmech/daino/internal/hydro"

// PPMAxis builds parabolic face states along one axis from a 1D stencil of
// cell-centered primitive states, per spec.md §4.3: a 4th-order interface
// estimate from a 5-point stencil, followed by van-Leer monotonicity
// enforcement and PPM flattening of the resulting parabola. Input stencil
// has length n; output slices have length n-4 (two ghosts per side, as PPM
// needs one extra neighbor beyond PLM's single ghost).
//
// When characteristic is true (self-gravity off, per spec.md §4.3), each of
// the five stencil cells is first projected onto the characteristic basis
// fixed by the center cell stencil[i] (ProjectToChar); the parabolic profile
// is built and limited per characteristic component, and the resulting face
// values are projected back (ProjectFromChar) before being returned.
func PPMAxis(stencil []hydro.Pri, coeff float64, characteristic bool, gamma float64) (faceL, faceR []hydro.Pri) {
	n := len(stencil)
	faceL = make([]hydro.Pri, n-4)
	faceR = make([]hydro.Pri, n-4)
	for i := 2; i < n-2; i++ {
		w := stencil[i]
		cM2, cM1, c0, cP1, cP2 := stencil[i-2], stencil[i-1], w, stencil[i+1], stencil[i+2]
		if characteristic {
			cM2 = ProjectToChar(w, cM2, gamma)
			cM1 = ProjectToChar(w, cM1, gamma)
			c0 = ProjectToChar(w, c0, gamma)
			cP1 = ProjectToChar(w, cP1, gamma)
			cP2 = ProjectToChar(w, cP2, gamma)
		}
		var l, r hydro.Pri
		for k := 0; k < hydro.NVar; k++ {
			l[k], r[k] = ppmFaceValues(cM2[k], cM1[k], c0[k], cP1[k], cP2[k])
		}
		if characteristic {
			l = ProjectFromChar(w, l, gamma)
			r = ProjectFromChar(w, r, gamma)
		}
		faceL[i-2] = l
		faceR[i-2] = r
	}
	return
}

// interfaceEstimate returns the 4th-order estimate of a_{i+1/2} given the
// four surrounding cell averages (aL2=a_{i-1}, aL1=a_i, aR1=a_{i+1},
// aR2=a_{i+2}).
func interfaceEstimate(aL2, aL1, aR1, aR2 float64) float64 {
	return 7.0/12.0*(aL1+aR1) - 1.0/12.0*(aL2+aR2)
}

// ppmFaceValues returns the monotonized left/right face values bounding
// cell i (value a0), given its two left and two right neighbors.
func ppmFaceValues(aM2, aM1, a0, aP1, aP2 float64) (aL, aR float64) {
	aMinus := interfaceEstimate(aM2, aM1, a0, aP1) // a_{i-1/2} uses (i-2,i-1,i,i+1)
	aPlus := interfaceEstimate(aM1, a0, aP1, aP2)   // a_{i+1/2} uses (i-1,i,i+1,i+2)
	aL, aR = aMinus, aPlus

	// van-Leer monotonicity: flatten if not a local extremum-consistent parabola
	if (aR-a0)*(a0-aL) <= 0 {
		aL, aR = a0, a0
		return
	}
	diff := aR - aL
	if diff*(a0-0.5*(aL+aR)) > diff*diff/6 {
		aL = 3*a0 - 2*aR
	} else if -diff*diff/6 > diff*(a0-0.5*(aL+aR)) {
		aR = 3*a0 - 2*aL
	}
	return
}
