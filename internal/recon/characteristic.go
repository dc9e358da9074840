// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recon

import (
	"math"

	"github.com/cpmech/daino/internal/hydro"
)

// ProjectToChar projects a primitive-variable perturbation d (a
// reconstruction slope, or a stencil cell used as one) onto the left
// eigenvectors of the 1D primitive-variable Euler flux Jacobian A(w)
// (internal/recon/plm.go's primJacobianApply) linearized about reference
// state w, returning the characteristic amplitudes ordered (u-c wave,
// entropy wave, v-shear, w-shear, u+c wave). This is the decomposition
// spec.md §4.3 requires reconstruction to run in when self-gravity is
// off: when their caller sets characteristic=true, PLMAxis/PPMAxis call
// this for each slope or stencil value of a reference cell and
// ProjectFromChar to map the limited result back.
func ProjectToChar(w, d hydro.Pri, gamma float64) hydro.Pri {
	rho, p := w[hydro.Dens], w[hydro.Engy]
	c2 := gamma * p / rho
	c := math.Sqrt(c2)
	var a hydro.Pri
	a[0] = 0.5 * (d[hydro.Engy]/c2 - rho/c*d[hydro.MomX])
	a[1] = d[hydro.Dens] - d[hydro.Engy]/c2
	a[2] = d[hydro.MomY]
	a[3] = d[hydro.MomZ]
	a[4] = 0.5 * (d[hydro.Engy]/c2 + rho/c*d[hydro.MomX])
	return a
}

// ProjectFromChar is the inverse of ProjectToChar: given characteristic
// amplitudes (after independent per-wave limiting), reconstructs the
// primitive-variable perturbation they represent about the same
// reference state w used to build them.
func ProjectFromChar(w, a hydro.Pri, gamma float64) hydro.Pri {
	rho, p := w[hydro.Dens], w[hydro.Engy]
	c2 := gamma * p / rho
	c := math.Sqrt(c2)
	var d hydro.Pri
	d[hydro.Dens] = a[0] + a[1] + a[4]
	d[hydro.MomX] = c / rho * (a[4] - a[0])
	d[hydro.MomY] = a[2]
	d[hydro.MomZ] = a[3]
	d[hydro.Engy] = c2 * (a[0] + a[4])
	return d
}
