// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hydro

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestRotateRoundTrip(tst *testing.T) {
	chk.PrintTitle("RotateRoundTrip")
	u := Con{1.1, 0.3, -0.7, 2.2, 5.5}
	for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
		got := Rotate(Rotate(u, axis, true), axis, false)
		chk.Vector(tst, "u", 1e-15, got[:], u[:])
	}
}

func TestConPriRoundTrip(tst *testing.T) {
	chk.PrintTitle("ConPriRoundTrip")
	gamma := 1.4
	w0 := Pri{1.0, 0.2, -0.1, 0.05, 1.0}
	u := PriToCon(w0, gamma)
	w1 := ConToPri(u, gamma, false, 0)
	chk.Vector(tst, "w", 1e-14, w1[:], w0[:])
}

func TestConToFluxSod(tst *testing.T) {
	chk.PrintTitle("ConToFluxSod")
	gamma := 1.4
	w := Pri{1.0, 0, 0, 0, 1.0}
	u := PriToCon(w, gamma)
	f := ConToFlux(u, gamma)
	// at rest: mass flux is zero, momentum flux equals pressure, energy flux zero
	chk.Scalar(tst, "f[Dens]", 1e-15, f[Dens], 0)
	chk.Scalar(tst, "f[MomX]", 1e-15, f[MomX], w[Engy])
	chk.Scalar(tst, "f[Engy]", 1e-15, f[Engy], 0)
}
