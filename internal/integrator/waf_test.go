// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrator

import (
	"math"
	"testing"

	"github.com/cpmech/daino/internal/hydro"
	"github.com/cpmech/gosl/chk"
)

func sodLine(gamma float64, n, ng int) []hydro.Con {
	wl := hydro.Pri{1.0, 0, 0, 0, 1.0}
	wr := hydro.Pri{0.125, 0, 0, 0, 0.1}
	full := n + 2*ng
	line := make([]hydro.Con, full)
	for i := range line {
		w := wl
		if i >= full/2 {
			w = wr
		}
		line[i] = hydro.PriToCon(w, gamma)
	}
	return line
}

func TestWafDissipatedFiniteAcrossShockTube(tst *testing.T) {
	chk.PrintTitle("WafDissipatedFiniteAcrossShockTube")
	gamma, ng := 1.4, 2
	opt := Options{Gamma: gamma, Dt: 0.001, Dh: 0.05, LimiterName: "vanleer", NGhost: ng}
	line := sodLine(gamma, 8, ng)
	flux, err := wafLineFluxDissipated(line, opt)
	if err != nil {
		tst.Fatalf("wafLineFluxDissipated failed: %v", err)
	}
	for c, f := range flux {
		for v := 0; v < hydro.NVar; v++ {
			if math.IsNaN(f[v]) || math.IsInf(f[v], 0) {
				tst.Fatalf("face %d component %d is not finite: %v", c, v, f[v])
			}
		}
	}
}

func TestWafDissipatedDiffersFromUndissipatedAcrossShock(tst *testing.T) {
	chk.PrintTitle("WafDissipatedDiffersFromUndissipatedAcrossShock")
	gamma, ng := 1.4, 2
	opt := Options{Gamma: gamma, Dt: 0.001, Dh: 0.05, LimiterName: "vanleer", NGhost: ng}
	line := sodLine(gamma, 8, ng)
	undiss, err := wafLineFlux(line, opt)
	if err != nil {
		tst.Fatalf("wafLineFlux failed: %v", err)
	}
	diss, err := wafLineFluxDissipated(line, opt)
	if err != nil {
		tst.Fatalf("wafLineFluxDissipated failed: %v", err)
	}
	differs := false
	for c := range undiss {
		for v := 0; v < hydro.NVar; v++ {
			if math.Abs(undiss[c][v]-diss[c][v]) > 1e-10 {
				differs = true
			}
		}
	}
	if !differs {
		tst.Fatalf("expected the dissipated composition to diverge from the undissipated one across a genuine shock")
	}
}

func TestWafDissipatedUniformStatePhysicalFlux(tst *testing.T) {
	chk.PrintTitle("WafDissipatedUniformStatePhysicalFlux")
	gamma, ng := 1.4, 2
	w := hydro.Pri{1.0, 0.2, 0, 0, 1.0}
	u := hydro.PriToCon(w, gamma)
	line := make([]hydro.Con, 8+2*ng)
	for i := range line {
		line[i] = u
	}
	opt := Options{Gamma: gamma, Dt: 0.001, Dh: 0.05, LimiterName: "vanleer", NGhost: ng}
	flux, err := wafLineFluxDissipated(line, opt)
	if err != nil {
		tst.Fatalf("wafLineFluxDissipated failed: %v", err)
	}
	want := hydro.ConToFlux(u, gamma)
	for c, f := range flux {
		chk.Vector(tst, "faceFlux", 1e-10, f[:], want[:])
		_ = c
	}
}

func TestWafMiddleSortStableOnTies(tst *testing.T) {
	chk.PrintTitle("WafMiddleSortStableOnTies")
	// all three middle-wave limiter weights equal: the partial sort must
	// leave the original ascending wave-index order (1,2,3) untouched.
	phi := [5]float64{1, 0.5, 0.5, 0.5, 1}
	mid := [3]int{1, 2, 3}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2-i; j++ {
			if phi[mid[j]] > phi[mid[j+1]] {
				mid[j], mid[j+1] = mid[j+1], mid[j]
			}
		}
	}
	if mid != [3]int{1, 2, 3} {
		tst.Fatalf("expected stable tie order (1,2,3), got %v", mid)
	}
}
