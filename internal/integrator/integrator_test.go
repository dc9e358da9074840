// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrator

import (
	"testing"

	"github.com/cpmech/daino/internal/hydro"
	"github.com/cpmech/daino/internal/riemann"
	"github.com/cpmech/gosl/chk"
)

func uniformCube(n, ng int, w hydro.Pri, gamma float64) [][][][]float64 {
	full := n + 2*ng
	u := hydro.PriToCon(w, gamma)
	cube := make([][][][]float64, hydro.NVar)
	for v := range cube {
		cube[v] = make([][][]float64, full)
		for k := range cube[v] {
			cube[v][k] = make([][]float64, full)
			for j := range cube[v][k] {
				cube[v][k][j] = make([]float64, full)
				for i := range cube[v][k][j] {
					cube[v][k][j][i] = u[v]
				}
			}
		}
	}
	return cube
}

func TestUniformStateIsSteadyAcrossSchemes(tst *testing.T) {
	chk.PrintTitle("UniformStateIsSteadyAcrossSchemes")
	n, ng := 4, 2
	gamma := 1.4
	w := hydro.Pri{1.0, 0, 0, 0, 1.0}
	opt := Options{
		Gamma: gamma, Dt: 0.01, Dh: 0.1,
		Solver: riemann.MustGet("hllc"), LimiterName: "vanleer", LimiterCoef: 1.0,
		Positivity: true, EpsP: 1e-10, NGhost: ng,
	}
	for _, name := range []string{"mhm", "mhmrp", "ctu", "waf", "wafdissipate"} {
		scheme := MustGet(name)
		cube := uniformCube(n, ng, w, gamma)
		out, _, err := scheme(cube, n, opt)
		if err != nil {
			tst.Fatalf("%s: %v", name, err)
		}
		for v := 0; v < hydro.NVar; v++ {
			for k := 0; k < n; k++ {
				for j := 0; j < n; j++ {
					for i := 0; i < n; i++ {
						chk.Scalar(tst, name, 1e-8, out[v][k][j][i], cube[v][k+ng][j+ng][i+ng])
					}
				}
			}
		}
	}
}

func TestMustGetUnknownSchemePanics(tst *testing.T) {
	chk.PrintTitle("MustGetUnknownSchemePanics")
	defer func() {
		if r := recover(); r == nil {
			tst.Errorf("expected panic for unknown scheme")
		}
	}()
	MustGet("nonexistent")
}
