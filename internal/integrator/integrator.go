// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package integrator implements the per-patch full-step fluid update
// schemes of spec.md §4.4 (MHM, MHM-RP, CTU, WAF), each built from the
// shared reconstruction (internal/recon) and Riemann-solver
// (internal/riemann) collaborators, selected at startup through a
// registry mirroring the riemann/recon packages' function-table pattern.
package integrator

import (
	"github.com/cpmech/daino/internal/hydro"
	"github.com/cpmech/daino/internal/riemann"
	"github.com/cpmech/gosl/chk"
)

// Options bundles everything a scheme needs beyond the raw cell data.
type Options struct {
	Gamma          float64
	Dt             float64
	Dh             float64
	Solver         riemann.Solver
	LimiterName    string
	LimiterCoef    float64
	Positivity     bool
	EpsP           float64
	NGhost         int
	Characteristic bool
}

// Scheme advances a patch's interior cells over all three axes; it
// operates on an already-ghosted n+2*NGhost cube (per hydro.NVar
// component) and returns the updated interior cells (n^3) plus the six
// boundary flux faces needed for multi-level flux fix-up.
type Scheme func(fluid [][][][]float64, n int, opt Options) (out [][][][]float64, faces [6][][][]float64, err error)

var schemes = make(map[string]Scheme)

// Register associates a scheme name ("mhm", "mhmrp", "ctu", "waf",
// "wafdissipate") with its implementation. Called from each scheme file's
// init; panics on a duplicate name, the same contract as riemann.Register.
func Register(name string, s Scheme) {
	if _, exists := schemes[name]; exists {
		panic("integrator: duplicate scheme registered: " + name)
	}
	schemes[name] = s
}

// Get looks up a registered scheme by name.
func Get(name string) (Scheme, error) {
	s, ok := schemes[name]
	if !ok {
		return nil, chk.Err("integrator: unknown scheme %q", name)
	}
	return s, nil
}

// MustGet is Get but panics on an unknown name, for use during startup
// configuration validation where a bad name is a programmer/config error.
func MustGet(name string) Scheme {
	s, err := Get(name)
	if err != nil {
		chk.Panic("%v", err)
	}
	return s
}

func zeroCube(n int) [][][][]float64 {
	out := make([][][][]float64, hydro.NVar)
	for v := range out {
		out[v] = make([][][]float64, n)
		for k := range out[v] {
			out[v][k] = make([][]float64, n)
			for j := range out[v][k] {
				out[v][k][j] = make([]float64, n)
			}
		}
	}
	return out
}

func zeroFace(n int) [][][]float64 {
	out := make([][][]float64, hydro.NVar)
	for v := range out {
		out[v] = make([][]float64, n)
		for j := range out[v] {
			out[v][j] = make([]float64, n)
		}
	}
	return out
}
