// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package riemann implements the pluggable Riemann solver set: Exact, Roe
// (with safe-solver fallback), HLLE and HLLC. Every solver shares the same
// signature so the driver can select one into a function-pointer table at
// launch time (see ele.SetAllocator / mconduct.allocators for the pattern
// this registry follows).
package riemann

import (
	"github.com/cpmech/daino/internal/hydro"
	"github.com/cpmech/gosl/chk"
)

// MaxErrorDouble and MaxErrorSingle are the iterative-solve tolerances
// named in spec.md §4.2 for double and single precision respectively.
const (
	MaxErrorDouble = 1e-15
	MaxErrorSingle = 1e-6
)

// Solver computes the interface numerical flux given left/right primitive
// states (already rotated so the interface normal is the x-axis) and gamma.
type Solver func(wl, wr hydro.Pri, gamma float64) (flux hydro.Con, err error)

// solvers holds all available Riemann solvers, keyed by name.
var solvers = make(map[string]Solver)

// Register adds a solver under name; panics on duplicate registration,
// mirroring ele.SetAllocator's guard in ele/factory.go.
func Register(name string, s Solver) {
	if _, ok := solvers[name]; ok {
		chk.Panic("riemann solver %q already registered", name)
	}
	solvers[name] = s
}

// Get returns the solver registered under name.
func Get(name string) (Solver, error) {
	s, ok := solvers[name]
	if !ok {
		return nil, chk.Err("riemann solver %q is not available", name)
	}
	return s, nil
}

// MustGet is like Get but panics on failure; used at driver start-up where
// an unknown solver name is a configuration error worth aborting on.
func MustGet(name string) Solver {
	s, err := Get(name)
	if err != nil {
		chk.Panic("%v", err)
	}
	return s
}
