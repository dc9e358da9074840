// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gravity declares the self-gravity collaborator boundary, per
// spec.md §6: solving the Poisson equation for the potential sourced by a
// level's density field is a Non-goal of this engine (no FFT, multigrid,
// or SOR implementation ships here), but the driver's timestep and
// momentum update need a stable point to plug one in.
package gravity

import "github.com/cpmech/gosl/la"

// PoissonSolver solves ∇²φ = 4πGρ for one level given the level's density
// field, writing the result into pot. Implementations are free to use any
// discretization (multigrid, FFT, SOR); this engine only depends on the
// contract.
type PoissonSolver interface {
	// Solve fills pot (an n x n x n array matching one patch's interior,
	// or a whole level's assembled grid, depending on implementation)
	// given rho at the same resolution and the level's cell size dh.
	Solve(rho [][][]float64, dh float64, pot [][][]float64) error
}

// TripletPoissonSolver is a reference PoissonSolver for single-patch,
// small test grids: it assembles the standard 7-point Laplacian into a
// sparse triplet and solves it directly, in the same
// assemble-into-Triplet-then-solve style the teacher uses for its
// stiffness matrix (fem.Domain.Kb). It is not intended for production
// multi-level solves (no boundary-condition handling beyond Dirichlet
// zero, no multigrid acceleration); its purpose is to give
// PoissonSolver a concrete, exercisable implementation grounded in the
// sparse-linear-algebra stack the teacher already depends on.
type TripletPoissonSolver struct {
	G float64 // gravitational constant
}

// NewTripletPoissonSolver returns a solver using gravitational constant g.
func NewTripletPoissonSolver(g float64) *TripletPoissonSolver {
	return &TripletPoissonSolver{G: g}
}

// Solve assembles -∇²φ = -4πGρ on an n x n x n grid with homogeneous
// Dirichlet boundaries and solves it via la.Triplet + la.GetSolver, mirroring
// how fem.Domain builds Kb and calls its linear solver once per step.
func (s *TripletPoissonSolver) Solve(rho [][][]float64, dh float64, pot [][][]float64) error {
	n := len(rho)
	ndof := n * n * n
	idx := func(k, j, i int) int { return (k*n+j)*n + i }

	var Kb la.Triplet
	Kb.Init(ndof, ndof, ndof*7)
	rhs := make([]float64, ndof)
	invdh2 := 1.0 / (dh * dh)

	for k := 0; k < n; k++ {
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				row := idx(k, j, i)
				diag := 6.0 * invdh2
				Kb.Put(row, row, diag)
				for _, d := range [6][3]int{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}} {
					kk, jj, ii := k+d[0], j+d[1], i+d[2]
					if kk < 0 || kk >= n || jj < 0 || jj >= n || ii < 0 || ii >= n {
						continue // homogeneous Dirichlet: boundary contributes zero potential
					}
					Kb.Put(row, idx(kk, jj, ii), -invdh2)
				}
				rhs[row] = -4 * 3.14159265358979323846 * s.G * rho[k][j][i]
			}
		}
	}

	sol := make([]float64, ndof)
	solver := la.GetSolver("umfpack")
	defer solver.Clean()
	if err := solver.InitR(&Kb, false, false, false); err != nil {
		return err
	}
	if err := solver.Fact(); err != nil {
		return err
	}
	if err := solver.SolveR(sol, rhs, false); err != nil {
		return err
	}

	for k := 0; k < n; k++ {
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				pot[k][j][i] = sol[idx(k, j, i)]
			}
		}
	}
	return nil
}
