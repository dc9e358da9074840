// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hydro implements the conserved/primitive/flux state-vector
// primitives shared by every Riemann solver and fluid integrator: rotation,
// Con<->Pri conversion and Con->Flux evaluation for the 5-component Euler
// state U = {rho, rho*vx, rho*vy, rho*vz, E}.
package hydro

import "math"

// NVar is the number of conserved components for the hydro model.
const NVar = 5

// index of each component within a 5-vector
const (
	Dens = iota
	MomX
	MomY
	MomZ
	Engy
)

// Axis selects which spatial direction a 1D solver currently operates on.
type Axis int

// the three axes
const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Pri holds the primitive state {rho, vx, vy, vz, p}.
type Pri [NVar]float64

// Con holds the conserved state {rho, rho*vx, rho*vy, rho*vz, E}.
type Con [NVar]float64

// ConToPri converts a conserved state to primitive variables. When
// positivity is requested, a non-positive pressure is floored to epsP
// rather than propagated, matching spec.md's local-numerical-fault policy.
func ConToPri(u Con, gamma float64, positivity bool, epsP float64) Pri {
	rho := u[Dens]
	var w Pri
	w[Dens] = rho
	w[MomX] = u[MomX] / rho
	w[MomY] = u[MomY] / rho
	w[MomZ] = u[MomZ] / rho
	kinetic := 0.5 * rho * (w[MomX]*w[MomX] + w[MomY]*w[MomY] + w[MomZ]*w[MomZ])
	p := (gamma - 1) * (u[Engy] - kinetic)
	if positivity && p < epsP {
		p = epsP
	}
	w[Engy] = p
	return w
}

// PriToCon is the exact inverse of ConToPri (given the same gamma).
func PriToCon(w Pri, gamma float64) Con {
	rho := w[Dens]
	vx, vy, vz, p := w[MomX], w[MomY], w[MomZ], w[Engy]
	var u Con
	u[Dens] = rho
	u[MomX] = rho * vx
	u[MomY] = rho * vy
	u[MomZ] = rho * vz
	u[Engy] = p/(gamma-1) + 0.5*rho*(vx*vx+vy*vy+vz*vz)
	return u
}

// ConToFlux returns the Euler flux of u in the given axis direction,
// assuming u has already been rotated so that "axis" behaves as x.
func ConToFlux(u Con, gamma float64) Con {
	rho := u[Dens]
	vx := u[MomX] / rho
	w := ConToPri(u, gamma, false, 0)
	p := w[Engy]
	var f Con
	f[Dens] = u[MomX]
	f[MomX] = u[MomX]*vx + p
	f[MomY] = u[MomY] * vx
	f[MomZ] = u[MomZ] * vx
	f[Engy] = (u[Engy] + p) * vx
	return f
}

// Rotate permutes the 3 momentum components so a 1D solver built for the
// x-axis can operate on any axis. forward=true rotates caller order into
// x-major order; forward=false applies the inverse permutation. The
// invariant Rotate(Rotate(u,a,true),a,false) == u must hold for every axis.
func Rotate(u Con, axis Axis, forward bool) Con {
	out := u
	switch axis {
	case AxisX:
		// identity
	case AxisY:
		if forward {
			out[MomX], out[MomY], out[MomZ] = u[MomY], u[MomZ], u[MomX]
		} else {
			out[MomX], out[MomY], out[MomZ] = u[MomZ], u[MomX], u[MomY]
		}
	case AxisZ:
		if forward {
			out[MomX], out[MomY], out[MomZ] = u[MomZ], u[MomX], u[MomY]
		} else {
			out[MomX], out[MomY], out[MomZ] = u[MomY], u[MomZ], u[MomX]
		}
	}
	return out
}

// SoundSpeed returns the adiabatic sound speed for a primitive state.
func SoundSpeed(w Pri, gamma float64) float64 {
	return math.Sqrt(gamma * w[Engy] / w[Dens])
}

// MaxSignalSpeed returns max(|v|+c) across the 3 velocity components,
// used by the driver's CFL timestep constraint.
func MaxSignalSpeed(w Pri, gamma float64) float64 {
	c := SoundSpeed(w, gamma)
	vmax := math.Abs(w[MomX])
	if v := math.Abs(w[MomY]); v > vmax {
		vmax = v
	}
	if v := math.Abs(w[MomZ]); v > vmax {
		vmax = v
	}
	return vmax + c
}
