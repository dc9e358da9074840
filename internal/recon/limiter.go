// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package recon implements data reconstruction (PLM/PPM) producing
// face-centered states from cell-centered stencils, per spec.md §4.3.
package recon

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Limiter bounds a 1D reconstruction slope given the left and right
// undivided differences (a = cell-left, b = right-cell) and an optional
// coefficient (MinMod_Coeff / EP_Coeff); it returns the limited slope.
type Limiter func(a, b, coeff float64) float64

var limiters = make(map[string]Limiter)

// Register adds a limiter under name.
func Register(name string, l Limiter) {
	if _, ok := limiters[name]; ok {
		chk.Panic("limiter %q already registered", name)
	}
	limiters[name] = l
}

// Get returns the limiter registered under name.
func Get(name string) (Limiter, error) {
	l, ok := limiters[name]
	if !ok {
		return nil, chk.Err("limiter %q is not available", name)
	}
	return l, nil
}

// MustGet is like Get but panics on failure.
func MustGet(name string) Limiter {
	l, err := Get(name)
	if err != nil {
		chk.Panic("%v", err)
	}
	return l
}

func sign(x float64) float64 {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

func minAbs(a, b float64) float64 {
	if math.Abs(a) < math.Abs(b) {
		return a
	}
	return b
}

func init() {
	Register("vanleer", VanLeer)
	Register("minmod", GeneralizedMinMod)
	Register("vanalbada", VanAlbada)
	Register("hybrid", VanLeerMinModHybrid)
	Register("ep", ExtremaPreserving)
}

// VanLeer is the classic harmonic-mean limiter; returns 0 at extrema.
func VanLeer(a, b, coeff float64) float64 {
	if a*b <= 0 {
		return 0
	}
	return 2 * a * b / (a + b)
}

// GeneralizedMinMod scales the minmod slope by MinMod_Coeff in (1,2].
func GeneralizedMinMod(a, b, coeff float64) float64 {
	if coeff <= 0 {
		coeff = 1
	}
	if a*b <= 0 {
		return 0
	}
	central := 0.5 * (a + b)
	return sign(central) * math.Min(coeff*math.Abs(minAbs(a, b)), math.Abs(central))
}

// VanAlbada is a smoother alternative to van Leer, less aggressive near
// extrema.
func VanAlbada(a, b, coeff float64) float64 {
	if a*b <= 0 {
		return 0
	}
	return a * b * (a + b) / (a*a + b*b)
}

// VanLeerMinModHybrid blends van Leer away from extrema with the stricter
// generalized MinMod limiter, selecting the smaller-magnitude slope.
func VanLeerMinModHybrid(a, b, coeff float64) float64 {
	vl := VanLeer(a, b, coeff)
	mm := GeneralizedMinMod(a, b, coeff)
	return minAbs(vl, mm)
}

// ExtremaPreserving relaxes the MinMod bound near smooth extrema when the
// jump magnitude is below EP_Coeff times the local scale, avoiding
// unnecessary clipping of smooth maxima/minima.
func ExtremaPreserving(a, b, coeff float64) float64 {
	if coeff <= 0 {
		coeff = 1.0
	}
	central := 0.5 * (a + b)
	if a*b <= 0 {
		scale := math.Max(math.Abs(a), math.Abs(b))
		if scale > 0 && math.Abs(a-b) < coeff*scale {
			return central
		}
		return 0
	}
	return sign(central) * math.Min(math.Abs(minAbs(a, b)), math.Abs(central))
}
