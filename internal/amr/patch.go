// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package amr implements the patch/level octree data model and the
// refine/coarsen state machine of spec.md §3/§4.7/§9. Patches reference
// father, son and 26 siblings by index into a per-level slice, never by
// pointer, so the graph survives restart and load-balance redistribution
// unchanged (spec.md §9 "Cyclic references").
package amr

import "github.com/cpmech/gosl/utl"

// NSib is the number of sibling slots (face+edge+corner neighbors).
const NSib = 26

// sibling/relation sentinels, per spec.md §3
const (
	NoNeighbor  = -1 // no neighbor in this direction (not a boundary)
	BoundaryLo  = -2 // lowest boundary-code sentinel; codes run -2..-27
)

// NoSon marks a patch with no children (a leaf).
const NoSon = -1

// NoFather marks a patch with no father (a root/level-0 patch).
const NoFather = -1

// PatchID indexes a patch within its level's slice.
type PatchID int

// Patch is a fixed PATCH_SIZE-cube block of cells at one AMR level.
type Patch struct {
	Level  int     // 0..Lmax-1
	Corner [3]int  // integer corner coordinates, in finest-level cell units
	Local  int     // local id 0..7 within the sibling octant

	Father  PatchID    // father patch id (at Level-1); NoFather if none
	Son     PatchID    // base id of the 8 children (at Level+1); NoSon if leaf
	Sibling [NSib]int  // neighbor patch id or a <0 sentinel (NoNeighbor / boundary code)

	// Fluid[slot][v][k][j][i]; two sandglasses per field.
	Fluid [2][][][][]float64
	// Pot[slot][k][j][i]; optional self-gravity potential.
	Pot [2][][][]float64
	HasPot bool

	Flux *FluxPatch // non-nil iff this patch has at least one coarse/fine face

	Active bool // false once the patch is freed (coarsened away)
}

// FluxPatch stores the 6 boundary-face flux arrays used for flux fix-up
// between this patch (coarse side) and its refined neighbors (fine side).
// Faces are ordered -x,+x,-y,+y,-z,+z matching spec.md §4.4.4.
type FluxPatch struct {
	// Faces[face][v][row][col]; nil when this patch has no coarse/fine
	// boundary on that face (invariant 4 of spec.md §3).
	Faces [6][][][]float64
}

// NewPatch allocates a patch's fluid storage (both sandglasses) for nvar
// components and size n per side. pot is allocated only if withPot.
func NewPatch(level int, corner [3]int, local, nvar, n int, withPot bool) *Patch {
	p := &Patch{
		Level:  level,
		Corner: corner,
		Local:  local,
		Father: NoFather,
		Son:    NoSon,
		Active: true,
	}
	for s := range p.Sibling {
		p.Sibling[s] = NoNeighbor
	}
	for slot := 0; slot < 2; slot++ {
		p.Fluid[slot] = utl.Deep4alloc(nvar, n, n, n)
	}
	if withPot {
		p.HasPot = true
		for slot := 0; slot < 2; slot++ {
			p.Pot[slot] = utl.Deep3alloc(n, n, n)
		}
	}
	return p
}

// AllocFlux allocates the flux arrays for the given faces (true = needs a
// flux patch on that face), each sized (ps2 x ps2) per conserved variable,
// where ps2 is the patch-group face size (2*PatchSize in the teacher's
// "patch group" unit, but a single patch's own face is PatchSize here).
func (p *Patch) AllocFlux(need [6]bool, nvar, faceSize int) {
	if p.Flux == nil {
		p.Flux = new(FluxPatch)
	}
	for f := 0; f < 6; f++ {
		if need[f] {
			if p.Flux.Faces[f] == nil {
				p.Flux.Faces[f] = utl.Deep3alloc(nvar, faceSize, faceSize)
			}
		} else {
			p.Flux.Faces[f] = nil
		}
	}
	allNil := true
	for f := 0; f < 6; f++ {
		if p.Flux.Faces[f] != nil {
			allNil = false
			break
		}
	}
	if allNil {
		p.Flux = nil
	}
}

// Span returns the number of finest-level cell units a patch at this
// level spans per axis: PATCH_SIZE * 2^(Lmax-level).
func Span(level, lmax, patchSize int) int {
	return patchSize << uint(lmax-level)
}
