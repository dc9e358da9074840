// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package driver implements Engine, the top-level control loop of spec.md
// §4.8: compute dt, integrate (shared or individual timestep), flux
// fix-up/restriction, refine/coarsen, diagnostics and the rebalance/
// sentinel hooks. It plays the role fem.FEM.Run plays in the teacher,
// generalized from a stage-by-stage FE solve to the AMR level hierarchy.
package driver

import (
	"math"
	"os"

	"github.com/cpmech/daino/internal/accel"
	"github.com/cpmech/daino/internal/amr"
	"github.com/cpmech/daino/internal/amrerr"
	"github.com/cpmech/daino/internal/config"
	"github.com/cpmech/daino/internal/diag"
	"github.com/cpmech/daino/internal/exchange"
	"github.com/cpmech/daino/internal/gravity"
	"github.com/cpmech/daino/internal/hydro"
	"github.com/cpmech/daino/internal/integrator"
	"github.com/cpmech/daino/internal/recon"
	"github.com/cpmech/daino/internal/refine"
	"github.com/cpmech/daino/internal/restartio"
	"github.com/cpmech/daino/internal/restrict"
	"github.com/cpmech/daino/internal/riemann"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// EpsP is the pressure floor used throughout the engine when
// Configuration.Positivity is set (spec.md §4.1 "floor p = max(p, eps_p)").
const EpsP = 1e-10

// NGhost is the ghost width the MHM/MHM-RP/CTU line sweeps require (PLM
// reconstruction with a single ghost layer consumed on each side, plus the
// face-flux computation itself needing one more interior neighbor; see
// internal/recon.PLMAxis's stencil contract).
const NGhost = 2

// RuntimeState is the small mutable state threaded through a run, kept
// separate from the immutable Configuration per spec.md §9's "Global
// mutable state" design note: current sandglass slot per level, plus the
// global step counter.
type RuntimeState struct {
	Step int64
	Slot []int // Slot[level] is the currently-readable sandglass index
}

// NewRuntimeState allocates a RuntimeState with every level's slot at 0.
func NewRuntimeState(nlevels int) *RuntimeState {
	return &RuntimeState{Slot: make([]int, nlevels)}
}

// Engine owns the Configuration, the patch tree, the selected
// scheme/solver/limiter tables and the external collaborators, and runs
// the timestep/integrate/output loop. The direct analogue of fem.FEM.
type Engine struct {
	Cfg       *config.Configuration
	Tree      *amr.Tree
	State     *RuntimeState
	Exchanger exchange.GhostExchanger
	Gravity   gravity.PoissonSolver // nil unless Cfg.SelfGravity
	Accel     accel.Accelerator
	Criteria  []refine.Criteria // per-level refinement thresholds, length MaxLevel+1

	scheme integrator.Scheme
	solver riemann.Solver

	prevConservation []float64
	dumpID           int
}

// NewEngine selects the scheme/solver table per Configuration and wires
// the collaborators, mirroring fem.FEM's allocator-selection at
// construction time (spec.md §9: "select the scheme ... into a
// function-pointer table and pass the table to the per-patch-group
// worker").
func NewEngine(cfg *config.Configuration, tr *amr.Tree, ex exchange.GhostExchanger, grav gravity.PoissonSolver, ac accel.Accelerator) (*Engine, error) {
	scheme, err := integrator.Get(cfg.Scheme)
	if err != nil {
		return nil, amrerr.NewConfig("%v", err)
	}
	solver, err := riemann.Get(cfg.Riemann)
	if err != nil {
		return nil, amrerr.NewConfig("%v", err)
	}
	if cfg.Riemann == "roe" && cfg.RoeFallback != "" {
		riemann.SetRoeFallback(cfg.RoeFallback)
	}
	if _, err := recon.Get(cfg.Limiter); err != nil {
		return nil, amrerr.NewConfig("%v", err)
	}
	if ac == nil {
		ac = accel.CPUAccelerator{}
	}
	e := &Engine{
		Cfg:       cfg,
		Tree:      tr,
		State:     NewRuntimeState(len(tr.Levels)),
		Exchanger: ex,
		Gravity:   grav,
		Accel:     ac,
		Criteria:  make([]refine.Criteria, cfg.MaxLevel+1),
		scheme:    scheme,
		solver:    solver,
	}
	for l := 0; l <= cfg.MaxLevel && l < len(cfg.DensThreshold); l++ {
		e.Criteria[l] = refine.Criteria{
			EnableDens:     cfg.EnableDensFlag,
			DensThreshold:  at(cfg.DensThreshold, l),
			EnableDensGrad: cfg.EnableDensGradFlag,
			DensGradThresh: at(cfg.DensGradThreshold, l),
			EnablePresGrad: cfg.EnablePresGradFlag,
			PresGradThresh: at(cfg.PresGradThreshold, l),
			Gamma:          cfg.Gamma,
			EnableLohner:   cfg.EnableLohnerFlag,
			LohnerThresh:   at(cfg.LohnerThreshold, l),
			LohnerFilter:   at(cfg.LohnerFilter, l),
			LohnerSoften:   at(cfg.LohnerSoften, l),
			EnableELBDM:    cfg.EnableELBDMFlag,
		}
	}
	return e, nil
}

func at(s []float64, i int) float64 {
	if i < len(s) {
		return s[i]
	}
	return 0
}

// opts builds the per-call integrator.Options for a level's current state.
func (e *Engine) opts(level int, dt float64) integrator.Options {
	return integrator.Options{
		Gamma:          e.Cfg.Gamma,
		Dt:             dt,
		Dh:             e.Tree.Levels[level].Dh,
		Solver:         e.solver,
		LimiterName:    e.Cfg.Limiter,
		LimiterCoef:    e.limiterCoeff(),
		Positivity:     e.Cfg.Positivity,
		EpsP:           EpsP,
		NGhost:         NGhost,
		Characteristic: !e.Cfg.SelfGravity,
	}
}

func (e *Engine) limiterCoeff() float64 {
	if e.Cfg.Limiter == "ep" {
		return e.Cfg.EPCoeff
	}
	return e.Cfg.MinModCoeff
}

// ComputeDt returns the global step dt: the minimum of the per-level CFL
// constraint over every leaf patch, scaled by Configuration.AdaptiveDt
// (spec.md §4.8 step 1). Gravity and phase-advance constraints are left
// as hooks since their source collaborators (Poisson, ELBDM phase) are
// out of this core's scope beyond the interface (spec.md §1/§6).
func (e *Engine) ComputeDt() float64 {
	dt := math.MaxFloat64
	for l, lv := range e.Tree.Levels {
		slot := e.State.Slot[l]
		for _, p := range lv.Patches {
			if !p.Active || p.Son != amr.NoSon {
				continue
			}
			for k := 0; k < e.Tree.PatchSize; k++ {
				for j := 0; j < e.Tree.PatchSize; j++ {
					for i := 0; i < e.Tree.PatchSize; i++ {
						var u hydro.Con
						for v := 0; v < e.Tree.NVar; v++ {
							u[v] = p.Fluid[slot][v][k][j][i]
						}
						w := hydro.ConToPri(u, e.Cfg.Gamma, e.Cfg.Positivity, EpsP)
						smax := hydro.MaxSignalSpeed(w, e.Cfg.Gamma)
						if smax > 0 {
							if d := e.Cfg.CFL * lv.Dh / smax; d < dt {
								dt = d
							}
						}
					}
				}
			}
		}
	}
	if dt == math.MaxFloat64 {
		dt = e.Cfg.Dh[0] // no signal anywhere (vacuum); fall back to a cell crossing at c=1
	}
	if userDt, ok := e.Cfg.UserDt(e.Tree.Levels[0].T); ok && userDt < dt {
		dt = userDt
	}
	dt *= e.Cfg.AdaptiveDt
	if e.Cfg.TEnd > 0 {
		remaining := e.Cfg.TEnd - e.Tree.Levels[0].T
		if remaining > 0 && dt > remaining {
			dt = remaining
		}
	}
	return dt
}

// Run loops until T[0] >= TEnd or step >= StepEnd, implementing spec.md
// §4.8's 5-step outer iteration.
func (e *Engine) Run() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = amrerr.NewConfig("engine run aborted: %v", r)
		}
	}()
	e.prevConservation = diag.ConservationReport(e.Tree, e.State.Slot[0])
	for {
		if e.Tree.Levels[0].T >= e.Cfg.TEnd && e.Cfg.TEnd > 0 {
			break
		}
		if e.Cfg.StepEnd > 0 && e.State.Step >= e.Cfg.StepEnd {
			break
		}
		dt := e.ComputeDt()
		if err = e.advanceLevel(0, dt); err != nil {
			return err
		}
		e.State.Step++

		if e.Cfg.CheckEvery > 0 && e.State.Step%e.Cfg.CheckEvery == 0 {
			e.runDiagnostics()
		}

		if wli := e.loadImbalance(); wli > e.Cfg.WLIMax {
			io.Pf("load imbalance %v exceeds WLIMax %v: rebalance requested (no-op: load-balance index computation is out of scope)\n", wli, e.Cfg.WLIMax)
		}

		if diag.CheckSentinel(e.Cfg.SentinelFile) {
			io.Pf("sentinel file %q present: dumping and terminating\n", e.Cfg.SentinelFile)
			if err := e.Dump(); err != nil {
				return err
			}
			break
		}
	}
	return nil
}

// Dump writes the current tree to a restart file under Configuration.
// DirOut, named by an incrementing dumpID, per spec.md §4.8 step 5 and
// the persistent-state layout of §6.
func (e *Engine) Dump() error {
	path := io.Sf("%s/restart_%06d.bin", e.Cfg.DirOut, e.dumpID)
	e.dumpID++
	f, err := os.Create(path)
	if err != nil {
		return amrerr.NewIO("cannot create restart file %q: %v", path, err)
	}
	defer f.Close()

	nlv := len(e.Tree.Levels)
	npatch := make([]int32, nlv)
	ndata := make([]int32, nlv)
	for l, lv := range e.Tree.Levels {
		npatch[l] = int32(lv.Count())
		ndata[l] = npatch[l]
	}
	h := &restartio.Header{
		FormatVersion: restartio.MinFormatVersion,
		HeaderSize:    1024,
		Sizes:         restartio.DefaultTypeSizes,
		Layout:        restartio.LayoutVKJI,
		Model:         int32(e.Cfg.Model),
		GravityOn:     e.Cfg.SelfGravity,
		NLv:           int32(nlv),
		BoxSize:       e.Cfg.BoxSize,
		NX0:           int32(e.Cfg.NX0),
	}
	info := &restartio.SimInfo{
		DumpID:          int32(e.dumpID),
		T:               levelTimes(e.Tree),
		Step:            e.State.Step,
		NPatchTotal:     npatch,
		NDataPatchTotal: ndata,
		AdvanceCounter:  make([]uint32, nlv),
	}
	if err := restartio.WriteHeader(f, h, info); err != nil {
		return amrerr.NewIO("writing restart header: %v", err)
	}
	if err := restartio.WritePatches(f, e.Tree, e.State.Slot, restartio.LayoutVKJI); err != nil {
		return amrerr.NewIO("writing restart patches: %v", err)
	}
	return nil
}

func levelTimes(tr *amr.Tree) []float64 {
	t := make([]float64, len(tr.Levels))
	for l, lv := range tr.Levels {
		t[l] = lv.T
	}
	return t
}

// advanceLevel advances level l (and, in individual-timestep mode,
// recursively advances l+1 by two half-steps per spec.md §4.8 step 2 /
// §3 invariant 6) by dt, running the full ghost-fill -> solve ->
// flux-store -> restrict -> flux-fix-up -> flag -> refine pipeline of
// spec.md §5's ordering guarantees.
func (e *Engine) advanceLevel(l int, dt float64) error {
	lv := e.Tree.Levels[l]
	readSlot := e.State.Slot[l]
	writeSlot := 1 - readSlot

	if err := e.solveLevel(l, readSlot, writeSlot, dt); err != nil {
		return err
	}
	lv.TPrev = lv.T
	lv.T += dt
	e.State.Slot[l] = writeSlot

	if l+1 < e.Tree.Lmax && e.levelHasPatches(l+1) {
		childDt := dt
		if e.Cfg.Timestep == config.TimestepIndividual {
			childDt = 0.5 * dt
		}
		if err := e.advanceLevel(l+1, childDt); err != nil {
			return err
		}
		if e.Cfg.Timestep == config.TimestepIndividual {
			if err := e.advanceLevel(l+1, childDt); err != nil {
				return err
			}
		}
		if err := e.restrictChildrenInto(l); err != nil {
			return err
		}
		e.fixUpFluxes(l)
	}

	return e.reflag(l)
}

func (e *Engine) levelHasPatches(l int) bool {
	return l < len(e.Tree.Levels) && e.Tree.Levels[l].Count() > 0
}

// solveLevel runs the configured scheme over every leaf patch of level l,
// writing into writeSlot and storing boundary fluxes on each patch's
// FluxPatch. Each patch is solved individually rather than as part of its
// 8-patch sibling group. e.Exchanger.Fill is called for each patch, and the
// ghost layers of its input tile are then assembled by buildPaddedCube from
// the neighbors' readSlot data, which this loop never writes, so per-patch
// granularity does not change what a patch sees.
func (e *Engine) solveLevel(l, readSlot, writeSlot int, dt float64) error {
	lv := e.Tree.Levels[l]
	opt := e.opts(l, dt)
	n := e.Tree.PatchSize
	for id, p := range lv.Patches {
		if !p.Active || p.Son != amr.NoSon {
			continue
		}
		if err := e.Exchanger.Fill(e.Tree, l, amr.PatchID(id), readSlot, NGhost); err != nil {
			return err
		}
		padded := e.buildPaddedCube(l, amr.PatchID(id), readSlot, NGhost)
		diag.DumpPreparedPatch(padded, n+2*NGhost, hydro.Dens)
		out, faces, err := e.scheme(padded, n, opt)
		if err != nil {
			return err
		}
		for v := 0; v < e.Tree.NVar; v++ {
			for k := 0; k < n; k++ {
				for j := 0; j < n; j++ {
					copy(p.Fluid[writeSlot][v][k][j], out[v][k][j])
				}
			}
		}
		e.storeFaces(p, faces)

		if e.Cfg.SelfGravity && e.Gravity != nil && p.HasPot {
			if err := e.Gravity.Solve(p.Fluid[writeSlot][hydro.Dens], lv.Dh, p.Pot[writeSlot]); err != nil {
				return err
			}
		}
	}
	return nil
}

// storeFaces copies a solver's boundary-flux output into the patch's
// FluxPatch, where one exists (invariant 4: only coarse/fine faces carry
// one), per spec.md §4.4.4.
func (e *Engine) storeFaces(p *amr.Patch, faces [6][][][]float64) {
	if p.Flux == nil {
		return
	}
	for f := 0; f < 6; f++ {
		if p.Flux.Faces[f] != nil {
			p.Flux.Faces[f] = faces[f]
		}
	}
}

// buildPaddedCube assembles the (n+2*ng)^3 input tile a scheme consumes:
// the patch's own interior in the center, and same-level sibling interiors
// copied into the 6 axis-aligned ghost slabs. Only these slabs are ever
// read by the line sweeps (internal/integrator.SweepAxis always indexes
// transverse positions within the interior range), so edge/corner ghost
// cells are left zeroed without affecting any solver result. A missing
// same-level neighbor (coarse/fine boundary or physical boundary) falls
// back to zero-gradient extrapolation from the nearest interior cell; this
// is the reference in-process stand-in for the external GhostExchanger
// collaborator (spec.md §6), not a prolongation operator.
func (e *Engine) buildPaddedCube(l int, id amr.PatchID, slot, ng int) [][][][]float64 {
	tr := e.Tree
	lv := tr.Levels[l]
	p := lv.Patches[id]
	n := tr.PatchSize
	full := n + 2*ng

	cube := make([][][][]float64, tr.NVar)
	for v := range cube {
		cube[v] = make([][][]float64, full)
		for k := range cube[v] {
			cube[v][k] = make([][]float64, full)
			for j := range cube[v][k] {
				cube[v][k][j] = make([]float64, full)
			}
		}
	}
	for v := 0; v < tr.NVar; v++ {
		for k := 0; k < n; k++ {
			for j := 0; j < n; j++ {
				copy(cube[v][k+ng][j+ng][ng:ng+n], p.Fluid[slot][v][k][j])
			}
		}
	}

	fill := func(face int, axis int, lo bool) {
		nbID := p.Sibling[amr.FaceIndex[face]]
		var src *amr.Patch
		if nbID >= 0 {
			src = lv.Patches[nbID]
		}
		own := 0
		if !lo {
			own = n - 1
		}
		for g := 0; g < ng; g++ {
			nbPos := n - 1 - g
			if !lo {
				nbPos = g
			}
			for v := 0; v < tr.NVar; v++ {
				for a := 0; a < n; a++ {
					for b := 0; b < n; b++ {
						var val float64
						if src != nil {
							// near-face interior cell of the neighbor, g layers in
							nk, nj, ni := axisCell(axis, lo, nbPos, a, b)
							val = src.Fluid[slot][v][nk][nj][ni]
						} else {
							// zero-gradient: replicate this patch's own boundary cell
							ek, ej, ei := axisCell(axis, lo, own, a, b)
							val = p.Fluid[slot][v][ek][ej][ei]
						}
						gk, gj, gi := axisGhost(axis, lo, g, ng, n, a, b)
						cube[v][gk][gj][gi] = val
					}
				}
			}
		}
	}
	fill(0, 0, true)
	fill(1, 0, false)
	fill(2, 1, true)
	fill(3, 1, false)
	fill(4, 2, true)
	fill(5, 2, false)
	return cube
}

// axisCell maps a position "pos" along axis and transverse indices (a,b)
// to (k,j,i) within an n-cube, for reading a neighbor's near-face cells.
func axisCell(axis int, lo bool, pos, a, b int) (k, j, i int) {
	switch axis {
	case 0:
		return a, b, pos
	case 1:
		return a, pos, b
	default:
		return pos, a, b
	}
}

// axisGhost maps a ghost-layer index g (0-based, counting outward from the
// interior) and transverse indices (a,b) to the padded cube's (k,j,i).
func axisGhost(axis int, lo bool, g, ng, n, a, b int) (k, j, i int) {
	var pos int
	if lo {
		pos = ng - 1 - g
	} else {
		pos = ng + n + g
	}
	switch axis {
	case 0:
		return a + ng, b + ng, pos
	case 1:
		return a + ng, pos, b + ng
	default:
		return pos, a + ng, b + ng
	}
}

// restrictChildrenInto overwrites every level-l patch with at least one
// child by the 1/8 average of its children, per spec.md §4.5.
func (e *Engine) restrictChildrenInto(l int) error {
	lv := e.Tree.Levels[l]
	for id, p := range lv.Patches {
		if !p.Active || p.Son == amr.NoSon {
			continue
		}
		if err := e.restrictOnePatch(l, amr.PatchID(id)); err != nil {
			return err
		}
	}
	return nil
}

// restrictOnePatch restricts a single father's children into it, per
// spec.md §4.5. Used both by the per-step restriction pass and by the
// coarsen transition of spec.md §4.7 ("data is first restricted into the
// parent to preserve invariant 5").
func (e *Engine) restrictOnePatch(l int, id amr.PatchID) error {
	p := e.Tree.Levels[l].Patches[id]
	slot := e.State.Slot[l]
	childSlot := e.State.Slot[l+1]
	children := e.Tree.Children(l, id)
	var kids [8]*amr.Patch
	for oct, cid := range children {
		kids[oct] = e.Tree.Levels[l+1].Patches[cid]
	}
	// restriction reads/writes the same slot on both sides: the child
	// just finished integrating into childSlot, and the father must be
	// overwritten in the slot the rest of this step reads from.
	if slot != childSlot {
		for oct := range kids {
			kids[oct] = copyPatchToSlot(kids[oct], childSlot, slot)
		}
	}
	return restrict.Restrict(p, kids, slot, e.Tree.NVar, e.Tree.PatchSize, e.Cfg.Model == config.ModelELBDM)
}

// copyPatchToSlot returns a shallow patch view whose requested "from" slot
// data is also readable as "to", used only when the parent and child
// sandglass indices disagree after an individual-timestep sub-step.
func copyPatchToSlot(p *amr.Patch, from, to int) *amr.Patch {
	if from == to {
		return p
	}
	cp := *p
	cp.Fluid[to] = p.Fluid[from]
	if p.HasPot {
		cp.Pot[to] = p.Pot[from]
	}
	return &cp
}

// fixUpFluxes replaces each level-l patch's coarse-face flux by the sum
// of its 4 covering child-face fluxes, per spec.md §4.4.4.
func (e *Engine) fixUpFluxes(l int) {
	lv := e.Tree.Levels[l]
	for id, p := range lv.Patches {
		if !p.Active || p.Son == amr.NoSon || p.Flux == nil {
			continue
		}
		children := e.Tree.Children(l, amr.PatchID(id))
		for f := 0; f < 6; f++ {
			if p.Flux.Faces[f] == nil {
				continue
			}
			var quad [4][][][]float64
			for oct := 0; oct < 4; oct++ {
				child := e.Tree.Levels[l+1].Patches[children[childQuadrant(f, oct)]]
				if child.Flux != nil && child.Flux.Faces[f] != nil {
					quad[oct] = child.Flux.Faces[f]
				}
			}
			if quad[0] == nil {
				continue
			}
			restrict.FixUp(p.Flux.Faces[f], quad, e.Tree.NVar, e.Tree.PatchSize)
		}
	}
}

// childQuadrant maps a coarse face and a 0..3 quadrant index to the octant
// id (matching amr.Tree.Refine's dx+dy*2+dz*4 convention) of the child
// patch covering that quadrant of the face. The quadrant index is
// row+col*2 as restrict.FixUp takes it, row and col being the face array's
// first and second transverse index (x faces [k][j], y faces [k][i],
// z faces [j][i]).
func childQuadrant(face, quad int) int {
	axis := face / 2
	lo := face%2 == 0
	d0, d1 := quad&1, (quad>>1)&1
	var dx, dy, dz int
	switch axis {
	case 0:
		dx = boolToInt(!lo)
		dz, dy = d0, d1
	case 1:
		dy = boolToInt(!lo)
		dz, dx = d0, d1
	default:
		dz = boolToInt(!lo)
		dy, dx = d0, d1
	}
	return dx + dy*2 + dz*4
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// reflag evaluates the refinement criteria over every active patch of
// level l (refined ones included, so an unflagged one is coarsened), buffers
// the flags outward, enforces proper nesting, then refines/coarsens
// patches accordingly, per spec.md §4.6/§4.7.
func (e *Engine) reflag(l int) error {
	if l > e.Cfg.MaxLevel {
		return nil
	}
	lv := e.Tree.Levels[l]
	slot := e.State.Slot[l]
	crit := e.Criteria[l]
	want := make(map[amr.PatchID]bool)
	for id, p := range lv.Patches {
		if !p.Active {
			continue
		}
		flag := refine.FlagPatch(p.Fluid[slot], potOf(p, slot), e.Tree.PatchSize, int(e.Cfg.Model), crit)
		flag = refine.BufferFlags(flag, e.Tree.PatchSize, e.Cfg.FlagBufferSize)
		any, _ := refine.AnyFlagged(flag, e.Tree.PatchSize)
		if any && l < e.Cfg.MaxLevel {
			want[amr.PatchID(id)] = true
		}
	}
	refine.EnforceProperNesting(e.Tree, l, want)

	for id, p := range lv.Patches {
		if !p.Active {
			continue
		}
		pid := amr.PatchID(id)
		wantRefined := want[pid]
		isRefined := p.Son != amr.NoSon
		switch {
		case wantRefined && !isRefined:
			if _, err := e.Tree.Refine(l, pid, e.fillChild); err != nil {
				return err
			}
		case !wantRefined && isRefined:
			if err := e.restrictOnePatch(l, pid); err != nil { // preserves invariant 5 before Coarsen frees the children
				return err
			}
			if err := e.Tree.Coarsen(l, pid); err != nil {
				return err
			}
		}
	}
	return nil
}

func potOf(p *amr.Patch, slot int) [][][]float64 {
	if p.HasPot {
		return p.Pot[slot]
	}
	return nil
}

// fillChild populates a newly-created child's both sandglasses by
// injecting (nearest-neighbor copy) its father's co-located cell, per
// spec.md §4.7's nonexistent->leaf transition. A production engine would
// offer central/minmod/vanLeer/CQUAD/CQUAR interpolation (Configuration.
// InterpScheme names them); injection is the zeroth-order member of that
// family and keeps refinement exactly conservative without a limiter
// dependency in this hot path.
func (e *Engine) fillChild(father *amr.Patch, octant int, child *amr.Patch) {
	n := e.Tree.PatchSize
	half := n / 2
	dx, dy, dz := octant&1, (octant>>1)&1, (octant>>2)&1
	for slot := 0; slot < 2; slot++ {
		for v := 0; v < e.Tree.NVar; v++ {
			for k := 0; k < n; k++ {
				for j := 0; j < n; j++ {
					for i := 0; i < n; i++ {
						fk, fj, fi := dz*half+k/2, dy*half+j/2, dx*half+i/2
						child.Fluid[slot][v][k][j][i] = father.Fluid[slot][v][fk][fj][fi]
					}
				}
			}
		}
		if child.HasPot && father.HasPot {
			for k := 0; k < n; k++ {
				for j := 0; j < n; j++ {
					for i := 0; i < n; i++ {
						fk, fj, fi := dz*half+k/2, dy*half+j/2, dx*half+i/2
						child.Pot[slot][k][j][i] = father.Pot[slot][fk][fj][fi]
					}
				}
			}
		}
	}
}

// runDiagnostics performs the periodic conservation/finiteness/patch-
// count/memory checks of spec.md §4.8 step 3.
func (e *Engine) runDiagnostics() {
	cur := diag.ConservationReport(e.Tree, e.State.Slot[0])
	ok, worst := diag.CheckConservation(e.prevConservation, cur, 1e-10)
	if !ok {
		io.Pf("WARNING: conservation drifted by relative %v at step %d\n", worst, e.State.Step)
	}
	e.prevConservation = cur

	if ok2, level, pid, cell := diag.FinitenessReport(e.Tree, e.State.Slot[0]); !ok2 {
		chk.Panic("non-finite value at level=%d patch=%d cell=%v (step %d)", level, pid, cell, e.State.Step)
	}
	diag.PatchMapReport(e.Tree)
	diag.MemoryReport(e.Tree)
}

// loadImbalance computes a coarse weighted load-imbalance factor as the
// spread of per-level patch counts relative to their mean, standing in
// for the real work-weighted metric that needs the load-balance index
// computation named out of scope in spec.md §1.
func (e *Engine) loadImbalance() float64 {
	total := 0
	nlevels := 0
	for _, lv := range e.Tree.Levels {
		if lv.Count() > 0 {
			total += lv.Count()
			nlevels++
		}
	}
	if nlevels == 0 {
		return 0
	}
	mean := float64(total) / float64(nlevels)
	maxDev := 0.0
	for _, lv := range e.Tree.Levels {
		dev := math.Abs(float64(lv.Count()) - mean)
		if dev > maxDev {
			maxDev = dev
		}
	}
	if mean == 0 {
		return 0
	}
	return maxDev / mean
}
