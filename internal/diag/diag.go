// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diag implements the driver's periodic diagnostics of spec.md
// §4.8 step 3 (conservation check, finiteness check, patch-count report)
// plus the run-configuration note-taking and patch-map/prepared-patch
// dumps supplemented from original_source/'s Aux_TakeNote.cpp,
// Output_PatchMap.cpp and Output_PreparedPatch_Fluid.cpp (see
// SPEC_FULL.md §9). All output goes through gosl/io, matching
// Domain.ShowMsg's gated-print convention in fem/domain.go.
package diag

import (
	"math"
	"os"

	"github.com/cpmech/daino/internal/amr"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
)

// Verbose gates every print in this package, mirroring fem.Domain.ShowMsg.
var Verbose = true

// TakeNote writes a human-readable run-configuration summary to path
// (truncating any existing file), adapted from the original's
// Aux_TakeNote.cpp provenance dump: compile-time options, symbolic
// constants and parameter values in one place so a run's exact setup can
// be reconstructed later. summary is typically config.Configuration.Summary().
func TakeNote(path, summary string) error {
	io.WriteFileSD("", path, summary)
	return nil
}

// ConservationReport sums each conserved variable over every owned cell of
// every leaf patch across the whole tree, for the conservation check of
// spec.md §4.8 step 3 / §8 invariant 3. Under a distributed run each rank
// owns a disjoint subset of patches, so the per-rank partial sums are
// joined with an all-reduce, the same join fem's residual assembly does
// for boundary-shared contributions (fem/s_implicit.go's
// "mpi.AllReduceSum(d.Fb, d.Wb)").
func ConservationReport(tr *amr.Tree, slot int) []float64 {
	sums := make([]float64, tr.NVar)
	for _, lv := range tr.Levels {
		for _, p := range lv.Patches {
			if !p.Active {
				continue
			}
			if p.Son != amr.NoSon {
				continue // only leaves hold authoritative data after restriction
			}
			for v := 0; v < tr.NVar; v++ {
				for k := 0; k < tr.PatchSize; k++ {
					for j := 0; j < tr.PatchSize; j++ {
						for i := 0; i < tr.PatchSize; i++ {
							sums[v] += p.Fluid[slot][v][k][j][i]
						}
					}
				}
			}
		}
	}
	if mpi.IsOn() {
		work := make([]float64, len(sums))
		mpi.AllReduceSum(sums, work)
	}
	return sums
}

// CheckConservation compares a fresh ConservationReport against a
// previous one within the relative tolerance named in spec.md §8
// invariant 3 (1e-10 double / 1e-5 single); this engine is double-only,
// so tol should be 1e-10 unless the caller intentionally relaxes it.
func CheckConservation(prev, cur []float64, tol float64) (ok bool, worst float64) {
	ok = true
	for v := range cur {
		denom := math.Abs(prev[v])
		if denom < 1e-300 {
			denom = 1
		}
		rel := math.Abs(cur[v]-prev[v]) / denom
		if rel > worst {
			worst = rel
		}
		if rel > tol {
			ok = false
		}
	}
	return
}

// FinitenessReport scans every leaf patch's current sandglass for NaN/Inf
// values, returning the coordinates of the first offending cell found (or
// ok=true if none).
func FinitenessReport(tr *amr.Tree, slot int) (ok bool, level, patchID int, cell [3]int) {
	ok = true
	for l, lv := range tr.Levels {
		for id, p := range lv.Patches {
			if !p.Active || p.Son != amr.NoSon {
				continue
			}
			for v := 0; v < tr.NVar; v++ {
				for k := 0; k < tr.PatchSize; k++ {
					for j := 0; j < tr.PatchSize; j++ {
						for i := 0; i < tr.PatchSize; i++ {
							x := p.Fluid[slot][v][k][j][i]
							if math.IsNaN(x) || math.IsInf(x, 0) {
								return false, l, id, [3]int{k, j, i}
							}
						}
					}
				}
			}
		}
	}
	return
}

// PatchMapReport prints the per-level active-patch count, adapted from
// Output_PatchMap.cpp's patch-count-per-level table (spec.md §4.8 step 3
// names only "patch-count report"; the original supplies this concrete
// shape).
func PatchMapReport(tr *amr.Tree) {
	if !Verbose {
		return
	}
	io.Pf("patch map:\n")
	total := 0
	for l, lv := range tr.Levels {
		n := lv.Count()
		total += n
		io.Pf("  level %2d : %6d patches\n", l, n)
	}
	io.Pf("  total      : %6d patches\n", total)
}

// MemoryReport prints a coarse estimate of fluid-data memory in use,
// completing spec.md §4.8 step 3's "memory check" (the distilled spec
// names the check but not its output shape).
func MemoryReport(tr *amr.Tree) {
	if !Verbose {
		return
	}
	n3 := tr.PatchSize * tr.PatchSize * tr.PatchSize
	bytesPerPatch := 2 * tr.NVar * n3 * 8 // two sandglasses, float64
	total := 0
	for _, lv := range tr.Levels {
		total += lv.Count()
	}
	io.Pf("memory: %d patches x %d bytes = %.2f MiB (fluid data only)\n",
		total, bytesPerPatch, float64(total*bytesPerPatch)/(1<<20))
}

// DumpPreparedPatch prints a ghost-padded patch-group's conserved density
// component, adapted from Output_PreparedPatch_Fluid.cpp, for debugging
// reconstruction input (the distilled spec.md gives no concrete debug-dump
// shape for this).
func DumpPreparedPatch(fluid [][][][]float64, n, densIdx int) {
	if !Verbose {
		return
	}
	mid := n / 2
	io.Pf("prepared-patch density slice (k=%d):\n", mid)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			io.Pf("%8.4f ", fluid[densIdx][mid][j][i])
		}
		io.Pf("\n")
	}
}

// CheckSentinel reports whether the sentinel file named by path exists,
// implementing the hook side of spec.md §4.8 step 5 / §6's "manual dump
// trigger" (the file-watching trigger mechanism itself is out of scope;
// this is the query the driver polls once per outer iteration per spec.md
// §5's cancellation policy).
func CheckSentinel(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
