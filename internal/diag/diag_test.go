// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diag

import (
	"math"
	"os"
	"testing"

	"github.com/cpmech/daino/internal/amr"
	"github.com/cpmech/gosl/chk"
)

func newTestTree(tst *testing.T) *amr.Tree {
	tr := amr.NewTree(1, 5, 4, false, []float64{0.1})
	if err := tr.InitRoot(4, true); err != nil {
		tst.Fatalf("InitRoot: %v", err)
	}
	for _, p := range tr.Levels[0].Patches {
		for v := 0; v < tr.NVar; v++ {
			for k := 0; k < tr.PatchSize; k++ {
				for j := 0; j < tr.PatchSize; j++ {
					for i := 0; i < tr.PatchSize; i++ {
						p.Fluid[0][v][k][j][i] = 1.0
					}
				}
			}
		}
	}
	return tr
}

func TestConservationReportAndCheck(tst *testing.T) {
	chk.PrintTitle("ConservationReportAndCheck")
	tr := newTestTree(tst)
	sums := ConservationReport(tr, 0)
	if len(sums) != tr.NVar {
		tst.Fatalf("expected %d sums, got %d", tr.NVar, len(sums))
	}
	for v, s := range sums {
		if s <= 0 {
			tst.Errorf("expected positive sum for var %d, got %g", v, s)
		}
	}
	ok, worst := CheckConservation(sums, sums, 1e-10)
	if !ok || worst != 0 {
		tst.Fatalf("expected exact match against itself, got ok=%v worst=%g", ok, worst)
	}
	drifted := append([]float64(nil), sums...)
	drifted[0] *= 1.1
	ok, worst = CheckConservation(sums, drifted, 1e-10)
	if ok {
		tst.Fatalf("expected drift to be detected, worst=%g", worst)
	}
}

func TestFinitenessReportDetectsNaN(tst *testing.T) {
	chk.PrintTitle("FinitenessReportDetectsNaN")
	tr := newTestTree(tst)
	ok, _, _, _ := FinitenessReport(tr, 0)
	if !ok {
		tst.Fatalf("expected finite data to report ok")
	}
	tr.Levels[0].Patches[0].Fluid[0][0][0][0][0] = math.NaN()
	ok, level, patchID, cell := FinitenessReport(tr, 0)
	if ok {
		tst.Fatalf("expected NaN to be detected")
	}
	if level != 0 || patchID != 0 || cell != [3]int{0, 0, 0} {
		tst.Fatalf("unexpected fault coordinates: level=%d patch=%d cell=%v", level, patchID, cell)
	}
}

func TestCheckSentinel(tst *testing.T) {
	chk.PrintTitle("CheckSentinel")
	if CheckSentinel("") {
		tst.Fatalf("expected empty path to report absent")
	}
	path := os.TempDir() + "/daino_sentinel_test"
	os.Remove(path)
	if CheckSentinel(path) {
		tst.Fatalf("expected missing file to report absent")
	}
	f, err := os.Create(path)
	if err != nil {
		tst.Fatalf("cannot create sentinel: %v", err)
	}
	f.Close()
	defer os.Remove(path)
	if !CheckSentinel(path) {
		tst.Fatalf("expected present file to report true")
	}
}

func TestTakeNoteWritesFile(tst *testing.T) {
	chk.PrintTitle("TakeNoteWritesFile")
	path := os.TempDir() + "/daino_takenote_test.txt"
	defer os.Remove(path)
	if err := TakeNote(path, "hello\n"); err != nil {
		tst.Fatalf("TakeNote failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		tst.Fatalf("cannot read note file: %v", err)
	}
	if string(data) != "hello\n" {
		tst.Fatalf("unexpected note contents: %q", string(data))
	}
}
