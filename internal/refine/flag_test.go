// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refine

import (
	"os"
	"testing"

	"github.com/cpmech/daino/internal/hydro"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

func uniformFluid(n int, rho, pres float64) [][][][]float64 {
	fluid := utl.Deep4alloc(hydro.NVar, n, n, n)
	w := hydro.Pri{rho, 0, 0, 0, pres}
	u := hydro.PriToCon(w, 1.4)
	for v := 0; v < hydro.NVar; v++ {
		for k := 0; k < n; k++ {
			for j := 0; j < n; j++ {
				for i := 0; i < n; i++ {
					fluid[v][k][j][i] = u[v]
				}
			}
		}
	}
	return fluid
}

func TestFlagPatchUniformStateNoFlags(tst *testing.T) {
	chk.PrintTitle("FlagPatchUniformStateNoFlags")
	n := 8
	fluid := uniformFluid(n, 1.0, 1.0)
	c := Criteria{
		EnableDens:     true,
		DensThreshold:  2.0,
		EnableDensGrad: true,
		DensGradThresh: 0.1,
		EnablePresGrad: true,
		PresGradThresh: 0.1,
		Gamma:          1.4,
	}
	flag := FlagPatch(fluid, nil, n, 0, c)
	any, _ := AnyFlagged(flag, n)
	if any {
		tst.Errorf("uniform state should not trigger any flagging criterion")
	}
}

func TestFlagPatchDensityThreshold(tst *testing.T) {
	chk.PrintTitle("FlagPatchDensityThreshold")
	n := 8
	fluid := uniformFluid(n, 5.0, 1.0)
	c := Criteria{EnableDens: true, DensThreshold: 2.0, Gamma: 1.4}
	flag := FlagPatch(fluid, nil, n, 0, c)
	any, _ := AnyFlagged(flag, n)
	if !any {
		tst.Errorf("density above threshold should flag every cell")
	}
	for k := 0; k < n; k++ {
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				if !flag[k][j][i] {
					tst.Errorf("cell (%d,%d,%d) should be flagged", k, j, i)
				}
			}
		}
	}
}

func TestBufferFlagsDilates(tst *testing.T) {
	chk.PrintTitle("BufferFlagsDilates")
	n := 8
	flag := make([][][]bool, n)
	for k := range flag {
		flag[k] = make([][]bool, n)
		for j := range flag[k] {
			flag[k][j] = make([]bool, n)
		}
	}
	flag[4][4][4] = true
	buffered := BufferFlags(flag, n, 2)
	if !buffered[4][4][2] || !buffered[4][4][6] {
		tst.Errorf("expected dilation by 2 cells along each axis from the seed cell")
	}
	if buffered[4][4][1] {
		tst.Errorf("dilation should not reach 3 cells away with bufferSize=2")
	}
}

func TestLoadCriteriaTable(tst *testing.T) {
	chk.PrintTitle("LoadCriteriaTable")
	content := "# dens densgrad presgrad lohner\n10.0 0.3 0.3 0.6\n20.0 0.3 0.3 0.6\n"
	f, err := os.CreateTemp("", "criteria-*.txt")
	if err != nil {
		tst.Fatalf("CreateTemp: %v", err)
	}
	defer os.Remove(f.Name())
	if _, err := f.WriteString(content); err != nil {
		tst.Fatalf("WriteString: %v", err)
	}
	f.Close()

	table, err := LoadCriteriaTable(f.Name(), 3)
	if err != nil {
		tst.Fatalf("LoadCriteriaTable: %v", err)
	}
	chk.Scalar(tst, "DensThreshold[0]", 1e-12, table.DensThreshold[0], 10.0)
	chk.Scalar(tst, "DensThreshold[1]", 1e-12, table.DensThreshold[1], 20.0)
	chk.Scalar(tst, "LohnerThresh[0]", 1e-12, table.LohnerThresh[0], 0.6)
}
