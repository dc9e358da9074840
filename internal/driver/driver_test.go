// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"os"
	"testing"

	"github.com/cpmech/daino/internal/accel"
	"github.com/cpmech/daino/internal/amr"
	"github.com/cpmech/daino/internal/config"
	"github.com/cpmech/daino/internal/exchange"
	"github.com/cpmech/gosl/chk"
)

func newUniformEngine(tst *testing.T) *Engine {
	cfg, err := config.New(&config.Data{
		Model:       "hydro",
		Gamma:       1.4,
		BoxSize:     1.0,
		NX0:         8,
		MaxLevel:    0,
		Scheme:      "mhm",
		Riemann:     "hllc",
		Limiter:     "vanleer",
		MinModCoeff: 1.0,
		Timestep:    "shared",
		CFL:         0.5,
		StepEnd:     3,
	})
	if err != nil {
		tst.Fatalf("config.New failed: %v", err)
	}
	tr := amr.NewTree(1, 5, 8, false, cfg.Dh)
	if err := tr.InitRoot(8, true); err != nil {
		tst.Fatalf("InitRoot: %v", err)
	}
	for _, p := range tr.Levels[0].Patches {
		for k := 0; k < tr.PatchSize; k++ {
			for j := 0; j < tr.PatchSize; j++ {
				for i := 0; i < tr.PatchSize; i++ {
					p.Fluid[0][0][k][j][i] = 1.0
					p.Fluid[0][4][k][j][i] = 2.5
				}
			}
		}
	}
	e, err := NewEngine(cfg, tr, exchange.NewLocalExchanger(), nil, accel.CPUAccelerator{})
	if err != nil {
		tst.Fatalf("NewEngine failed: %v", err)
	}
	return e
}

func TestComputeDtPositive(tst *testing.T) {
	chk.PrintTitle("ComputeDtPositive")
	e := newUniformEngine(tst)
	dt := e.ComputeDt()
	if dt <= 0 {
		tst.Fatalf("expected positive dt, got %g", dt)
	}
}

func TestRunAdvancesStepsAndTime(tst *testing.T) {
	chk.PrintTitle("RunAdvancesStepsAndTime")
	e := newUniformEngine(tst)
	if err := e.Run(); err != nil {
		tst.Fatalf("Run failed: %v", err)
	}
	if e.State.Step != 3 {
		tst.Fatalf("expected 3 steps, got %d", e.State.Step)
	}
	if e.Tree.Levels[0].T <= 0 {
		tst.Fatalf("expected level time to have advanced, got %g", e.Tree.Levels[0].T)
	}
}

func TestDumpWritesRestartFile(tst *testing.T) {
	chk.PrintTitle("DumpWritesRestartFile")
	e := newUniformEngine(tst)
	dir := os.TempDir() + "/daino_dump_test"
	os.MkdirAll(dir, 0755)
	defer os.RemoveAll(dir)
	e.Cfg.DirOut = dir
	if err := e.Dump(); err != nil {
		tst.Fatalf("Dump failed: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 {
		tst.Fatalf("expected exactly one restart file, got %v (err=%v)", entries, err)
	}
}
