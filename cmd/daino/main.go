// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command daino runs an adaptive-mesh-refinement hydrodynamics simulation
// from a JSON configuration file, playing the role the gofem command plays
// for a finite-element run: parse input, wire the collaborators, run to
// completion, report errors the same verbose way.
package main

import (
	"flag"

	"github.com/cpmech/daino/internal/accel"
	"github.com/cpmech/daino/internal/amr"
	"github.com/cpmech/daino/internal/config"
	"github.com/cpmech/daino/internal/diag"
	"github.com/cpmech/daino/internal/driver"
	"github.com/cpmech/daino/internal/exchange"
	"github.com/cpmech/daino/internal/gravity"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
)

func main() {
	defer func() {
		if err := recover(); err != nil {
			if mpi.Rank() == 0 {
				chk.Verbose = true
				for i := 8; i > 3; i-- {
					chk.CallerInfo(i)
				}
				io.PfRed("ERROR: %v\n", err)
			}
		}
		mpi.Stop(false)
	}()
	mpi.Start(false)

	if mpi.Rank() == 0 {
		io.PfWhite("\nDaino -- Adaptive Mesh Refinement Hydrodynamics\n\n")
	}

	flag.Parse()
	var fnamepath string
	if len(flag.Args()) > 0 {
		fnamepath = flag.Arg(0)
	} else {
		chk.Panic("please provide a configuration filename. Ex.: sod.amr")
	}
	if io.FnExt(fnamepath) == "" {
		fnamepath += ".amr"
	}

	cfg, err := config.Read(fnamepath)
	if err != nil {
		chk.Panic("%v", err)
	}
	if mpi.Rank() == 0 {
		cfg.Describe()
		if cfg.DirOut != "" {
			if err := diag.TakeNote(cfg.DirOut+"/takenote.txt", cfg.Summary()); err != nil {
				io.Pfred("cannot write provenance note: %v\n", err)
			}
		}
	}

	tr := amr.NewTree(cfg.MaxLevel+1, cfg.Model.NVar(), config.PatchSize, cfg.SelfGravity, cfg.Dh)
	if err := tr.InitRoot(cfg.NX0, cfg.Periodic); err != nil {
		chk.Panic("%v", err)
	}

	var grav gravity.PoissonSolver
	if cfg.SelfGravity {
		grav = gravity.NewTripletPoissonSolver(1.0)
	}

	eng, err := driver.NewEngine(cfg, tr, exchange.NewLocalExchanger(), grav, accel.CPUAccelerator{})
	if err != nil {
		chk.Panic("%v", err)
	}

	if err := eng.Run(); err != nil {
		chk.Panic("%v", err)
	}

	if mpi.Rank() == 0 {
		io.Pf("\nrun complete: step=%d t=%g\n", eng.State.Step, tr.Levels[0].T)
	}
}
