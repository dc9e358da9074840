// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// +build ignore

// Command daino-plot renders a 1D density slice (along the row j=k=n/2
// of every leaf patch at level 0) from a restart file, adapted from
// out/plotting.go's Plot/Draw pair for the Sod-shock-tube and similar
// 1D-profile scenarios named in spec.md §8.
package main

import (
	"io"

	"github.com/cpmech/daino/internal/restartio"
	gio "github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"
)

func main() {
	defer func() {
		if err := recover(); err != nil {
			gio.PfRed("ERROR: %v\n", err)
		}
	}()

	filename, fnkey := gio.ArgToFilename(0, "restart", ".bin", true)

	f, err := restartio.Open(filename)
	if err != nil {
		gio.PfRed("%v\n", err)
		return
	}
	defer f.Close()

	h, info, err := restartio.ReadHeader(f)
	if err != nil {
		gio.PfRed("%v\n", err)
		return
	}

	nvar := 5 // hydro model; ELBDM dumps are not 1D-profile plottable this way
	if h.Model == 1 {
		nvar = 3
	}
	patchSize := 8 // PatchSize is fixed across the engine (config.PatchSize)

	if _, err := f.Seek(restartio.PatchDataOffset(h), io.SeekStart); err != nil {
		gio.PfRed("cannot seek to patch data: %v\n", err)
		return
	}
	recs, err := restartio.ReadPatches(f, info, nvar, patchSize, h.Layout)
	if err != nil {
		gio.PfRed("%v\n", err)
		return
	}

	dh := h.BoxSize / float64(h.NX0)
	scale := float64(int64(1) << uint(h.NLv-1)) // finest-level cells per level-0 cell
	var x, dens []float64
	mid := patchSize / 2
	for _, rec := range recs {
		if rec.Level != 0 || rec.Son != -1 {
			continue
		}
		for i := 0; i < patchSize; i++ {
			xc := (float64(rec.Corner[0])/scale+float64(i)+0.5)*dh - h.BoxSize/2
			x = append(x, xc)
			dens = append(dens, rec.Fluid[0][mid][mid][i])
		}
	}

	plt.Reset(false, nil)
	plt.Plot(x, dens, &plt.A{C: "b", M: ".", Ls: "none", L: "density"})
	plt.Gll("$x$", "$\\rho$", nil)
	plt.Save(".", fnkey+"_density")

	gio.Pf("saved %s_density.png (%d cells)\n", fnkey, len(x))
}
