// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package restartio

import (
	"bytes"
	"testing"

	"github.com/cpmech/daino/internal/amr"
	"github.com/cpmech/gosl/chk"
)

func TestWriteReadHeaderRoundTrip(tst *testing.T) {
	chk.PrintTitle("WriteReadHeaderRoundTrip")
	h := &Header{
		FormatVersion: 1200,
		HeaderSize:    1024,
		Sizes:         DefaultTypeSizes,
		Layout:        LayoutVKJI,
		Model:         0,
		GravityOn:     true,
		NLv:           3,
		BoxSize:       1.0,
	}
	info := &SimInfo{
		DumpID:          7,
		T:               []float64{0.1, 0.2, 0.3},
		Step:            42,
		NPatchTotal:     []int32{1, 8, 64},
		NDataPatchTotal: []int32{1, 8, 64},
		AdvanceCounter:  []uint32{1, 2, 3},
		AveDensity:      1.0,
	}
	buf := new(bytes.Buffer)
	if err := WriteHeader(buf, h, info); err != nil {
		tst.Fatalf("WriteHeader failed: %v", err)
	}
	r := bytes.NewReader(buf.Bytes())
	h2, info2, err := ReadHeader(r)
	if err != nil {
		tst.Fatalf("ReadHeader failed: %v", err)
	}
	chk.Scalar(tst, "FormatVersion", 0, float64(h2.FormatVersion), float64(h.FormatVersion))
	chk.Scalar(tst, "HeaderSize", 0, float64(h2.HeaderSize), float64(h.HeaderSize))
	chk.Scalar(tst, "NLv", 0, float64(h2.NLv), float64(h.NLv))
	chk.Scalar(tst, "BoxSize", 1e-15, h2.BoxSize, h.BoxSize)
	if h2.GravityOn != h.GravityOn {
		tst.Errorf("GravityOn mismatch: got %v want %v", h2.GravityOn, h.GravityOn)
	}
	chk.Scalar(tst, "DumpID", 0, float64(info2.DumpID), float64(info.DumpID))
	chk.Scalar(tst, "Step", 0, float64(info2.Step), float64(info.Step))
	for l := 0; l < 3; l++ {
		chk.Scalar(tst, "T", 1e-15, info2.T[l], info.T[l])
	}
}

func TestReadHeaderRejectsOldFormatVersion(tst *testing.T) {
	chk.PrintTitle("ReadHeaderRejectsOldFormatVersion")
	h := &Header{FormatVersion: 1000, HeaderSize: 1024, Sizes: DefaultTypeSizes, NLv: 1}
	info := &SimInfo{T: []float64{0}, NPatchTotal: []int32{1}, NDataPatchTotal: []int32{1}, AdvanceCounter: []uint32{1}}
	buf := new(bytes.Buffer)
	WriteHeader(buf, h, info)
	_, _, err := ReadHeader(bytes.NewReader(buf.Bytes()))
	if err == nil {
		tst.Fatalf("expected error for format_version below %d", MinFormatVersion)
	}
}

func TestWritePatchesLeafOnly(tst *testing.T) {
	chk.PrintTitle("WritePatchesLeafOnly")
	tr := amr.NewTree(1, 5, 4, false, []float64{0.1})
	if err := tr.InitRoot(4, true); err != nil {
		tst.Fatalf("InitRoot failed: %v", err)
	}
	buf := new(bytes.Buffer)
	if err := WritePatches(buf, tr, []int{0}, LayoutVKJI); err != nil {
		tst.Fatalf("WritePatches failed: %v", err)
	}
	if buf.Len() == 0 {
		tst.Fatalf("expected non-empty patch data")
	}
}

func TestWriteReadPatchesRoundTrip(tst *testing.T) {
	chk.PrintTitle("WriteReadPatchesRoundTrip")
	tr := amr.NewTree(1, 5, 4, false, []float64{0.1})
	if err := tr.InitRoot(4, true); err != nil {
		tst.Fatalf("InitRoot failed: %v", err)
	}
	for pid, p := range tr.Levels[0].Patches {
		for v := 0; v < tr.NVar; v++ {
			for k := 0; k < tr.PatchSize; k++ {
				for j := 0; j < tr.PatchSize; j++ {
					for i := 0; i < tr.PatchSize; i++ {
						p.Fluid[0][v][k][j][i] = float64(pid*1000 + v*100 + k*16 + j*4 + i)
					}
				}
			}
		}
	}
	buf := new(bytes.Buffer)
	if err := WritePatches(buf, tr, []int{0}, LayoutVKJI); err != nil {
		tst.Fatalf("WritePatches failed: %v", err)
	}
	info := &SimInfo{NPatchTotal: []int32{int32(tr.Levels[0].Count())}}
	recs, err := ReadPatches(buf, info, tr.NVar, tr.PatchSize, LayoutVKJI)
	if err != nil {
		tst.Fatalf("ReadPatches failed: %v", err)
	}
	if len(recs) != tr.Levels[0].Count() {
		tst.Fatalf("expected %d patch records, got %d", tr.Levels[0].Count(), len(recs))
	}
	for pid, p := range tr.Levels[0].Patches {
		rec := recs[pid]
		if rec.Corner != [3]int32{int32(p.Corner[0]), int32(p.Corner[1]), int32(p.Corner[2])} {
			tst.Fatalf("patch %d corner mismatch: got %v want %v", pid, rec.Corner, p.Corner)
		}
		for v := 0; v < tr.NVar; v++ {
			for k := 0; k < tr.PatchSize; k++ {
				for j := 0; j < tr.PatchSize; j++ {
					for i := 0; i < tr.PatchSize; i++ {
						want := p.Fluid[0][v][k][j][i]
						got := rec.Fluid[v][k][j][i]
						if got != want {
							tst.Fatalf("patch %d var %d cell (%d,%d,%d): got %g want %g", pid, v, k, j, i, got, want)
						}
					}
				}
			}
		}
	}
}
