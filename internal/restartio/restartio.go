// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package restartio reads and writes the binary restart-file format of
// spec.md §6. There is no third-party ecosystem library in the teacher's
// stack for fixed-layout binary headers (gosl's I/O helpers are
// text/VTK/HDF5-oriented, not this bespoke header), so this package is
// one of the few built directly on encoding/binary.
package restartio

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"os"

	"github.com/cpmech/daino/internal/amr"
	"github.com/cpmech/gosl/chk"
)

// MinFormatVersion is the oldest format this reader accepts: files below
// 1200 omit the per-type size stamps, so their sizes cannot be verified
// against the runtime's; such files are refused rather than trusted.
const MinFormatVersion = 1200

const (
	offFormatVersion = 0
	offHeaderSize    = 8
	offCheckCode     = 16
	offSizes         = 24
	headerPad        = 256
	offOptionsBlock  = 256
	offConstsBlock   = 512
	offParamsBlock   = 768
	simInfoPad       = 1024
)

// CheckCode is written at both the header start and header_size offset as
// a corruption sentinel.
const CheckCode int64 = 0x44414e4f31323030 // "DANO1200" as an int64

// DataLayout selects the in-patch component ordering: newer dumps store
// variable-major (v,k,j,i); older ones may store k,j,i,v.
type DataLayout int

// supported layouts
const (
	LayoutVKJI DataLayout = iota
	LayoutKJIV
)

// TypeSizes records the byte width of each scalar type the writer used,
// so a reader on a different platform/build can detect a mismatch.
type TypeSizes struct {
	Bool, Int, Long, Real, Double int32
}

// DefaultTypeSizes matches a standard 64-bit Go build: bool/int32 as the
// "int" width, int64 as "long", float64 for both "real" and "double"
// (this engine does not offer a single-precision build).
var DefaultTypeSizes = TypeSizes{Bool: 1, Int: 4, Long: 8, Real: 8, Double: 8}

// Header is the fixed-size prologue of a restart file.
type Header struct {
	FormatVersion int64
	HeaderSize    int64
	Sizes         TypeSizes
	Layout        DataLayout
	Model         int32
	GravityOn     bool
	NLv           int32
	BoxSize       float64
	NX0           int32
}

// SimInfo is the per-dump scalar state following the header.
type SimInfo struct {
	DumpID          int32
	T               []float64 // length NLv
	Step            int64
	NPatchTotal     []int32 // length NLv
	NDataPatchTotal []int32 // length NLv
	AdvanceCounter  []uint32 // length NLv
	AveDensity      float64
}

// PatchRecord is one on-disk patch entry in tree order.
type PatchRecord struct {
	Level  int
	Corner [3]int32
	Son    int32 // -1 => leaf, fluid/pot data follows
	Fluid  [][][][]float64
	Pot    [][][]float64
}

func writePad(buf *bytes.Buffer, upto int) {
	for buf.Len() < upto {
		buf.WriteByte(0)
	}
}

// WriteHeader serializes Header + SimInfo into the fixed-offset layout of
// spec.md §6, writing the full header block: the second check-code at
// header_size, then simulation-info, zero-padded up to header_size+8+1024,
// where per-patch data begins (PatchDataOffset). That offset is not
// rounded to a multiple of 1024 bytes.
func WriteHeader(w io.Writer, h *Header, info *SimInfo) error {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, h.FormatVersion)
	binary.Write(buf, binary.LittleEndian, h.HeaderSize)
	binary.Write(buf, binary.LittleEndian, CheckCode)
	binary.Write(buf, binary.LittleEndian, h.Sizes.Bool)
	binary.Write(buf, binary.LittleEndian, h.Sizes.Int)
	binary.Write(buf, binary.LittleEndian, h.Sizes.Long)
	binary.Write(buf, binary.LittleEndian, h.Sizes.Real)
	binary.Write(buf, binary.LittleEndian, h.Sizes.Double)
	writePad(buf, headerPad)

	writePad(buf, offOptionsBlock)
	binary.Write(buf, binary.LittleEndian, int32(h.Layout))
	binary.Write(buf, binary.LittleEndian, h.Model)
	binary.Write(buf, binary.LittleEndian, h.GravityOn)

	writePad(buf, offConstsBlock)
	binary.Write(buf, binary.LittleEndian, h.NLv)
	binary.Write(buf, binary.LittleEndian, h.BoxSize)
	binary.Write(buf, binary.LittleEndian, h.NX0)

	writePad(buf, offParamsBlock)
	writePad(buf, int(h.HeaderSize))

	binary.Write(buf, binary.LittleEndian, CheckCode)
	binary.Write(buf, binary.LittleEndian, info.DumpID)
	binary.Write(buf, binary.LittleEndian, info.T)
	binary.Write(buf, binary.LittleEndian, info.Step)
	binary.Write(buf, binary.LittleEndian, info.NPatchTotal)
	binary.Write(buf, binary.LittleEndian, info.NDataPatchTotal)
	binary.Write(buf, binary.LittleEndian, info.AdvanceCounter)
	binary.Write(buf, binary.LittleEndian, info.AveDensity)
	writePad(buf, int(h.HeaderSize)+8+simInfoPad)

	_, err := w.Write(buf.Bytes())
	return err
}

// WritePatches appends every active patch across all levels, in tree
// (level-major, then allocation) order, per spec.md §6's per-patch block.
// slotPerLevel[l] names the sandglass holding level l's current data,
// since individual-timestep mode (spec.md §3 invariant 6) lets each
// level toggle its slot independently of its neighbors.
func WritePatches(w io.Writer, tr *amr.Tree, slotPerLevel []int, layout DataLayout) error {
	for l, lv := range tr.Levels {
		slot := slotPerLevel[l]
		for _, p := range lv.Patches {
			if !p.Active {
				continue
			}
			rec := PatchRecord{Level: l, Corner: [3]int32{int32(p.Corner[0]), int32(p.Corner[1]), int32(p.Corner[2])}}
			rec.Son = -1
			if p.Son != amr.NoSon {
				rec.Son = int32(p.Son)
			}
			if err := writePatchRecord(w, &rec, p, slot, tr.NVar, tr.PatchSize, layout); err != nil {
				return err
			}
		}
	}
	return nil
}

func writePatchRecord(w io.Writer, rec *PatchRecord, p *amr.Patch, slot, nvar, n int, layout DataLayout) error {
	if err := binary.Write(w, binary.LittleEndian, rec.Corner); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, rec.Son); err != nil {
		return err
	}
	if rec.Son != -1 {
		return nil // internal patch: no data follows
	}
	if err := writeCube(w, p.Fluid[slot], nvar, n, layout); err != nil {
		return err
	}
	if p.HasPot {
		return writeOneCube(w, p.Pot[slot], n)
	}
	return nil
}

func writeCube(w io.Writer, fluid [][][][]float64, nvar, n int, layout DataLayout) error {
	if layout == LayoutVKJI {
		for v := 0; v < nvar; v++ {
			if err := writeOneCube(w, fluid[v], n); err != nil {
				return err
			}
		}
		return nil
	}
	for k := 0; k < n; k++ {
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				for v := 0; v < nvar; v++ {
					if err := binary.Write(w, binary.LittleEndian, fluid[v][k][j][i]); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

func writeOneCube(w io.Writer, cube [][][]float64, n int) error {
	for k := 0; k < n; k++ {
		for j := 0; j < n; j++ {
			if err := binary.Write(w, binary.LittleEndian, cube[k][j]); err != nil {
				return err
			}
		}
	}
	return nil
}

// ReadHeader parses and validates the fixed-offset header, refusing any
// file whose format_version predates MinFormatVersion (spec.md §9's
// resolved open question) or whose check-code does not verify at both
// required offsets.
func ReadHeader(r io.ReaderAt) (*Header, *SimInfo, error) {
	var prefix [offSizes + 20]byte
	if _, err := r.ReadAt(prefix[:], 0); err != nil {
		return nil, nil, chk.Err("restart file too short to hold a header: %v", err)
	}
	h := &Header{}
	h.FormatVersion = int64(binary.LittleEndian.Uint64(prefix[offFormatVersion:]))
	h.HeaderSize = int64(binary.LittleEndian.Uint64(prefix[offHeaderSize:]))
	code := int64(binary.LittleEndian.Uint64(prefix[offCheckCode:]))
	if code != CheckCode {
		return nil, nil, chk.Err("restart file corrupt: check_code mismatch at offset 16")
	}
	if h.FormatVersion < MinFormatVersion {
		return nil, nil, chk.Err("restart file format_version %d predates %d: per-type sizes are not stamped, refusing to guess", h.FormatVersion, MinFormatVersion)
	}
	h.Sizes.Bool = int32(binary.LittleEndian.Uint32(prefix[offSizes:]))
	h.Sizes.Int = int32(binary.LittleEndian.Uint32(prefix[offSizes+4:]))
	h.Sizes.Long = int32(binary.LittleEndian.Uint32(prefix[offSizes+8:]))
	h.Sizes.Real = int32(binary.LittleEndian.Uint32(prefix[offSizes+12:]))
	h.Sizes.Double = int32(binary.LittleEndian.Uint32(prefix[offSizes+16:]))

	var optBuf [9]byte
	if _, err := r.ReadAt(optBuf[:], offOptionsBlock); err != nil {
		return nil, nil, chk.Err("restart file truncated at options block: %v", err)
	}
	h.Layout = DataLayout(binary.LittleEndian.Uint32(optBuf[0:]))
	h.Model = int32(binary.LittleEndian.Uint32(optBuf[4:]))
	h.GravityOn = optBuf[8] != 0

	var constBuf [16]byte
	if _, err := r.ReadAt(constBuf[:], offConstsBlock); err != nil {
		return nil, nil, chk.Err("restart file truncated at constants block: %v", err)
	}
	h.NLv = int32(binary.LittleEndian.Uint32(constBuf[0:]))
	h.BoxSize = float64FromBits(constBuf[4:])
	h.NX0 = int32(binary.LittleEndian.Uint32(constBuf[12:]))

	secondCheck := make([]byte, 8)
	if _, err := r.ReadAt(secondCheck, h.HeaderSize); err != nil {
		return nil, nil, chk.Err("restart file truncated at header_size offset %d: %v", h.HeaderSize, err)
	}
	if int64(binary.LittleEndian.Uint64(secondCheck)) != CheckCode {
		return nil, nil, chk.Err("restart file corrupt: check_code mismatch at header_size offset %d", h.HeaderSize)
	}

	info, err := readSimInfo(r, h.HeaderSize+8, int(h.NLv))
	if err != nil {
		return nil, nil, err
	}
	return h, info, nil
}

func float64FromBits(b []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}

func readSimInfo(r io.ReaderAt, off int64, nlv int) (*SimInfo, error) {
	size := 4 + 8*nlv + 8 + 4*nlv + 4*nlv + 4*nlv + 8
	buf := make([]byte, size)
	if _, err := r.ReadAt(buf, off); err != nil {
		return nil, chk.Err("restart file truncated reading simulation info: %v", err)
	}
	rdr := bytes.NewReader(buf)
	info := &SimInfo{T: make([]float64, nlv), NPatchTotal: make([]int32, nlv), NDataPatchTotal: make([]int32, nlv), AdvanceCounter: make([]uint32, nlv)}
	binary.Read(rdr, binary.LittleEndian, &info.DumpID)
	binary.Read(rdr, binary.LittleEndian, &info.T)
	binary.Read(rdr, binary.LittleEndian, &info.Step)
	binary.Read(rdr, binary.LittleEndian, &info.NPatchTotal)
	binary.Read(rdr, binary.LittleEndian, &info.NDataPatchTotal)
	binary.Read(rdr, binary.LittleEndian, &info.AdvanceCounter)
	binary.Read(rdr, binary.LittleEndian, &info.AveDensity)
	return info, nil
}

// PatchDataOffset returns the byte offset where per-patch records begin,
// matching the padding WriteHeader applies after the simulation-info
// block, so a caller can Seek there before calling ReadPatches.
func PatchDataOffset(h *Header) int64 {
	return h.HeaderSize + 8 + simInfoPad
}

// ReadPatches reads every patch record following the header, in the same
// level-major tree order WritePatches wrote them, using info.NPatchTotal
// to know how many entries each level contributes (spec.md §8 invariant
// 8: a write-then-read round trip must reproduce the tree bit-for-bit).
func ReadPatches(r io.Reader, info *SimInfo, nvar, patchSize int, layout DataLayout) ([]PatchRecord, error) {
	var recs []PatchRecord
	for l, count := range info.NPatchTotal {
		for i := int32(0); i < count; i++ {
			rec, err := readPatchRecord(r, nvar, patchSize, layout)
			if err != nil {
				return nil, chk.Err("reading patch %d at level %d: %v", i, l, err)
			}
			rec.Level = l
			recs = append(recs, rec)
		}
	}
	return recs, nil
}

func readPatchRecord(r io.Reader, nvar, n int, layout DataLayout) (PatchRecord, error) {
	var rec PatchRecord
	if err := binary.Read(r, binary.LittleEndian, &rec.Corner); err != nil {
		return rec, err
	}
	if err := binary.Read(r, binary.LittleEndian, &rec.Son); err != nil {
		return rec, err
	}
	if rec.Son != -1 {
		return rec, nil
	}
	fluid, err := readCube(r, nvar, n, layout)
	if err != nil {
		return rec, err
	}
	rec.Fluid = fluid
	return rec, nil
}

func readCube(r io.Reader, nvar, n int, layout DataLayout) ([][][][]float64, error) {
	fluid := make([][][][]float64, nvar)
	for v := range fluid {
		fluid[v] = make([][][]float64, n)
		for k := range fluid[v] {
			fluid[v][k] = make([][]float64, n)
			for j := range fluid[v][k] {
				fluid[v][k][j] = make([]float64, n)
			}
		}
	}
	if layout == LayoutVKJI {
		for v := 0; v < nvar; v++ {
			if err := readOneCube(r, fluid[v], n); err != nil {
				return nil, err
			}
		}
		return fluid, nil
	}
	for k := 0; k < n; k++ {
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				for v := 0; v < nvar; v++ {
					if err := binary.Read(r, binary.LittleEndian, &fluid[v][k][j][i]); err != nil {
						return nil, err
					}
				}
			}
		}
	}
	return fluid, nil
}

func readOneCube(r io.Reader, cube [][][]float64, n int) error {
	for k := 0; k < n; k++ {
		for j := 0; j < n; j++ {
			if err := binary.Read(r, binary.LittleEndian, cube[k][j]); err != nil {
				return err
			}
		}
	}
	return nil
}

// Open opens a restart file for header validation plus subsequent
// sequential patch reads; the caller is responsible for closing it.
func Open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, chk.Err("cannot open restart file %q: %v", path, err)
	}
	return f, nil
}
