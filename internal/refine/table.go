// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refine

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
)

// Table holds the per-level refinement-criteria thresholds read from a
// flat text file, mirroring the original implementation's
// Init_Load_FlagCriteria input format: one header line followed by
// (Nlevels-1) data rows, each row giving the thresholds that apply when
// flagging cells at that level for refinement to the next.
type Table struct {
	DensThreshold  []float64
	DensGradThresh []float64
	PresGradThresh []float64
	LohnerThresh   []float64
}

// LoadCriteriaTable reads a refinement-criteria table with nlevels-1 data
// rows (one per level below the finest), four whitespace-separated
// columns: density threshold, density-gradient threshold, pressure-
// gradient threshold, Lohner threshold. Blank lines are skipped; the first
// non-blank line is the header and is discarded whatever it holds, and
// later lines starting with '#' are skipped.
func LoadCriteriaTable(path string, nlevels int) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, chk.Err("cannot open refinement criteria table %q: %v", path, err)
	}
	defer f.Close()

	t := &Table{
		DensThreshold:  make([]float64, nlevels-1),
		DensGradThresh: make([]float64, nlevels-1),
		PresGradThresh: make([]float64, nlevels-1),
		LohnerThresh:   make([]float64, nlevels-1),
	}

	sc := bufio.NewScanner(f)
	row := 0
	headerSeen := false
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if !headerSeen {
			headerSeen = true
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		if row >= nlevels-1 {
			break
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, chk.Err("refinement criteria table %q row %d: expected 4 columns, got %d", path, row, len(fields))
		}
		vals := make([]float64, 4)
		for k := 0; k < 4; k++ {
			v, err := strconv.ParseFloat(fields[k], 64)
			if err != nil {
				return nil, chk.Err("refinement criteria table %q row %d col %d: %v", path, row, k, err)
			}
			vals[k] = v
		}
		t.DensThreshold[row] = vals[0]
		t.DensGradThresh[row] = vals[1]
		t.PresGradThresh[row] = vals[2]
		t.LohnerThresh[row] = vals[3]
		row++
	}
	if err := sc.Err(); err != nil {
		return nil, chk.Err("reading refinement criteria table %q: %v", path, err)
	}
	if row != nlevels-1 {
		return nil, chk.Err("refinement criteria table %q: expected %d data rows, found %d", path, nlevels-1, row)
	}
	return t, nil
}
