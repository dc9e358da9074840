// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package restrict

import (
	"testing"

	"github.com/cpmech/daino/internal/amr"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

func TestRestrictMassExact(tst *testing.T) {
	chk.PrintTitle("RestrictMassExact")
	n := 8
	nvar := 5
	father := amr.NewPatch(0, [3]int{0, 0, 0}, 0, nvar, n, false)
	father.Son = 0
	var children [8]*amr.Patch
	total := 0.0
	for oct := 0; oct < 8; oct++ {
		c := amr.NewPatch(1, [3]int{0, 0, 0}, oct, nvar, n, false)
		for k := 0; k < n; k++ {
			for j := 0; j < n; j++ {
				for i := 0; i < n; i++ {
					val := float64(oct+1) * 0.1
					c.Fluid[0][0][k][j][i] = val
					total += val
				}
			}
		}
		children[oct] = c
	}
	if err := Restrict(father, children, 0, nvar, n, false); err != nil {
		tst.Fatalf("Restrict: %v", err)
	}
	sumParent := 0.0
	for k := 0; k < n; k++ {
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				sumParent += father.Fluid[0][0][k][j][i]
			}
		}
	}
	chk.Scalar(tst, "sum(parent)*8 == sum(children)", 1e-9, sumParent*8, total)
}

func TestFixUpConservesFace(tst *testing.T) {
	chk.PrintTitle("FixUpConservesFace")
	n := 8
	nvar := 1
	coarse := utl.Deep3alloc(nvar, n, n)
	var childFaces [4][][][]float64
	total := 0.0
	for q := 0; q < 4; q++ {
		f := utl.Deep3alloc(nvar, n, n)
		for r := 0; r < n; r++ {
			for c := 0; c < n; c++ {
				f[0][r][c] = float64(q + 1)
				total += f[0][r][c]
			}
		}
		childFaces[q] = f
	}
	FixUp(coarse, childFaces, nvar, n)
	sum := 0.0
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			sum += coarse[0][r][c]
		}
	}
	chk.Scalar(tst, "sum(coarse face) == sum(4 fine faces)", 1e-9, sum, total)
}
