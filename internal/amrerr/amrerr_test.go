// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package amrerr

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestKindFatal(tst *testing.T) {
	chk.PrintTitle("KindFatal")
	fatal := []Kind{KindConfiguration, KindIO, KindRankMismatch}
	for _, k := range fatal {
		if !k.Fatal() {
			tst.Errorf("expected %s to be fatal", k)
		}
	}
	nonFatal := []Kind{KindConsistency, KindNumerical}
	for _, k := range nonFatal {
		if k.Fatal() {
			tst.Errorf("expected %s to be non-fatal by default", k)
		}
	}
}

func TestStepErrorMessage(tst *testing.T) {
	chk.PrintTitle("StepErrorMessage")
	e := NewNumerical(2, 7, [3]int{1, 2, 3}, "negative density %g", -0.5)
	if e.Kind != KindNumerical {
		tst.Fatalf("expected KindNumerical, got %s", e.Kind)
	}
	if e.Level != 2 || e.PatchID != 7 || e.Cell != [3]int{1, 2, 3} {
		tst.Fatalf("coordinates not carried through: %+v", e)
	}
	msg := e.Error()
	if msg == "" {
		tst.Fatalf("expected non-empty error message")
	}
}

func TestConstructorsTagKind(tst *testing.T) {
	chk.PrintTitle("ConstructorsTagKind")
	cases := []struct {
		err  *StepError
		kind Kind
	}{
		{NewConfig("bad scheme %q", "xyz"), KindConfiguration},
		{NewConsistency("nx0 mismatch: %d != %d", 8, 16), KindConsistency},
		{NewIO("missing file %q", "restart.bin"), KindIO},
		{NewRankMismatch("expected %d ranks, got %d", 4, 2), KindRankMismatch},
	}
	for _, c := range cases {
		if c.err.Kind != c.kind {
			tst.Errorf("expected kind %s, got %s", c.kind, c.err.Kind)
		}
	}
}
