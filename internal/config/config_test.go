// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func baseData() *Data {
	return &Data{
		Model:    "hydro",
		Gamma:    1.4,
		BoxSize:  1.0,
		NX0:      8,
		MaxLevel: 2,
		Scheme:   "mhm",
		Riemann:  "hllc",
		Limiter:  "vanleer",
	}
}

func TestConfigDerivedDh(tst *testing.T) {
	chk.PrintTitle("ConfigDerivedDh")
	cfg, err := New(baseData())
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}
	chk.Scalar(tst, "dh[0]", 1e-15, cfg.Dh[0], 1.0/8.0)
	chk.Scalar(tst, "dh[1]", 1e-15, cfg.Dh[1], 1.0/16.0)
	chk.Scalar(tst, "dh[2]", 1e-15, cfg.Dh[2], 1.0/32.0)
	chk.Scalar(tst, "cfl default", 1e-15, cfg.CFL, 0.5)
	if cfg.Model != ModelHydro {
		tst.Fatalf("expected ModelHydro, got %v", cfg.Model)
	}
	if _, ok := cfg.UserDt(0); ok {
		tst.Fatalf("UserDt should report ok=false when no hook is configured")
	}
}

func TestConfigUnknownModel(tst *testing.T) {
	chk.PrintTitle("ConfigUnknownModel")
	d := baseData()
	d.Model = "bogus"
	if _, err := New(d); err == nil {
		tst.Fatalf("expected an error for an unsupported model")
	}
}

func TestConfigUserDtFcnNotFound(tst *testing.T) {
	chk.PrintTitle("ConfigUserDtFcnNotFound")
	d := baseData()
	d.UserDtFcn = "missing"
	if _, err := New(d); err == nil {
		tst.Fatalf("expected an error when userdtfcn names an unregistered function")
	}
}
