// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config implements the input data read from a (.amr) JSON file and
// the derived, immutable Configuration used throughout a run.
package config

import (
	"encoding/json"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// FuncData names a time-space function by type and parameters, mirroring
// inp.FuncData's JSON shape (`inp/func.go`): a function "zoo" entry the
// driver's dt computation can look up by name.
type FuncData struct {
	Name string     `json:"name"` // ex: "userdt"
	Type string     `json:"type"` // ex: "cte", "rmp" (see gosl/fun's registered types)
	Prms dbf.Params `json:"prms"` // parameters
}

// FuncsData is a named collection of FuncData, resolved to fun.TimeSpace
// values at Configuration-build time. Mirrors inp.FuncsData.Get.
type FuncsData []*FuncData

// Get returns the function named name, or an error if not found.
func (o FuncsData) Get(name string) (fcn fun.TimeSpace, err error) {
	for _, f := range o {
		if f.Name == name {
			fcn, err = fun.New(f.Type, f.Prms)
			if err != nil {
				return nil, chk.Err("cannot build function %q: %v", name, err)
			}
			return fcn, nil
		}
	}
	return nil, chk.Err("function %q not found", name)
}

// Model selects the physical field carried by a patch.
type Model int

// available models
const (
	ModelHydro Model = iota // {density, momentum x3, energy}
	ModelELBDM              // {density, real, imag}
)

// NVar returns the number of conserved components for the model.
func (m Model) NVar() int {
	switch m {
	case ModelHydro:
		return 5
	case ModelELBDM:
		return 3
	}
	chk.Panic("unknown model %d", m)
	return 0
}

// PatchSize is N, the fixed number of cells per side of a patch (PATCH_SIZE).
const PatchSize = 8

// TimestepMode selects how levels are advanced relative to one another.
type TimestepMode int

// available timestep modes
const (
	TimestepShared TimestepMode = iota
	TimestepIndividual
)

// Data holds the raw, JSON-decodable input for a simulation.
type Data struct {
	Desc       string  `json:"desc"`
	DirOut     string  `json:"dirout"`
	Model      string  `json:"model"`      // "hydro" or "elbdm"
	Gamma      float64 `json:"gamma"`      // ratio of specific heats
	BoxSize    float64 `json:"boxsize"`    // physical size of the root domain (cube)
	NX0        int     `json:"nx0"`        // base-level cells per side
	MaxLevel   int     `json:"maxlevel"`   // Lmax - 1, deepest refinable level
	Scheme     string  `json:"scheme"`     // "mhm", "mhmrp", "ctu", "waf", "wafdissipate"
	Riemann    string  `json:"riemann"`    // "exact", "roe", "hlle", "hllc"
	RoeFallback string `json:"roefallback"` // solver used when Roe hits a non-physical intermediate state
	Limiter    string  `json:"limiter"`    // "vanleer", "minmod", "vanalbada", "hybrid", "ep"
	MinModCoeff float64 `json:"minmodcoeff"`
	EPCoeff     float64 `json:"epcoeff"`
	Positivity  bool    `json:"positivity"`
	SelfGravity bool    `json:"selfgravity"`
	Timestep    string  `json:"timestep"` // "shared" or "individual"
	CFL         float64 `json:"cfl"`
	AdaptiveDt  float64 `json:"adaptivedt"` // global safety factor on dt
	FlagBufferSize int  `json:"flagbuffersize"`
	WLIMax      float64 `json:"wlimax"`
	TEnd        float64 `json:"tend"`
	StepEnd     int64   `json:"stepend"`
	OutputEvery int64   `json:"outputevery"`
	CheckEvery  int64   `json:"checkevery"`
	SentinelFile string `json:"sentinelfile"`

	// per-criterion refinement thresholds, one slice entry per level
	DensThreshold     []float64 `json:"densthreshold"`
	DensGradThreshold []float64 `json:"densgradthreshold"`
	PresGradThreshold []float64 `json:"presgradthreshold"`
	LohnerThreshold   []float64 `json:"lohnerthreshold"`
	LohnerFilter      []float64 `json:"lohnerfilter"`
	LohnerSoften      []float64 `json:"lohnersoften"`

	EnableDensFlag     bool `json:"enabledensflag"`
	EnableDensGradFlag bool `json:"enabledensgradflag"`
	EnablePresGradFlag bool `json:"enablepresgradflag"`
	EnableELBDMFlag    bool `json:"enableelbdmflag"`
	EnableLohnerFlag   bool `json:"enablelohnerflag"`
	EnableUserFlag     bool `json:"enableuserflag"`

	InterpScheme string `json:"interpscheme"` // "central", "minmod", "vanleer", "cquad", "cquar"
	Periodic     bool   `json:"periodic"`     // root-level domain boundary: periodic wrap vs reflecting

	// Functions holds named time-space functions available to hooks below,
	// and UserDtFcn optionally names one of them as the "user hook" dt
	// constraint of spec.md §4.8 step 1 (min over CFL, gravity, phase,
	// cosmological expansion, user hook, ADAPTIVE_DT).
	Functions FuncsData `json:"functions"`
	UserDtFcn string    `json:"userdtfcn"`
}

// Configuration is the immutable, derived view of Data used by the engine.
// It is constructed once at start-up; nothing in the hot path mutates it.
type Configuration struct {
	Desc       string
	DirOut     string
	Model      Model
	Gamma      float64
	BoxSize    float64
	NX0        int
	MaxLevel   int
	Scheme     string
	Riemann    string
	RoeFallback string
	Limiter    string
	MinModCoeff float64
	EPCoeff     float64
	Positivity  bool
	SelfGravity bool
	Timestep    TimestepMode
	CFL         float64
	AdaptiveDt  float64
	FlagBufferSize int
	WLIMax      float64
	TEnd        float64
	StepEnd     int64
	OutputEvery int64
	CheckEvery  int64
	SentinelFile string

	DensThreshold     []float64
	DensGradThreshold []float64
	PresGradThreshold []float64
	LohnerThreshold   []float64
	LohnerFilter      []float64
	LohnerSoften      []float64

	EnableDensFlag     bool
	EnableDensGradFlag bool
	EnablePresGradFlag bool
	EnableELBDMFlag    bool
	EnableLohnerFlag   bool
	EnableUserFlag     bool

	InterpScheme string
	Periodic     bool

	// dh[level] = BoxSize / (NX0 * 2^level)
	Dh []float64

	userDtFunc fun.TimeSpace // nil unless UserDtFcn names a resolved function
}

// UserDt evaluates the configured user dt hook at time t, per spec.md
// §4.8 step 1's "user hook" dt constraint. The second return is false when
// no hook is configured, so the caller can skip the constraint entirely.
func (cfg *Configuration) UserDt(t float64) (dt float64, ok bool) {
	if cfg.userDtFunc == nil {
		return 0, false
	}
	return cfg.userDtFunc.F(t, nil), true
}

// Read parses a JSON parameter file and builds the derived Configuration.
// Mirrors inp.ReadSim's role of turning a parameter file into runtime data.
func Read(path string) (cfg *Configuration, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, chk.Err("cannot open configuration file %q:\n%v", path, err)
	}
	defer f.Close()
	var d Data
	if err = json.NewDecoder(f).Decode(&d); err != nil {
		return nil, chk.Err("cannot parse configuration file %q:\n%v", path, err)
	}
	return New(&d)
}

// New builds a Configuration from raw Data, validating and deriving fields.
func New(d *Data) (cfg *Configuration, err error) {
	cfg = &Configuration{
		Desc:               d.Desc,
		DirOut:             d.DirOut,
		Gamma:              d.Gamma,
		BoxSize:            d.BoxSize,
		NX0:                d.NX0,
		MaxLevel:           d.MaxLevel,
		Scheme:             d.Scheme,
		Riemann:            d.Riemann,
		RoeFallback:        d.RoeFallback,
		Limiter:            d.Limiter,
		MinModCoeff:        d.MinModCoeff,
		EPCoeff:            d.EPCoeff,
		Positivity:         d.Positivity,
		SelfGravity:        d.SelfGravity,
		CFL:                d.CFL,
		AdaptiveDt:         d.AdaptiveDt,
		FlagBufferSize:     d.FlagBufferSize,
		WLIMax:             d.WLIMax,
		TEnd:               d.TEnd,
		StepEnd:            d.StepEnd,
		OutputEvery:        d.OutputEvery,
		CheckEvery:         d.CheckEvery,
		SentinelFile:       d.SentinelFile,
		DensThreshold:      d.DensThreshold,
		DensGradThreshold:  d.DensGradThreshold,
		PresGradThreshold:  d.PresGradThreshold,
		LohnerThreshold:    d.LohnerThreshold,
		LohnerFilter:       d.LohnerFilter,
		LohnerSoften:       d.LohnerSoften,
		EnableDensFlag:     d.EnableDensFlag,
		EnableDensGradFlag: d.EnableDensGradFlag,
		EnablePresGradFlag: d.EnablePresGradFlag,
		EnableELBDMFlag:    d.EnableELBDMFlag,
		EnableLohnerFlag:   d.EnableLohnerFlag,
		EnableUserFlag:     d.EnableUserFlag,
		InterpScheme:       d.InterpScheme,
		Periodic:           d.Periodic,
	}

	switch d.Model {
	case "", "hydro":
		cfg.Model = ModelHydro
	case "elbdm":
		cfg.Model = ModelELBDM
	default:
		return nil, chk.Err("unsupported model %q", d.Model)
	}

	switch d.Timestep {
	case "", "shared":
		cfg.Timestep = TimestepShared
	case "individual":
		cfg.Timestep = TimestepIndividual
	default:
		return nil, chk.Err("unsupported timestep mode %q", d.Timestep)
	}

	if cfg.MaxLevel < 0 {
		return nil, chk.Err("maxlevel must be >= 0, got %d", cfg.MaxLevel)
	}
	if cfg.NX0 <= 0 || cfg.BoxSize <= 0 {
		return nil, chk.Err("nx0 and boxsize must be positive")
	}

	cfg.Dh = make([]float64, cfg.MaxLevel+1)
	for l := 0; l <= cfg.MaxLevel; l++ {
		cfg.Dh[l] = cfg.BoxSize / float64(cfg.NX0*(1<<uint(l)))
	}

	if cfg.CFL <= 0 {
		cfg.CFL = 0.5
	}
	if cfg.AdaptiveDt <= 0 {
		cfg.AdaptiveDt = 1.0
	}
	if cfg.FlagBufferSize <= 0 {
		cfg.FlagBufferSize = 2
	}
	if cfg.WLIMax <= 0 {
		cfg.WLIMax = 0.1
	}

	if d.UserDtFcn != "" {
		cfg.userDtFunc, err = d.Functions.Get(d.UserDtFcn)
		if err != nil {
			return nil, chk.Err("userdtfcn: %v", err)
		}
	}

	return cfg, nil
}

// Summary formats the same provenance dump as Describe, as a string, so
// the driver's note-taking file writer (internal/diag.TakeNote) can save
// it without duplicating the field list.
func (cfg *Configuration) Summary() string {
	return io.Sf(
		"> model        = %v\n"+
			"> gamma        = %v\n"+
			"> box size     = %v\n"+
			"> base NX0     = %v\n"+
			"> max level    = %v\n"+
			"> scheme       = %v\n"+
			"> riemann      = %v (fallback=%v)\n"+
			"> limiter      = %v\n"+
			"> positivity   = %v\n"+
			"> self-gravity = %v\n"+
			"> timestep     = %v\n"+
			"> periodic     = %v\n",
		cfg.Model, cfg.Gamma, cfg.BoxSize, cfg.NX0, cfg.MaxLevel, cfg.Scheme,
		cfg.Riemann, cfg.RoeFallback, cfg.Limiter, cfg.Positivity, cfg.SelfGravity, cfg.Timestep, cfg.Periodic)
}

// Describe prints a human-readable provenance dump of the configuration,
// adapted from the original Daino's Aux_TakeNote note-taking behavior.
func (cfg *Configuration) Describe() {
	io.Pf("%s", cfg.Summary())
}
