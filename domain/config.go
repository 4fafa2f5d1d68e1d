// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package domain holds the per-subdomain mesh, state, and the builder that
// constructs it from a cubic lattice position -- the mesh-constructor
// "external collaborator" of spec §1, expanded in SPEC_FULL.md to live here
// so the repo is runnable end to end.
package domain

import (
	"encoding/json"
	"os"

	"github.com/cpmech/gosl/chk"
)

// Config holds run parameters read from a JSON file, following the
// JSON-tagged struct convention of gofem's inp.Data.
type Config struct {

	// mesh
	Nx int `json:"nx"` // per-subdomain edge length (elements per axis); default 45
	Tp int `json:"tp"` // processes per axis (cube root of total process count)

	// termination
	StopTime float64 `json:"stoptime"` // simulation stop time

	// dimensionless physical parameters, see spec §3
	Hgcoef           float64 `json:"hgcoef"`
	Qqc              float64 `json:"qqc"`
	Ss4o3            float64 `json:"ss4o3"`
	MonoqLimiterMult float64 `json:"monoqLimiterMult"`
	MonoqMaxSlope    float64 `json:"monoqMaxSlope"`
	QlcMonoq         float64 `json:"qlcMonoq"`
	QqcMonoq         float64 `json:"qqcMonoq"`
	Refdens          float64 `json:"refdens"`
	Pmin             float64 `json:"pmin"`
	Emin             float64 `json:"emin"`
	Eosvmin          float64 `json:"eosvmin"`
	Eosvmax          float64 `json:"eosvmax"`
	Ecut             float64 `json:"ecut"`
	Pcut             float64 `json:"pcut"`
	Qcut             float64 `json:"qcut"`
	Ucut             float64 `json:"ucut"`
	Vcut             float64 `json:"vcut"`
	Dvovmax          float64 `json:"dvovmax"`
	Dtmax            float64 `json:"dtmax"`
	DeltatimeMultLb  float64 `json:"deltatimeMultLb"`
	DeltatimeMultUb  float64 `json:"deltatimeMultUb"`
	Qstop            float64 `json:"qstop"`

	// initial energy deposit, applied to element 0 of the (0,0,0) subdomain
	InitialEnergy float64 `json:"initialEnergy"`
}

// DefaultConfig returns the reference LULESH constants from spec §3
func DefaultConfig() *Config {
	return &Config{
		Nx:               45,
		Tp:               1,
		StopTime:         1.0e-2,
		Hgcoef:           3.0,
		Qqc:              2.0,
		Ss4o3:            4.0 / 3.0,
		MonoqLimiterMult: 2.0,
		MonoqMaxSlope:    1.0,
		QlcMonoq:         0.5,
		QqcMonoq:         2.0 / 3.0,
		Refdens:          1.0,
		Pmin:             0.0,
		Emin:             -1.0e15,
		Eosvmin:          1.0e-9,
		Eosvmax:          1.0e9,
		Ecut:             1.0e-7,
		Pcut:             1.0e-7,
		Qcut:             1.0e-7,
		Ucut:             1.0e-7,
		Vcut:             1.0e-10,
		Dvovmax:          0.1,
		Dtmax:            1.0e-2,
		DeltatimeMultLb:  1.1,
		DeltatimeMultUb:  1.2,
		Qstop:            1.0e12,
		InitialEnergy:    3.948746e7,
	}
}

// ReadConfig reads a Config from a JSON file, falling back to
// DefaultConfig's values for any field not present. Mirrors the role of
// gofem's inp.ReadSim, reduced to what this spec needs.
func ReadConfig(path string) *Config {
	cfg := DefaultConfig()
	if path == "" {
		return cfg
	}
	f, err := os.Open(path)
	if err != nil {
		chk.Panic("cannot open configuration file %q:\n%v", path, err)
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	err = dec.Decode(cfg)
	if err != nil {
		chk.Panic("cannot parse configuration file %q:\n%v", path, err)
	}
	return cfg
}
