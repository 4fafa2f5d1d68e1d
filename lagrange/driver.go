// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lagrange

import (
	"errors"

	"github.com/cpmech/lulesh/comm"
	"github.com/cpmech/lulesh/domain"

	"github.com/cpmech/gosl/fun"
)

// ExitKind classifies a fatal abort, matching the two distinct process exit
// codes spec §7 assigns: a negative element volume vs. an artificial
// viscosity runaway. A successful run carries ExitOK.
type ExitKind int

const (
	ExitOK ExitKind = iota
	ExitNegativeVolume
	ExitQStop
)

// ExitCode mirrors the original solver's process exit status: -1 for a
// volume collapse, -2 for a viscosity runaway.
func (k ExitKind) ExitCode() int {
	switch k {
	case ExitNegativeVolume:
		return -1
	case ExitQStop:
		return -2
	}
	return 0
}

// Solver drives the Lagrange leap-frog time loop to completion, mirroring
// the role of fem.Solver in the teacher (a pluggable Run entry point taking
// fun.Func-shaped time-step and output-interval callbacks).
type Solver interface {
	Run(stoptime float64, dtFunc, dtoFunc fun.Func) error
}

// Driver is the default Solver: one subdomain's state plus its halo
// exchanger, stepped by repeated calls to Step until stoptime is reached or
// a fatal condition aborts the run.
type Driver struct {
	Dom *domain.Domain
	Ex  *comm.Exchanger

	dtCourant float64
	dtHydro   float64

	// OnCycle, if set, is called after every completed cycle (used by
	// main.go to print progress and to write VTK snapshots through the viz
	// package); it is never invoked by the core kernels.
	OnCycle func(cycle int, t, dt float64)
}

// NewDriver builds a Driver over dom, creating its Exchanger.
func NewDriver(dom *domain.Domain) *Driver {
	return &Driver{
		Dom:       dom,
		Ex:        comm.NewExchanger(dom, dom.Topo),
		dtCourant: 1.0e20,
		dtHydro:   1.0e20,
	}
}

// Step runs exactly one Lagrange leap-frog cycle: nodal phase, element
// phase, time-constraint reduction, and the time increment (spec §4.2).
func (o *Driver) Step(dtFunc fun.Func) (ExitKind, error) {
	dom := o.Dom

	if err := LagrangeNodal(dom, o.Ex, dom.DeltaTime); err != nil {
		return ExitNegativeVolume, err
	}

	if err := LagrangeElements(dom, o.Ex); err != nil {
		if errors.Is(err, ErrQStop) {
			return ExitQStop, err
		}
		return ExitNegativeVolume, err
	}

	o.dtCourant, o.dtHydro = CalcTimeConstraints(dom, 1.0e20, 1.0e20)
	if dtFunc != nil {
		if fixed := dtFunc.F(dom.Time, nil); fixed > 0 {
			o.dtCourant = fixed
			o.dtHydro = fixed
		}
	}
	TimeIncrement(dom, o.Ex, o.dtCourant, o.dtHydro)

	return ExitOK, nil
}

// Run steps the solver until dom.Time reaches stoptime or a fatal
// condition aborts the run, invoking OnCycle after every cycle. dtFunc is
// handed to Step; dtoFunc is accepted for the Solver interface and is not
// used.
func (o *Driver) Run(stoptime float64, dtFunc, dtoFunc fun.Func) error {
	o.Dom.Cfg.StopTime = stoptime
	for o.Dom.Time < stoptime {
		kind, err := o.Step(dtFunc)
		if kind != ExitOK {
			return err
		}
		if o.OnCycle != nil {
			o.OnCycle(o.Dom.Cycle, o.Dom.Time, o.Dom.DeltaTime)
		}
	}
	return nil
}
