// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viz

import (
	"github.com/cpmech/gosl/plt"
)

// EnergyHistory accumulates the total internal energy of element 0 (the
// Sedov deposit site) at every recorded cycle, for a post-run diagnostic
// plot -- useful for spotting the artificial-viscosity runaway or energy
// leakage a broken hourglass control would cause.
type EnergyHistory struct {
	Cycle []float64
	E0    []float64
}

// Add appends one sample.
func (o *EnergyHistory) Add(cycle int, e0 float64) {
	o.Cycle = append(o.Cycle, float64(cycle))
	o.E0 = append(o.E0, e0)
}

// Plot renders the history to a PNG at dirout/fn.
func (o *EnergyHistory) Plot(dirout, fn string) {
	if len(o.Cycle) == 0 {
		return
	}
	plt.Plot(o.Cycle, o.E0, "'b-', clip_on=0, label='element 0 energy'")
	plt.Gll("cycle", "energy", "")
	plt.SaveD(dirout, fn)
}
