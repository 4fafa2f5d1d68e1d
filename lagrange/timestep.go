// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lagrange

import (
	"math"

	"github.com/cpmech/lulesh/comm"
	"github.com/cpmech/lulesh/domain"
)

// CalcTimeConstraints reduces, over every element, the Courant (sound-speed
// plus viscous) and hydro (volume-change) time-step bounds (spec §4.2 step
// 4). Both start from the values passed in (Driver.Step passes 1e20 every
// cycle) and only tighten.
func CalcTimeConstraints(dom *domain.Domain, dtCourant, dtHydro float64) (float64, float64) {
	qqc2 := 64.0 * dom.Cfg.Qqc * dom.Cfg.Qqc
	dvovmax := dom.Cfg.Dvovmax

	for el := 0; el < dom.NumElem; el++ {
		vdov := dom.Vdov[el]
		if vdov != 0 {
			dtf := dom.Ss[el] * dom.Ss[el]
			if vdov < 0 {
				dtf += qqc2 * dom.Arealg[el] * dom.Arealg[el] * vdov * vdov
			}
			dtf = dom.Arealg[el] / math.Sqrt(dtf)
			if dtf < dtCourant {
				dtCourant = dtf
			}

			dtdvov := dvovmax / (math.Abs(vdov) + 1.0e-20)
			if dtdvov < dtHydro {
				dtHydro = dtdvov
			}
		}
	}
	return dtCourant, dtHydro
}

// TimeIncrement picks the next step's DeltaTime from the Courant/hydro
// bounds (reduced to a single value across every subdomain via Allreduce
// min), applies the growth-rate bounds and dtmax ceiling, then nudges the
// final step down if it would otherwise overshoot stoptime by only a
// sliver (spec §4.2 step 5, §3).
func TimeIncrement(dom *domain.Domain, ex *comm.Exchanger, dtCourant, dtHydro float64) {
	cfg := dom.Cfg
	targetdt := cfg.StopTime - dom.Time

	if dom.Cycle != 0 {
		olddt := dom.DeltaTime
		newdt := 1.0e20
		if dtCourant < newdt {
			newdt = dtCourant / 2.0
		}
		if dtHydro < newdt {
			newdt = dtHydro * 2.0 / 3.0
		}

		buf := []float64{newdt}
		ex.Comm.AllReduceMin(buf)
		newdt = buf[0]

		ratio := newdt / olddt
		if ratio >= 1.0 {
			if ratio < cfg.DeltatimeMultLb {
				newdt = olddt
			} else if ratio > cfg.DeltatimeMultUb {
				newdt = olddt * cfg.DeltatimeMultUb
			}
		}

		if newdt > cfg.Dtmax {
			newdt = cfg.Dtmax
		}
		dom.DeltaTime = newdt
	}

	if targetdt > dom.DeltaTime && targetdt < (4.0*dom.DeltaTime/3.0) {
		targetdt = 2.0 * dom.DeltaTime / 3.0
	}
	if targetdt < dom.DeltaTime {
		dom.DeltaTime = targetdt
	}

	dom.Time += dom.DeltaTime
	dom.Cycle++
}
