// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import "math"

// EOSParams carries the dimensionless equation-of-state constants an
// element needs, mirroring domain.Config's §3 fields so this package stays
// independent of the domain package (kernel is pure per-element math).
type EOSParams struct {
	Pmin, Emin                 float64
	Eosvmin, Eosvmax           float64
	Pcut, Ecut, Qcut           float64
	Ss4o3                      float64
	Refdens                    float64
}

// calcPressure is the closed-form pressure law shared by all three EOS
// iterations (spec §4.3): p = (2/3)*(compression+1)*e, clamped to zero
// below p_cut, zeroed above eosvmax, and floored at pmin.
func calcPressure(e, compression, vnew float64, p EOSParams) (pNew, bvc, pbvc float64) {
	const c1s = 2.0 / 3.0
	bvc = c1s * (compression + 1.0)
	pbvc = c1s

	pNew = bvc * e
	if math.Abs(pNew) < p.Pcut {
		pNew = 0
	}
	if vnew >= p.Eosvmax {
		pNew = 0
	}
	if pNew < p.Pmin {
		pNew = p.Pmin
	}
	return
}

// soundSpeed evaluates the clamped sqrt((pbvc*e + vnew^2*bvc*p)/rho0) term
// shared by the half-step, full-step and final viscosity evaluations.
func soundSpeed(pbvc, e, vnew, bvc, pNew, rho0 float64) float64 {
	ssc := (pbvc*e + vnew*vnew*bvc*pNew) / rho0
	if ssc <= 0.1111111e-36 {
		return 0.3333333e-18
	}
	return math.Sqrt(ssc)
}

// finalSoundSpeed applies the ss4o3 scale factor the element's stored sound
// speed carries (spec §4.3), used by CalcTimeConstraints' Courant term.
func finalSoundSpeed(pbvc, e, vnew, bvc, pNew, rho0, ss4o3 float64) float64 {
	ssc := ss4o3 * (pbvc*e + vnew*vnew*bvc*pNew) / rho0
	if ssc <= 0.1111111e-36 {
		return 0.3333333e-18
	}
	return math.Sqrt(ssc)
}

// EvalEOS runs the three-call pressure/energy/viscosity iteration of spec
// §4.3 for one element and returns its new pressure, energy, artificial
// viscosity and sound speed. vnew/delv are the element's new relative
// volume and this step's volume change; eOld/pOld/qOld/qqOld/qlOld are its
// state at the start of the step; work is the hourglass/external work
// contribution (zero for this solver, kept for the formula's shape).
func EvalEOS(eOld, pOld, qOld, qqOld, qlOld, vnew, delv, work float64, prm EOSParams) (pNew, eNew, qNew, ss float64) {
	const sixth = 1.0 / 6.0

	compression := 1.0/vnew - 1.0
	vhalf := vnew - delv*0.5
	compHalfStep := 1.0/vhalf - 1.0

	if prm.Eosvmin != 0 && vnew <= prm.Eosvmin {
		compHalfStep = compression
	}
	if prm.Eosvmax != 0 && vnew >= prm.Eosvmax {
		pOld = 0
		compression = 0
		compHalfStep = 0
	}

	// step 1: half-step energy and pressure
	eNew = eOld - 0.5*delv*(pOld+qOld) + 0.5*work
	if eNew < prm.Emin {
		eNew = prm.Emin
	}

	pHalfStep, bvc, pbvc := calcPressure(eNew, compHalfStep, vnew, prm)

	vhalfInv := 1.0 / (1.0 + compHalfStep)
	var qHalf float64
	if delv > 0 {
		qHalf = 0
	} else {
		ssc := soundSpeed(pbvc, eNew, vhalfInv, bvc, pHalfStep, prm.Refdens)
		qHalf = ssc*qlOld + qqOld
	}

	eNew = eNew + 0.5*delv*(3.0*(pOld+qOld)-4.0*(pHalfStep+qHalf))
	eNew += 0.5 * work
	if math.Abs(eNew) < prm.Ecut {
		eNew = 0
	}
	if eNew < prm.Emin {
		eNew = prm.Emin
	}

	// step 2: full-step pressure, provisional q
	pNew, bvc, pbvc = calcPressure(eNew, compression, vnew, prm)

	var qTilde float64
	if delv > 0 {
		qTilde = 0
	} else {
		ssc := soundSpeed(pbvc, eNew, vnew, bvc, pNew, prm.Refdens)
		qTilde = ssc*qlOld + qqOld
	}

	eNew = eNew - (7.0*(pOld+qOld)-8.0*(pHalfStep+qHalf)+(pNew+qTilde))*delv*sixth
	if math.Abs(eNew) < prm.Ecut {
		eNew = 0
	}
	if eNew < prm.Emin {
		eNew = prm.Emin
	}

	// step 3: final pressure and viscosity
	pNew, bvc, pbvc = calcPressure(eNew, compression, vnew, prm)

	if delv <= 0 {
		ssc := soundSpeed(pbvc, eNew, vnew, bvc, pNew, prm.Refdens)
		qNew = ssc*qlOld + qqOld
		if math.Abs(qNew) < prm.Qcut {
			qNew = 0
		}
	} else {
		qNew = 0
	}

	ss = finalSoundSpeed(pbvc, eNew, vnew, bvc, pNew, prm.Refdens, prm.Ss4o3)

	return
}
