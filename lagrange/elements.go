// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lagrange

import (
	"errors"
	"fmt"

	"github.com/cpmech/lulesh/comm"
	"github.com/cpmech/lulesh/domain"
	"github.com/cpmech/lulesh/kernel"
)

// ErrQStop is returned when an element's artificial viscosity exceeds the
// configured qstop bound -- spec invariant I2, a fatal condition (§7).
var ErrQStop = errors.New("lagrange: artificial viscosity exceeded qstop")

// calcKinematics computes every element's new relative volume, volume
// delta, characteristic length and deviatoric strain (spec §4.2 step 1).
// vnew is returned separately from dom.V, which is only overwritten once
// updateVolumes runs (the EOS evaluation below still needs both the old and
// the new volume).
func calcKinematics(dom *domain.Domain) ([]float64, error) {
	vnew := make([]float64, dom.NumElem)
	errs := make([]error, dom.NumElem)

	kernel.ForEach(dom.NumElem, func(el int) {
		base := 8 * el
		x := gatherElemNodes(dom.X, dom.Nodelist, base)
		y := gatherElemNodes(dom.Y, dom.Nodelist, base)
		z := gatherElemNodes(dom.Z, dom.Nodelist, base)
		xd := gatherElemNodes(dom.Xd, dom.Nodelist, base)
		yd := gatherElemNodes(dom.Yd, dom.Nodelist, base)
		zd := gatherElemNodes(dom.Zd, dom.Nodelist, base)

		kin, err := kernel.CalcKinematics(x, y, z, xd, yd, zd, dom.V[el], dom.Volo[el], dom.DeltaTime)
		if err != nil {
			errs[el] = err
			return
		}
		vnew[el] = kin.Vnew
		dom.Delv[el] = kin.Delv
		dom.Arealg[el] = kin.Arealg
		dom.Vdov[el] = kin.Vdov
	})

	for el, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("lagrange: element %d: %w", el, err)
		}
	}
	return vnew, nil
}

// resolveNeighbourDelv picks DelvXiM/DelvXiP (or eta/zeta) for one face
// according to its BC kind: COMM follows the Lxim/Lxip/... index (which
// points into the MonoQ ghost region for cross-subdomain faces), SYMM
// mirrors the element's own value, FREE contributes zero (spec §4.3).
func resolveNeighbourDelv(kind domain.BCKind, ownValue, neighbourValue float64) float64 {
	switch kind {
	case domain.BCSymm:
		return ownValue
	case domain.BCFree:
		return 0
	default:
		return neighbourValue
	}
}

// calcQForElems computes the monotonic-Q gradients for every element,
// exchanges the ghost region across subdomain boundaries, then evaluates
// each element's linear/quadratic viscosity terms (spec §4.3). It returns
// ErrQStop if any element's dom.Q (the previous cycle's combined viscosity)
// exceeds the configured bound.
func calcQForElems(dom *domain.Domain, ex *comm.Exchanger, vnew []float64) error {
	cfg := dom.Cfg

	kernel.ForEach(dom.NumElem, func(el int) {
		base := 8 * el
		x := gatherElemNodes(dom.X, dom.Nodelist, base)
		y := gatherElemNodes(dom.Y, dom.Nodelist, base)
		z := gatherElemNodes(dom.Z, dom.Nodelist, base)
		xd := gatherElemNodes(dom.Xd, dom.Nodelist, base)
		yd := gatherElemNodes(dom.Yd, dom.Nodelist, base)
		zd := gatherElemNodes(dom.Zd, dom.Nodelist, base)

		delxXi, delxEta, delxZeta, delvXi, delvEta, delvZeta :=
			kernel.MonotonicQGradients(x, y, z, xd, yd, zd, dom.Volo[el], vnew[el])

		dom.DelxXi[el] = delxXi
		dom.DelxEta[el] = delxEta
		dom.DelxZeta[el] = delxZeta
		dom.DelvXi[el] = delvXi
		dom.DelvEta[el] = delvEta
		dom.DelvZeta[el] = delvZeta
	})

	ex.MonoQ([][]float64{dom.DelvXi, dom.DelvEta, dom.DelvZeta})

	kernel.ForEach(dom.NumElem, func(el int) {
		xiM := dom.BCKindForFace(el, domain.XiMComm, domain.XiMSymm)
		xiP := dom.BCKindForFace(el, domain.XiPComm, domain.XiPSymm)
		etaM := dom.BCKindForFace(el, domain.EtaMComm, domain.EtaMSymm)
		etaP := dom.BCKindForFace(el, domain.EtaPComm, domain.EtaPSymm)
		zetaM := dom.BCKindForFace(el, domain.ZetaMComm, domain.ZetaMSymm)
		zetaP := dom.BCKindForFace(el, domain.ZetaPComm, domain.ZetaPSymm)

		in := kernel.MonoQRegionInputs{
			DelvXi:   dom.DelvXi[el],
			DelvEta:  dom.DelvEta[el],
			DelvZeta: dom.DelvZeta[el],

			DelvXiM:   resolveNeighbourDelv(xiM, dom.DelvXi[el], dom.DelvXi[dom.Lxim[el]]),
			DelvXiP:   resolveNeighbourDelv(xiP, dom.DelvXi[el], dom.DelvXi[dom.Lxip[el]]),
			DelvEtaM:  resolveNeighbourDelv(etaM, dom.DelvEta[el], dom.DelvEta[dom.Letam[el]]),
			DelvEtaP:  resolveNeighbourDelv(etaP, dom.DelvEta[el], dom.DelvEta[dom.Letap[el]]),
			DelvZetaM: resolveNeighbourDelv(zetaM, dom.DelvZeta[el], dom.DelvZeta[dom.Lzetam[el]]),
			DelvZetaP: resolveNeighbourDelv(zetaP, dom.DelvZeta[el], dom.DelvZeta[dom.Lzetap[el]]),

			DelxXi:   dom.DelxXi[el],
			DelxEta:  dom.DelxEta[el],
			DelxZeta: dom.DelxZeta[el],

			Vdov:     dom.Vdov[el],
			ElemMass: dom.ElemMass[el],
			Volo:     dom.Volo[el],
			Vnew:     vnew[el],
		}

		ql, qq := kernel.CalcMonotonicQForElem(in, cfg.MonoqLimiterMult, cfg.MonoqMaxSlope, cfg.QlcMonoq, cfg.QqcMonoq)
		dom.Ql[el] = ql
		dom.Qq[el] = qq
	})

	// dom.Q holds the *previous* cycle's combined viscosity -- this cycle's
	// value isn't written until applyMaterialProperties runs below -- so the
	// qstop bound is checked against dom.Q, matching the original's
	// domain->q[i] post-check, not the dom.Qq just computed above.
	for el := 0; el < dom.NumElem; el++ {
		if cfg.Qstop > 0 && dom.Q[el] > cfg.Qstop {
			return fmt.Errorf("%w: element %d q=%g", ErrQStop, el, dom.Q[el])
		}
	}
	return nil
}

// applyMaterialProperties clamps vnew into [eosvmin,eosvmax] and evaluates
// the equation of state for every element (spec §4.3).
func applyMaterialProperties(dom *domain.Domain, vnew []float64) error {
	cfg := dom.Cfg
	prm := kernel.EOSParams{
		Pmin: cfg.Pmin, Emin: cfg.Emin,
		Eosvmin: cfg.Eosvmin, Eosvmax: cfg.Eosvmax,
		Pcut: cfg.Pcut, Ecut: cfg.Ecut, Qcut: cfg.Qcut,
		Ss4o3: cfg.Ss4o3, Refdens: cfg.Refdens,
	}

	volErr := make([]bool, dom.NumElem)
	kernel.ForEach(dom.NumElem, func(el int) {
		vc := vnew[el]
		if cfg.Eosvmin != 0 && vc < cfg.Eosvmin {
			vc = cfg.Eosvmin
		}
		if cfg.Eosvmax != 0 && vc > cfg.Eosvmax {
			vc = cfg.Eosvmax
		}

		checkV := dom.V[el]
		if cfg.Eosvmin != 0 && checkV < cfg.Eosvmin {
			checkV = cfg.Eosvmin
		}
		if cfg.Eosvmax != 0 && checkV > cfg.Eosvmax {
			checkV = cfg.Eosvmax
		}
		if checkV <= 0 {
			volErr[el] = true
			return
		}

		p, e, q, ss := kernel.EvalEOS(dom.E[el], dom.P[el], dom.Q[el], dom.Qq[el], dom.Ql[el], vc, dom.Delv[el], 0, prm)
		dom.P[el] = p
		dom.E[el] = e
		dom.Q[el] = q
		dom.Ss[el] = ss
	})

	for el, bad := range volErr {
		if bad {
			return fmt.Errorf("lagrange: element %d: %w", el, kernel.ErrVolume)
		}
	}
	return nil
}

// updateVolumes writes vnew into dom.V, snapping values within vcut of 1.0
// exactly to 1.0 (spec §4.3, avoids accumulating rounding noise on a
// near-incompressible element).
func updateVolumes(dom *domain.Domain, vnew []float64, vcut float64) {
	kernel.ForEach(dom.NumElem, func(el int) {
		v := vnew[el]
		if abs(v-1.0) < vcut {
			v = 1.0
		}
		dom.V[el] = v
	})
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// LagrangeElements runs one step's element phase: kinematics, monotonic-Q
// viscosity (with its halo exchange), equation of state, and the volume
// update, in that order (spec §4.2 step 3, §4.3).
func LagrangeElements(dom *domain.Domain, ex *comm.Exchanger) error {
	vnew, err := calcKinematics(dom)
	if err != nil {
		return err
	}
	if err := calcQForElems(dom, ex, vnew); err != nil {
		return err
	}
	if err := applyMaterialProperties(dom, vnew); err != nil {
		return err
	}
	updateVolumes(dom, vnew, dom.Cfg.Vcut)
	return nil
}
