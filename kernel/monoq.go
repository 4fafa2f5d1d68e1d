// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import "math"

const monoQTiny = 1.0e-36

// MonotonicQGradients computes, for one element, the three "delx" length
// scales and three "delv" velocity-gradient projections along the
// logical xi/eta/zeta axes (spec §4.3, monotonic-Q gradient step). x,y,z
// are the element's 8 nodal coordinates at the new (end-of-step) position;
// xd,yd,zd its nodal velocities; volo/vnew its reference and new relative
// volume.
func MonotonicQGradients(x, y, z, xd, yd, zd [8]float64, volo, vnew float64) (delxXi, delxEta, delxZeta, delvXi, delvEta, delvZeta float64) {
	vol := volo * vnew
	norm := 1.0 / (vol + monoQTiny)

	dxj := -0.25 * ((x[0] + x[1] + x[5] + x[4]) - (x[3] + x[2] + x[6] + x[7]))
	dyj := -0.25 * ((y[0] + y[1] + y[5] + y[4]) - (y[3] + y[2] + y[6] + y[7]))
	dzj := -0.25 * ((z[0] + z[1] + z[5] + z[4]) - (z[3] + z[2] + z[6] + z[7]))

	dxi := 0.25 * ((x[1] + x[2] + x[6] + x[5]) - (x[0] + x[3] + x[7] + x[4]))
	dyi := 0.25 * ((y[1] + y[2] + y[6] + y[5]) - (y[0] + y[3] + y[7] + y[4]))
	dzi := 0.25 * ((z[1] + z[2] + z[6] + z[5]) - (z[0] + z[3] + z[7] + z[4]))

	dxk := 0.25 * ((x[4] + x[5] + x[6] + x[7]) - (x[0] + x[1] + x[2] + x[3]))
	dyk := 0.25 * ((y[4] + y[5] + y[6] + y[7]) - (y[0] + y[1] + y[2] + y[3]))
	dzk := 0.25 * ((z[4] + z[5] + z[6] + z[7]) - (z[0] + z[1] + z[2] + z[3]))

	// zeta: i cross j
	ax := dyi*dzj - dzi*dyj
	ay := dzi*dxj - dxi*dzj
	az := dxi*dyj - dyi*dxj
	delxZeta = vol / math.Sqrt(ax*ax+ay*ay+az*az+monoQTiny)
	ax, ay, az = ax*norm, ay*norm, az*norm
	dxv := 0.25 * ((xd[4] + xd[5] + xd[6] + xd[7]) - (xd[0] + xd[1] + xd[2] + xd[3]))
	dyv := 0.25 * ((yd[4] + yd[5] + yd[6] + yd[7]) - (yd[0] + yd[1] + yd[2] + yd[3]))
	dzv := 0.25 * ((zd[4] + zd[5] + zd[6] + zd[7]) - (zd[0] + zd[1] + zd[2] + zd[3]))
	delvZeta = ax*dxv + ay*dyv + az*dzv

	// xi: j cross k
	ax = dyj*dzk - dzj*dyk
	ay = dzj*dxk - dxj*dzk
	az = dxj*dyk - dyj*dxk
	delxXi = vol / math.Sqrt(ax*ax+ay*ay+az*az+monoQTiny)
	ax, ay, az = ax*norm, ay*norm, az*norm
	dxv = 0.25 * ((xd[1] + xd[2] + xd[6] + xd[5]) - (xd[0] + xd[3] + xd[7] + xd[4]))
	dyv = 0.25 * ((yd[1] + yd[2] + yd[6] + yd[5]) - (yd[0] + yd[3] + yd[7] + yd[4]))
	dzv = 0.25 * ((zd[1] + zd[2] + zd[6] + zd[5]) - (zd[0] + zd[3] + zd[7] + zd[4]))
	delvXi = ax*dxv + ay*dyv + az*dzv

	// eta: k cross i
	ax = dyk*dzi - dzk*dyi
	ay = dzk*dxi - dxk*dzi
	az = dxk*dyi - dyk*dxi
	delxEta = vol / math.Sqrt(ax*ax+ay*ay+az*az+monoQTiny)
	ax, ay, az = ax*norm, ay*norm, az*norm
	dxv = -0.25 * ((xd[0] + xd[1] + xd[5] + xd[4]) - (xd[3] + xd[2] + xd[6] + xd[7]))
	dyv = -0.25 * ((yd[0] + yd[1] + yd[5] + yd[4]) - (yd[3] + yd[2] + yd[6] + yd[7]))
	dzv = -0.25 * ((zd[0] + zd[1] + zd[5] + zd[4]) - (zd[3] + zd[2] + zd[6] + zd[7]))
	delvEta = ax*dxv + ay*dyv + az*dzv

	return
}

// NeighbourBC bundles the six neighbour-selection decisions
// (BCInterior/BCSymm/BCFree) for one element's six faces. CalcMonotonicQForElem
// does not read it, and lagrange's calcQForElems leaves it zero: the caller
// applies BCKindForFace itself and passes the already-resolved neighbour values.
type NeighbourBC struct {
	XiM, XiP, EtaM, EtaP, ZetaM, ZetaP int // domain.BCKind values
}

// MonoQRegionInputs is everything CalcMonotonicQForElem needs for one
// element, gathered by the caller (which alone knows how to follow
// Lxim/Lxip/... and reach into ghost slots written by the MonoQ halo
// exchange).
type MonoQRegionInputs struct {
	BC NeighbourBC

	DelvXi, DelvEta, DelvZeta          float64 // this element
	DelvXiM, DelvXiP                   float64 // neighbour/self per BC, already resolved by caller
	DelvEtaM, DelvEtaP                 float64
	DelvZetaM, DelvZetaP               float64
	DelxXi, DelxEta, DelxZeta          float64
	Vdov, ElemMass, Volo, Vnew         float64
}

// CalcMonotonicQForElem computes one element's linear (ql) and quadratic
// (qq) artificial-viscosity terms from its resolved neighbour deltas, per
// spec §4.3's limiter-then-viscosity pipeline. The caller has already
// applied the BCInterior/BCSymm/BCFree selection (spec's three-way switch
// per face, each producible locally, via the SYMM mirror, or as zero for
// FREE) and passed the resulting DelvXiM/DelvXiP etc.
func CalcMonotonicQForElem(in MonoQRegionInputs, limiterMult, maxSlope, qlcMonoq, qqcMonoq float64) (ql, qq float64) {
	phi := func(delvm, delvp, delv float64) float64 {
		norm := 1.0 / (delv + monoQTiny)
		dm, dp := delvm*norm, delvp*norm
		phi := 0.5 * (dm + dp)
		dm *= limiterMult
		dp *= limiterMult
		if dm < phi {
			phi = dm
		}
		if dp < phi {
			phi = dp
		}
		if phi < 0 {
			phi = 0
		}
		if phi > maxSlope {
			phi = maxSlope
		}
		return phi
	}

	phiXi := phi(in.DelvXiM, in.DelvXiP, in.DelvXi)
	phiEta := phi(in.DelvEtaM, in.DelvEtaP, in.DelvEta)
	phiZeta := phi(in.DelvZetaM, in.DelvZetaP, in.DelvZeta)

	if in.Vdov > 0 {
		return 0, 0
	}

	delvxxi := in.DelvXi * in.DelxXi
	delvxeta := in.DelvEta * in.DelxEta
	delvxzeta := in.DelvZeta * in.DelxZeta

	if delvxxi > 0 {
		delvxxi = 0
	}
	if delvxeta > 0 {
		delvxeta = 0
	}
	if delvxzeta > 0 {
		delvxzeta = 0
	}

	rho := in.ElemMass / (in.Volo * in.Vnew)

	ql = -qlcMonoq * rho * (delvxxi*(1-phiXi) + delvxeta*(1-phiEta) + delvxzeta*(1-phiZeta))
	qq = qqcMonoq * rho * (delvxxi*delvxxi*(1-phiXi*phiXi) + delvxeta*delvxeta*(1-phiEta*phiEta) + delvxzeta*delvxzeta*(1-phiZeta*phiZeta))
	return
}
