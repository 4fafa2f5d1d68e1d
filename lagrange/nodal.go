// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package lagrange implements the Lagrange leap-frog time step: nodal force
// assembly and kinematics update (LagrangeNodal), element kinematics,
// monotonic-Q viscosity and equation of state (LagrangeElements), and the
// Courant/hydro time-step reduction, driven by Solver.Run. See spec §4.2.
package lagrange

import (
	"github.com/cpmech/lulesh/comm"
	"github.com/cpmech/lulesh/domain"
	"github.com/cpmech/lulesh/kernel"
)

// gatherElemNodes collects one element's 8 nodal values (position or
// velocity) from a node-centered array into element-local storage, the Go
// equivalent of gofem's CollectDomainNodesToElemNodes pattern.
func gatherElemNodes(vals []float64, nodes []int, base int) (out [8]float64) {
	for c := 0; c < 8; c++ {
		out[c] = vals[nodes[base+c]]
	}
	return
}

// calcVolumeForce assembles, for one element, the isotropic stress force on
// its 8 nodes plus the Flanagan-Belytschko hourglass correction, and returns
// the element's volume for the negative-volume check (spec §4.2 step 1, §7
// invariant I1).
func calcVolumeForce(dom *domain.Domain, el int, hgcoef float64) (fx, fy, fz [8]float64, volume float64, err error) {
	base := 8 * el
	x := gatherElemNodes(dom.X, dom.Nodelist, base)
	y := gatherElemNodes(dom.Y, dom.Nodelist, base)
	z := gatherElemNodes(dom.Z, dom.Nodelist, base)

	_, detJ := kernel.ShapeDerivatives(x, y, z)
	volume = detJ
	if volume <= 0 {
		return fx, fy, fz, volume, kernel.ErrVolume
	}

	sig := -(dom.P[el] + dom.Q[el])
	normals := kernel.ElemNodeNormals(x, y, z)
	fx, fy, fz = kernel.StressToNodeForce(normals, sig, sig, sig)

	if hgcoef > 0 {
		xd := gatherElemNodes(dom.Xd, dom.Nodelist, base)
		yd := gatherElemNodes(dom.Yd, dom.Nodelist, base)
		zd := gatherElemNodes(dom.Zd, dom.Nodelist, base)
		determ := dom.Volo[el] * dom.V[el]
		dvdx, dvdy, dvdz := kernel.VolumeDerivative(x, y, z)
		hgx, hgy, hgz := kernel.FBHourglassForce(x, y, z, xd, yd, zd, dvdx, dvdy, dvdz, determ, dom.ElemMass[el], dom.Ss[el], hgcoef)
		for c := 0; c < 8; c++ {
			fx[c] += hgx[c]
			fy[c] += hgy[c]
			fz[c] += hgz[c]
		}
	}
	return
}

// LagrangeNodal runs one step's nodal phase: zero forces, assemble and
// scatter-add element forces, SBN-reduce them across subdomain boundaries,
// turn force into acceleration, pin symmetry planes to zero, integrate
// velocity and position, then assign the updated position/velocity across
// subdomain boundaries via SyncPosVel (spec §4.2 steps 1-2).
func LagrangeNodal(dom *domain.Domain, ex *comm.Exchanger, dt float64) error {
	dom.ZeroForces()

	// element forces are computed in parallel (each element's 8-node result
	// is independent); the scatter-add into the shared nodal arrays below
	// runs single-threaded since neighbouring elements write the same node.
	elemFx := make([][8]float64, dom.NumElem)
	elemFy := make([][8]float64, dom.NumElem)
	elemFz := make([][8]float64, dom.NumElem)
	elemErr := make([]error, dom.NumElem)

	kernel.ForEach(dom.NumElem, func(el int) {
		fx, fy, fz, _, err := calcVolumeForce(dom, el, dom.Cfg.Hgcoef)
		if err != nil {
			elemErr[el] = err
			return
		}
		elemFx[el], elemFy[el], elemFz[el] = fx, fy, fz
	})

	for el, err := range elemErr {
		if err != nil {
			return err
		}
		base := 8 * el
		for c := 0; c < 8; c++ {
			n := dom.Nodelist[base+c]
			dom.Fx[n] += elemFx[el][c]
			dom.Fy[n] += elemFy[el][c]
			dom.Fz[n] += elemFz[el][c]
		}
	}

	ex.SBN([][]float64{dom.Fx, dom.Fy, dom.Fz})

	kernel.ForEach(dom.NumNode, func(n int) {
		invMass := 1.0 / dom.NodalMass[n]
		dom.Xdd[n] = dom.Fx[n] * invMass
		dom.Ydd[n] = dom.Fy[n] * invMass
		dom.Zdd[n] = dom.Fz[n] * invMass
	})

	for _, n := range dom.SymmX {
		dom.Xdd[n] = 0
	}
	for _, n := range dom.SymmY {
		dom.Ydd[n] = 0
	}
	for _, n := range dom.SymmZ {
		dom.Zdd[n] = 0
	}

	ucut := dom.Cfg.Ucut
	integrateVel := func(vel []float64, acc []float64) {
		kernel.ForEach(len(vel), func(n int) {
			v := vel[n] + acc[n]*dt
			if v < 0 && -v < ucut {
				v = 0
			} else if v > 0 && v < ucut {
				v = 0
			}
			vel[n] = v
		})
	}
	integrateVel(dom.Xd, dom.Xdd)
	integrateVel(dom.Yd, dom.Ydd)
	integrateVel(dom.Zd, dom.Zdd)

	kernel.ForEach(dom.NumNode, func(n int) {
		dom.X[n] += dom.Xd[n] * dt
		dom.Y[n] += dom.Yd[n] * dt
		dom.Z[n] += dom.Zd[n] * dt
	})

	ex.SyncPosVel([][]float64{dom.X, dom.Y, dom.Z, dom.Xd, dom.Yd, dom.Zd})

	return nil
}
