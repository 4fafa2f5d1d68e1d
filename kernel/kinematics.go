// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import "math"

// areaFace is the squared-area proxy used by CharacteristicLength: for a
// planar parallelogram face it equals 16 times the squared face area (the
// 4*volume/sqrt(...) in CharacteristicLength removes that factor); for a
// warped face it is a stable closed-form substitute, following spec §4.3.
func areaFace(x0, x1, x2, x3, y0, y1, y2, y3, z0, z1, z2, z3 float64) float64 {
	fx := (x2 - x0) - (x3 - x1)
	fy := (y2 - y0) - (y3 - y1)
	fz := (z2 - z0) - (z3 - z1)
	gx := (x2 - x0) + (x3 - x1)
	gy := (y2 - y0) + (y3 - y1)
	gz := (z2 - z0) + (z3 - z1)
	return (fx*fx+fy*fy+fz*fz)*(gx*gx+gy*gy+gz*gz) - (fx*gx+fy*gy+fz*gz)*(fx*gx+fy*gy+fz*gz)
}

// CharacteristicLength returns the element's characteristic length, the
// largest of its six face areas translated into a length scale via the
// element volume (spec §4.3 / Courant-limit input).
func CharacteristicLength(x, y, z [8]float64, volume float64) float64 {
	faces := [6][4]int{
		{0, 1, 2, 3},
		{4, 5, 6, 7},
		{0, 1, 5, 4},
		{1, 2, 6, 5},
		{2, 3, 7, 6},
		{3, 0, 4, 7},
	}
	var charLength float64
	for _, f := range faces {
		a := areaFace(
			x[f[0]], x[f[1]], x[f[2]], x[f[3]],
			y[f[0]], y[f[1]], y[f[2]], y[f[3]],
			z[f[0]], z[f[1]], z[f[2]], z[f[3]])
		if a > charLength {
			charLength = a
		}
	}
	return 4.0 * volume / math.Sqrt(charLength)
}

// VelocityGradient computes the symmetric velocity-gradient tensor D (in
// Voigt order [dxx,dyy,dzz,dyz,dzx,dxy]) from nodal velocities and the
// B-matrix evaluated at the midstep geometry, scaled by the Jacobian
// determinant detJ, following spec §4.2 step 1.
func VelocityGradient(xd, yd, zd [8]float64, b [3][8]float64, detJ float64) (d [6]float64) {
	invDetJ := 1.0 / detJ
	pfx, pfy, pfz := b[0], b[1], b[2]

	d[0] = invDetJ * (pfx[0]*(xd[0]-xd[6]) + pfx[1]*(xd[1]-xd[7]) + pfx[2]*(xd[2]-xd[4]) + pfx[3]*(xd[3]-xd[5]))
	d[1] = invDetJ * (pfy[0]*(yd[0]-yd[6]) + pfy[1]*(yd[1]-yd[7]) + pfy[2]*(yd[2]-yd[4]) + pfy[3]*(yd[3]-yd[5]))
	d[2] = invDetJ * (pfz[0]*(zd[0]-zd[6]) + pfz[1]*(zd[1]-zd[7]) + pfz[2]*(zd[2]-zd[4]) + pfz[3]*(zd[3]-zd[5]))

	dyddx := invDetJ * (pfx[0]*(yd[0]-yd[6]) + pfx[1]*(yd[1]-yd[7]) + pfx[2]*(yd[2]-yd[4]) + pfx[3]*(yd[3]-yd[5]))
	dxddy := invDetJ * (pfy[0]*(xd[0]-xd[6]) + pfy[1]*(xd[1]-xd[7]) + pfy[2]*(xd[2]-xd[4]) + pfy[3]*(xd[3]-xd[5]))
	dzddx := invDetJ * (pfx[0]*(zd[0]-zd[6]) + pfx[1]*(zd[1]-zd[7]) + pfx[2]*(zd[2]-zd[4]) + pfx[3]*(zd[3]-zd[5]))
	dxddz := invDetJ * (pfz[0]*(xd[0]-xd[6]) + pfz[1]*(xd[1]-xd[7]) + pfz[2]*(xd[2]-xd[4]) + pfz[3]*(xd[3]-xd[5]))
	dzddy := invDetJ * (pfy[0]*(zd[0]-zd[6]) + pfy[1]*(zd[1]-zd[7]) + pfy[2]*(zd[2]-zd[4]) + pfy[3]*(zd[3]-zd[5]))
	dyddz := invDetJ * (pfz[0]*(yd[0]-yd[6]) + pfz[1]*(yd[1]-yd[7]) + pfz[2]*(yd[2]-yd[4]) + pfz[3]*(yd[3]-yd[5]))

	d[5] = 0.5 * (dxddy + dyddx)
	d[4] = 0.5 * (dxddz + dzddx)
	d[3] = 0.5 * (dzddy + dyddz)
	return
}

// ElemKinematics is the per-element result of CalcKinematicsForElems (spec
// §4.2 step 1): new relative volume, volume delta, characteristic length,
// and the deviatoric principal strains after vdov has been subtracted
// (step 2).
type ElemKinematics struct {
	Vnew     float64
	Delv     float64
	Arealg   float64
	Vdov     float64
	Strain   [3]float64 // deviatoric dxx,dyy,dzz
	ShapeB   [3][8]float64
	DetJ     float64
}

// CalcKinematics computes one element's kinematics for one time step. x,y,z
// are the element's 8 nodal coordinates at the END of the step (already
// advanced by the nodal phase, so their volume gives Vnew); xd,yd,zd
// its nodal velocities; v is the element's current relative volume and volo
// its reference volume; dt is the step size. Per spec §4.2 step 1, nodes are
// back-projected to the midstep position by -dt/2*v before the shape
// derivatives used for the velocity gradient are recomputed.
func CalcKinematics(x, y, z, xd, yd, zd [8]float64, v, volo, dt float64) (ElemKinematics, error) {
	var out ElemKinematics

	volume := ElemVolume(x, y, z)
	out.Vnew = volume / volo
	out.Delv = out.Vnew - v
	if out.Vnew <= 0 {
		return out, errVolume
	}

	out.Arealg = CharacteristicLength(x, y, z, volume)

	dt2 := 0.5 * dt
	var xm, ym, zm [8]float64
	for i := 0; i < 8; i++ {
		xm[i] = x[i] - dt2*xd[i]
		ym[i] = y[i] - dt2*yd[i]
		zm[i] = z[i] - dt2*zd[i]
	}

	b, detJ := ShapeDerivatives(xm, ym, zm)
	out.ShapeB = b
	out.DetJ = detJ

	d := VelocityGradient(xd, yd, zd, b, detJ)
	out.Vdov = d[0] + d[1] + d[2]
	vdovThird := out.Vdov / 3.0
	out.Strain[0] = d[0] - vdovThird
	out.Strain[1] = d[1] - vdovThird
	out.Strain[2] = d[2] - vdovThird

	return out, nil
}
