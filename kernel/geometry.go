// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import "math"

// ShapeDerivatives computes the 8-node hexahedron's B-matrix columns (the
// per-node shape-function derivatives used for the velocity gradient; see
// VolumeDerivative for the volume gradient) and the Jacobian-determinant volume, per
// spec §4.3. Only the first four columns are independent; columns 4..7 are
// the negations of columns 2,3,0,1 by symmetry.
func ShapeDerivatives(x, y, z [8]float64) (b [3][8]float64, volume float64) {

	fjxxi := .125 * ((x[6] - x[0]) + (x[5] - x[3]) - (x[7] - x[1]) - (x[4] - x[2]))
	fjxet := .125 * ((x[6] - x[0]) - (x[5] - x[3]) + (x[7] - x[1]) - (x[4] - x[2]))
	fjxze := .125 * ((x[6] - x[0]) + (x[5] - x[3]) + (x[7] - x[1]) + (x[4] - x[2]))

	fjyxi := .125 * ((y[6] - y[0]) + (y[5] - y[3]) - (y[7] - y[1]) - (y[4] - y[2]))
	fjyet := .125 * ((y[6] - y[0]) - (y[5] - y[3]) + (y[7] - y[1]) - (y[4] - y[2]))
	fjyze := .125 * ((y[6] - y[0]) + (y[5] - y[3]) + (y[7] - y[1]) + (y[4] - y[2]))

	fjzxi := .125 * ((z[6] - z[0]) + (z[5] - z[3]) - (z[7] - z[1]) - (z[4] - z[2]))
	fjzet := .125 * ((z[6] - z[0]) - (z[5] - z[3]) + (z[7] - z[1]) - (z[4] - z[2]))
	fjzze := .125 * ((z[6] - z[0]) + (z[5] - z[3]) + (z[7] - z[1]) + (z[4] - z[2]))

	// cofactors
	cjxxi := (fjyet * fjzze) - (fjzet * fjyze)
	cjxet := -(fjyxi * fjzze) + (fjzxi * fjyze)
	cjxze := (fjyxi * fjzet) - (fjzxi * fjyet)

	cjyxi := -(fjxet * fjzze) + (fjzet * fjxze)
	cjyet := (fjxxi * fjzze) - (fjzxi * fjxze)
	cjyze := -(fjxxi * fjzet) + (fjzxi * fjxet)

	cjzxi := (fjxet * fjyze) - (fjyet * fjxze)
	cjzet := -(fjxxi * fjyze) + (fjyxi * fjxze)
	cjzze := (fjxxi * fjyet) - (fjyxi * fjxet)

	b[0][0] = -cjxxi - cjxet - cjxze
	b[0][1] = cjxxi - cjxet - cjxze
	b[0][2] = cjxxi + cjxet - cjxze
	b[0][3] = -cjxxi + cjxet - cjxze
	b[0][4] = -b[0][2]
	b[0][5] = -b[0][3]
	b[0][6] = -b[0][0]
	b[0][7] = -b[0][1]

	b[1][0] = -cjyxi - cjyet - cjyze
	b[1][1] = cjyxi - cjyet - cjyze
	b[1][2] = cjyxi + cjyet - cjyze
	b[1][3] = -cjyxi + cjyet - cjyze
	b[1][4] = -b[1][2]
	b[1][5] = -b[1][3]
	b[1][6] = -b[1][0]
	b[1][7] = -b[1][1]

	b[2][0] = -cjzxi - cjzet - cjzze
	b[2][1] = cjzxi - cjzet - cjzze
	b[2][2] = cjzxi + cjzet - cjzze
	b[2][3] = -cjzxi + cjzet - cjzze
	b[2][4] = -b[2][2]
	b[2][5] = -b[2][3]
	b[2][6] = -b[2][0]
	b[2][7] = -b[2][1]

	volume = 8.0 * (fjxet*cjxet + fjyet*cjyet + fjzet*cjzet)
	return
}

// sumElemFaceNormal accumulates one quad face's area-weighted outward
// normal onto its four corner nodes, via the bisector cross product (spec
// §4.2's nodal force assembly).
func sumElemFaceNormal(nx, ny, nz *[8]float64, i0, i1, i2, i3 int, x, y, z [8]float64) {
	bisectX0 := 0.5 * (x[i3] + x[i2] - x[i1] - x[i0])
	bisectY0 := 0.5 * (y[i3] + y[i2] - y[i1] - y[i0])
	bisectZ0 := 0.5 * (z[i3] + z[i2] - z[i1] - z[i0])
	bisectX1 := 0.5 * (x[i2] + x[i1] - x[i3] - x[i0])
	bisectY1 := 0.5 * (y[i2] + y[i1] - y[i3] - y[i0])
	bisectZ1 := 0.5 * (z[i2] + z[i1] - z[i3] - z[i0])

	areaX := 0.25 * (bisectY0*bisectZ1 - bisectZ0*bisectY1)
	areaY := 0.25 * (bisectZ0*bisectX1 - bisectX0*bisectZ1)
	areaZ := 0.25 * (bisectX0*bisectY1 - bisectY0*bisectX1)

	for _, i := range [4]int{i0, i1, i2, i3} {
		nx[i] += areaX
		ny[i] += areaY
		nz[i] += areaZ
	}
}

// ElemNodeNormals returns, for each of the 8 corner nodes, the sum of the
// area-weighted outward normals of its three adjacent faces -- the
// divergence-theorem weight that turns an element's isotropic stress into
// nodal forces (spec §4.2, distinct from the B-matrix ShapeDerivatives
// returns for the velocity gradient).
func ElemNodeNormals(x, y, z [8]float64) (n [3][8]float64) {
	faces := [6][4]int{
		{0, 1, 2, 3},
		{0, 4, 5, 1},
		{1, 5, 6, 2},
		{2, 6, 7, 3},
		{3, 7, 4, 0},
		{4, 7, 6, 5},
	}
	for _, f := range faces {
		sumElemFaceNormal(&n[0], &n[1], &n[2], f[0], f[1], f[2], f[3], x, y, z)
	}
	return
}

// StressToNodeForce contracts an element's isotropic stress (sigma = -(p+q)
// on each axis) with its node normals to give the 8 corner nodal forces
// (spec §4.2).
func StressToNodeForce(n [3][8]float64, sigxx, sigyy, sigzz float64) (fx, fy, fz [8]float64) {
	for i := 0; i < 8; i++ {
		fx[i] = -sigxx * n[0][i]
		fy[i] = -sigyy * n[1][i]
		fz[i] = -sigzz * n[2][i]
	}
	return
}

// tripleProduct is the scalar triple product (a1,a2,a3)·((b1,b2,b3)×(c1,c2,c3)).
func tripleProduct(x1, y1, z1, x2, y2, z2, x3, y3, z3 float64) float64 {
	return x1*(y2*z3-z2*y3) + x2*(z1*y3-y1*z3) + x3*(y1*z2-z1*y2)
}

// ElemVolume computes the hexahedron's volume as a closed-form sum of
// triple products over face diagonals, divided by 12 (spec §4.3).
func ElemVolume(x, y, z [8]float64) float64 {
	const twelveth = 1.0 / 12.0

	dx61, dy61, dz61 := x[6]-x[1], y[6]-y[1], z[6]-z[1]
	dx70, dy70, dz70 := x[7]-x[0], y[7]-y[0], z[7]-z[0]
	dx63, dy63, dz63 := x[6]-x[3], y[6]-y[3], z[6]-z[3]
	dx20, dy20, dz20 := x[2]-x[0], y[2]-y[0], z[2]-z[0]
	dx50, dy50, dz50 := x[5]-x[0], y[5]-y[0], z[5]-z[0]
	dx64, dy64, dz64 := x[6]-x[4], y[6]-y[4], z[6]-z[4]
	dx31, dy31, dz31 := x[3]-x[1], y[3]-y[1], z[3]-z[1]
	dx72, dy72, dz72 := x[7]-x[2], y[7]-y[2], z[7]-z[2]
	dx43, dy43, dz43 := x[4]-x[3], y[4]-y[3], z[4]-z[3]
	dx57, dy57, dz57 := x[5]-x[7], y[5]-y[7], z[5]-z[7]
	dx14, dy14, dz14 := x[1]-x[4], y[1]-y[4], z[1]-z[4]
	dx25, dy25, dz25 := x[2]-x[5], y[2]-y[5], z[2]-z[5]

	volume := tripleProduct(dx31+dx72, dx63, dx20, dy31+dy72, dy63, dy20, dz31+dz72, dz63, dz20) +
		tripleProduct(dx43+dx57, dx64, dx70, dy43+dy57, dy64, dy70, dz43+dz57, dz64, dz70) +
		tripleProduct(dx14+dx25, dx61, dx50, dy14+dy25, dy61, dy50, dz14+dz25, dz61, dz50)

	return volume * twelveth
}

// hourglassGamma is the fixed ±1 pattern of the four hourglass modes
// described in spec §4.3.
var hourglassGamma = [4][8]float64{
	{1, 1, -1, -1, -1, -1, 1, 1},
	{1, -1, -1, 1, -1, 1, 1, -1},
	{1, -1, 1, -1, 1, -1, 1, -1},
	{-1, 1, -1, 1, 1, -1, 1, -1},
}

// voluDer is the closed-form volume-gradient of one node against its three
// neighbouring faces (named for the original VoluDer routine it mirrors):
// twelfth of a signed sum of face-diagonal cross terms.
func voluDer(x0, x1, x2, x3, x4, x5, y0, y1, y2, y3, y4, y5, z0, z1, z2, z3, z4, z5 float64) (dvdx, dvdy, dvdz float64) {
	const twelfth = 1.0 / 12.0

	dvdx = (y1+y2)*(z0+z1) - (y0+y1)*(z1+z2) +
		(y0+y4)*(z3+z4) - (y3+y4)*(z0+z4) -
		(y2+y5)*(z3+z5) + (y3+y5)*(z2+z5)
	dvdy = -(x1+x2)*(z0+z1) + (x0+x1)*(z1+z2) -
		(x0+x4)*(z3+z4) + (x3+x4)*(z0+z4) +
		(x2+x5)*(z3+z5) - (x3+x5)*(z2+z5)
	dvdz = -(y1+y2)*(x0+x1) + (y0+y1)*(x1+x2) -
		(y0+y4)*(x3+x4) + (y3+y4)*(x0+x4) +
		(y2+y5)*(x3+x5) - (y3+y5)*(x2+x5)

	dvdx *= twelfth
	dvdy *= twelfth
	dvdz *= twelfth
	return
}

// VolumeDerivative returns, for each of the 8 corner nodes, the closed-form
// gradient of the element volume with respect to that node's coordinates --
// the quantity the Flanagan-Belytschko hourglass correction contracts
// against (spec §4.3 "subtract its volume-gradient projection"). This is
// distinct from ShapeDerivatives' Jacobian-cofactor B-matrix: the two
// coincide for an axis-aligned cube but diverge for any deformed hexahedron,
// so hourglass control must use this gradient, not the B-matrix.
func VolumeDerivative(x, y, z [8]float64) (dvdx, dvdy, dvdz [8]float64) {
	dvdx[0], dvdy[0], dvdz[0] = voluDer(
		x[1], x[2], x[3], x[4], x[5], x[7],
		y[1], y[2], y[3], y[4], y[5], y[7],
		z[1], z[2], z[3], z[4], z[5], z[7])
	dvdx[3], dvdy[3], dvdz[3] = voluDer(
		x[0], x[1], x[2], x[7], x[4], x[6],
		y[0], y[1], y[2], y[7], y[4], y[6],
		z[0], z[1], z[2], z[7], z[4], z[6])
	dvdx[2], dvdy[2], dvdz[2] = voluDer(
		x[3], x[0], x[1], x[6], x[7], x[5],
		y[3], y[0], y[1], y[6], y[7], y[5],
		z[3], z[0], z[1], z[6], z[7], z[5])
	dvdx[1], dvdy[1], dvdz[1] = voluDer(
		x[2], x[3], x[0], x[5], x[6], x[4],
		y[2], y[3], y[0], y[5], y[6], y[4],
		z[2], z[3], z[0], z[5], z[6], z[4])
	dvdx[4], dvdy[4], dvdz[4] = voluDer(
		x[7], x[6], x[5], x[0], x[3], x[1],
		y[7], y[6], y[5], y[0], y[3], y[1],
		z[7], z[6], z[5], z[0], z[3], z[1])
	dvdx[5], dvdy[5], dvdz[5] = voluDer(
		x[4], x[7], x[6], x[1], x[0], x[2],
		y[4], y[7], y[6], y[1], y[0], y[2],
		z[4], z[7], z[6], z[1], z[0], z[2])
	dvdx[6], dvdy[6], dvdz[6] = voluDer(
		x[5], x[4], x[7], x[2], x[1], x[3],
		y[5], y[4], y[7], y[2], y[1], y[3],
		z[5], z[4], z[7], z[2], z[1], z[3])
	dvdx[7], dvdy[7], dvdz[7] = voluDer(
		x[6], x[5], x[4], x[3], x[2], x[0],
		y[6], y[5], y[4], y[3], y[2], y[0],
		z[6], z[5], z[4], z[3], z[2], z[0])
	return
}

// FBHourglassForce computes the Flanagan-Belytschko anti-hourglass nodal
// force correction for one element: four hourglass modes contract with
// nodal coordinates to yield hourgam, which is contracted again with
// velocities and scaled by -hgcoef*0.01*ss*mass/cbrt(volume) (spec §4.3).
// dvdx/dvdy/dvdz is the per-node volume gradient from VolumeDerivative, not
// ShapeDerivatives' B-matrix.
func FBHourglassForce(x, y, z, xd, yd, zd [8]float64, dvdx, dvdy, dvdz [8]float64, volume, mass, ss, hgcoef float64) (fx, fy, fz [8]float64) {
	if volume <= 0 {
		return
	}
	volinv := 1.0 / volume

	var hourgam [8][4]float64
	for m := 0; m < 4; m++ {
		g := hourglassGamma[m]
		var hourmodx, hourmody, hourmodz float64
		for n := 0; n < 8; n++ {
			hourmodx += x[n] * g[n]
			hourmody += y[n] * g[n]
			hourmodz += z[n] * g[n]
		}
		for n := 0; n < 8; n++ {
			hourgam[n][m] = g[n] - volinv*(dvdx[n]*hourmodx+dvdy[n]*hourmody+dvdz[n]*hourmodz)
		}
	}

	coefficient := -hgcoef * 0.01 * ss * mass / math.Cbrt(volume)

	contract := func(vel [8]float64) [8]float64 {
		var hxx [4]float64
		for m := 0; m < 4; m++ {
			for n := 0; n < 8; n++ {
				hxx[m] += hourgam[n][m] * vel[n]
			}
		}
		var out [8]float64
		for n := 0; n < 8; n++ {
			var s float64
			for m := 0; m < 4; m++ {
				s += hourgam[n][m] * hxx[m]
			}
			out[n] = coefficient * s
		}
		return out
	}

	fx = contract(xd)
	fy = contract(yd)
	fz = contract(zd)
	return
}
