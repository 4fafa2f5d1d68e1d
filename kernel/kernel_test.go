// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

// unitCube returns the standard 8-node hexahedron ordering for the unit
// cube [0,1]^3, matching domain.buildConnectivity's corner order.
func unitCube() (x, y, z [8]float64) {
	x = [8]float64{0, 1, 1, 0, 0, 1, 1, 0}
	y = [8]float64{0, 0, 1, 1, 0, 0, 1, 1}
	z = [8]float64{0, 0, 0, 0, 1, 1, 1, 1}
	return
}

func TestElemVolumeUnitCube(tst *testing.T) {

	chk.PrintTitle("kernel01. unit cube has unit volume")

	x, y, z := unitCube()
	v := ElemVolume(x, y, z)
	chk.Scalar(tst, "volume", 1e-14, v, 1.0)
}

func TestShapeDerivativesVolumeMatchesElemVolume(tst *testing.T) {

	chk.PrintTitle("kernel02. ShapeDerivatives' Jacobian volume agrees with ElemVolume on a unit cube")

	x, y, z := unitCube()
	_, volJ := ShapeDerivatives(x, y, z)
	volClosed := ElemVolume(x, y, z)
	chk.Scalar(tst, "volume", 1e-12, volJ, volClosed)
}

func TestHourglassForceZeroWhenCoefficientZero(tst *testing.T) {

	chk.PrintTitle("kernel03. hourglass correction vanishes when hgcoef is zero")

	x, y, z := unitCube()
	_, vol := ShapeDerivatives(x, y, z)
	dvdx, dvdy, dvdz := VolumeDerivative(x, y, z)
	xd := [8]float64{0.1, 0.2, -0.1, 0.05, 0.3, -0.2, 0.15, 0.0}
	yd := [8]float64{0.0, 0.1, 0.2, -0.1, 0.05, 0.3, -0.2, 0.15}
	zd := [8]float64{0.15, 0.0, 0.1, 0.2, -0.1, 0.05, 0.3, -0.2}

	fx, fy, fz := FBHourglassForce(x, y, z, xd, yd, zd, dvdx, dvdy, dvdz, vol, 1.0, 1.0, 0.0)
	for i := 0; i < 8; i++ {
		chk.Scalar(tst, "fx", 1e-14, fx[i], 0)
		chk.Scalar(tst, "fy", 1e-14, fy[i], 0)
		chk.Scalar(tst, "fz", 1e-14, fz[i], 0)
	}
}

func TestHourglassForceZeroOnRigidTranslation(tst *testing.T) {

	chk.PrintTitle("kernel04. hourglass correction vanishes for a rigid-body velocity")

	x, y, z := unitCube()
	_, vol := ShapeDerivatives(x, y, z)
	dvdx, dvdy, dvdz := VolumeDerivative(x, y, z)
	var xd, yd, zd [8]float64
	for i := range xd {
		xd[i], yd[i], zd[i] = 1.0, 2.0, -3.0 // uniform velocity, no hourglass pattern
	}
	fx, fy, fz := FBHourglassForce(x, y, z, xd, yd, zd, dvdx, dvdy, dvdz, vol, 1.0, 1.0, 3.0)
	for i := 0; i < 8; i++ {
		chk.Scalar(tst, "fx", 1e-12, fx[i], 0)
		chk.Scalar(tst, "fy", 1e-12, fy[i], 0)
		chk.Scalar(tst, "fz", 1e-12, fz[i], 0)
	}
}

func TestHourglassForceOnPerturbedHexUsesVolumeGradient(tst *testing.T) {

	chk.PrintTitle("kernel04b. hourglass force on a deformed hex matches the volume-gradient basis, not the B-matrix")

	// a non-axis-aligned hex: every node displaced off its unit-cube
	// position, so the B-matrix (ShapeDerivatives) and the volume gradient
	// (VolumeDerivative) provably diverge -- they only coincide for a
	// perfect cube.
	x := [8]float64{0.05, 1.1, 0.95, -0.08, 0.1, 1.15, 1.3, -0.05}
	y := [8]float64{-0.05, 0.1, 1.05, 0.9, 0.0, 0.08, 1.2, 1.1}
	z := [8]float64{0.02, -0.03, 0.07, 0.01, 1.1, 0.95, 1.25, 0.9}
	xd := [8]float64{0.1, 0.2, -0.1, 0.05, 0.3, -0.2, 0.15, 0.0}
	yd := [8]float64{0.0, 0.1, 0.2, -0.1, 0.05, 0.3, -0.2, 0.15}
	zd := [8]float64{0.15, 0.0, 0.1, 0.2, -0.1, 0.05, 0.3, -0.2}

	b, vol := ShapeDerivatives(x, y, z)
	dvdx, dvdy, dvdz := VolumeDerivative(x, y, z)

	// the two gradient bases must actually differ on this element --
	// otherwise the test would not exercise the bug this guards against.
	if dvdx[0] == b[0][0] {
		tst.Fatalf("expected B-matrix and volume gradient to diverge on a deformed hex, both gave %g", b[0][0])
	}

	const mass, ss, hgcoef = 2.0, 1.5, 3.0

	// expected values from an independent reimplementation of VoluDer and
	// CalcFBHourglassForceForElems against this exact element.
	wantFx := [8]float64{
		0.008208879513937003, -0.11116204127075184, 0.0556033498867988, 0.0028196722531921552,
		-0.09838384502638678, 0.19206332868385304, -0.10680718264804157, 0.05765783860739917,
	}
	wantFy := [8]float64{
		0.06975928025391108, 0.02354863331804423, -0.10947646661102081, 0.07134410795197185,
		0.02512345074367713, -0.12150353611932024, 0.16262778736568195, -0.12142325690294523,
	}
	wantFz := [8]float64{
		-0.09868612208160793, 0.09186637241774487, 0.053559630768854206, -0.09235890910853344,
		0.01531292754379454, 0.008247226060737876, -0.12167838004479319, 0.1437372544438031,
	}

	fx, fy, fz := FBHourglassForce(x, y, z, xd, yd, zd, dvdx, dvdy, dvdz, vol, mass, ss, hgcoef)
	for i := 0; i < 8; i++ {
		chk.Scalar(tst, "fx", 1e-9, fx[i], wantFx[i])
		chk.Scalar(tst, "fy", 1e-9, fy[i], wantFy[i])
		chk.Scalar(tst, "fz", 1e-9, fz[i], wantFz[i])
	}
}

func TestElemNodeNormalsStressForceIsSelfEquilibrated(tst *testing.T) {

	chk.PrintTitle("kernel05. a closed element's node normals sum to zero (divergence theorem)")

	x, y, z := unitCube()
	n := ElemNodeNormals(x, y, z)
	fx, fy, fz := StressToNodeForce(n, -1, -1, -1)

	var sx, sy, sz float64
	for i := 0; i < 8; i++ {
		sx += fx[i]
		sy += fy[i]
		sz += fz[i]
	}
	chk.Scalar(tst, "sum fx", 1e-12, sx, 0)
	chk.Scalar(tst, "sum fy", 1e-12, sy, 0)
	chk.Scalar(tst, "sum fz", 1e-12, sz, 0)
}

func TestCalcKinematicsStationaryElementHasZeroVdov(tst *testing.T) {

	chk.PrintTitle("kernel06. a motionless element has zero Delv and zero Vdov")

	x, y, z := unitCube()
	var xd, yd, zd [8]float64
	out, err := CalcKinematics(x, y, z, xd, yd, zd, 1.0, 1.0, 1.0e-3)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	chk.Scalar(tst, "Vnew", 1e-13, out.Vnew, 1.0)
	chk.Scalar(tst, "Delv", 1e-13, out.Delv, 0)
	chk.Scalar(tst, "Vdov", 1e-10, out.Vdov, 0)
}

func TestCalcKinematicsRejectsCollapsedVolume(tst *testing.T) {

	chk.PrintTitle("kernel07. a degenerate (zero-volume) element reports ErrVolume")

	var x, y, z, xd, yd, zd [8]float64 // all nodes coincide at the origin
	_, err := CalcKinematics(x, y, z, xd, yd, zd, 1.0, 1.0, 1.0e-3)
	if !IsVolumeError(err) {
		tst.Fatalf("expected ErrVolume, got %v", err)
	}
}

func TestCalcMonotonicQForElemZeroWhenExpanding(tst *testing.T) {

	chk.PrintTitle("kernel08. an expanding element (Vdov>0) has zero artificial viscosity")

	in := MonoQRegionInputs{
		Vdov: 1.0, // expanding
		Volo: 1.0,
		Vnew: 1.1,
	}
	ql, qq := CalcMonotonicQForElem(in, 2.0, 1.0, 0.5, 2.0/3.0)
	chk.Scalar(tst, "ql", 1e-14, ql, 0)
	chk.Scalar(tst, "qq", 1e-14, qq, 0)
}

func TestCalcMonotonicQForElemPositiveWhenCompressing(tst *testing.T) {

	chk.PrintTitle("kernel09. a compressing element (Vdov<0) has non-negative qq")

	in := MonoQRegionInputs{
		Vdov:      -1.0,
		DelvXi:    -0.2,
		DelvEta:   -0.2,
		DelvZeta:  -0.2,
		DelxXi:    1.0,
		DelxEta:   1.0,
		DelxZeta:  1.0,
		ElemMass:  1.0,
		Volo:      1.0,
		Vnew:      0.9,
	}
	_, qq := CalcMonotonicQForElem(in, 2.0, 1.0, 0.5, 2.0/3.0)
	if qq < 0 {
		tst.Errorf("expected qq >= 0 for a compressing element, got %g", qq)
	}
}

func TestEvalEOSZeroEnergyGivesZeroPressure(tst *testing.T) {

	chk.PrintTitle("kernel10. an element at rest with zero energy has zero pressure and viscosity")

	prm := EOSParams{
		Eosvmin: 1.0e-9,
		Eosvmax: 1.0e9,
		Pcut:    1.0e-7,
		Ecut:    1.0e-7,
		Qcut:    1.0e-7,
		Ss4o3:   4.0 / 3.0,
		Refdens: 1.0,
		Emin:    -1.0e15,
	}
	p, e, q, ss := EvalEOS(0, 0, 0, 0, 0, 1.0, 0, 0, prm)
	chk.Scalar(tst, "pressure", 1e-12, p, 0)
	chk.Scalar(tst, "energy", 1e-12, e, 0)
	chk.Scalar(tst, "viscosity", 1e-12, q, 0)
	if ss < 0 {
		tst.Errorf("sound speed should never be negative, got %g", ss)
	}
}

func TestEvalEOSPositiveEnergyGivesPositivePressure(tst *testing.T) {

	chk.PrintTitle("kernel11. an element with positive energy and no volume change has positive pressure")

	prm := EOSParams{
		Eosvmin: 1.0e-9,
		Eosvmax: 1.0e9,
		Pcut:    1.0e-7,
		Ecut:    1.0e-7,
		Qcut:    1.0e-7,
		Ss4o3:   4.0 / 3.0,
		Refdens: 1.0,
		Emin:    -1.0e15,
	}
	p, _, _, ss := EvalEOS(1.0, 0, 0, 0, 0, 1.0, 0, 0, prm)
	if p <= 0 {
		tst.Errorf("expected positive pressure, got %g", p)
	}
	if ss <= 0 {
		tst.Errorf("expected positive sound speed, got %g", ss)
	}
}
