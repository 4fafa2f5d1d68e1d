// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package domain

import (
	"testing"

	"github.com/cpmech/lulesh/topo"

	"github.com/cpmech/gosl/chk"
)

func newTestDomain(nx, rank, nproc int) *Domain {
	cfg := DefaultConfig()
	cfg.Nx = nx
	cfg.Tp = 1
	for p := 1; p*p*p < nproc; p++ {
		cfg.Tp = p + 1
	}
	tp := topo.Build(rank, nproc)
	return NewDomain(cfg, tp)
}

func TestNewDomainDimensions(tst *testing.T) {

	chk.PrintTitle("domain01. element and node counts follow nx")

	dom := newTestDomain(3, 0, 1)
	chk.IntAssert(dom.NumElem, 27)
	chk.IntAssert(dom.NumNode, 64)
	chk.IntAssert(len(dom.Nodelist), 8*27)
}

func TestConnectivityCornerOrder(tst *testing.T) {

	chk.PrintTitle("domain02. element 0's nodes follow the standard hex ordering")

	dom := newTestDomain(2, 0, 1)
	ny := dom.Nx + 1
	nodeIdx := func(i, j, k int) int { return i + j*ny + k*ny*ny }
	want := [8]int{
		nodeIdx(0, 0, 0), nodeIdx(1, 0, 0), nodeIdx(1, 1, 0), nodeIdx(0, 1, 0),
		nodeIdx(0, 0, 1), nodeIdx(1, 0, 1), nodeIdx(1, 1, 1), nodeIdx(0, 1, 1),
	}
	for c := 0; c < 8; c++ {
		if dom.Nodelist[c] != want[c] {
			tst.Errorf("corner %d: got %d want %d", c, dom.Nodelist[c], want[c])
		}
	}
}

func TestBoundaryMaskSingleRankOuterFacesSymmOrFree(tst *testing.T) {

	chk.PrintTitle("domain03. single-rank run has COMM bits only on faces shared by two of its own elements")

	dom := newTestDomain(3, 0, 1)
	nx := dom.Nx
	for k := 0; k < nx; k++ {
		for j := 0; j < nx; j++ {
			for i := 0; i < nx; i++ {
				el := i + j*nx + k*nx*nx
				mask := dom.ElemBC[el]
				faces := []struct {
					interior bool
					commBit  int
				}{
					{i > 0, XiMComm}, {i < nx-1, XiPComm},
					{j > 0, EtaMComm}, {j < nx-1, EtaPComm},
					{k > 0, ZetaMComm}, {k < nx-1, ZetaPComm},
				}
				for _, f := range faces {
					if (mask&f.commBit != 0) != f.interior {
						tst.Errorf("element %d: COMM bit %#x set=%v, want %v (no cross-rank faces on a single rank), mask=%#x", el, f.commBit, mask&f.commBit != 0, f.interior, mask)
					}
				}
			}
		}
	}
}

func TestBoundaryMaskMinCornerIsSymm(tst *testing.T) {

	chk.PrintTitle("domain04. element 0 sits on all three symmetry planes")

	dom := newTestDomain(3, 0, 1)
	kind := dom.BCKindForFace(0, XiMComm, XiMSymm)
	if kind != BCSymm {
		tst.Errorf("-x face of element 0: got %v want BCSymm", kind)
	}
	kind = dom.BCKindForFace(0, EtaMComm, EtaMSymm)
	if kind != BCSymm {
		tst.Errorf("-y face of element 0: got %v want BCSymm", kind)
	}
	kind = dom.BCKindForFace(0, ZetaMComm, ZetaMSymm)
	if kind != BCSymm {
		tst.Errorf("-z face of element 0: got %v want BCSymm", kind)
	}
}

func TestBoundaryMaskMaxCornerIsFree(tst *testing.T) {

	chk.PrintTitle("domain04b. the far corner element's outer +x/+y/+z faces are free, not symmetry")

	dom := newTestDomain(3, 0, 1)
	farEl := dom.NumElem - 1 // (i,j,k) = (nx-1,nx-1,nx-1), the max corner
	kind := dom.BCKindForFace(farEl, XiPComm, XiPSymm)
	if kind != BCFree {
		tst.Errorf("+x face of far-corner element: got %v want BCFree", kind)
	}
	kind = dom.BCKindForFace(farEl, EtaPComm, EtaPSymm)
	if kind != BCFree {
		tst.Errorf("+y face of far-corner element: got %v want BCFree", kind)
	}
	kind = dom.BCKindForFace(farEl, ZetaPComm, ZetaPSymm)
	if kind != BCFree {
		tst.Errorf("+z face of far-corner element: got %v want BCFree", kind)
	}
}

func TestInitialEnergyDepositOnOriginSubdomainOnly(tst *testing.T) {

	chk.PrintTitle("domain05. Sedov energy deposit lands on element 0 of the origin subdomain only")

	dom0 := newTestDomain(3, 0, 8) // rank 0 -> (0,0,0)
	chk.Scalar(tst, "E[0] origin subdomain", 1.0e-12, dom0.E[0], dom0.Cfg.InitialEnergy)

	dom1 := newTestDomain(3, 1, 8) // rank 1 -> (1,0,0), not origin
	chk.Scalar(tst, "E[0] non-origin subdomain", 1.0e-12, dom1.E[0], 0)
}

func TestElemMassAndNodalMassConserved(tst *testing.T) {

	chk.PrintTitle("domain06. total nodal mass equals total element mass")

	dom := newTestDomain(3, 0, 1)
	var totalElem, totalNode float64
	for el := 0; el < dom.NumElem; el++ {
		totalElem += dom.ElemMass[el]
	}
	for n := 0; n < dom.NumNode; n++ {
		totalNode += dom.NodalMass[n]
	}
	chk.Scalar(tst, "total mass", 1.0e-10, totalNode, totalElem)
}

func TestNodeElemInverseConnectivity(tst *testing.T) {

	chk.PrintTitle("domain07. node->element inverse connectivity matches forward connectivity")

	dom := newTestDomain(2, 0, 1)
	for el := 0; el < dom.NumElem; el++ {
		for c := 0; c < 8; c++ {
			v := dom.Nodelist[8*el+c]
			found := false
			for p := dom.NodeElemStart[v]; p < dom.NodeElemStart[v+1]; p++ {
				pair := dom.NodeElemCornerList[p]
				if pair == el*8+c {
					found = true
				}
			}
			if !found {
				tst.Errorf("node %d missing back-reference to element %d corner %d", v, el, c)
			}
		}
	}
}

func TestGhostBaseLayout(tst *testing.T) {

	chk.PrintTitle("domain08. ghost slots for distinct faces do not overlap")

	dom := newTestDomain(3, 0, 1)
	perFace := dom.GhostPerFace()
	chk.IntAssert(perFace, 9)
	for f := 0; f < 6; f++ {
		base := dom.GhostBase(f)
		if base != dom.NumElem+f*perFace {
			tst.Errorf("face %d: ghost base %d, want %d", f, base, dom.NumElem+f*perFace)
		}
	}
}
