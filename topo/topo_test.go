// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestBuildSingleRank(tst *testing.T) {

	chk.PrintTitle("topo01. single-rank topology has no present neighbours")

	tp := Build(0, 1)
	chk.IntAssert(tp.Col, 0)
	chk.IntAssert(tp.Row, 0)
	chk.IntAssert(tp.Plane, 0)
	chk.IntAssert(len(tp.Slots), NumSlots)

	for _, s := range tp.Slots {
		if s.Present {
			tst.Errorf("slot %d should not be present on a 1x1x1 lattice", s.Index)
		}
	}
}

func TestBuildCubeLattice(tst *testing.T) {

	chk.PrintTitle("topo02. 2x2x2 lattice: corner rank sees 7 neighbours")

	tp := Build(0, 8)
	chk.IntAssert(tp.Col, 0)
	chk.IntAssert(tp.Row, 0)
	chk.IntAssert(tp.Plane, 0)

	present := 0
	for _, s := range tp.Slots {
		if s.Present {
			present++
		}
	}
	// a corner subdomain of a 2x2x2 lattice has exactly 3 face, 3 edge and
	// 1 corner neighbour present = 7
	chk.IntAssert(present, 7)
}

func TestBuildCenterRank(tst *testing.T) {

	chk.PrintTitle("topo03. 3x3x3 lattice: centre rank sees all 26 neighbours")

	rank := 1 + 1*3 + 1*3*3 // (1,1,1) in a 3x3x3 lattice
	tp := Build(rank, 27)
	chk.IntAssert(tp.Col, 1)
	chk.IntAssert(tp.Row, 1)
	chk.IntAssert(tp.Plane, 1)

	for _, s := range tp.Slots {
		if !s.Present {
			tst.Errorf("slot %d should be present for the centre rank", s.Index)
		}
	}
}

func TestBuildRejectsNonCube(tst *testing.T) {

	chk.PrintTitle("topo04. non-cube process count panics")

	defer func() {
		if r := recover(); r == nil {
			tst.Errorf("expected panic for nproc=10")
		}
	}()
	Build(0, 10)
}

func TestSlotKindClassification(tst *testing.T) {

	chk.PrintTitle("topo05. slot index classification matches layout")

	for i := 0; i < NumSlots; i++ {
		kinds := 0
		if IsFace(i) {
			kinds++
		}
		if IsEdge(i) {
			kinds++
		}
		if IsCorner(i) {
			kinds++
		}
		if kinds != 1 {
			tst.Errorf("slot %d must be exactly one of face/edge/corner, got %d", i, kinds)
		}
	}
}
