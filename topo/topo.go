// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package topo builds the fixed 26-neighbour communication topology for a
// cubic tp×tp×tp lattice of subdomains
package topo

import (
	"github.com/cpmech/gosl/chk"
)

// Shape classifies the payload layout a neighbour slot carries. The pack and
// unpack routines in package comm select their stride pattern from this.
type Shape int

const (
	ShapeFacePlane  Shape = iota // contiguous dx·dy plane (±Z faces)
	ShapeFaceRow                 // dx-contiguous pencils, stride dx·dy (±Y faces)
	ShapeFaceCol                 // single values, stride dx (±X faces)
	ShapeEdgeLineX               // edge shared along the x-direction
	ShapeEdgeLineY               // edge shared along the y-direction
	ShapeEdgeLineZ               // edge shared along the z-direction
	ShapeCornerPoint             // single point
)

// slot indices, fixed order: 6 faces, 12 edges, 8 corners == 26
const (
	FaceXM = iota // col-1 (min-x)
	FaceXP        // col+1 (max-x)
	FaceYM        // row-1
	FaceYP        // row+1
	FaceZM        // plane-1
	FaceZP        // plane+1

	EdgeXMYM // 12 edges follow, named by which two faces they combine
	EdgeXMYP
	EdgeXPYM
	EdgeXPYP
	EdgeYMZM
	EdgeYMZP
	EdgeYPZM
	EdgeYPZP
	EdgeXMZM
	EdgeXMZP
	EdgeXPZM
	EdgeXPZP

	CornerMMM // 8 corners follow, named by (x,y,z) sign
	CornerMMP
	CornerMPM
	CornerMPP
	CornerPMM
	CornerPMP
	CornerPPM
	CornerPPP

	NumSlots // == 26
)

// Slot describes one of the 26 potential neighbour connections of a
// subdomain. Present is false when the neighbour would fall outside the
// tp×tp×tp lattice; such slots are always skipped by package comm's halo
// exchange.
type Slot struct {
	Index   int   // 0..25, fixed order above
	Present bool  // false if neighbour lies outside the lattice
	Rank    int   // neighbour's rank, valid only if Present
	DCol    int   // -1, 0 or +1
	DRow    int   // -1, 0 or +1
	DPlane  int   // -1, 0 or +1
	Shape   Shape // payload layout class
	NumAxes int   // 1 (face), 2 (edge) or 3 (corner) -- number of non-zero deltas
}

// Topology holds this rank's position in the tp×tp×tp lattice and its fixed
// 26-slot neighbour table, built once during domain setup (Open Question iii:
// no lazy process-wide initialisation of derived communication shapes).
type Topology struct {
	Tp         int // processes per axis
	Col        int // this rank's column (x)
	Row        int // this rank's row (y)
	Plane      int // this rank's plane (z)
	Rank       int
	NumRanks   int
	Slots      [NumSlots]Slot
	NumActive  int // number of Present slots, convenience for callers
}

// Build validates that nranks is a perfect cube, computes this rank's
// (col,row,plane), and builds the 26-slot neighbour table. It panics (via
// chk.Panic) on a non-cube process count, matching the configuration-failure
// contract of spec §7.
func Build(rank, nranks int) *Topology {
	tp := cubeRoot(nranks)
	if tp*tp*tp != nranks {
		chk.Panic("number of processes must be a perfect cube: tp^3 != %d", nranks)
	}
	o := &Topology{
		Tp:       tp,
		Rank:     rank,
		NumRanks: nranks,
	}
	o.Col = rank % tp
	o.Row = (rank / tp) % tp
	o.Plane = rank / (tp * tp)
	o.buildSlots()
	return o
}

// cubeRoot returns the integer cube root of n, or a value whose cube is
// nearest n from below; Build verifies the exact match afterwards.
func cubeRoot(n int) int {
	if n <= 1 {
		return n
	}
	tp := 1
	for (tp+1)*(tp+1)*(tp+1) <= n {
		tp++
	}
	return tp
}

// buildSlots fills in Slots in the fixed face/edge/corner order
func (o *Topology) buildSlots() {
	type def struct {
		idx            int
		dc, dr, dp     int
		shape          Shape
	}
	defs := []def{
		{FaceXM, -1, 0, 0, ShapeFaceCol},
		{FaceXP, +1, 0, 0, ShapeFaceCol},
		{FaceYM, 0, -1, 0, ShapeFaceRow},
		{FaceYP, 0, +1, 0, ShapeFaceRow},
		{FaceZM, 0, 0, -1, ShapeFacePlane},
		{FaceZP, 0, 0, +1, ShapeFacePlane},

		{EdgeXMYM, -1, -1, 0, ShapeEdgeLineZ},
		{EdgeXMYP, -1, +1, 0, ShapeEdgeLineZ},
		{EdgeXPYM, +1, -1, 0, ShapeEdgeLineZ},
		{EdgeXPYP, +1, +1, 0, ShapeEdgeLineZ},
		{EdgeYMZM, 0, -1, -1, ShapeEdgeLineX},
		{EdgeYMZP, 0, -1, +1, ShapeEdgeLineX},
		{EdgeYPZM, 0, +1, -1, ShapeEdgeLineX},
		{EdgeYPZP, 0, +1, +1, ShapeEdgeLineX},
		{EdgeXMZM, -1, 0, -1, ShapeEdgeLineY},
		{EdgeXMZP, -1, 0, +1, ShapeEdgeLineY},
		{EdgeXPZM, +1, 0, -1, ShapeEdgeLineY},
		{EdgeXPZP, +1, 0, +1, ShapeEdgeLineY},

		{CornerMMM, -1, -1, -1, ShapeCornerPoint},
		{CornerMMP, -1, -1, +1, ShapeCornerPoint},
		{CornerMPM, -1, +1, -1, ShapeCornerPoint},
		{CornerMPP, -1, +1, +1, ShapeCornerPoint},
		{CornerPMM, +1, -1, -1, ShapeCornerPoint},
		{CornerPMP, +1, -1, +1, ShapeCornerPoint},
		{CornerPPM, +1, +1, -1, ShapeCornerPoint},
		{CornerPPP, +1, +1, +1, ShapeCornerPoint},
	}
	for _, d := range defs {
		s := Slot{
			Index:  d.idx,
			DCol:   d.dc,
			DRow:   d.dr,
			DPlane: d.dp,
			Shape:  d.shape,
		}
		s.NumAxes = abs(d.dc) + abs(d.dr) + abs(d.dp)
		col, row, plane := o.Col+d.dc, o.Row+d.dr, o.Plane+d.dp
		if col >= 0 && col < o.Tp && row >= 0 && row < o.Tp && plane >= 0 && plane < o.Tp {
			s.Present = true
			s.Rank = col + row*o.Tp + plane*o.Tp*o.Tp
			o.NumActive++
		}
		o.Slots[d.idx] = s
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// IsFace returns true if slot index i names one of the 6 face slots
func IsFace(i int) bool { return i >= FaceXM && i <= FaceZP }

// IsEdge returns true if slot index i names one of the 12 edge slots
func IsEdge(i int) bool { return i >= EdgeXMYM && i <= EdgeXPZP }

// IsCorner returns true if slot index i names one of the 8 corner slots
func IsCorner(i int) bool { return i >= CornerMMM && i <= CornerPPP }
