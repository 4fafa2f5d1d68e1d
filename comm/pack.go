// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comm

import "github.com/cpmech/lulesh/topo"

// rasterIndex computes the flat index of point (i,j,k) on a gridN^3 lattice,
// the same raster order package domain uses for both its node grid (gridN =
// nx+1) and its element grid (gridN = nx).
func rasterIndex(i, j, k, gridN int) int {
	return i + j*gridN + k*gridN*gridN
}

// fixedCoord returns 0 for a negative slot delta, gridN-1 for a positive one.
func fixedCoord(delta, gridN int) int {
	if delta < 0 {
		return 0
	}
	return gridN - 1
}

// sharedIndices returns, in the canonical pack/unpack order for slot s, the
// raster indices of the local boundary layer/line/point that slot touches.
// This is the single template the spec's DESIGN NOTES §9 calls for: one
// function, tabulated by topology entry, replacing 26 near-identical
// blocks. The three face shapes reproduce the three distinct layouts of
// spec §4.1 ("packing rule"): ShapeFaceCol iterates outer-k/inner-j (the
// stride-dx column layout), ShapeFaceRow iterates outer-k/inner-i (the
// dx-contiguous row layout), ShapeFacePlane iterates outer-j/inner-i (a
// single contiguous block, the "memcpy" case).
func sharedIndices(s topo.Slot, gridN int) []int {
	switch {
	case topo.IsFace(s.Index):
		switch s.Shape {
		case topo.ShapeFaceCol:
			i := fixedCoord(s.DCol, gridN)
			idxs := make([]int, 0, gridN*gridN)
			for k := 0; k < gridN; k++ {
				for j := 0; j < gridN; j++ {
					idxs = append(idxs, rasterIndex(i, j, k, gridN))
				}
			}
			return idxs
		case topo.ShapeFaceRow:
			j := fixedCoord(s.DRow, gridN)
			idxs := make([]int, 0, gridN*gridN)
			for k := 0; k < gridN; k++ {
				for i := 0; i < gridN; i++ {
					idxs = append(idxs, rasterIndex(i, j, k, gridN))
				}
			}
			return idxs
		case topo.ShapeFacePlane:
			k := fixedCoord(s.DPlane, gridN)
			idxs := make([]int, 0, gridN*gridN)
			for j := 0; j < gridN; j++ {
				for i := 0; i < gridN; i++ {
					idxs = append(idxs, rasterIndex(i, j, k, gridN))
				}
			}
			return idxs
		}

	case topo.IsEdge(s.Index):
		switch s.Shape {
		case topo.ShapeEdgeLineZ: // i,j fixed; k varies
			i, j := fixedCoord(s.DCol, gridN), fixedCoord(s.DRow, gridN)
			idxs := make([]int, 0, gridN)
			for k := 0; k < gridN; k++ {
				idxs = append(idxs, rasterIndex(i, j, k, gridN))
			}
			return idxs
		case topo.ShapeEdgeLineX: // j,k fixed; i varies
			j, k := fixedCoord(s.DRow, gridN), fixedCoord(s.DPlane, gridN)
			idxs := make([]int, 0, gridN)
			for i := 0; i < gridN; i++ {
				idxs = append(idxs, rasterIndex(i, j, k, gridN))
			}
			return idxs
		case topo.ShapeEdgeLineY: // i,k fixed; j varies
			i, k := fixedCoord(s.DCol, gridN), fixedCoord(s.DPlane, gridN)
			idxs := make([]int, 0, gridN)
			for j := 0; j < gridN; j++ {
				idxs = append(idxs, rasterIndex(i, j, k, gridN))
			}
			return idxs
		}

	case topo.IsCorner(s.Index):
		i := fixedCoord(s.DCol, gridN)
		j := fixedCoord(s.DRow, gridN)
		k := fixedCoord(s.DPlane, gridN)
		return []int{rasterIndex(i, j, k, gridN)}
	}
	return nil
}

// firstNonzeroSign returns the sign of the first non-zero delta among
// (DCol, DRow, DPlane), in that priority order. Every slot has at least one
// non-zero delta. Used to implement the "early" assignment policy of
// SyncPosVel: a slot with a negative first delta names a neighbour at a
// smaller lattice coordinate (that neighbour is the min-side / authoritative
// owner), so this domain is the max side for that pairing and receives; a
// positive first delta means this domain is the min side and only sends.
// Because the matching slot on the other rank has every delta negated, the
// sign test is consistent across both sides of any pair.
func firstNonzeroSign(s topo.Slot) int {
	for _, d := range []int{s.DCol, s.DRow, s.DPlane} {
		if d != 0 {
			if d < 0 {
				return -1
			}
			return +1
		}
	}
	return 0
}
