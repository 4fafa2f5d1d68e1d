// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package domain

import (
	"github.com/cpmech/lulesh/topo"

	"github.com/cpmech/gosl/chk"
)

// GhostPerFace returns the number of ghost element slots carried past
// NumElem for one face plane (nx*nx), used by MonoQ's ghost-append exchange.
func (o *Domain) GhostPerFace() int { return o.Nx * o.Nx }

// GhostBase returns the index of the first ghost slot for face-slot fs
// (one of topo.FaceXM..topo.FaceZP), appended after the interior elements.
func (o *Domain) GhostBase(faceSlot int) int {
	return o.NumElem + faceSlot*o.GhostPerFace()
}

// NewDomain builds a subdomain's mesh: connectivity, boundary tags,
// reference volumes, mass, and the initial Sedov energy deposit. This is the
// mesh-constructor "external collaborator" of spec §1, included here so the
// repo runs end to end; the core (package lagrange) only ever consumes the
// *Domain this returns.
func NewDomain(cfg *Config, tp *topo.Topology) *Domain {
	nx := cfg.Nx
	if nx < 1 {
		chk.Panic("nx must be >= 1, got %d", nx)
	}
	o := &Domain{
		Cfg:     cfg,
		Topo:    tp,
		Nx:      nx,
		NumElem: nx * nx * nx,
		NumNode: (nx + 1) * (nx + 1) * (nx + 1),
	}

	o.allocElemArrays()
	o.allocNodeArrays()
	o.buildConnectivity()
	o.buildFaceNeighbours()
	o.buildBoundaryMask()
	o.buildSymmetryLists()
	o.buildNodeElemInverse()
	o.buildCoordsAndVolume()
	o.buildMass()
	o.depositInitialEnergy()

	return o
}

func (o *Domain) allocElemArrays() {
	n := o.NumElem
	ghosts := 6 * o.GhostPerFace()
	o.E = make([]float64, n)
	o.P = make([]float64, n)
	o.Q = make([]float64, n)
	o.Ql = make([]float64, n)
	o.Qq = make([]float64, n)
	o.V = make([]float64, n)
	for i := range o.V {
		o.V[i] = 1.0
	}
	o.Volo = make([]float64, n)
	o.Delv = make([]float64, n)
	o.Vdov = make([]float64, n)
	o.Arealg = make([]float64, n)
	o.Ss = make([]float64, n)
	o.ElemMass = make([]float64, n)
	o.MatElemlist = make([]int, n) // single material: index 0 everywhere
	o.Nodelist = make([]int, 8*n)
	o.Lxim = make([]int, n+ghosts)
	o.Lxip = make([]int, n+ghosts)
	o.Letam = make([]int, n+ghosts)
	o.Letap = make([]int, n+ghosts)
	o.Lzetam = make([]int, n+ghosts)
	o.Lzetap = make([]int, n+ghosts)
	o.ElemBC = make([]int, n)
	o.DelvXi = make([]float64, n+ghosts)
	o.DelvEta = make([]float64, n+ghosts)
	o.DelvZeta = make([]float64, n+ghosts)
	o.DelxXi = make([]float64, n)
	o.DelxEta = make([]float64, n)
	o.DelxZeta = make([]float64, n)
}

func (o *Domain) allocNodeArrays() {
	n := o.NumNode
	o.X = make([]float64, n)
	o.Y = make([]float64, n)
	o.Z = make([]float64, n)
	o.Xd = make([]float64, n)
	o.Yd = make([]float64, n)
	o.Zd = make([]float64, n)
	o.Xdd = make([]float64, n)
	o.Ydd = make([]float64, n)
	o.Zdd = make([]float64, n)
	o.Fx = make([]float64, n)
	o.Fy = make([]float64, n)
	o.Fz = make([]float64, n)
	o.NodalMass = make([]float64, n)
}

// elemIndex and nodeIndex follow a single fixed i+j*nx+k*nx^2 raster order.
func (o *Domain) elemIndex(i, j, k int) int { return i + j*o.Nx + k*o.Nx*o.Nx }
func (o *Domain) nodeIndex(i, j, k int) int {
	ny := o.Nx + 1
	return i + j*ny + k*ny*ny
}

// buildConnectivity fills Nodelist with the standard 8-node hex ordering.
func (o *Domain) buildConnectivity() {
	nx := o.Nx
	for k := 0; k < nx; k++ {
		for j := 0; j < nx; j++ {
			for i := 0; i < nx; i++ {
				el := o.elemIndex(i, j, k)
				base := 8 * el
				o.Nodelist[base+0] = o.nodeIndex(i, j, k)
				o.Nodelist[base+1] = o.nodeIndex(i+1, j, k)
				o.Nodelist[base+2] = o.nodeIndex(i+1, j+1, k)
				o.Nodelist[base+3] = o.nodeIndex(i, j+1, k)
				o.Nodelist[base+4] = o.nodeIndex(i, j, k+1)
				o.Nodelist[base+5] = o.nodeIndex(i+1, j, k+1)
				o.Nodelist[base+6] = o.nodeIndex(i+1, j+1, k+1)
				o.Nodelist[base+7] = o.nodeIndex(i, j+1, k+1)
			}
		}
	}
}

// buildFaceNeighbours fills the six face-neighbour index arrays. Interior
// neighbours point to the adjacent element; subdomain-boundary faces that
// face another rank point into the ghost region appended past NumElem
// (filled by comm.Exchanger.MonoQ each cycle); faces at the outer problem
// boundary (SYMM or FREE, decided in buildBoundaryMask) are left pointing at
// the element itself, and the value read through them is discarded by the
// monotonic-Q neighbour selection.
func (o *Domain) buildFaceNeighbours() {
	nx := o.Nx
	for k := 0; k < nx; k++ {
		for j := 0; j < nx; j++ {
			for i := 0; i < nx; i++ {
				el := o.elemIndex(i, j, k)

				if i > 0 {
					o.Lxim[el] = o.elemIndex(i-1, j, k)
				} else if o.Topo.Slots[topo.FaceXM].Present {
					o.Lxim[el] = o.GhostBase(topo.FaceXM) + (j + k*nx)
				} else {
					o.Lxim[el] = el
				}

				if i < nx-1 {
					o.Lxip[el] = o.elemIndex(i+1, j, k)
				} else if o.Topo.Slots[topo.FaceXP].Present {
					o.Lxip[el] = o.GhostBase(topo.FaceXP) + (j + k*nx)
				} else {
					o.Lxip[el] = el
				}

				if j > 0 {
					o.Letam[el] = o.elemIndex(i, j-1, k)
				} else if o.Topo.Slots[topo.FaceYM].Present {
					o.Letam[el] = o.GhostBase(topo.FaceYM) + (i + k*nx)
				} else {
					o.Letam[el] = el
				}

				if j < nx-1 {
					o.Letap[el] = o.elemIndex(i, j+1, k)
				} else if o.Topo.Slots[topo.FaceYP].Present {
					o.Letap[el] = o.GhostBase(topo.FaceYP) + (i + k*nx)
				} else {
					o.Letap[el] = el
				}

				if k > 0 {
					o.Lzetam[el] = o.elemIndex(i, j, k-1)
				} else if o.Topo.Slots[topo.FaceZM].Present {
					o.Lzetam[el] = o.GhostBase(topo.FaceZM) + (i + j*nx)
				} else {
					o.Lzetam[el] = el
				}

				if k < nx-1 {
					o.Lzetap[el] = o.elemIndex(i, j, k+1)
				} else if o.Topo.Slots[topo.FaceZP].Present {
					o.Lzetap[el] = o.GhostBase(topo.FaceZP) + (i + j*nx)
				} else {
					o.Lzetap[el] = el
				}
			}
		}
	}
}

// buildBoundaryMask sets the 18-bit ElemBC mask per element. A face is COMM
// when a same-kind neighbour subdomain exists, SYMM when this subdomain sits
// at the minimum corner of the whole tp^3 problem (the canonical LULESH
// Sedov setup mirrors the -X/-Y/-Z problem boundary), and FREE otherwise
// (outer free surface).
func (o *Domain) buildBoundaryMask() {
	nx := o.Nx
	atMinCol := o.Topo.Col == 0
	atMinRow := o.Topo.Row == 0
	atMinPlane := o.Topo.Plane == 0

	for k := 0; k < nx; k++ {
		for j := 0; j < nx; j++ {
			for i := 0; i < nx; i++ {
				el := o.elemIndex(i, j, k)
				mask := 0

				mask |= faceBit(i > 0 || o.Topo.Slots[topo.FaceXM].Present, atMinCol && i == 0,
					XiMComm, XiMSymm, XiMFree)
				mask |= faceBit(i < nx-1 || o.Topo.Slots[topo.FaceXP].Present, false,
					XiPComm, XiPSymm, XiPFree)
				mask |= faceBit(j > 0 || o.Topo.Slots[topo.FaceYM].Present, atMinRow && j == 0,
					EtaMComm, EtaMSymm, EtaMFree)
				mask |= faceBit(j < nx-1 || o.Topo.Slots[topo.FaceYP].Present, false,
					EtaPComm, EtaPSymm, EtaPFree)
				mask |= faceBit(k > 0 || o.Topo.Slots[topo.FaceZM].Present, atMinPlane && k == 0,
					ZetaMComm, ZetaMSymm, ZetaMFree)
				mask |= faceBit(k < nx-1 || o.Topo.Slots[topo.FaceZP].Present, false,
					ZetaPComm, ZetaPSymm, ZetaPFree)

				o.ElemBC[el] = mask
			}
		}
	}
}

// faceBit picks exactly one of the comm/symm/free bits for a single face of
// a single element: interior-or-cross-rank faces are COMM, the outer
// min-corner problem boundary is SYMM, everything else is FREE.
func faceBit(hasNeighbour bool, isMinBoundary bool, commBit, symmBit, freeBit int) int {
	if hasNeighbour {
		return commBit
	}
	if isMinBoundary {
		return symmBit
	}
	return freeBit
}

// buildSymmetryLists collects the node indices on the three symmetry planes
// (only present on subdomains at the minimum corner of the tp^3 problem).
func (o *Domain) buildSymmetryLists() {
	nx := o.Nx
	ny := nx + 1
	if o.Topo.Col == 0 {
		for k := 0; k < ny; k++ {
			for j := 0; j < ny; j++ {
				o.SymmX = append(o.SymmX, o.nodeIndex(0, j, k))
			}
		}
	}
	if o.Topo.Row == 0 {
		for k := 0; k < ny; k++ {
			for i := 0; i < ny; i++ {
				o.SymmY = append(o.SymmY, o.nodeIndex(i, 0, k))
			}
		}
	}
	if o.Topo.Plane == 0 {
		for j := 0; j < ny; j++ {
			for i := 0; i < ny; i++ {
				o.SymmZ = append(o.SymmZ, o.nodeIndex(i, j, 0))
			}
		}
	}
}

// buildNodeElemInverse flattens the element->node adjacency into the
// node->element scatter/gather tables described in spec §3: element phase
// writes fx_elem[8*k+corner]; node phase reads a contiguous range of
// (elem,corner) pairs, with no atomics required.
func (o *Domain) buildNodeElemInverse() {
	n := o.NumNode
	o.NodeElemCount = make([]int, n)
	for el := 0; el < o.NumElem; el++ {
		for c := 0; c < 8; c++ {
			o.NodeElemCount[o.Nodelist[8*el+c]]++
		}
	}
	o.NodeElemStart = make([]int, n+1)
	for v := 0; v < n; v++ {
		o.NodeElemStart[v+1] = o.NodeElemStart[v] + o.NodeElemCount[v]
	}
	total := o.NodeElemStart[n]
	o.NodeElemCornerList = make([]int, total)
	cursor := make([]int, n)
	copy(cursor, o.NodeElemStart[:n])
	for el := 0; el < o.NumElem; el++ {
		for c := 0; c < 8; c++ {
			v := o.Nodelist[8*el+c]
			o.NodeElemCornerList[cursor[v]] = el*8 + c
			cursor[v]++
		}
	}
}

// buildCoordsAndVolume lays out node coordinates on a unit cubic lattice
// local to this subdomain (offset by the subdomain's lattice position so
// neighbouring subdomains' meshes are contiguous in space), then computes
// each element's reference volume. The lattice is regular, so coordinates
// are closed-form rather than routed through a general mesh-geometry
// library (see DESIGN.md).
func (o *Domain) buildCoordsAndVolume() {
	nx := o.Nx
	ny := nx + 1
	h := 1.0 / float64(nx) // unit-cube edge per subdomain
	ox := float64(o.Topo.Col) * 1.0
	oy := float64(o.Topo.Row) * 1.0
	oz := float64(o.Topo.Plane) * 1.0
	for k := 0; k < ny; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < ny; i++ {
				v := o.nodeIndex(i, j, k)
				o.X[v] = ox + float64(i)*h
				o.Y[v] = oy + float64(j)*h
				o.Z[v] = oz + float64(k)*h
			}
		}
	}
	vol := h * h * h
	for el := 0; el < o.NumElem; el++ {
		o.Volo[el] = vol
		o.V[el] = 1.0
	}
}

// buildMass computes nodal mass by distributing 1/8 of each adjacent
// element's mass to each of its 8 corner nodes, and element mass from
// reference volume and reference density.
func (o *Domain) buildMass() {
	for el := 0; el < o.NumElem; el++ {
		o.ElemMass[el] = o.Volo[el] * o.Cfg.Refdens
	}
	for el := 0; el < o.NumElem; el++ {
		share := o.ElemMass[el] / 8.0
		for c := 0; c < 8; c++ {
			o.NodalMass[o.Nodelist[8*el+c]] += share
		}
	}
}

// depositInitialEnergy places the Sedov blast energy into element 0, but
// only on the subdomain owning the problem's origin corner (col=row=plane=0,
// spec Testable Property 6).
func (o *Domain) depositInitialEnergy() {
	if o.Topo.Col == 0 && o.Topo.Row == 0 && o.Topo.Plane == 0 {
		o.E[0] = o.Cfg.InitialEnergy
	}
}
