// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package domain

import (
	"github.com/cpmech/lulesh/topo"

	"github.com/cpmech/gosl/la"
)

// boundary condition bits: one SYMM, FREE and COMM bit per face, 6 faces,
// 18 bits total; see spec §3. Exactly one of the three bits is set per face.
const (
	XiMSymm = 1 << iota
	XiMFree
	XiMComm
	XiPSymm
	XiPFree
	XiPComm
	EtaMSymm
	EtaMFree
	EtaMComm
	EtaPSymm
	EtaPFree
	EtaPComm
	ZetaMSymm
	ZetaMFree
	ZetaMComm
	ZetaPSymm
	ZetaPFree
	ZetaPComm
)

// per-axis boundary condition kind, decoded from the ElemBC bitmask
type BCKind int

const (
	BCInterior BCKind = iota // COMM: fetch from neighbour
	BCSymm                   // SYMM: mirror own value
	BCFree                   // FREE: treat as zero
)

// Domain is the single mutable carrier of subdomain state, passed explicitly
// to every kernel (no module-level singletons), mirroring fem.Domain.
type Domain struct {

	// configuration and topology
	Cfg  *Config
	Topo *topo.Topology

	// dimensions
	Nx       int // per-subdomain edge length
	NumElem  int // nx^3
	NumNode  int // (nx+1)^3

	// element-centered arrays, length NumElem
	E            []float64 // energy
	P            []float64 // pressure
	Q            []float64 // artificial viscosity (total = ql+qq contribution already folded in, kept separately below)
	Ql           []float64 // linear viscosity term
	Qq           []float64 // quadratic viscosity term
	V            []float64 // relative volume
	Volo         []float64 // reference volume
	Delv         []float64 // volume delta this step
	Vdov         []float64 // volume derivative (velocity divergence)
	Arealg       []float64 // characteristic length
	Ss           []float64 // sound speed
	ElemMass     []float64 // element mass
	MatElemlist  []int     // material index list (all 0: single material)
	Nodelist     []int     // 8*NumElem, element->node connectivity
	Lxim, Lxip   []int     // face neighbour connectivity, -x/+x
	Letam, Letap []int     // -y/+y
	Lzetam, Lzetap []int   // -z/+z
	ElemBC       []int     // 18-bit boundary condition mask

	// monotonic-Q gradient fields. DelvXi/DelvEta/DelvZeta carry a ghost
	// region past NumElem (same layout as Lxim etc) filled in by the MonoQ
	// halo exchange; DelxXi/DelxEta/DelxZeta are length scales, local only.
	DelvXi, DelvEta, DelvZeta []float64
	DelxXi, DelxEta, DelxZeta []float64

	// node-centered arrays, length NumNode
	X, Y, Z       []float64 // position
	Xd, Yd, Zd    []float64 // velocity
	Xdd, Ydd, Zdd []float64 // acceleration
	Fx, Fy, Fz    []float64 // force
	NodalMass     []float64

	// symmetry-plane node index lists (acceleration pinned to zero)
	SymmX, SymmY, SymmZ []int

	// node -> element inverse connectivity (scatter/gather trick, see spec §3)
	NodeElemCount      []int // [NumNode]
	NodeElemStart      []int // [NumNode+1]
	NodeElemCornerList []int // [sum(NodeElemCount)], pairs of (elem*8+corner) flattened

	// global simulation state
	Time      float64
	DeltaTime float64
	Cycle     int
}

// Free releases domain-owned resources. Kept for symmetry with fem.Domain's
// Free() even though Go's GC reclaims the slices; documents the lifecycle
// boundary named in spec §3 (per-run arrays destroyed at exit).
func (o *Domain) Free() {
	*o = Domain{}
}

// ZeroForces zeroes the nodal force arrays, step 2 of LagrangeNodal (spec
// §4.2). Uses la.VecFill, the same helper fem.Domain uses to zero solution
// vectors.
func (o *Domain) ZeroForces() {
	la.VecFill(o.Fx, 0)
	la.VecFill(o.Fy, 0)
	la.VecFill(o.Fz, 0)
}

// BCKindForFace decodes the ElemBC bitmask for element k on one face,
// identified by its COMM and SYMM bits (e.g. EtaMComm/EtaMSymm for -y).
// Neither bit set means FREE (missing side treated as zero, spec §4.2).
func (o *Domain) BCKindForFace(k int, commBit, symmBit int) BCKind {
	mask := o.ElemBC[k]
	if mask&commBit != 0 {
		return BCInterior
	}
	if mask&symmBit != 0 {
		return BCSymm
	}
	return BCFree
}
