// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package viz writes the periodic mesh snapshots and energy-history plot
// used to inspect a run -- the visualisation and progress-printing
// "external collaborator" of spec §1, kept out of package lagrange so the
// solver core never depends on an output format. Only main.go imports this
// package.
package viz

import (
	"bytes"
	"math"

	"github.com/cpmech/lulesh/domain"

	"github.com/cpmech/gosl/io"
)

const vtkHexType = 12 // VTK_HEXAHEDRON

// WriteVTK writes one subdomain's mesh and current state as a legacy ASCII
// VTK file: the hexahedron connectivity, nodal velocity magnitude as point
// data, and pressure/energy/artificial-viscosity as cell data.
func WriteVTK(path string, dom *domain.Domain) error {
	var buf bytes.Buffer

	io.Ff(&buf, "# vtk DataFile Version 3.0\n")
	io.Ff(&buf, "cycle %d time %g\n", dom.Cycle, dom.Time)
	io.Ff(&buf, "ASCII\n")
	io.Ff(&buf, "DATASET UNSTRUCTURED_GRID\n")

	io.Ff(&buf, "POINTS %d double\n", dom.NumNode)
	for n := 0; n < dom.NumNode; n++ {
		io.Ff(&buf, "%23.15e %23.15e %23.15e\n", dom.X[n], dom.Y[n], dom.Z[n])
	}

	io.Ff(&buf, "CELLS %d %d\n", dom.NumElem, dom.NumElem*9)
	for el := 0; el < dom.NumElem; el++ {
		base := 8 * el
		io.Ff(&buf, "8")
		for c := 0; c < 8; c++ {
			io.Ff(&buf, " %d", dom.Nodelist[base+c])
		}
		io.Ff(&buf, "\n")
	}

	io.Ff(&buf, "CELL_TYPES %d\n", dom.NumElem)
	for el := 0; el < dom.NumElem; el++ {
		io.Ff(&buf, "%d\n", vtkHexType)
	}

	io.Ff(&buf, "POINT_DATA %d\n", dom.NumNode)
	io.Ff(&buf, "SCALARS velocity_magnitude double 1\n")
	io.Ff(&buf, "LOOKUP_TABLE default\n")
	for n := 0; n < dom.NumNode; n++ {
		vmag := math.Sqrt(dom.Xd[n]*dom.Xd[n] + dom.Yd[n]*dom.Yd[n] + dom.Zd[n]*dom.Zd[n])
		io.Ff(&buf, "%23.15e\n", vmag)
	}

	io.Ff(&buf, "CELL_DATA %d\n", dom.NumElem)
	writeCellScalar(&buf, "pressure", dom.P)
	writeCellScalar(&buf, "energy", dom.E)
	writeCellScalar(&buf, "artificial_viscosity", dom.Q)
	writeCellScalar(&buf, "relative_volume", dom.V)

	io.WriteFileV(path, &buf)
	return nil
}

func writeCellScalar(buf *bytes.Buffer, name string, vals []float64) {
	io.Ff(buf, "SCALARS %s double 1\n", name)
	io.Ff(buf, "LOOKUP_TABLE default\n")
	for _, v := range vals {
		io.Ff(buf, "%23.15e\n", v)
	}
}
