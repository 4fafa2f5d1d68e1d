// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"flag"
	"os"

	"github.com/cpmech/lulesh/domain"
	"github.com/cpmech/lulesh/lagrange"
	"github.com/cpmech/lulesh/topo"
	"github.com/cpmech/lulesh/viz"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
	"github.com/cpmech/gosl/utl"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			if mpi.Rank() == 0 {
				chk.Verbose = true
				for i := 8; i > 3; i-- {
					chk.CallerInfo(i)
				}
				io.PfRed("ERROR: %v\n", err)
			}
			mpi.Stop(false)
			os.Exit(-1)
		}
	}()
	mpi.Start(false)
	defer mpi.Stop(false)

	// flags
	nx := flag.Int("nx", 45, "elements per subdomain edge")
	tp := flag.Int("tp", 1, "processes per problem edge (tp^3 == nproc)")
	stoptime := flag.Float64("stoptime", 1.0e-2, "simulation stop time")
	cfgpath := flag.String("cfg", "", "optional JSON configuration file")
	vtkdir := flag.String("vtkdir", "", "directory for periodic VTK snapshots (disabled if empty)")
	plotdir := flag.String("plotdir", "", "directory for the final energy-history plot (disabled if empty)")
	flag.Parse()

	// profiling?
	defer utl.DoProf(false)()

	if mpi.Rank() == 0 {
		io.PfWhite("\nlulesh-go -- Lagrangian shock hydrodynamics\n\n")
		io.Pf("Copyright 2016 The Gofem Authors. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n\n")
	}

	nproc := mpi.Size()
	if !mpi.IsOn() {
		nproc = 1
	}
	if *tp*(*tp)*(*tp) != nproc {
		chk.Panic("tp^3 must equal the number of processes: tp=%d nproc=%d", *tp, nproc)
	}

	cfg := domain.ReadConfig(*cfgpath)
	cfg.Nx = *nx
	cfg.Tp = *tp
	cfg.StopTime = *stoptime

	rank := 0
	if mpi.IsOn() {
		rank = mpi.Rank()
	}
	tpl := topo.Build(rank, nproc)
	dom := domain.NewDomain(cfg, tpl)

	drv := lagrange.NewDriver(dom)
	var history viz.EnergyHistory
	if rank == 0 {
		drv.OnCycle = func(cycle int, t, dt float64) {
			history.Add(cycle, dom.E[0])
			io.Pf("cycle %6d  time %12.6e  dt %12.6e\n", cycle, t, dt)
			if cycle%10 == 0 {
				if *vtkdir != "" {
					path := io.Sf("%s/step-%06d.vtk", *vtkdir, cycle)
					if err := viz.WriteVTK(path, dom); err != nil {
						io.Pfred("cannot write %q: %v\n", path, err)
					}
				}
			}
		}
	}

	if err := drv.Run(cfg.StopTime, nil, nil); err != nil {
		if mpi.Rank() == 0 {
			io.Pfred("ERROR: %v\n", err)
		}
		code := lagrange.ExitNegativeVolume.ExitCode()
		if errors.Is(err, lagrange.ErrQStop) {
			code = lagrange.ExitQStop.ExitCode()
		}
		mpi.Stop(false)
		os.Exit(code)
	}

	if mpi.Rank() == 0 {
		io.Pfgreen("\nrun complete: cycle=%d time=%12.6e\n", dom.Cycle, dom.Time)
		if *plotdir != "" {
			history.Plot(*plotdir, "energy-history.png")
		}
	}
}
