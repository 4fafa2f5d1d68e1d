// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package kernel implements the per-element and per-node math of the
// Lagrange leap-frog time step: shape-function derivatives, volume,
// hourglass control, kinematics, monotonic-Q artificial viscosity, and the
// equation of state. See spec §4.2/§4.3.
package kernel

import (
	"runtime"
	"sync"
)

// ForEach runs fn(i) for i in [0,n) across GOMAXPROCS goroutines, each
// working an independent contiguous chunk with no cross-iteration
// dependencies -- the fork-join data parallelism spec §5 describes for every
// element loop and every node loop whose iterations write disjoint slots.
func ForEach(n int, fn func(i int)) {
	if n == 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				fn(i)
			}
		}(lo, hi)
	}
	wg.Wait()
}
