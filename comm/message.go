// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package comm implements the 26-neighbour halo-exchange subsystem: three
// message kinds (SBN summation, position/velocity assignment, MonoQ
// ghost-append) over the fixed face/edge/corner topology built by package
// topo. See spec §4.1.
package comm

// message tags, fixed by spec §6
const (
	TagSBN         = 1024 // summation: forces, nodal mass
	TagSyncPosVel  = 2048 // assignment: position, velocity
	TagMonoQ       = 3072 // ghost-append: element velocity gradients
)

// CacheCoherencePadReal pads each corner message to its own cache line so a
// tiny corner payload never shares a line with an adjacent message, per
// spec §4.1's buffer-layout description. Go's garbage-collected slices don't
// give us manual control over cache-line placement the way the C buffer
// layout did; the constant is kept as the minimum length of every corner
// message (shorter payloads are zero-padded) so the magic number survives,
// even though the guarantee it encoded in the original is no longer
// meaningful at the language level.
const CacheCoherencePadReal = 16 // 16 float64s = 128 bytes

// Kind identifies which of the three halo-exchange semantics a call uses.
type Kind int

const (
	KindSBN Kind = iota
	KindSyncPosVel
	KindMonoQ
)

func (k Kind) String() string {
	switch k {
	case KindSBN:
		return "SBN"
	case KindSyncPosVel:
		return "SyncPosVel"
	case KindMonoQ:
		return "MonoQ"
	}
	return "unknown"
}

func (k Kind) tag() int {
	switch k {
	case KindSBN:
		return TagSBN
	case KindSyncPosVel:
		return TagSyncPosVel
	case KindMonoQ:
		return TagMonoQ
	}
	return 0
}

// planeOnly reports whether edge/corner messages are suppressed for this
// kind -- true only for MonoQ, whose element ghosts live solely on faces
// (spec §4.1 "three asymmetries", item (c)).
func (k Kind) planeOnly() bool {
	return k == KindMonoQ
}
