// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import "errors"

// ErrVolume is returned when an element's volume is non-positive -- spec
// invariant I1, a fatal condition the caller maps to the VolumeError exit
// kind rather than retrying (spec §7).
var ErrVolume = errors.New("kernel: element volume is non-positive")

var errVolume = ErrVolume

// IsVolumeError reports whether err is the non-positive-volume condition.
func IsVolumeError(err error) bool {
	return err == ErrVolume
}
