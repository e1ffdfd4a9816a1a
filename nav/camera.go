// Copyright (c) 2026, Terraglobe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nav implements the camera navigation controller for the
// globe: it consumes gesture state transitions from a [gesture.Set],
// resolves them into camera-parameter deltas (2D pan vs. 3D orbit,
// spherical rotation vs. north-locked panning), and runs the inertial
// fling animation loop.
package nav

import (
	"cogentcore.org/core/math32"
	"github.com/terraglobe/terraglobe/geo"
)

// Camera is the navigation parameter set: the single piece of mutable
// shared state in the system. Only the [Controller] mutates it, always
// from the one event/render thread.
type Camera struct {
	// LookAt is the surface location the camera orbits.
	LookAt geo.Location

	// Range is the camera distance from the look-at point, in world
	// units. It must remain positive; the owning application clamps it
	// after each mutation.
	Range float32

	// Heading is degrees clockwise from north.
	Heading float32

	// Tilt is degrees from nadir: 0 looks straight down.
	Tilt float32

	// Roll is degrees about the view axis.
	Roll float32
}

// ViewMatrix returns the view matrix for the camera over the given globe.
func (c *Camera) ViewMatrix(g geo.Globe) *math32.Matrix4 {
	return geo.ViewMatrix(g, c.LookAt, c.Range, c.Heading, c.Tilt, c.Roll)
}
