// Copyright (c) 2026, Terraglobe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package particle

import "cogentcore.org/core/math32"

// SpeedReduction is the fixed integration constant scaling a velocity
// sample into a per-tick normalized position offset, before the
// user-tunable speed factor.
const SpeedReduction = 0.0001

// poleEpsilon floors the pole-distortion divisor so the zonal offset
// stays finite at the poles.
const poleEpsilon = 0.05

// SimParams are the per-frame uniforms of the simulation pass.
type SimParams struct {
	// SpeedFactor scales the integration step.
	SpeedFactor float32

	// DropRate is the base per-tick respawn probability; the
	// multiplier adds a speed-proportional term so fast particles
	// recycle sooner and do not pile into attractor sinks.
	DropRate           float32
	DropRateMultiplier float32

	// RandSeed is the per-frame random seed in [0, 1).
	RandSeed float32

	// BBox is the normalized [xMin, yMin, xMax, yMax] bounding box of
	// the visible sector; respawned particles land inside it.
	BBox [4]float32
}

// Rand is the shader hash: a deterministic pseudo-random value in
// [0, 1) from a 2D seed. Kept bit-for-bit parallel with the GLSL rand
// so the CPU advection below reproduces the simulation pass.
func Rand(co math32.Vector2) float32 {
	t := co.Dot(math32.Vec2(12.9898, 78.233))
	return fract(math32.Sin(t) * 43758.5453)
}

func fract(v float32) float32 { return v - math32.Floor(v) }

// Advect computes one simulation tick for a particle at the given
// normalized position and state-texture coordinate: bilinear field
// sample, pole-corrected integration, torus wrap, and stochastic
// respawn. It is the reference mirror of [SimFragment].
func Advect(f *Field, pos, texCoord math32.Vector2, p SimParams) math32.Vector2 {
	vel := f.Velocity(f.Lookup(pos.X, pos.Y))
	speedT := vel.Length() / f.MaxSpeed()

	distortion := math32.Max(math32.Cos(math32.DegToRad(pos.Y*180-90)), poleEpsilon)
	offset := math32.Vec2(vel.X/distortion, -vel.Y).MulScalar(SpeedReduction * p.SpeedFactor)

	pos = math32.Vec2(fract(1+pos.X+offset.X), fract(1+pos.Y+offset.Y))

	seed := pos.Add(texCoord).MulScalar(p.RandSeed)
	dropChance := p.DropRate + speedT*p.DropRateMultiplier
	if Rand(seed) >= 1-dropChance {
		rx := Rand(seed.Add(math32.Vec2(1.3, 1.3)))
		ry := Rand(seed.Add(math32.Vec2(2.1, 2.1)))
		pos = math32.Vec2(mix(p.BBox[0], p.BBox[2], rx), mix(p.BBox[1], p.BBox[3], ry))
	}
	return pos
}
