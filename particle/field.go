// Copyright (c) 2026, Terraglobe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package particle implements the GPU particle advection pipeline for
// animating a vector field (wind, currents) over the globe: grid
// ingest, fixed-point position encoding, the two shader programs, and
// the per-frame two-pass orchestration over ping-pong buffers.
package particle

import (
	"fmt"

	"cogentcore.org/core/math32"
)

// GridHeader carries the grid resolution of one vector component.
type GridHeader struct {
	Nx int `json:"nx"`
	Ny int `json:"ny"`
}

// Component is one scalar component of a vector field: a flat
// row-major sample array at the header's resolution.
type Component struct {
	Header GridHeader `json:"header"`
	Data   []float32  `json:"data"`
}

// Field is an ingested two-component vector field repacked into an
// RGBA byte grid: R is the normalized u component, G the normalized v
// component. The repack rotates each row by half the width, so a
// [0,360) longitude grid lands in the [-180,180) texture layout the
// bounding-box mapping expects.
type Field struct {
	Width, Height int

	// component extrema, for denormalizing the byte channels
	UMin, UMax float32
	VMin, VMax float32

	// Pixels is the Width*Height*4 RGBA repack.
	Pixels []byte
}

// NewField ingests a [u, v] component pair. Mismatched resolutions or
// short data arrays are programming errors in the caller's data
// plumbing and are rejected here.
func NewField(u, v Component) (*Field, error) {
	w, h := u.Header.Nx, u.Header.Ny
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("particle: invalid grid resolution %dx%d", w, h)
	}
	if v.Header.Nx != w || v.Header.Ny != h {
		return nil, fmt.Errorf("particle: component resolutions differ: %dx%d vs %dx%d",
			w, h, v.Header.Nx, v.Header.Ny)
	}
	if len(u.Data) < w*h || len(v.Data) < w*h {
		return nil, fmt.Errorf("particle: component data shorter than %d samples", w*h)
	}

	f := &Field{Width: w, Height: h, Pixels: make([]byte, w*h*4)}
	f.UMin, f.UMax = minMax(u.Data[:w*h])
	f.VMin, f.VMax = minMax(v.Data[:w*h])

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src := y*w + (x+w/2)%w
			dst := (y*w + x) * 4
			f.Pixels[dst] = normByte(u.Data[src], f.UMin, f.UMax)
			f.Pixels[dst+1] = normByte(v.Data[src], f.VMin, f.VMax)
			f.Pixels[dst+2] = 0
			f.Pixels[dst+3] = 255
		}
	}
	return f, nil
}

func minMax(data []float32) (mn, mx float32) {
	mn, mx = data[0], data[0]
	for _, d := range data {
		mn = math32.Min(mn, d)
		mx = math32.Max(mx, d)
	}
	return mn, mx
}

func normByte(v, mn, mx float32) byte {
	if mx <= mn {
		return 0
	}
	t := (v - mn) / (mx - mn)
	return byte(math32.Round(math32.Clamp(t, 0, 1) * 255))
}

// texel returns the normalized (r, g) channels at a clamped texel index.
func (f *Field) texel(x, y int) (u, v float32) {
	x = min(max(x, 0), f.Width-1)
	y = min(max(y, 0), f.Height-1)
	i := (y*f.Width + x) * 4
	return float32(f.Pixels[i]) / 255, float32(f.Pixels[i+1]) / 255
}

// Lookup samples the normalized vector at texture coordinates
// (x, y) in [0,1] with manual bilinear filtering over the quantized
// byte grid, matching the simulation shader texel for texel.
func (f *Field) Lookup(x, y float32) math32.Vector2 {
	fx := x * float32(f.Width)
	fy := y * float32(f.Height)
	ix := int(math32.Floor(fx))
	iy := int(math32.Floor(fy))
	gx := fx - math32.Floor(fx)
	gy := fy - math32.Floor(fy)

	tlU, tlV := f.texel(ix, iy)
	trU, trV := f.texel(ix+1, iy)
	blU, blV := f.texel(ix, iy+1)
	brU, brV := f.texel(ix+1, iy+1)

	u := mix(mix(tlU, trU, gx), mix(blU, brU, gx), gy)
	v := mix(mix(tlV, trV, gx), mix(blV, brV, gx), gy)
	return math32.Vec2(u, v)
}

// Velocity denormalizes a [Field.Lookup] sample into component units.
func (f *Field) Velocity(n math32.Vector2) math32.Vector2 {
	return math32.Vec2(mix(f.UMin, f.UMax, n.X), mix(f.VMin, f.VMax, n.Y))
}

// MaxSpeed returns the magnitude of the component maxima, the
// normalization base for the relative speed used by drop rate and the
// trail color ramp.
func (f *Field) MaxSpeed() float32 {
	return math32.Sqrt(f.UMax*f.UMax + f.VMax*f.VMax)
}

func mix(a, b, t float32) float32 { return a + (b-a)*t }
