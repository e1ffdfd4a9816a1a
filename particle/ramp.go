// Copyright (c) 2026, Terraglobe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package particle

import (
	"image/color"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/colors"
)

// RampStop is one color stop of the trail-color gradient, at a
// normalized relative speed in [0, 1].
type RampStop struct {
	Pos   float32
	Color color.RGBA
}

// DefaultRamp is the blue-to-red speed gradient.
func DefaultRamp() []RampStop {
	return []RampStop{
		{0.0, errors.Log1(colors.FromHex("#3288bd"))},
		{0.1, errors.Log1(colors.FromHex("#66c2a5"))},
		{0.2, errors.Log1(colors.FromHex("#abdda4"))},
		{0.3, errors.Log1(colors.FromHex("#e6f598"))},
		{0.4, errors.Log1(colors.FromHex("#fee08b"))},
		{0.5, errors.Log1(colors.FromHex("#fdae61"))},
		{0.6, errors.Log1(colors.FromHex("#f46d43"))},
		{1.0, errors.Log1(colors.FromHex("#d53e4f"))},
	}
}

// rampSize is the edge of the square ramp texture: 256 gradient
// samples tiled 16 per row, addressed by the draw shader as
// (fract(16t), floor(16t)/16).
const rampSize = 16

// BuildRamp rasterizes the stops into the 16x16 RGBA lookup texture.
// Positions outside the stop range clamp to the end colors.
func BuildRamp(stops []RampStop) []byte {
	if len(stops) == 0 {
		stops = DefaultRamp()
	}
	pix := make([]byte, rampSize*rampSize*4)
	for i := 0; i < rampSize*rampSize; i++ {
		t := float32(i) / float32(rampSize*rampSize-1)
		c := rampAt(stops, t)
		pix[i*4] = c.R
		pix[i*4+1] = c.G
		pix[i*4+2] = c.B
		pix[i*4+3] = c.A
	}
	return pix
}

func rampAt(stops []RampStop, t float32) color.RGBA {
	if t <= stops[0].Pos {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		if t <= stops[i].Pos {
			lo, hi := stops[i-1], stops[i]
			f := (t - lo.Pos) / (hi.Pos - lo.Pos)
			return colors.Blend(colors.RGB, 100*(1-f), lo.Color, hi.Color)
		}
	}
	return stops[len(stops)-1].Color
}
