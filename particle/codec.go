// Copyright (c) 2026, Terraglobe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package particle

import "cogentcore.org/core/math32"

// Particle positions live in RGBA8 textures with two bytes per axis:
// the low byte is the fractional part of p*255, the high byte the
// integer part, giving 16-bit fixed-point precision in [0,1) through
// an 8-bit texture format. Channel layout matches the shaders:
// R = x low, G = y low, B = x high, A = y high.

// encodeAxis packs one [0,1) coordinate into (lo, hi) bytes.
func encodeAxis(p float32) (lo, hi byte) {
	p = math32.Clamp(p, 0, 1)
	s := p * 255
	h := math32.Floor(s)
	l := math32.Round((s - h) * 255)
	return byte(l), byte(h)
}

// decodeAxis is the inverse of encodeAxis.
func decodeAxis(lo, hi byte) float32 {
	return (float32(hi) + float32(lo)/255) / 255
}

// EncodePos packs a normalized position into one RGBA texel.
func EncodePos(x, y float32) [4]byte {
	xl, xh := encodeAxis(x)
	yl, yh := encodeAxis(y)
	return [4]byte{xl, yl, xh, yh}
}

// DecodePos unpacks one RGBA texel into a normalized position.
func DecodePos(px [4]byte) (x, y float32) {
	return decodeAxis(px[0], px[2]), decodeAxis(px[1], px[3])
}
