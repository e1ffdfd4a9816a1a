// Copyright (c) 2026, Terraglobe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import "fmt"

// DoubleBufferedFbo is a ping-pong framebuffer pair: one side is read
// while the other is written, swapped each frame to avoid read/write
// hazards. Framebuffers attach to their textures lazily, exactly once
// per texture, on first use.
type DoubleBufferedFbo struct {
	ctx Context
	tex [2]Texture
	fbo [2]Framebuffer

	// primary indexes the current write side
	primary int

	// cleared is the sticky clear flag: set by [DoubleBufferedFbo.ClearFbo],
	// reset by the owning pipeline immediately after rendering into
	// either buffer, so a later invalidation knows a clear is needed.
	cleared bool
}

// NewDoubleBufferedFbo pairs two pre-allocated textures of equal size.
// Mismatched or missing textures are programming errors rejected here.
func NewDoubleBufferedFbo(ctx Context, t1, t2 Texture) (*DoubleBufferedFbo, error) {
	if t1 == nil || t2 == nil {
		return nil, fmt.Errorf("gpu: DoubleBufferedFbo requires two textures")
	}
	w1, h1 := t1.Size()
	w2, h2 := t2.Size()
	if w1 <= 0 || h1 <= 0 {
		return nil, fmt.Errorf("gpu: DoubleBufferedFbo: invalid texture size %dx%d", w1, h1)
	}
	if w1 != w2 || h1 != h2 {
		return nil, fmt.Errorf("gpu: DoubleBufferedFbo: texture sizes differ: %dx%d vs %dx%d", w1, h1, w2, h2)
	}
	return &DoubleBufferedFbo{ctx: ctx, tex: [2]Texture{t1, t2}}, nil
}

// ensure attaches the framebuffer for side i on first use.
func (d *DoubleBufferedFbo) ensure(i int) (Framebuffer, error) {
	if d.fbo[i] == nil {
		f, err := d.ctx.NewFramebuffer(d.tex[i])
		if err != nil {
			return nil, err
		}
		d.fbo[i] = f
	}
	return d.fbo[i], nil
}

// Bind binds the primary (write) framebuffer.
func (d *DoubleBufferedFbo) Bind() error {
	f, err := d.ensure(d.primary)
	if err != nil {
		return err
	}
	f.Bind()
	return nil
}

// Swap toggles the primary and secondary sides.
func (d *DoubleBufferedFbo) Swap() {
	d.primary = 1 - d.primary
}

// PrimaryTexture returns the current write-side texture.
func (d *DoubleBufferedFbo) PrimaryTexture() Texture { return d.tex[d.primary] }

// SecondaryTexture returns the current read-side texture.
func (d *DoubleBufferedFbo) SecondaryTexture() Texture { return d.tex[1-d.primary] }

// PrimaryFbo returns the current write-side framebuffer.
func (d *DoubleBufferedFbo) PrimaryFbo() (Framebuffer, error) {
	return d.ensure(d.primary)
}

// SecondaryFbo returns the current read-side framebuffer.
func (d *DoubleBufferedFbo) SecondaryFbo() (Framebuffer, error) {
	return d.ensure(1 - d.primary)
}

// ClearFbo clears both sides exactly once each, as
// clear / swap / clear / swap, leaving the original primary
// orientation in place, and sets the sticky cleared flag.
func (d *DoubleBufferedFbo) ClearFbo() error {
	for i := 0; i < 2; i++ {
		f, err := d.ensure(d.primary)
		if err != nil {
			return err
		}
		f.Clear()
		d.Swap()
	}
	d.cleared = true
	return nil
}

// IsCleared reports the sticky clear flag.
func (d *DoubleBufferedFbo) IsCleared() bool { return d.cleared }

// MarkDirty resets the clear flag; the owning pipeline calls this
// immediately after rendering into either buffer.
func (d *DoubleBufferedFbo) MarkDirty() { d.cleared = false }

// Dispose releases both textures and any attached framebuffers. The
// pair is unusable afterwards.
func (d *DoubleBufferedFbo) Dispose() {
	for i := 0; i < 2; i++ {
		if d.fbo[i] != nil {
			d.fbo[i].Dispose()
			d.fbo[i] = nil
		}
		if d.tex[i] != nil {
			d.tex[i].Dispose()
			d.tex[i] = nil
		}
	}
}
