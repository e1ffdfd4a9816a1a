// Copyright (c) 2026, Terraglobe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakes recording operations for ordering and lifecycle assertions

type fakeTexture struct {
	w, h     int
	pix      []byte
	disposed bool
}

func (t *fakeTexture) Size() (int, int) { return t.w, t.h }
func (t *fakeTexture) Dispose()         { t.disposed = true }

type fakeFramebuffer struct {
	ctx      *fakeContext
	tex      *fakeTexture
	disposed bool
}

func (f *fakeFramebuffer) Bind() { f.ctx.log = append(f.ctx.log, fmt.Sprintf("bind %p", f.tex)) }
func (f *fakeFramebuffer) Clear() {
	for i := range f.tex.pix {
		f.tex.pix[i] = 0
	}
	f.ctx.log = append(f.ctx.log, fmt.Sprintf("clear %p", f.tex))
}
func (f *fakeFramebuffer) Texture() Texture { return f.tex }
func (f *fakeFramebuffer) Dispose()         { f.disposed = true }

type fakeContext struct {
	log  []string
	fbos []*fakeFramebuffer
}

func (c *fakeContext) NewTexture(w, h int, data []byte) (Texture, error) {
	t := &fakeTexture{w: w, h: h, pix: make([]byte, w*h*4)}
	copy(t.pix, data)
	return t, nil
}

func (c *fakeContext) NewFramebuffer(t Texture) (Framebuffer, error) {
	f := &fakeFramebuffer{ctx: c, tex: t.(*fakeTexture)}
	c.fbos = append(c.fbos, f)
	return f, nil
}

func (c *fakeContext) NewProgram(vs, fs string) (Program, error) { return nil, nil }
func (c *fakeContext) BindDefaultFramebuffer()                   { c.log = append(c.log, "bind default") }
func (c *fakeContext) BindTexture(unit int, t Texture)           {}
func (c *fakeContext) Viewport(x, y, w, h int)                   {}
func (c *fakeContext) EnableBlend(on bool)                       {}
func (c *fakeContext) DrawQuad()                                 { c.log = append(c.log, "quad") }
func (c *fakeContext) DrawPoints(n int)                          { c.log = append(c.log, fmt.Sprintf("points %d", n)) }

func newTestPair(t *testing.T) (*fakeContext, *fakeTexture, *fakeTexture, *DoubleBufferedFbo) {
	ctx := &fakeContext{}
	t1 := &fakeTexture{w: 4, h: 4, pix: make([]byte, 64)}
	t2 := &fakeTexture{w: 4, h: 4, pix: make([]byte, 64)}
	d, err := NewDoubleBufferedFbo(ctx, t1, t2)
	assert.NoError(t, err)
	return ctx, t1, t2, d
}

func TestDoubleBufferedFboValidation(t *testing.T) {
	ctx := &fakeContext{}
	t1 := &fakeTexture{w: 4, h: 4}
	t2 := &fakeTexture{w: 4, h: 8}

	_, err := NewDoubleBufferedFbo(ctx, t1, t2)
	assert.Error(t, err)

	_, err = NewDoubleBufferedFbo(ctx, t1, nil)
	assert.Error(t, err)

	_, err = NewDoubleBufferedFbo(ctx, &fakeTexture{w: 0, h: 4}, t1)
	assert.Error(t, err)
}

func TestPingPongParity(t *testing.T) {
	_, t1, t2, d := newTestPair(t)

	assert.Same(t, Texture(t1), d.PrimaryTexture())
	assert.Same(t, Texture(t2), d.SecondaryTexture())

	d.Swap()
	assert.Same(t, Texture(t2), d.PrimaryTexture())
	assert.Same(t, Texture(t1), d.SecondaryTexture())

	// an even number of swaps restores the constructed orientation
	d.Swap()
	assert.Same(t, Texture(t1), d.PrimaryTexture())
	for i := 0; i < 6; i++ {
		d.Swap()
	}
	assert.Same(t, Texture(t1), d.PrimaryTexture())
}

func TestLazyFramebufferAttachOnce(t *testing.T) {
	ctx, _, _, d := newTestPair(t)

	assert.Empty(t, ctx.fbos)
	assert.NoError(t, d.Bind())
	assert.NoError(t, d.Bind())
	assert.Len(t, ctx.fbos, 1)

	d.Swap()
	assert.NoError(t, d.Bind())
	assert.Len(t, ctx.fbos, 2)
}

func TestClearFboClearsBothAndKeepsParity(t *testing.T) {
	_, t1, t2, d := newTestPair(t)
	for i := range t1.pix {
		t1.pix[i] = 0xff
		t2.pix[i] = 0xff
	}
	before := d.PrimaryTexture()

	assert.NoError(t, d.ClearFbo())
	for i := range t1.pix {
		assert.Zero(t, t1.pix[i])
		assert.Zero(t, t2.pix[i])
	}
	// net-neutral swap parity
	assert.Same(t, before, d.PrimaryTexture())
	assert.True(t, d.IsCleared())

	d.MarkDirty()
	assert.False(t, d.IsCleared())
}

func TestDispose(t *testing.T) {
	ctx, t1, t2, d := newTestPair(t)
	assert.NoError(t, d.Bind())
	d.Swap()
	assert.NoError(t, d.Bind())

	d.Dispose()
	assert.True(t, t1.disposed)
	assert.True(t, t2.disposed)
	for _, f := range ctx.fbos {
		assert.True(t, f.disposed)
	}
}
