// Copyright (c) 2026, Terraglobe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpu defines the minimal graphics-context abstraction the
// particle pipeline renders through: textures, framebuffers, shader
// programs with typed uniform loading, and the double-buffered
// ping-pong framebuffer pair. The [glgpu] subpackage provides the
// OpenGL backend; tests use in-memory fakes.
package gpu

// Texture is a GPU texture handle.
type Texture interface {
	// Size returns the texture dimensions in texels.
	Size() (w, h int)

	// Dispose releases the texture. The handle is unusable afterwards.
	Dispose()
}

// Framebuffer is a render target backed by one texture.
type Framebuffer interface {
	// Bind makes this framebuffer the current render target.
	Bind()

	// Clear fills the bound texture with transparent zero pixels.
	// The framebuffer is bound as a side effect.
	Clear()

	// Texture returns the backing texture.
	Texture() Texture

	// Dispose releases the framebuffer (not its texture).
	Dispose()
}

// Program is a compiled and linked shader program. The Uniform loaders
// panic on a name the program does not declare: a missing required
// uniform is a programming error and must fail at the call site, never
// silently default.
type Program interface {
	// Use makes this program current.
	Use()

	Uniform1i(name string, v int32)
	Uniform1f(name string, v float32)
	Uniform2f(name string, x, y float32)
	Uniform4f(name string, x, y, z, w float32)
	Uniform4fv(name string, v [4]float32)

	// Dispose releases the program.
	Dispose()
}

// Context creates and drives GPU resources. All calls must come from
// the single render thread.
type Context interface {
	// NewTexture allocates a w by h RGBA8 texture, initialized from
	// data when non-nil (len must be w*h*4) and zero otherwise.
	NewTexture(w, h int, data []byte) (Texture, error)

	// NewFramebuffer wraps a texture as a render target.
	NewFramebuffer(t Texture) (Framebuffer, error)

	// NewProgram compiles and links a vertex / fragment shader pair.
	NewProgram(vertexSrc, fragmentSrc string) (Program, error)

	// BindDefaultFramebuffer restores the on-screen render target.
	BindDefaultFramebuffer()

	// BindTexture binds a texture to the given texture unit.
	BindTexture(unit int, t Texture)

	// Viewport sets the render viewport in device pixels.
	Viewport(x, y, w, h int)

	// EnableBlend toggles premultiplied-alpha blending.
	EnableBlend(on bool)

	// DrawQuad renders a full-screen quad with the current program.
	DrawQuad()

	// DrawPoints renders n point vertices with the current program.
	DrawPoints(n int)
}
