// Copyright (c) 2026, Terraglobe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package glgpu implements the [gpu.Context] abstraction on OpenGL 4.1
// core via go-gl. All calls must come from the thread holding the GL
// context.
package glgpu

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/terraglobe/terraglobe/gpu"
)

// Context is the OpenGL backend. Create one per GL context, after
// gl.Init.
type Context struct {
	quadVao uint32
	quadVbo uint32
}

// New initializes the GL function pointers and the shared full-screen
// quad geometry.
func New() (*Context, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("glgpu: %w", err)
	}
	c := &Context{}

	gl.GenVertexArrays(1, &c.quadVao)
	gl.GenBuffers(1, &c.quadVbo)
	gl.BindVertexArray(c.quadVao)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.quadVbo)
	quad := []float32{
		-1, -1,
		1, -1,
		-1, 1,
		1, 1,
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(quad), gl.STATIC_DRAW)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	gl.Enable(gl.PROGRAM_POINT_SIZE)
	return c, nil
}

// Texture is an RGBA8 GL texture with nearest filtering: the particle
// state textures carry fixed-point encoded data that hardware linear
// filtering would corrupt.
type Texture struct {
	id   uint32
	w, h int
}

func (c *Context) NewTexture(w, h int, data []byte) (gpu.Texture, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("glgpu: invalid texture size %dx%d", w, h)
	}
	if data != nil && len(data) != w*h*4 {
		return nil, fmt.Errorf("glgpu: texture data length %d != %dx%dx4", len(data), w, h)
	}
	t := &Texture{w: w, h: h}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	if data != nil {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(data))
	} else {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t, nil
}

func (t *Texture) Size() (int, int) { return t.w, t.h }

func (t *Texture) Dispose() {
	gl.DeleteTextures(1, &t.id)
	t.id = 0
}

// Framebuffer wraps a texture as a color attachment.
type Framebuffer struct {
	id  uint32
	tex *Texture
}

func (c *Context) NewFramebuffer(t gpu.Texture) (gpu.Framebuffer, error) {
	tex, ok := t.(*Texture)
	if !ok {
		return nil, fmt.Errorf("glgpu: foreign texture %T", t)
	}
	f := &Framebuffer{tex: tex}
	gl.GenFramebuffers(1, &f.id)
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.id)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, tex.id, 0)
	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		gl.DeleteFramebuffers(1, &f.id)
		return nil, fmt.Errorf("glgpu: framebuffer incomplete: 0x%x", status)
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return f, nil
}

func (f *Framebuffer) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.id)
	w, h := f.tex.Size()
	gl.Viewport(0, 0, int32(w), int32(h))
}

func (f *Framebuffer) Clear() {
	f.Bind()
	gl.ClearColor(0, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (f *Framebuffer) Texture() gpu.Texture { return f.tex }

func (f *Framebuffer) Dispose() {
	gl.DeleteFramebuffers(1, &f.id)
	f.id = 0
}

// Program is a linked GL shader program with cached uniform locations.
type Program struct {
	id       uint32
	uniforms map[string]int32
}

func (c *Context) NewProgram(vertexSrc, fragmentSrc string) (gpu.Program, error) {
	vs, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return nil, err
	}
	fs, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return nil, err
	}

	p := &Program{id: gl.CreateProgram(), uniforms: map[string]int32{}}
	gl.AttachShader(p.id, vs)
	gl.AttachShader(p.id, fs)
	gl.LinkProgram(p.id)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(p.id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(p.id, gl.INFO_LOG_LENGTH, &logLength)
		logMsg := make([]byte, logLength+1)
		gl.GetProgramInfoLog(p.id, logLength, nil, &logMsg[0])
		gl.DeleteProgram(p.id)
		return nil, fmt.Errorf("glgpu: failed to link program: %s", logMsg)
	}
	return p, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logMsg := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &logMsg[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("glgpu: failed to compile shader: %s", strings.TrimSpace(string(logMsg)))
	}
	return shader, nil
}

func (p *Program) Use() { gl.UseProgram(p.id) }

// location resolves and caches a uniform location, panicking on a name
// the program does not declare.
func (p *Program) location(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	if loc < 0 {
		panic(fmt.Sprintf("glgpu: program %d has no uniform %q", p.id, name))
	}
	p.uniforms[name] = loc
	return loc
}

func (p *Program) Uniform1i(name string, v int32)    { gl.Uniform1i(p.location(name), v) }
func (p *Program) Uniform1f(name string, v float32)  { gl.Uniform1f(p.location(name), v) }
func (p *Program) Uniform2f(name string, x, y float32) { gl.Uniform2f(p.location(name), x, y) }
func (p *Program) Uniform4f(name string, x, y, z, w float32) {
	gl.Uniform4f(p.location(name), x, y, z, w)
}
func (p *Program) Uniform4fv(name string, v [4]float32) {
	gl.Uniform4f(p.location(name), v[0], v[1], v[2], v[3])
}

func (p *Program) Dispose() {
	gl.DeleteProgram(p.id)
	p.id = 0
}

func (c *Context) BindDefaultFramebuffer() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

func (c *Context) BindTexture(unit int, t gpu.Texture) {
	gl.ActiveTexture(uint32(gl.TEXTURE0 + unit))
	gl.BindTexture(gl.TEXTURE_2D, t.(*Texture).id)
}

func (c *Context) Viewport(x, y, w, h int) {
	gl.Viewport(int32(x), int32(y), int32(w), int32(h))
}

func (c *Context) EnableBlend(on bool) {
	if on {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	} else {
		gl.Disable(gl.BLEND)
	}
}

func (c *Context) DrawQuad() {
	gl.BindVertexArray(c.quadVao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)
}

// DrawPoints renders n vertices with no attribute inputs: the vertex
// shader derives each particle's state from gl_VertexID.
func (c *Context) DrawPoints(n int) {
	gl.BindVertexArray(c.quadVao)
	gl.DrawArrays(gl.POINTS, 0, int32(n))
	gl.BindVertexArray(0)
}
