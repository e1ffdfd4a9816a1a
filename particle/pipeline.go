// Copyright (c) 2026, Terraglobe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package particle

import (
	"fmt"
	"math/rand"
	"time"

	"cogentcore.org/core/math32"

	"github.com/terraglobe/terraglobe/gpu"
)

// Config tunes the pipeline. The zero value plus [Config.Defaults] is
// a valid mid-density configuration.
type Config struct {
	// NumParticles is the particle count; the state texture edge is
	// the ceiling square root.
	NumParticles int

	// Width and Height size the trail buffer, normally the drawable
	// size in device pixels.
	Width, Height int

	// FadeOpacity in [0, 1) is the per-frame trail retention.
	FadeOpacity float32

	// SpeedFactor scales the integration step.
	SpeedFactor float32

	// DropRate and DropRateMultiplier set the stochastic respawn
	// probability (base + speed-proportional term).
	DropRate           float32
	DropRateMultiplier float32

	// Ramp is the trail-color gradient; empty means [DefaultRamp].
	Ramp []RampStop

	// Seed seeds the per-frame random sequence; 0 seeds from the
	// current time.
	Seed int64
}

// Defaults fills zero fields with the standard wind-layer tuning.
func (c *Config) Defaults() {
	if c.NumParticles == 0 {
		c.NumParticles = 65536
	}
	if c.FadeOpacity == 0 {
		c.FadeOpacity = 0.996
	}
	if c.SpeedFactor == 0 {
		c.SpeedFactor = 0.25
	}
	if c.DropRate == 0 {
		c.DropRate = 0.003
	}
	if c.DropRateMultiplier == 0 {
		c.DropRateMultiplier = 0.01
	}
}

// Validate rejects malformed configurations at construction.
func (c *Config) Validate() error {
	if c.NumParticles <= 0 {
		return fmt.Errorf("particle: NumParticles %d must be positive", c.NumParticles)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("particle: invalid trail buffer size %dx%d", c.Width, c.Height)
	}
	if c.FadeOpacity < 0 || c.FadeOpacity >= 1 {
		return fmt.Errorf("particle: FadeOpacity %g outside [0,1)", c.FadeOpacity)
	}
	if c.DropRate < 0 || c.DropRateMultiplier < 0 {
		return fmt.Errorf("particle: negative drop rate")
	}
	return nil
}

// Pipeline is the per-frame two-pass particle renderer: a draw/fade
// pass compositing trails and particle points into the ground
// ping-pong pair, then a simulation pass advecting the state texture
// in the sim ping-pong pair. Pass order is load-bearing: the draw
// pass reads the previous simulation state, so it must complete and
// swap before the update pass produces the next one.
type Pipeline struct {
	ctx gpu.Context
	cfg Config

	field   *Field
	gridTex gpu.Texture
	rampTex gpu.Texture

	simDim int
	sim    *gpu.DoubleBufferedFbo
	ground *gpu.DoubleBufferedFbo

	simProg  gpu.Program
	drawProg gpu.Program

	rng *rand.Rand

	// generation increments whenever particle count or ramp
	// configuration reallocates resources; consumers compare it
	// instead of re-deriving cache keys.
	generation uint64

	haveView   bool
	lastView   math32.Matrix4
	lastOffset float32
}

// New compiles the programs and allocates the buffers. The vector
// field arrives later via [Pipeline.SetField]; frames before that are
// no-ops.
func New(ctx gpu.Context, cfg Config) (*Pipeline, error) {
	cfg.Defaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	p := &Pipeline{ctx: ctx, cfg: cfg, rng: rand.New(rand.NewSource(seed))}

	var err error
	if p.simProg, err = ctx.NewProgram(SimVertex, SimFragment); err != nil {
		return nil, err
	}
	if p.drawProg, err = ctx.NewProgram(DrawVertex, DrawFragment); err != nil {
		return nil, err
	}
	if err = p.allocGround(); err != nil {
		return nil, err
	}
	if err = p.allocSim(cfg.NumParticles); err != nil {
		return nil, err
	}
	if err = p.setRamp(cfg.Ramp); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Pipeline) allocGround() error {
	t1, err := p.ctx.NewTexture(p.cfg.Width, p.cfg.Height, nil)
	if err != nil {
		return err
	}
	t2, err := p.ctx.NewTexture(p.cfg.Width, p.cfg.Height, nil)
	if err != nil {
		return err
	}
	p.ground, err = gpu.NewDoubleBufferedFbo(p.ctx, t1, t2)
	return err
}

// allocSim builds the particle state pair, seeding every particle at
// an independent random position.
func (p *Pipeline) allocSim(n int) error {
	dim := int(math32.Ceil(math32.Sqrt(float32(n))))
	state := make([]byte, dim*dim*4)
	for i := 0; i < dim*dim; i++ {
		px := EncodePos(p.rng.Float32(), p.rng.Float32())
		copy(state[i*4:], px[:])
	}
	t1, err := p.ctx.NewTexture(dim, dim, state)
	if err != nil {
		return err
	}
	t2, err := p.ctx.NewTexture(dim, dim, state)
	if err != nil {
		return err
	}
	sim, err := gpu.NewDoubleBufferedFbo(p.ctx, t1, t2)
	if err != nil {
		return err
	}
	if p.sim != nil {
		p.sim.Dispose()
	}
	p.sim = sim
	p.simDim = dim
	p.cfg.NumParticles = n
	return nil
}

func (p *Pipeline) setRamp(stops []RampStop) error {
	tex, err := p.ctx.NewTexture(rampSize, rampSize, BuildRamp(stops))
	if err != nil {
		return err
	}
	if p.rampTex != nil {
		p.rampTex.Dispose()
	}
	p.rampTex = tex
	p.cfg.Ramp = stops
	return nil
}

// SetField ingests a new vector field, replacing the grid texture.
func (p *Pipeline) SetField(u, v Component) error {
	f, err := NewField(u, v)
	if err != nil {
		return err
	}
	tex, err := p.ctx.NewTexture(f.Width, f.Height, f.Pixels)
	if err != nil {
		return err
	}
	if p.gridTex != nil {
		p.gridTex.Dispose()
	}
	p.gridTex = tex
	p.field = f
	return nil
}

// Field returns the currently loaded vector field, or nil.
func (p *Pipeline) Field() *Field { return p.field }

// SetParticleCount reallocates the state pair for a new count and
// bumps the generation. The freshly seeded state pair replaces the
// particle history; the accumulated trails are cleared, since they
// were drawn by the old population.
func (p *Pipeline) SetParticleCount(n int) error {
	if n <= 0 {
		return fmt.Errorf("particle: NumParticles %d must be positive", n)
	}
	if err := p.allocSim(n); err != nil {
		return err
	}
	if err := p.ground.ClearFbo(); err != nil {
		return err
	}
	p.generation++
	return nil
}

// SetRamp replaces the trail-color gradient and bumps the generation.
// Both pairs are invalidated: the accumulated trails carry the old
// colors and are cleared, and the particle history restarts from a
// freshly seeded state pair.
func (p *Pipeline) SetRamp(stops []RampStop) error {
	if err := p.setRamp(stops); err != nil {
		return err
	}
	if err := p.allocSim(p.cfg.NumParticles); err != nil {
		return err
	}
	if err := p.ground.ClearFbo(); err != nil {
		return err
	}
	p.generation++
	return nil
}

// Generation returns the resource generation counter.
func (p *Pipeline) Generation() uint64 { return p.generation }

// TrailTexture returns the most recently composited trail texture,
// for the caller to composite over the globe.
func (p *Pipeline) TrailTexture() gpu.Texture {
	return p.ground.SecondaryTexture()
}

// Frame runs one draw/fade + simulation frame. view and offset are
// the current combined view-projection matrix and the periodic
// date-line render offset: a change in either invalidates the
// accumulated trails and particle history, clearing both ping-pong
// pairs. bbox is the normalized visible-sector bounding box. Before a
// field is loaded the frame is a silent no-op.
func (p *Pipeline) Frame(view *math32.Matrix4, offset float32, bbox [4]float32) error {
	if p.field == nil {
		return nil
	}
	if !p.haveView || *view != p.lastView || offset != p.lastOffset {
		if err := p.ground.ClearFbo(); err != nil {
			return err
		}
		if err := p.sim.ClearFbo(); err != nil {
			return err
		}
		p.lastView = *view
		p.lastOffset = offset
		p.haveView = true
	}

	if err := p.drawPass(bbox); err != nil {
		return err
	}
	return p.simPass(bbox)
}

// drawPass composites the faded previous trails and the current
// particle points into the ground write side, then swaps.
func (p *Pipeline) drawPass(bbox [4]float32) error {
	if err := p.ground.Bind(); err != nil {
		return err
	}
	p.ctx.EnableBlend(false)
	p.drawProg.Use()

	// sub-pass A: previous trails, faded and 8-bit quantized
	p.ctx.BindTexture(0, p.ground.SecondaryTexture())
	p.drawProg.Uniform1i("tileOrColorsSampler", 0)
	p.drawProg.Uniform1i("simParticleSampler", 1)
	p.drawProg.Uniform1i("gridSampler", 2)
	p.drawProg.Uniform1i("drawMode", 0)
	p.drawProg.Uniform1f("fadeOpacity", p.cfg.FadeOpacity)
	p.ctx.DrawQuad()

	// sub-pass B: particle points from the previous simulation state
	p.ctx.BindTexture(0, p.rampTex)
	p.ctx.BindTexture(1, p.sim.SecondaryTexture())
	p.ctx.BindTexture(2, p.gridTex)
	p.drawProg.Uniform1i("drawMode", 1)
	p.drawProg.Uniform1f("simTextureDimension", float32(p.simDim))
	p.drawProg.Uniform4fv("bbox", bbox)
	p.drawProg.Uniform4fv("gridMinMax", p.gridMinMax())
	p.ctx.DrawPoints(p.cfg.NumParticles)

	p.ground.Swap()
	p.ground.MarkDirty()
	return nil
}

// simPass advects every particle texel into the sim write side, then
// swaps.
func (p *Pipeline) simPass(bbox [4]float32) error {
	if err := p.sim.Bind(); err != nil {
		return err
	}
	p.ctx.EnableBlend(false)
	p.simProg.Use()

	p.ctx.BindTexture(0, p.sim.SecondaryTexture())
	p.ctx.BindTexture(1, p.gridTex)
	p.simProg.Uniform1i("particleSampler", 0)
	p.simProg.Uniform1i("gridSampler", 1)
	p.simProg.Uniform2f("gridDimensions", float32(p.field.Width), float32(p.field.Height))
	p.simProg.Uniform4fv("gridMinMax", p.gridMinMax())
	p.simProg.Uniform1f("randSeed", p.rng.Float32())
	p.simProg.Uniform1f("speedFactor", p.cfg.SpeedFactor)
	p.simProg.Uniform1f("dropRate", p.cfg.DropRate)
	p.simProg.Uniform1f("dropRateMultiplier", p.cfg.DropRateMultiplier)
	p.simProg.Uniform4fv("bbox", bbox)
	p.ctx.DrawQuad()

	p.sim.Swap()
	p.sim.MarkDirty()
	return nil
}

func (p *Pipeline) gridMinMax() [4]float32 {
	return [4]float32{p.field.UMin, p.field.VMin, p.field.UMax, p.field.VMax}
}

// Dispose releases every GPU resource the pipeline owns.
func (p *Pipeline) Dispose() {
	if p.sim != nil {
		p.sim.Dispose()
	}
	if p.ground != nil {
		p.ground.Dispose()
	}
	if p.gridTex != nil {
		p.gridTex.Dispose()
	}
	if p.rampTex != nil {
		p.rampTex.Dispose()
	}
	if p.simProg != nil {
		p.simProg.Dispose()
	}
	if p.drawProg != nil {
		p.drawProg.Dispose()
	}
}
