// Copyright (c) 2026, Terraglobe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command globeview is the interactive globe viewer: mouse navigation
// over a sphere with an optional animated wind-particle layer.
//
// A wind file is a JSON object with "u" and "v" component grids, as
// produced by converting GRIB model output.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"cogentcore.org/core/math32"

	"github.com/terraglobe/terraglobe/events"
	"github.com/terraglobe/terraglobe/geo"
	"github.com/terraglobe/terraglobe/gpu/glgpu"
	"github.com/terraglobe/terraglobe/nav"
	"github.com/terraglobe/terraglobe/particle"
	"github.com/terraglobe/terraglobe/settings"
)

// earthRadius is the globe radius in kilometers, the world unit.
const earthRadius = 6371

func init() {
	// GLFW and GL demand the main thread
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", settings.Path(), "settings file")
	windPath := flag.String("wind", "", "wind field JSON file")
	flag.Parse()

	if err := run(*configPath, *windPath); err != nil {
		slog.Error("globeview", "err", err)
		os.Exit(1)
	}
}

func run(configPath, windPath string) error {
	sets, err := settings.Open(configPath)
	if err != nil {
		return err
	}

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(sets.Window.Width, sets.Window.Height, sets.Window.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("glfw: %w", err)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	ctx, err := glgpu.New()
	if err != nil {
		return err
	}

	fbW, fbH := win.GetFramebufferSize()
	winW, winH := win.GetSize()

	globe := geo.NewSphere(earthRadius)
	ctrl := nav.NewController(
		globe,
		geo.Viewport{Width: winW, Height: winH, FOV: 45},
		sets.NavOptions(),
	)

	// TODO: rebuild the trail buffers on framebuffer resize
	pipe, err := particle.New(ctx, sets.ParticleConfig(fbW, fbH))
	if err != nil {
		return err
	}
	defer pipe.Dispose()

	if windPath != "" {
		if err := loadWind(pipe, windPath); err != nil {
			return err
		}
	}

	blit, err := ctx.NewProgram(blitVertex, blitFragment)
	if err != nil {
		return err
	}
	defer blit.Dispose()

	dq := &events.Deque{}
	wireInput(win, dq)

	for !win.ShouldClose() {
		glfw.PollEvents()
		dq.Send(events.NewBase(events.WindowPaint, image.Point{}))
		for ev := dq.NextEvent(); ev != nil; ev = dq.NextEvent() {
			ctrl.ProcessEvent(ev)
		}
		ctrl.TakeRedraw() // trails animate every frame regardless

		view := ctrl.Camera().ViewMatrix(globe)
		if err := pipe.Frame(view, 0, visibleBBox(ctrl)); err != nil {
			return err
		}

		ctx.BindDefaultFramebuffer()
		ctx.Viewport(0, 0, fbW, fbH)
		ctx.EnableBlend(true)
		blit.Use()
		ctx.BindTexture(0, pipe.TrailTexture())
		blit.Uniform1i("trailSampler", 0)
		ctx.DrawQuad()

		win.SwapBuffers()
	}
	return nil
}

// visibleBBox estimates the normalized equirectangular bounds of the
// visible sector from the camera range: a tight box keeps respawned
// particles on screen without simulating the far side of the globe.
func visibleBBox(ctrl *nav.Controller) [4]float32 {
	cam := ctrl.Camera()
	half := math32.Clamp(cam.Range/(4*earthRadius), 0.05, 0.5)
	cx := (cam.LookAt.Lon + 180) / 360
	cy := (90 - cam.LookAt.Lat) / 180
	return [4]float32{
		math32.Clamp(cx-half, 0, 1), math32.Clamp(cy-half, 0, 1),
		math32.Clamp(cx+half, 0, 1), math32.Clamp(cy+half, 0, 1),
	}
}

// windFile is the on-disk wind field format.
type windFile struct {
	U particle.Component `json:"u"`
	V particle.Component `json:"v"`
}

func loadWind(pipe *particle.Pipeline, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var wf windFile
	if err := json.Unmarshal(b, &wf); err != nil {
		return fmt.Errorf("wind %s: %w", path, err)
	}
	if err := pipe.SetField(wf.U, wf.V); err != nil {
		return err
	}
	slog.Info("wind field loaded", "file", path,
		"grid", fmt.Sprintf("%dx%d", wf.U.Header.Nx, wf.U.Header.Ny))
	return nil
}

// wireInput forwards GLFW callbacks into the compressing event queue.
// Callbacks run on the main thread during PollEvents; the queue drains
// on the same thread right after, so ordering is preserved.
func wireInput(win *glfw.Window, dq *events.Deque) {
	var prev image.Point
	var down bool

	win.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		pt := image.Pt(int(x), int(y))
		but := events.NoButton
		if down {
			but = events.Left
		}
		dq.Send(events.NewMouseMove(but, pt, prev))
		prev = pt
	})

	win.SetMouseButtonCallback(func(w *glfw.Window, b glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if b != glfw.MouseButtonLeft {
			return
		}
		x, y := w.GetCursorPos()
		pt := image.Pt(int(x), int(y))
		switch action {
		case glfw.Press:
			down = true
			dq.Send(events.NewMouse(events.MouseDown, events.Left, pt))
		case glfw.Release:
			down = false
			dq.Send(events.NewMouse(events.MouseUp, events.Left, pt))
		}
	})

	win.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		x, y := w.GetCursorPos()
		// one wheel line is worth 16 dots of scroll
		delta := math32.Vec2(float32(xoff), float32(yoff)).MulScalar(16)
		dq.Send(events.NewScroll(image.Pt(int(x), int(y)), delta, events.DeltaLine))
	})
}

const blitVertex = `#version 410 core
out vec2 texCoord;

void main() {
    vec2 corner = vec2(gl_VertexID & 1, gl_VertexID >> 1);
    texCoord = vec2(corner.x, 1.0 - corner.y);
    gl_Position = vec4(corner * 2.0 - 1.0, 0.0, 1.0);
}
`

const blitFragment = `#version 410 core
uniform sampler2D trailSampler;

in vec2 texCoord;
out vec4 fragColor;

void main() {
    fragColor = texture(trailSampler, texCoord);
}
`
