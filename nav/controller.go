// Copyright (c) 2026, Terraglobe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nav

import (
	"time"

	"cogentcore.org/core/math32"
	"github.com/terraglobe/terraglobe/events"
	"github.com/terraglobe/terraglobe/gesture"
	"github.com/terraglobe/terraglobe/geo"
)

const (
	// DoubleClickInterval is the maximum time between consecutive
	// pointer-downs for the double-click latch.
	DoubleClickInterval = 300 * time.Millisecond

	// northUpTolerance is the heading hysteresis band, in degrees:
	// the relock latch arms beyond it and snaps back to 0 within it.
	northUpTolerance = 10

	// snapHeadingLimit is the heading magnitude, in degrees, below
	// which the snap-to-meridian rounding applies.
	snapHeadingLimit = 2

	// snapLatitudeLimit bounds the latitudes, in degrees, at which the
	// snap-to-meridian rounding applies.
	snapLatitudeLimit = 70

	// minPointerDistance is how close, in world units, zoom-to-pointer
	// may carry the look-at point toward the pointer location.
	minPointerDistance = 50
)

// Options configures a [Controller].
type Options struct {
	// ArcBall selects the orbit camera (rotating about the look-at
	// surface point) instead of a first-person camera.
	ArcBall bool

	// KeepNorthUp locks heading to 0 except during active rotation,
	// with the ±10° relock hysteresis.
	KeepNorthUp bool

	// ZoomToPointer carries the look-at location toward the pointer
	// while pinch-zooming in, and away while zooming out.
	ZoomToPointer bool

	// Mode2D interprets pan gestures as flat surface translation
	// instead of spherical rotation.
	Mode2D bool

	// Gesture overrides individual recognizer thresholds; zero fields
	// keep the defaults.
	Gesture gesture.Config

	// PanFlingDuration and ZoomFlingDuration override the nominal
	// fling animation durations; zero keeps the defaults.
	PanFlingDuration  time.Duration
	ZoomFlingDuration time.Duration
}

// DefaultOptions returns the standard interactive-globe options.
func DefaultOptions() Options {
	return Options{ArcBall: true, KeepNorthUp: true, ZoomToPointer: true}
}

// Controller translates recognized gesture state transitions into
// camera-parameter deltas and runs inertial fling animations. It is
// single-threaded: events and frame ticks must arrive from the same
// goroutine that renders.
type Controller struct {
	globe geo.Globe
	vp    geo.Viewport
	opts  Options

	cam Camera

	set      *gesture.Set
	drag     *gesture.Recognizer
	pan      *gesture.Recognizer
	pinch    *gesture.Recognizer
	rotation *gesture.Recognizer
	tilt     *gesture.Recognizer
	tap      *gesture.Recognizer
	click    *gesture.Recognizer
	fling    *gesture.Recognizer

	// north-up relock hysteresis
	northUpMode   bool
	detectNorthUp bool

	// pointer-down timing latches
	now         time.Time
	lastDown    time.Time
	downAt      time.Time
	moved       bool
	doubleClick bool
	longClick   bool

	// per-gesture sessions: pinch, rotation, and tilt may be active
	// simultaneously and must not share begin snapshots. sess is the
	// pan / drag session, kept after release for the fling.
	sess      *Session
	sessPinch *Session
	sessRot   *Session
	sessTilt  *Session

	// rotation velocity estimate for rotate flings, deg/sec
	rotVel      float32
	lastRotTime time.Time

	fl *flingAnim

	needsRedraw bool
}

// NewController returns a controller navigating the given globe
// through the given viewport. Recognizer construction errors are
// programming errors and panic.
func NewController(g geo.Globe, vp geo.Viewport, opts Options) *Controller {
	c := &Controller{globe: g, vp: vp, opts: opts}
	c.cam = Camera{Range: 2 * g.Radius()}
	c.northUpMode = opts.KeepNorthUp

	cb := func(r *gesture.Recognizer) { c.dispatch(r) }
	ov := opts.Gesture
	mk := func(k gesture.Kind, cfg gesture.Config) *gesture.Recognizer {
		cfg.Callback = cb
		if ov.InterpretDistance > 0 {
			cfg.InterpretDistance = ov.InterpretDistance
		}
		if ov.MaxTapDistance > 0 {
			cfg.MaxTapDistance = ov.MaxTapDistance
		}
		if ov.MaxTapDuration > 0 {
			cfg.MaxTapDuration = ov.MaxTapDuration
		}
		if ov.MaxTapInterval > 0 {
			cfg.MaxTapInterval = ov.MaxTapInterval
		}
		if ov.MinFlingSpeed > 0 {
			cfg.MinFlingSpeed = ov.MinFlingSpeed
		}
		r, err := gesture.New(k, cfg)
		if err != nil {
			panic(err)
		}
		return r
	}

	// a second touch fails the pan, unblocking the subordinate tilt
	c.pan = mk(gesture.Pan, gesture.Config{MaxTouches: 1})
	c.drag = mk(gesture.Drag, gesture.Config{})
	c.pinch = mk(gesture.Pinch, gesture.Config{})
	c.rotation = mk(gesture.Rotation, gesture.Config{})
	c.tilt = mk(gesture.Tilt, gesture.Config{})
	c.tap = mk(gesture.Tap, gesture.Config{Taps: 2})
	c.click = mk(gesture.Click, gesture.Config{Clicks: 2})
	c.fling = mk(gesture.Fling, gesture.Config{})

	s := gesture.NewSet()
	for _, r := range []*gesture.Recognizer{
		c.pan, c.drag, c.pinch, c.rotation, c.tilt, c.tap, c.click, c.fling,
	} {
		s.Add(r)
	}
	s.RecognizeWith(c.pinch, c.rotation)
	s.RecognizeWith(c.pinch, c.tilt)
	s.RecognizeWith(c.rotation, c.tilt)
	s.RecognizeWith(c.pan, c.fling)
	s.RecognizeWith(c.drag, c.fling)
	s.RequireFailure(c.tilt, c.pan)
	c.set = s
	return c
}

// Camera returns the live camera parameters.
func (c *Controller) Camera() *Camera { return &c.cam }

// SetCamera replaces the camera parameters wholesale.
func (c *Controller) SetCamera(cam Camera) {
	c.cam = cam
	c.requestRedraw()
}

// Recognizers returns the underlying arbitration set, for wiring
// additional relations or recognizers.
func (c *Controller) Recognizers() *gesture.Set { return c.set }

// NorthUpMode returns whether the heading is currently north-locked.
func (c *Controller) NorthUpMode() bool { return c.northUpMode }

// ProcessEvent feeds one input event through the gesture system and
// the pointer-timing latches. WindowPaint events drive the frame tick.
func (c *Controller) ProcessEvent(ev events.Event) {
	c.now = ev.Time()
	t := ev.Type()

	if t == events.WindowPaint {
		c.Tick(c.now)
		return
	}
	if t == events.Scroll {
		c.handleScroll(ev)
		return
	}

	if t.IsDown() {
		// a fresh press always cancels momentum
		c.CancelFling()
		c.doubleClick = c.now.Sub(c.lastDown) < DoubleClickInterval
		c.lastDown = c.now
		c.downAt = c.now
		c.moved = false
		c.longClick = false
	}
	if (t == events.MouseMove || t == events.TouchMove) && !c.moved && !c.downAt.IsZero() {
		c.moved = true
		c.longClick = c.now.Sub(c.downAt) > LongClickDuration
	}

	c.set.ProcessEvent(ev)
}

// Tick advances per-frame work: delayed-failure polling and the fling
// animation. Call once per display refresh.
func (c *Controller) Tick(now time.Time) {
	c.now = now
	c.set.Poll(now)
	c.tickFling(now)
}

// TakeRedraw reports whether any mutation since the last call requires
// a redraw, and clears the flag: multiple mutations within one
// dispatch pass coalesce into a single redraw.
func (c *Controller) TakeRedraw() bool {
	v := c.needsRedraw
	c.needsRedraw = false
	return v
}

func (c *Controller) requestRedraw() { c.needsRedraw = true }

// dispatch routes a recognizer state transition to its handler.
func (c *Controller) dispatch(r *gesture.Recognizer) {
	switch r {
	case c.pan, c.drag:
		c.handlePanDrag(r)
	case c.pinch:
		c.handlePinch(r)
	case c.rotation:
		c.handleRotation(r)
	case c.tilt:
		c.handleTilt(r)
	case c.tap, c.click:
		c.handleDoubleZoom(r)
	case c.fling:
		c.handleFling(r)
	}
}

func (c *Controller) handleScroll(ev events.Event) {
	d := ev.ScrollDelta()
	c.cam.Range *= math32.Pow(2, d.Y/256*events.ScrollWheelSpeed)
	c.requestRedraw()
}

// normHeading wraps a heading into (-180, 180].
func normHeading(h float32) float32 {
	for h > 180 {
		h -= 360
	}
	for h <= -180 {
		h += 360
	}
	return h
}

// northUpCheck applies the heading relock hysteresis: the latch arms
// once heading moves beyond the tolerance band; once armed, heading
// returning within the band snaps to exactly 0 and restores north-up
// mode (when configured). The hysteresis prevents jitter at the
// boundary.
func (c *Controller) northUpCheck() {
	if !c.opts.KeepNorthUp {
		return
	}
	h := normHeading(c.cam.Heading)
	if math32.Abs(h) > northUpTolerance {
		c.detectNorthUp = true
		c.northUpMode = false
		return
	}
	if c.detectNorthUp {
		c.detectNorthUp = false
		c.cam.Heading = 0
		c.northUpMode = c.opts.KeepNorthUp
	}
}

// snapHeading rounds a small heading to the nearest whole degree when
// both the prior and new latitudes are moderate. This is a deliberate
// UX smoothing rule: near-meridian drags settle on exact headings
// instead of accumulating fractional drift.
func snapHeading(h, prevLat, newLat float32) float32 {
	if math32.Abs(h) < snapHeadingLimit &&
		math32.Abs(prevLat) <= snapLatitudeLimit && math32.Abs(newLat) <= snapLatitudeLimit {
		return math32.Round(h)
	}
	return h
}
