// Copyright (c) 2026, Terraglobe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nav

import (
	"image"
	"testing"
	"time"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/terraglobe/terraglobe/events"
	"github.com/terraglobe/terraglobe/geo"
)

var t0 = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func tEv(typ events.Types, seq events.Sequence, x, y int, dt time.Duration) events.Event {
	ev := events.NewTouch(typ, seq, image.Pt(x, y))
	ev.SetTime(t0.Add(dt))
	return ev
}

func mEv(typ events.Types, x, y int, dt time.Duration) events.Event {
	ev := events.NewMouse(typ, events.Left, image.Pt(x, y))
	ev.SetTime(t0.Add(dt))
	return ev
}

func newTestController(opts Options) *Controller {
	g := geo.NewSphere(6371)
	vp := geo.Viewport{Width: 800, Height: 600, FOV: 45}
	return NewController(g, vp, opts)
}

func TestEaseOut(t *testing.T) {
	assert.Equal(t, float32(0), easeOut(0))
	assert.Equal(t, float32(1), easeOut(1))
	assert.Equal(t, float32(1), easeOut(1.5))
	assert.Equal(t, float32(0), easeOut(-0.5))
	assert.InDelta(t, math32.Sin(0.25*math32.Pi/2), easeOut(0.25), 1e-6)
	assert.InDelta(t, math32.Sin(0.75*math32.Pi/2), easeOut(0.75), 1e-6)

	// monotone, no overshoot
	prev := float32(0)
	for f := float32(0); f <= 1.2; f += 0.05 {
		e := easeOut(f)
		assert.GreaterOrEqual(t, e, prev)
		assert.LessOrEqual(t, e, float32(1))
		prev = e
	}
}

func TestFlingProfileAndStop(t *testing.T) {
	c := newTestController(DefaultOptions())
	c.now = t0
	begin := float32(100)
	target := float32(50)
	c.cam.Range = begin
	c.startFling(time.Second, func(e float32) {
		c.cam.Range = begin + (target-begin)*e
	})
	assert.True(t, c.FlingActive())

	for _, f := range []float32{0.25, 0.5, 0.75} {
		c.Tick(t0.Add(time.Duration(f * float32(time.Second))))
		want := begin + (target-begin)*math32.Sin(f*math32.Pi/2)
		assert.InDelta(t, want, c.cam.Range, 1e-3, "fraction %v", f)
		assert.True(t, c.TakeRedraw())
	}

	// the tick at (or past) the nominal duration lands exactly on the
	// full delta and unschedules the animation
	c.Tick(t0.Add(1200 * time.Millisecond))
	assert.InDelta(t, target, c.cam.Range, 1e-4)
	assert.False(t, c.FlingActive())

	// later ticks do not move the camera
	c.Tick(t0.Add(2 * time.Second))
	assert.InDelta(t, target, c.cam.Range, 1e-4)
}

func TestDoubleClickZoomFling(t *testing.T) {
	c := newTestController(DefaultOptions())
	begin := c.cam.Range

	c.ProcessEvent(mEv(events.MouseDown, 400, 300, 0))
	c.ProcessEvent(mEv(events.MouseUp, 400, 300, 50*time.Millisecond))
	c.ProcessEvent(mEv(events.MouseDown, 400, 300, 150*time.Millisecond))
	c.ProcessEvent(mEv(events.MouseUp, 400, 300, 200*time.Millisecond))
	assert.True(t, c.FlingActive())

	c.Tick(t0.Add(200*time.Millisecond + ZoomFlingDuration))
	assert.InDelta(t, begin/2, c.cam.Range, float64(begin)*1e-4)
	assert.False(t, c.FlingActive())
}

func TestFlingDurationOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.PanFlingDuration = 900 * time.Millisecond
	opts.ZoomFlingDuration = 100 * time.Millisecond
	c := newTestController(opts)
	assert.Equal(t, 900*time.Millisecond, c.panFlingDur())
	assert.Equal(t, 100*time.Millisecond, c.zoomFlingDur())

	begin := c.cam.Range
	c.ProcessEvent(mEv(events.MouseDown, 400, 300, 0))
	c.ProcessEvent(mEv(events.MouseUp, 400, 300, 50*time.Millisecond))
	c.ProcessEvent(mEv(events.MouseDown, 400, 300, 150*time.Millisecond))
	c.ProcessEvent(mEv(events.MouseUp, 400, 300, 200*time.Millisecond))
	assert.True(t, c.FlingActive())

	// the shortened zoom fling completes well before the stock duration
	c.Tick(t0.Add(300 * time.Millisecond))
	assert.InDelta(t, begin/2, c.cam.Range, float64(begin)*1e-4)
	assert.False(t, c.FlingActive())

	// zero options keep the stock durations
	d := newTestController(DefaultOptions())
	assert.Equal(t, PanFlingDuration, d.panFlingDur())
	assert.Equal(t, ZoomFlingDuration, d.zoomFlingDur())
}

func TestDownCancelsFling(t *testing.T) {
	c := newTestController(DefaultOptions())
	c.now = t0
	c.startFling(time.Second, func(e float32) {})
	assert.True(t, c.FlingActive())

	c.ProcessEvent(mEv(events.MouseDown, 100, 100, 10*time.Millisecond))
	assert.False(t, c.FlingActive())
}

// dragging east in north-up mode pans west by a plain lat/lon offset,
// leaving heading locked at 0 and keeping the grabbed surface location
// under the pointer.
func TestDragNorthLockedPan(t *testing.T) {
	c := newTestController(DefaultOptions())
	beginLoc := c.locationAtScreen(400, 300)

	c.ProcessEvent(mEv(events.MouseDown, 400, 300, 0))
	c.ProcessEvent(mEv(events.MouseMove, 430, 300, 20*time.Millisecond))
	c.ProcessEvent(mEv(events.MouseMove, 460, 300, 40*time.Millisecond))
	c.ProcessEvent(mEv(events.MouseUp, 460, 300, 500*time.Millisecond))

	cam := c.Camera()
	assert.Less(t, cam.LookAt.Lon, float32(0))
	assert.InDelta(t, 0, cam.LookAt.Lat, 0.01)
	assert.Equal(t, float32(0), cam.Heading)
	assert.True(t, c.NorthUpMode())

	under := c.locationAtScreen(460, 300)
	assert.InDelta(t, beginLoc.Lat, under.Lat, 0.2)
	assert.InDelta(t, beginLoc.Lon, under.Lon, 0.2)
}

// with north-up off, the same drag rotates the sphere about the
// begin/current intersection axis; the grabbed point still tracks the
// pointer and the small residual heading snaps to a whole degree.
func TestDragSphereRotation(t *testing.T) {
	opts := DefaultOptions()
	opts.KeepNorthUp = false
	c := newTestController(opts)
	beginLoc := c.locationAtScreen(400, 300)

	c.ProcessEvent(mEv(events.MouseDown, 400, 300, 0))
	c.ProcessEvent(mEv(events.MouseMove, 430, 300, 20*time.Millisecond))
	c.ProcessEvent(mEv(events.MouseMove, 460, 300, 40*time.Millisecond))
	c.ProcessEvent(mEv(events.MouseUp, 460, 300, 500*time.Millisecond))

	cam := c.Camera()
	assert.Less(t, cam.LookAt.Lon, float32(0))
	assert.InDelta(t, 0, cam.LookAt.Lat, 0.2)
	// near the equator a pure eastward drag leaves heading near 0;
	// within the snap window it rounds to a whole degree
	assert.Equal(t, cam.Heading, math32.Round(cam.Heading))

	under := c.locationAtScreen(460, 300)
	assert.InDelta(t, beginLoc.Lat, under.Lat, 0.5)
	assert.InDelta(t, beginLoc.Lon, under.Lon, 0.5)
}

func TestPanReleaseFling(t *testing.T) {
	c := newTestController(DefaultOptions())

	c.ProcessEvent(tEv(events.TouchStart, 1, 400, 300, 0))
	c.ProcessEvent(tEv(events.TouchMove, 1, 410, 300, 10*time.Millisecond))
	c.ProcessEvent(tEv(events.TouchMove, 1, 420, 300, 20*time.Millisecond))
	c.ProcessEvent(tEv(events.TouchMove, 1, 430, 300, 30*time.Millisecond))
	c.ProcessEvent(tEv(events.TouchEnd, 1, 430, 300, 35*time.Millisecond))
	assert.True(t, c.FlingActive())

	// drive the frame loop at 20 Hz through the whole animation
	atRelease := c.Camera().LookAt.Lon
	var mid float32
	for dt := 50 * time.Millisecond; dt <= PanFlingDuration+100*time.Millisecond; dt += 50 * time.Millisecond {
		c.Tick(t0.Add(35*time.Millisecond + dt))
		if dt == 800*time.Millisecond {
			mid = c.Camera().LookAt.Lon
		}
	}
	assert.Less(t, mid, atRelease)
	assert.Less(t, c.Camera().LookAt.Lon, mid)
	assert.False(t, c.FlingActive())
}

func TestNorthUpHysteresis(t *testing.T) {
	c := newTestController(DefaultOptions())
	assert.True(t, c.NorthUpMode())

	// inside the band without ever leaving it: no snap, lock holds
	c.cam.Heading = 5
	c.northUpCheck()
	assert.Equal(t, float32(5), c.cam.Heading)
	assert.True(t, c.NorthUpMode())

	// beyond the band: the latch arms and the lock releases
	c.cam.Heading = 15
	c.northUpCheck()
	assert.Equal(t, float32(15), c.cam.Heading)
	assert.False(t, c.NorthUpMode())

	// still armed, still outside: nothing changes
	c.cam.Heading = -12
	c.northUpCheck()
	assert.Equal(t, float32(-12), c.cam.Heading)

	// returning within the band snaps to exactly 0 and relocks
	c.cam.Heading = 9.5
	c.northUpCheck()
	assert.Equal(t, float32(0), c.cam.Heading)
	assert.True(t, c.NorthUpMode())
}

func TestSnapHeading(t *testing.T) {
	assert.Equal(t, float32(1), snapHeading(1.4, 10, 10))
	assert.Equal(t, float32(2), snapHeading(1.6, -30, -30))
	assert.Equal(t, float32(0), snapHeading(-0.4, 0, 0))

	// boundary: exactly at the limit does not snap
	assert.Equal(t, float32(2), snapHeading(2, 0, 0))

	// high latitudes: no snapping
	assert.Equal(t, float32(1.4), snapHeading(1.4, 80, 10))
	assert.Equal(t, float32(1.4), snapHeading(1.4, 10, -75))
}

func TestPinchZoomRange(t *testing.T) {
	c := newTestController(DefaultOptions())
	begin := c.cam.Range

	c.ProcessEvent(tEv(events.TouchStart, 1, 300, 300, 0))
	c.ProcessEvent(tEv(events.TouchStart, 2, 500, 300, 5*time.Millisecond))
	// symmetric spread: the span doubles while the centroid holds
	c.ProcessEvent(tEv(events.TouchMove, 1, 200, 300, 15*time.Millisecond))
	c.ProcessEvent(tEv(events.TouchMove, 2, 600, 300, 16*time.Millisecond))

	assert.InDelta(t, begin/2, c.cam.Range, float64(begin)*1e-3)
	assert.InDelta(t, 0, c.cam.LookAt.Lat, 0.1)
}

func TestTiltGesture(t *testing.T) {
	c := newTestController(DefaultOptions())

	c.ProcessEvent(tEv(events.TouchStart, 1, 350, 300, 0))
	c.ProcessEvent(tEv(events.TouchStart, 2, 450, 300, 5*time.Millisecond))
	c.ProcessEvent(tEv(events.TouchMove, 1, 350, 260, 15*time.Millisecond))
	c.ProcessEvent(tEv(events.TouchMove, 2, 450, 260, 16*time.Millisecond))
	c.ProcessEvent(tEv(events.TouchMove, 1, 350, 200, 25*time.Millisecond))
	c.ProcessEvent(tEv(events.TouchMove, 2, 450, 200, 26*time.Millisecond))

	// two fingers dragged 100 dots up: 100 * (90 / 600) degrees of tilt
	assert.InDelta(t, 15, c.cam.Tilt, 0.01)
}

func TestTiltClamped(t *testing.T) {
	c := newTestController(DefaultOptions())

	c.ProcessEvent(tEv(events.TouchStart, 1, 350, 550, 0))
	c.ProcessEvent(tEv(events.TouchStart, 2, 450, 550, 5*time.Millisecond))
	// dragging down from a zero tilt cannot go below 0
	c.ProcessEvent(tEv(events.TouchMove, 1, 350, 590, 15*time.Millisecond))
	c.ProcessEvent(tEv(events.TouchMove, 2, 450, 590, 16*time.Millisecond))
	assert.Equal(t, float32(0), c.cam.Tilt)
}

func TestScrollZoom(t *testing.T) {
	c := newTestController(DefaultOptions())
	begin := c.cam.Range

	ev := events.NewScroll(image.Pt(400, 300), math32.Vec2(0, 256), events.DeltaPixel)
	ev.SetTime(t0)
	c.ProcessEvent(ev)
	assert.InDelta(t, begin*2, c.cam.Range, float64(begin)*1e-4)
	assert.True(t, c.TakeRedraw())
}

func TestRedrawCoalesces(t *testing.T) {
	c := newTestController(DefaultOptions())

	c.ProcessEvent(mEv(events.MouseDown, 400, 300, 0))
	c.ProcessEvent(mEv(events.MouseMove, 440, 300, 20*time.Millisecond))
	assert.True(t, c.TakeRedraw())
	assert.False(t, c.TakeRedraw())

	// an event that changes nothing requests nothing
	c.ProcessEvent(mEv(events.MouseUp, 440, 300, 600*time.Millisecond))
	assert.False(t, c.TakeRedraw())
}

// a press-drag shortly after a click reinterprets vertical motion as
// zoom about the begin range.
func TestDoubleClickDragZoom(t *testing.T) {
	c := newTestController(DefaultOptions())
	begin := c.cam.Range

	c.ProcessEvent(mEv(events.MouseDown, 400, 300, 0))
	c.ProcessEvent(mEv(events.MouseUp, 400, 300, 50*time.Millisecond))
	c.ProcessEvent(mEv(events.MouseDown, 400, 300, 150*time.Millisecond))
	c.ProcessEvent(mEv(events.MouseMove, 400, 450, 200*time.Millisecond))

	want := begin * math32.Pow(2, 2*150.0/600.0)
	assert.InDelta(t, want, c.cam.Range, float64(begin)*1e-3)
}

// locationAtScreen intersects the current camera through a screen point.
func (c *Controller) locationAtScreen(x, y float32) geo.Location {
	view := c.cam.ViewMatrix(c.globe)
	pt, ok := c.globe.Intersect(c.vp.Ray(view, math32.Vec2(x, y)))
	if !ok {
		return geo.Location{Lat: 999, Lon: 999}
	}
	return c.globe.LocationOf(pt)
}
