// Copyright (c) 2026, Terraglobe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nav

import (
	"time"

	"cogentcore.org/core/math32"
	"github.com/terraglobe/terraglobe/gesture"
	"github.com/terraglobe/terraglobe/geo"
)

// rotFlingWindow is how recently a rotation change must have happened
// for a release fling to continue the heading instead of the pan.
const rotFlingWindow = 200 * time.Millisecond

// minRotFlingSpeed is the heading speed, in degrees per second, below
// which a rotate fling is not worth starting.
const minRotFlingSpeed = float32(10)

func (c *Controller) intersectAt(view *math32.Matrix4, pt math32.Vector2) (math32.Vector3, bool) {
	return c.globe.Intersect(c.vp.Ray(view, pt))
}

func (c *Controller) handlePanDrag(r *gesture.Recognizer) {
	switch r.State() {
	case gesture.Began:
		c.sess = c.newSession(r.Location().Sub(r.Translation()))
		c.panChange(c.sess, r.Location())
	case gesture.Changed:
		if c.sess != nil {
			c.panChange(c.sess, c.sess.BeginPoint.Add(r.Translation()))
		}
	case gesture.Ended, gesture.Cancelled:
		// session kept: a fling recognized on this release continues it
	}
}

// panChange applies one pan step to the camera. It is the single pan
// transform path: manual drags and the fling animation both route
// through it, so inertial motion cannot diverge from manual motion.
func (c *Controller) panChange(s *Session, pt math32.Vector2) {
	if s == nil {
		return
	}
	defer c.requestRedraw()

	if c.doubleClick {
		// press-drag within the double-click window: vertical motion
		// becomes zoom, anchored at the begin range
		dy := pt.Y - s.BeginPoint.Y
		c.cam.Range = s.BeginCam.Range * math32.Pow(2, 2*dy/float32(c.vp.Height))
		return
	}
	switch {
	case c.opts.Mode2D:
		c.pan2D(s, pt)
	case !c.opts.ArcBall:
		c.panFirstPerson(s, pt)
	default:
		c.pan3D(s, pt)
	}
}

// pan3D drags the globe under the pointer by rotating the view about
// the axis between the previous and current surface intersections, so
// the grabbed surface point stays under the pointer. In north-up mode
// the delta degrades to a plain latitude/longitude offset, which keeps
// heading at exactly 0 instead of accumulating rotation drift.
func (c *Controller) pan3D(s *Session, pt math32.Vector2) {
	view := c.cam.ViewMatrix(c.globe)
	prev, ok1 := c.intersectAt(view, s.LastPoint)
	cur, ok2 := c.intersectAt(view, pt)
	s.LastPoint = pt
	if !ok1 || !ok2 {
		// pointer beyond the horizon: hold position rather than guess
		return
	}

	if c.northUpMode {
		pl := c.globe.LocationOf(prev)
		cl := c.globe.LocationOf(cur)
		c.cam.LookAt.Lat = math32.Clamp(c.cam.LookAt.Lat-(cl.Lat-pl.Lat), -90, 90)
		c.cam.LookAt.Lon = geo.NormalizedLon(c.cam.LookAt.Lon - (cl.Lon - pl.Lon))
		return
	}

	a := prev.Normal()
	b := cur.Normal()
	axis := a.Cross(b)
	if axis.Length() < 1e-8 {
		return
	}
	angle := math32.Acos(math32.Clamp(a.Dot(b), -1, 1))

	// rotate at zero tilt so the rotation axis is not skewed by the
	// oblique view, then restore the tilt after re-derivation
	savedTilt := c.cam.Tilt
	c.cam.Tilt = 0
	base := c.cam.ViewMatrix(c.globe)
	rotated := geo.RotateView(base, axis.Normal(), angle)
	if !c.rederive(rotated, savedTilt) {
		c.cam.Tilt = savedTilt
	}
}

// pan2D slides the flat surface with the pointer: the inter-point
// delta in eye space becomes a view translation, and the camera
// parameters are re-derived from the moved matrix.
func (c *Controller) pan2D(s *Session, pt math32.Vector2) {
	view := c.cam.ViewMatrix(c.globe)
	prev, ok1 := c.intersectAt(view, s.LastPoint)
	cur, ok2 := c.intersectAt(view, pt)
	s.LastPoint = pt
	if !ok1 || !ok2 {
		return
	}
	camDelta := cur.MulMatrix4(view).Sub(prev.MulMatrix4(view))
	moved := geo.TranslateView(view, camDelta)
	if !c.rederive(moved, c.cam.Tilt) {
		return
	}
}

// panFirstPerson turns the pan into a look-around: horizontal motion
// steers heading, vertical motion steers tilt.
func (c *Controller) panFirstPerson(s *Session, pt math32.Vector2) {
	dx := pt.X - s.LastPoint.X
	dy := pt.Y - s.LastPoint.Y
	s.LastPoint = pt
	degPerPixel := 90 / float32(c.vp.Height)
	c.cam.Heading = normHeading(c.cam.Heading + dx*degPerPixel)
	c.cam.Tilt = math32.Clamp(c.cam.Tilt-dy*degPerPixel, 0, 90)
}

// rederive re-intersects along the moved view's forward vector and
// decomposes the matrix back into camera parameters, restoring the
// given tilt. Returns false when the forward vector misses the globe,
// leaving the camera untouched.
func (c *Controller) rederive(view *math32.Matrix4, tilt float32) bool {
	eye := geo.EyePoint(view)
	fwd := geo.ForwardVector(view)
	ref, ok := c.globe.Intersect(geo.Ray{Origin: eye, Dir: fwd})
	if !ok {
		return false
	}
	prevLat := c.cam.LookAt.Lat
	look, rng, heading, _ := geo.DecomposeView(c.globe, view, ref, c.cam.Roll)
	c.cam.LookAt = look
	c.cam.Range = rng
	c.cam.Heading = snapHeading(normHeading(heading), prevLat, look.Lat)
	c.cam.Tilt = tilt
	return true
}

func (c *Controller) handlePinch(r *gesture.Recognizer) {
	switch r.State() {
	case gesture.Began:
		s := c.newSession(r.Location())
		if c.opts.ZoomToPointer && s.HasIntersect {
			s.PointerLoc = s.BeginLocation
			s.PointerDist = geo.GreatCircleDistance(s.BeginCam.LookAt, s.PointerLoc)
			s.PointerAz = geo.GreatCircleAzimuth(s.BeginCam.LookAt, s.PointerLoc)
		}
		c.sessPinch = s
		c.pinchChange(s, r.Scale())
	case gesture.Changed:
		if c.sessPinch != nil {
			c.pinchChange(c.sessPinch, r.Scale())
		}
	}
}

// pinchChange sets the range from the begin-range and the live scale
// ratio, and in zoom-to-pointer mode carries the look-at point along
// the great circle toward the pinch location, clamped so the look-at
// never closes within [minPointerDistance] of it.
func (c *Controller) pinchChange(s *Session, scale float32) {
	if scale <= 0 {
		return
	}
	c.cam.Range = s.BeginCam.Range / scale
	if c.opts.ZoomToPointer && s.HasIntersect && s.PointerDist > 0 {
		travel := s.PointerDist * (1 - 1/scale)
		max := s.PointerDist - minPointerDistance/c.globe.Radius()
		if max < 0 {
			max = 0
		}
		if travel > max {
			travel = max
		}
		c.cam.LookAt = geo.GreatCircleLocation(s.BeginCam.LookAt, s.PointerAz, travel)
	}
	c.requestRedraw()
}

func (c *Controller) handleRotation(r *gesture.Recognizer) {
	switch r.State() {
	case gesture.Began:
		c.sessRot = c.newSession(r.Location())
		c.rotationChange(c.sessRot, r.Rotation())
	case gesture.Changed:
		if c.sessRot != nil {
			c.rotationChange(c.sessRot, r.Rotation())
		}
	}
}

func (c *Controller) rotationChange(s *Session, rot float32) {
	prev := c.cam.Heading
	c.cam.Heading = normHeading(s.BeginCam.Heading - rot)
	c.northUpCheck()

	dt := float32(c.now.Sub(c.lastRotTime).Seconds())
	if !c.lastRotTime.IsZero() && dt > 0 {
		c.rotVel = normHeading(c.cam.Heading-prev) / dt
	}
	c.lastRotTime = c.now
	c.requestRedraw()
}

func (c *Controller) handleTilt(r *gesture.Recognizer) {
	switch r.State() {
	case gesture.Began:
		c.sessTilt = c.newSession(r.Location())
		c.tiltChange(c.sessTilt, r.Translation().Y)
	case gesture.Changed:
		if c.sessTilt != nil {
			c.tiltChange(c.sessTilt, r.Translation().Y)
		}
	}
}

func (c *Controller) tiltChange(s *Session, dy float32) {
	c.cam.Tilt = math32.Clamp(s.BeginCam.Tilt-dy*(90/float32(c.vp.Height)), 0, 90)
	c.requestRedraw()
}

// handleDoubleZoom starts the short zoom fling on a recognized
// double-tap or double-click: the range halves over the animation.
func (c *Controller) handleDoubleZoom(r *gesture.Recognizer) {
	if r.State() != gesture.Recognized {
		return
	}
	begin := c.cam.Range
	target := begin / 2
	c.startFling(c.zoomFlingDur(), func(e float32) {
		c.cam.Range = begin + (target-begin)*e
	})
}

// handleFling continues the just-released gesture inertially. A recent
// rotation change continues as a heading fling; otherwise the release
// velocity extends the pan through the same panChange path, driven by
// a virtual pointer. The total carried distance D satisfies
// D*(pi/2)/T = v, so the animation starts at the release velocity.
func (c *Controller) handleFling(r *gesture.Recognizer) {
	if r.State() != gesture.Recognized {
		return
	}
	if !c.lastRotTime.IsZero() && c.now.Sub(c.lastRotTime) < rotFlingWindow &&
		math32.Abs(c.rotVel) > minRotFlingSpeed {
		h0 := c.cam.Heading
		dur := c.flingDuration(c.panFlingDur())
		d := c.rotVel * float32(dur.Seconds()) * 2 / math32.Pi
		c.startFling(dur, func(e float32) {
			c.cam.Heading = normHeading(h0 + d*e)
			c.northUpCheck()
		})
		return
	}

	if c.sess == nil {
		return
	}
	// a fresh session anchored at the viewport center drives the
	// carried motion: each tick applies the eased increment as a small
	// virtual pointer step from the center, so the step's ray always
	// intersects the globe regardless of total carried distance
	center := math32.Vec2(float32(c.vp.Width)/2, float32(c.vp.Height)/2)
	fs := &Session{BeginPoint: center, LastPoint: center, BeginCam: c.cam}
	dur := c.flingDuration(c.panFlingDur())
	d := r.Velocity().MulScalar(float32(dur.Seconds()) * 2 / math32.Pi)
	prev := float32(0)
	c.startFling(dur, func(e float32) {
		step := d.MulScalar(e - prev)
		prev = e
		fs.LastPoint = center
		c.panChange(fs, center.Add(step))
	})
}
