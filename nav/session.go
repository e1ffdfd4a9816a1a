// Copyright (c) 2026, Terraglobe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nav

import (
	"cogentcore.org/core/math32"
	"github.com/terraglobe/terraglobe/geo"
)

// Session is the reference frame of one gesture lifetime: the
// begin-of-gesture snapshots that every change handler computes its
// delta against. It is created on Began, threaded through the
// begin/change/end handler sequence, and discarded at gesture end,
// making the data dependency explicit instead of smearing it across
// controller fields.
type Session struct {
	// BeginPoint is the screen point where the gesture began.
	BeginPoint math32.Vector2

	// BeginCam is the full camera state at gesture begin.
	BeginCam Camera

	// BeginIntersect is the globe intersection under BeginPoint,
	// valid only when HasIntersect is set. A miss is expected (pointer
	// beyond the horizon) and makes the handlers no-op.
	BeginIntersect math32.Vector3
	BeginLocation  geo.Location
	HasIntersect   bool

	// LastPoint is the most recent screen point the change handlers
	// consumed. Incremental handlers (pan, 2D pan) advance it each
	// change so successive deltas compose under the moving camera.
	LastPoint math32.Vector2

	// PointerLoc / PointerDist / PointerAz describe the globe location
	// under the pinch centroid for zoom-to-pointer: its great-circle
	// distance (radians) and azimuth from the begin look-at point.
	PointerLoc  geo.Location
	PointerDist float32
	PointerAz   float32
}

// newSession snapshots the camera and the globe intersection under the
// given screen point.
func (c *Controller) newSession(pt math32.Vector2) *Session {
	s := &Session{BeginPoint: pt, LastPoint: pt, BeginCam: c.cam}
	ray := c.vp.Ray(c.cam.ViewMatrix(c.globe), pt)
	if ip, ok := c.globe.Intersect(ray); ok {
		s.BeginIntersect = ip
		s.BeginLocation = c.globe.LocationOf(ip)
		s.HasIntersect = true
	}
	return s
}
