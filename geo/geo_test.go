// Copyright (c) 2026, Terraglobe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geo

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
)

func TestNormalizedLon(t *testing.T) {
	assert.Equal(t, float32(0), NormalizedLon(0))
	assert.Equal(t, float32(-180), NormalizedLon(180))
	assert.Equal(t, float32(10), NormalizedLon(370))
	assert.Equal(t, float32(170), NormalizedLon(-190))
}

func TestGreatCircle(t *testing.T) {
	a := Loc(0, 0)
	b := Loc(0, 90)
	assert.InDelta(t, math32.Pi/2, GreatCircleDistance(a, b), 1e-5)
	assert.InDelta(t, 90, GreatCircleAzimuth(a, b), 1e-4)

	// traveling east a quarter circle from the origin lands at (0, 90)
	got := GreatCircleLocation(a, 90, math32.Pi/2)
	assert.InDelta(t, 0, got.Lat, 1e-4)
	assert.InDelta(t, 90, got.Lon, 1e-3)

	// negative distance extrapolates backwards along the circle
	got = GreatCircleLocation(a, 90, -math32.Pi/2)
	assert.InDelta(t, -90, got.Lon, 1e-3)

	// north along a meridian
	got = GreatCircleLocation(a, 0, math32.Pi/4)
	assert.InDelta(t, 45, got.Lat, 1e-3)
	assert.InDelta(t, 0, got.Lon, 1e-3)
}

func TestSphereCartesianRoundTrip(t *testing.T) {
	s := NewSphere(6371)
	locs := []Location{{0, 0}, {45, 45}, {-30, 120}, {80, -170}, {-89, 10}}
	for _, l := range locs {
		p := s.Cartesian(l, 0)
		assert.InDelta(t, 6371, p.Length(), 1e-2)
		got := s.LocationOf(p)
		assert.InDelta(t, l.Lat, got.Lat, 1e-3)
		assert.InDelta(t, l.Lon, got.Lon, 1e-3)
	}
}

func TestSphereIntersect(t *testing.T) {
	s := NewSphere(1)

	// straight down the Z axis hits the near surface
	pt, ok := s.Intersect(Ray{Origin: math32.Vec3(0, 0, 10), Dir: math32.Vec3(0, 0, -1)})
	assert.True(t, ok)
	assert.InDelta(t, 1, pt.Z, 1e-5)

	// a ray past the limb misses: expected condition, no error
	_, ok = s.Intersect(Ray{Origin: math32.Vec3(0, 2, 10), Dir: math32.Vec3(0, 0, -1)})
	assert.False(t, ok)

	// pointing away from the sphere misses
	_, ok = s.Intersect(Ray{Origin: math32.Vec3(0, 0, 10), Dir: math32.Vec3(0, 0, 1)})
	assert.False(t, ok)
}

func TestViewMatrixDecomposeRoundTrip(t *testing.T) {
	g := NewSphere(6371)
	cases := []struct {
		look                     Location
		rng, heading, tilt, roll float32
	}{
		{Loc(0, 0), 10000, 0, 0, 0},
		{Loc(30, -60), 5000, 45, 20, 0},
		{Loc(-45, 120), 2000, -120, 60, 0},
		{Loc(10, 10), 8000, 170, 30, 15},
	}
	for _, c := range cases {
		view := ViewMatrix(g, c.look, c.rng, c.heading, c.tilt, c.roll)
		ref := g.Cartesian(c.look, 0)
		look, rng, heading, tilt := DecomposeView(g, view, ref, c.roll)
		assert.InDelta(t, c.look.Lat, look.Lat, 1e-2, "lat for %v", c)
		assert.InDelta(t, c.look.Lon, look.Lon, 1e-2, "lon for %v", c)
		assert.InDelta(t, c.rng, rng, float64(c.rng)*1e-3, "range for %v", c)
		assert.InDelta(t, c.heading, heading, 0.05, "heading for %v", c)
		assert.InDelta(t, c.tilt, tilt, 0.05, "tilt for %v", c)
	}
}

func TestForwardVectorHitsLookAt(t *testing.T) {
	g := NewSphere(6371)
	look := Loc(20, 30)
	view := ViewMatrix(g, look, 5000, 30, 25, 0)
	eye := EyePoint(view)
	fwd := ForwardVector(view)

	pt, ok := g.Intersect(Ray{Origin: eye, Dir: fwd})
	assert.True(t, ok)
	got := g.LocationOf(pt)
	assert.InDelta(t, look.Lat, got.Lat, 0.01)
	assert.InDelta(t, look.Lon, got.Lon, 0.01)
}

func TestViewportCenterRay(t *testing.T) {
	g := NewSphere(6371)
	look := Loc(0, 0)
	view := ViewMatrix(g, look, 10000, 0, 0, 0)
	vp := Viewport{Width: 800, Height: 600, FOV: 45}

	// the ray through the screen center follows the camera forward vector
	r := vp.Ray(view, math32.Vec2(400, 300))
	pt, ok := g.Intersect(r)
	assert.True(t, ok)
	got := g.LocationOf(pt)
	assert.InDelta(t, 0, got.Lat, 0.01)
	assert.InDelta(t, 0, got.Lon, 0.01)
}

func TestRotateView(t *testing.T) {
	g := NewSphere(6371)
	view := ViewMatrix(g, Loc(0, 0), 10000, 0, 0, 0)

	// rotating the globe about the Y (polar) axis shifts the longitude
	// under the camera
	rot := RotateView(view, math32.Vec3(0, 1, 0), math32.DegToRad(10))
	eye := EyePoint(rot)
	fwd := ForwardVector(rot)
	pt, ok := g.Intersect(Ray{Origin: eye, Dir: fwd})
	assert.True(t, ok)
	got := g.LocationOf(pt)
	assert.InDelta(t, 10, math32.Abs(got.Lon), 0.01)
	assert.InDelta(t, 0, got.Lat, 0.01)
}
