// Copyright (c) 2026, Terraglobe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geo

import "cogentcore.org/core/math32"

// Ray is a ray in world Cartesian coordinates.
type Ray struct {
	Origin math32.Vector3
	Dir    math32.Vector3
}

// RayAt returns the point at parameter t along the ray.
func (r Ray) At(t float32) math32.Vector3 {
	return r.Origin.Add(r.Dir.MulScalar(t))
}

// Globe models the surface the camera navigates over. The coordinate
// frame is Y-up: the north pole is +Y, latitude 0 / longitude 0 is +Z,
// and longitude 90°E is +X.
//
// A ray missing the globe is an expected, frequent condition (pointer
// over open space beyond the horizon), reported by the ok result, never
// by an error.
type Globe interface {
	// Radius returns the globe radius in world units.
	Radius() float32

	// Intersect returns the first intersection of the ray with the
	// globe surface, and whether the ray hits at all.
	Intersect(r Ray) (math32.Vector3, bool)

	// Cartesian returns the world position of the given location at the
	// given altitude above the surface.
	Cartesian(loc Location, alt float32) math32.Vector3

	// LocationOf returns the geographic location under the given world point.
	LocationOf(p math32.Vector3) Location

	// SurfaceNormal returns the outward unit normal at the given location.
	SurfaceNormal(loc Location) math32.Vector3

	// NorthTangent returns the unit tangent pointing toward geographic
	// north at the given location.
	NorthTangent(loc Location) math32.Vector3
}

// Sphere is a spherical globe of fixed radius.
type Sphere struct {
	R float32
}

// NewSphere returns a spherical globe with the given radius.
// A non-positive radius is a programming error.
func NewSphere(radius float32) *Sphere {
	if radius <= 0 {
		panic("geo: non-positive sphere radius")
	}
	return &Sphere{R: radius}
}

func (s *Sphere) Radius() float32 { return s.R }

// Intersect solves the quadratic for a ray against the sphere centered
// at the origin, returning the nearest intersection in front of the
// ray origin.
func (s *Sphere) Intersect(r Ray) (math32.Vector3, bool) {
	d := r.Dir.Normal()
	b := r.Origin.Dot(d)
	c := r.Origin.Dot(r.Origin) - s.R*s.R
	disc := b*b - c
	if disc < 0 {
		return math32.Vector3{}, false
	}
	sq := math32.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
		if t < 0 {
			return math32.Vector3{}, false
		}
	}
	return r.Origin.Add(d.MulScalar(t)), true
}

func (s *Sphere) Cartesian(loc Location, alt float32) math32.Vector3 {
	la := math32.DegToRad(loc.Lat)
	lo := math32.DegToRad(loc.Lon)
	r := s.R + alt
	cosLa := math32.Cos(la)
	return math32.Vec3(
		r*cosLa*math32.Sin(lo),
		r*math32.Sin(la),
		r*cosLa*math32.Cos(lo),
	)
}

func (s *Sphere) LocationOf(p math32.Vector3) Location {
	r := p.Length()
	if r == 0 {
		return Location{}
	}
	return Location{
		Lat: math32.RadToDeg(math32.Asin(math32.Clamp(p.Y/r, -1, 1))),
		Lon: math32.RadToDeg(math32.Atan2(p.X, p.Z)),
	}
}

func (s *Sphere) SurfaceNormal(loc Location) math32.Vector3 {
	return s.Cartesian(loc, 0).Normal()
}

func (s *Sphere) NorthTangent(loc Location) math32.Vector3 {
	la := math32.DegToRad(loc.Lat)
	lo := math32.DegToRad(loc.Lon)
	sinLa := math32.Sin(la)
	return math32.Vec3(
		-sinLa*math32.Sin(lo),
		math32.Cos(la),
		-sinLa*math32.Cos(lo),
	)
}
