// Copyright (c) 2026, Terraglobe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geo provides the geographic primitives consumed by the globe
// navigation controller: locations, great-circle geometry, a spherical
// globe with ray intersection, and composition / decomposition of view
// transforms into navigation parameters.
package geo

import (
	"fmt"

	"cogentcore.org/core/math32"
)

// Location is a geographic position in degrees latitude and longitude.
type Location struct {
	Lat float32
	Lon float32
}

// Loc returns a new location at the given latitude and longitude in degrees.
func Loc(lat, lon float32) Location {
	return Location{Lat: lat, Lon: lon}
}

func (l Location) String() string {
	return fmt.Sprintf("(%.6g, %.6g)", l.Lat, l.Lon)
}

// NormalizedLon returns the longitude wrapped into [-180, 180).
func NormalizedLon(lon float32) float32 {
	lon = math32.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}

// Normalized returns the location with latitude clamped to [-90, 90]
// and longitude wrapped into [-180, 180).
func (l Location) Normalized() Location {
	return Location{
		Lat: math32.Clamp(l.Lat, -90, 90),
		Lon: NormalizedLon(l.Lon),
	}
}

// GreatCircleDistance returns the central angle between two locations,
// in radians.
func GreatCircleDistance(a, b Location) float32 {
	la1, lo1 := math32.DegToRad(a.Lat), math32.DegToRad(a.Lon)
	la2, lo2 := math32.DegToRad(b.Lat), math32.DegToRad(b.Lon)
	if la1 == la2 && lo1 == lo2 {
		return 0
	}
	c := math32.Sin(la1)*math32.Sin(la2) + math32.Cos(la1)*math32.Cos(la2)*math32.Cos(lo2-lo1)
	return math32.Acos(math32.Clamp(c, -1, 1))
}

// GreatCircleAzimuth returns the initial bearing from a to b, in
// degrees clockwise from north.
func GreatCircleAzimuth(a, b Location) float32 {
	la1, lo1 := math32.DegToRad(a.Lat), math32.DegToRad(a.Lon)
	la2, lo2 := math32.DegToRad(b.Lat), math32.DegToRad(b.Lon)
	if la1 == la2 && lo1 == lo2 {
		return 0
	}
	y := math32.Sin(lo2-lo1) * math32.Cos(la2)
	x := math32.Cos(la1)*math32.Sin(la2) - math32.Sin(la1)*math32.Cos(la2)*math32.Cos(lo2-lo1)
	return math32.RadToDeg(math32.Atan2(y, x))
}

// GreatCircleLocation returns the location reached by traveling from
// start along the given azimuth (degrees clockwise from north) for the
// given central angle (radians). A negative distance travels backwards
// along the same great circle, which is how zoom-out extrapolates away
// from the pointer.
func GreatCircleLocation(start Location, azimuth, distance float32) Location {
	if distance == 0 {
		return start
	}
	az := math32.DegToRad(azimuth)
	la1, lo1 := math32.DegToRad(start.Lat), math32.DegToRad(start.Lon)
	la2 := math32.Asin(math32.Sin(la1)*math32.Cos(distance) + math32.Cos(la1)*math32.Sin(distance)*math32.Cos(az))
	lo2 := lo1 + math32.Atan2(
		math32.Sin(distance)*math32.Sin(az),
		math32.Cos(la1)*math32.Cos(distance)-math32.Sin(la1)*math32.Sin(distance)*math32.Cos(az))
	return Location{Lat: math32.RadToDeg(la2), Lon: NormalizedLon(math32.RadToDeg(lo2))}
}
