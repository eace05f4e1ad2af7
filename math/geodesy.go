// math/geodesy.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	gomath "math"
)

// EarthRadiusNM is the mean radius of the Earth in nautical miles.
const EarthRadiusNM = 3440.065

// NMDistance returns the great-circle distance in nautical miles between
// two lat-long coordinates, using the haversine formula.
func NMDistance(a Point2LL, b Point2LL) float64 {
	// https://www.movable-type.co.uk/scripts/latlong.html
	lat1, lon1 := Radians(a.Latitude()), Radians(a.Longitude())
	lat2, lon2 := Radians(b.Latitude()), Radians(b.Longitude())
	dlat, dlon := lat2-lat1, lon2-lon1

	x := Sqr(gomath.Sin(dlat/2)) + gomath.Cos(lat1)*gomath.Cos(lat2)*Sqr(gomath.Sin(dlon/2))
	x = Clamp(x, 0, 1) // rounding can push antipodal points slightly past 1
	c := 2 * gomath.Atan2(gomath.Sqrt(x), gomath.Sqrt(1-x))

	return EarthRadiusNM * c
}

// InitialBearing returns the initial great-circle bearing in degrees from
// |from| to |to|, in the range [0,360). The bearing between identical
// points is 0.
func InitialBearing(from Point2LL, to Point2LL) float64 {
	lat1, lon1 := Radians(from.Latitude()), Radians(from.Longitude())
	lat2, lon2 := Radians(to.Latitude()), Radians(to.Longitude())
	dlon := lon2 - lon1

	y := gomath.Sin(dlon) * gomath.Cos(lat2)
	x := gomath.Cos(lat1)*gomath.Sin(lat2) - gomath.Sin(lat1)*gomath.Cos(lat2)*gomath.Cos(dlon)

	return NormalizeHeading(Degrees(gomath.Atan2(y, x)))
}

// TurnAngle returns the change of track in degrees at |b| when flying
// a->b->c. The result is in [0,180]; colinear points give 0.
func TurnAngle(a, b, c Point2LL) float64 {
	return HeadingDifference(InitialBearing(a, b), InitialBearing(b, c))
}
