// math/geodesy_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"testing"
)

func TestNMDistance(t *testing.T) {
	type dist struct {
		name string
		a, b Point2LL
		nm   float64
		tol  float64
	}

	for _, d := range []dist{
		{"same point", LL(47, 8), LL(47, 8), 0, 0},
		{"one minute of latitude", LL(47, 8), LL(47+1.0/60, 8), 1.0007, 0.001},
		{"0.01 degree of latitude", LL(47, 8), LL(47.01, 8), 0.6004, 0.001},
		{"equator one degree", LL(0, 0), LL(0, 1), 60.04, 0.01},
		{"JFK-LAX", LL(40.6398, -73.7789), LL(33.9425, -118.4081), 2145.9, 0.5},
		{"antipodal", LL(0, 0), LL(0, 180), 10807.2, 0.1},
	} {
		t.Run(d.name, func(t *testing.T) {
			ab, ba := NMDistance(d.a, d.b), NMDistance(d.b, d.a)
			if Abs(ab-d.nm) > d.tol {
				t.Errorf("NMDistance(%v, %v) = %f, expected %f", d.a, d.b, ab, d.nm)
			}
			if ab != ba {
				t.Errorf("NMDistance not symmetric: %f vs %f", ab, ba)
			}
		})
	}
}

func TestInitialBearing(t *testing.T) {
	for _, c := range []struct {
		name     string
		from, to Point2LL
		bearing  float64
	}{
		{"north", LL(47, 8), LL(48, 8), 0},
		{"south", LL(47, 8), LL(46, 8), 180},
		{"east on equator", LL(0, 0), LL(0, 1), 90},
		{"west on equator", LL(0, 0), LL(0, -1), 270},
		{"northeast", LL(0, 0), LL(1, 1), 45},
		{"identical", LL(10, 10), LL(10, 10), 0},
	} {
		t.Run(c.name, func(t *testing.T) {
			b := InitialBearing(c.from, c.to)
			if b < 0 || b >= 360 {
				t.Errorf("bearing %f out of range", b)
			}
			if HeadingDifference(b, c.bearing) > 0.1 {
				t.Errorf("InitialBearing(%v, %v) = %f, expected %f", c.from, c.to, b, c.bearing)
			}
		})
	}
}

func TestTurnAngle(t *testing.T) {
	for _, c := range []struct {
		name    string
		a, b, c Point2LL
		angle   float64
		tol     float64
	}{
		{"colinear along meridian", LL(46, 8), LL(47, 8), LL(48, 8), 0, 1e-9},
		{"colinear along equator", LL(0, 0), LL(0, 1), LL(0, 2), 0, 1e-9},
		{"right angle", LL(0, 0), LL(0, 1), LL(1, 1), 90, 0.1},
		{"reversal", LL(46, 8), LL(47, 8), LL(46, 8), 180, 1e-9},
		{"left 45", LL(0, 0), LL(0, 1), LL(1, 2), 45, 0.1},
	} {
		t.Run(c.name, func(t *testing.T) {
			ta := TurnAngle(c.a, c.b, c.c)
			if ta < 0 || ta > 180 {
				t.Errorf("turn angle %f out of [0,180]", ta)
			}
			if Abs(ta-c.angle) > c.tol {
				t.Errorf("TurnAngle = %f, expected %f", ta, c.angle)
			}
		})
	}

	// Turn angles are always within [0,180] regardless of geometry.
	for lat := -80.0; lat <= 80; lat += 20 {
		for lon := -170.0; lon <= 170; lon += 37 {
			ta := TurnAngle(LL(lat, lon), LL(lat+1, lon+2), LL(lat-3, lon+1))
			if ta < 0 || ta > 180 {
				t.Errorf("turn angle %f out of [0,180] at %f,%f", ta, lat, lon)
			}
		}
	}
}
