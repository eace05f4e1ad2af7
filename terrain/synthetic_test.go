// terrain/synthetic_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package terrain

import (
	"context"
	"testing"

	"github.com/mmp/ifpd/math"
)

func TestSyntheticElevation(t *testing.T) {
	for _, test := range []struct {
		lat, lon float64
		elev     float64
	}{
		{40, 0, 3000},
		{-40, 0, 3000},
		{30, 0, 1000},
		{50, 0, 5000},
		{10, 0, 333.3},
		{60, 0, 900},
		{0, 0, 0},
		{0, -15.707963, 0}, // clamped
		{45, 15.707963, 4500},
	} {
		e := SyntheticElevation(math.LL(test.lat, test.lon))
		if math.Abs(e-test.elev) > 0.01 {
			t.Errorf("(%v,%v): got %v, expected %v", test.lat, test.lon, e, test.elev)
		}
	}
}

func TestSyntheticNonNegative(t *testing.T) {
	var pts []math.Point2LL
	for lat := -90.0; lat <= 90; lat += 2.5 {
		for lon := -180.0; lon <= 180; lon += 5 {
			pts = append(pts, math.LL(lat, lon))
		}
	}

	elev, estimated := Synthetic{}.Elevations(context.Background(), pts)
	if !estimated {
		t.Errorf("synthetic elevations must be marked as estimated")
	}
	if len(elev) != len(pts) {
		t.Fatalf("got %d elevations for %d points", len(elev), len(pts))
	}
	for i, e := range elev {
		if e < 0 {
			t.Errorf("%s: negative elevation %v", pts[i].DDString(), e)
		}
	}
}
