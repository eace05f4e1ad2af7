// analysis/sample_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package analysis

import (
	"testing"

	"github.com/mmp/ifpd/math"
	"github.com/mmp/ifpd/procedure"
)

func makeWaypoints(lls ...[2]float64) []procedure.Waypoint {
	var wps []procedure.Waypoint
	for i, ll := range lls {
		wps = append(wps, procedure.Waypoint{
			Name:      string(rune('A' + i)),
			Latitude:  ll[0],
			Longitude: ll[1],
			Sequence:  i + 1,
		})
	}
	return wps
}

func TestSampleCount(t *testing.T) {
	wps := makeWaypoints([2]float64{47, 8}, [2]float64{47.5, 8}, [2]float64{47.5, 9}, [2]float64{47, 9.5})

	for _, k := range []int{1, 2, 5, 20} {
		for n := 1; n <= len(wps); n++ {
			pts := Sample(wps[:n], k)
			if expect := (n-1)*k + 1; len(pts) != expect {
				t.Errorf("n=%d k=%d: got %d points, expected %d", n, k, len(pts), expect)
			}
			for i := 1; i < len(pts); i++ {
				if pts[i].Distance < pts[i-1].Distance {
					t.Errorf("n=%d k=%d: distance decreases at %d: %v -> %v", n, k, i, pts[i-1].Distance,
						pts[i].Distance)
				}
			}
		}
	}

	if pts := Sample(nil, 20); len(pts) != 0 {
		t.Errorf("expected no points for no waypoints, got %d", len(pts))
	}
	if pts := Sample(wps, 0); len(pts) != len(wps) {
		t.Errorf("k=0 should be treated as 1; got %d points", len(pts))
	}
}

func TestSamplePoints(t *testing.T) {
	wps := makeWaypoints([2]float64{47, 8}, [2]float64{48, 8}, [2]float64{48, 9})
	const k = 4
	pts := Sample(wps, k)

	nwp := 0
	for i, p := range pts {
		if p.IsWaypoint {
			if p.Waypoint != nwp {
				t.Errorf("point %d: expected waypoint %d, got %d", i, nwp, p.Waypoint)
			}
			if p.Location != wps[p.Waypoint].Location() {
				t.Errorf("point %d: location %v doesn't match waypoint", i, p.Location)
			}
			nwp++
		} else if p.Waypoint != -1 {
			t.Errorf("point %d: non-waypoint has waypoint index %d", i, p.Waypoint)
		}
	}
	if nwp != len(wps) {
		t.Errorf("expected %d waypoint points, got %d", len(wps), nwp)
	}

	// Intermediate points are linear in lat-long.
	mid := pts[2]
	if mid.Segment != 0 || mid.Fraction != 0.5 {
		t.Errorf("unexpected segment/fraction %d/%v", mid.Segment, mid.Fraction)
	}
	if math.Abs(mid.Location.Latitude()-47.5) > 1e-9 || math.Abs(mid.Location.Longitude()-8) > 1e-9 {
		t.Errorf("unexpected midpoint %s", mid.Location.DDString())
	}

	leg0 := math.NMDistance(wps[0].Location(), wps[1].Location())
	leg1 := math.NMDistance(wps[1].Location(), wps[2].Location())
	if math.Abs(pts[k].Distance-leg0) > 1e-9 {
		t.Errorf("second waypoint distance %v, expected %v", pts[k].Distance, leg0)
	}
	if last := pts[len(pts)-1]; math.Abs(last.Distance-(leg0+leg1)) > 1e-9 {
		t.Errorf("last waypoint distance %v, expected %v", last.Distance, leg0+leg1)
	}
}
